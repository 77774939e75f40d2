// Package db opens the application database and runs migrations.
package db

import (
	"log"
	"os"

	gsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"

	authentity "stock_analyzer/internal/feature/auth/domain/entity"
	symboladapters "stock_analyzer/internal/feature/symbols/adapters"
)

// OpenDB opens the SQLite database at DB_PATH (default stock_analyzer.db)
// and migrates the schema. TranslateError is enabled so adapters can match
// gorm.ErrDuplicatedKey instead of driver-specific constraint errors.
func OpenDB() *gorm.DB {
	path := os.Getenv("DB_PATH")
	if path == "" {
		path = "stock_analyzer.db"
	}

	db, err := gorm.Open(gsqlite.Open(path), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatalf("DB open failed: %v", err)
	}

	if err := db.AutoMigrate(
		&authentity.User{},
		&symboladapters.SymbolModel{},
	); err != nil {
		log.Fatalf("failed to migrate: %v", err)
	}

	return db
}
