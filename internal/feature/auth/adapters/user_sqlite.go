// Package adapters provides repository implementations for the auth feature.
package adapters

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"stock_analyzer/internal/feature/auth/domain/entity"
	"stock_analyzer/internal/feature/auth/usecase"
)

// userSQLite is the SQLite implementation of the UserRepository interface,
// using GORM for database access.
type userSQLite struct {
	db *gorm.DB
}

// Compile-time check that userSQLite implements UserRepository.
var _ usecase.UserRepository = (*userSQLite)(nil)

// NewUserRepository creates a new userSQLite with the given gorm.DB connection.
func NewUserRepository(db *gorm.DB) *userSQLite {
	return &userSQLite{db: db}
}

// Create inserts the user. Returns usecase.ErrEmailAlreadyExists when the
// unique email index is violated. Requires the connection to be opened with
// TranslateError so the driver error maps to gorm.ErrDuplicatedKey.
func (r *userSQLite) Create(ctx context.Context, u *entity.User) error {
	if err := r.db.WithContext(ctx).Create(u).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return usecase.ErrEmailAlreadyExists
		}
		return err
	}
	return nil
}

// FindByEmail fetches a user by email address.
// Returns usecase.ErrUserNotFound when no user matches.
func (r *userSQLite) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	var u entity.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}
