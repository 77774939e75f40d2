// Package adapters provides repository implementations for the symbols feature.
package adapters

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"stock_analyzer/internal/feature/symbols/domain/entity"
	"stock_analyzer/internal/feature/symbols/usecase"
)

// SymbolModel is the GORM persistence model for catalog symbols.
type SymbolModel struct {
	ID               uint      `gorm:"primaryKey"`
	Code             string    `gorm:"size:20;not null;uniqueIndex"`
	Name             string    `gorm:"size:255;not null"`
	Founder          string    `gorm:"size:255"`
	History          string    `gorm:"type:text"`
	PresentCondition string    `gorm:"type:text"`
	IsActive         bool      `gorm:"not null;default:true"`
	SortKey          int       `gorm:"not null;default:0"`
	UpdatedAt        time.Time `gorm:"autoUpdateTime"`
}

// TableName overrides the GORM table name.
func (SymbolModel) TableName() string {
	return "symbols"
}

type symbolSQLite struct {
	db *gorm.DB
}

// Compile-time check that symbolSQLite implements SymbolRepository.
var _ usecase.SymbolRepository = (*symbolSQLite)(nil)

// NewSymbolRepository creates a new symbolSQLite with the given gorm.DB connection.
func NewSymbolRepository(db *gorm.DB) *symbolSQLite {
	return &symbolSQLite{db: db}
}

func toEntity(m SymbolModel) entity.Symbol {
	return entity.Symbol{
		Code:             m.Code,
		Name:             m.Name,
		Founder:          m.Founder,
		History:          m.History,
		PresentCondition: m.PresentCondition,
		IsActive:         m.IsActive,
		SortKey:          m.SortKey,
	}
}

// ListActive returns all active symbols in display order.
func (r *symbolSQLite) ListActive(ctx context.Context) ([]entity.Symbol, error) {
	var rows []SymbolModel
	if err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("sort_key ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]entity.Symbol, 0, len(rows))
	for _, m := range rows {
		out = append(out, toEntity(m))
	}
	return out, nil
}

// ListActiveCodes returns the ticker codes of all active symbols in display order.
func (r *symbolSQLite) ListActiveCodes(ctx context.Context) ([]string, error) {
	var codes []string
	if err := r.db.WithContext(ctx).
		Model(&SymbolModel{}).
		Where("is_active = ?", true).
		Order("sort_key ASC").
		Pluck("code", &codes).Error; err != nil {
		return nil, err
	}
	return codes, nil
}

// FindByCode returns the symbol with the given ticker code.
// Returns usecase.ErrSymbolNotFound when no symbol matches.
func (r *symbolSQLite) FindByCode(ctx context.Context, code string) (*entity.Symbol, error) {
	var m SymbolModel
	if err := r.db.WithContext(ctx).Where("code = ?", code).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrSymbolNotFound
		}
		return nil, err
	}
	e := toEntity(m)
	return &e, nil
}

// UpsertBatch inserts or updates the given symbols, keyed by code.
func (r *symbolSQLite) UpsertBatch(ctx context.Context, symbols []entity.Symbol) error {
	if len(symbols) == 0 {
		return nil
	}
	ms := make([]SymbolModel, 0, len(symbols))
	for _, s := range symbols {
		ms = append(ms, SymbolModel{
			Code:             s.Code,
			Name:             s.Name,
			Founder:          s.Founder,
			History:          s.History,
			PresentCondition: s.PresentCondition,
			IsActive:         s.IsActive,
			SortKey:          s.SortKey,
		})
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "code"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"name", "founder", "history", "present_condition", "is_active", "sort_key",
		}),
	}).Create(&ms).Error
}
