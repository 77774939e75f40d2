// Package usecase implements the business logic for symbol-related operations.
package usecase

import (
	"context"
	"errors"
	"fmt"

	"stock_analyzer/internal/feature/symbols/domain/entity"
)

// ErrSymbolNotFound is returned when a ticker code is not in the catalog.
var ErrSymbolNotFound = errors.New("symbol not found")

// SymbolRepository abstracts the persistence layer for symbol (stock ticker) data.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type SymbolRepository interface {
	ListActive(ctx context.Context) ([]entity.Symbol, error)
	ListActiveCodes(ctx context.Context) ([]string, error)
	FindByCode(ctx context.Context, code string) (*entity.Symbol, error)
	UpsertBatch(ctx context.Context, symbols []entity.Symbol) error
}

// SymbolUsecase provides business logic for symbol operations.
type SymbolUsecase struct {
	repo SymbolRepository
}

// NewSymbolUsecase creates a new SymbolUsecase with the given repository.
func NewSymbolUsecase(r SymbolRepository) *SymbolUsecase {
	return &SymbolUsecase{repo: r}
}

// ListActiveSymbols returns all active symbols from the repository.
func (u *SymbolUsecase) ListActiveSymbols(ctx context.Context) ([]entity.Symbol, error) {
	return u.repo.ListActive(ctx)
}

// ListActiveCodes returns the ticker codes of all active symbols.
func (u *SymbolUsecase) ListActiveCodes(ctx context.Context) ([]string, error) {
	return u.repo.ListActiveCodes(ctx)
}

// GetProfile returns the company profile for a ticker code.
func (u *SymbolUsecase) GetProfile(ctx context.Context, code string) (*entity.Symbol, error) {
	return u.repo.FindByCode(ctx, code)
}

// Exists reports whether an active catalog symbol has the given code.
// It satisfies the prices feature's SymbolChecker interface.
func (u *SymbolUsecase) Exists(ctx context.Context, code string) (bool, error) {
	s, err := u.repo.FindByCode(ctx, code)
	if err != nil {
		if errors.Is(err, ErrSymbolNotFound) {
			return false, nil
		}
		return false, err
	}
	return s.IsActive, nil
}

// Seed upserts the given catalog into the repository. Called at startup
// with the embedded catalog so a fresh database is immediately usable.
func (u *SymbolUsecase) Seed(ctx context.Context, symbols []entity.Symbol) error {
	if err := u.repo.UpsertBatch(ctx, symbols); err != nil {
		return fmt.Errorf("seed symbol catalog: %w", err)
	}
	return nil
}
