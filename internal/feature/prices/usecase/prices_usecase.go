// Package usecase implements the business logic for price history operations.
package usecase

import (
	"context"
	"fmt"
	"time"

	"stock_analyzer/internal/feature/prices/domain"
	"stock_analyzer/internal/feature/prices/domain/entity"
)

// MarketRepository abstracts the market-data provider.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type MarketRepository interface {
	// GetDailyHistory returns daily bars for symbol between start and end
	// (inclusive), ascending by date.
	GetDailyHistory(ctx context.Context, symbol string, start, end time.Time) ([]entity.Bar, error)
}

// SymbolChecker reports whether a ticker exists in the catalog.
type SymbolChecker interface {
	Exists(ctx context.Context, code string) (bool, error)
}

// PricesUsecase validates requests and fetches daily price history.
type PricesUsecase struct {
	market  MarketRepository
	symbols SymbolChecker
}

// NewPricesUsecase creates a new PricesUsecase.
func NewPricesUsecase(market MarketRepository, symbols SymbolChecker) *PricesUsecase {
	return &PricesUsecase{market: market, symbols: symbols}
}

// GetHistory returns the daily price series for a catalog symbol over
// [start, end]. The symbol is validated against the catalog before the
// provider is called.
func (pu *PricesUsecase) GetHistory(ctx context.Context, symbol string, start, end time.Time) ([]entity.Bar, error) {
	if end.Before(start) {
		return nil, domain.ErrInvalidRange
	}

	ok, err := pu.symbols.Exists(ctx, symbol)
	if err != nil {
		return nil, fmt.Errorf("symbol lookup: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnknownSymbol, symbol)
	}

	return pu.market.GetDailyHistory(ctx, symbol, start, end)
}
