// Package usecase implements the business logic for stock metric calculation.
package usecase

import (
	"context"
	"fmt"
	"time"

	"stock_analyzer/internal/feature/metrics/domain"
	"stock_analyzer/internal/feature/metrics/domain/entity"
	pricesdomain "stock_analyzer/internal/feature/prices/domain"
	pricesentity "stock_analyzer/internal/feature/prices/domain/entity"
)

// MarketRepository abstracts the market-data provider.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type MarketRepository interface {
	GetDailyHistory(ctx context.Context, symbol string, start, end time.Time) ([]pricesentity.Bar, error)
}

// SymbolChecker reports whether a ticker exists in the catalog.
type SymbolChecker interface {
	Exists(ctx context.Context, code string) (bool, error)
}

// MetricsUsecase fetches price history and computes metric bundles.
type MetricsUsecase struct {
	market  MarketRepository
	symbols SymbolChecker
}

// NewMetricsUsecase creates a new MetricsUsecase.
func NewMetricsUsecase(market MarketRepository, symbols SymbolChecker) *MetricsUsecase {
	return &MetricsUsecase{market: market, symbols: symbols}
}

// GetMetrics computes summary, indicator and risk metrics for a catalog
// symbol over [start, end]. At least two daily bars are required.
func (mu *MetricsUsecase) GetMetrics(ctx context.Context, symbol string, start, end time.Time) (*entity.Metrics, error) {
	if end.Before(start) {
		return nil, pricesdomain.ErrInvalidRange
	}

	ok, err := mu.symbols.Exists(ctx, symbol)
	if err != nil {
		return nil, fmt.Errorf("symbol lookup: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s", pricesdomain.ErrUnknownSymbol, symbol)
	}

	bars, err := mu.market.GetDailyHistory(ctx, symbol, start, end)
	if err != nil {
		return nil, err
	}
	if len(bars) < 2 {
		return nil, fmt.Errorf("%w: got %d bars, need at least 2", domain.ErrInsufficientData, len(bars))
	}

	series := computeIndicatorSeries(bars)
	return &entity.Metrics{
		Symbol:     symbol,
		Summary:    computeSummary(bars),
		Indicators: latestIndicators(series),
		Series:     series,
		Risk:       computeRisk(pricesentity.Closes(bars)),
	}, nil
}
