package usecase

import (
	"context"
	"log/slog"
	"time"

	"stock_analyzer/internal/shared/ratelimiter"
)

// warmLookback is how much trailing history the warmer prefetches.
const warmLookback = 365 * 24 * time.Hour

// WarmUsecase prefetches price history for catalog symbols through a
// (typically cache-decorated) MarketRepository so that dashboard requests
// hit warm entries.
type WarmUsecase struct {
	market      MarketRepository
	rateLimiter ratelimiter.RateLimiterInterface
}

// NewWarmUsecase creates a new WarmUsecase.
func NewWarmUsecase(market MarketRepository, rateLimiter ratelimiter.RateLimiterInterface) *WarmUsecase {
	return &WarmUsecase{market: market, rateLimiter: rateLimiter}
}

// warmOne fetches the trailing year of history for one symbol.
func (wu *WarmUsecase) warmOne(ctx context.Context, symbol string) error {
	end := time.Now().UTC().Truncate(24 * time.Hour)
	start := end.Add(-warmLookback)
	_, err := wu.market.GetDailyHistory(ctx, symbol, start, end)
	return err
}

// WarmAll prefetches history for all given symbols, honoring the provider
// rate limit. A failure on one symbol is logged and does not stop the rest.
func (wu *WarmUsecase) WarmAll(ctx context.Context, symbols []string) error {
	for _, s := range symbols {
		if err := ctx.Err(); err != nil {
			return err
		}
		wu.rateLimiter.WaitIfNeeded()
		if err := wu.warmOne(ctx, s); err != nil {
			slog.Error("failed to warm symbol", "symbol", s, "error", err)
			continue
		}
	}
	return nil
}
