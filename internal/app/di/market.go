// Package di provides dependency injection factories for creating application components.
package di

import (
	"github.com/redis/go-redis/v9"

	"stock_analyzer/internal/feature/prices/usecase"
	"stock_analyzer/internal/platform/cache"
	"stock_analyzer/internal/platform/externalapi/yahoo"
	infrahttp "stock_analyzer/internal/platform/http"
)

// NewMarket creates the market-data repository: the Yahoo chart client
// wrapped in Redis caching. With a nil Redis client the cache layer is a
// transparent pass-through.
func NewMarket(rdb *redis.Client) usecase.MarketRepository {
	cfg := yahoo.LoadConfig()
	httpClient := infrahttp.NewHTTPClient(cfg.Timeout)
	market := yahoo.NewYahooMarket(cfg, httpClient)

	return cache.NewCachingMarketRepository(rdb, 0, market, "history").
		WithTTLFunc(cache.TimeUntilNextISTClose)
}
