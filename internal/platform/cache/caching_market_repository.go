// Package cache provides caching implementations for repository interfaces.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"stock_analyzer/internal/feature/prices/domain/entity"
	"stock_analyzer/internal/feature/prices/usecase"
)

// CachingMarketRepository decorates a MarketRepository with Redis caching.
// It implements the decorator pattern, transparently adding caching without
// modifying the underlying provider client.
type CachingMarketRepository struct {
	inner     usecase.MarketRepository
	rdb       *redis.Client
	ttl       time.Duration
	ttlFn     func() time.Duration
	namespace string
}

var _ usecase.MarketRepository = (*CachingMarketRepository)(nil)

// NewCachingMarketRepository decorates a MarketRepository with Redis caching.
// If ttl is 0, it defaults to 5 minutes. If namespace is empty, it uses "history".
func NewCachingMarketRepository(rdb *redis.Client, ttl time.Duration, inner usecase.MarketRepository, namespace string) *CachingMarketRepository {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	if namespace == "" {
		namespace = "history"
	}
	return &CachingMarketRepository{
		inner:     inner,
		rdb:       rdb,
		ttl:       ttl,
		namespace: namespace,
	}
}

// WithTTLFunc makes the entry TTL dynamic, computed at write time. Used to
// expire daily-bar entries at the next market close instead of a fixed ttl.
func (c *CachingMarketRepository) WithTTLFunc(fn func() time.Duration) *CachingMarketRepository {
	c.ttlFn = fn
	return c
}

// GetDailyHistory retrieves bars, checking the cache first and falling back
// to the provider. Cache writes are best effort; a dead Redis never fails a
// request.
func (c *CachingMarketRepository) GetDailyHistory(ctx context.Context, symbol string, start, end time.Time) ([]entity.Bar, error) {
	// Bypass cache if Redis is not configured
	if c.rdb == nil {
		return c.inner.GetDailyHistory(ctx, symbol, start, end)
	}

	key := c.cacheKey(symbol, start, end)

	// 1) Check cache
	if b, err := c.rdb.Get(ctx, key).Bytes(); err == nil && len(b) > 0 {
		var out []entity.Bar
		if err := json.Unmarshal(b, &out); err == nil {
			return out, nil
		}
		// Delete corrupted cache entry
		_ = c.rdb.Del(ctx, key).Err()
	}

	// 2) Fallback to the provider
	out, err := c.inner.GetDailyHistory(ctx, symbol, start, end)
	if err != nil {
		return nil, err
	}

	// 3) Store in cache (best effort)
	ttl := c.ttl
	if c.ttlFn != nil {
		ttl = c.ttlFn()
	}
	if b, err := json.Marshal(out); err == nil {
		_ = c.rdb.Set(ctx, key, b, ttl).Err()
	}

	return out, nil
}

// cacheKey generates a cache key for a specific symbol and date range.
func (c *CachingMarketRepository) cacheKey(symbol string, start, end time.Time) string {
	return fmt.Sprintf("%s:%s:%s:%s",
		c.namespace,
		safe(symbol),
		start.UTC().Format("2006-01-02"),
		end.UTC().Format("2006-01-02"),
	)
}

// safe escapes characters that are problematic for Redis keys.
func safe(s string) string {
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, ":", "_")
	return s
}
