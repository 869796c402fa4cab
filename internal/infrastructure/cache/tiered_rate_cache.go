package cache

import (
	"context"
	"time"

	"go.uber.org/zap"

	apppricing "github.com/driftwear/storefront/internal/application/pricing"
)

// TieredRateCache layers a per-instance memory cache (L1) over a shared
// Redis cache (L2). Reads fall through L1 to L2 and backfill L1 on a hit;
// writes go to both tiers. L2 failures degrade to L1-only operation.
type TieredRateCache struct {
	l1     *InMemoryRateCache
	l2     apppricing.Cache
	window time.Duration
	logger *zap.Logger
}

var _ apppricing.Cache = (*TieredRateCache)(nil)

// NewTieredRateCache builds the two-tier cache. window is the configured
// cache window used to bound L1 backfills; a non-positive value falls back
// to the default window.
func NewTieredRateCache(l1 *InMemoryRateCache, l2 apppricing.Cache, window time.Duration, logger *zap.Logger) *TieredRateCache {
	if window <= 0 {
		window = apppricing.DefaultCacheWindow
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TieredRateCache{l1: l1, l2: l2, window: window, logger: logger}
}

func (c *TieredRateCache) Get(ctx context.Context) (*apppricing.Rates, bool, error) {
	if rates, ok, _ := c.l1.Get(ctx); ok {
		return rates, true, nil
	}
	if c.l2 == nil {
		return nil, false, nil
	}

	rates, ok, err := c.l2.Get(ctx)
	if err != nil {
		c.logger.Warn("rate cache L2 read failed", zap.Error(err))
		return nil, false, nil
	}
	if !ok {
		return nil, false, nil
	}

	// Backfill L1 for the remainder of the configured window; an expired L2
	// entry would not have been returned, so the remainder is positive.
	remaining := time.Until(rates.FetchedAt.Add(c.window))
	if remaining > 0 {
		_ = c.l1.Set(ctx, rates, remaining)
	}
	return rates, true, nil
}

func (c *TieredRateCache) Set(ctx context.Context, rates *apppricing.Rates, ttl time.Duration) error {
	_ = c.l1.Set(ctx, rates, ttl)
	if c.l2 == nil {
		return nil
	}
	if err := c.l2.Set(ctx, rates, ttl); err != nil {
		c.logger.Warn("rate cache L2 write failed", zap.Error(err))
	}
	return nil
}
