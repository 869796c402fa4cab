// Package cache provides the rate-table caches: a per-instance in-memory
// tier and a Redis tier shared across instances, composed by TieredRateCache.
package cache

import (
	"context"
	"sync"
	"time"

	apppricing "github.com/driftwear/storefront/internal/application/pricing"
)

// InMemoryRateCache holds the latest rate table in process memory. Reads
// after the TTL window miss rather than serving stale entries.
type InMemoryRateCache struct {
	mu        sync.RWMutex
	entry     *apppricing.Rates
	expiresAt time.Time
	now       func() time.Time
}

var _ apppricing.Cache = (*InMemoryRateCache)(nil)

func NewInMemoryRateCache() *InMemoryRateCache {
	return &InMemoryRateCache{now: time.Now}
}

func (c *InMemoryRateCache) Get(context.Context) (*apppricing.Rates, bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.entry == nil || c.now().After(c.expiresAt) {
		return nil, false, nil
	}
	return c.entry, true, nil
}

func (c *InMemoryRateCache) Set(_ context.Context, rates *apppricing.Rates, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entry = rates
	c.expiresAt = c.now().Add(ttl)
	return nil
}
