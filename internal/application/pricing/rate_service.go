// Package pricing implements exchange-rate acquisition: an ordered chain of
// upstream providers, a cached table with a fixed freshness window, and a
// hardcoded last resort so displayed prices never depend on upstream uptime.
package pricing

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/driftwear/storefront/internal/domain/pricing"
	"github.com/driftwear/storefront/internal/domain/shared/valueobject"
)

// DefaultCacheWindow is how long a fetched rate table stays fresh. Display
// rates tolerate staleness; four hours keeps upstream traffic negligible.
const DefaultCacheWindow = 4 * time.Hour

// Rates is a rate table annotated with its provenance.
type Rates struct {
	Base      string           `json:"base"`
	Table     pricing.RateTable `json:"rates"`
	Source    string           `json:"source"`
	FetchedAt time.Time        `json:"fetched_at"`
}

// Cache stores fetched rate tables. Get returns ok=false for a miss or an
// expired entry; cache errors are soft, the service falls through to fetch.
type Cache interface {
	Get(ctx context.Context) (*Rates, bool, error)
	Set(ctx context.Context, rates *Rates, ttl time.Duration) error
}

// noopCache makes a nil cache argument mean "fetch every time".
type noopCache struct{}

func (noopCache) Get(ctx context.Context) (*Rates, bool, error) { return nil, false, nil }

func (noopCache) Set(ctx context.Context, rates *Rates, ttl time.Duration) error { return nil }

// Service walks the provider chain and memoizes the winning table.
type Service struct {
	providers []pricing.Provider
	fallback  pricing.Provider
	cache     Cache
	window    time.Duration
	logger    *zap.Logger

	mu sync.Mutex
}

// NewService builds a rate service. providers are tried in order on every
// cache miss; fallback is consulted when all of them fail and its result is
// never cached, so the next request retries the chain.
func NewService(providers []pricing.Provider, fallback pricing.Provider, cache Cache, window time.Duration, logger *zap.Logger) *Service {
	if window <= 0 {
		window = DefaultCacheWindow
	}
	if cache == nil {
		cache = noopCache{}
	}
	return &Service{
		providers: providers,
		fallback:  fallback,
		cache:     cache,
		window:    window,
		logger:    logger,
	}
}

// GetRates returns the current rate table, from cache when fresh. It never
// returns an error to callers: when every provider fails, the hardcoded
// fallback table is returned instead.
func (s *Service) GetRates(ctx context.Context) *Rates {
	if cached, ok, err := s.cache.Get(ctx); err != nil {
		s.logger.Warn("rate cache read failed", zap.Error(err))
	} else if ok {
		return cached
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// A concurrent caller may have filled the cache while we waited.
	if cached, ok, _ := s.cache.Get(ctx); ok {
		return cached
	}

	if rates := s.fetchChain(ctx); rates != nil {
		if err := s.cache.Set(ctx, rates, s.window); err != nil {
			s.logger.Warn("rate cache write failed", zap.Error(err))
		}
		return rates
	}

	return s.fallbackRates(ctx)
}

// Refresh fetches fresh rates regardless of cache freshness and stores them
// on success. The scheduler calls this ahead of cache expiry so requests
// rarely pay the fetch latency.
func (s *Service) Refresh(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rates := s.fetchChain(ctx)
	if rates == nil {
		return pricing.ErrAllProvidersFailed
	}
	if err := s.cache.Set(ctx, rates, s.window); err != nil {
		s.logger.Warn("rate cache write failed", zap.Error(err))
	}
	return nil
}

func (s *Service) fetchChain(ctx context.Context) *Rates {
	for _, provider := range s.providers {
		table, err := provider.Fetch(ctx)
		if err != nil {
			s.logger.Warn("rate provider failed",
				zap.String("provider", provider.Name()), zap.Error(err))
			continue
		}
		if err := table.Validate(); err != nil {
			s.logger.Warn("rate provider returned invalid table",
				zap.String("provider", provider.Name()), zap.Error(err))
			continue
		}
		return &Rates{
			Base:      string(valueobject.BaseCurrency),
			Table:     table,
			Source:    provider.Name(),
			FetchedAt: time.Now().UTC(),
		}
	}
	return nil
}

// fallbackRates produces the hardcoded table. Deliberately not cached: once
// an upstream provider recovers, the very next request picks it up.
func (s *Service) fallbackRates(ctx context.Context) *Rates {
	table, err := s.fallback.Fetch(ctx)
	if err != nil || table.Validate() != nil {
		table = pricing.FallbackRates()
	}
	return &Rates{
		Base:      string(valueobject.BaseCurrency),
		Table:     table,
		Source:    s.fallback.Name(),
		FetchedAt: time.Now().UTC(),
	}
}
