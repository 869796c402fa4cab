// Package scheduler runs background jobs for the storefront.
package scheduler

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	apppricing "github.com/driftwear/storefront/internal/application/pricing"
)

// RateRefreshScheduler refreshes the exchange-rate cache on a fixed
// interval so requests rarely hit a cold cache.
type RateRefreshScheduler struct {
	service  *apppricing.Service
	interval time.Duration
	logger   *zap.Logger

	cancel    context.CancelFunc
	wg        sync.WaitGroup
	mu        sync.Mutex
	isRunning bool
}

func NewRateRefreshScheduler(service *apppricing.Service, interval time.Duration, logger *zap.Logger) *RateRefreshScheduler {
	if interval <= 0 {
		interval = apppricing.DefaultCacheWindow
	}
	return &RateRefreshScheduler{
		service:  service,
		interval: interval,
		logger:   logger,
	}
}

// Start launches the refresh loop. An immediate refresh warms the cache
// before the first tick.
func (s *RateRefreshScheduler) Start(ctx context.Context) {
	s.mu.Lock()
	if s.isRunning {
		s.mu.Unlock()
		return
	}
	s.isRunning = true
	s.mu.Unlock()

	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel

	s.wg.Add(1)
	go s.run(ctx)
}

// Stop halts the refresh loop and waits for an in-flight refresh to finish.
func (s *RateRefreshScheduler) Stop() {
	s.mu.Lock()
	if !s.isRunning {
		s.mu.Unlock()
		return
	}
	s.isRunning = false
	s.mu.Unlock()

	s.cancel()
	s.wg.Wait()
}

func (s *RateRefreshScheduler) run(ctx context.Context) {
	defer s.wg.Done()

	s.refresh(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.refresh(ctx)
		}
	}
}

func (s *RateRefreshScheduler) refresh(ctx context.Context) {
	if err := s.service.Refresh(ctx); err != nil {
		s.logger.Warn("scheduled rate refresh failed", zap.Error(err))
		return
	}
	s.logger.Debug("exchange rates refreshed")
}
