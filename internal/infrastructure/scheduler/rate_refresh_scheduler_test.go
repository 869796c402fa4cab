package scheduler

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	apppricing "github.com/driftwear/storefront/internal/application/pricing"
	"github.com/driftwear/storefront/internal/domain/pricing"
)

// countingProvider reports how often the chain was walked.
type countingProvider struct {
	calls atomic.Int64
}

func (p *countingProvider) Name() string { return "counting" }

func (p *countingProvider) Fetch(context.Context) (pricing.RateTable, error) {
	p.calls.Add(1)
	return pricing.FallbackRates(), nil
}

type nilCache struct{}

func (nilCache) Get(context.Context) (*apppricing.Rates, bool, error) { return nil, false, nil }
func (nilCache) Set(context.Context, *apppricing.Rates, time.Duration) error {
	return nil
}

func TestRateRefreshScheduler(t *testing.T) {
	provider := &countingProvider{}
	service := apppricing.NewService(
		[]pricing.Provider{provider}, provider, nilCache{}, time.Hour, zap.NewNop())

	sched := NewRateRefreshScheduler(service, 10*time.Millisecond, zap.NewNop())
	sched.Start(context.Background())

	require.Eventually(t, func() bool {
		return provider.calls.Load() >= 2
	}, time.Second, 5*time.Millisecond, "expected warmup refresh plus at least one tick")

	sched.Stop()
	after := provider.calls.Load()
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, after, provider.calls.Load(), "no refreshes after Stop")

	// Stop is idempotent.
	sched.Stop()
}
