package rates

import (
	"context"

	"github.com/driftwear/storefront/internal/domain/pricing"
)

// StaticProvider serves the hardcoded fallback table. It sits outside the
// ordered chain as the last resort and cannot fail.
type StaticProvider struct{}

var _ pricing.Provider = (*StaticProvider)(nil)

func NewStaticProvider() *StaticProvider { return &StaticProvider{} }

func (p *StaticProvider) Name() string { return "static_fallback" }

func (p *StaticProvider) Fetch(context.Context) (pricing.RateTable, error) {
	return pricing.FallbackRates(), nil
}
