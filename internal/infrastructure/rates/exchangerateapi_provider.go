package rates

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/driftwear/storefront/internal/domain/pricing"
	"github.com/driftwear/storefront/internal/domain/shared/valueobject"
)

// ExchangeRateAPIProvider is the backup provider, backed by
// api.exchangerate-api.com. Endpoint should point at the v4 latest document,
// e.g. https://api.exchangerate-api.com/v4/latest/IDR.
type ExchangeRateAPIProvider struct {
	endpoint   string
	httpClient *http.Client
}

var _ pricing.Provider = (*ExchangeRateAPIProvider)(nil)

func NewExchangeRateAPIProvider(endpoint string, timeout time.Duration) *ExchangeRateAPIProvider {
	return &ExchangeRateAPIProvider{
		endpoint:   endpoint,
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (p *ExchangeRateAPIProvider) Name() string { return "exchangerate_api" }

func (p *ExchangeRateAPIProvider) Fetch(ctx context.Context) (pricing.RateTable, error) {
	var payload struct {
		Base  string             `json:"base"`
		Rates map[string]float64 `json:"rates"`
	}
	if err := fetchJSON(ctx, p.httpClient, p.endpoint, &payload); err != nil {
		return nil, fmt.Errorf("exchangerate_api: %w", err)
	}
	if payload.Base != string(valueobject.BaseCurrency) {
		return nil, fmt.Errorf("exchangerate_api: unexpected base %q", payload.Base)
	}
	return tableFromFloats(payload.Rates), nil
}
