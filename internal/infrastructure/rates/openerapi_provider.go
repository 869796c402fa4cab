// Package rates contains the upstream exchange-rate providers queried by the
// rate service, in the order they are wired.
package rates

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/driftwear/storefront/internal/domain/pricing"
	"github.com/driftwear/storefront/internal/domain/shared/valueobject"
)

// maxResponseSize caps rate API response bodies (1MB).
const maxResponseSize = 1 * 1024 * 1024

// OpenERAPIProvider is the primary provider, backed by open.er-api.com.
// Endpoint should point at the base-currency latest document, e.g.
// https://open.er-api.com/v6/latest/IDR.
type OpenERAPIProvider struct {
	endpoint   string
	httpClient *http.Client
}

var _ pricing.Provider = (*OpenERAPIProvider)(nil)

func NewOpenERAPIProvider(endpoint string, timeout time.Duration) *OpenERAPIProvider {
	return &OpenERAPIProvider{
		endpoint:   endpoint,
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (p *OpenERAPIProvider) Name() string { return "open_er_api" }

func (p *OpenERAPIProvider) Fetch(ctx context.Context) (pricing.RateTable, error) {
	var payload struct {
		Result   string             `json:"result"`
		BaseCode string             `json:"base_code"`
		Rates    map[string]float64 `json:"rates"`
	}
	if err := fetchJSON(ctx, p.httpClient, p.endpoint, &payload); err != nil {
		return nil, fmt.Errorf("open_er_api: %w", err)
	}
	if payload.Result != "success" {
		return nil, fmt.Errorf("open_er_api: result %q", payload.Result)
	}
	if payload.BaseCode != string(valueobject.BaseCurrency) {
		return nil, fmt.Errorf("open_er_api: unexpected base %q", payload.BaseCode)
	}
	return tableFromFloats(payload.Rates), nil
}

func fetchJSON(ctx context.Context, client *http.Client, endpoint string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("HTTP %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return err
	}
	return json.Unmarshal(body, out)
}

func tableFromFloats(rates map[string]float64) pricing.RateTable {
	table := make(pricing.RateTable, len(rates))
	for code, rate := range rates {
		table[code] = decimal.NewFromFloat(rate)
	}
	return table
}
