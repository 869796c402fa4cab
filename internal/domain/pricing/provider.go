package pricing

import (
	"context"
	"errors"
)

// ErrAllProvidersFailed is returned when no provider in the chain produced a
// valid rate table.
var ErrAllProvidersFailed = errors.New("all rate providers failed")

// Provider fetches a full rate table from one upstream source. Providers
// are queried in a fixed order; the first successful, valid table wins.
type Provider interface {
	// Name identifies the provider in logs and in the response's source field.
	Name() string
	// Fetch retrieves the current rate table. An error or an invalid table
	// moves the chain on to the next provider.
	Fetch(ctx context.Context) (RateTable, error)
}
