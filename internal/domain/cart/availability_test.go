package cart

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/driftwear/storefront/internal/domain/commerce"
)

func intPtr(v int) *int { return &v }

func TestResolveAvailability(t *testing.T) {
	tests := []struct {
		name         string
		requested    int
		availability *commerce.VariantAvailability
		wantStatus   AvailabilityStatus
		wantQuantity *int
	}{
		{
			name:         "variant missing from response",
			requested:    1,
			availability: nil,
			wantStatus:   StatusVariantNotFound,
		},
		{
			name:      "not available for sale overrides any quantity",
			requested: 1,
			availability: &commerce.VariantAvailability{
				AvailableForSale:  false,
				QuantityAvailable: intPtr(50),
			},
			wantStatus: StatusOutOfStock,
		},
		{
			name:      "tracked inventory fully depleted",
			requested: 2,
			availability: &commerce.VariantAvailability{
				AvailableForSale:  true,
				QuantityAvailable: intPtr(0),
			},
			wantStatus: StatusOutOfStock,
		},
		{
			name:      "requested exceeds remaining stock",
			requested: 5,
			availability: &commerce.VariantAvailability{
				AvailableForSale:  true,
				QuantityAvailable: intPtr(3),
			},
			wantStatus:   StatusLowStock,
			wantQuantity: intPtr(3),
		},
		{
			name:      "oversold inventory reported as negative count",
			requested: 1,
			availability: &commerce.VariantAvailability{
				AvailableForSale:  true,
				QuantityAvailable: intPtr(-2),
			},
			wantStatus: StatusOutOfStock,
		},
		{
			name:      "requested within remaining stock",
			requested: 2,
			availability: &commerce.VariantAvailability{
				AvailableForSale:  true,
				QuantityAvailable: intPtr(3),
			},
			wantStatus: StatusAvailable,
		},
		{
			name:      "untracked inventory is unconstrained",
			requested: 10000,
			availability: &commerce.VariantAvailability{
				AvailableForSale:  true,
				QuantityAvailable: nil,
			},
			wantStatus: StatusAvailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ResolveAvailability(tt.requested, tt.availability)
			assert.Equal(t, tt.wantStatus, got.Status)
			assert.Equal(t, tt.wantQuantity, got.AvailableQuantity)
		})
	}
}
