package cart

import (
	"github.com/driftwear/storefront/internal/domain/commerce"
)

// AvailabilityStatus classifies the outcome of checking a requested
// quantity against live platform inventory.
type AvailabilityStatus string

const (
	StatusAvailable       AvailabilityStatus = "AVAILABLE"
	StatusOutOfStock      AvailabilityStatus = "OUT_OF_STOCK"
	StatusLowStock        AvailabilityStatus = "LOW_STOCK"
	StatusVariantNotFound AvailabilityStatus = "VARIANT_NOT_FOUND"
)

// AvailabilityResult is the outcome of validating one cart line.
// AvailableQuantity is set only for StatusLowStock.
type AvailabilityResult struct {
	Status            AvailabilityStatus
	AvailableQuantity *int
}

// IsAvailable reports whether the requested quantity can be fulfilled.
func (r AvailabilityResult) IsAvailable() bool {
	return r.Status == StatusAvailable
}

// ResolveAvailability applies the stock policy to a requested quantity:
//
//   - variant missing from the platform response -> VariantNotFound
//   - availableForSale false -> OutOfStock, regardless of quantity
//   - tracked inventory short of the request -> OutOfStock when nothing is
//     left, LowStock(remaining) when some is
//   - untracked inventory (nil quantity) -> unconstrained, Available
func ResolveAvailability(requested int, availability *commerce.VariantAvailability) AvailabilityResult {
	if availability == nil {
		return AvailabilityResult{Status: StatusVariantNotFound}
	}
	if !availability.AvailableForSale {
		return AvailabilityResult{Status: StatusOutOfStock}
	}
	if availability.QuantityAvailable == nil {
		return AvailabilityResult{Status: StatusAvailable}
	}
	available := *availability.QuantityAvailable
	if requested > available {
		// Some platforms report oversold inventory as a negative count.
		if available <= 0 {
			return AvailabilityResult{Status: StatusOutOfStock}
		}
		return AvailabilityResult{Status: StatusLowStock, AvailableQuantity: &available}
	}
	return AvailabilityResult{Status: StatusAvailable}
}
