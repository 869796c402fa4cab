// Package commerce defines the contract between the storefront and the
// third-party commerce platform that owns products, inventory, carts and
// hosted checkout.
package commerce

import (
	"context"
)

// VariantAvailability is the live availability of a single sellable variant.
// QuantityAvailable is nil when the platform does not track inventory for
// the variant ("untracked"), which callers must treat as unconstrained.
type VariantAvailability struct {
	VariantID         string
	AvailableForSale  bool
	QuantityAvailable *int
}

// CartLineInput is one line to place into a remote cart.
type CartLineInput struct {
	MerchandiseID string
	Quantity      int
}

// RemoteCart is the platform's server-side representation of a cart.
type RemoteCart struct {
	ID            string
	CheckoutURL   string
	TotalQuantity int
}

// Platform is the commerce backend the storefront proxies to.
type Platform interface {
	// VariantAvailability returns availability keyed by variant id.
	// Variants missing from the result were not found on the platform.
	VariantAvailability(ctx context.Context, variantIDs []string) (map[string]VariantAvailability, error)

	// CreateCart creates a new remote cart holding the given lines.
	// countryCode sets the buyer's country for currency/locale context.
	CreateCart(ctx context.Context, lines []CartLineInput, countryCode string) (*RemoteCart, error)

	// AddCartLines appends lines to an existing remote cart.
	AddCartLines(ctx context.Context, cartID string, lines []CartLineInput) (*RemoteCart, error)
}
