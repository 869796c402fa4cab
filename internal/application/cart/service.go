// Package cart implements cart use cases: adding items with live
// availability checks, validating cart contents against the commerce
// platform, and maintaining the locally persisted cart state.
package cart

import (
	"context"
	"errors"

	"go.uber.org/zap"

	cartdomain "github.com/driftwear/storefront/internal/domain/cart"
	"github.com/driftwear/storefront/internal/domain/commerce"
	"github.com/driftwear/storefront/internal/domain/shared"
)

// Service coordinates the local cart store with the commerce platform.
type Service struct {
	platform commerce.Platform
	carts    cartdomain.Repository
	logger   *zap.Logger
}

func NewService(platform commerce.Platform, carts cartdomain.Repository, logger *zap.Logger) *Service {
	return &Service{
		platform: platform,
		carts:    carts,
		logger:   logger,
	}
}

// AddToCartInput describes one add-to-cart attempt. CartID is empty for the
// first item; subsequent adds carry the remote cart id returned earlier.
type AddToCartInput struct {
	VariantID string
	Quantity  int
	CartID    string
}

// AddToCartResult reports the outcome. Cart is nil when Availability blocked
// the add; callers dispatch on Availability.Status.
type AddToCartResult struct {
	Availability cartdomain.AvailabilityResult
	Cart         *commerce.RemoteCart
}

// AddToCart checks live availability first and only reserves the line on the
// platform when the variant is purchasable. A reservation rejected by the
// platform, a race with other buyers, is reported as out of stock rather
// than an error.
func (s *Service) AddToCart(ctx context.Context, input AddToCartInput) (*AddToCartResult, error) {
	if input.VariantID == "" || input.Quantity <= 0 {
		return nil, shared.ErrInvalidInput
	}

	availability, err := s.lookupVariant(ctx, input.VariantID)
	if err != nil {
		return nil, err
	}

	result := cartdomain.ResolveAvailability(input.Quantity, availability)
	switch result.Status {
	case cartdomain.StatusOutOfStock, cartdomain.StatusVariantNotFound:
		s.logger.Info("add to cart blocked",
			zap.String("variant_id", input.VariantID),
			zap.String("status", string(result.Status)))
		return &AddToCartResult{Availability: result}, nil
	}

	lines := []commerce.CartLineInput{{MerchandiseID: input.VariantID, Quantity: input.Quantity}}

	var remote *commerce.RemoteCart
	if input.CartID == "" {
		remote, err = s.platform.CreateCart(ctx, lines, "")
	} else {
		remote, err = s.platform.AddCartLines(ctx, input.CartID, lines)
	}
	if err != nil {
		if errors.Is(err, commerce.ErrReservationFailed) {
			// Stock moved between the availability check and the reservation.
			return &AddToCartResult{
				Availability: cartdomain.AvailabilityResult{Status: cartdomain.StatusOutOfStock},
			}, nil
		}
		return nil, err
	}

	return &AddToCartResult{Availability: result, Cart: remote}, nil
}

// ValidateItem checks one variant against live inventory.
func (s *Service) ValidateItem(ctx context.Context, variantID string, quantity int) (cartdomain.AvailabilityResult, error) {
	if variantID == "" || quantity <= 0 {
		return cartdomain.AvailabilityResult{}, shared.ErrInvalidInput
	}

	availability, err := s.lookupVariant(ctx, variantID)
	if err != nil {
		return cartdomain.AvailabilityResult{}, err
	}
	return cartdomain.ResolveAvailability(quantity, availability), nil
}

// ValidationItem is one line of a cart validation request.
type ValidationItem struct {
	VariantID string
	Quantity  int
}

// ValidationLine pairs a requested line with its availability verdict.
type ValidationLine struct {
	VariantID string
	Quantity  int
	Result    cartdomain.AvailabilityResult
}

// ValidateCart checks every line against live inventory in a single platform
// round trip. Unknown variants come back as VARIANT_NOT_FOUND lines, never
// as errors.
func (s *Service) ValidateCart(ctx context.Context, items []ValidationItem) ([]ValidationLine, error) {
	if len(items) == 0 {
		return nil, shared.ErrEmptyCart
	}

	ids := make([]string, 0, len(items))
	for _, item := range items {
		if item.VariantID == "" || item.Quantity <= 0 {
			return nil, shared.ErrInvalidInput
		}
		ids = append(ids, item.VariantID)
	}

	availabilities, err := s.platform.VariantAvailability(ctx, ids)
	if err != nil {
		return nil, err
	}

	lines := make([]ValidationLine, 0, len(items))
	for _, item := range items {
		var availability *commerce.VariantAvailability
		if a, ok := availabilities[item.VariantID]; ok {
			availability = &a
		}
		lines = append(lines, ValidationLine{
			VariantID: item.VariantID,
			Quantity:  item.Quantity,
			Result:    cartdomain.ResolveAvailability(item.Quantity, availability),
		})
	}
	return lines, nil
}

func (s *Service) lookupVariant(ctx context.Context, variantID string) (*commerce.VariantAvailability, error) {
	availabilities, err := s.platform.VariantAvailability(ctx, []string{variantID})
	if err != nil {
		s.logger.Warn("variant availability lookup failed",
			zap.String("variant_id", variantID), zap.Error(err))
		return nil, err
	}
	if a, ok := availabilities[variantID]; ok {
		return &a, nil
	}
	return nil, nil
}
