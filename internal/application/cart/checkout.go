package cart

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/driftwear/storefront/internal/domain/commerce"
	"github.com/driftwear/storefront/internal/domain/shared"
)

// CheckoutInput carries everything needed to hand the buyer off to the
// platform's checkout. CountryCode localizes pricing and shipping options on
// the hosted checkout page; empty means platform default.
type CheckoutInput struct {
	Items       []CheckoutLine
	CartID      string
	CountryCode string
}

// CheckoutLine is one purchasable line at checkout time.
type CheckoutLine struct {
	VariantID string
	Quantity  int
}

// CheckoutResult carries the hosted checkout handoff.
type CheckoutResult struct {
	CheckoutURL string
	CheckoutID  string
}

// Checkout creates or reuses a platform cart holding the given lines and
// returns the hosted checkout URL. An empty item list fails before any
// network call is made.
func (s *Service) Checkout(ctx context.Context, input CheckoutInput) (*CheckoutResult, error) {
	if len(input.Items) == 0 {
		return nil, shared.ErrEmptyCart
	}

	lines := make([]commerce.CartLineInput, 0, len(input.Items))
	for _, item := range input.Items {
		if item.VariantID == "" || item.Quantity <= 0 {
			return nil, shared.ErrInvalidInput
		}
		lines = append(lines, commerce.CartLineInput{
			MerchandiseID: item.VariantID,
			Quantity:      item.Quantity,
		})
	}

	var (
		remote *commerce.RemoteCart
		err    error
	)
	if input.CartID == "" {
		remote, err = s.platform.CreateCart(ctx, lines, input.CountryCode)
	} else {
		remote, err = s.platform.AddCartLines(ctx, input.CartID, lines)
		if errors.Is(err, commerce.ErrCartMissing) {
			// The platform expired the cart; start over with a fresh one.
			s.logger.Warn("remote cart expired, recreating", zap.String("cart_id", input.CartID))
			remote, err = s.platform.CreateCart(ctx, lines, input.CountryCode)
		}
	}
	if err != nil {
		if errors.Is(err, commerce.ErrReservationFailed) {
			// Stock ran out between the cart being built and checkout; a
			// rejected reservation is a stock outcome, not a backend fault.
			s.logger.Info("checkout reservation rejected", zap.String("cart_id", input.CartID))
			return nil, shared.ErrOutOfStock
		}
		s.logger.Error("checkout initiation failed", zap.Error(err))
		return nil, err
	}

	if remote.CheckoutURL == "" {
		return nil, commerce.ErrInvalidResponse
	}

	return &CheckoutResult{
		CheckoutURL: remote.CheckoutURL,
		CheckoutID:  remote.ID,
	}, nil
}
