package cart

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/driftwear/storefront/internal/domain/commerce"
	"github.com/driftwear/storefront/internal/domain/shared"
)

func TestCheckout(t *testing.T) {
	ctx := context.Background()

	items := []CheckoutLine{
		{VariantID: "v1", Quantity: 2},
		{VariantID: "v2", Quantity: 1},
	}

	t.Run("empty cart fails before any platform call", func(t *testing.T) {
		platform := &fakePlatform{}
		svc, _ := newTestService(platform)

		_, err := svc.Checkout(ctx, CheckoutInput{})

		assert.ErrorIs(t, err, shared.ErrEmptyCart)
		assert.Equal(t, 0, platform.createCalls)
		assert.Equal(t, 0, platform.addCalls)
	})

	t.Run("creates cart and returns checkout url", func(t *testing.T) {
		platform := &fakePlatform{
			created: &commerce.RemoteCart{ID: "cart-9", CheckoutURL: "https://checkout.example/9"},
		}
		svc, _ := newTestService(platform)

		result, err := svc.Checkout(ctx, CheckoutInput{Items: items, CountryCode: "ID"})

		require.NoError(t, err)
		assert.Equal(t, "https://checkout.example/9", result.CheckoutURL)
		assert.Equal(t, "cart-9", result.CheckoutID)
		assert.Equal(t, "ID", platform.lastCountry)
		assert.Len(t, platform.lastLines, 2)
	})

	t.Run("reuses existing remote cart", func(t *testing.T) {
		platform := &fakePlatform{
			added: &commerce.RemoteCart{ID: "cart-9", CheckoutURL: "https://checkout.example/9"},
		}
		svc, _ := newTestService(platform)

		result, err := svc.Checkout(ctx, CheckoutInput{Items: items, CartID: "cart-9"})

		require.NoError(t, err)
		assert.Equal(t, "cart-9", result.CheckoutID)
		assert.Equal(t, 1, platform.addCalls)
		assert.Equal(t, 0, platform.createCalls)
	})

	t.Run("expired remote cart is recreated", func(t *testing.T) {
		platform := &fakePlatform{
			addErr:  commerce.ErrCartMissing,
			created: &commerce.RemoteCart{ID: "cart-new", CheckoutURL: "https://checkout.example/new"},
		}
		svc, _ := newTestService(platform)

		result, err := svc.Checkout(ctx, CheckoutInput{Items: items, CartID: "cart-old"})

		require.NoError(t, err)
		assert.Equal(t, "cart-new", result.CheckoutID)
		assert.Equal(t, 1, platform.addCalls)
		assert.Equal(t, 1, platform.createCalls)
	})

	t.Run("rejected reservation surfaces as out of stock", func(t *testing.T) {
		platform := &fakePlatform{createErr: commerce.ErrReservationFailed}
		svc, _ := newTestService(platform)

		_, err := svc.Checkout(ctx, CheckoutInput{Items: items})

		assert.ErrorIs(t, err, shared.ErrOutOfStock)
	})

	t.Run("platform failure propagates", func(t *testing.T) {
		platform := &fakePlatform{createErr: commerce.ErrPlatformUnavailable}
		svc, _ := newTestService(platform)

		_, err := svc.Checkout(ctx, CheckoutInput{Items: items})

		assert.ErrorIs(t, err, commerce.ErrPlatformUnavailable)
	})

	t.Run("missing checkout url is an invalid response", func(t *testing.T) {
		platform := &fakePlatform{created: &commerce.RemoteCart{ID: "cart-9"}}
		svc, _ := newTestService(platform)

		_, err := svc.Checkout(ctx, CheckoutInput{Items: items})

		assert.ErrorIs(t, err, commerce.ErrInvalidResponse)
	})

	t.Run("rejects malformed lines", func(t *testing.T) {
		svc, _ := newTestService(&fakePlatform{})

		_, err := svc.Checkout(ctx, CheckoutInput{Items: []CheckoutLine{{VariantID: "v1", Quantity: 0}}})
		assert.ErrorIs(t, err, shared.ErrInvalidInput)
	})
}
