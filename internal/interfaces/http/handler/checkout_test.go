package handler

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	appcart "github.com/driftwear/storefront/internal/application/cart"
	"github.com/driftwear/storefront/internal/domain/commerce"
)

func setupCheckoutTestHandler() (*CheckoutHandler, *mockPlatform) {
	gin.SetMode(gin.TestMode)

	platform := &mockPlatform{availability: make(map[string]commerce.VariantAvailability)}
	service := appcart.NewService(platform, newMockCartRepository(), zap.NewNop())
	return NewCheckoutHandler(service), platform
}

func TestCheckoutHandler_CreatesSession(t *testing.T) {
	handler, platform := setupCheckoutTestHandler()

	platform.created = &commerce.RemoteCart{
		ID:          "cart-xyz",
		CheckoutURL: "https://shop.example/checkout/xyz",
	}

	w := postJSON(t, handler.Checkout, "/checkout", gin.H{
		"items": []gin.H{{"variant_id": "var-1", "quantity": 2}},
	}, nil)

	assert.Equal(t, http.StatusOK, w.Code)
	success, data, _ := decodeEnvelope(t, w)
	assert.True(t, success)
	assert.Equal(t, "https://shop.example/checkout/xyz", data["checkout_url"])
	assert.Equal(t, "cart-xyz", data["checkout_id"])
}

func TestCheckoutHandler_ForwardsCountryCode(t *testing.T) {
	handler, platform := setupCheckoutTestHandler()
	platform.created = &commerce.RemoteCart{
		ID:          "cart-xyz",
		CheckoutURL: "https://shop.example/checkout/xyz",
	}

	w := postJSON(t, handler.Checkout, "/checkout", gin.H{
		"items": []gin.H{{"variant_id": "var-1", "quantity": 1}},
	}, nil, func(r *http.Request) {
		r.Header.Set("X-Country-Code", "SG")
	})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "SG", platform.lastCountry)
}

func TestCheckoutHandler_ReusesExistingCart(t *testing.T) {
	handler, platform := setupCheckoutTestHandler()
	platform.added = &commerce.RemoteCart{
		ID:          "cart-abc",
		CheckoutURL: "https://shop.example/checkout/abc",
	}

	w := postJSON(t, handler.Checkout, "/checkout", gin.H{
		"items":   []gin.H{{"variant_id": "var-1", "quantity": 1}},
		"cart_id": "cart-abc",
	}, nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 0, platform.createCalls)
	assert.Equal(t, "cart-abc", platform.lastCartID)
}

func TestCheckoutHandler_RecreatesExpiredCart(t *testing.T) {
	handler, platform := setupCheckoutTestHandler()
	platform.addErr = commerce.ErrCartMissing
	platform.created = &commerce.RemoteCart{
		ID:          "cart-new",
		CheckoutURL: "https://shop.example/checkout/new",
	}

	w := postJSON(t, handler.Checkout, "/checkout", gin.H{
		"items":   []gin.H{{"variant_id": "var-1", "quantity": 1}},
		"cart_id": "cart-stale",
	}, nil)

	assert.Equal(t, http.StatusOK, w.Code)
	success, data, _ := decodeEnvelope(t, w)
	assert.True(t, success)
	assert.Equal(t, "cart-new", data["checkout_id"])
	assert.Equal(t, 1, platform.createCalls)
}

func TestCheckoutHandler_EmptyItems(t *testing.T) {
	handler, platform := setupCheckoutTestHandler()

	w := postJSON(t, handler.Checkout, "/checkout", gin.H{"items": []gin.H{}}, nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	success, _, code := decodeEnvelope(t, w)
	assert.False(t, success)
	assert.Equal(t, "EMPTY_CART", code)
	assert.Equal(t, 0, platform.createCalls)
	assert.Equal(t, 0, platform.addCalls)
}

func TestCheckoutHandler_PlatformDown(t *testing.T) {
	handler, platform := setupCheckoutTestHandler()
	platform.err = commerce.ErrPlatformUnavailable

	w := postJSON(t, handler.Checkout, "/checkout", gin.H{
		"items": []gin.H{{"variant_id": "var-1", "quantity": 1}},
	}, nil)

	assert.Equal(t, http.StatusBadGateway, w.Code)
}

func TestCheckoutHandler_ReservationRejected(t *testing.T) {
	handler, platform := setupCheckoutTestHandler()
	platform.err = commerce.ErrReservationFailed

	w := postJSON(t, handler.Checkout, "/checkout", gin.H{
		"items": []gin.H{{"variant_id": "var-1", "quantity": 1}},
	}, nil)

	assert.Equal(t, http.StatusOK, w.Code)
	success, _, code := decodeEnvelope(t, w)
	assert.False(t, success)
	assert.Equal(t, "OUT_OF_STOCK", code)
}

func TestCheckoutHandler_InvalidLine(t *testing.T) {
	handler, _ := setupCheckoutTestHandler()

	w := postJSON(t, handler.Checkout, "/checkout", gin.H{
		"items": []gin.H{{"variant_id": "var-1", "quantity": 0}},
	}, nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
