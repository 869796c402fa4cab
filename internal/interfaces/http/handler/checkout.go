package handler

import (
	"errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	appcart "github.com/driftwear/storefront/internal/application/cart"
	"github.com/driftwear/storefront/internal/domain/shared"
	"github.com/driftwear/storefront/internal/infrastructure/logger"
	"github.com/driftwear/storefront/internal/interfaces/http/dto"
	"github.com/driftwear/storefront/internal/interfaces/http/middleware"
)

// CheckoutHandler initiates checkout sessions on the commerce platform.
type CheckoutHandler struct {
	BaseHandler
	service *appcart.Service
}

func NewCheckoutHandler(service *appcart.Service) *CheckoutHandler {
	return &CheckoutHandler{service: service}
}

type CheckoutRequest struct {
	Items  []CheckoutLineRequest `json:"items" binding:"required,dive"`
	CartID string                `json:"cart_id"`
}

type CheckoutLineRequest struct {
	VariantID string `json:"variant_id" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required,gt=0"`
}

type CheckoutResponse struct {
	CheckoutURL string `json:"checkout_url"`
	CheckoutID  string `json:"checkout_id"`
}

// Checkout handles POST /checkout
// @Summary Create a checkout session and return its hosted URL
// @Tags checkout
// @Router /api/v1/checkout [post]
func (h *CheckoutHandler) Checkout(c *gin.Context) {
	var req CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	lines := make([]appcart.CheckoutLine, 0, len(req.Items))
	for _, item := range req.Items {
		lines = append(lines, appcart.CheckoutLine{
			VariantID: item.VariantID,
			Quantity:  item.Quantity,
		})
	}

	result, err := h.service.Checkout(c.Request.Context(), appcart.CheckoutInput{
		Items:       lines,
		CartID:      req.CartID,
		CountryCode: c.GetHeader("X-Country-Code"),
	})
	if err != nil {
		if errors.Is(err, shared.ErrOutOfStock) {
			h.Result(c, dto.ErrCodeOutOfStock, "An item in the cart is out of stock", nil)
			return
		}
		logger.GetGinLogger(c).Error("checkout failed",
			zap.String("cart_id", req.CartID),
			zap.Int("lines", len(lines)),
			zap.Error(err))
		h.HandleError(c, err)
		return
	}

	h.Success(c, CheckoutResponse{
		CheckoutURL: result.CheckoutURL,
		CheckoutID:  result.CheckoutID,
	})
}
