package handler

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	appcart "github.com/driftwear/storefront/internal/application/cart"
	cartdomain "github.com/driftwear/storefront/internal/domain/cart"
	"github.com/driftwear/storefront/internal/domain/shared/valueobject"
	"github.com/driftwear/storefront/internal/infrastructure/logger"
	"github.com/driftwear/storefront/internal/interfaces/http/dto"
	"github.com/driftwear/storefront/internal/interfaces/http/middleware"
)

// CartHandler serves cart and stock-validation endpoints.
type CartHandler struct {
	BaseHandler
	service *appcart.Service
}

func NewCartHandler(service *appcart.Service) *CartHandler {
	return &CartHandler{service: service}
}

// AddToCart handles POST /cart/items
// @Summary Add a variant to the platform cart after a live stock check
// @Tags cart
// @Router /api/v1/cart/items [post]
func (h *CartHandler) AddToCart(c *gin.Context) {
	var req AddToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	result, err := h.service.AddToCart(c.Request.Context(), appcart.AddToCartInput{
		VariantID: req.VariantID,
		Quantity:  req.Quantity,
		CartID:    req.CartID,
	})
	if err != nil {
		logger.GetGinLogger(c).Error("add to cart failed", zap.Error(err))
		h.HandleError(c, err)
		return
	}

	if result.Cart == nil {
		h.respondAvailability(c, result.Availability)
		return
	}

	h.Success(c, gin.H{
		"cart_id": result.Cart.ID,
		"cart": RemoteCartResponse{
			ID:            result.Cart.ID,
			CheckoutURL:   result.Cart.CheckoutURL,
			TotalQuantity: result.Cart.TotalQuantity,
		},
	})
}

// ValidateItem handles POST /cart/validate
// @Summary Validate one cart line against live inventory
// @Tags cart
// @Router /api/v1/cart/validate [post]
func (h *CartHandler) ValidateItem(c *gin.Context) {
	var req ValidateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	result, err := h.service.ValidateItem(c.Request.Context(), req.VariantID, req.Quantity)
	if err != nil {
		logger.GetGinLogger(c).Warn("stock validation failed", zap.Error(err))
		h.HandleError(c, err)
		return
	}

	if result.Status == cartdomain.StatusAvailable {
		h.Success(c, nil)
		return
	}
	h.respondAvailability(c, result)
}

// respondAvailability renders a blocked availability verdict as an HTTP 200
// business result.
func (h *CartHandler) respondAvailability(c *gin.Context, result cartdomain.AvailabilityResult) {
	switch result.Status {
	case cartdomain.StatusLowStock:
		h.Result(c, dto.ErrCodeLowStock, "Requested quantity exceeds available stock",
			gin.H{"available_quantity": result.AvailableQuantity})
	case cartdomain.StatusVariantNotFound:
		h.Result(c, dto.ErrCodeVariantNotFound, "Variant not found", nil)
	default:
		h.Result(c, dto.ErrCodeOutOfStock, "Variant is out of stock", nil)
	}
}

// GetCart handles GET /carts/:key
// @Summary Fetch the stored cart for a key
// @Tags cart
// @Router /api/v1/carts/{key} [get]
func (h *CartHandler) GetCart(c *gin.Context) {
	cart, err := h.service.GetCart(c.Request.Context(), c.Param("key"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, toCartResponse(cart))
}

// AddItem handles POST /carts/:key/items
// @Summary Add a line to the stored cart, merging same variant/size/color
// @Tags cart
// @Router /api/v1/carts/{key}/items [post]
func (h *CartHandler) AddItem(c *gin.Context) {
	var req LocalItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	cart, err := h.service.AddItem(c.Request.Context(), c.Param("key"), cartdomain.LineItem{
		VariantID: req.VariantID,
		Title:     req.Title,
		Size:      req.Size,
		Color:     req.Color,
		UnitPrice: valueobject.NewMoneyIDRFromFloat(req.UnitPrice),
		Quantity:  req.Quantity,
		ImageURL:  req.ImageURL,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, toCartResponse(cart))
}

// UpdateQuantity handles PATCH /carts/:key/items/:variant_id
// @Summary Set the quantity of a stored cart line
// @Tags cart
// @Router /api/v1/carts/{key}/items/{variant_id} [patch]
func (h *CartHandler) UpdateQuantity(c *gin.Context) {
	var req UpdateQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	cart, err := h.service.UpdateQuantity(c.Request.Context(), c.Param("key"), c.Param("variant_id"), *req.Quantity)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, toCartResponse(cart))
}

// RemoveItem handles DELETE /carts/:key/items/:variant_id
// @Summary Remove a variant's lines from the stored cart
// @Tags cart
// @Router /api/v1/carts/{key}/items/{variant_id} [delete]
func (h *CartHandler) RemoveItem(c *gin.Context) {
	cart, err := h.service.RemoveItem(c.Request.Context(), c.Param("key"), c.Param("variant_id"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, toCartResponse(cart))
}

// ClearCart handles DELETE /carts/:key
// @Summary Empty the stored cart
// @Tags cart
// @Router /api/v1/carts/{key} [delete]
func (h *CartHandler) ClearCart(c *gin.Context) {
	if err := h.service.ClearCart(c.Request.Context(), c.Param("key")); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, nil)
}

// ValidateCart handles POST /carts/:key/validate
// @Summary Validate every stored cart line against live inventory
// @Tags cart
// @Router /api/v1/carts/{key}/validate [post]
func (h *CartHandler) ValidateCart(c *gin.Context) {
	cart, err := h.service.GetCart(c.Request.Context(), c.Param("key"))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	items := make([]appcart.ValidationItem, 0, len(cart.Items()))
	for _, li := range cart.Items() {
		if li.Quantity <= 0 {
			continue
		}
		items = append(items, appcart.ValidationItem{VariantID: li.VariantID, Quantity: li.Quantity})
	}

	lines, err := h.service.ValidateCart(c.Request.Context(), items)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	type lineResult struct {
		VariantID         string `json:"variant_id"`
		Quantity          int    `json:"quantity"`
		Status            string `json:"status"`
		AvailableQuantity *int   `json:"available_quantity,omitempty"`
	}

	valid := true
	results := make([]lineResult, 0, len(lines))
	for _, line := range lines {
		if line.Result.Status != cartdomain.StatusAvailable {
			valid = false
		}
		results = append(results, lineResult{
			VariantID:         line.VariantID,
			Quantity:          line.Quantity,
			Status:            string(line.Result.Status),
			AvailableQuantity: line.Result.AvailableQuantity,
		})
	}

	h.Success(c, gin.H{"valid": valid, "items": results})
}
