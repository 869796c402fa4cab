package handler

import (
	cartdomain "github.com/driftwear/storefront/internal/domain/cart"
	"github.com/driftwear/storefront/internal/domain/shared/valueobject"
)

// AddToCartRequest is the body of POST /cart/items.
type AddToCartRequest struct {
	VariantID string `json:"variant_id" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required,gt=0"`
	CartID    string `json:"cart_id"`
}

// ValidateItemRequest is the body of POST /cart/validate.
type ValidateItemRequest struct {
	VariantID string `json:"variant_id" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required,gt=0"`
}

// RemoteCartResponse describes the platform cart returned by add-to-cart.
type RemoteCartResponse struct {
	ID            string `json:"id"`
	CheckoutURL   string `json:"checkout_url,omitempty"`
	TotalQuantity int    `json:"total_quantity"`
}

// LocalItemRequest is the body for adding a line to a stored cart.
type LocalItemRequest struct {
	VariantID string  `json:"variant_id" binding:"required"`
	Title     string  `json:"title" binding:"required"`
	Size      string  `json:"size"`
	Color     string  `json:"color"`
	UnitPrice float64 `json:"unit_price" binding:"gte=0"`
	Quantity  int     `json:"quantity" binding:"required,gt=0"`
	ImageURL  string  `json:"image_url"`
}

// UpdateQuantityRequest is the body for changing a stored line's quantity.
type UpdateQuantityRequest struct {
	Quantity *int `json:"quantity" binding:"required,gte=0"`
}

// CartItemResponse is one stored cart line.
type CartItemResponse struct {
	VariantID string            `json:"variant_id"`
	Title     string            `json:"title"`
	Size      string            `json:"size,omitempty"`
	Color     string            `json:"color,omitempty"`
	UnitPrice valueobject.Money `json:"unit_price"`
	Quantity  int               `json:"quantity"`
	ImageURL  string            `json:"image_url,omitempty"`
}

// CartResponse is the stored cart with derived totals.
type CartResponse struct {
	Items      []CartItemResponse `json:"items"`
	TotalItems int                `json:"total_items"`
	TotalPrice valueobject.Money  `json:"total_price"`
	CartID     string             `json:"cart_id,omitempty"`
}

func toCartResponse(c *cartdomain.Cart) CartResponse {
	items := make([]CartItemResponse, 0, len(c.Items()))
	for _, li := range c.Items() {
		items = append(items, CartItemResponse{
			VariantID: li.VariantID,
			Title:     li.Title,
			Size:      li.Size,
			Color:     li.Color,
			UnitPrice: li.UnitPrice,
			Quantity:  li.Quantity,
			ImageURL:  li.ImageURL,
		})
	}
	return CartResponse{
		Items:      items,
		TotalItems: c.TotalItems(),
		TotalPrice: c.TotalPrice(),
		CartID:     c.RemoteCartID(),
	}
}
