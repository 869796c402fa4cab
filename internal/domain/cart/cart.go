// Package cart holds the local shopping-cart aggregate: an ordered list of
// line items plus the id of the remote cart the commerce platform holds for
// the same shopper, once one exists.
package cart

import (
	"github.com/driftwear/storefront/internal/domain/shared/valueobject"
)

// LineItem is one entry in a cart representing a specific variant, quantity
// and price. The merge identity for AddItem is (VariantID, Size, Color).
type LineItem struct {
	VariantID string
	Title     string
	Size      string
	Color     string
	UnitPrice valueobject.Money
	Quantity  int
	ImageURL  string
}

// sameVariant reports whether two line items share the merge identity.
func (li LineItem) sameVariant(other LineItem) bool {
	return li.VariantID == other.VariantID && li.Size == other.Size && li.Color == other.Color
}

// Cart is the local cart state. Items preserve insertion order.
// RemoteCartID is set only after a successful remote create/update and is
// cleared on checkout completion or explicit clear.
type Cart struct {
	items        []LineItem
	remoteCartID string
	visible      bool
}

// New creates an empty cart.
func New() *Cart {
	return &Cart{items: make([]LineItem, 0)}
}

// Items returns a copy of the line items in insertion order.
func (c *Cart) Items() []LineItem {
	out := make([]LineItem, len(c.items))
	copy(out, c.items)
	return out
}

// RemoteCartID returns the remote cart id, or empty if none is held.
func (c *Cart) RemoteCartID() string {
	return c.remoteCartID
}

// SetRemoteCartID records the id of the remote cart after a successful
// create or update on the platform.
func (c *Cart) SetRemoteCartID(id string) {
	c.remoteCartID = id
}

// Visible reports whether the cart panel should be shown.
func (c *Cart) Visible() bool {
	return c.visible
}

// Show makes the cart panel visible.
func (c *Cart) Show() {
	c.visible = true
}

// Hide hides the cart panel.
func (c *Cart) Hide() {
	c.visible = false
}

// AddItem merges the item into an existing line with the same
// (variant, size, color) identity, summing quantities, or appends it.
// Items with non-positive quantity are ignored.
func (c *Cart) AddItem(item LineItem) {
	if item.Quantity <= 0 {
		return
	}
	for i := range c.items {
		if c.items[i].sameVariant(item) {
			c.items[i].Quantity += item.Quantity
			return
		}
	}
	c.items = append(c.items, item)
}

// RemoveItem deletes all lines matching the variant id.
func (c *Cart) RemoveItem(variantID string) {
	kept := c.items[:0]
	for _, li := range c.items {
		if li.VariantID != variantID {
			kept = append(kept, li)
		}
	}
	c.items = kept
}

// UpdateQuantity sets the quantity on all lines matching the variant id.
// The quantity is clamped to >= 0; a resulting 0 line is kept, pruning is
// left to the caller.
func (c *Cart) UpdateQuantity(variantID string, quantity int) {
	if quantity < 0 {
		quantity = 0
	}
	for i := range c.items {
		if c.items[i].VariantID == variantID {
			c.items[i].Quantity = quantity
		}
	}
}

// Clear empties the cart, drops the remote cart id and hides the panel.
func (c *Cart) Clear() {
	c.items = c.items[:0]
	c.remoteCartID = ""
	c.visible = false
}

// TotalItems returns the sum of quantities. It is recomputed on every call
// so it always reflects the latest mutation.
func (c *Cart) TotalItems() int {
	total := 0
	for _, li := range c.items {
		total += li.Quantity
	}
	return total
}

// TotalPrice returns the sum of unit price times quantity across all lines.
// Recomputed on every call, never cached.
func (c *Cart) TotalPrice() valueobject.Money {
	total := valueobject.ZeroIDR()
	for _, li := range c.items {
		total = total.MustAdd(li.UnitPrice.MultiplyByInt(int64(li.Quantity)))
	}
	return total
}

// IsEmpty reports whether the cart holds no lines.
func (c *Cart) IsEmpty() bool {
	return len(c.items) == 0
}
