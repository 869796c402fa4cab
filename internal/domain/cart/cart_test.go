package cart

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/driftwear/storefront/internal/domain/shared/valueobject"
)

func newLine(variantID, size, color string, price float64, qty int) LineItem {
	return LineItem{
		VariantID: variantID,
		Title:     "Test Tee",
		Size:      size,
		Color:     color,
		UnitPrice: valueobject.NewMoneyIDRFromFloat(price),
		Quantity:  qty,
	}
}

func TestCartAddItem(t *testing.T) {
	t.Run("merges lines with identical variant, size and color", func(t *testing.T) {
		c := New()
		c.AddItem(newLine("A", "M", "red", 100, 2))
		c.AddItem(newLine("A", "M", "red", 100, 3))

		items := c.Items()
		require.Len(t, items, 1)
		assert.Equal(t, 5, items[0].Quantity)
	})

	t.Run("keeps separate lines for different size or color", func(t *testing.T) {
		c := New()
		c.AddItem(newLine("A", "M", "red", 100, 1))
		c.AddItem(newLine("A", "L", "red", 100, 1))
		c.AddItem(newLine("A", "M", "black", 100, 1))

		assert.Len(t, c.Items(), 3)
	})

	t.Run("preserves insertion order", func(t *testing.T) {
		c := New()
		c.AddItem(newLine("B", "S", "white", 100, 1))
		c.AddItem(newLine("A", "S", "white", 100, 1))
		c.AddItem(newLine("B", "S", "white", 100, 1))

		items := c.Items()
		require.Len(t, items, 2)
		assert.Equal(t, "B", items[0].VariantID)
		assert.Equal(t, "A", items[1].VariantID)
	})

	t.Run("ignores non-positive quantity", func(t *testing.T) {
		c := New()
		c.AddItem(newLine("A", "M", "red", 100, 0))
		assert.True(t, c.IsEmpty())
	})
}

func TestCartRemoveItem(t *testing.T) {
	c := New()
	c.AddItem(newLine("A", "M", "red", 100, 1))
	c.AddItem(newLine("A", "L", "red", 100, 1))
	c.AddItem(newLine("B", "M", "red", 100, 1))

	c.RemoveItem("A")

	items := c.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "B", items[0].VariantID)
}

func TestCartUpdateQuantity(t *testing.T) {
	t.Run("sets quantity", func(t *testing.T) {
		c := New()
		c.AddItem(newLine("A", "M", "red", 100, 2))
		c.UpdateQuantity("A", 7)
		assert.Equal(t, 7, c.Items()[0].Quantity)
	})

	t.Run("clamps negative to zero and keeps the line", func(t *testing.T) {
		c := New()
		c.AddItem(newLine("A", "M", "red", 100, 2))
		c.UpdateQuantity("A", -3)

		items := c.Items()
		require.Len(t, items, 1)
		assert.Equal(t, 0, items[0].Quantity)
	})
}

func TestCartTotals(t *testing.T) {
	t.Run("total price sums unit price times quantity", func(t *testing.T) {
		c := New()
		c.AddItem(newLine("A", "M", "red", 100, 2))
		c.AddItem(newLine("B", "M", "red", 50, 1))

		assert.True(t, c.TotalPrice().Amount().Equal(decimal.NewFromInt(250)))
		assert.Equal(t, 3, c.TotalItems())
	})

	t.Run("totals reflect latest mutation synchronously", func(t *testing.T) {
		c := New()
		c.AddItem(newLine("A", "M", "red", 100, 2))
		assert.Equal(t, 2, c.TotalItems())

		c.UpdateQuantity("A", 5)
		assert.Equal(t, 5, c.TotalItems())
		assert.True(t, c.TotalPrice().Amount().Equal(decimal.NewFromInt(500)))
	})

	t.Run("empty cart totals are zero", func(t *testing.T) {
		c := New()
		assert.Equal(t, 0, c.TotalItems())
		assert.True(t, c.TotalPrice().IsZero())
	})
}

func TestCartClear(t *testing.T) {
	c := New()
	c.AddItem(newLine("A", "M", "red", 100, 2))
	c.SetRemoteCartID("gid://cart/123")
	c.Show()

	c.Clear()

	assert.True(t, c.IsEmpty())
	assert.Empty(t, c.RemoteCartID())
	assert.False(t, c.Visible())
}
