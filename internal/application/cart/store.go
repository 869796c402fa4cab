package cart

import (
	"context"
	"errors"

	"go.uber.org/zap"

	cartdomain "github.com/driftwear/storefront/internal/domain/cart"
	"github.com/driftwear/storefront/internal/domain/shared"
)

// GetCart loads the persisted cart for a key. A key with no stored snapshot
// yields a fresh empty cart, not an error; carts come into existence on
// first write.
func (s *Service) GetCart(ctx context.Context, key string) (*cartdomain.Cart, error) {
	if key == "" {
		return nil, shared.ErrInvalidInput
	}
	return s.loadCart(ctx, key)
}

// AddItem adds a line to the locally persisted cart, merging with an
// existing line for the same variant, size and color.
func (s *Service) AddItem(ctx context.Context, key string, item cartdomain.LineItem) (*cartdomain.Cart, error) {
	return s.mutateCart(ctx, key, func(c *cartdomain.Cart) {
		c.AddItem(item)
		c.Show()
	})
}

// UpdateQuantity sets the quantity on every line carrying the variant.
func (s *Service) UpdateQuantity(ctx context.Context, key, variantID string, quantity int) (*cartdomain.Cart, error) {
	return s.mutateCart(ctx, key, func(c *cartdomain.Cart) {
		c.UpdateQuantity(variantID, quantity)
	})
}

// RemoveItem drops every line carrying the variant.
func (s *Service) RemoveItem(ctx context.Context, key, variantID string) (*cartdomain.Cart, error) {
	return s.mutateCart(ctx, key, func(c *cartdomain.Cart) {
		c.RemoveItem(variantID)
	})
}

// ClearCart empties the cart and forgets its remote counterpart.
func (s *Service) ClearCart(ctx context.Context, key string) error {
	if key == "" {
		return shared.ErrInvalidInput
	}
	if err := s.carts.Delete(ctx, key); err != nil && !errors.Is(err, shared.ErrNotFound) {
		return err
	}
	return nil
}

func (s *Service) loadCart(ctx context.Context, key string) (*cartdomain.Cart, error) {
	snap, err := s.carts.Load(ctx, key)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return cartdomain.New(), nil
		}
		return nil, err
	}
	return cartdomain.Restore(snap), nil
}

func (s *Service) mutateCart(ctx context.Context, key string, mutate func(*cartdomain.Cart)) (*cartdomain.Cart, error) {
	if key == "" {
		return nil, shared.ErrInvalidInput
	}

	c, err := s.loadCart(ctx, key)
	if err != nil {
		return nil, err
	}

	mutate(c)

	if err := s.carts.Save(ctx, key, cartdomain.TakeSnapshot(c)); err != nil {
		s.logger.Error("cart save failed", zap.String("cart_key", key), zap.Error(err))
		return nil, err
	}
	return c, nil
}
