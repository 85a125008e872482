package services

import (
	"context"

	"github.com/dmitrijs2005/mochamagic/internal/client/models"
)

// CartService edits the cart. Every mutation persists at once and then
// reports the new item count to the badge observer.
type CartService interface {
	// Add puts one unit of item in the cart, merging by name.
	Add(ctx context.Context, item models.CartItem) error
	Remove(ctx context.Context, name string) error
	// UpdateQuantity sets the quantity of an existing line; qty <= 0 removes it.
	UpdateQuantity(ctx context.Context, name string, qty int) error
	Items(ctx context.Context) ([]models.CartItem, error)
	TotalCount(ctx context.Context) (int, error)
	TotalPrice(ctx context.Context) (float64, error)
	Clear(ctx context.Context) error
	// RefreshBadge pushes the current count to the observer.
	RefreshBadge(ctx context.Context) error
}

type cartService struct {
	d     Deps
	badge func(count int)
}

// NewCartService returns a CartService. badge may be nil.
func NewCartService(d Deps, badge func(count int)) CartService {
	if badge == nil {
		badge = func(int) {}
	}
	return &cartService{d: d.withDefaults(), badge: badge}
}

func (c *cartService) Items(ctx context.Context) ([]models.CartItem, error) {
	return c.d.Cart.Items(ctx)
}

func (c *cartService) Add(ctx context.Context, item models.CartItem) error {
	items, err := c.d.Cart.Items(ctx)
	if err != nil {
		return err
	}

	found := false
	for i := range items {
		if items[i].Name == item.Name {
			items[i].Quantity++
			found = true
			break
		}
	}
	if !found {
		item.Quantity = 1
		items = append(items, item)
	}

	if err := c.d.Cart.Save(ctx, items); err != nil {
		return err
	}
	return c.RefreshBadge(ctx)
}

func (c *cartService) Remove(ctx context.Context, name string) error {
	items, err := c.d.Cart.Items(ctx)
	if err != nil {
		return err
	}

	kept := items[:0]
	for _, it := range items {
		if it.Name != name {
			kept = append(kept, it)
		}
	}

	if err := c.d.Cart.Save(ctx, kept); err != nil {
		return err
	}
	return c.RefreshBadge(ctx)
}

func (c *cartService) UpdateQuantity(ctx context.Context, name string, qty int) error {
	items, err := c.d.Cart.Items(ctx)
	if err != nil {
		return err
	}

	for i := range items {
		if items[i].Name != name {
			continue
		}
		if qty <= 0 {
			return c.Remove(ctx, name)
		}
		items[i].Quantity = qty
		if err := c.d.Cart.Save(ctx, items); err != nil {
			return err
		}
		break
	}

	return c.RefreshBadge(ctx)
}

func (c *cartService) TotalCount(ctx context.Context) (int, error) {
	items, err := c.d.Cart.Items(ctx)
	if err != nil {
		return 0, err
	}
	total := 0
	for _, it := range items {
		total += it.Quantity
	}
	return total, nil
}

func (c *cartService) TotalPrice(ctx context.Context) (float64, error) {
	items, err := c.d.Cart.Items(ctx)
	if err != nil {
		return 0, err
	}
	return subtotal(items), nil
}

func subtotal(items []models.CartItem) float64 {
	var total float64
	for _, it := range items {
		total += it.Subtotal()
	}
	return total
}

func (c *cartService) Clear(ctx context.Context) error {
	if err := c.d.Cart.Clear(ctx); err != nil {
		return err
	}
	return c.RefreshBadge(ctx)
}

func (c *cartService) RefreshBadge(ctx context.Context) error {
	n, err := c.TotalCount(ctx)
	if err != nil {
		return err
	}
	c.badge(n)
	return nil
}
