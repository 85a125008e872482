// Package cart persists the ordered cart line items.
package cart

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/mochamagic/internal/client/models"
	"github.com/dmitrijs2005/mochamagic/internal/client/repositories/jsonkv"
	"github.com/dmitrijs2005/mochamagic/internal/common"
	"github.com/dmitrijs2005/mochamagic/internal/logging"
)

type Repository interface {
	Items(ctx context.Context) ([]models.CartItem, error)
	Save(ctx context.Context, items []models.CartItem) error
	Clear(ctx context.Context) error
}

type KVRepository struct {
	kv  jsonkv.KV
	log logging.Logger
}

func NewKVRepository(kv jsonkv.KV, log logging.Logger) *KVRepository {
	return &KVRepository{kv: kv, log: log}
}

func (r *KVRepository) Items(ctx context.Context) ([]models.CartItem, error) {
	items, _, err := jsonkv.Load[[]models.CartItem](ctx, r.kv, r.log, common.CartKey)
	if err != nil {
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}
	if items == nil {
		items = []models.CartItem{}
	}
	return items, nil
}

func (r *KVRepository) Save(ctx context.Context, items []models.CartItem) error {
	if items == nil {
		items = []models.CartItem{}
	}
	if err := jsonkv.Save(ctx, r.kv, common.CartKey, items); err != nil {
		return fmt.Errorf("failed to save cart: %w", err)
	}
	return nil
}

// Clear removes the cart key entirely.
func (r *KVRepository) Clear(ctx context.Context) error {
	if err := r.kv.Delete(ctx, common.CartKey); err != nil {
		return fmt.Errorf("failed to clear cart: %w", err)
	}
	return nil
}
