// Package orders persists the history of placed orders.
package orders

import (
	"context"
	"fmt"
	"slices"

	"github.com/dmitrijs2005/mochamagic/internal/client/models"
	"github.com/dmitrijs2005/mochamagic/internal/client/repositories/jsonkv"
	"github.com/dmitrijs2005/mochamagic/internal/common"
	"github.com/dmitrijs2005/mochamagic/internal/logging"
)

type Repository interface {
	Append(ctx context.Context, o models.Order) error
	// Update replaces the stored order with the same id.
	Update(ctx context.Context, o models.Order) error
	Remove(ctx context.Context, id string) error
	// ForUser returns the user's orders newest first.
	ForUser(ctx context.Context, userID int64) ([]models.Order, error)
}

type KVRepository struct {
	kv  jsonkv.KV
	log logging.Logger
}

func NewKVRepository(kv jsonkv.KV, log logging.Logger) *KVRepository {
	return &KVRepository{kv: kv, log: log}
}

func (r *KVRepository) all(ctx context.Context) ([]models.Order, error) {
	list, _, err := jsonkv.Load[[]models.Order](ctx, r.kv, r.log, common.OrdersKey)
	if err != nil {
		return nil, fmt.Errorf("failed to load orders: %w", err)
	}
	return list, nil
}

func (r *KVRepository) Append(ctx context.Context, o models.Order) error {
	list, err := r.all(ctx)
	if err != nil {
		return err
	}
	return r.save(ctx, append(list, o))
}

func (r *KVRepository) save(ctx context.Context, list []models.Order) error {
	if err := jsonkv.Save(ctx, r.kv, common.OrdersKey, list); err != nil {
		return fmt.Errorf("failed to save orders: %w", err)
	}
	return nil
}

func (r *KVRepository) Update(ctx context.Context, o models.Order) error {
	list, err := r.all(ctx)
	if err != nil {
		return err
	}
	idx := slices.IndexFunc(list, func(x models.Order) bool { return x.ID == o.ID })
	if idx < 0 {
		return fmt.Errorf("%w: %s", common.ErrOrderNotFound, o.ID)
	}
	list[idx] = o
	return r.save(ctx, list)
}

func (r *KVRepository) Remove(ctx context.Context, id string) error {
	list, err := r.all(ctx)
	if err != nil {
		return err
	}
	kept := slices.DeleteFunc(list, func(x models.Order) bool { return x.ID == id })
	return r.save(ctx, kept)
}

func (r *KVRepository) ForUser(ctx context.Context, userID int64) ([]models.Order, error) {
	list, err := r.all(ctx)
	if err != nil {
		return nil, err
	}

	out := []models.Order{}
	for _, o := range slices.Backward(list) {
		if o.UserID == userID {
			out = append(out, o)
		}
	}
	return out, nil
}
