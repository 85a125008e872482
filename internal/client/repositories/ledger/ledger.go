// Package ledger persists the append-only record of point movements.
package ledger

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
	// Append adds entries after the existing ones.
	Append(ctx context.Context, entries ...models.LedgerEntry) error
	// ForUser returns the user's entries newest first.
	ForUser(ctx context.Context, userID int64) ([]models.LedgerEntry, error)
}

type KVRepository struct {
	kv  jsonkv.KV
	log logging.Logger
}

func NewKVRepository(kv jsonkv.KV, log logging.Logger) *KVRepository {
	return &KVRepository{kv: kv, log: log}
}

func (r *KVRepository) all(ctx context.Context) ([]models.LedgerEntry, error) {
	entries, _, err := jsonkv.Load[[]models.LedgerEntry](ctx, r.kv, r.log, common.LedgerKey)
	if err != nil {
		return nil, fmt.Errorf("failed to load ledger: %w", err)
	}
	return entries, nil
}

func (r *KVRepository) Append(ctx context.Context, entries ...models.LedgerEntry) error {
	if len(entries) == 0 {
		return nil
	}

	current, err := r.all(ctx)
	if err != nil {
		return err
	}
	current = append(current, entries...)

	if err := jsonkv.Save(ctx, r.kv, common.LedgerKey, current); err != nil {
		return fmt.Errorf("failed to save ledger: %w", err)
	}
	return nil
}

func (r *KVRepository) ForUser(ctx context.Context, userID int64) ([]models.LedgerEntry, error) {
	entries, err := r.all(ctx)
	if err != nil {
		return nil, err
	}

	out := []models.LedgerEntry{}
	for _, e := range slices.Backward(entries) {
		if e.UserID == userID {
			out = append(out, e)
		}
	}
	// appends within one call can share a timestamp; keep their reverse order
	slices.SortStableFunc(out, func(a, b models.LedgerEntry) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})
	return out, nil
}
