// Package users persists the registered-user collection and the single
// current session.
package users

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/mochamagic/internal/client/models"
	"github.com/dmitrijs2005/mochamagic/internal/client/repositories/jsonkv"
	"github.com/dmitrijs2005/mochamagic/internal/common"
	"github.com/dmitrijs2005/mochamagic/internal/logging"
)

type Repository interface {
	// ListUsers returns all accounts in registration order.
	ListUsers(ctx context.Context) ([]models.User, error)
	// SaveUsers overwrites the whole collection.
	SaveUsers(ctx context.Context, users []models.User) error
	// GetSession returns the stored session or nil when there is none.
	GetSession(ctx context.Context) (*models.Session, error)
	SetSession(ctx context.Context, s models.Session) error
	ClearSession(ctx context.Context) error
}

type KVRepository struct {
	kv  jsonkv.KV
	log logging.Logger
}

func NewKVRepository(kv jsonkv.KV, log logging.Logger) *KVRepository {
	return &KVRepository{kv: kv, log: log}
}

func (r *KVRepository) ListUsers(ctx context.Context) ([]models.User, error) {
	users, _, err := jsonkv.Load[[]models.User](ctx, r.kv, r.log, common.UsersKey)
	if err != nil {
		return nil, fmt.Errorf("failed to load users: %w", err)
	}
	if users == nil {
		users = []models.User{}
	}
	return users, nil
}

func (r *KVRepository) SaveUsers(ctx context.Context, users []models.User) error {
	if users == nil {
		users = []models.User{}
	}
	if err := jsonkv.Save(ctx, r.kv, common.UsersKey, users); err != nil {
		return fmt.Errorf("failed to save users: %w", err)
	}
	return nil
}

func (r *KVRepository) GetSession(ctx context.Context) (*models.Session, error) {
	s, _, err := jsonkv.Load[*models.Session](ctx, r.kv, r.log, common.CurrentUserKey)
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	return s, nil
}

func (r *KVRepository) SetSession(ctx context.Context, s models.Session) error {
	if err := jsonkv.Save(ctx, r.kv, common.CurrentUserKey, s); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

func (r *KVRepository) ClearSession(ctx context.Context) error {
	if err := r.kv.Delete(ctx, common.CurrentUserKey); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}
