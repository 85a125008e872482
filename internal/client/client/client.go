package client

import (
	"context"

	"github.com/dmitrijs2005/mochamagic/internal/client/models"
)

// Client is the storefront's view of the rewards API.
type Client interface {
	Close() error
	Ping(ctx context.Context) error
	GetRewards(ctx context.Context, token string) (*models.RemoteRewards, error)
}
