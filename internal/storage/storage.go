// Package storage defines the key-value store that holds all persisted
// storefront state and opens one of its backends by name.
//
// A Storage behaves like browser local storage: string keys, opaque values,
// whole-value overwrites. Get returns (nil, nil) for an absent key and Delete
// of an absent key is not an error.
package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/mochamagic/internal/storage/memory"
	"github.com/dmitrijs2005/mochamagic/internal/storage/postgres"
	"github.com/dmitrijs2005/mochamagic/internal/storage/s3store"
	"github.com/dmitrijs2005/mochamagic/internal/storage/sqlite"
)

type Storage interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	List(ctx context.Context) (map[string][]byte, error)
	Clear(ctx context.Context) error
	Close() error
}

const (
	BackendMemory   = "memory"
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
	BackendS3       = "s3"
)

var ErrUnknownBackend = errors.New("unknown storage backend")

// Config selects a backend and carries the settings each backend needs.
type Config struct {
	Backend     string         `json:"backend"`
	SQLitePath  string         `json:"sqlite_path"`
	PostgresDSN string         `json:"postgres_dsn"`
	S3          s3store.Config `json:"s3"`
}

// Merge overlays the non-empty fields of o onto c.
func (c *Config) Merge(o Config) {
	overlay(&c.Backend, o.Backend)
	overlay(&c.SQLitePath, o.SQLitePath)
	overlay(&c.PostgresDSN, o.PostgresDSN)
	overlay(&c.S3.Bucket, o.S3.Bucket)
	overlay(&c.S3.Prefix, o.S3.Prefix)
	overlay(&c.S3.Region, o.S3.Region)
	overlay(&c.S3.BaseEndpoint, o.S3.BaseEndpoint)
	overlay(&c.S3.AccessKey, o.S3.AccessKey)
	overlay(&c.S3.SecretKey, o.S3.SecretKey)
	c.S3.UsePathStyle = c.S3.UsePathStyle || o.S3.UsePathStyle
}

func overlay(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

// Open returns a ready-to-use Storage. SQL backends have their schema
// migrated before Open returns.
func Open(ctx context.Context, cfg Config) (Storage, error) {
	switch cfg.Backend {
	case BackendMemory, "":
		return memory.New(), nil
	case BackendSQLite:
		return checked(sqlite.Open(ctx, cfg.SQLitePath))
	case BackendPostgres:
		return checked(postgres.Open(ctx, cfg.PostgresDSN))
	case BackendS3:
		return checked(s3store.Open(ctx, cfg.S3))
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, cfg.Backend)
	}
}

// checked keeps a typed nil pointer from escaping as a non-nil Storage.
func checked[T Storage](s T, err error) (Storage, error) {
	if err != nil {
		return nil, err
	}
	return s, nil
}
