// Package jsonkv reads and writes JSON values under single keys of a
// key-value store. Every repository in the client uses it, so they all treat
// bad stored data the same way.
package jsonkv

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/dmitrijs2005/mochamagic/internal/logging"
)

// KV is the slice of storage.Storage the repositories need.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// Load decodes the value under key and reports whether one was found.
// An absent key or a value that is not valid JSON for T yields the zero T;
// the latter is logged at warn level and otherwise ignored. Only backend
// failures are returned.
func Load[T any](ctx context.Context, kv KV, log logging.Logger, key string) (T, bool, error) {
	var zero T

	data, err := kv.Get(ctx, key)
	if err != nil {
		return zero, false, err
	}
	if data == nil {
		return zero, false, nil
	}

	var out T
	if err := json.Unmarshal(data, &out); err != nil {
		log.Warn(ctx, "ignoring malformed stored value", "key", key, "error", err)
		return zero, false, nil
	}
	return out, true, nil
}

// Save replaces the value under key with the JSON encoding of v.
func Save(ctx context.Context, kv KV, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}
	return kv.Set(ctx, key, data)
}
