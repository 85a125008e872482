// Package memory is a process-local Storage backend, used by tests and by
// throwaway sessions that need no persistence.
package memory

import (
	"context"
	"sync"
)

type Store struct {
	mu   sync.RWMutex
	data map[string][]byte
}

func New() *Store {
	return &Store{data: make(map[string][]byte)}
}

func (s *Store) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.data[key]
	if !ok {
		return nil, nil
	}
	return clone(v), nil
}

func (s *Store) Set(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	s.data[key] = clone(value)
	s.mu.Unlock()
	return nil
}

func (s *Store) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	delete(s.data, key)
	s.mu.Unlock()
	return nil
}

func (s *Store) List(_ context.Context) (map[string][]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[string][]byte, len(s.data))
	for k, v := range s.data {
		out[k] = clone(v)
	}
	return out, nil
}

func (s *Store) Clear(_ context.Context) error {
	s.mu.Lock()
	clear(s.data)
	s.mu.Unlock()
	return nil
}

func (s *Store) Close() error { return nil }

// clone keeps callers from mutating stored bytes through a shared slice.
func clone(b []byte) []byte {
	if b == nil {
		return []byte{}
	}
	out := make([]byte, len(b))
	copy(out, b)
	return out
}
