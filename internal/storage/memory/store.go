package memory

import (
	"context"
	"sync"

	"github.com/Lixing-Zhang/foodie-express/internal/storage"
)

var _ storage.KeyValueStore = (*Store)(nil)

// Store keeps snapshots in process memory. Values are copied on the way in
// and out so callers cannot alias stored bytes.
type Store struct {
	mu sync.RWMutex
	m  map[string][]byte
}

// New creates an empty store
func New() *Store {
	return &Store{m: make(map[string][]byte)}
}

// Load returns a copy of the value under key, or storage.ErrNotFound
func (s *Store) Load(_ context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.m[key]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return append([]byte(nil), v...), nil
}

// Save stores a copy of data under key
func (s *Store) Save(_ context.Context, key string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.m[key] = append([]byte(nil), data...)
	return nil
}

// Delete removes key; missing keys are ignored
func (s *Store) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.m, key)
	return nil
}
