package repositories

import (
	"context"
	"sync"

	"github.com/de-scientist/brandson/app/models"
)

// MemoryCartStore keeps encoded carts in a map. It is used for local
// development and tests.
type MemoryCartStore struct {
	mu    sync.RWMutex
	carts map[string][]byte
}

func NewMemoryCartStore() *MemoryCartStore {
	return &MemoryCartStore{carts: make(map[string][]byte)}
}

func (s *MemoryCartStore) Load(_ context.Context, key string) (*models.CartState, error) {
	s.mu.RLock()
	payload, ok := s.carts[key]
	s.mu.RUnlock()
	if !ok {
		return nil, nil
	}
	return decodeCart(key, payload)
}

func (s *MemoryCartStore) Save(_ context.Context, key string, state models.CartState) error {
	payload, err := encodeCart(state)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.carts[key] = payload
	s.mu.Unlock()
	return nil
}

func (s *MemoryCartStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	delete(s.carts, key)
	s.mu.Unlock()
	return nil
}

// Put stores a raw payload under key, bypassing encoding.
func (s *MemoryCartStore) Put(key string, payload []byte) {
	s.mu.Lock()
	s.carts[key] = payload
	s.mu.Unlock()
}
