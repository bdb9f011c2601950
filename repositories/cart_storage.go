package repositories

import (
	"context"
	"sync"
)

// CartStorage persists serialized carts under a key. Get returns nil data
// and a nil error when the key has never been written or was cleared.
type CartStorage interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, data []byte) error
	Clear(ctx context.Context, key string) error
}

type MemoryCartStorage struct {
	mu    sync.RWMutex
	carts map[string][]byte
}

func NewMemoryCartStorage() *MemoryCartStorage {
	return &MemoryCartStorage{carts: make(map[string][]byte)}
}

func (s *MemoryCartStorage) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	data, ok := s.carts[key]
	if !ok {
		return nil, nil
	}
	out := make([]byte, len(data))
	copy(out, data)
	return out, nil
}

func (s *MemoryCartStorage) Set(_ context.Context, key string, data []byte) error {
	buf := make([]byte, len(data))
	copy(buf, data)
	s.mu.Lock()
	s.carts[key] = buf
	s.mu.Unlock()
	return nil
}

func (s *MemoryCartStorage) Clear(_ context.Context, key string) error {
	s.mu.Lock()
	delete(s.carts, key)
	s.mu.Unlock()
	return nil
}
