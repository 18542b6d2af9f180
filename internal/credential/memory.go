package credential

import (
	"context"
	"sync"
)

// MemoryStore keeps the key in process memory. It is the fake used in tests.
type MemoryStore struct {
	mu  sync.RWMutex
	key *string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Get(_ context.Context) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.key == nil {
		return "", false, nil
	}
	return *s.key, true, nil
}

func (s *MemoryStore) Set(_ context.Context, key string) error {
	if err := checkKey(key); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.key = &key
	return nil
}
