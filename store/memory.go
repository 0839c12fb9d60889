package store

import (
	"context"
	"strings"
	"sync"
)

// MemoryStore is a mutex-guarded in-process Store. Update runs under the
// lock, so it never conflicts. Used by tests and as a single-process
// fallback when no Redis is configured.
type MemoryStore struct {
	mu   sync.Mutex
	data map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string][]byte)}
}

func (s *MemoryStore) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.data[key]
	if !ok {
		return nil, nil
	}
	return append([]byte(nil), b...), nil
}

func (s *MemoryStore) Set(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = append([]byte(nil), value...)
	return nil
}

func (s *MemoryStore) Update(_ context.Context, key string, fn func(old []byte) ([]byte, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	var old []byte
	if b, ok := s.data[key]; ok {
		old = append([]byte(nil), b...)
	}
	next, err := fn(old)
	if err != nil {
		return err
	}
	if next == nil {
		return nil
	}
	s.data[key] = append([]byte(nil), next...)
	return nil
}

func (s *MemoryStore) FlushAll(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for k := range s.data {
		if strings.HasPrefix(k, Prefix) {
			delete(s.data, k)
		}
	}
	return nil
}
