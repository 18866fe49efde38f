package store

import (
	"context"
	"encoding/json"
	"sync"

	"sealbox/internal/domain"
)

// MemStore is an in-memory AccountDataStore.
type MemStore struct {
	mu      sync.RWMutex
	entries map[string]json.RawMessage
}

// NewMemStore returns an empty in-memory store.
func NewMemStore() *MemStore {
	return &MemStore{entries: make(map[string]json.RawMessage)}
}

func (s *MemStore) GetAccountData(_ context.Context, dataType string) (json.RawMessage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	raw, ok := s.entries[dataType]
	if !ok {
		return nil, nil
	}
	out := make(json.RawMessage, len(raw))
	copy(out, raw)
	return out, nil
}

func (s *MemStore) PutAccountData(_ context.Context, dataType string, content any) error {
	b, err := json.Marshal(content)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[dataType] = b
	return nil
}

var _ domain.AccountDataStore = (*MemStore)(nil)
