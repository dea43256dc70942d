package memory

import (
	"context"
	"encoding/json"
	"log"
	"sync"

	"quote-run-service/internal/domain"
)

// StateStore is an in-memory implementation of app.StateRepository. Stores
// are kept serialized so callers never share maps with the repository.
type StateStore struct {
	mu     sync.RWMutex
	stores map[string][]byte
}

func NewStateStore() *StateStore {
	return &StateStore{
		stores: make(map[string][]byte),
	}
}

func (s *StateStore) Load(_ context.Context, playerID string) (domain.Store, error) {
	s.mu.RLock()
	raw, ok := s.stores[playerID]
	s.mu.RUnlock()
	if !ok {
		return domain.Store{}, nil
	}
	store := domain.Store{}
	if err := json.Unmarshal(raw, &store); err != nil {
		log.Printf("discarding corrupt state for %s: %v", playerID, err)
		return domain.Store{}, nil
	}
	return store, nil
}

func (s *StateStore) Save(_ context.Context, playerID string, store domain.Store) error {
	raw, err := json.Marshal(store)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stores[playerID] = raw
	return nil
}
