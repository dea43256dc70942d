package redis

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"quote-run-service/internal/domain"
)

// StateStore is a Redis implementation of app.StateRepository. Each player's
// whole store lives under one key and is rewritten on every save, so the
// last writer wins.
type StateStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewStateStore creates a store; a zero ttl keeps state forever.
func NewStateStore(client *redis.Client, ttl time.Duration) *StateStore {
	return &StateStore{client: client, ttl: ttl}
}

func (s *StateStore) Load(ctx context.Context, playerID string) (domain.Store, error) {
	raw, err := s.client.Get(ctx, s.key(playerID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.Store{}, nil
	}
	if err != nil {
		return nil, err
	}
	store := domain.Store{}
	if err := json.Unmarshal(raw, &store); err != nil {
		log.Printf("discarding corrupt state for %s: %v", playerID, err)
		return domain.Store{}, nil
	}
	return store, nil
}

func (s *StateStore) Save(ctx context.Context, playerID string, store domain.Store) error {
	raw, err := json.Marshal(store)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, s.key(playerID), raw, s.ttl).Err()
}

func (s *StateStore) key(playerID string) string {
	return "quoterun:state:" + playerID
}
