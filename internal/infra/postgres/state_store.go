package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"quote-run-service/internal/domain"
)

// StateStore keeps each player's whole store as one JSONB row.
type StateStore struct {
	pool *pgxpool.Pool
}

func NewStateStore(pool *pgxpool.Pool) *StateStore {
	return &StateStore{pool: pool}
}

func (s *StateStore) Load(ctx context.Context, playerID string) (domain.Store, error) {
	var raw []byte
	err := s.pool.QueryRow(ctx, `SELECT data FROM player_states WHERE player_id=$1`, playerID).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Store{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load state: %w", err)
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
	_, err = s.pool.Exec(ctx, `
INSERT INTO player_states (player_id, data, updated_at) VALUES ($1, $2::jsonb, now())
ON CONFLICT (player_id) DO UPDATE SET data = EXCLUDED.data, updated_at = EXCLUDED.updated_at`,
		playerID, string(raw))
	if err != nil {
		return fmt.Errorf("save state: %w", err)
	}
	return nil
}
