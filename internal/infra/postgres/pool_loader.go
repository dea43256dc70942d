package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"quote-run-service/internal/domain"
)

// PoolLoader loads the pool JSONB document from Postgres.
type PoolLoader struct {
	pool *pgxpool.Pool
}

func NewPoolLoader(pool *pgxpool.Pool) *PoolLoader {
	return &PoolLoader{pool: pool}
}

func (l *PoolLoader) LoadPool(ctx context.Context, poolID string) (domain.Pool, error) {
	var raw []byte
	err := l.pool.QueryRow(ctx, `SELECT data FROM quote_pools WHERE id=$1`, poolID).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Pool{}, fmt.Errorf("%w: %s", domain.ErrPoolNotFound, poolID)
	}
	if err != nil {
		return domain.Pool{}, fmt.Errorf("load pool: %w", err)
	}
	var pool domain.Pool
	if err := json.Unmarshal(raw, &pool); err != nil {
		return domain.Pool{}, fmt.Errorf("unmarshal pool: %w", err)
	}
	return pool, nil
}

// SavePool upserts a pool document.
func (l *PoolLoader) SavePool(ctx context.Context, poolID string, pool domain.Pool) error {
	raw, err := json.Marshal(pool)
	if err != nil {
		return err
	}
	_, err = l.pool.Exec(ctx,
		`INSERT INTO quote_pools (id, data) VALUES ($1, $2::jsonb) ON CONFLICT (id) DO UPDATE SET data=EXCLUDED.data`,
		poolID, string(raw))
	if err != nil {
		return fmt.Errorf("save pool: %w", err)
	}
	return nil
}
