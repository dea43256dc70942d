package memory

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"quote-run-service/internal/domain"
)

// PoolLoader fetches the quote pool from a backing store (file, document DB).
type PoolLoader interface {
	LoadPool(ctx context.Context, poolID string) (domain.Pool, error)
}

// PoolRepository keeps loaded pools in process memory for ttl. A ttl of zero
// or less disables caching and every call goes to the loader.
//
// Daily selection groups quotes by first appearance in the pool, so callers
// get their own copy of the quote list and can never reorder the cached one.
type PoolRepository struct {
	loader PoolLoader
	ttl    time.Duration
	clock  func() time.Time
	loads  singleflight.Group

	mu    sync.RWMutex
	pools map[string]poolSnapshot
}

type poolSnapshot struct {
	pool    domain.Pool
	staleAt time.Time
}

func NewPoolRepository(loader PoolLoader, ttl time.Duration) *PoolRepository {
	return &PoolRepository{
		loader: loader,
		ttl:    ttl,
		clock:  time.Now,
		pools:  make(map[string]poolSnapshot),
	}
}

func (r *PoolRepository) GetPool(ctx context.Context, poolID string) (domain.Pool, error) {
	if r.ttl <= 0 {
		return r.loader.LoadPool(ctx, poolID)
	}
	if pool, ok := r.fresh(poolID); ok {
		return pool, nil
	}

	// concurrent misses for one pool share a single load
	v, err, _ := r.loads.Do(poolID, func() (interface{}, error) {
		if pool, ok := r.fresh(poolID); ok {
			return pool, nil
		}
		pool, err := r.loader.LoadPool(ctx, poolID)
		if err != nil {
			return domain.Pool{}, err
		}
		snap := poolSnapshot{pool: clonePool(pool), staleAt: r.clock().Add(r.lifetime())}
		r.mu.Lock()
		r.pools[poolID] = snap
		r.mu.Unlock()
		return clonePool(pool), nil
	})
	if err != nil {
		return domain.Pool{}, err
	}
	return v.(domain.Pool), nil
}

func (r *PoolRepository) fresh(poolID string) (domain.Pool, bool) {
	r.mu.RLock()
	snap, ok := r.pools[poolID]
	r.mu.RUnlock()
	if !ok || !r.clock().Before(snap.staleAt) {
		return domain.Pool{}, false
	}
	return clonePool(snap.pool), true
}

// lifetime spreads reloads over ttl..ttl+10% so replicas do not refresh together.
func (r *PoolRepository) lifetime() time.Duration {
	return r.ttl + time.Duration(rand.Int63n(int64(r.ttl/10+1)))
}

func clonePool(p domain.Pool) domain.Pool {
	return domain.Pool{
		Quotes:  append([]domain.Quote(nil), p.Quotes...),
		Closers: append([]domain.Closer(nil), p.Closers...),
	}
}

// StaticPoolLoader serves pools from memory (useful for tests/demos).
type StaticPoolLoader struct {
	pools map[string]domain.Pool
}

func NewStaticPoolLoader(pools map[string]domain.Pool) *StaticPoolLoader {
	return &StaticPoolLoader{pools: pools}
}

func (l *StaticPoolLoader) LoadPool(_ context.Context, poolID string) (domain.Pool, error) {
	if pool, ok := l.pools[poolID]; ok {
		return pool, nil
	}
	return domain.Pool{}, domain.ErrPoolNotFound
}
