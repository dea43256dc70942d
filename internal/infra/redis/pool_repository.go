package redis

import (
	"context"
	"encoding/json"
	"math/rand"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"

	"quote-run-service/internal/domain"
	"quote-run-service/internal/infra/memory"
)

// PoolRepository caches the pool document in Redis and falls back to a loader
// on cache miss. The pool is stored as one JSON value because selection
// depends on pool order:
//
//	SET quoterun:pool:{poolID} {json}
//
// A ttl of zero or less disables caching: Redis is neither read nor written
// and every call goes to the loader.
type PoolRepository struct {
	client *redis.Client
	loader memory.PoolLoader
	ttl    time.Duration
	sf     singleflight.Group

	mu  sync.Mutex
	rnd *rand.Rand
}

func NewPoolRepository(client *redis.Client, loader memory.PoolLoader, ttl time.Duration) *PoolRepository {
	return &PoolRepository{
		client: client,
		loader: loader,
		ttl:    ttl,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (r *PoolRepository) GetPool(ctx context.Context, poolID string) (domain.Pool, error) {
	if r.ttl <= 0 {
		return r.loader.LoadPool(ctx, poolID)
	}
	if pool, ok := r.cached(ctx, poolID); ok {
		return pool, nil
	}

	result, err, _ := r.sf.Do(poolID, func() (interface{}, error) {
		// Re-check cache in case another goroutine filled it.
		if pool, ok := r.cached(ctx, poolID); ok {
			return pool, nil
		}

		pool, err := r.loader.LoadPool(ctx, poolID)
		if err != nil {
			return domain.Pool{}, err
		}

		if raw, err := json.Marshal(pool); err == nil {
			_ = r.client.Set(ctx, r.key(poolID), raw, r.ttlWithJitter()).Err()
		}
		return pool, nil
	})
	if err != nil {
		return domain.Pool{}, err
	}
	return result.(domain.Pool), nil
}

func (r *PoolRepository) cached(ctx context.Context, poolID string) (domain.Pool, bool) {
	raw, err := r.client.Get(ctx, r.key(poolID)).Bytes()
	if err != nil {
		return domain.Pool{}, false
	}
	var pool domain.Pool
	if err := json.Unmarshal(raw, &pool); err != nil || len(pool.Quotes) == 0 {
		return domain.Pool{}, false
	}
	return pool, true
}

func (r *PoolRepository) key(poolID string) string {
	return "quoterun:pool:" + poolID
}

func (r *PoolRepository) ttlWithJitter() time.Duration {
	r.mu.Lock()
	defer r.mu.Unlock()
	jitterMax := int64(r.ttl) / 10
	return r.ttl + time.Duration(r.rnd.Int63n(jitterMax+1))
}
