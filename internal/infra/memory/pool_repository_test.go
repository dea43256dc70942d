package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"quote-run-service/internal/domain"
)

func TestPoolRepositoryCaches(t *testing.T) {
	loader := &countingLoader{
		PoolLoader: NewStaticPoolLoader(map[string]domain.Pool{
			"default": samplePool(),
		}),
	}
	repo := NewPoolRepository(loader, time.Minute)

	if _, err := repo.GetPool(context.Background(), "default"); err != nil {
		t.Fatalf("get pool: %v", err)
	}
	if loader.calls != 1 {
		t.Fatalf("expected loader once, got %d", loader.calls)
	}

	if _, err := repo.GetPool(context.Background(), "default"); err != nil {
		t.Fatalf("get pool 2: %v", err)
	}
	if loader.calls != 1 {
		t.Fatalf("expected cache hit, loader calls %d", loader.calls)
	}
}

func TestPoolRepositoryReloadsAfterExpiry(t *testing.T) {
	loader := &countingLoader{
		PoolLoader: NewStaticPoolLoader(map[string]domain.Pool{"default": samplePool()}),
	}
	repo := NewPoolRepository(loader, time.Minute)
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	repo.clock = func() time.Time { return now }

	_, _ = repo.GetPool(context.Background(), "default")
	now = now.Add(2 * time.Minute)
	_, _ = repo.GetPool(context.Background(), "default")
	if loader.calls != 2 {
		t.Fatalf("expected reload after ttl, loader calls %d", loader.calls)
	}
}

func TestStaticPoolLoaderUnknownPool(t *testing.T) {
	_, err := NewStaticPoolLoader(nil).LoadPool(context.Background(), "missing")
	if !errors.Is(err, domain.ErrPoolNotFound) {
		t.Fatalf("expected pool not found, got %v", err)
	}
}

type countingLoader struct {
	PoolLoader
	calls int
}

func (l *countingLoader) LoadPool(ctx context.Context, poolID string) (domain.Pool, error) {
	l.calls++
	return l.PoolLoader.LoadPool(ctx, poolID)
}

func samplePool() domain.Pool {
	return domain.Pool{
		Quotes: []domain.Quote{
			{ID: "q1", Quote: "Here's looking at you, kid.", Tier: 1, Answers: []string{"casablanca"}, Display: "Casablanca", Year: 1942},
		},
	}
}

func TestPoolRepositoryZeroTTLAlwaysLoads(t *testing.T) {
	loader := &countingLoader{
		PoolLoader: NewStaticPoolLoader(map[string]domain.Pool{"default": samplePool()}),
	}
	repo := NewPoolRepository(loader, 0)

	for i := 0; i < 3; i++ {
		if _, err := repo.GetPool(context.Background(), "default"); err != nil {
			t.Fatalf("get pool %d: %v", i, err)
		}
	}
	if loader.calls != 3 {
		t.Fatalf("expected a load per call without ttl, got %d", loader.calls)
	}
}

func TestPoolRepositoryCachedOrderIsIsolated(t *testing.T) {
	pool := samplePool()
	pool.Quotes = append(pool.Quotes, domain.Quote{ID: "q2", Quote: "Rosebud.", Answers: []string{"citizen kane"}})
	repo := NewPoolRepository(NewStaticPoolLoader(map[string]domain.Pool{"default": pool}), time.Minute)

	first, err := repo.GetPool(context.Background(), "default")
	if err != nil {
		t.Fatalf("get pool: %v", err)
	}
	first.Quotes[0], first.Quotes[1] = first.Quotes[1], first.Quotes[0]

	again, _ := repo.GetPool(context.Background(), "default")
	if again.Quotes[0].ID != "q1" || again.Quotes[1].ID != "q2" {
		t.Fatalf("expected cached pool order untouched, got %s,%s", again.Quotes[0].ID, again.Quotes[1].ID)
	}
}
