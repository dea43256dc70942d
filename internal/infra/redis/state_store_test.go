package redis

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"quote-run-service/internal/domain"
)

func TestStateStoreSavesWholeObject(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	store := NewStateStore(client, 0)
	ctx := context.Background()

	state := domain.NewRunState(time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC))
	state.Marks = []domain.Mark{domain.MarkCorrect, domain.MarkIncorrect}
	state.CorrectCount = 1
	state.SetIDs = []string{"a", "b", "c", "d", "e"}
	if err := store.Save(ctx, "p1", domain.Store{"2025-06-01": state}); err != nil {
		t.Fatalf("save: %v", err)
	}
	if !mr.Exists("quoterun:state:p1") {
		t.Fatalf("expected redis key to be set")
	}

	got, err := store.Load(ctx, "p1")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	run := got["2025-06-01"]
	if run == nil || len(run.Marks) != 2 || run.CorrectCount != 1 || len(run.SetIDs) != 5 {
		t.Fatalf("unexpected run after round trip: %+v", run)
	}
}

func TestStateStoreTreatsMissingAndCorruptAsEmpty(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()

	store := NewStateStore(redis.NewClient(&redis.Options{Addr: mr.Addr()}), time.Hour)
	ctx := context.Background()

	got, err := store.Load(ctx, "nobody")
	if err != nil || len(got) != 0 {
		t.Fatalf("expected empty store, got %v (err %v)", got, err)
	}

	if err := mr.Set("quoterun:state:broken", "{not json"); err != nil {
		t.Fatalf("seed corrupt value: %v", err)
	}
	got, err = store.Load(ctx, "broken")
	if err != nil || len(got) != 0 {
		t.Fatalf("expected corrupt state to load empty, got %v (err %v)", got, err)
	}
}
