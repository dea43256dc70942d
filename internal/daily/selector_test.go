package daily

import (
	"fmt"
	"reflect"
	"testing"

	"quote-run-service/internal/domain"
)

func TestSelectDailySetIsDeterministic(t *testing.T) {
	pool := tieredPool(map[int]int{1: 6, 2: 8, 3: 8, 4: 4})

	for day := 0; day < 30; day++ {
		a := SelectDailySet(pool, day)
		b := SelectDailySet(pool, day)
		if !reflect.DeepEqual(SetIDs(a), SetIDs(b)) {
			t.Fatalf("day %d: expected identical sets, got %v and %v", day, SetIDs(a), SetIDs(b))
		}
	}
}

func TestSelectDailySetSizeAndUniqueness(t *testing.T) {
	pool := tieredPool(map[int]int{1: 3, 2: 4, 3: 4})

	for day := 0; day < 100; day++ {
		set := SelectDailySet(pool, day)
		if len(set) != domain.SetSize {
			t.Fatalf("day %d: expected %d quotes, got %d", day, domain.SetSize, len(set))
		}
		seen := make(map[string]bool)
		for _, q := range set {
			if seen[q.ID] {
				t.Fatalf("day %d: duplicate id %s", day, q.ID)
			}
			seen[q.ID] = true
		}
	}
}

func TestSelectDailySetFollowsTierComposition(t *testing.T) {
	pool := tieredPool(map[int]int{1: 5, 2: 5, 3: 5, 4: 5})

	set := SelectDailySet(pool, 12)
	counts := make(map[int]int)
	for _, q := range set {
		counts[q.Tier]++
	}
	want := map[int]int{1: 1, 2: 2, 3: 2}
	if !reflect.DeepEqual(counts, want) {
		t.Fatalf("expected tier counts %v, got %v", want, counts)
	}
}

func TestSelectDailySetRepairsMissingTier(t *testing.T) {
	// No tier 3 at all: two slots must come from the repair pass.
	pool := tieredPool(map[int]int{1: 3, 2: 3})

	for day := 0; day < 20; day++ {
		set := SelectDailySet(pool, day)
		if len(set) != domain.SetSize {
			t.Fatalf("day %d: expected repair to fill %d slots, got %d", day, domain.SetSize, len(set))
		}
	}
}

func TestSelectDailySetFirstIsNotTierFour(t *testing.T) {
	// Mostly tier 4 so the repair pass fills with hard quotes.
	pool := tieredPool(map[int]int{1: 1, 4: 10})

	for day := 0; day < 200; day++ {
		set := SelectDailySet(pool, day)
		if set[0].Tier == 4 {
			t.Fatalf("day %d: first quote is tier 4 although tier 1 is in the set: %v", day, SetIDs(set))
		}
	}
}

func TestSelectDailySetAllTierFourKeepsOrder(t *testing.T) {
	pool := tieredPool(map[int]int{4: 6})

	set := SelectDailySet(pool, 3)
	if len(set) != domain.SetSize {
		t.Fatalf("expected %d quotes, got %d", domain.SetSize, len(set))
	}
}

func TestSelectDailySetSmallPool(t *testing.T) {
	pool := tieredPool(map[int]int{1: 1, 2: 2})

	set := SelectDailySet(pool, 0)
	if len(set) != 3 {
		t.Fatalf("expected all 3 quotes, got %d", len(set))
	}
	if got := SelectDailySet(nil, 0); len(got) != 0 {
		t.Fatalf("expected empty set for empty pool, got %d", len(got))
	}
}

func TestSelectDailySetDoesNotMutatePool(t *testing.T) {
	pool := tieredPool(map[int]int{1: 3, 2: 3, 3: 3})
	before := SetIDs(pool)

	_ = SelectDailySet(pool, 5)
	if !reflect.DeepEqual(before, SetIDs(pool)) {
		t.Fatalf("pool order changed by selection")
	}
}

func TestSelectDailySetVariesAcrossDays(t *testing.T) {
	pool := tieredPool(map[int]int{1: 10, 2: 10, 3: 10})

	distinct := make(map[string]bool)
	for day := 0; day < 10; day++ {
		distinct[fmt.Sprint(SetIDs(SelectDailySet(pool, day)))] = true
	}
	if len(distinct) < 5 {
		t.Fatalf("expected visible variety across days, got %d distinct sets", len(distinct))
	}
}

func TestUntieredQuotesCountAsTierTwo(t *testing.T) {
	pool := []domain.Quote{
		{ID: "a", Tier: 1},
		{ID: "b"},
		{ID: "c"},
		{ID: "d", Tier: 3},
		{ID: "e", Tier: 3},
	}

	set := SelectDailySet(pool, 9)
	if len(set) != 5 {
		t.Fatalf("expected every quote to be picked, got %v", SetIDs(set))
	}
}

func TestPickCloser(t *testing.T) {
	closers := []domain.Closer{{Quote: "a"}, {Quote: "b"}, {Quote: "c"}}
	if PickCloser(closers, 4) != PickCloser(closers, 4) {
		t.Fatalf("expected stable closer per day")
	}
	if got := PickCloser(nil, 4); got != fallbackCloser {
		t.Fatalf("expected fallback closer, got %+v", got)
	}
}

func tieredPool(counts map[int]int) []domain.Quote {
	var pool []domain.Quote
	for tier := 1; tier <= 4; tier++ {
		for i := 0; i < counts[tier]; i++ {
			pool = append(pool, domain.Quote{ID: fmt.Sprintf("t%d-%d", tier, i), Tier: tier})
		}
	}
	return pool
}
