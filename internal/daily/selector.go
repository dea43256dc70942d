package daily

import "quote-run-service/internal/domain"

const (
	seedBase       = 123456
	seedMultiplier = 99991

	closerSeedBase       = 777
	closerSeedMultiplier = 1337
)

// desiredTiers is the tier composition of a day's picks.
var desiredTiers = []int{1, 2, 2, 3, 3}

// fallbackCloser is used when the pool ships no closers.
var fallbackCloser = domain.Closer{Quote: "Well, nobody’s perfect.", Source: "Some Like It Hot"}

// Seed returns the generator seed for a day.
func Seed(dayIndex int) uint32 {
	return uint32(int64(seedBase) + int64(dayIndex)*seedMultiplier)
}

// SelectDailySet derives the ordered set of quotes for dayIndex. The result
// holds min(SetSize, len(pool)) quotes with no repeated ids. Pool ids are
// assumed unique.
func SelectDailySet(pool []domain.Quote, dayIndex int) []domain.Quote {
	rng := NewMulberry32(Seed(dayIndex))

	// Groups are shuffled in order of first appearance so the draw sequence is stable.
	var order []int
	byTier := make(map[int][]domain.Quote)
	for _, q := range pool {
		t := q.EffectiveTier()
		if _, ok := byTier[t]; !ok {
			order = append(order, t)
		}
		byTier[t] = append(byTier[t], q)
	}
	for _, t := range order {
		shuffle(rng, byTier[t])
	}

	chosen := make([]domain.Quote, 0, domain.SetSize)
	for _, t := range desiredTiers {
		group := byTier[t]
		if len(group) == 0 {
			continue
		}
		chosen = append(chosen, group[len(group)-1])
		byTier[t] = group[:len(group)-1]
	}

	if len(chosen) < domain.SetSize {
		taken := make(map[string]bool, len(chosen))
		for _, q := range chosen {
			taken[q.ID] = true
		}
		all := append([]domain.Quote(nil), pool...)
		shuffle(rng, all)
		for _, q := range all {
			if len(chosen) == domain.SetSize {
				break
			}
			if taken[q.ID] {
				continue
			}
			taken[q.ID] = true
			chosen = append(chosen, q)
		}
	}

	shuffle(rng, chosen)

	if len(chosen) > 0 && chosen[0].Tier == 4 {
		for i := 1; i < len(chosen); i++ {
			if chosen[i].Tier != 4 {
				chosen[0], chosen[i] = chosen[i], chosen[0]
				break
			}
		}
	}
	return chosen
}

// SetIDs lists the ids of a set in order.
func SetIDs(set []domain.Quote) []string {
	ids := make([]string, len(set))
	for i, q := range set {
		ids[i] = q.ID
	}
	return ids
}

// PickCloser chooses the day's perfect-run closer.
func PickCloser(closers []domain.Closer, dayIndex int) domain.Closer {
	if len(closers) == 0 {
		return fallbackCloser
	}
	rng := NewMulberry32(uint32(int64(closerSeedBase) + int64(dayIndex)*closerSeedMultiplier))
	return closers[rng.Intn(len(closers))]
}
