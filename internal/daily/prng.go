package daily

// Mulberry32 is a 32-bit seeded generator. Its output is a pure function of
// the seed and the number of draws, so every instance agrees on a day's set.
type Mulberry32 struct {
	state uint32
}

func NewMulberry32(seed uint32) *Mulberry32 {
	return &Mulberry32{state: seed}
}

// Float64 returns the next value in [0, 1).
func (m *Mulberry32) Float64() float64 {
	m.state += 0x6D2B79F5
	t := m.state
	t = (t ^ (t >> 15)) * (t | 1)
	t ^= t + (t^(t>>7))*(t|61)
	return float64(t^(t>>14)) / 4294967296.0
}

// Intn returns a value in [0, n). n must be positive.
func (m *Mulberry32) Intn(n int) int {
	return int(m.Float64() * float64(n))
}

// shuffle permutes s in place with a Fisher-Yates pass driven by rng.
func shuffle[T any](rng *Mulberry32, s []T) {
	for i := len(s) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		s[i], s[j] = s[j], s[i]
	}
}
