package domain

import "time"

// SetSize is the number of quotes in a daily set.
const SetSize = 5

// Quote is a single pool entry. Answers hold the accepted forms of the title.
type Quote struct {
	ID      string   `json:"id"`
	Quote   string   `json:"quote"`
	Tier    int      `json:"tier"`
	Answers []string `json:"answers"`
	Hint1   string   `json:"hint1"`
	Hint2   string   `json:"hint2"`
	Display string   `json:"display"`
	Year    int      `json:"year,omitempty"`
}

// EffectiveTier returns the tier used for selection; untiered quotes count as tier 2.
func (q Quote) EffectiveTier() int {
	if q.Tier == 0 {
		return 2
	}
	return q.Tier
}

// Closer is flavor text shown after a perfect run.
type Closer struct {
	Quote  string `json:"quote"`
	Source string `json:"source"`
}

// Pool is the quote document the daily set is drawn from.
type Pool struct {
	Quotes  []Quote  `json:"pool"`
	Closers []Closer `json:"perfect_closers"`
}

// Find returns the quote with the given id.
func (p Pool) Find(id string) (Quote, bool) {
	for _, q := range p.Quotes {
		if q.ID == id {
			return q, true
		}
	}
	return Quote{}, false
}

// Mark records the outcome of one submission.
type Mark string

const (
	MarkCorrect   Mark = "✅"
	MarkIncorrect Mark = "❌"
)

// RunState is a player's progress for one day-key.
type RunState struct {
	StartedAt    time.Time       `json:"startedAt"`
	CorrectCount int             `json:"correctCount"`
	Marks        []Mark          `json:"marks"`
	HintsUsed    int             `json:"hintsUsed"`
	Hint1Shown   map[string]bool `json:"hint1Shown"`
	Hint2Shown   map[string]bool `json:"hint2Shown"`
	Completed    bool            `json:"completed"`
	CompletedAt  *time.Time      `json:"completedAt"`
	SetIDs       []string        `json:"setIds"`
}

// NewRunState returns an empty run started at now.
func NewRunState(now time.Time) *RunState {
	return &RunState{
		StartedAt:  now,
		Marks:      []Mark{},
		Hint1Shown: make(map[string]bool),
		Hint2Shown: make(map[string]bool),
		SetIDs:     []string{},
	}
}

// Store is the whole persisted object for one player, keyed by day-key.
type Store map[string]*RunState

// YesterdayItem is one line of the previous day's answer reveal.
type YesterdayItem struct {
	Index int    `json:"index"`
	Quote string `json:"quote"`
	Title string `json:"title"`
	Year  int    `json:"year,omitempty"`
}
