package app

import (
	"strings"
	"time"

	"quote-run-service/internal/domain"
	"quote-run-service/internal/match"
)

// Run drives one day's RunState through the daily set. It never touches
// storage; callers persist the state after each successful transition.
type Run struct {
	state   *domain.RunState
	set     []domain.Quote
	matcher match.Matcher
	now     func() time.Time
}

// NewRun resumes state against set. The active quote is derived from the
// number of recorded marks.
func NewRun(state *domain.RunState, set []domain.Quote, matcher match.Matcher, now func() time.Time) *Run {
	if state.Hint1Shown == nil {
		state.Hint1Shown = make(map[string]bool)
	}
	if state.Hint2Shown == nil {
		state.Hint2Shown = make(map[string]bool)
	}
	r := &Run{state: state, set: set, matcher: matcher, now: now}
	// A save can land between the fifth mark and the completion stamp.
	if !state.Completed && len(state.Marks) >= domain.SetSize {
		r.complete()
	}
	return r
}

// State exposes the underlying record.
func (r *Run) State() *domain.RunState {
	return r.state
}

// Index is the number of quotes already answered.
func (r *Run) Index() int {
	return len(r.state.Marks)
}

// Completed reports whether the run is terminal.
func (r *Run) Completed() bool {
	return r.state.Completed
}

// Current returns the quote awaiting an answer.
func (r *Run) Current() (domain.Quote, bool) {
	idx := r.Index()
	if r.state.Completed || idx >= domain.SetSize || idx >= len(r.set) {
		return domain.Quote{}, false
	}
	return r.set[idx], true
}

// HintShown reports whether slot has been revealed for quoteID.
func (r *Run) HintShown(slot int, quoteID string) bool {
	switch slot {
	case 1:
		return r.state.Hint1Shown[quoteID]
	case 2:
		return r.state.Hint2Shown[quoteID]
	}
	return false
}

// RevealHint shows hint slot (1 or 2) for the active quote. The first reveal
// per quote and slot costs one hint; repeats return the text unchanged.
func (r *Run) RevealHint(slot int) (text string, changed bool, err error) {
	if slot != 1 && slot != 2 {
		return "", false, domain.ErrInvalidHintSlot
	}
	if r.state.Completed {
		return "", false, domain.ErrRunCompleted
	}
	q, ok := r.Current()
	if !ok {
		return "", false, domain.ErrNoActiveQuote
	}

	shown := r.state.Hint1Shown
	text = q.Hint1
	if slot == 2 {
		shown = r.state.Hint2Shown
		text = q.Hint2
	}
	if shown[q.ID] {
		return text, false, nil
	}
	shown[q.ID] = true
	r.state.HintsUsed++
	return text, true, nil
}

// Submit scores raw against the active quote and records the mark. Blank
// input is rejected without using a turn. A wrong answer does not end the
// run; it finishes after the fifth submission.
func (r *Run) Submit(raw string) (bool, error) {
	if r.state.Completed {
		return false, domain.ErrRunCompleted
	}
	q, ok := r.Current()
	if !ok {
		return false, domain.ErrNoActiveQuote
	}
	if strings.TrimSpace(raw) == "" {
		return false, domain.ErrEmptyAnswer
	}

	correct := r.matcher.Matches(raw, q)
	if correct {
		r.state.Marks = append(r.state.Marks, domain.MarkCorrect)
		r.state.CorrectCount++
	} else {
		r.state.Marks = append(r.state.Marks, domain.MarkIncorrect)
	}

	if r.Index() >= domain.SetSize {
		r.complete()
	}
	return correct, nil
}

func (r *Run) complete() {
	now := r.now()
	r.state.Completed = true
	r.state.CompletedAt = &now
}
