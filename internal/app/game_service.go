package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"quote-run-service/internal/daily"
	"quote-run-service/internal/domain"
	"quote-run-service/internal/match"
)

const (
	StatusEmptyAnswer = "Type a movie name first."
	StatusCorrect     = "Correct."
	StatusIncorrect   = "Not quite."
)

// StateRepository persists a player's whole Store. Load returns an empty
// store for unknown players; Save replaces the stored object.
type StateRepository interface {
	Load(ctx context.Context, playerID string) (domain.Store, error)
	Save(ctx context.Context, playerID string, store domain.Store) error
}

// PoolRepository loads the quote pool (from cache/backing store).
type PoolRepository interface {
	GetPool(ctx context.Context, poolID string) (domain.Pool, error)
}

// Options tunes a GameService.
type Options struct {
	PoolID   string
	Calendar daily.Calendar
	Matcher  match.Matcher
	PlayURL  string
	// Now defaults to time.Now.
	Now func() time.Time
}

// GameService contains the daily run use cases.
type GameService struct {
	states StateRepository
	pools  PoolRepository
	opts   Options
}

func NewGameService(states StateRepository, pools PoolRepository, opts Options) *GameService {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.PlayURL == "" {
		opts.PlayURL = DefaultPlayURL
	}
	return &GameService{states: states, pools: pools, opts: opts}
}

// Calendar returns the calendar the service derives days from.
func (s *GameService) Calendar() daily.Calendar {
	return s.opts.Calendar
}

// DailySet returns the set for the given day-key. It is what every player
// sees that day.
func (s *GameService) DailySet(ctx context.Context, dayKey string) (int, []domain.Quote, error) {
	dayIndex, err := s.opts.Calendar.DayIndexForKey(dayKey)
	if err != nil {
		return 0, nil, err
	}
	pool, err := s.pools.GetPool(ctx, s.opts.PoolID)
	if err != nil {
		return 0, nil, err
	}
	return dayIndex, daily.SelectDailySet(pool.Quotes, dayIndex), nil
}

// Open starts or resumes today's run for playerID. A missing store is treated
// as empty. When the store cannot be loaded the session plays in memory and
// never saves, so the stored history is left untouched. A pool that cannot be
// loaded is fatal.
func (s *GameService) Open(ctx context.Context, playerID string) (*Session, error) {
	pool, err := s.pools.GetPool(ctx, s.opts.PoolID)
	if err != nil {
		return nil, fmt.Errorf("load pool: %w", err)
	}

	now := s.opts.Now()
	cal := s.opts.Calendar
	dayIndex := cal.DayIndex(now)
	set := daily.SelectDailySet(pool.Quotes, dayIndex)
	if len(set) < domain.SetSize {
		return nil, domain.ErrPoolTooSmall
	}

	store, err := s.states.Load(ctx, playerID)
	readOnly := err != nil
	if readOnly {
		log.Printf("state load failed for %s, playing in memory without saving: %v", playerID, err)
		store = nil
	}
	if store == nil {
		store = make(domain.Store)
	}

	dayKey := cal.DayKey(now)
	state, ok := store[dayKey]
	if !ok || state == nil {
		state = domain.NewRunState(now)
		store[dayKey] = state
	}
	state.SetIDs = daily.SetIDs(set)

	session := &Session{
		playerID:     playerID,
		dayKey:       dayKey,
		yesterdayKey: cal.YesterdayKey(now),
		dayIndex:     dayIndex,
		pool:         pool,
		set:          set,
		store:        store,
		run:          NewRun(state, set, s.opts.Matcher, s.opts.Now),
		states:       s.states,
		playURL:      s.opts.PlayURL,
		saveDisabled: readOnly,
	}
	session.persist(ctx)
	return session, nil
}

// Session is one player's context for one day: the pool, the day's set, the
// whole persisted store and the run being played.
type Session struct {
	mu           sync.Mutex
	playerID     string
	dayKey       string
	yesterdayKey string
	dayIndex     int
	pool         domain.Pool
	set          []domain.Quote
	store        domain.Store
	run          *Run
	states       StateRepository
	playURL      string
	// set when the store failed to load; saving would overwrite stored days
	saveDisabled bool
}

// QuoteView is the active quote as shown to the player.
type QuoteView struct {
	ID    string `json:"id"`
	Text  string `json:"text"`
	Hint1 string `json:"hint1,omitempty"`
	Hint2 string `json:"hint2,omitempty"`
}

// RunView is a snapshot of the session for rendering.
type RunView struct {
	PlayerID     string         `json:"playerId"`
	DayKey       string         `json:"dayKey"`
	RunID        int            `json:"runId"`
	Index        int            `json:"index"`
	Total        int            `json:"total"`
	Quote        *QuoteView     `json:"quote,omitempty"`
	Marks        []domain.Mark  `json:"marks"`
	CorrectCount int            `json:"correctCount"`
	HintsUsed    int            `json:"hintsUsed"`
	Completed    bool           `json:"completed"`
	Result       string         `json:"result,omitempty"`
	Share        string         `json:"share,omitempty"`
	Closer       *domain.Closer `json:"closer,omitempty"`
}

// HintResult is the outcome of a hint reveal.
type HintResult struct {
	Slot      int    `json:"slot"`
	Text      string `json:"text"`
	HintsUsed int    `json:"hintsUsed"`
}

// AnswerResult is the outcome of a submission.
type AnswerResult struct {
	Correct   bool   `json:"correct"`
	Status    string `json:"status"`
	Completed bool   `json:"completed"`
}

func (s *Session) PlayerID() string { return s.playerID }
func (s *Session) DayKey() string   { return s.dayKey }

// RunID numbers runs from 1 on the anchor day.
func (s *Session) RunID() int { return s.dayIndex + 1 }

// View snapshots the session.
func (s *Session) View() RunView {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.viewLocked()
}

// RevealHint reveals a hint for the active quote and persists the change.
func (s *Session) RevealHint(ctx context.Context, slot int) (HintResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	text, changed, err := s.run.RevealHint(slot)
	if err != nil {
		return HintResult{}, err
	}
	if changed {
		s.persist(ctx)
	}
	return HintResult{Slot: slot, Text: text, HintsUsed: s.run.State().HintsUsed}, nil
}

// SubmitAnswer scores raw against the active quote and persists the result.
// Blank input returns domain.ErrEmptyAnswer with no state change.
func (s *Session) SubmitAnswer(ctx context.Context, raw string) (AnswerResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	correct, err := s.run.Submit(raw)
	if errors.Is(err, domain.ErrEmptyAnswer) {
		return AnswerResult{Status: StatusEmptyAnswer}, err
	}
	if err != nil {
		return AnswerResult{}, err
	}
	s.persist(ctx)

	status := StatusIncorrect
	if correct {
		status = StatusCorrect
	}
	return AnswerResult{Correct: correct, Status: status, Completed: s.run.Completed()}, nil
}

// ShareText renders the share card of a completed run.
func (s *Session) ShareText() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.run.Completed() {
		return "", domain.ErrRunInProgress
	}
	return BuildShareText(s.run.State(), s.playURL), nil
}

// Yesterday reveals the previous day's answers.
func (s *Session) Yesterday() []domain.YesterdayItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return BuildYesterday(s.store, s.yesterdayKey, s.pool)
}

func (s *Session) viewLocked() RunView {
	state := s.run.State()
	view := RunView{
		PlayerID:     s.playerID,
		DayKey:       s.dayKey,
		RunID:        s.RunID(),
		Index:        s.run.Index(),
		Total:        domain.SetSize,
		Marks:        append([]domain.Mark(nil), state.Marks...),
		CorrectCount: state.CorrectCount,
		HintsUsed:    state.HintsUsed,
		Completed:    state.Completed,
	}

	if q, ok := s.run.Current(); ok {
		qv := &QuoteView{ID: q.ID, Text: q.Quote}
		if s.run.HintShown(1, q.ID) {
			qv.Hint1 = q.Hint1
		}
		if s.run.HintShown(2, q.ID) {
			qv.Hint2 = q.Hint2
		}
		view.Quote = qv
	}

	if state.Completed {
		view.Result = fmt.Sprintf("Score: %d / %d", state.CorrectCount, domain.SetSize)
		view.Share = BuildShareText(state, s.playURL)
		if state.CorrectCount == domain.SetSize {
			closer := daily.PickCloser(s.pool.Closers, s.dayIndex)
			view.Closer = &closer
		}
	}
	return view
}

// Persistent reports whether the session's changes are being saved.
func (s *Session) Persistent() bool { return !s.saveDisabled }

// persist saves the whole store. Failures are logged; play continues in memory.
func (s *Session) persist(ctx context.Context) {
	if s.saveDisabled {
		return
	}
	if err := s.states.Save(ctx, s.playerID, s.store); err != nil {
		log.Printf("state save failed for %s: %v", s.playerID, err)
	}
}
