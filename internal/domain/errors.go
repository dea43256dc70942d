package domain

import "errors"

var (
	// ErrPoolTooSmall is returned when a pool cannot fill a daily set.
	ErrPoolTooSmall = errors.New("quote pool has fewer quotes than a daily set")
	// ErrPoolNotFound indicates the pool document could not be loaded.
	ErrPoolNotFound = errors.New("quote pool not found")
	// ErrRunCompleted is returned when acting on a finished run.
	ErrRunCompleted = errors.New("run already completed")
	// ErrRunInProgress is returned when a finished-run view is requested early.
	ErrRunInProgress = errors.New("run still in progress")
	// ErrEmptyAnswer rejects a blank submission without consuming a turn.
	ErrEmptyAnswer = errors.New("answer is empty")
	// ErrNoActiveQuote indicates the run has no current quote.
	ErrNoActiveQuote = errors.New("no active quote")
	// ErrInvalidHintSlot indicates a hint slot other than 1 or 2.
	ErrInvalidHintSlot = errors.New("hint slot must be 1 or 2")
	// ErrInvalidDayKey indicates a malformed YYYY-MM-DD key.
	ErrInvalidDayKey = errors.New("invalid day key")
)
