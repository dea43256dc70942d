package daily

import (
	"fmt"
	"time"

	"quote-run-service/internal/domain"
)

const dayKeyLayout = "2006-01-02"

// DefaultAnchor is the first day of run #1.
const DefaultAnchor = "2025-01-01"

// Calendar maps instants to local day-keys and day indices.
type Calendar struct {
	anchor time.Time
	loc    *time.Location
}

// NewCalendar builds a calendar anchored at anchorKey (YYYY-MM-DD) in loc.
// A nil loc means time.Local.
func NewCalendar(anchorKey string, loc *time.Location) (Calendar, error) {
	if loc == nil {
		loc = time.Local
	}
	anchor, err := time.Parse(dayKeyLayout, anchorKey)
	if err != nil {
		return Calendar{}, fmt.Errorf("%w: %q", domain.ErrInvalidDayKey, anchorKey)
	}
	return Calendar{anchor: anchor, loc: loc}, nil
}

// Location returns the zone day boundaries are computed in.
func (c Calendar) Location() *time.Location {
	return c.loc
}

// DayKey formats the local calendar date of t.
func (c Calendar) DayKey(t time.Time) string {
	return t.In(c.loc).Format(dayKeyLayout)
}

// YesterdayKey formats the local calendar date before t.
func (c Calendar) YesterdayKey(t time.Time) string {
	return t.In(c.loc).AddDate(0, 0, -1).Format(dayKeyLayout)
}

// DayIndex counts whole local days between the anchor and t.
func (c Calendar) DayIndex(t time.Time) int {
	local := t.In(c.loc)
	civil := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, time.UTC)
	return floorDiv(int(civil.Sub(c.anchor)/time.Hour), 24)
}

// DayIndexForKey returns the day index of a YYYY-MM-DD key.
func (c Calendar) DayIndexForKey(key string) (int, error) {
	d, err := time.Parse(dayKeyLayout, key)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", domain.ErrInvalidDayKey, key)
	}
	return floorDiv(int(d.Sub(c.anchor)/time.Hour), 24), nil
}

// ParseDayKey returns local midday of the given key, a safe instant inside that day.
func (c Calendar) ParseDayKey(key string) (time.Time, error) {
	d, err := time.Parse(dayKeyLayout, key)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", domain.ErrInvalidDayKey, key)
	}
	return time.Date(d.Year(), d.Month(), d.Day(), 12, 0, 0, 0, c.loc), nil
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
