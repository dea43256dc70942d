package app

import (
	"fmt"
	"strings"

	"quote-run-service/internal/domain"
)

const (
	shareHeadline  = "🎬 Cue The Line — Today’s run"
	DefaultPlayURL = "https://cuetheline.com/"
)

// BuildShareText renders the shareable summary of a run. Other tools parse
// this layout, so the line order is fixed.
func BuildShareText(state *domain.RunState, playURL string) string {
	var marks strings.Builder
	for _, m := range state.Marks {
		marks.WriteString(string(m))
	}

	score := fmt.Sprintf("Score: %d/%d", state.CorrectCount, domain.SetSize)
	if state.CorrectCount == domain.SetSize {
		score = fmt.Sprintf("Perfect %d/%d", domain.SetSize, domain.SetSize)
	}

	return strings.Join([]string{
		shareHeadline,
		marks.String(),
		score,
		fmt.Sprintf("Hints used: %d", state.HintsUsed),
		"",
		"Take the movie trivia challenge: " + playURL,
	}, "\n")
}

// BuildYesterday lists the previous day's quotes with their titles. Nothing
// is returned unless that day recorded a full set; ids no longer in the pool
// are skipped.
func BuildYesterday(store domain.Store, yesterdayKey string, pool domain.Pool) []domain.YesterdayItem {
	prev, ok := store[yesterdayKey]
	if !ok || prev == nil || len(prev.SetIDs) != domain.SetSize {
		return nil
	}

	items := make([]domain.YesterdayItem, 0, len(prev.SetIDs))
	for i, id := range prev.SetIDs {
		q, ok := pool.Find(id)
		if !ok {
			continue
		}
		title := q.Display
		if title == "" {
			title = "Unknown"
		}
		items = append(items, domain.YesterdayItem{
			Index: i + 1,
			Quote: q.Quote,
			Title: title,
			Year:  q.Year,
		})
	}
	return items
}
