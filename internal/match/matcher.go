package match

import (
	"regexp"
	"strings"

	"github.com/agnivade/levenshtein"

	"quote-run-service/internal/domain"
)

// looseMinLen is the shortest normalized string allowed to match by containment.
const looseMinLen = 8

var (
	apostropheReplacer = strings.NewReplacer("’", "'", "‘", "'")
	disallowedRE       = regexp.MustCompile(`[^a-z0-9 :\-]`)
	multiSpaceRE       = regexp.MustCompile(`\s+`)
)

// Normalize lowercases and trims s, keeps letters, digits, spaces, colons and
// hyphens, and collapses whitespace runs.
func Normalize(s string) string {
	s = strings.TrimSpace(strings.ToLower(s))
	s = apostropheReplacer.Replace(s)
	s = disallowedRE.ReplaceAllString(s, "")
	return multiSpaceRE.ReplaceAllString(s, " ")
}

// Matcher compares guesses with a quote's accepted answers.
type Matcher struct {
	// TypoTolerance is the edit distance allowed between a guess and a long
	// answer once the exact rules fail. Zero disables it.
	TypoTolerance int
}

// Matches reports whether raw names the quote under the default rules.
func Matches(raw string, q domain.Quote) bool {
	return Matcher{}.Matches(raw, q)
}

// Matches applies, in order: exact answer, answer without a leading "the ",
// and two-way containment for strings of at least eight characters.
func (m Matcher) Matches(raw string, q domain.Quote) bool {
	guess := Normalize(raw)
	if guess == "" {
		return false
	}

	answers := make([]string, 0, len(q.Answers))
	accepted := make(map[string]bool, len(q.Answers))
	for _, a := range q.Answers {
		n := Normalize(a)
		answers = append(answers, n)
		accepted[n] = true
	}

	if accepted[guess] {
		return true
	}
	if accepted[strings.TrimPrefix(guess, "the ")] {
		return true
	}

	for _, a := range answers {
		if len(a) >= looseMinLen && len(guess) >= looseMinLen &&
			(strings.Contains(a, guess) || strings.Contains(guess, a)) {
			return true
		}
	}

	if m.TypoTolerance > 0 && len(guess) >= looseMinLen {
		for _, a := range answers {
			if len(a) >= looseMinLen && levenshtein.ComputeDistance(guess, a) <= m.TypoTolerance {
				return true
			}
		}
	}
	return false
}
