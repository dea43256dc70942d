package match

import (
	"testing"

	"quote-run-service/internal/domain"
)

func TestNormalize(t *testing.T) {
	cases := map[string]string{
		"Rosebud.":                  "rosebud",
		"The Godfather":             "the godfather",
		"  Star   Wars:  Episode-IV ": "star wars: episode-iv",
		"Don’t Look Up":             "dont look up",
		"":                          "",
		"!!!":                       "",
	}
	for in, want := range cases {
		if got := Normalize(in); got != want {
			t.Fatalf("Normalize(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestMatchesRules(t *testing.T) {
	godfather := domain.Quote{ID: "q1", Answers: []string{"The Godfather"}}
	jaws := domain.Quote{ID: "q2", Answers: []string{"jaws"}}

	if !Matches("the godfather", godfather) {
		t.Fatalf("expected exact match")
	}
	if !Matches("  THE GODFATHER!! ", godfather) {
		t.Fatalf("expected normalized match")
	}
	if !Matches("godfather", godfather) {
		t.Fatalf("expected containment match for long guess")
	}
	if Matches("god", godfather) {
		t.Fatalf("expected short guess to be rejected")
	}
	if !Matches("The Jaws", jaws) {
		t.Fatalf("expected leading \"the\" to be ignored")
	}
	if Matches("jaw", jaws) {
		t.Fatalf("expected short partial not to match")
	}
	if !Matches("the godfather part ii", godfather) {
		t.Fatalf("expected guess containing the answer to match")
	}
}

func TestMatchesEmptyInput(t *testing.T) {
	q := domain.Quote{Answers: []string{""}}
	for _, in := range []string{"", "   ", "?!"} {
		if Matches(in, q) {
			t.Fatalf("expected %q never to match", in)
		}
	}
}

func TestTypoTolerance(t *testing.T) {
	q := domain.Quote{Answers: []string{"casablanca"}}

	if Matches("casablanka", q) {
		t.Fatalf("expected typo to miss without tolerance")
	}
	if !(Matcher{TypoTolerance: 1}).Matches("casablanka", q) {
		t.Fatalf("expected typo to match with tolerance 1")
	}
	if (Matcher{TypoTolerance: 1}).Matches("casa", q) {
		t.Fatalf("expected short guesses to stay exact even with tolerance")
	}
}
