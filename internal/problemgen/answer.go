package problemgen

import (
	"fmt"
	"strings"

	"github.com/abhisek/drillbuddy/internal/spokennum"
)

// CheckAnswer compares a submission against the canonical answer.
// Returns true if the answer is correct.
//
// Normalization rules:
// - Whitespace is trimmed and internal runs collapse to one space
// - Text and choice answers compare case-insensitively, exact match only
// - Numeric answers compare as integers after parsing, so "007", "7" and
//   "seven" are all equal
func CheckAnswer(submission string, p *Problem) bool {
	submission = collapse(submission)
	if submission == "" {
		return false
	}

	switch p.Kind {
	case KindNumeric:
		got, ok := spokennum.Parse(submission)
		if !ok {
			return false
		}
		want, ok := spokennum.Parse(p.Answer)
		if !ok {
			return false
		}
		return got == want
	default:
		return strings.EqualFold(submission, collapse(p.Answer))
	}
}

// Validate checks the structural invariants every problem must satisfy
// before it can be bound to a turn.
func Validate(p *Problem) error {
	if strings.TrimSpace(p.Prompt) == "" {
		return fmt.Errorf("prompt is empty")
	}
	if collapse(p.Answer) == "" {
		return fmt.Errorf("answer is empty")
	}
	switch p.Kind {
	case KindNumeric:
		if _, ok := spokennum.Parse(p.Answer); !ok {
			return fmt.Errorf("numeric answer %q is not an integer", p.Answer)
		}
	case KindChoice:
		matches := 0
		for _, o := range p.Options {
			if strings.EqualFold(collapse(o), collapse(p.Answer)) {
				matches++
			}
		}
		if matches != 1 {
			return fmt.Errorf("answer %q matches %d options, want exactly 1", p.Answer, matches)
		}
	case KindText:
	default:
		return fmt.Errorf("unknown answer kind %q", p.Kind)
	}
	return nil
}

// OptionIndex returns the index of the option equal to s, or -1.
func OptionIndex(p *Problem, s string) int {
	s = collapse(s)
	for i, o := range p.Options {
		if strings.EqualFold(collapse(o), s) {
			return i
		}
	}
	return -1
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
