package problemgen

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	minChoices = 2
	maxChoices = 6
)

// AnswerFormatValidator checks that the answer matches its kind and that
// choice constraints are satisfied.
type AnswerFormatValidator struct{}

func (v *AnswerFormatValidator) Name() string { return "answer-format" }

func (v *AnswerFormatValidator) Validate(p *Problem, _ Params) *ValidationError {
	fail := func(msg string) *ValidationError {
		return &ValidationError{Validator: v.Name(), Message: msg, Retryable: true}
	}

	switch p.Kind {
	case KindNumeric:
		if err := validateInteger(p.Answer); err != nil {
			return fail(fmt.Sprintf("invalid integer answer %q: %s", p.Answer, err))
		}
		if len(p.Options) > 0 {
			return fail("numeric problems must have no options")
		}

	case KindChoice:
		if len(p.Options) < minChoices || len(p.Options) > maxChoices {
			return fail(fmt.Sprintf("choice problems need %d-%d options, got %d", minChoices, maxChoices, len(p.Options)))
		}
		seen := make(map[string]bool, len(p.Options))
		for i, o := range p.Options {
			o = strings.TrimSpace(o)
			if o == "" {
				return fail(fmt.Sprintf("option %d is empty", i+1))
			}
			key := strings.ToLower(o)
			if seen[key] {
				return fail(fmt.Sprintf("duplicate option %q", o))
			}
			seen[key] = true
		}
		if OptionIndex(p, p.Answer) < 0 {
			return fail(fmt.Sprintf("answer %q not found in options", p.Answer))
		}

	case KindText:
		if strings.TrimSpace(p.Answer) == "" {
			return fail("text answer is empty")
		}
		if len(p.Options) > 0 {
			return fail("text problems must have no options")
		}
	}
	return nil
}

// validateInteger checks that s is a valid integer string with no leading zeros.
func validateInteger(s string) error {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return fmt.Errorf("not a valid integer")
	}
	if strconv.FormatInt(n, 10) != s {
		return fmt.Errorf("has leading zeros")
	}
	return nil
}
