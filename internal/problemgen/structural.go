package problemgen

import "fmt"

const (
	maxPromptLen      = 500
	maxExplanationLen = 1000
)

// StructuralValidator checks that required fields are present, within
// length limits, and consistent with the requested exercise.
type StructuralValidator struct{}

func (v *StructuralValidator) Name() string { return "structural" }

func (v *StructuralValidator) Validate(p *Problem, params Params) *ValidationError {
	fail := func(msg string) *ValidationError {
		return &ValidationError{Validator: v.Name(), Message: msg, Retryable: true}
	}

	if p.Prompt == "" {
		return fail("prompt is empty")
	}
	if len(p.Prompt) > maxPromptLen {
		return fail(fmt.Sprintf("prompt exceeds %d characters", maxPromptLen))
	}
	if len(p.Explanation) > maxExplanationLen {
		return fail(fmt.Sprintf("explanation exceeds %d characters", maxExplanationLen))
	}
	switch p.Kind {
	case KindNumeric, KindChoice, KindText:
	default:
		return fail(`kind must be "numeric", "choice", or "text"`)
	}
	if want := expectedKind(params.Exercise); want != "" && p.Kind != want {
		return fail(fmt.Sprintf("exercise %s requires kind %q, got %q", params.Exercise, want, p.Kind))
	}
	return nil
}

// expectedKind returns the kind an exercise must use, or "" when the
// exercise allows more than one.
func expectedKind(e Exercise) Kind {
	switch e {
	case ExerciseArithmetic, ExerciseTimesTable, ExerciseSequencing:
		return KindNumeric
	case ExerciseComparison, ExerciseDefinitionMatch:
		return KindChoice
	case ExerciseSpelling:
		return KindText
	}
	return ""
}
