package problemgen

import "fmt"

// Validator checks a generated problem for correctness.
// Implementations should be stateless and safe for concurrent use.
type Validator interface {
	// Name returns a short identifier for this validator, e.g. "structural".
	Name() string

	// Validate returns nil if the problem passes. The params carry the
	// request context (exercise, difficulty, item).
	Validate(p *Problem, params Params) *ValidationError
}

// ValidationError describes why a problem failed validation.
type ValidationError struct {
	Validator string // Name of the validator that failed
	Message   string // Human-readable description of the failure
	Retryable bool   // Whether regeneration is likely to fix this
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validator %q: %s", e.Validator, e.Message)
}

// runValidators executes the chain in order and stops at the first failure.
func runValidators(validators []Validator, p *Problem, params Params) error {
	for _, v := range validators {
		if verr := v.Validate(p, params); verr != nil {
			return verr
		}
	}
	return nil
}
