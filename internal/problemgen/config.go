package problemgen

// Config controls the behavior of the LLMProvider.
type Config struct {
	// Validators is the ordered validator chain run on every generated
	// problem. The first failure stops the pipeline.
	Validators []Validator

	// MaxTokens is the token budget for the LLM response.
	MaxTokens int

	// Temperature controls LLM output randomness (0.0-1.0).
	Temperature float64

	// MaxPriorPrompts caps how many prior prompts go into the dedup list.
	MaxPriorPrompts int

	// MaxAttempts is how many times a retryable validation failure is
	// regenerated before giving up.
	MaxAttempts int
}

// DefaultConfig returns a Config with the standard validator chain.
func DefaultConfig() Config {
	return Config{
		Validators: []Validator{
			&StructuralValidator{},
			&AnswerFormatValidator{},
			&MathCheckValidator{},
		},
		MaxTokens:       512,
		Temperature:     0.7,
		MaxPriorPrompts: 8,
		MaxAttempts:     3,
	}
}
