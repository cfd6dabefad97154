package questiongen

// Config controls the behavior of the LLMGenerator.
type Config struct {
	// Validators is the ordered list of validators to run on every
	// generated question. They execute in order; the first failure
	// rejects that question.
	Validators []Validator

	// BatchSize is the number of questions requested per LLM call.
	BatchSize int

	// MaxTokens is the token budget for the LLM response.
	MaxTokens int

	// Temperature controls LLM output randomness (0.0-1.0).
	Temperature float64

	// MaxExisting is the maximum number of existing questions to
	// include in the prompt for deduplication.
	MaxExisting int
}

// DefaultConfig returns a Config with the standard validator chain
// and recommended defaults.
func DefaultConfig() Config {
	return Config{
		Validators: []Validator{
			&StructuralValidator{},
			LanguageValidator{},
		},
		BatchSize:   5,
		MaxTokens:   4096,
		Temperature: 0.7,
		MaxExisting: 40,
	}
}
