package questiongen

import (
	"fmt"

	"github.com/abhisek/dronecbt/internal/bank"
)

// StructuralValidator checks that required fields are present, within
// length limits, and that the answer points at one of the options.
type StructuralValidator struct{}

func (v *StructuralValidator) Name() string { return "structural" }

func (v *StructuralValidator) Validate(q *bank.Question, _ GenerateInput) *ValidationError {
	if q.Text == "" {
		return &ValidationError{
			Validator: v.Name(),
			Message:   "question text is empty",
			Retryable: true,
		}
	}
	if len([]rune(q.Text)) > 400 {
		return &ValidationError{
			Validator: v.Name(),
			Message:   "question text exceeds 400 characters",
			Retryable: true,
		}
	}
	if q.Explanation == "" {
		return &ValidationError{
			Validator: v.Name(),
			Message:   "explanation is empty",
			Retryable: true,
		}
	}
	if len(q.Options) != len(bank.OptionKeys) {
		return &ValidationError{
			Validator: v.Name(),
			Message:   fmt.Sprintf("expected %d options, got %d", len(bank.OptionKeys), len(q.Options)),
			Retryable: true,
		}
	}
	for _, key := range bank.OptionKeys {
		if q.Options[key] == "" {
			return &ValidationError{
				Validator: v.Name(),
				Message:   fmt.Sprintf("option %q is missing or empty", key),
				Retryable: true,
			}
		}
	}
	if _, ok := q.Options[q.Answer]; !ok {
		return &ValidationError{
			Validator: v.Name(),
			Message:   fmt.Sprintf("answer %q does not match any option key", q.Answer),
			Retryable: true,
		}
	}
	return nil
}
