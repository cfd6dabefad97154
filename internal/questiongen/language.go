package questiongen

import (
	"unicode"

	"github.com/abhisek/dronecbt/internal/bank"
)

// LanguageValidator rejects questions that are not written in Japanese.
// Providers occasionally answer in English when the scope text quotes
// English terminology.
type LanguageValidator struct{}

func (LanguageValidator) Name() string { return "language" }

func (v LanguageValidator) Validate(q *bank.Question, _ GenerateInput) *ValidationError {
	if !containsJapanese(q.Text) {
		return &ValidationError{
			Validator: v.Name(),
			Message:   "question text is not Japanese",
			Retryable: true,
		}
	}
	return nil
}

func containsJapanese(s string) bool {
	for _, r := range s {
		if unicode.In(r, unicode.Hiragana, unicode.Katakana, unicode.Han) {
			return true
		}
	}
	return false
}
