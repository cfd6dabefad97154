package questiongen

import (
	"testing"

	"github.com/abhisek/dronecbt/internal/bank"
)

func TestLanguageValidator(t *testing.T) {
	v := LanguageValidator{}

	tests := []struct {
		name string
		text string
		ok   bool
	}{
		{"japanese", "無人航空機の最大離陸重量はどれか。", true},
		{"kana only", "ドローンのバッテリーはどれか", true},
		{"english", "Which airspace requires permission?", false},
		{"digits", "12345", false},
	}

	for _, tt := range tests {
		q := &bank.Question{Text: tt.text}
		verr := v.Validate(q, GenerateInput{})
		if tt.ok && verr != nil {
			t.Errorf("%s: unexpected rejection: %s", tt.name, verr.Message)
		}
		if !tt.ok && verr == nil {
			t.Errorf("%s: expected rejection", tt.name)
		}
		if verr != nil && !verr.Retryable {
			t.Errorf("%s: language failures should be retryable", tt.name)
		}
	}
}
