package questiongen

import (
	"strings"
	"testing"

	"github.com/abhisek/dronecbt/internal/bank"
)

func validQuestion() *bank.Question {
	return &bank.Question{
		Level:       "二等",
		Chapter:     "第3章",
		Text:        "無人航空機の登録が必要な機体重量の下限はどれか。",
		Options:     map[string]string{"1": "100g以上", "2": "200g以上", "3": "25kg以上"},
		Answer:      "1",
		Explanation: "100g以上の無人航空機は登録が義務付けられている。",
	}
}

func TestStructural_ValidQuestion(t *testing.T) {
	v := &StructuralValidator{}
	if err := v.Validate(validQuestion(), GenerateInput{}); err != nil {
		t.Fatalf("expected nil, got %v", err)
	}
}

func TestStructural_EmptyText(t *testing.T) {
	v := &StructuralValidator{}
	q := validQuestion()
	q.Text = ""
	err := v.Validate(q, GenerateInput{})
	if err == nil {
		t.Fatal("expected error for empty question text")
	}
	if err.Validator != "structural" {
		t.Errorf("Validator = %q, want structural", err.Validator)
	}
	if !err.Retryable {
		t.Error("empty text should be retryable")
	}
}

func TestStructural_TextTooLong(t *testing.T) {
	v := &StructuralValidator{}
	q := validQuestion()
	q.Text = strings.Repeat("あ", 401)
	if err := v.Validate(q, GenerateInput{}); err == nil {
		t.Fatal("expected error for over-long text")
	}
}

func TestStructural_TextLengthCountsRunes(t *testing.T) {
	v := &StructuralValidator{}
	q := validQuestion()
	q.Text = strings.Repeat("あ", 400)
	if err := v.Validate(q, GenerateInput{}); err != nil {
		t.Fatalf("400 runes should pass, got %v", err)
	}
}

func TestStructural_MissingOption(t *testing.T) {
	v := &StructuralValidator{}
	q := validQuestion()
	delete(q.Options, "2")
	if err := v.Validate(q, GenerateInput{}); err == nil {
		t.Fatal("expected error for missing option")
	}
}

func TestStructural_EmptyOption(t *testing.T) {
	v := &StructuralValidator{}
	q := validQuestion()
	q.Options["3"] = ""
	if err := v.Validate(q, GenerateInput{}); err == nil {
		t.Fatal("expected error for empty option")
	}
}

func TestStructural_ExtraOption(t *testing.T) {
	v := &StructuralValidator{}
	q := validQuestion()
	q.Options["4"] = "余分な選択肢"
	if err := v.Validate(q, GenerateInput{}); err == nil {
		t.Fatal("expected error for extra option")
	}
}

func TestStructural_AnswerNotAnOption(t *testing.T) {
	v := &StructuralValidator{}
	q := validQuestion()
	q.Answer = "9"
	err := v.Validate(q, GenerateInput{})
	if err == nil {
		t.Fatal("expected error for answer outside options")
	}
	if !strings.Contains(err.Message, "9") {
		t.Errorf("message should name the bad key: %q", err.Message)
	}
}

func TestStructural_EmptyExplanation(t *testing.T) {
	v := &StructuralValidator{}
	q := validQuestion()
	q.Explanation = ""
	if err := v.Validate(q, GenerateInput{}); err == nil {
		t.Fatal("expected error for empty explanation")
	}
}
