package exam

import (
	"testing"
	"time"

	"github.com/abhisek/dronecbt/internal/bank"
)

func TestPercentageFloorAndPassLine(t *testing.T) {
	tests := []struct {
		correct, answered int
		percent           int
		pass              bool
	}{
		{4, 5, 80, true},
		{3, 5, 60, false},
		{0, 0, 0, false},
		{40, 50, 80, true},
		{39, 50, 78, false},
		{5, 6, 83, true},
		{50, 50, 100, true},
	}
	for _, tt := range tests {
		if got := Percentage(tt.correct, tt.answered); got != tt.percent {
			t.Errorf("Percentage(%d, %d) = %d, want %d", tt.correct, tt.answered, got, tt.percent)
		}
		if got := Passed(tt.correct, tt.answered); got != tt.pass {
			t.Errorf("Passed(%d, %d) = %v, want %v", tt.correct, tt.answered, got, tt.pass)
		}
	}
}

func logEntry(id int, chapter string, correct bool) Answer {
	return Answer{
		Question: bank.Question{
			ID:      id,
			Chapter: chapter,
			Text:    chapter + "-q" + string(rune('0'+id)),
			Options: map[string]string{"1": "a", "2": "b", "3": "c"},
			Answer:  "1",
		},
		Choice:  "1",
		Correct: correct,
	}
}

func TestBreakdownByChapter(t *testing.T) {
	log := []Answer{
		logEntry(1, "第3章 航空法", true),
		logEntry(2, "第2章 規則", false),
		logEntry(3, "第3章 航空法", false),
		logEntry(4, "第2章 規則", true),
		logEntry(5, "第3章 航空法", true),
	}

	stats := BreakdownByChapter(log)
	if len(stats) != 2 {
		t.Fatalf("len = %d, want 2", len(stats))
	}
	// Lexicographic display order: 第2章 before 第3章.
	if stats[0].Chapter != "第2章 規則" || stats[0].Correct != 1 || stats[0].Total != 2 {
		t.Errorf("stats[0] = %+v", stats[0])
	}
	if stats[1].Chapter != "第3章 航空法" || stats[1].Correct != 2 || stats[1].Total != 3 {
		t.Errorf("stats[1] = %+v", stats[1])
	}
}

func TestReviewReplay(t *testing.T) {
	clock := newFakeClock()
	s := startPractice(t, clock, 10, 30*time.Minute)

	// Miss questions 2, 5 and 8 (0-based cursor positions 1, 4, 7).
	wrongAt := map[int]bool{1: true, 4: true, 7: true}
	for i := 0; i < 10; i++ {
		choice := "1"
		if wrongAt[i] {
			choice = "2"
		}
		if err := s.SubmitAnswer(choice); err != nil {
			t.Fatalf("SubmitAnswer %d: %v", i, err)
		}
		if !s.Finished() {
			if err := s.Advance(); err != nil {
				t.Fatalf("Advance %d: %v", i, err)
			}
		}
	}

	replay, err := NewReviewSession(s, false)
	if err != nil {
		t.Fatalf("NewReviewSession: %v", err)
	}
	if len(replay.Questions) != 3 {
		t.Fatalf("replay set = %d questions, want 3", len(replay.Questions))
	}
	// Encounter order is preserved.
	for i, wantID := range []int{2, 5, 8} {
		if replay.Questions[i].ID != wantID {
			t.Errorf("replay[%d].ID = %d, want %d", i, replay.Questions[i].ID, wantID)
		}
	}
	if replay.RealMode {
		t.Error("review replay must run in practice mode")
	}
	if want := 3 * ReviewSecondsPerQuestion * time.Second; replay.Limit != want {
		t.Errorf("replay limit = %v, want %v", replay.Limit, want)
	}

	untimed, err := NewReviewSession(s, true)
	if err != nil {
		t.Fatalf("NewReviewSession untimed: %v", err)
	}
	if untimed.Timed() {
		t.Error("untimed replay still has a time budget")
	}
}

func TestReviewReplayAllCorrect(t *testing.T) {
	clock := newFakeClock()
	s := startPractice(t, clock, 2, 30*time.Minute)
	for i := 0; i < 2; i++ {
		if err := s.SubmitAnswer("1"); err != nil {
			t.Fatalf("SubmitAnswer: %v", err)
		}
		if !s.Finished() {
			if err := s.Advance(); err != nil {
				t.Fatalf("Advance: %v", err)
			}
		}
	}
	if _, err := NewReviewSession(s, false); err == nil {
		t.Error("replay with no wrong answers should fail with ErrEmptySet")
	}
}
