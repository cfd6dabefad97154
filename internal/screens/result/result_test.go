package result

import (
	"fmt"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/dronecbt/internal/bank"
	sess "github.com/abhisek/dronecbt/internal/exam"
	"github.com/abhisek/dronecbt/internal/router"
	"github.com/abhisek/dronecbt/internal/screen"
)

type stubScreen struct{}

func (stubScreen) Init() tea.Cmd                                { return nil }
func (s stubScreen) Update(tea.Msg) (screen.Screen, tea.Cmd)    { return s, nil }
func (stubScreen) View(width, height int) string                { return "" }
func (stubScreen) Title() string                                { return "stub" }

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

// finishedSession answers every question, choosing wrong answers for the
// first `wrong` of them.
func finishedSession(t *testing.T, total, wrong int) *sess.Session {
	t.Helper()
	qs := make([]bank.Question, total)
	for i := range qs {
		qs[i] = bank.Question{
			ID:      i + 1,
			Level:   bank.LevelBasic,
			Chapter: "第3章",
			Text:    fmt.Sprintf("問題%d", i+1),
			Options: map[string]string{
				"1": "A", "2": "B", "3": "C",
			},
			Answer:      "1",
			Explanation: "解説",
		}
	}
	session, err := sess.Start(qs, sess.Options{
		Level:    bank.LevelBasic,
		Source:   "gemini",
		Limit:    sess.NoTimeLimit,
		RealMode: true,
	})
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	for i := 0; i < total; i++ {
		choice := "1"
		if i < wrong {
			choice = "2"
		}
		if err := session.SubmitAnswer(choice); err != nil {
			t.Fatalf("SubmitAnswer: %v", err)
		}
	}
	if !session.Finished() {
		t.Fatal("session not finished")
	}
	return session
}

func TestResultScreen_ReviewEntriesHiddenWhenPerfect(t *testing.T) {
	s := New(finishedSession(t, 3, 0), false, nil)
	items := s.menuItems()
	if len(items) != 1 {
		t.Fatalf("got %d menu items, want 1 (back only)", len(items))
	}
}

func TestResultScreen_ReviewEntriesShownWithWrongAnswers(t *testing.T) {
	s := New(finishedSession(t, 3, 1), false, nil)
	items := s.menuItems()
	if len(items) != 3 {
		t.Fatalf("got %d menu items, want 3", len(items))
	}
}

func TestResultScreen_StartReviewReplacesWithExam(t *testing.T) {
	var got *sess.Session
	factory := func(replay *sess.Session) screen.Screen {
		got = replay
		return stubScreen{}
	}
	s := New(finishedSession(t, 3, 2), false, factory)

	_, cmd := s.Update(specialKey(tea.KeyEnter))
	if cmd == nil {
		t.Fatal("expected a command from review entry")
	}
	msg := cmd()
	if _, ok := msg.(router.ReplaceScreenMsg); !ok {
		t.Fatalf("msg = %T, want ReplaceScreenMsg", msg)
	}
	if got == nil {
		t.Fatal("factory not invoked")
	}
	if len(got.Questions) != 2 {
		t.Errorf("review set size = %d, want 2", len(got.Questions))
	}
	if !got.Timed() {
		t.Error("first entry starts a timed review, session should carry a limit")
	}
}

func TestResultScreen_BackPops(t *testing.T) {
	s := New(finishedSession(t, 2, 0), false, nil)

	_, cmd := s.Update(specialKey(tea.KeyEnter))
	if cmd == nil {
		t.Fatal("expected a command")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Error("expected PopScreenMsg from back entry")
	}
}

func TestResultScreen_ViewShowsVerdict(t *testing.T) {
	s := New(finishedSession(t, 5, 0), false, nil)
	view := s.View(80, 24)
	if view == "" {
		t.Error("expected non-empty view")
	}
	// Every finished attempt is appended to the report log, so the view
	// always confirms it. Without an initialized bundle the message id
	// renders as-is.
	if !strings.Contains(view, "result.report_saved") {
		t.Error("expected the recorded-result confirmation in the view")
	}

	timedOut := New(finishedSession(t, 5, 3), true, nil)
	if timedOut.View(80, 24) == "" {
		t.Error("expected non-empty view with timeout banner")
	}
}
