// Package exam is the screen for a running exam session: question
// display, answer input, the per-question explanation in practice mode,
// and the countdown.
package exam

import (
	"time"

	tea "charm.land/bubbletea/v2"

	sess "github.com/abhisek/dronecbt/internal/exam"
	"github.com/abhisek/dronecbt/internal/i18n"
	"github.com/abhisek/dronecbt/internal/review"
	"github.com/abhisek/dronecbt/internal/router"
	"github.com/abhisek/dronecbt/internal/screen"
	"github.com/abhisek/dronecbt/internal/screens/result"
	"github.com/abhisek/dronecbt/internal/ui/components"
	"github.com/abhisek/dronecbt/internal/ui/layout"
)

// Screen implements screen.Screen for the active exam.
type Screen struct {
	session     *sess.Session
	choice      components.MultiChoice
	reportFile  string
	flagFile    string
	flagged     bool
	timedOut    bool
	quitConfirm bool
}

var _ screen.Screen = (*Screen)(nil)
var _ screen.KeyHintProvider = (*Screen)(nil)

// New creates the exam screen over an already started session. Finished
// attempts are appended to the report log at reportFile; questions the
// user reports during the explanation go to the flag log at flagFile.
func New(session *sess.Session, reportFile, flagFile string) *Screen {
	s := &Screen{session: session, reportFile: reportFile, flagFile: flagFile}
	s.loadCurrent()
	return s
}

func (s *Screen) loadCurrent() {
	q := s.session.Current()
	if q == nil {
		return
	}
	correct := 0
	for i, key := range []string{"1", "2", "3"} {
		if key == q.Answer {
			correct = i
		}
	}
	s.choice = components.NewMultiChoice(q.Text, q.OptionList(), correct)
}

func (s *Screen) Init() tea.Cmd {
	if s.session.Timed() {
		return tickCmd()
	}
	return nil
}

func (s *Screen) Title() string {
	return i18n.Td("exam.progress", map[string]any{
		"Index": min(s.session.Cursor+1, len(s.session.Questions)),
		"Total": len(s.session.Questions),
	})
}

func (s *Screen) KeyHints() []layout.KeyHint {
	if s.quitConfirm {
		return []layout.KeyHint{
			{Key: "Y", Description: i18n.T("common.quit")},
			{Key: "N", Description: i18n.T("common.back")},
		}
	}
	if s.session.Phase == sess.PhaseExplaining {
		return []layout.KeyHint{
			{Key: "Enter", Description: i18n.T("exam.next")},
			{Key: "R", Description: i18n.T("exam.report")},
		}
	}
	return []layout.KeyHint{
		{Key: "1-3", Description: i18n.T("common.select")},
		{Key: "Enter", Description: i18n.T("common.confirm")},
		{Key: "Esc", Description: i18n.T("common.quit")},
	}
}

// HandlesEsc keeps the global esc-to-back shortcut away from a running
// exam; abort goes through the y/n confirmation instead.
func (s *Screen) HandlesEsc() bool {
	return true
}

func (s *Screen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case timerTickMsg:
		return s.handleTick()
	case tea.KeyMsg:
		return s.handleKey(msg)
	}
	return s, nil
}

func (s *Screen) handleTick() (screen.Screen, tea.Cmd) {
	if s.session.Finished() {
		return s, nil
	}
	if s.session.CheckTimeout() {
		s.timedOut = true
		return s, s.finish()
	}
	return s, tickCmd()
}

func (s *Screen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	if s.quitConfirm {
		switch key {
		case "y", "Y":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "n", "N", "esc":
			s.quitConfirm = false
		}
		return s, nil
	}

	switch s.session.Phase {
	case sess.PhaseAnswering:
		if key == "esc" {
			s.quitConfirm = true
			return s, nil
		}
		// The budget is polled before the submit counts.
		if s.session.CheckTimeout() {
			s.timedOut = true
			return s, s.finish()
		}
		s.choice, _ = s.choice.Update(msg)
		if s.choice.Submitted {
			if err := s.session.SubmitAnswer(s.choice.ChosenKey()); err != nil {
				return s, nil
			}
			if s.session.Finished() {
				return s, s.finish()
			}
			if s.session.Phase == sess.PhaseAnswering {
				// Real mode moved straight to the next question.
				s.loadCurrent()
			}
		}
		return s, nil

	case sess.PhaseExplaining:
		switch key {
		case "enter", " ":
			if err := s.session.Advance(); err != nil {
				return s, nil
			}
			if s.session.Finished() {
				return s, s.finish()
			}
			s.flagged = false
			s.loadCurrent()
		case "r", "R":
			s.flagCurrent()
		}
		return s, nil
	}

	return s, nil
}

// flagCurrent appends the just-answered question to the flag log so it
// shows up in the next review export. Repeated presses on the same
// question are ignored.
func (s *Screen) flagCurrent() {
	if s.flagged || len(s.session.Log) == 0 {
		return
	}
	q := s.session.Log[len(s.session.Log)-1].Question
	err := review.AppendFlag(s.flagFile, review.FlagEntry{
		Timestamp: time.Now(),
		Reason:    "user report",
		Source:    q.Source,
		Level:     q.Level,
		Chapter:   q.Chapter,
		ID:        q.ID,
		Text:      q.Text,
	})
	if err == nil {
		s.flagged = true
	}
}

// finish records the attempt and swaps in the result screen.
func (s *Screen) finish() tea.Cmd {
	session := s.session
	reportFile := s.reportFile
	flagFile := s.flagFile
	timedOut := s.timedOut
	return func() tea.Msg {
		correct, answered := session.FinalScore()
		mode := "practice"
		if session.RealMode {
			mode = "real"
		}
		_ = review.AppendReport(reportFile, review.ReportEntry{
			Timestamp: time.Now(),
			Level:     session.Level,
			Source:    session.Source,
			Mode:      mode,
			Total:     answered,
			Correct:   correct,
			Percent:   sess.Percentage(correct, answered),
			Passed:    sess.Passed(correct, answered),
			Elapsed:   session.Consumed,
		})
		return router.ReplaceScreenMsg{
			Screen: result.New(session, timedOut, func(replay *sess.Session) screen.Screen {
				return New(replay, reportFile, flagFile)
			}),
		}
	}
}

// tickCmd returns a 1-second tick command.
func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return timerTickMsg(t)
	})
}
