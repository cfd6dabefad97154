// Package result displays a finished exam: total score against the
// pass line, the per-chapter breakdown, and the wrong-answer replay
// entry points.
package result

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	sess "github.com/abhisek/dronecbt/internal/exam"
	"github.com/abhisek/dronecbt/internal/i18n"
	"github.com/abhisek/dronecbt/internal/router"
	"github.com/abhisek/dronecbt/internal/screen"
	"github.com/abhisek/dronecbt/internal/ui/layout"
	"github.com/abhisek/dronecbt/internal/ui/theme"
)

// ExamFactory builds the screen for a session. Injected so this package
// does not depend on the exam screen that creates it.
type ExamFactory func(session *sess.Session) screen.Screen

// Screen shows the outcome of one finished session.
type Screen struct {
	session  *sess.Session
	timedOut bool
	makeExam ExamFactory
	selected int
}

var _ screen.Screen = (*Screen)(nil)
var _ screen.KeyHintProvider = (*Screen)(nil)

// New creates the result screen for a finished session.
func New(session *sess.Session, timedOut bool, makeExam ExamFactory) *Screen {
	return &Screen{session: session, timedOut: timedOut, makeExam: makeExam}
}

func (s *Screen) Init() tea.Cmd {
	return nil
}

func (s *Screen) Title() string {
	return i18n.T("result.title")
}

func (s *Screen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: i18n.T("common.select")},
		{Key: "Enter", Description: i18n.T("common.confirm")},
		{Key: "Esc", Description: i18n.T("common.back")},
	}
}

// menu entries: review, untimed review, back. Review entries are hidden
// when everything was answered correctly.
func (s *Screen) menuItems() []string {
	items := []string{}
	if len(sess.WrongQuestions(s.session.Log)) > 0 {
		items = append(items, i18n.T("result.review"), i18n.T("result.review_untimed"))
	}
	return append(items, i18n.T("common.back"))
}

func (s *Screen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}

	items := s.menuItems()
	switch kmsg.String() {
	case "up", "k":
		if s.selected > 0 {
			s.selected--
		}
	case "down", "j":
		if s.selected < len(items)-1 {
			s.selected++
		}
	case "esc":
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	case "enter":
		hasReview := len(sess.WrongQuestions(s.session.Log)) > 0
		if !hasReview || s.selected == len(items)-1 {
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
		untimed := s.selected == 1
		return s, s.startReview(untimed)
	}
	return s, nil
}

func (s *Screen) startReview(untimed bool) tea.Cmd {
	prior := s.session
	makeExam := s.makeExam
	return func() tea.Msg {
		replay, err := sess.NewReviewSession(prior, untimed)
		if err != nil {
			return router.PopScreenMsg{}
		}
		return router.ReplaceScreenMsg{Screen: makeExam(replay)}
	}
}

func (s *Screen) View(width, height int) string {
	correct, answered := s.session.FinalScore()
	percent := sess.Percentage(correct, answered)

	var b strings.Builder

	if s.timedOut {
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Accent).
			Render(i18n.T("exam.time_up")))
		b.WriteString("\n\n")
	}

	verdict := theme.Correct.Render(i18n.T("result.passed"))
	if !sess.Passed(correct, answered) {
		verdict = theme.Incorrect.Render(i18n.T("result.failed"))
	}
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Bold(true).
		Render(verdict))
	b.WriteString("\n\n")

	score := i18n.Td("result.score", map[string]any{
		"Correct": correct, "Total": answered, "Percent": percent,
	})
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Render(score))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render(i18n.T("result.report_saved")))
	b.WriteString("\n\n")

	// Chapter table.
	divider := lipgloss.NewStyle().Foreground(theme.Border).Render(
		strings.Repeat("─", min(width-8, 50)))
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		lipgloss.NewStyle().Foreground(theme.TextDim).Render(i18n.T("result.by_chapter"))))
	b.WriteString("\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, divider))
	b.WriteString("\n")

	for _, st := range sess.BreakdownByChapter(s.session.Log) {
		pct := sess.Percentage(st.Correct, st.Total)
		line := fmt.Sprintf("  %-14s %3d/%-3d  %3d%%", st.Chapter, st.Correct, st.Total, pct)
		style := lipgloss.NewStyle().Foreground(theme.Text)
		if pct < sess.PassPercent {
			style = lipgloss.NewStyle().Foreground(theme.Error)
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Render(line)))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	// Menu.
	items := s.menuItems()
	if len(items) == 1 {
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			lipgloss.NewStyle().Foreground(theme.TextDim).Render(i18n.T("result.no_wrong"))))
		b.WriteString("\n\n")
	}
	for i, item := range items {
		line := "    " + item
		style := lipgloss.NewStyle().Foreground(theme.Text)
		if i == s.selected {
			line = "  ▸ " + item
			style = lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Render(line)))
		b.WriteString("\n")
	}

	return b.String()
}
