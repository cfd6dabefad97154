package exam

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	sess "github.com/abhisek/dronecbt/internal/exam"
	"github.com/abhisek/dronecbt/internal/i18n"
	"github.com/abhisek/dronecbt/internal/ui/theme"
)

func (s *Screen) View(width, height int) string {
	if s.quitConfirm {
		return renderQuitConfirm(width, height)
	}
	switch s.session.Phase {
	case sess.PhaseExplaining:
		return s.renderExplanation(width)
	default:
		return s.renderQuestion(width)
	}
}

func (s *Screen) renderQuestion(width int) string {
	var b strings.Builder
	b.WriteString(s.renderInfoLine(width))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", max(width-4, 0))))
	b.WriteString("\n\n")
	b.WriteString(s.choice.View())
	return b.String()
}

func (s *Screen) renderExplanation(width int) string {
	entry := s.session.Log[len(s.session.Log)-1]

	var b strings.Builder
	b.WriteString(s.renderInfoLine(width))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", max(width-4, 0))))
	b.WriteString("\n\n")

	verdict := theme.Correct.Render(i18n.T("exam.correct"))
	if !entry.Correct {
		verdict = theme.Incorrect.Render(i18n.Td("exam.incorrect", map[string]any{
			"Answer": entry.Question.Answer,
		}))
	}
	b.WriteString("  " + verdict)
	if s.flagged {
		b.WriteString("  " + lipgloss.NewStyle().Foreground(theme.TextDim).Render(i18n.T("exam.reported")))
	}
	b.WriteString("\n\n")

	b.WriteString(s.choice.View())
	b.WriteString("\n")

	card := theme.Card.Width(max(width-8, 20)).Render(
		lipgloss.NewStyle().Foreground(theme.TextDim).Bold(true).Render(i18n.T("exam.explanation")) +
			"\n\n" +
			lipgloss.NewStyle().Foreground(theme.Text).Render(entry.Question.Explanation))
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, card))

	return b.String()
}

func (s *Screen) renderInfoLine(width int) string {
	chapter := ""
	if q := s.session.Current(); q != nil {
		chapter = q.Chapter
	}
	left := lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Bold(true).
		Render(fmt.Sprintf("  %s  %s", s.session.Level, chapter))

	timer := i18n.T("exam.untimed")
	if s.session.Timed() {
		rem := s.session.Remaining()
		timer = i18n.Td("exam.remaining", map[string]any{
			"Minutes": int(rem.Minutes()),
			"Seconds": fmt.Sprintf("%02d", int(rem.Seconds())%60),
		})
	}
	right := lipgloss.NewStyle().Foreground(theme.Accent).Render(timer)

	pad := width - lipgloss.Width(left) - lipgloss.Width(right) - 4
	if pad < 1 {
		pad = 1
	}
	return left + strings.Repeat(" ", pad) + right
}

func renderQuitConfirm(width, height int) string {
	msg := lipgloss.NewStyle().
		Foreground(theme.Accent).
		Bold(true).
		Render(i18n.T("exam.quit_confirm"))
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, msg)
}
