// Package check runs a bank integrity scan and shows the findings.
package check

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/dronecbt/internal/bank"
	"github.com/abhisek/dronecbt/internal/i18n"
	"github.com/abhisek/dronecbt/internal/integrity"
	"github.com/abhisek/dronecbt/internal/screen"
	"github.com/abhisek/dronecbt/internal/ui/theme"
)

// Screen runs the scan on entry and lists the issues, if any. The scan
// result is persisted to the status file so the headless check command
// and the next run see the same state.
type Screen struct {
	store      *bank.Store
	statusFile string
	scanned    bool
	issues     []integrity.Issue
	errMsg     string
}

var _ screen.Screen = (*Screen)(nil)

type scanDoneMsg struct {
	issues []integrity.Issue
	err    error
}

// New creates the check screen.
func New(store *bank.Store, statusFile string) *Screen {
	return &Screen{store: store, statusFile: statusFile}
}

func (s *Screen) Init() tea.Cmd {
	store, statusFile := s.store, s.statusFile
	return func() tea.Msg {
		issues, err := integrity.Scan(store)
		if err != nil {
			return scanDoneMsg{err: err}
		}
		if err := integrity.WriteStatus(statusFile, issues); err != nil {
			return scanDoneMsg{err: err}
		}
		return scanDoneMsg{issues: issues}
	}
}

func (s *Screen) Title() string {
	return i18n.T("check.title")
}

func (s *Screen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if m, ok := msg.(scanDoneMsg); ok {
		s.scanned = true
		s.issues = m.issues
		if m.err != nil {
			s.errMsg = m.err.Error()
		}
	}
	return s, nil
}

func (s *Screen) View(width, height int) string {
	if !s.scanned {
		return ""
	}
	if s.errMsg != "" {
		return lipgloss.NewStyle().Foreground(theme.Error).Render("\n  " + s.errMsg)
	}
	if len(s.issues) == 0 {
		return lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Success).
			Render("\n\n" + i18n.T("check.clean"))
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().
		Foreground(theme.Accent).
		Bold(true).
		Render("  " + i18n.Td("check.issues", map[string]any{"Count": len(s.issues)})))
	b.WriteString("\n\n")

	for _, issue := range s.issues {
		line := fmt.Sprintf("  %-28s %s", issue.File, issue.State)
		if issue.ID != 0 {
			line += fmt.Sprintf("  id=%d", issue.ID)
		}
		if len(issue.MissingFields) > 0 {
			line += "  (" + strings.Join(issue.MissingFields, ", ") + ")"
		}
		if issue.Detail != "" {
			line += "  (" + issue.Detail + ")"
		}
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Render(line))
		b.WriteString("\n")
	}
	return b.String()
}
