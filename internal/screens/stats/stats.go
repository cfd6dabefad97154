// Package stats shows the question stock per source and level, plus
// the recent exam attempt history.
package stats

import (
	"fmt"
	"sort"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/dronecbt/internal/bank"
	"github.com/abhisek/dronecbt/internal/i18n"
	"github.com/abhisek/dronecbt/internal/review"
	"github.com/abhisek/dronecbt/internal/screen"
	"github.com/abhisek/dronecbt/internal/ui/theme"
)

// Screen is the stock and history overview.
type Screen struct {
	store      *bank.Store
	reportFile string
	stock      map[string]bank.Stock
	history    []review.ReportEntry
	errMsg     string
}

var _ screen.Screen = (*Screen)(nil)

type loadedMsg struct {
	stock   map[string]bank.Stock
	history []review.ReportEntry
	err     error
}

// New creates the stats screen.
func New(store *bank.Store, reportFile string) *Screen {
	return &Screen{store: store, reportFile: reportFile}
}

func (s *Screen) Init() tea.Cmd {
	store, reportFile := s.store, s.reportFile
	return func() tea.Msg {
		stock, err := store.ListSources()
		if err != nil {
			return loadedMsg{err: err}
		}
		history, err := review.LoadReports(reportFile)
		if err != nil {
			return loadedMsg{err: err}
		}
		return loadedMsg{stock: stock, history: history}
	}
}

func (s *Screen) Title() string {
	return i18n.T("stats.title")
}

func (s *Screen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if m, ok := msg.(loadedMsg); ok {
		if m.err != nil {
			s.errMsg = m.err.Error()
			return s, nil
		}
		s.stock = m.stock
		s.history = m.history
	}
	return s, nil
}

func (s *Screen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.NewStyle().Foreground(theme.Error).Render("\n  " + s.errMsg)
	}
	if s.stock == nil {
		return ""
	}
	if len(s.stock) == 0 {
		return lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Render("\n\n" + i18n.T("stats.empty"))
	}

	var b []string
	b = append(b, "", lipgloss.NewStyle().
		Foreground(theme.Secondary).Bold(true).
		Render("  "+i18n.T("stats.source")), "")

	names := make([]string, 0, len(s.stock))
	for name := range s.stock {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		st := s.stock[name]
		line := fmt.Sprintf("  %-28s %s %4d", name, i18n.T("stats.total"), st.Total)
		b = append(b, lipgloss.NewStyle().Foreground(theme.Text).Render(line))
		levels := make([]string, 0, len(st.ByLevel))
		for lvl := range st.ByLevel {
			levels = append(levels, lvl)
		}
		sort.Strings(levels)
		for _, lvl := range levels {
			detail := fmt.Sprintf("      %s  %d", lvl, st.ByLevel[lvl])
			b = append(b, lipgloss.NewStyle().Foreground(theme.TextDim).Render(detail))
		}
	}

	if len(s.history) > 0 {
		b = append(b, "", lipgloss.NewStyle().
			Foreground(theme.Secondary).Bold(true).
			Render("  "+i18n.T("result.title")), "")
		// Latest attempts first, capped to keep the screen readable.
		shown := 0
		for i := len(s.history) - 1; i >= 0 && shown < 8; i-- {
			e := s.history[i]
			verdict := i18n.T("result.failed")
			style := lipgloss.NewStyle().Foreground(theme.Error)
			if e.Passed {
				verdict = i18n.T("result.passed")
				style = lipgloss.NewStyle().Foreground(theme.Success)
			}
			line := fmt.Sprintf("  %s  %s  %3d%%  %s",
				e.Timestamp.Format("2006-01-02 15:04"), e.Level, e.Percent, verdict)
			b = append(b, style.Render(line))
			shown++
		}
	}

	out := ""
	for _, line := range b {
		out += line + "\n"
	}
	return out
}
