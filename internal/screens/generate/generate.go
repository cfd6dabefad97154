// Package generate is the screen driving LLM question generation. It
// runs a chapter-by-chapter fill in the background and streams the
// per-chapter progress into the view.
package generate

import (
	"context"
	"log/slog"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/dronecbt/internal/bank"
	"github.com/abhisek/dronecbt/internal/exam"
	"github.com/abhisek/dronecbt/internal/i18n"
	"github.com/abhisek/dronecbt/internal/llm"
	"github.com/abhisek/dronecbt/internal/questiongen"
	"github.com/abhisek/dronecbt/internal/screen"
	"github.com/abhisek/dronecbt/internal/ui/components"
	"github.com/abhisek/dronecbt/internal/ui/layout"
	"github.com/abhisek/dronecbt/internal/ui/theme"
)

// form steps before the run starts.
const (
	stepLevel = iota
	stepSource
)

// Screen walks level and source selection and then shows the running fill.
type Screen struct {
	store    *bank.Store
	provider llm.Provider
	logger   *slog.Logger

	step     int
	selected int
	running  bool
	level    string
	source   components.TextInput
	progress map[int]questiongen.Progress
	order    []int
	result   *questiongen.RunResult
	errMsg   string

	updates chan questiongen.Progress
	done    chan runDoneMsg
}

var _ screen.Screen = (*Screen)(nil)
var _ screen.KeyHintProvider = (*Screen)(nil)

type progressMsg questiongen.Progress

type runDoneMsg struct {
	result *questiongen.RunResult
	err    error
}

// New creates the generation screen. provider may be nil when no LLM is
// configured; the screen then shows an error instead of a form.
func New(store *bank.Store, provider llm.Provider, logger *slog.Logger) *Screen {
	return &Screen{store: store, provider: provider, logger: logger}
}

func (s *Screen) Init() tea.Cmd {
	return nil
}

func (s *Screen) Title() string {
	return i18n.T("generate.title")
}

func (s *Screen) KeyHints() []layout.KeyHint {
	if s.running {
		return []layout.KeyHint{}
	}
	if s.step == stepSource {
		return []layout.KeyHint{
			{Key: "Enter", Description: i18n.T("common.confirm")},
			{Key: "Esc", Description: i18n.T("common.back")},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: i18n.T("common.select")},
		{Key: "Enter", Description: i18n.T("common.confirm")},
		{Key: "Esc", Description: i18n.T("common.back")},
	}
}

// HandlesEsc keeps the global esc-to-back shortcut away from the source
// input step, where esc steps back to level selection instead.
func (s *Screen) HandlesEsc() bool {
	return s.step == stepSource && !s.running && s.result == nil && s.errMsg == ""
}

func (s *Screen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case progressMsg:
		p := questiongen.Progress(msg)
		if _, seen := s.progress[p.Chapter]; !seen {
			s.order = append(s.order, p.Chapter)
		}
		s.progress[p.Chapter] = p
		return s, s.listen()

	case runDoneMsg:
		s.running = false
		s.result = msg.result
		if msg.err != nil {
			s.errMsg = msg.err.Error()
		}
		return s, nil

	case tea.KeyMsg:
		if s.running {
			return s, nil
		}
		return s.handleKey(msg)
	}
	return s, nil
}

func (s *Screen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	if s.provider == nil {
		return s, nil
	}

	if s.result != nil || s.errMsg != "" {
		if msg.String() == "enter" {
			// Finished run: enter restarts with a fresh form.
			s.result = nil
			s.errMsg = ""
			s.step = stepLevel
		}
		return s, nil
	}

	if s.step == stepSource {
		switch msg.String() {
		case "enter":
			return s, s.start()
		case "esc":
			s.step = stepLevel
			return s, nil
		}
		var cmd tea.Cmd
		s.source, cmd = s.source.Update(msg)
		return s, cmd
	}

	levels := exam.Levels()
	switch msg.String() {
	case "up", "k":
		if s.selected > 0 {
			s.selected--
		}
	case "down", "j":
		if s.selected < len(levels)-1 {
			s.selected++
		}
	case "enter":
		s.level = levels[s.selected]
		s.step = stepSource
		s.source = components.NewTextInput(bank.SanitizeSource(s.provider.ModelID()), false, 40)
		return s, s.source.Init()
	}
	return s, nil
}

// start kicks off the runner in a goroutine and begins listening.
func (s *Screen) start() tea.Cmd {
	cur, err := exam.DefaultCurriculum(s.level)
	if err != nil {
		s.errMsg = err.Error()
		return nil
	}

	source := bank.SanitizeSource(s.source.Value())
	if source == "" {
		source = bank.SanitizeSource(s.provider.ModelID())
	}

	s.running = true
	s.progress = make(map[int]questiongen.Progress)
	s.order = nil
	s.updates = make(chan questiongen.Progress, 16)
	s.done = make(chan runDoneMsg, 1)

	gen := questiongen.New(s.provider, questiongen.DefaultConfig())
	runner := questiongen.NewRunner(gen, s.store, s.logger)

	scopes := make(map[int]string, len(cur.Weights))
	for ch := range cur.Weights {
		scopes[ch] = cur.Scope
	}

	input := questiongen.RunInput{
		Level:   s.level,
		Source:  source,
		Targets: cur.Weights,
		Scopes:  scopes,
	}

	updates, done := s.updates, s.done
	go func() {
		result, err := runner.Run(context.Background(), input, func(p questiongen.Progress) {
			updates <- p
		})
		close(updates)
		done <- runDoneMsg{result: result, err: err}
	}()

	return s.listen()
}

// listen waits for the next progress update or the final result.
func (s *Screen) listen() tea.Cmd {
	updates, done := s.updates, s.done
	return func() tea.Msg {
		if p, ok := <-updates; ok {
			return progressMsg(p)
		}
		return <-done
	}
}

func (s *Screen) View(width, height int) string {
	if s.provider == nil {
		return lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Error).
			Render("\n\n" + i18n.T("generate.failed") + "\nSet an LLM API key (GEMINI_API_KEY etc.) and restart.")
	}

	var b []string
	if !s.running && s.result == nil && s.errMsg == "" {
		if s.step == stepSource {
			b = append(b, "", lipgloss.NewStyle().
				Foreground(theme.Secondary).Bold(true).
				Render("  "+i18n.T("setup.source")), "")
			b = append(b, "  "+s.source.View())
			return join(b)
		}
		b = append(b, "", lipgloss.NewStyle().
			Foreground(theme.Secondary).Bold(true).
			Render("  "+i18n.T("setup.level")), "")
		for i, lvl := range exam.Levels() {
			line := "    " + lvl
			style := lipgloss.NewStyle().Foreground(theme.Text)
			if i == s.selected {
				line = "  ▸ " + lvl
				style = lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
			}
			b = append(b, style.Render(line))
		}
		return join(b)
	}

	if s.running {
		b = append(b, "", lipgloss.NewStyle().
			Foreground(theme.Accent).
			Render("  "+i18n.T("generate.running")), "")
	}
	barWidth := min(width-8, 60)
	for _, ch := range s.order {
		p := s.progress[ch]
		pct := 0.0
		if p.Target > 0 {
			pct = float64(p.Added) / float64(p.Target)
		}
		label := i18n.Td("generate.chapter", map[string]any{
			"Chapter": p.Chapter, "Added": p.Added, "Target": p.Target,
		})
		bar := components.NewProgressBar(label, pct, false, barWidth)
		b = append(b, "  "+bar.View())
	}

	if s.errMsg != "" {
		b = append(b, "", lipgloss.NewStyle().Foreground(theme.Error).Render("  "+s.errMsg))
	} else if s.result != nil {
		summary := i18n.Td("generate.done", map[string]any{
			"Added": s.result.Added, "Skipped": s.result.Skipped,
		})
		b = append(b, "", lipgloss.NewStyle().Foreground(theme.Success).Render("  "+summary))
	}
	return join(b)
}

func join(lines []string) string {
	out := ""
	for _, l := range lines {
		out += l + "\n"
	}
	return out
}
