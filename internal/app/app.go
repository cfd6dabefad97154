// Package app wires the Bubble Tea program: root model, router, frame.
package app

import (
	"fmt"
	"log/slog"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/dronecbt/internal/bank"
	"github.com/abhisek/dronecbt/internal/config"
	"github.com/abhisek/dronecbt/internal/i18n"
	"github.com/abhisek/dronecbt/internal/llm"
	"github.com/abhisek/dronecbt/internal/router"
	"github.com/abhisek/dronecbt/internal/screen"
	"github.com/abhisek/dronecbt/internal/screens/home"
	"github.com/abhisek/dronecbt/internal/ui/layout"
)

// Options carries everything the TUI needs. Provider may be nil when no
// LLM key is configured.
type Options struct {
	Store    *bank.Store
	Provider llm.Provider
	Logger   *slog.Logger
	Config   config.Config
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	width  int
	height int
}

func newAppModel(opts Options) AppModel {
	homeScreen := home.New(opts.Store, opts.Provider, opts.Logger, opts.Config)
	return AppModel{
		router: router.New(homeScreen),
	}
}

func (m AppModel) Init() tea.Cmd {
	return nil
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			// The exam screen owns esc for its abort confirmation.
			if m.router.Depth() > 1 && !activeHandlesEsc(m.router.Active()) {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

// activeHandlesEsc reports whether the active screen consumes esc itself.
func activeHandlesEsc(s screen.Screen) bool {
	type escOwner interface{ HandlesEsc() bool }
	if o, ok := s.(escOwner); ok {
		return o.HandlesEsc()
	}
	return false
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	header := layout.RenderHeader(title, "", m.width)

	footerHints := []layout.KeyHint{
		{Key: "↑↓", Description: i18n.T("common.select")},
		{Key: "Enter", Description: i18n.T("common.confirm")},
		{Key: "Ctrl+C", Description: i18n.T("common.quit")},
	}
	if hinted, ok := active.(screen.KeyHintProvider); ok {
		footerHints = hinted.KeyHints()
	} else if m.router.Depth() > 1 {
		footerHints = []layout.KeyHint{
			{Key: "Esc", Description: i18n.T("common.back")},
			{Key: "Ctrl+C", Description: i18n.T("common.quit")},
		}
	}

	footer := layout.RenderFooter(footerHints, m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := m.height - headerHeight - footerHeight
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.router.View(m.width, contentHeight)
	frame := layout.RenderFrame(header, content, footer, m.width, m.height)

	v.SetContent(frame)
	return v
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	p := tea.NewProgram(newAppModel(opts))
	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
