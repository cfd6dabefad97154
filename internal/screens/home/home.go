// Package home is the top level menu of the application.
package home

import (
	"log/slog"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/dronecbt/internal/bank"
	"github.com/abhisek/dronecbt/internal/config"
	sess "github.com/abhisek/dronecbt/internal/exam"
	"github.com/abhisek/dronecbt/internal/i18n"
	"github.com/abhisek/dronecbt/internal/llm"
	"github.com/abhisek/dronecbt/internal/router"
	"github.com/abhisek/dronecbt/internal/screen"
	"github.com/abhisek/dronecbt/internal/screens/check"
	examscreen "github.com/abhisek/dronecbt/internal/screens/exam"
	"github.com/abhisek/dronecbt/internal/screens/generate"
	"github.com/abhisek/dronecbt/internal/screens/setup"
	"github.com/abhisek/dronecbt/internal/screens/stats"
	"github.com/abhisek/dronecbt/internal/ui/components"
	"github.com/abhisek/dronecbt/internal/ui/theme"
)

// HomeScreen is the main menu.
type HomeScreen struct {
	menu components.Menu
}

var _ screen.Screen = (*HomeScreen)(nil)

// New creates the home screen. provider may be nil when no LLM key is
// configured; generation then explains how to enable it.
func New(store *bank.Store, provider llm.Provider, logger *slog.Logger, cfg config.Config) *HomeScreen {
	makeExam := func(session *sess.Session) screen.Screen {
		return examscreen.New(session, cfg.ReportFile, cfg.FlagFile)
	}

	items := []components.MenuItem{
		{Label: i18n.T("home.start_exam"), Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: setup.New(store, cfg.MinQuestions, makeExam)}
			}
		}},
		{Label: i18n.T("home.stats"), Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: stats.New(store, cfg.ReportFile)}
			}
		}},
		{Label: i18n.T("home.generate"), Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: generate.New(store, provider, logger)}
			}
		}},
		{Label: i18n.T("home.check"), Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: check.New(store, cfg.StatusFile)}
			}
		}},
		{Label: i18n.T("home.quit"), Action: func() tea.Cmd {
			return tea.Quit
		}},
	}

	return &HomeScreen{menu: components.NewMenu(items)}
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	title := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true).
		Render("DroneCBT")
	subtitle := lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Render(i18n.T("home.title"))

	menu := theme.Card.Render(h.menu.View())

	content := strings.Join([]string{title, subtitle, "", menu}, "\n")
	centered := lipgloss.NewStyle().Align(lipgloss.Center).Render(content)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, centered)
}

func (h *HomeScreen) Title() string {
	return i18n.T("home.title")
}
