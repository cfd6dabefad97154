// Package setup is the exam launch form: pick level, question set and
// mode, then sample the question set and hand off to the exam screen.
package setup

import (
	"math/rand/v2"
	"sort"
	"strconv"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/dronecbt/internal/bank"
	sess "github.com/abhisek/dronecbt/internal/exam"
	"github.com/abhisek/dronecbt/internal/i18n"
	"github.com/abhisek/dronecbt/internal/router"
	"github.com/abhisek/dronecbt/internal/screen"
	"github.com/abhisek/dronecbt/internal/ui/layout"
	"github.com/abhisek/dronecbt/internal/ui/theme"
)

// ExamFactory builds the exam screen for a started session.
type ExamFactory func(session *sess.Session) screen.Screen

// form steps, walked through in order.
const (
	stepLevel = iota
	stepSource
	stepMode
)

const allSources = ""

// Screen is the exam setup form.
type Screen struct {
	store       *bank.Store
	minStock    int
	makeExam    ExamFactory
	step        int
	selected    int
	level       string
	source      string
	realMode    bool
	sources     []string
	stockByLvl  map[string]int
	warning     string
	errMsg      string
}

var _ screen.Screen = (*Screen)(nil)
var _ screen.KeyHintProvider = (*Screen)(nil)

// sourcesLoadedMsg carries the scanned collections for the source step.
type sourcesLoadedMsg struct {
	sources []string
	stock   map[string]int
	err     error
}

// examStartedMsg carries the sampled session, or the launch error.
type examStartedMsg struct {
	session *sess.Session
	err     error
}

// New creates the setup screen. minStock is the question count below
// which a warning is shown; zero stock always blocks the launch.
func New(store *bank.Store, minStock int, makeExam ExamFactory) *Screen {
	return &Screen{store: store, minStock: minStock, makeExam: makeExam}
}

func (s *Screen) Init() tea.Cmd {
	return nil
}

func (s *Screen) Title() string {
	return i18n.T("setup.title")
}

func (s *Screen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: i18n.T("common.select")},
		{Key: "Enter", Description: i18n.T("common.confirm")},
		{Key: "Esc", Description: i18n.T("common.back")},
	}
}

func (s *Screen) options() []string {
	switch s.step {
	case stepLevel:
		return sess.Levels()
	case stepSource:
		opts := []string{i18n.T("stats.total")}
		return append(opts, s.sources...)
	default:
		return []string{i18n.T("setup.mode_real"), i18n.T("setup.mode_practice")}
	}
}

func (s *Screen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case sourcesLoadedMsg:
		if msg.err != nil {
			s.errMsg = msg.err.Error()
			return s, nil
		}
		s.sources = msg.sources
		s.stockByLvl = msg.stock
		total := 0
		for _, n := range msg.stock {
			total += n
		}
		if total == 0 {
			s.errMsg = i18n.T("setup.no_questions")
			return s, nil
		}
		s.warning = ""
		if total < s.minStock {
			s.warning = i18n.Td("setup.few_questions", map[string]any{"Count": total})
		}
		s.step = stepSource
		s.selected = 0
		return s, nil

	case examStartedMsg:
		if msg.err != nil {
			s.errMsg = i18n.T("setup.no_questions")
			s.step = stepLevel
			s.selected = 0
			return s, nil
		}
		return s, func() tea.Msg {
			return router.ReplaceScreenMsg{Screen: s.makeExam(msg.session)}
		}

	case tea.KeyMsg:
		return s.handleKey(msg)
	}
	return s, nil
}

func (s *Screen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	opts := s.options()
	switch msg.String() {
	case "up", "k":
		if s.selected > 0 {
			s.selected--
		}
	case "down", "j":
		if s.selected < len(opts)-1 {
			s.selected++
		}
	case "enter":
		return s.confirmStep()
	}
	return s, nil
}

func (s *Screen) confirmStep() (screen.Screen, tea.Cmd) {
	s.errMsg = ""
	switch s.step {
	case stepLevel:
		s.level = sess.Levels()[s.selected]
		return s, s.loadSources()

	case stepSource:
		if s.selected == 0 {
			s.source = allSources
		} else {
			s.source = s.sources[s.selected-1]
		}
		s.step = stepMode
		s.selected = 0
		return s, nil

	default:
		s.realMode = s.selected == 0
		return s, s.startExam()
	}
}

// loadSources scans the bank for collections holding the chosen level.
func (s *Screen) loadSources() tea.Cmd {
	store := s.store
	level := s.level
	return func() tea.Msg {
		all, err := store.ListSources()
		if err != nil {
			return sourcesLoadedMsg{err: err}
		}
		var names []string
		stock := make(map[string]int)
		for name, st := range all {
			if n := st.ByLevel[level]; n > 0 {
				names = append(names, name)
				stock[name] = n
			}
		}
		sort.Strings(names)
		return sourcesLoadedMsg{sources: names, stock: stock}
	}
}

func (s *Screen) startExam() tea.Cmd {
	store := s.store
	level, source, realMode := s.level, s.source, s.realMode
	return func() tea.Msg {
		pool, err := store.LoadQuestions(level, source)
		if err != nil {
			return examStartedMsg{err: err}
		}
		cur, err := sess.DefaultCurriculum(level)
		if err != nil {
			return examStartedMsg{err: err}
		}

		rng := rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), rand.Uint64()))
		set := sess.SelectExamSet(pool, cur.Total, cur.Weights, rng)

		session, err := sess.Start(set, sess.Options{
			Level:    level,
			Source:   source,
			Limit:    cur.TimeLimit,
			RealMode: realMode,
		})
		if err != nil {
			return examStartedMsg{err: err}
		}
		return examStartedMsg{session: session}
	}
}

func (s *Screen) View(width, height int) string {
	var b []string

	label := i18n.T("setup.level")
	switch s.step {
	case stepSource:
		label = i18n.T("setup.source")
	case stepMode:
		label = i18n.T("setup.mode")
	}
	b = append(b, "", lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Bold(true).
		Render("  "+label), "")

	for i, opt := range s.options() {
		line := "    " + opt
		style := lipgloss.NewStyle().Foreground(theme.Text)
		if i == s.selected {
			line = "  ▸ " + opt
			style = lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
		}
		if s.step == stepSource && i > 0 {
			if n, ok := s.stockByLvl[s.sources[i-1]]; ok {
				line += lipgloss.NewStyle().
					Foreground(theme.TextDim).
					Render(stockSuffix(n))
			}
		}
		b = append(b, style.Render(line))
	}

	if s.warning != "" {
		b = append(b, "", lipgloss.NewStyle().Foreground(theme.Accent).Render("  "+s.warning))
	}
	if s.errMsg != "" {
		b = append(b, "", lipgloss.NewStyle().Foreground(theme.Error).Render("  "+s.errMsg))
	}

	content := ""
	for _, line := range b {
		content += line + "\n"
	}
	return content
}

func stockSuffix(n int) string {
	return "  (" + strconv.Itoa(n) + ")"
}
