// Package tui hosts the page indicator in a terminal.
package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/paginator"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"github.com/iburimskiy/dotpager/internal/anim"
	"github.com/iburimskiy/dotpager/internal/config"
	"github.com/iburimskiy/dotpager/internal/indicator"
	"github.com/iburimskiy/dotpager/internal/logging"
)

const frameInterval = time.Second / 60

type frameMsg time.Time

// ReloadMsg carries a reloaded configuration into the program.
type ReloadMsg struct {
	Config *config.Config
}

var (
	titleStyle = lipgloss.NewStyle().Bold(true)
	labelStyle = lipgloss.NewStyle().Faint(true)
	errStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

type Model struct {
	ctrl   *indicator.Controller
	driver *anim.Driver
	keys   keyMap
	help   help.Model
	pager  paginator.Model
	glyphs glyphs
	titles []string
	log    zerolog.Logger

	width     int
	height    int
	animating bool
	err       error
}

// New builds a model paging through titles, or through pages untitled
// pages when titles is empty.
func New(cfg *config.Config, titles []string, pages int, log zerolog.Logger) (Model, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	driver := anim.New()
	m := Model{
		ctrl: indicator.New(
			indicator.WithLogger(logging.WithComponent(log, "indicator")),
			indicator.WithTransitionFunc(driver.Apply),
		),
		driver: driver,
		keys:   defaultKeyMap(),
		help:   help.New(),
		glyphs: pickGlyphs(),
		titles: titles,
		log:    log,
		width:  80,
	}
	m.pager = paginator.New()
	m.pager.Type = paginator.Arabic
	m.pager.PerPage = 1

	if err := m.applyConfig(cfg); err != nil {
		return Model{}, err
	}
	if len(titles) > 0 {
		pages = len(titles)
	}
	m.ctrl.SetPageCount(pages)
	m.ctrl.SetViewport(indicator.Size{Width: float64(m.width), Height: 1})
	return m, nil
}

// applyConfig applies the indicator settings with one-cell dots.
func (m Model) applyConfig(cfg *config.Config) error {
	if err := cfg.Indicator.Apply(m.ctrl); err != nil {
		return err
	}
	m.ctrl.SetGeometry(1, float64(cfg.TUI.Spacing))
	return nil
}

func (m Model) Init() tea.Cmd {
	return nil
}

func frame() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg { return frameMsg(t) })
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.ctrl.SetViewport(indicator.Size{Width: float64(msg.Width), Height: 1})

	case ReloadMsg:
		if err := m.applyConfig(msg.Config); err != nil {
			m.log.Warn().Err(err).Msg("config reload rejected")
			m.err = err
			break
		}
		m.err = nil

	case frameMsg:
		if m.driver.Advance(frameInterval) {
			return m, frame()
		}
		m.animating = false
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) {
			return m, tea.Quit
		}
		m.handleKey(msg)
	}

	m.ctrl.LayoutIfNeeded()
	if m.driver.Running() && !m.animating {
		m.animating = true
		return m, frame()
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) {
	n := m.ctrl.PageCount()
	sel := m.ctrl.SelectedIndex()

	switch {
	case key.Matches(msg, m.keys.Next):
		if n > 0 {
			m.ctrl.SetSelectedIndex((sel + 1) % n)
		}
	case key.Matches(msg, m.keys.Prev):
		if n > 0 {
			m.ctrl.SetSelectedIndex((sel - 1 + n) % n)
		}
	case key.Matches(msg, m.keys.First):
		m.ctrl.SetSelectedIndex(0)
	case key.Matches(msg, m.keys.Last):
		m.ctrl.SetSelectedIndex(n - 1)
	case key.Matches(msg, m.keys.More):
		m.ctrl.SetMaxDots(m.ctrl.MaxDots() + 2)
	case key.Matches(msg, m.keys.Fewer):
		m.ctrl.SetMaxDots(m.ctrl.MaxDots() - 2)
	case key.Matches(msg, m.keys.Wider):
		m.ctrl.SetCenterDots(m.ctrl.CenterDots() + 2)
	case key.Matches(msg, m.keys.Narrower):
		m.ctrl.SetCenterDots(m.ctrl.CenterDots() - 2)
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}
}

func (m Model) title() string {
	n := m.ctrl.PageCount()
	if n == 0 {
		return "no pages"
	}
	sel := m.ctrl.SelectedIndex()
	if sel < len(m.titles) {
		return m.titles[sel]
	}
	return fmt.Sprintf("page %d", sel+1)
}

func (m Model) View() string {
	center := func(s string) string {
		return lipgloss.PlaceHorizontal(m.width, lipgloss.Center, s)
	}

	pager := m.pager
	pager.SetTotalPages(m.ctrl.PageCount())
	pager.Page = m.ctrl.SelectedIndex()

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(center(titleStyle.Render(m.title())))
	b.WriteString("\n\n")
	b.WriteString(renderRow(m.driver.Frame(), m.width, m.glyphs))
	b.WriteString("\n")
	b.WriteString(center(labelStyle.Render(pager.View())))
	b.WriteString("\n\n")
	if m.err != nil {
		b.WriteString(errStyle.Render(m.err.Error()))
		b.WriteString("\n")
	}
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

// Controller exposes the model's indicator for inspection.
func (m Model) Controller() *indicator.Controller { return m.ctrl }
