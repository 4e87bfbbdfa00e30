// Package tui provides the terminal user interface implementation
// using the Bubbletea framework.
package tui

import (
	"context"
	"fmt"
	"reflect"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/xvierd/countdown/internal/config"
	"github.com/xvierd/countdown/internal/domain"
	"github.com/xvierd/countdown/internal/services"
)

const (
	fieldMinutes = iota
	fieldSeconds
)

const inputLabel = "Minutes : Seconds"

// resolveTheme fills any empty string fields in the given ThemeConfig with defaults.
// If theme is nil, returns the full default theme.
func resolveTheme(theme *config.ThemeConfig) config.ThemeConfig {
	defaults := config.DefaultThemeConfig()
	if theme == nil {
		return defaults
	}
	resolved := *theme
	rv := reflect.ValueOf(&resolved).Elem()
	dv := reflect.ValueOf(defaults)
	for i := 0; i < rv.NumField(); i++ {
		f := rv.Field(i)
		if f.Kind() == reflect.String && f.String() == "" {
			f.SetString(dv.Field(i).String())
		}
	}
	return resolved
}

// fullscreenErrMsg reports a failed fullscreen request made outside Update.
type fullscreenErrMsg struct {
	err error
}

// Options configures a Model.
type Options struct {
	Theme           *config.ThemeConfig
	BigDigits       bool
	StartFullscreen bool
	Minutes         string
	Seconds         string
}

// Model renders a Widget and turns key presses into widget actions.
type Model struct {
	widget          *services.Widget
	display         *AltScreen
	ticks           *TeaTicker
	keys            keyMap
	inputs          []textinput.Model
	focus           int
	progress        progress.Model
	theme           config.ThemeConfig
	bigDigits       bool
	startFullscreen bool
	width           int
	height          int
	lastError       error
}

// NewModel creates a TUI model for widget. display and ticks must be the
// display and scheduler the widget was built with.
func NewModel(widget *services.Widget, display *AltScreen, ticks *TeaTicker, opts Options) Model {
	theme := resolveTheme(opts.Theme)

	minutes := newDurationInput("Minutes")
	minutes.SetValue(opts.Minutes)
	minutes.Focus()
	seconds := newDurationInput("Seconds")
	seconds.SetValue(opts.Seconds)

	widget.SetInput(opts.Minutes, opts.Seconds)

	pbar := progress.New(progress.WithGradient(theme.GradientStart, theme.GradientEnd))
	pbar.Width = 40
	pbar.ShowPercentage = false

	return Model{
		widget:          widget,
		display:         display,
		ticks:           ticks,
		keys:            defaultKeyMap(),
		inputs:          []textinput.Model{minutes, seconds},
		progress:        pbar,
		theme:           theme,
		bigDigits:       opts.BigDigits,
		startFullscreen: opts.StartFullscreen,
	}
}

func newDurationInput(placeholder string) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = 6
	ti.Width = 8
	ti.Prompt = ""
	return ti
}

// Init initializes the TUI.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{textinput.Blink}
	if m.startFullscreen && !m.widget.Fullscreen() {
		if err := m.widget.ToggleFullscreen(context.Background()); err != nil {
			cmds = append(cmds, func() tea.Msg { return fullscreenErrMsg{err: err} })
		}
		cmds = append(cmds, m.display.Drain())
	}
	return batch(cmds...)
}

// Update handles messages and updates the model. Screen switches and new
// tick schedules queued while handling msg are returned with its command.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.update(msg)
	return next, batch(cmd, m.ticks.Drain(), m.display.Drain())
}

func (m Model) update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		return m, m.ticks.Handle(msg)

	case fullscreenErrMsg:
		m.lastError = msg.err
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.progress.Width = clamp(msg.Width-8, 10, 60)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	controls := m.widget.Snapshot().Controls

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Start):
		if controls.StartEnabled {
			m.widget.Start()
		}
		return m, nil

	case key.Matches(msg, m.keys.Pause):
		if controls.PauseEnabled {
			m.widget.Pause()
		}
		return m, nil

	case key.Matches(msg, m.keys.Stop):
		if controls.StopEnabled {
			m.widget.Stop()
		}
		return m, nil

	case key.Matches(msg, m.keys.Reset):
		m.widget.Reset()
		m.syncInputs()
		return m, nil

	case key.Matches(msg, m.keys.Fullscreen):
		m.lastError = m.widget.ToggleFullscreen(context.Background())
		return m, nil

	case key.Matches(msg, m.keys.NextField), key.Matches(msg, m.keys.PrevField):
		if controls.InputVisible {
			return m, m.switchField()
		}
		return m, nil
	}

	if !controls.InputVisible {
		return m, nil
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	m.widget.SetInput(m.inputs[fieldMinutes].Value(), m.inputs[fieldSeconds].Value())
	return m, cmd
}

// switchField moves focus between the two duration fields.
func (m *Model) switchField() tea.Cmd {
	m.inputs[m.focus].Blur()
	m.focus = (m.focus + 1) % len(m.inputs)
	return m.inputs[m.focus].Focus()
}

// syncInputs copies the widget's duration text into the text fields.
func (m *Model) syncInputs() {
	in := m.widget.Snapshot().Input
	m.inputs[fieldMinutes].SetValue(in.Minutes)
	m.inputs[fieldSeconds].SetValue(in.Seconds)
}

// View renders the TUI.
func (m Model) View() string {
	v := m.widget.Snapshot()

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(m.theme.ColorTitle))
	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.ColorHelp))

	var sections []string
	sections = append(sections, titleStyle.Render(fmt.Sprintf("%s Timer", m.theme.IconApp))+"  "+m.viewFullscreenToggle(v))
	sections = append(sections, helpStyle.Render("Set a time and control your countdown"))
	sections = append(sections, "")

	if v.Controls.InputVisible {
		sections = append(sections, m.viewInputs(v)...)
	} else {
		sections = append(sections, m.viewReadout(v)...)
	}

	sections = append(sections, "")
	sections = append(sections, m.viewControls(v))
	sections = append(sections, helpStyle.Render("tab switch field · q quit"))

	if m.lastError != nil {
		errStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.ColorExpired))
		sections = append(sections, "")
		sections = append(sections, errStyle.Render(fmt.Sprintf("Fullscreen unavailable: %v", m.lastError)))
	}

	content := lipgloss.JoinVertical(lipgloss.Center, sections...)
	if v.Fullscreen && m.width > 0 && m.height > 0 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(m.theme.ColorDisabled)).
		Padding(1, 2).
		Render(content)
}

func (m Model) viewFullscreenToggle(v domain.View) string {
	style := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.ColorHelp))
	if v.Fullscreen {
		return style.Render(fmt.Sprintf("%s [f] Exit fullscreen", m.theme.IconWindowed))
	}
	return style.Render(fmt.Sprintf("%s [f] Enter fullscreen", m.theme.IconFullscreen))
}

func (m Model) viewInputs(v domain.View) []string {
	fieldStyle := lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color(m.theme.ColorDisabled)).
		Padding(0, 1)
	focusedStyle := fieldStyle.BorderForeground(lipgloss.Color(m.theme.ColorRunning))

	fields := make([]string, len(m.inputs))
	for i, in := range m.inputs {
		style := fieldStyle
		if i == m.focus {
			style = focusedStyle
		}
		fields[i] = style.Render(in.View())
	}
	colon := lipgloss.NewStyle().Bold(true).Padding(1, 1).Render(":")
	row := lipgloss.JoinHorizontal(lipgloss.Center, fields[fieldMinutes], colon, fields[fieldSeconds])

	labelStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.ColorHelp))
	sections := []string{labelStyle.Render(inputLabel), row}
	if v.Expired {
		expiredStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(m.theme.ColorExpired))
		sections = append(sections, expiredStyle.Render("Countdown complete"))
	}
	return sections
}

func (m Model) viewReadout(v domain.View) []string {
	color := lipgloss.Color(m.theme.ColorRunning)
	if v.Phase == domain.PhasePaused {
		color = lipgloss.Color(m.theme.ColorPaused)
	}

	var readout string
	if v.Fullscreen && m.bigDigits {
		readout = renderBigTime(v.Remaining, color, m.width)
	} else {
		readout = lipgloss.NewStyle().Bold(true).Foreground(color).Render(v.Remaining)
	}

	sections := []string{readout}
	if v.Phase == domain.PhaseRunning {
		statusStyle := lipgloss.NewStyle().Foreground(color)
		sections = append(sections, "", statusStyle.Render(domain.GetPhaseLabel(v.Phase)))
	}
	if v.Phase == domain.PhasePaused {
		pauseBadge := lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color(m.theme.ColorPaused)).
			Padding(0, 1).
			Render(fmt.Sprintf("%s PAUSED", m.theme.IconPaused))
		sections = append(sections, "", pauseBadge)
	}
	sections = append(sections, "", m.progress.ViewAs(v.Progress))
	return sections
}

func (m Model) viewControls(v domain.View) string {
	buttons := []string{
		m.button(m.keys.Start, v.Controls.StartLabel, v.Controls.StartEnabled),
		m.button(m.keys.Pause, "Pause", v.Controls.PauseEnabled),
		m.button(m.keys.Stop, "Stop", v.Controls.StopEnabled),
		m.button(m.keys.Reset, "Reset", v.Controls.ResetEnabled),
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, buttons...)
}

func (m Model) button(b key.Binding, label string, enabled bool) string {
	style := lipgloss.NewStyle().Padding(0, 1)
	if enabled {
		style = style.Bold(true).Foreground(lipgloss.Color(m.theme.ColorRunning))
	} else {
		style = style.Faint(true).Foreground(lipgloss.Color(m.theme.ColorDisabled))
	}
	return style.Render(fmt.Sprintf("[%s] %s", b.Help().Key, label))
}

func clamp(n, lo, hi int) int {
	if n < lo {
		return lo
	}
	if n > hi {
		return hi
	}
	return n
}
