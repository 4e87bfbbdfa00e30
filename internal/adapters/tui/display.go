package tui

import (
	"context"
	"errors"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/term"
	"github.com/xvierd/countdown/internal/ports"
)

// ErrNotTerminal is returned when fullscreen is requested but the output
// is not a terminal.
var ErrNotTerminal = errors.New("output is not a terminal")

// AltScreen implements ports.Display on the terminal's alternate screen.
//
// Requests do not switch the screen directly: they queue the matching
// Bubble Tea command, which the model returns from Update via Drain.
// Every method must be called from the program's event loop.
type AltScreen struct {
	fullscreen bool
	isTerminal func() bool
	pending    []tea.Cmd
	listeners  map[int]func(bool)
	nextID     int
}

// NewAltScreen creates a display bound to out.
func NewAltScreen(out *os.File) *AltScreen {
	return newAltScreen(func() bool {
		return term.IsTerminal(out.Fd())
	})
}

func newAltScreen(isTerminal func() bool) *AltScreen {
	return &AltScreen{
		isTerminal: isTerminal,
		listeners:  make(map[int]func(bool)),
	}
}

// IsFullscreen reports whether the alternate screen is active.
func (a *AltScreen) IsFullscreen() bool {
	return a.fullscreen
}

// RequestFullscreen switches to the alternate screen.
func (a *AltScreen) RequestFullscreen(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if !a.isTerminal() {
		return ErrNotTerminal
	}
	a.pending = append(a.pending, tea.EnterAltScreen)
	a.set(true)
	return nil
}

// ExitFullscreen returns to the normal screen.
func (a *AltScreen) ExitFullscreen(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	a.pending = append(a.pending, tea.ExitAltScreen)
	a.set(false)
	return nil
}

// Subscribe registers fn for fullscreen changes.
func (a *AltScreen) Subscribe(fn func(bool)) func() {
	id := a.nextID
	a.nextID++
	a.listeners[id] = fn
	return func() {
		delete(a.listeners, id)
	}
}

// Drain returns the queued screen commands and clears the queue.
func (a *AltScreen) Drain() tea.Cmd {
	if len(a.pending) == 0 {
		return nil
	}
	cmds := a.pending
	a.pending = nil
	return tea.Batch(cmds...)
}

// Filter is installed with tea.WithFilter. It treats esc on the alternate
// screen as the terminal's own exit gesture: the screen is restored and
// subscribers are told, and the key never reaches the model.
func (a *AltScreen) Filter(_ tea.Model, msg tea.Msg) tea.Msg {
	k, ok := msg.(tea.KeyMsg)
	if !ok || k.Type != tea.KeyEsc || !a.fullscreen {
		return msg
	}
	a.set(false)
	return tea.ExitAltScreen()
}

func (a *AltScreen) set(fullscreen bool) {
	if a.fullscreen == fullscreen {
		return
	}
	a.fullscreen = fullscreen
	for _, fn := range a.listeners {
		fn(fullscreen)
	}
}

// Ensure AltScreen implements ports.Display.
var _ ports.Display = (*AltScreen)(nil)
