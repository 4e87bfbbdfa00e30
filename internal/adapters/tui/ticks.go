package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/xvierd/countdown/internal/ports"
)

// tickMsg is delivered by tea.Tick for schedule id.
type tickMsg struct {
	id       uint64
	interval time.Duration
}

// TeaTicker implements ports.Scheduler with tea.Tick. Each schedule is
// re-armed after its callback runs; cancelling drops the schedule, so a
// tick already in flight finds nothing to run. Every method must be called
// from the program's event loop.
type TeaTicker struct {
	nextID  uint64
	live    map[uint64]func()
	pending []tea.Cmd
}

// NewTeaTicker creates an empty scheduler.
func NewTeaTicker() *TeaTicker {
	return &TeaTicker{live: make(map[uint64]func())}
}

// Every queues the first tick for fn and returns its cancel function.
func (t *TeaTicker) Every(interval time.Duration, fn func()) func() {
	t.nextID++
	id := t.nextID
	t.live[id] = fn
	t.pending = append(t.pending, arm(id, interval))
	return func() {
		delete(t.live, id)
	}
}

// Handle runs the callback for msg and returns the next tick, or nil if
// the schedule was cancelled.
func (t *TeaTicker) Handle(msg tickMsg) tea.Cmd {
	fn, ok := t.live[msg.id]
	if !ok {
		return nil
	}
	fn()
	if _, ok := t.live[msg.id]; !ok {
		return nil
	}
	return arm(msg.id, msg.interval)
}

// Drain returns the first ticks of newly created schedules.
func (t *TeaTicker) Drain() tea.Cmd {
	cmds := t.pending
	t.pending = nil
	return batch(cmds...)
}

func arm(id uint64, interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(time.Time) tea.Msg {
		return tickMsg{id: id, interval: interval}
	})
}

// batch drops nil commands and avoids wrapping a single command.
func batch(cmds ...tea.Cmd) tea.Cmd {
	var valid []tea.Cmd
	for _, c := range cmds {
		if c != nil {
			valid = append(valid, c)
		}
	}
	switch len(valid) {
	case 0:
		return nil
	case 1:
		return valid[0]
	default:
		return tea.Batch(valid...)
	}
}

// Ensure TeaTicker implements ports.Scheduler.
var _ ports.Scheduler = (*TeaTicker)(nil)
