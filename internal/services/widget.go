package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"time"

	"github.com/xvierd/countdown/internal/domain"
	"github.com/xvierd/countdown/internal/ports"
)

// TickInterval is the period of the countdown tick.
const TickInterval = time.Second

var (
	// ErrWidgetClosed is returned by operations on a closed widget.
	ErrWidgetClosed = errors.New("widget closed")

	// ErrNoDisplay is returned when fullscreen is toggled without a display.
	ErrNoDisplay = errors.New("no display attached")
)

// Logger is the diagnostic sink used by the widget. *log.Logger satisfies it.
type Logger interface {
	Printf(format string, v ...any)
}

// Widget is a single countdown timer instance. It owns the state machine,
// the tick schedule and the display subscription, and releases the last
// two in Close.
//
// A Widget is not safe for concurrent use: every method, including the
// scheduler callbacks, must run on the same logical thread.
type Widget struct {
	countdown *domain.Countdown
	scheduler ports.Scheduler
	display   ports.Display
	logger    Logger

	fullscreen  bool
	unsubscribe func()

	cancelTick func()
	tickGen    uint64

	updateCallback func(domain.View)
	closed         bool
}

// NewWidget creates an idle widget. display may be nil for headless use;
// a nil logger discards diagnostics.
func NewWidget(scheduler ports.Scheduler, display ports.Display, logger Logger) *Widget {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	w := &Widget{
		countdown: domain.NewCountdown(),
		scheduler: scheduler,
		display:   display,
		logger:    logger,
	}
	if display != nil {
		w.fullscreen = display.IsFullscreen()
		w.unsubscribe = display.Subscribe(w.onFullscreenChange)
	}
	return w
}

// SetUpdateCallback sets a function to call after every state change.
func (w *Widget) SetUpdateCallback(callback func(domain.View)) {
	w.updateCallback = callback
}

// SetInput replaces the duration text. Ignored unless the widget is idle.
func (w *Widget) SetInput(minutes, seconds string) bool {
	if w.closed || !w.countdown.SetInput(minutes, seconds) {
		return false
	}
	w.changed()
	return true
}

// Start begins a run from the entered duration, or resumes a paused run.
func (w *Widget) Start() bool {
	if w.closed {
		return false
	}
	resuming := w.countdown.Phase == domain.PhasePaused
	if !w.countdown.Start() {
		return false
	}
	if resuming {
		w.logger.Printf("run %s resumed at %s", w.countdown.RunID, domain.FormatRemaining(w.countdown.Remaining))
	} else {
		w.logger.Printf("run %s started for %s", w.countdown.RunID, domain.FormatRemaining(w.countdown.Total))
	}
	w.syncTicker()
	w.changed()
	return true
}

// Pause freezes a running countdown.
func (w *Widget) Pause() bool {
	if w.closed || !w.countdown.Pause() {
		return false
	}
	w.logger.Printf("run %s paused at %s", w.countdown.RunID, domain.FormatRemaining(w.countdown.Remaining))
	w.syncTicker()
	w.changed()
	return true
}

// Stop ends the run and rewinds the clock to the original duration.
func (w *Widget) Stop() bool {
	if w.closed || !w.countdown.Stop() {
		return false
	}
	w.logger.Printf("run %s stopped", w.countdown.RunID)
	w.syncTicker()
	w.changed()
	return true
}

// Reset returns the widget to a blank idle state and clears the input.
func (w *Widget) Reset() {
	if w.closed {
		return
	}
	if w.countdown.RunID != "" {
		w.logger.Printf("run %s reset", w.countdown.RunID)
	}
	w.countdown.Reset()
	w.syncTicker()
	w.changed()
}

// ToggleFullscreen enters fullscreen if the display is windowed and
// leaves it otherwise. A failure is logged and returned; the fullscreen
// flag only changes when the display call succeeds.
func (w *Widget) ToggleFullscreen(ctx context.Context) error {
	if w.closed {
		return ErrWidgetClosed
	}
	if w.display == nil {
		w.logger.Printf("error toggling fullscreen: %v", ErrNoDisplay)
		return ErrNoDisplay
	}

	if !w.display.IsFullscreen() {
		if err := w.display.RequestFullscreen(ctx); err != nil {
			w.logger.Printf("error toggling fullscreen: %v", err)
			return fmt.Errorf("failed to enter fullscreen: %w", err)
		}
		w.fullscreen = true
	} else {
		if err := w.display.ExitFullscreen(ctx); err != nil {
			w.logger.Printf("error toggling fullscreen: %v", err)
			return fmt.Errorf("failed to exit fullscreen: %w", err)
		}
		w.fullscreen = false
	}
	w.changed()
	return nil
}

// Fullscreen reports the widget's view of the display mode.
func (w *Widget) Fullscreen() bool {
	return w.fullscreen
}

// Ticking reports whether a tick schedule is currently held.
func (w *Widget) Ticking() bool {
	return w.cancelTick != nil
}

// Snapshot returns the current state for rendering.
func (w *Widget) Snapshot() domain.View {
	return domain.NewView(w.countdown, w.fullscreen)
}

// Close cancels the tick schedule and releases the display subscription.
// It is safe to call more than once.
func (w *Widget) Close() {
	if w.closed {
		return
	}
	w.closed = true
	w.syncTicker()
	if w.unsubscribe != nil {
		w.unsubscribe()
		w.unsubscribe = nil
	}
}

// syncTicker holds a tick schedule exactly while the countdown is running
// with time left.
func (w *Widget) syncTicker() {
	want := !w.closed &&
		w.countdown.Phase == domain.PhaseRunning &&
		w.countdown.Remaining > 0

	switch {
	case want && w.cancelTick == nil:
		w.tickGen++
		gen := w.tickGen
		w.cancelTick = w.scheduler.Every(TickInterval, func() { w.onTick(gen) })
	case !want && w.cancelTick != nil:
		w.cancelTick()
		w.cancelTick = nil
		// Invalidate callbacks already in flight from the old schedule.
		w.tickGen++
	}
}

func (w *Widget) onTick(gen uint64) {
	if w.closed || w.cancelTick == nil || gen != w.tickGen {
		return
	}
	if !w.countdown.Tick() {
		w.syncTicker()
		return
	}
	if w.countdown.Expired() {
		w.logger.Printf("run %s expired", w.countdown.RunID)
	}
	w.syncTicker()
	w.changed()
}

func (w *Widget) onFullscreenChange(fullscreen bool) {
	if w.closed || w.fullscreen == fullscreen {
		return
	}
	w.fullscreen = fullscreen
	w.changed()
}

func (w *Widget) changed() {
	if w.updateCallback != nil {
		w.updateCallback(w.Snapshot())
	}
}
