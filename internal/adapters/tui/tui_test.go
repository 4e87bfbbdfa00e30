package tui

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/xvierd/countdown/internal/config"
	"github.com/xvierd/countdown/internal/domain"
	"github.com/xvierd/countdown/internal/services"
)

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func keyPress(s string) tea.Msg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "backspace":
		return tea.KeyMsg{Type: tea.KeyBackspace}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

type harness struct {
	model   Model
	ticks   *TeaTicker
	display *AltScreen
	widget  *services.Widget
}

func newHarness(t *testing.T, terminal bool, opts Options) *harness {
	t.Helper()
	ticks := NewTeaTicker()
	display := newAltScreen(func() bool { return terminal })
	widget := services.NewWidget(ticks, display, nil)
	t.Cleanup(widget.Close)
	return &harness{
		model:   NewModel(widget, display, ticks, opts),
		ticks:   ticks,
		display: display,
		widget:  widget,
	}
}

// send runs msg through Update and keeps the resulting model.
func (h *harness) send(msg tea.Msg) tea.Cmd {
	result, cmd := h.model.Update(msg)
	h.model = result.(Model)
	return cmd
}

func (h *harness) typeText(s string) {
	for _, r := range s {
		h.send(keyPress(string(r)))
	}
}

// tick delivers the tick message of every live schedule, as tea.Tick
// would after one interval.
func (h *harness) tick() {
	ids := make([]uint64, 0, len(h.ticks.live))
	for id := range h.ticks.live {
		ids = append(ids, id)
	}
	for _, id := range ids {
		h.send(tickMsg{id: id, interval: services.TickInterval})
	}
}

// runCmd executes cmd and any batched commands, returning their messages.
// Only use it for commands that complete immediately.
func runCmd(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if b, ok := msg.(tea.BatchMsg); ok {
		var msgs []tea.Msg
		for _, c := range b {
			msgs = append(msgs, runCmd(c)...)
		}
		return msgs
	}
	return []tea.Msg{msg}
}

func (h *harness) view() string {
	h.send(tea.WindowSizeMsg{Width: 80, Height: 24})
	return h.model.View()
}

// ---------------------------------------------------------------------------
// Input and countdown flows
// ---------------------------------------------------------------------------

func TestModel_TypingUpdatesWidgetInput(t *testing.T) {
	h := newHarness(t, true, Options{})

	h.typeText("1")
	h.send(keyPress("tab"))
	h.typeText("30")

	in := h.widget.Snapshot().Input
	if in.Minutes != "1" || in.Seconds != "30" {
		t.Errorf("input = %+v, want minutes=1 seconds=30", in)
	}
}

func TestModel_StartAndTicks(t *testing.T) {
	h := newHarness(t, true, Options{Minutes: "1", Seconds: "30"})

	h.send(keyPress("enter"))
	if got := h.widget.Snapshot().RemainingSeconds; got != 90 {
		t.Fatalf("remaining after start = %d, want 90", got)
	}

	for i := 0; i < 5; i++ {
		h.tick()
	}

	v := h.widget.Snapshot()
	if v.RemainingSeconds != 85 {
		t.Errorf("remaining = %d, want 85", v.RemainingSeconds)
	}
	if v.Phase != domain.PhaseRunning {
		t.Errorf("phase = %v, want %v", v.Phase, domain.PhaseRunning)
	}
	if !strings.Contains(h.view(), "01:25") {
		t.Error("view should show the remaining time 01:25")
	}
}

func TestModel_StartKeyIgnoredWithoutInput(t *testing.T) {
	h := newHarness(t, true, Options{})

	h.send(keyPress("s"))

	if h.widget.Snapshot().Phase != domain.PhaseIdle {
		t.Error("[s] with no duration should leave the timer idle")
	}
	if len(h.ticks.live) != 0 {
		t.Error("no tick should be scheduled")
	}
}

func TestModel_InputsHiddenWhileActive(t *testing.T) {
	h := newHarness(t, true, Options{Seconds: "45"})

	if !strings.Contains(h.view(), inputLabel) {
		t.Error("idle view should show the duration inputs")
	}

	h.send(keyPress("enter"))
	view := h.view()
	if strings.Contains(view, inputLabel) {
		t.Error("running view should hide the duration inputs")
	}
	if !strings.Contains(view, "00:45") {
		t.Error("running view should show 00:45")
	}

	h.typeText("9")
	if h.widget.Snapshot().Input.Seconds != "45" {
		t.Error("typing while running must not change the input")
	}
}

func TestModel_PauseAndResume(t *testing.T) {
	h := newHarness(t, true, Options{Seconds: "20"})
	h.send(keyPress("enter"))
	h.tick()

	h.send(keyPress("p"))

	view := h.view()
	if !strings.Contains(view, "PAUSED") {
		t.Error("paused view should show the PAUSED badge")
	}
	if !strings.Contains(view, "Resume") {
		t.Error("paused view should offer Resume")
	}
	if len(h.ticks.live) != 0 {
		t.Error("pausing should cancel the tick")
	}

	h.send(keyPress("enter"))
	if v := h.widget.Snapshot(); v.Phase != domain.PhaseRunning || v.RemainingSeconds != 19 {
		t.Errorf("after resume phase=%v remaining=%d, want running/19", v.Phase, v.RemainingSeconds)
	}
}

func TestModel_StopRewinds(t *testing.T) {
	h := newHarness(t, true, Options{Seconds: "10"})
	h.send(keyPress("enter"))
	h.tick()
	h.tick()

	h.send(keyPress("x"))

	v := h.widget.Snapshot()
	if v.RemainingSeconds != 10 || v.Phase != domain.PhaseIdle {
		t.Errorf("after stop remaining=%d phase=%v, want 10/idle", v.RemainingSeconds, v.Phase)
	}
}

func TestModel_ResetClearsInputs(t *testing.T) {
	h := newHarness(t, true, Options{Minutes: "3", Seconds: "5"})
	h.send(keyPress("enter"))

	h.send(keyPress("r"))

	if h.model.inputs[fieldMinutes].Value() != "" || h.model.inputs[fieldSeconds].Value() != "" {
		t.Error("reset should clear both text fields")
	}
	v := h.widget.Snapshot()
	if v.TotalSeconds != 0 || v.RemainingSeconds != 0 {
		t.Errorf("after reset total=%d remaining=%d, want 0/0", v.TotalSeconds, v.RemainingSeconds)
	}
}

func TestModel_ExpiryShowsComplete(t *testing.T) {
	h := newHarness(t, true, Options{Seconds: "1"})
	h.send(keyPress("enter"))

	h.tick()

	if !h.widget.Snapshot().Expired {
		t.Fatal("countdown should have expired")
	}
	if !strings.Contains(h.view(), "Countdown complete") {
		t.Error("expired view should say the countdown is complete")
	}
	if len(h.ticks.live) != 0 {
		t.Error("expiry should cancel the tick")
	}
}

func TestModel_QuitKey(t *testing.T) {
	h := newHarness(t, true, Options{})

	cmd := h.send(keyPress("q"))
	if cmd == nil {
		t.Fatal("[q] should return a command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("[q] should quit")
	}
}

// ---------------------------------------------------------------------------
// Fullscreen
// ---------------------------------------------------------------------------

func TestModel_FullscreenToggle(t *testing.T) {
	h := newHarness(t, true, Options{})

	cmd := h.send(keyPress("f"))
	if cmd == nil {
		t.Error("entering fullscreen should return a screen command")
	}
	if !h.widget.Fullscreen() {
		t.Fatal("widget should be fullscreen")
	}
	if !strings.Contains(h.view(), "Exit fullscreen") {
		t.Error("fullscreen view should offer to exit")
	}

	h.send(keyPress("f"))
	if h.widget.Fullscreen() {
		t.Error("second [f] should leave fullscreen")
	}
}

func TestModel_FullscreenFailure(t *testing.T) {
	h := newHarness(t, false, Options{Seconds: "5"})
	h.send(keyPress("enter"))

	h.send(keyPress("f"))

	if h.widget.Fullscreen() {
		t.Error("failed request must not mark fullscreen")
	}
	if !errors.Is(h.model.lastError, ErrNotTerminal) {
		t.Errorf("lastError = %v, want ErrNotTerminal", h.model.lastError)
	}
	if !strings.Contains(h.view(), "Fullscreen unavailable") {
		t.Error("view should report the failure")
	}

	h.tick()
	if h.widget.Snapshot().RemainingSeconds != 4 {
		t.Error("countdown should keep running after a fullscreen failure")
	}
}

func TestModel_EscapeGestureExitsFullscreen(t *testing.T) {
	h := newHarness(t, true, Options{})
	h.send(keyPress("f"))

	filtered := h.display.Filter(h.model, keyPress("esc"))

	if _, ok := filtered.(tea.KeyMsg); ok {
		t.Error("esc in fullscreen should be consumed by the filter")
	}
	if h.widget.Fullscreen() {
		t.Error("widget should mirror the external exit")
	}
}

func TestModel_InitStartFullscreen(t *testing.T) {
	h := newHarness(t, true, Options{StartFullscreen: true})

	if cmd := h.model.Init(); cmd == nil {
		t.Error("Init should return commands")
	}
	if !h.widget.Fullscreen() {
		t.Error("StartFullscreen should enter fullscreen on init")
	}
}

func TestModel_BigDigitsInFullscreen(t *testing.T) {
	h := newHarness(t, true, Options{Seconds: "42", BigDigits: true})
	h.send(keyPress("enter"))
	h.send(keyPress("f"))

	view := h.view()
	if strings.Contains(view, "00:42") {
		t.Error("fullscreen readout should use block digits")
	}
	if !strings.Contains(view, "▀▄▄▀") {
		t.Error("fullscreen readout should contain block glyphs")
	}
}

func TestAltScreen_FilterPassThrough(t *testing.T) {
	a := newAltScreen(func() bool { return true })

	if got, ok := a.Filter(nil, keyPress("esc")).(tea.KeyMsg); !ok || got.Type != tea.KeyEsc {
		t.Error("esc while windowed should reach the model")
	}

	_ = a.RequestFullscreen(context.Background())
	if got, ok := a.Filter(nil, keyPress("1")).(tea.KeyMsg); !ok || got.String() != "1" {
		t.Error("non-esc keys should pass through")
	}
	if !a.IsFullscreen() {
		t.Error("non-esc keys should not leave fullscreen")
	}
}

func TestAltScreen_RequestHonoursContext(t *testing.T) {
	a := newAltScreen(func() bool { return true })
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := a.RequestFullscreen(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("RequestFullscreen() error = %v, want context.Canceled", err)
	}
	if a.IsFullscreen() {
		t.Error("cancelled request must not switch screens")
	}
}

func TestAltScreen_SubscribeAndDrain(t *testing.T) {
	a := newAltScreen(func() bool { return true })
	var got []bool
	unsubscribe := a.Subscribe(func(fs bool) { got = append(got, fs) })

	_ = a.RequestFullscreen(context.Background())
	_ = a.ExitFullscreen(context.Background())
	unsubscribe()
	_ = a.RequestFullscreen(context.Background())

	if len(got) != 2 || !got[0] || got[1] {
		t.Errorf("notifications = %v, want [true false]", got)
	}
	if a.Drain() == nil {
		t.Error("Drain() should return the queued commands")
	}
	if a.Drain() != nil {
		t.Error("Drain() should empty the queue")
	}
}

// ---------------------------------------------------------------------------
// Rendering helpers
// ---------------------------------------------------------------------------

func TestRenderBigTime(t *testing.T) {
	narrow := renderBigTime("01:30", lipgloss.Color("#FFFFFF"), 20)
	if !strings.Contains(narrow, "01:30") || strings.Contains(narrow, "\n") {
		t.Errorf("narrow render = %q, want a single line", narrow)
	}

	wide := renderBigTime("01:30", lipgloss.Color("#FFFFFF"), 80)
	if lines := strings.Split(wide, "\n"); len(lines) != glyphHeight {
		t.Errorf("wide render has %d lines, want %d", len(lines), glyphHeight)
	}

	long := renderBigTime("100:05", lipgloss.Color("#FFFFFF"), 80)
	if lines := strings.Split(long, "\n"); len(lines) != glyphHeight {
		t.Errorf("three-digit minutes render has %d lines, want %d", len(lines), glyphHeight)
	}
}

func TestResolveTheme(t *testing.T) {
	defaults := config.DefaultThemeConfig()

	if got := resolveTheme(nil); got != defaults {
		t.Error("nil theme should resolve to defaults")
	}

	partial := &config.ThemeConfig{ColorRunning: "#000000"}
	got := resolveTheme(partial)
	if got.ColorRunning != "#000000" {
		t.Errorf("ColorRunning = %q, want override", got.ColorRunning)
	}
	if got.IconPaused != defaults.IconPaused {
		t.Errorf("IconPaused = %q, want default %q", got.IconPaused, defaults.IconPaused)
	}
}

// ---------------------------------------------------------------------------
// Tick scheduling
// ---------------------------------------------------------------------------

func TestTeaTicker_HandleRearmsUntilCancelled(t *testing.T) {
	ticks := NewTeaTicker()
	calls := 0
	cancel := ticks.Every(time.Second, func() { calls++ })

	if ticks.Drain() == nil {
		t.Fatal("Every should queue the first tick")
	}
	if ticks.Drain() != nil {
		t.Error("Drain() should empty the queue")
	}

	msg := tickMsg{id: 1, interval: time.Second}
	if next := ticks.Handle(msg); next == nil {
		t.Error("a live schedule should re-arm after its callback")
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}

	cancel()
	if next := ticks.Handle(msg); next != nil {
		t.Error("a cancelled schedule should not re-arm")
	}
	if calls != 1 {
		t.Errorf("cancelled schedule ran, calls = %d, want 1", calls)
	}
}

func TestTeaTicker_CallbackCancellingItself(t *testing.T) {
	ticks := NewTeaTicker()
	var cancel func()
	cancel = ticks.Every(time.Second, func() { cancel() })

	if next := ticks.Handle(tickMsg{id: 1, interval: time.Second}); next != nil {
		t.Error("a schedule cancelled by its own callback should not re-arm")
	}
}

func TestModel_StartReturnsFirstTick(t *testing.T) {
	h := newHarness(t, true, Options{Seconds: "10"})

	if cmd := h.send(keyPress("enter")); cmd == nil {
		t.Error("starting should return the first tick command")
	}
	if cmd := h.send(keyPress("p")); cmd != nil {
		t.Error("pausing should not schedule anything")
	}
}

func TestModel_StaleTickAfterResumeIgnored(t *testing.T) {
	h := newHarness(t, true, Options{Seconds: "10"})
	h.send(keyPress("enter"))

	var stale uint64
	for id := range h.ticks.live {
		stale = id
	}

	h.send(keyPress("p"))
	h.send(keyPress("enter"))
	h.send(tickMsg{id: stale, interval: services.TickInterval})

	if got := h.widget.Snapshot().RemainingSeconds; got != 10 {
		t.Errorf("remaining = %d, want 10; a tick from the old schedule ran", got)
	}

	h.tick()
	if got := h.widget.Snapshot().RemainingSeconds; got != 9 {
		t.Errorf("remaining = %d, want 9", got)
	}
}

func TestModel_InitFullscreenFailureShown(t *testing.T) {
	h := newHarness(t, false, Options{StartFullscreen: true})

	var failure *fullscreenErrMsg
	for _, msg := range runCmd(h.model.Init()) {
		if m, ok := msg.(fullscreenErrMsg); ok {
			failure = &m
		}
	}
	if failure == nil {
		t.Fatal("Init should report the failed fullscreen request")
	}
	if !errors.Is(failure.err, ErrNotTerminal) {
		t.Errorf("error = %v, want ErrNotTerminal", failure.err)
	}

	h.send(*failure)
	if h.widget.Fullscreen() {
		t.Error("failed request must not mark fullscreen")
	}
	if !strings.Contains(h.view(), "Fullscreen unavailable") {
		t.Error("view should report the failed start in fullscreen")
	}
}

func TestModel_RunningShowsPhaseLabel(t *testing.T) {
	h := newHarness(t, true, Options{Seconds: "30"})
	h.send(keyPress("enter"))

	if !strings.Contains(h.view(), domain.GetPhaseLabel(domain.PhaseRunning)) {
		t.Error("running view should show the phase label")
	}
}
