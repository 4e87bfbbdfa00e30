// Package domain contains the countdown state machine and the values
// projected from it.
package domain

// Phase represents the operating mode of a countdown.
type Phase string

const (
	PhaseIdle    Phase = "idle"
	PhaseRunning Phase = "running"
	PhasePaused  Phase = "paused"
)

// Countdown is the timer state machine. All transitions are guarded:
// an operation that is not allowed in the current phase is a no-op.
//
// Invariant: 0 <= Remaining <= Total.
type Countdown struct {
	Input     DurationInput
	Total     int
	Remaining int
	Phase     Phase

	// RunID identifies the current run. It is assigned when a run starts
	// from Idle and kept across pause and resume.
	RunID string
}

// NewCountdown creates an idle countdown with nothing on the clock.
func NewCountdown() *Countdown {
	return &Countdown{Phase: PhaseIdle}
}

// Start begins a new run from Idle, or resumes a paused one.
// From Idle the input is parsed; a zero total leaves the countdown Idle.
// Returns true if the phase changed.
func (c *Countdown) Start() bool {
	switch c.Phase {
	case PhaseIdle:
		total := c.Input.TotalSeconds()
		if total <= 0 {
			return false
		}
		c.Total = total
		c.Remaining = total
		c.Phase = PhaseRunning
		c.RunID = generateID()
		return true
	case PhasePaused:
		c.Phase = PhaseRunning
		return true
	default:
		return false
	}
}

// Pause freezes a running countdown.
func (c *Countdown) Pause() bool {
	if c.Phase != PhaseRunning {
		return false
	}
	c.Phase = PhasePaused
	return true
}

// Stop ends the run and rewinds the clock to the run's original total.
func (c *Countdown) Stop() bool {
	if !c.IsActive() {
		return false
	}
	c.Phase = PhaseIdle
	c.Remaining = c.Total
	return true
}

// Reset returns to a blank idle countdown and clears the input.
func (c *Countdown) Reset() {
	c.Phase = PhaseIdle
	c.Remaining = 0
	c.Total = 0
	c.RunID = ""
	c.Input.Clear()
}

// Tick removes one second from a running countdown. When the clock
// reaches zero the countdown leaves Running instead of going negative.
// Returns true if a second was removed.
func (c *Countdown) Tick() bool {
	if c.Phase != PhaseRunning || c.Remaining <= 0 {
		return false
	}
	c.Remaining--
	if c.Remaining == 0 {
		c.Phase = PhaseIdle
	}
	return true
}

// SetInput replaces the duration text. The input is only editable
// while Idle.
func (c *Countdown) SetInput(minutes, seconds string) bool {
	if c.Phase != PhaseIdle {
		return false
	}
	c.Input = DurationInput{Minutes: minutes, Seconds: seconds}
	return true
}

// IsActive returns true if a run is in progress, running or paused.
func (c *Countdown) IsActive() bool {
	return c.Phase == PhaseRunning || c.Phase == PhasePaused
}

// Expired returns true if the last run counted all the way down.
func (c *Countdown) Expired() bool {
	return c.Phase == PhaseIdle && c.Total > 0 && c.Remaining == 0
}

// Progress returns the fraction of the run still on the clock (0.0 to 1.0).
func (c *Countdown) Progress() float64 {
	if c.Total <= 0 {
		return 0
	}
	p := float64(c.Remaining) / float64(c.Total)
	if p > 1 {
		return 1
	}
	return p
}

// Controls returns which actions are currently available.
func (c *Countdown) Controls() Controls {
	running := c.Phase == PhaseRunning
	label := "Start"
	if c.Phase == PhasePaused {
		label = "Resume"
	}
	return Controls{
		StartEnabled: !running && (c.Remaining > 0 || !c.Input.IsEmpty()),
		StartLabel:   label,
		PauseEnabled: running,
		StopEnabled:  c.IsActive(),
		ResetEnabled: true,
		InputVisible: c.Phase == PhaseIdle,
	}
}

// GetPhaseLabel returns a human-readable label for the phase.
func GetPhaseLabel(p Phase) string {
	switch p {
	case PhaseIdle:
		return "Idle"
	case PhaseRunning:
		return "Running"
	case PhasePaused:
		return "Paused"
	default:
		return "Unknown"
	}
}
