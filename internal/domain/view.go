package domain

import "fmt"

// Controls describes which actions a renderer should offer.
type Controls struct {
	StartEnabled bool
	StartLabel   string
	PauseEnabled bool
	StopEnabled  bool
	ResetEnabled bool
	InputVisible bool
}

// View is a snapshot of everything a renderer needs. It is a pure
// projection of widget state.
type View struct {
	Phase            Phase
	Input            DurationInput
	TotalSeconds     int
	RemainingSeconds int
	Remaining        string
	Progress         float64
	Controls         Controls
	Fullscreen       bool
	Expired          bool
	RunID            string
}

// NewView projects a countdown and the fullscreen flag into a View.
func NewView(c *Countdown, fullscreen bool) View {
	return View{
		Phase:            c.Phase,
		Input:            c.Input,
		TotalSeconds:     c.Total,
		RemainingSeconds: c.Remaining,
		Remaining:        FormatRemaining(c.Remaining),
		Progress:         c.Progress(),
		Controls:         c.Controls(),
		Fullscreen:       fullscreen,
		Expired:          c.Expired(),
		RunID:            c.RunID,
	}
}

// FormatRemaining formats a number of seconds as MM:SS. Minutes are
// padded to two digits and grow past that as needed.
func FormatRemaining(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}
