package domain

import "testing"

func TestFormatRemaining(t *testing.T) {
	tests := []struct {
		seconds int
		want    string
	}{
		{0, "00:00"},
		{5, "00:05"},
		{59, "00:59"},
		{60, "01:00"},
		{90, "01:30"},
		{25 * 60, "25:00"},
		{100*60 + 5, "100:05"},
		{-3, "00:00"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := FormatRemaining(tt.seconds); got != tt.want {
				t.Errorf("FormatRemaining(%d) = %q, want %q", tt.seconds, got, tt.want)
			}
		})
	}
}

func TestNewView(t *testing.T) {
	c := runningCountdown("1", "30")
	c.Tick()

	v := NewView(c, true)

	if v.Remaining != "01:29" {
		t.Errorf("Remaining = %q, want %q", v.Remaining, "01:29")
	}
	if v.RemainingSeconds != 89 || v.TotalSeconds != 90 {
		t.Errorf("RemainingSeconds/TotalSeconds = %d/%d, want 89/90", v.RemainingSeconds, v.TotalSeconds)
	}
	if !v.Fullscreen {
		t.Error("Fullscreen should mirror the flag passed in")
	}
	if v.Phase != PhaseRunning {
		t.Errorf("Phase = %v, want %v", v.Phase, PhaseRunning)
	}
	if v.Controls.InputVisible {
		t.Error("input should be hidden while running")
	}
}
