package ports

import "context"

// Display is the host's exclusive full-screen capability.
// This is a driven port (called by the application layer).
type Display interface {
	// IsFullscreen reports whether the host is currently fullscreen.
	IsFullscreen() bool

	// RequestFullscreen asks the host to enter fullscreen.
	RequestFullscreen(ctx context.Context) error

	// ExitFullscreen asks the host to leave fullscreen.
	ExitFullscreen(ctx context.Context) error

	// Subscribe registers fn to be called with the new status whenever
	// the host's fullscreen status changes, including changes the
	// widget did not request. The returned function removes the
	// subscription.
	Subscribe(fn func(fullscreen bool)) (unsubscribe func())
}
