package ports

import "time"

// Scheduler runs a callback periodically.
// This is a driven port (called by the application layer).
type Scheduler interface {
	// Every arranges for fn to be called once per interval until the
	// returned cancel function is called. Cancel is idempotent.
	//
	// Implementations must deliver fn on the same logical thread that
	// drives the widget, so callbacks never run concurrently with
	// other widget operations.
	Every(interval time.Duration, fn func()) (cancel func())
}
