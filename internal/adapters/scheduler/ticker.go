package scheduler

import (
	"sync"
	"time"
)

// Ticker is a ports.Scheduler backed by time.Ticker. Ticks are handed to
// post, which must deliver them to the widget's thread. Intervals are not
// drift-corrected.
type Ticker struct {
	post func(fn func()) bool
}

// NewTicker creates a scheduler that delivers callbacks through post.
func NewTicker(post func(fn func()) bool) *Ticker {
	return &Ticker{post: post}
}

// ForLoop creates a scheduler that delivers callbacks on l.
func ForLoop(l *Loop) *Ticker {
	return NewTicker(l.Post)
}

// Every starts a ticker goroutine and returns its cancel function.
func (t *Ticker) Every(interval time.Duration, fn func()) func() {
	ticker := time.NewTicker(interval)
	stop := make(chan struct{})
	var once sync.Once

	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				select {
				case <-stop:
					return
				default:
				}
				if !t.post(fn) {
					return
				}
			}
		}
	}()

	return func() {
		once.Do(func() { close(stop) })
	}
}
