// Package scheduler provides a wall-clock tick source and a
// single-goroutine event loop for running the widget outside the TUI.
package scheduler

import "sync"

// Loop runs posted functions one at a time on a single goroutine.
// It gives headless callers the same run-to-completion guarantee the
// Bubble Tea event loop gives the TUI.
type Loop struct {
	funcs     chan func()
	done      chan struct{}
	closeOnce sync.Once
	wg        sync.WaitGroup
}

// NewLoop starts a loop.
func NewLoop() *Loop {
	l := &Loop{
		funcs: make(chan func()),
		done:  make(chan struct{}),
	}
	l.wg.Add(1)
	go l.run()
	return l
}

func (l *Loop) run() {
	defer l.wg.Done()
	for {
		select {
		case <-l.done:
			return
		case fn := <-l.funcs:
			fn()
		}
	}
}

// Post queues fn and returns once the loop has accepted it.
// Returns false if the loop is closed.
func (l *Loop) Post(fn func()) bool {
	select {
	case <-l.done:
		return false
	case l.funcs <- fn:
		return true
	}
}

// Do runs fn on the loop and waits for it to finish. It must not be
// called from a function already running on the loop.
// Returns false if the loop is closed.
func (l *Loop) Do(fn func()) bool {
	finished := make(chan struct{})
	if !l.Post(func() {
		defer close(finished)
		fn()
	}) {
		return false
	}
	select {
	case <-finished:
		return true
	case <-l.done:
		return false
	}
}

// Close stops the loop and waits for the running function to return.
// Functions not yet accepted are dropped.
func (l *Loop) Close() {
	l.closeOnce.Do(func() {
		close(l.done)
	})
	l.wg.Wait()
}
