package carousel

import (
	"sync"
	"time"
)

// DefaultAutoPlayInterval is used when a deck enables auto-play without
// configuring an interval.
const DefaultAutoPlayInterval = 6 * time.Second

// AutoPlay periodically invokes an advance callback while running. An
// interval of zero disables it entirely: Start becomes a no-op, matching a
// deck configured without auto-play.
//
// Reset is the important operation: it is called after every manual
// navigation so the next automatic advance always waits a full interval
// after the last user action instead of firing mid-gesture.
type AutoPlay struct {
	interval time.Duration
	advance  func()

	mu   sync.Mutex
	done chan struct{}
}

// NewAutoPlay creates a stopped auto-play timer. advance is invoked from the
// timer's own goroutine; callers that need loop affinity should forward it as
// a message rather than mutating state directly.
func NewAutoPlay(interval time.Duration, advance func()) *AutoPlay {
	return &AutoPlay{interval: interval, advance: advance}
}

// Start begins periodic advancing. No-op when auto-play is disabled or
// already running.
func (a *AutoPlay) Start() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.interval <= 0 || a.done != nil {
		return
	}
	done := make(chan struct{})
	a.done = done

	ticker := time.NewTicker(a.interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				// A Stop may have raced the tick; only advance if
				// this run is still the live one.
				a.mu.Lock()
				live := a.done == done
				a.mu.Unlock()
				if !live {
					return
				}
				a.advance()
			}
		}
	}()
}

// Stop cancels the periodic advance. Safe to call when not running.
func (a *AutoPlay) Stop() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.done == nil {
		return
	}
	close(a.done)
	a.done = nil
}

// Reset restarts the interval from now. Called after manual navigation.
func (a *AutoPlay) Reset() {
	a.Stop()
	a.Start()
}

// Toggle pauses a running timer or resumes a stopped one, returning whether
// the timer is running afterwards. Backs the hover/space pause affordance.
func (a *AutoPlay) Toggle() bool {
	if a.Running() {
		a.Stop()
		return false
	}
	a.Start()
	return a.Running()
}

// Running reports whether the timer is currently active.
func (a *AutoPlay) Running() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.done != nil
}

// Interval returns the configured advance interval.
func (a *AutoPlay) Interval() time.Duration { return a.interval }
