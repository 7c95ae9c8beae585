package carousel

import (
	"sync"
	"time"
)

// DefaultDebounce is the quiet period applied to resize retiering: rapid
// resize events collapse into a single recompute once the viewport has been
// stable this long.
const DefaultDebounce = 150 * time.Millisecond

// Debouncer coalesces bursts of Trigger calls into a single invocation of a
// fixed callback after a quiet period. Tearing down the owning widget must
// call Cancel so a late firing can never touch a removed widget.
type Debouncer struct {
	duration time.Duration
	fire     func()

	mu    sync.Mutex
	timer *time.Timer
	seq   uint64
}

// NewDebouncer creates a Debouncer that runs fire after duration has elapsed
// with no further triggers. A zero duration uses DefaultDebounce.
func NewDebouncer(duration time.Duration, fire func()) *Debouncer {
	if duration == 0 {
		duration = DefaultDebounce
	}
	return &Debouncer{duration: duration, fire: fire}
}

// Trigger schedules the callback, replacing any still-pending schedule so
// only the last trigger in a burst fires.
func (d *Debouncer) Trigger() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.seq++
	seq := d.seq

	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.duration, func() {
		d.mu.Lock()
		// Stop can return false after the timer already fired, letting a
		// stale callback run concurrently with a newer schedule. The
		// sequence check keeps only the most recent one alive.
		if seq != d.seq {
			d.mu.Unlock()
			return
		}
		d.timer = nil
		d.mu.Unlock()
		d.fire()
	})
}

// Cancel drops any pending callback, including one that has fired but not
// yet run.
func (d *Debouncer) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.seq++
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}

// Duration returns the configured quiet period.
func (d *Debouncer) Duration() time.Duration { return d.duration }
