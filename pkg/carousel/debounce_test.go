package carousel

import (
	"sync/atomic"
	"testing"
	"time"
)

func TestDebouncer_CoalescesBurst(t *testing.T) {
	var fired atomic.Int32
	d := NewDebouncer(40*time.Millisecond, func() { fired.Add(1) })

	for i := 0; i < 10; i++ {
		d.Trigger()
		time.Sleep(2 * time.Millisecond)
	}

	time.Sleep(120 * time.Millisecond)
	if got := fired.Load(); got != 1 {
		t.Errorf("Expected burst to coalesce into 1 firing, got %d", got)
	}
}

func TestDebouncer_CancelPreventsFiring(t *testing.T) {
	var fired atomic.Int32
	d := NewDebouncer(40*time.Millisecond, func() { fired.Add(1) })

	d.Trigger()
	d.Cancel()

	time.Sleep(120 * time.Millisecond)
	if got := fired.Load(); got != 0 {
		t.Errorf("Expected cancelled debounce not to fire, got %d", got)
	}
}

func TestDebouncer_CancelIsIdempotent(t *testing.T) {
	d := NewDebouncer(40*time.Millisecond, func() {})
	d.Cancel() // nothing pending
	d.Trigger()
	d.Cancel()
	d.Cancel()
}

func TestDebouncer_RetriggersAfterFiring(t *testing.T) {
	var fired atomic.Int32
	d := NewDebouncer(30*time.Millisecond, func() { fired.Add(1) })

	d.Trigger()
	time.Sleep(100 * time.Millisecond)
	d.Trigger()
	time.Sleep(100 * time.Millisecond)

	if got := fired.Load(); got != 2 {
		t.Errorf("Expected two separate firings, got %d", got)
	}
}

func TestDebouncer_ZeroDurationUsesDefault(t *testing.T) {
	d := NewDebouncer(0, func() {})
	if d.Duration() != DefaultDebounce {
		t.Errorf("Expected default duration %v, got %v", DefaultDebounce, d.Duration())
	}
}
