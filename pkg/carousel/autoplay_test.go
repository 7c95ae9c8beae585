package carousel

import (
	"sync/atomic"
	"testing"
	"time"
)

func TestAutoPlay_DisabledIntervalIsNoOp(t *testing.T) {
	var ticks atomic.Int32
	a := NewAutoPlay(0, func() { ticks.Add(1) })

	a.Start()
	if a.Running() {
		t.Error("Auto-play with zero interval should not start")
	}
	time.Sleep(50 * time.Millisecond)
	if ticks.Load() != 0 {
		t.Errorf("Expected no ticks, got %d", ticks.Load())
	}
}

func TestAutoPlay_StartIsIdempotent(t *testing.T) {
	var ticks atomic.Int32
	a := NewAutoPlay(40*time.Millisecond, func() { ticks.Add(1) })
	defer a.Stop()

	a.Start()
	a.Start()
	a.Start()

	time.Sleep(100 * time.Millisecond)
	a.Stop()

	// A single 40ms ticker over ~100ms yields 2 ticks; duplicated timers
	// would roughly double that.
	if got := ticks.Load(); got < 1 || got > 3 {
		t.Errorf("Expected 1-3 ticks from a single timer, got %d", got)
	}
}

func TestAutoPlay_StopIsIdempotent(t *testing.T) {
	a := NewAutoPlay(40*time.Millisecond, func() {})
	a.Stop() // never started
	a.Start()
	a.Stop()
	a.Stop()
	if a.Running() {
		t.Error("Expected stopped timer")
	}
}

func TestAutoPlay_ResetLeavesOneTimer(t *testing.T) {
	var ticks atomic.Int32
	a := NewAutoPlay(40*time.Millisecond, func() { ticks.Add(1) })
	defer a.Stop()

	a.Start()
	a.Reset()
	a.Reset()
	if !a.Running() {
		t.Fatal("Expected running timer after reset")
	}

	time.Sleep(100 * time.Millisecond)
	a.Stop()
	if got := ticks.Load(); got > 3 {
		t.Errorf("Stacked timers after reset: got %d ticks", got)
	}
}

func TestAutoPlay_ResetDelaysNextTick(t *testing.T) {
	// Manual navigation resets the timer, so the next automatic advance
	// happens a full interval after the reset, not on the old schedule.
	var ticks atomic.Int32
	a := NewAutoPlay(100*time.Millisecond, func() { ticks.Add(1) })
	defer a.Stop()

	a.Start()
	time.Sleep(70 * time.Millisecond) // old schedule would fire at 100ms
	a.Reset()

	time.Sleep(60 * time.Millisecond) // 130ms in; reset timer fires at ~170ms
	if got := ticks.Load(); got != 0 {
		t.Errorf("Tick fired on the pre-reset schedule: got %d", got)
	}

	time.Sleep(80 * time.Millisecond) // ~210ms in, past the reset interval
	if got := ticks.Load(); got < 1 {
		t.Error("Expected a tick one full interval after reset")
	}
}

func TestAutoPlay_Toggle(t *testing.T) {
	a := NewAutoPlay(time.Minute, func() {})
	defer a.Stop()

	if running := a.Toggle(); !running {
		t.Error("Toggle from stopped should start")
	}
	if running := a.Toggle(); running {
		t.Error("Toggle from running should stop")
	}
}
