package main

import (
	"testing"

	"monkey-rumble/server/stats"
)

func TestAnimateMonkeyCycleSelection(t *testing.T) {
	w := newTestWorld(10)
	m := addMonkeyAt(w, "m", "red", stats.TierSmall, 100, 100)

	w.animateMonkey(m, 0, 0, 1000)
	if m.Animation != AnimationIdle {
		t.Fatalf("stationary monkey must idle, got %s", m.Animation)
	}

	w.animateMonkey(m, 2, 0, 1000)
	if m.Animation != AnimationWalking {
		t.Fatalf("moving monkey must walk, got %s", m.Animation)
	}

	m.Fighting = true
	w.animateMonkey(m, 0, 0, 1000)
	if m.Animation != AnimationFighting {
		t.Fatalf("fighting monkey must play the fighting cycle, got %s", m.Animation)
	}
}

func TestAnimateMonkeyFrameCadence(t *testing.T) {
	w := newTestWorld(10)
	m := addMonkeyAt(w, "m", "red", stats.TierSmall, 100, 100)

	w.animateMonkey(m, 2, 0, 1000)
	if m.AnimationFrame != 0 {
		t.Fatalf("cycle change must restart at frame 0, got %d", m.AnimationFrame)
	}

	// Under the frame interval nothing advances.
	w.animateMonkey(m, 2, 0, 1000+animationFrameMs-1)
	if m.AnimationFrame != 0 {
		t.Fatalf("frame advanced under the interval")
	}

	w.animateMonkey(m, 2, 0, 1000+animationFrameMs)
	if m.AnimationFrame != 1 {
		t.Fatalf("expected frame 1 after one interval, got %d", m.AnimationFrame)
	}

	// Frames wrap modulo the cycle length.
	now := int64(1000 + animationFrameMs)
	for i := 0; i < animationFrameCount; i++ {
		now += animationFrameMs
		w.animateMonkey(m, 2, 0, now)
	}
	if m.AnimationFrame != 1 {
		t.Fatalf("expected wrap back to frame 1, got %d", m.AnimationFrame)
	}
}

func TestAnimateMonkeyFacing(t *testing.T) {
	w := newTestWorld(10)
	m := addMonkeyAt(w, "m", "red", stats.TierSmall, 100, 100)

	w.animateMonkey(m, -2, 0, 1000)
	if !m.FacingLeft {
		t.Fatalf("leftward movement must face left")
	}

	// Movement inside the deadzone keeps the last facing.
	w.animateMonkey(m, facingDeadzone/2, 0, 1100)
	if !m.FacingLeft {
		t.Fatalf("deadzone movement must not flip facing")
	}

	w.animateMonkey(m, 2, 0, 1200)
	if m.FacingLeft {
		t.Fatalf("rightward movement must face right")
	}
}

func TestAnimateMonkeyFightingTransitionRestartsCycle(t *testing.T) {
	w := newTestWorld(10)
	m := addMonkeyAt(w, "m", "red", stats.TierSmall, 100, 100)

	m.Fighting = true
	w.animateMonkey(m, 0, 0, 1000)
	m.wasFighting = true
	w.animateMonkey(m, 0, 0, 1000+animationFrameMs)
	if m.AnimationFrame != 1 {
		t.Fatalf("expected frame advance inside fighting cycle, got %d", m.AnimationFrame)
	}

	m.Fighting = false
	w.animateMonkey(m, 0, 0, 1000+animationFrameMs+10)
	if m.Animation != AnimationIdle || m.AnimationFrame != 0 {
		t.Fatalf("leaving combat must restart the idle cycle, got %s frame %d", m.Animation, m.AnimationFrame)
	}
}
