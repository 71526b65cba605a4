package main

import "math"

// animateMonkey picks the animation cycle from combat/movement state and
// advances the frame on a wall-clock cadence, so frames tick at a fixed rate
// no matter how fast the simulation runs. A fighting transition restarts the
// cycle immediately. deltaX/deltaY are this tick's movement.
func (w *World) animateMonkey(m *monkeyState, deltaX, deltaY float64, nowMs int64) {
	cycle := AnimationIdle
	if m.Fighting {
		cycle = AnimationFighting
	} else if math.Hypot(deltaX, deltaY) > 1e-6 {
		cycle = AnimationWalking
	}

	if cycle != m.Animation || m.Fighting != m.wasFighting {
		m.Animation = cycle
		m.AnimationFrame = 0
		m.lastAnimationMs = nowMs
	} else if nowMs-m.lastAnimationMs >= animationFrameMs {
		m.AnimationFrame = (m.AnimationFrame + 1) % animationFrameCount
		m.lastAnimationMs = nowMs
	}

	if deltaX < -facingDeadzone {
		m.FacingLeft = true
	} else if deltaX > facingDeadzone {
		m.FacingLeft = false
	}
}
