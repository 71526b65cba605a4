package main

import (
	"testing"

	"monkey-rumble/server/stats"
)

func TestMoveMonkeyAdvancesAlongHeading(t *testing.T) {
	w := newTestWorld(10)
	m := addMonkeyAt(w, "m", "red", stats.TierSmall, 100, 100)
	m.heading = vec2{X: 1, Y: 0}

	w.moveMonkey(m, 1.0)

	if m.X != 100+m.speed() || m.Y != 100 {
		t.Fatalf("expected straight move by speed, got (%f, %f)", m.X, m.Y)
	}
}

func TestMoveMonkeyClampsToArenaInset(t *testing.T) {
	w := newTestWorld(10)
	m := addMonkeyAt(w, "m", "red", stats.TierSmall, worldWidth-20, 100)
	m.heading = vec2{X: 1, Y: 0}

	w.moveMonkey(m, 10.0)

	half := m.Size / 2
	if m.X != worldWidth-half {
		t.Fatalf("expected clamp at %f, got %f", worldWidth-half, m.X)
	}
}

func TestMoveMonkeyRepicksHeadingOnWallHit(t *testing.T) {
	w := newTestWorld(10)
	m := addMonkeyAt(w, "m", "red", stats.TierSmall, worldWidth-20, 100)
	m.heading = vec2{X: 1, Y: 0}

	w.moveMonkey(m, 10.0)

	if m.heading.X == 1 && m.heading.Y == 0 {
		t.Fatalf("wall hit must force a fresh heading")
	}
}

func TestMoveMonkeyRepicksHeadingAfterLeavingCombatAtWall(t *testing.T) {
	w := newTestWorld(10)
	m := addMonkeyAt(w, "m", "red", stats.TierSmall, worldWidth-20, 100)
	m.heading = vec2{X: 1, Y: 0}
	// Stance from the previous tick; this tick's decision is to move.
	m.Fighting = true

	w.moveMonkey(m, 10.0)

	if m.heading.X == 1 && m.heading.Y == 0 {
		t.Fatalf("a monkey leaving combat at the wall must still be reheaded")
	}
}

func TestFightingMonkeyDoesNotMove(t *testing.T) {
	w := newTestWorld(10)
	a := addMonkeyAt(w, "a", "red", stats.TierSmall, 200, 100)
	addMonkeyAt(w, "b", "blue", stats.TierSmall, 230, 100)
	a.heading = vec2{X: 1, Y: 0}

	distressed := map[string]bool{}
	w.stepMonkey(a, distressed, 1000, 1.0/tickRate, true)

	if !a.Fighting {
		t.Fatalf("enemy in range must put the monkey in fighting stance")
	}
	if a.X != 200 || a.Y != 100 {
		t.Fatalf("fighting monkeys hold position, moved to (%f, %f)", a.X, a.Y)
	}
}

func TestSeparateMonkeySinglePassHalfOverlap(t *testing.T) {
	w := newTestWorld(10)
	m := addMonkeyAt(w, "m", "red", stats.TierSmall, 100, 100)
	addMonkeyAt(w, "other", "blue", stats.TierSmall, 110, 100)

	minDist := 2 * m.profile.CollisionRadius
	overlap := (minDist - 10) / 2

	w.separateMonkey(m)

	if m.X != 100-overlap || m.Y != 100 {
		t.Fatalf("expected half-overlap push to %f, got (%f, %f)", 100-overlap, m.X, m.Y)
	}
}

func TestSeparateMonkeyCoincidentCenters(t *testing.T) {
	w := newTestWorld(10)
	m := addMonkeyAt(w, "m", "red", stats.TierSmall, 100, 100)
	addMonkeyAt(w, "other", "blue", stats.TierSmall, 100, 100)

	w.separateMonkey(m)

	if m.X <= 100 || m.Y != 100 {
		t.Fatalf("coincident centers must separate along the x axis, got (%f, %f)", m.X, m.Y)
	}
}

func TestSeparateMonkeyIgnoresDistantAndDead(t *testing.T) {
	w := newTestWorld(10)
	m := addMonkeyAt(w, "m", "red", stats.TierSmall, 100, 100)
	addMonkeyAt(w, "far", "blue", stats.TierSmall, 400, 400)
	dead := addMonkeyAt(w, "dead", "blue", stats.TierSmall, 105, 100)
	dead.Health = 0

	w.separateMonkey(m)

	if m.X != 100 || m.Y != 100 {
		t.Fatalf("no live overlap, monkey must not move, got (%f, %f)", m.X, m.Y)
	}
}
