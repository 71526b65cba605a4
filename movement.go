package main

// moveMonkey advances a monkey along its heading, clamps the result to the
// arena inset by half its visual size, and forces a fresh heading when a wall
// actually altered the move so agents do not vibrate against the boundary.
// Only non-fighting monkeys move; the Fighting flag still holds the previous
// tick's stance here and must not be consulted.
func (w *World) moveMonkey(m *monkeyState, dt float64) {
	dx, dy := normalizeVector(m.heading)
	if dx == 0 && dy == 0 {
		return
	}

	speed := m.speed()
	proposedX := m.X + dx*speed*dt
	proposedY := m.Y + dy*speed*dt

	half := m.Size / 2
	clampedX := clamp(proposedX, half, worldWidth-half)
	clampedY := clamp(proposedY, half, worldHeight-half)

	hitWall := clampedX != proposedX || clampedY != proposedY

	m.X = clampedX
	m.Y = clampedY

	if hitWall {
		m.heading = w.randomUnitVector()
	}
}

// separateMonkey pushes this monkey away from any other it overlaps, by half
// the overlap along the connecting normal. One pass only, resolved
// independently per agent within the tick; residual overlap under dense
// crowding is expected and must not be iterated to convergence.
func (w *World) separateMonkey(m *monkeyState) {
	half := m.Size / 2
	for id, other := range w.monkeys {
		if id == m.ID || !other.alive() {
			continue
		}
		minDist := m.profile.CollisionRadius + other.profile.CollisionRadius
		dx := m.X - other.X
		dy := m.Y - other.Y
		dist := distance(m.X, m.Y, other.X, other.Y)
		if dist >= minDist {
			continue
		}

		overlap := (minDist - dist) / 2

		var nx, ny float64
		if dist == 0 {
			// Coincident centers: separate along a deterministic axis.
			nx, ny = 1, 0
		} else {
			nx = dx / dist
			ny = dy / dist
		}
		m.X = clamp(m.X+nx*overlap, half, worldWidth-half)
		m.Y = clamp(m.Y+ny*overlap, half, worldHeight-half)
	}
}
