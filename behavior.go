package main

import "math"

// intentKind tags the outcome of the per-tick decision procedure. The four
// behaviors are evaluated in fixed priority order: rescue a threatened ally,
// close on an enemy, seek a banana, wander.
type intentKind uint8

const (
	intentWander intentKind = iota
	intentRescue
	intentAttack
	intentSeekBanana
)

// intent is the tagged decision for one monkey for one tick.
type intent struct {
	kind     intentKind
	targetID string
	point    vec2
	// inRange is set for attack intents whose target is already within
	// striking distance, which puts the monkey into a fighting stance.
	inRange bool
}

// decideIntent runs the priority decision procedure for a single monkey.
// distressed holds the under-attack flags carried over from the previous
// tick's damage pass.
func (w *World) decideIntent(m *monkeyState, distressed map[string]bool, combatEnabled bool) intent {
	if combatEnabled {
		if ally := w.nearestDistressedAlly(m, distressed); ally != nil {
			return intent{kind: intentRescue, targetID: ally.ID, point: vec2{X: ally.X, Y: ally.Y}}
		}
		if enemy := w.nearestEnemy(m); enemy != nil {
			return intent{
				kind:     intentAttack,
				targetID: enemy.ID,
				point:    vec2{X: enemy.X, Y: enemy.Y},
				inRange:  distance(m.X, m.Y, enemy.X, enemy.Y) <= m.attackRange(enemy),
			}
		}
	}
	if bananaEligible(m) {
		if banana := w.nearestBanana(m); banana != nil {
			return intent{kind: intentSeekBanana, targetID: banana.ID, point: vec2{X: banana.X, Y: banana.Y}}
		}
	}
	return intent{kind: intentWander}
}

// nearestDistressedAlly finds the closest teammate flagged under attack.
// Linear scan; quadratic per tick across all monkeys, fine at the intended
// scale (low thousands).
func (w *World) nearestDistressedAlly(m *monkeyState, distressed map[string]bool) *monkeyState {
	var best *monkeyState
	bestDist := math.MaxFloat64
	for id, other := range w.monkeys {
		if id == m.ID || other.TeamID != m.TeamID || !other.alive() {
			continue
		}
		if !distressed[id] {
			continue
		}
		d := distance(m.X, m.Y, other.X, other.Y)
		if d < bestDist {
			bestDist = d
			best = other
		}
	}
	return best
}

// nearestEnemy finds the closest live monkey on a different team. Team
// equality, not identity, gates the friendly-fire exclusion.
func (w *World) nearestEnemy(m *monkeyState) *monkeyState {
	var best *monkeyState
	bestDist := math.MaxFloat64
	for id, other := range w.monkeys {
		if id == m.ID || other.TeamID == m.TeamID || !other.alive() {
			continue
		}
		d := distance(m.X, m.Y, other.X, other.Y)
		if d < bestDist {
			bestDist = d
			best = other
		}
	}
	return best
}

// steerToward points the monkey's heading at a target position.
func (m *monkeyState) steerToward(point vec2) {
	dx, dy := normalizeVector(vec2{X: point.X - m.X, Y: point.Y - m.Y})
	if dx == 0 && dy == 0 {
		return
	}
	m.heading = vec2{X: dx, Y: dy}
}

// maybeRepickWanderHeading refreshes the wander heading when the per-monkey
// timer expires, or immediately after leaving a fight so the monkey does not
// freeze in its last stance.
func (w *World) maybeRepickWanderHeading(m *monkeyState, nowMs int64) {
	if nowMs >= m.nextWanderAtMs || m.wasFighting {
		m.heading = w.randomUnitVector()
		m.nextWanderAtMs = nowMs + w.randomIntervalMs(wanderDecisionMinMs, wanderDecisionMaxMs)
	}
}
