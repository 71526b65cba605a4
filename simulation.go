package main

import (
	"context"
	"math"

	loggingcombat "monkey-rumble/server/logging/combat"
)

// Step advances the world by one tick. dt is elapsed seconds (pre-clamped by
// the hub), nowMs a monotonic millisecond timestamp. The engine never blocks
// and touches no state outside the world, so a seeded world steps
// reproducibly.
//
// Phases: per-monkey intent/movement/separation/attack-staging, then the
// global damage pass, then population reconciliation, then the banana
// lifecycle. Intent selection reads the under-attack flags set by the
// previous tick's damage pass; the damage pass clears and recomputes them.
func (w *World) Step(tick uint64, nowMs int64, dt float64, combatEnabled bool) {
	if dt <= 0 {
		dt = 1.0 / float64(tickRate)
	}
	w.currentTick = tick

	// Distress signals visible this tick are last tick's victims.
	distressed := make(map[string]bool, len(w.monkeys))
	for id, m := range w.monkeys {
		if m.UnderAttack {
			distressed[id] = true
		}
	}

	for _, m := range w.monkeys {
		if !m.alive() {
			continue
		}
		w.stepMonkey(m, distressed, nowMs, dt, combatEnabled)
	}

	w.resolveDamage(nowMs)
	w.reconcilePopulation()

	w.collectBananas()
	w.maintainBananas()
}

// stepMonkey runs the per-agent phases: decide, move, separate, stage attack,
// animate.
func (w *World) stepMonkey(m *monkeyState, distressed map[string]bool, nowMs int64, dt float64, combatEnabled bool) {
	decision := w.decideIntent(m, distressed, combatEnabled)

	fighting := false
	m.TargetID = ""
	switch decision.kind {
	case intentRescue:
		m.steerToward(decision.point)
	case intentAttack:
		m.TargetID = decision.targetID
		if decision.inRange {
			fighting = true
		} else {
			m.steerToward(decision.point)
		}
	case intentSeekBanana:
		m.steerToward(decision.point)
	default:
		w.maybeRepickWanderHeading(m, nowMs)
	}

	prevX, prevY := m.X, m.Y
	if !fighting {
		w.moveMonkey(m, dt)
	}
	w.separateMonkey(m)

	if fighting {
		w.stageAttack(m, decision.targetID, nowMs)
	}

	m.Fighting = fighting
	w.animateMonkey(m, m.X-prevX, m.Y-prevY, nowMs)
	m.wasFighting = fighting
}

// stageAttack records an attack intent for the damage pass when the cooldown
// window has elapsed. The per-agent loop never mutates the victim.
func (w *World) stageAttack(m *monkeyState, targetID string, nowMs int64) {
	if nowMs-m.lastAttackMs < attackCooldownMs {
		return
	}
	m.pendingTarget = targetID
	m.lastAttackMs = nowMs
}

// resolveDamage applies every staged attack whose target is still alive, on a
// different team, and within range at post-movement positions. Stale intents
// lapse silently and every intent is consumed regardless.
func (w *World) resolveDamage(nowMs int64) {
	for _, m := range w.monkeys {
		m.UnderAttack = false
	}

	for _, attacker := range w.monkeys {
		pending := attacker.pendingTarget
		if pending == "" {
			continue
		}
		attacker.pendingTarget = ""

		if !attacker.alive() {
			continue
		}
		victim, ok := w.monkeys[pending]
		if !ok || !victim.alive() || victim.TeamID == attacker.TeamID {
			continue
		}
		if distance(attacker.X, attacker.Y, victim.X, victim.Y) > attacker.attackRange(victim) {
			continue
		}

		damage := attacker.damage()
		before := victim.Health
		victim.Health = math.Max(0, victim.Health-damage)
		victim.UnderAttack = true
		if before > 0 && victim.Health <= 0 {
			victim.killedBy = attacker.TeamID
			loggingcombat.MonkeyKilled(
				context.Background(),
				w.publisher,
				w.currentTick,
				w.entityRef(attacker.ID),
				loggingcombat.MonkeyKilledPayload{VictimID: victim.ID, VictimTeam: victim.TeamID},
				nil,
			)
		} else {
			loggingcombat.AttackLanded(
				context.Background(),
				w.publisher,
				w.currentTick,
				w.entityRef(attacker.ID),
				loggingcombat.AttackLandedPayload{TargetID: victim.ID, Damage: damage},
				nil,
			)
		}
	}
}

// reconcilePopulation removes the newly dead, credits killer teams, recounts
// every team's alive counter from the live set, and promotes reserves into
// any freed capacity.
func (w *World) reconcilePopulation() {
	dead := make([]*monkeyState, 0)
	for _, m := range w.monkeys {
		if m.Health <= 0 {
			dead = append(dead, m)
		}
	}

	for _, m := range dead {
		if team, ok := w.teams[m.TeamID]; ok {
			team.recordDeath()
		}
		if m.killedBy != "" {
			if killer, ok := w.teams[m.killedBy]; ok {
				killer.recordKill()
			}
		}
		delete(w.monkeys, m.ID)
	}

	// Authoritative recount: incremental decrements above are corrected
	// here every tick rather than trusted.
	counts := make(map[string]int, len(w.teams))
	for _, m := range w.monkeys {
		counts[m.TeamID]++
	}
	for id, team := range w.teams {
		team.Alive = counts[id]
	}

	if len(dead) > 0 {
		w.promoteReserves()
	}
}
