package main

import (
	"context"
	"fmt"
	"math"

	loggingeconomy "monkey-rumble/server/logging/economy"
)

// Banana is a ground resource that heals the monkey that picks it up.
type Banana struct {
	ID           string  `json:"id"`
	X            float64 `json:"x"`
	Y            float64 `json:"y"`
	HealFraction float64 `json:"healFraction"`
	Size         float64 `json:"size"`
}

// bananaEligible reports whether a monkey may seek or collect bananas. Only
// injured monkeys qualify.
func bananaEligible(m *monkeyState) bool {
	return m != nil && m.Health < m.MaxHealth
}

// nearestBanana returns the closest banana to the monkey, or nil when none
// exist. Strict less-than: first-found wins exact ties.
func (w *World) nearestBanana(m *monkeyState) *Banana {
	var best *Banana
	bestDist := math.MaxFloat64
	for _, banana := range w.bananas {
		d := distance(m.X, m.Y, banana.X, banana.Y)
		if d < bestDist {
			bestDist = d
			best = banana
		}
	}
	return best
}

// bananaPickupRadius is half the monkey's visual size plus half the banana's.
func bananaPickupRadius(m *monkeyState, banana *Banana) float64 {
	return m.Size/2 + banana.Size/2
}

// collectBananas heals injured monkeys standing on a banana and removes the
// banana. Each banana satisfies at most one monkey per tick; the first
// matching monkey in collection iteration order claims it. That ordering is
// map iteration order, a documented property of the design.
func (w *World) collectBananas() {
	if len(w.bananas) == 0 {
		return
	}
	for _, m := range w.monkeys {
		if !m.alive() || !bananaEligible(m) {
			continue
		}
		for id, banana := range w.bananas {
			if distance(m.X, m.Y, banana.X, banana.Y) > bananaPickupRadius(m, banana) {
				continue
			}
			heal := math.Floor(m.MaxHealth * banana.HealFraction)
			m.applyHealthDelta(heal)
			delete(w.bananas, id)
			loggingeconomy.BananaCollected(
				context.Background(),
				w.publisher,
				w.currentTick,
				w.entityRef(m.ID),
				loggingeconomy.BananaCollectedPayload{BananaID: id, Healed: heal},
				nil,
			)
			break
		}
	}
}

// maintainBananas tops the banana population back up to the configured
// ceiling, one per tick, at a uniformly random position inset from the arena
// edges.
func (w *World) maintainBananas() {
	if len(w.bananas) >= w.config.BananaMax {
		return
	}
	rng := w.bananaRNG
	x := bananaSpawnMargin + rng.Float64()*(worldWidth-2*bananaSpawnMargin)
	y := bananaSpawnMargin + rng.Float64()*(worldHeight-2*bananaSpawnMargin)
	w.nextBananaID++
	id := fmt.Sprintf("banana-%d", w.nextBananaID)
	w.bananas[id] = &Banana{
		ID:           id,
		X:            x,
		Y:            y,
		HealFraction: bananaHealFraction,
		Size:         bananaSize,
	}
}

// BananasSnapshot copies the banana set for broadcasting.
func (w *World) BananasSnapshot() []Banana {
	bananas := make([]Banana, 0, len(w.bananas))
	for _, banana := range w.bananas {
		bananas = append(bananas, *banana)
	}
	return bananas
}
