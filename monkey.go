package main

import (
	"math"

	"monkey-rumble/server/stats"
)

type vec2 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

func normalizeVector(v vec2) (float64, float64) {
	length := math.Hypot(v.X, v.Y)
	if length == 0 {
		return 0, 0
	}
	return v.X / length, v.Y / length
}

func distance(x1, y1, x2, y2 float64) float64 {
	return math.Hypot(x1-x2, y1-y2)
}

func clamp(value, min, max float64) float64 {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}

// AnimationCycle selects which sprite cycle the renderer should play.
type AnimationCycle string

const (
	AnimationIdle     AnimationCycle = "idle"
	AnimationWalking  AnimationCycle = "walking"
	AnimationFighting AnimationCycle = "fighting"
)

// Monkey is the broadcast-friendly snapshot of a single agent.
type Monkey struct {
	ID             string         `json:"id"`
	TeamID         string         `json:"teamId"`
	Tier           string         `json:"tier"`
	X              float64        `json:"x"`
	Y              float64        `json:"y"`
	Health         float64        `json:"health"`
	MaxHealth      float64        `json:"maxHealth"`
	Fighting       bool           `json:"fighting"`
	UnderAttack    bool           `json:"underAttack"`
	TargetID       string         `json:"targetId,omitempty"`
	FacingLeft     bool           `json:"facingLeft"`
	Animation      AnimationCycle `json:"animation"`
	AnimationFrame int            `json:"animationFrame"`
	HealthBars     int            `json:"healthBars"`
	Size           float64        `json:"size"`
}

// monkeyState is the authoritative per-agent record owned by the world. Only
// the tick engine mutates it.
type monkeyState struct {
	Monkey

	tier    stats.Tier
	profile stats.Profile

	// heading is a unit-ish direction vector; actual velocity is
	// heading scaled by tier speed and the per-instance multiplier.
	heading vec2

	lastAttackMs    int64
	nextWanderAtMs  int64
	lastAnimationMs int64

	// wasFighting lets the engine force a fresh heading the tick an agent
	// leaves combat so it does not freeze in place.
	wasFighting bool

	// killedBy records the killer's team for the reconciliation pass.
	killedBy string

	// pendingTarget stages an attack for the global damage pass. A
	// non-owning lookup key; empty means no staged attack, and a stale
	// id lapses in the damage pass.
	pendingTarget string

	speedMult  float64
	damageMult float64
}

func newMonkeyState(id, teamID string, tier stats.Tier, x, y float64) *monkeyState {
	profile := stats.ForTier(tier)
	return &monkeyState{
		Monkey: Monkey{
			ID:         id,
			TeamID:     teamID,
			Tier:       tier.String(),
			X:          x,
			Y:          y,
			Health:     profile.MaxHealth,
			MaxHealth:  profile.MaxHealth,
			Animation:  AnimationIdle,
			HealthBars: profile.HealthBars,
			Size:       profile.Size,
		},
		tier:       tier,
		profile:    profile,
		speedMult:  1,
		damageMult: 1,
	}
}

func (s *monkeyState) snapshot() Monkey {
	return s.Monkey
}

func (s *monkeyState) alive() bool {
	return s.Health > 0
}

func (s *monkeyState) speed() float64 {
	return s.profile.Speed * s.speedMult
}

func (s *monkeyState) damage() float64 {
	return s.profile.Damage * s.damageMult
}

// applyHealthDelta adjusts health while honoring 0 <= hp <= maxHp.
func (s *monkeyState) applyHealthDelta(delta float64) {
	s.Health = clamp(s.Health+delta, 0, s.MaxHealth)
}

// attackRange is the distance at which this monkey can strike the target.
func (s *monkeyState) attackRange(target *monkeyState) float64 {
	return s.profile.CollisionRadius + target.profile.CollisionRadius + attackReach
}
