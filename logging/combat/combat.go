package combat

import (
	"context"

	"monkey-rumble/server/logging"
)

const (
	// EventAttackLanded is emitted when an attack damages a target without killing it.
	EventAttackLanded logging.EventType = "combat.attack_landed"
	// EventMonkeyKilled is emitted when a blow drops a target to zero health.
	EventMonkeyKilled logging.EventType = "combat.monkey_killed"
)

// AttackLandedPayload captures the damage dealt to a single target.
type AttackLandedPayload struct {
	TargetID string  `json:"targetId"`
	Damage   float64 `json:"damage"`
}

// MonkeyKilledPayload describes the victim of a fatal blow.
type MonkeyKilledPayload struct {
	VictimID   string `json:"victimId"`
	VictimTeam string `json:"victimTeam"`
}

// AttackLanded publishes a non-fatal hit.
func AttackLanded(ctx context.Context, pub logging.Publisher, tick uint64, actor logging.EntityRef, payload AttackLandedPayload, extra map[string]any) {
	if pub == nil {
		return
	}
	event := logging.Event{
		Type:     EventAttackLanded,
		Tick:     tick,
		Actor:    actor,
		Targets:  []logging.EntityRef{{ID: payload.TargetID, Kind: logging.EntityKindMonkey}},
		Severity: logging.SeverityInfo,
		Category: logging.CategoryCombat,
		Payload:  payload,
		Extra:    extra,
	}
	pub.Publish(ctx, event)
}

// MonkeyKilled publishes a kill credited to the actor.
func MonkeyKilled(ctx context.Context, pub logging.Publisher, tick uint64, actor logging.EntityRef, payload MonkeyKilledPayload, extra map[string]any) {
	if pub == nil {
		return
	}
	event := logging.Event{
		Type:     EventMonkeyKilled,
		Tick:     tick,
		Actor:    actor,
		Targets:  []logging.EntityRef{{ID: payload.VictimID, Kind: logging.EntityKindMonkey}},
		Severity: logging.SeverityInfo,
		Category: logging.CategoryCombat,
		Payload:  payload,
		Extra:    extra,
	}
	pub.Publish(ctx, event)
}
