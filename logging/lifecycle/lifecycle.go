package lifecycle

import (
	"context"

	"monkey-rumble/server/logging"
)

const (
	// EventMonkeysSpawned is emitted once per allocation batch that reaches a team.
	EventMonkeysSpawned logging.EventType = "lifecycle.monkeys_spawned"
	// EventMonkeyPromoted is emitted when a reserved monkey enters the arena.
	EventMonkeyPromoted logging.EventType = "lifecycle.monkey_promoted"
	// EventWorldReset is emitted when the world is rebuilt from configuration.
	EventWorldReset logging.EventType = "lifecycle.world_reset"
)

// MonkeysSpawnedPayload summarizes one spawn batch.
type MonkeysSpawnedPayload struct {
	Tier     string `json:"tier"`
	Spawned  int    `json:"spawned"`
	Reserved int    `json:"reserved,omitempty"`
}

// MonkeyPromotedPayload describes a reserve promotion.
type MonkeyPromotedPayload struct {
	TeamID string `json:"teamId"`
	Tier   string `json:"tier"`
}

// WorldResetPayload captures the configuration of the replacement world.
type WorldResetPayload struct {
	Seed            string `json:"seed"`
	MaxLiveMonkeys  int    `json:"maxLiveMonkeys"`
	FundingFloorSet bool   `json:"fundingFloorSet,omitempty"`
}

// MonkeysSpawned publishes a spawn batch for a team.
func MonkeysSpawned(ctx context.Context, pub logging.Publisher, tick uint64, actor logging.EntityRef, payload MonkeysSpawnedPayload, extra map[string]any) {
	if pub == nil {
		return
	}
	event := logging.Event{
		Type:     EventMonkeysSpawned,
		Tick:     tick,
		Actor:    actor,
		Severity: logging.SeverityInfo,
		Category: logging.CategoryLifecycle,
		Payload:  payload,
		Extra:    extra,
	}
	pub.Publish(ctx, event)
}

// MonkeyPromoted publishes a reserve promotion.
func MonkeyPromoted(ctx context.Context, pub logging.Publisher, tick uint64, actor logging.EntityRef, payload MonkeyPromotedPayload, extra map[string]any) {
	if pub == nil {
		return
	}
	event := logging.Event{
		Type:     EventMonkeyPromoted,
		Tick:     tick,
		Actor:    actor,
		Severity: logging.SeverityInfo,
		Category: logging.CategoryLifecycle,
		Payload:  payload,
		Extra:    extra,
	}
	pub.Publish(ctx, event)
}

// WorldReset publishes a world rebuild.
func WorldReset(ctx context.Context, pub logging.Publisher, tick uint64, payload WorldResetPayload, extra map[string]any) {
	if pub == nil {
		return
	}
	event := logging.Event{
		Type:     EventWorldReset,
		Tick:     tick,
		Actor:    logging.EntityRef{ID: "world", Kind: logging.EntityKindWorld},
		Severity: logging.SeverityInfo,
		Category: logging.CategoryLifecycle,
		Payload:  payload,
		Extra:    extra,
	}
	pub.Publish(ctx, event)
}
