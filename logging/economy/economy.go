package economy

import (
	"context"

	"monkey-rumble/server/logging"
)

const (
	// EventFundingApplied is emitted when a funding event lands in a team ledger.
	EventFundingApplied logging.EventType = "economy.funding_applied"
	// EventBananaCollected is emitted when a monkey consumes a banana.
	EventBananaCollected logging.EventType = "economy.banana_collected"
)

// FundingAppliedPayload describes the ledger effect of one funding event.
type FundingAppliedPayload struct {
	Wallet     string  `json:"wallet"`
	Amount     float64 `json:"amount"`
	Applied    float64 `json:"applied"`
	Withdrawal bool    `json:"withdrawal,omitempty"`
}

// BananaCollectedPayload describes a banana pickup and the health restored.
type BananaCollectedPayload struct {
	BananaID string  `json:"bananaId"`
	Healed   float64 `json:"healed"`
}

// FundingApplied publishes a ledger update for a team.
func FundingApplied(ctx context.Context, pub logging.Publisher, tick uint64, actor logging.EntityRef, payload FundingAppliedPayload, extra map[string]any) {
	if pub == nil {
		return
	}
	event := logging.Event{
		Type:     EventFundingApplied,
		Tick:     tick,
		Actor:    actor,
		Severity: logging.SeverityInfo,
		Category: logging.CategoryEconomy,
		Payload:  payload,
		Extra:    extra,
	}
	pub.Publish(ctx, event)
}

// BananaCollected publishes a banana pickup.
func BananaCollected(ctx context.Context, pub logging.Publisher, tick uint64, actor logging.EntityRef, payload BananaCollectedPayload, extra map[string]any) {
	if pub == nil {
		return
	}
	event := logging.Event{
		Type:     EventBananaCollected,
		Tick:     tick,
		Actor:    actor,
		Targets:  []logging.EntityRef{{ID: payload.BananaID, Kind: logging.EntityKindBanana}},
		Severity: logging.SeverityInfo,
		Category: logging.CategoryEconomy,
		Payload:  payload,
		Extra:    extra,
	}
	pub.Publish(ctx, event)
}
