package main

import (
	"testing"
	"time"

	"monkey-rumble/server/funding"
)

func newTestHub() *Hub {
	return newHub(worldConfig{
		Seed:           "test",
		MaxLiveMonkeys: 50,
		BananaMax:      1,
		TreeCount:      0,
	}, nil, newTelemetryCounters())
}

func TestHubAppliesQueuedFundingBeforeTick(t *testing.T) {
	h := newTestHub()
	h.EnqueueFunding(funding.Event{Wallet: "0xaaa", Amount: costSmall, TimestampMs: 1, IdempotencyKey: "evt-1"})

	msg := h.advance(time.Now(), 1.0/tickRate)

	if len(msg.Monkeys) != 1 {
		t.Fatalf("expected the queued buy to spawn one monkey, got %d", len(msg.Monkeys))
	}
	if len(msg.Teams) != 1 || msg.Teams[0].ID != "0xaaa" {
		t.Fatalf("expected team 0xaaa in the snapshot, got %+v", msg.Teams)
	}
	if got := h.telemetry.Snapshot().FundingApplied; got != 1 {
		t.Fatalf("expected one applied funding event, counted %d", got)
	}
}

func TestHubDropsNonPositiveFunding(t *testing.T) {
	h := newTestHub()
	h.EnqueueFunding(funding.Event{Wallet: "0xaaa", Amount: 0, TimestampMs: 1})

	msg := h.advance(time.Now(), 1.0/tickRate)

	if len(msg.Monkeys) != 0 {
		t.Fatalf("zero-amount event must spawn nothing")
	}
	if got := h.telemetry.Snapshot().FundingDropped; got != 1 {
		t.Fatalf("expected one dropped event, counted %d", got)
	}
}

func TestHubTickCountMonotonic(t *testing.T) {
	h := newTestHub()
	first := h.advance(time.Now(), 1.0/tickRate)
	second := h.advance(time.Now(), 1.0/tickRate)
	if second.Tick != first.Tick+1 {
		t.Fatalf("tick must advance by one per step, got %d then %d", first.Tick, second.Tick)
	}
}

func TestHubResetSwapsWorldAndBumpsWatermark(t *testing.T) {
	h := newTestHub()

	var watermark int64
	h.SetWatermarkFunc(func(ms int64) { watermark = ms })

	h.EnqueueFunding(funding.Event{Wallet: "0xaaa", Amount: 1.0, TimestampMs: 1, IdempotencyKey: "evt-1"})
	h.advance(time.Now(), 1.0/tickRate)
	if h.world.liveCount() == 0 {
		t.Fatalf("setup failed: expected monkeys before reset")
	}

	h.EnqueueFunding(funding.Event{Wallet: "0xbbb", Amount: 1.0, TimestampMs: 2, IdempotencyKey: "evt-2"})
	h.Reset()

	if h.world.liveCount() != 0 || len(h.world.teams) != 0 {
		t.Fatalf("reset must produce an empty world")
	}
	if watermark <= 0 {
		t.Fatalf("reset must bump the poller watermark")
	}

	// The queued event from before the reset must not refund the new world.
	msg := h.advance(time.Now(), 1.0/tickRate)
	if len(msg.Monkeys) != 0 {
		t.Fatalf("pending pre-reset events must be discarded, got %d monkeys", len(msg.Monkeys))
	}
}

func TestHubCombatToggle(t *testing.T) {
	h := newTestHub()
	if !h.CombatEnabled() {
		t.Fatalf("combat must default to enabled")
	}
	h.SetCombatEnabled(false)
	if h.CombatEnabled() {
		t.Fatalf("toggle did not disable combat")
	}
}

func TestHubStateMessageShape(t *testing.T) {
	h := newTestHub()
	msg := h.StateMessage()
	if msg.Type != "state" {
		t.Fatalf("unexpected message type %q", msg.Type)
	}
	if msg.Monkeys == nil || msg.Bananas == nil || msg.Teams == nil {
		t.Fatalf("snapshot collections must be non-nil for the renderer")
	}
	if msg.Config.MaxLiveMonkeys != 50 {
		t.Fatalf("config must ride along in the snapshot, got %+v", msg.Config)
	}
}

func TestHubDiagnostics(t *testing.T) {
	h := newTestHub()
	h.EnqueueFunding(funding.Event{Wallet: "0xaaa", Amount: costSmall, TimestampMs: 1})
	h.advance(time.Now(), 1.0/tickRate)

	diag := h.Diagnostics()
	if diag.LiveMonkeys != 1 || diag.Teams != 1 {
		t.Fatalf("unexpected diagnostics: %+v", diag)
	}
	if diag.Tick != 1 {
		t.Fatalf("expected tick 1, got %d", diag.Tick)
	}
}
