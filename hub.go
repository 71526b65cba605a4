package main

import (
	"context"
	"encoding/json"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"

	"monkey-rumble/server/funding"
	"monkey-rumble/server/logging"
	logginglifecycle "monkey-rumble/server/logging/lifecycle"
)

// Hub owns the world and drives the tick loop. The world is only ever
// touched while holding mu; the poller and HTTP handlers hand events to
// EnqueueFunding and the loop applies them whole before the next tick.
type Hub struct {
	mu    sync.Mutex
	world *World

	worldCfg  worldConfig
	publisher logging.Publisher
	telemetry *telemetryCounters

	pendingMu      sync.Mutex
	pendingFunding []funding.Event

	subscribers map[uint64]*subscriber
	nextSubID   atomic.Uint64

	tick          atomic.Uint64
	combatEnabled atomic.Bool

	// watermarkFn is called with the reset timestamp so the poller can
	// discard events from before the new world existed.
	watermarkFn func(ms int64)
}

type subscriber struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func newHub(cfg worldConfig, publisher logging.Publisher, telemetry *telemetryCounters) *Hub {
	if publisher == nil {
		publisher = logging.NopPublisher{}
	}
	if telemetry == nil {
		telemetry = newTelemetryCounters()
	}
	h := &Hub{
		world:       newWorld(cfg, publisher),
		worldCfg:    cfg.normalized(),
		publisher:   publisher,
		telemetry:   telemetry,
		subscribers: make(map[uint64]*subscriber),
	}
	h.combatEnabled.Store(true)
	return h
}

// SetWatermarkFunc registers the poller watermark hook invoked on reset.
func (h *Hub) SetWatermarkFunc(fn func(ms int64)) {
	h.watermarkFn = fn
}

// EnqueueFunding queues one event for application before the next tick.
// Safe to call from any goroutine.
func (h *Hub) EnqueueFunding(event funding.Event) {
	h.pendingMu.Lock()
	h.pendingFunding = append(h.pendingFunding, event)
	h.pendingMu.Unlock()
}

func (h *Hub) drainFunding() []funding.Event {
	h.pendingMu.Lock()
	events := h.pendingFunding
	h.pendingFunding = nil
	h.pendingMu.Unlock()
	return events
}

// Subscribe registers a websocket connection and returns its id plus the
// current state snapshot so the client can render immediately.
func (h *Hub) Subscribe(conn *websocket.Conn) (uint64, stateMessage) {
	id := h.nextSubID.Add(1)
	sub := &subscriber{conn: conn}

	h.mu.Lock()
	h.subscribers[id] = sub
	msg := h.stateMessageLocked()
	h.mu.Unlock()

	return id, msg
}

// Unsubscribe drops a connection. Idempotent.
func (h *Hub) Unsubscribe(id uint64) {
	h.mu.Lock()
	sub, ok := h.subscribers[id]
	if ok {
		delete(h.subscribers, id)
	}
	h.mu.Unlock()
	if ok {
		sub.conn.Close()
	}
}

// SetCombatEnabled toggles the damage pass without pausing movement. Used to
// let a finished round wind down peacefully.
func (h *Hub) SetCombatEnabled(enabled bool) {
	h.combatEnabled.Store(enabled)
}

func (h *Hub) CombatEnabled() bool {
	return h.combatEnabled.Load()
}

// Reset replaces the world with an empty one and bumps the poller watermark
// so stale transactions cannot refund the fresh world.
func (h *Hub) Reset() {
	now := time.Now().UnixMilli()

	h.mu.Lock()
	h.world = newWorld(h.worldCfg, h.publisher)
	tick := h.tick.Load()
	h.mu.Unlock()

	h.pendingMu.Lock()
	h.pendingFunding = nil
	h.pendingMu.Unlock()

	if h.watermarkFn != nil {
		h.watermarkFn(now)
	}
	h.telemetry.RecordReset()
	logginglifecycle.WorldReset(context.Background(), h.publisher, tick, logginglifecycle.WorldResetPayload{
		Seed:            h.worldCfg.Seed,
		MaxLiveMonkeys:  h.worldCfg.MaxLiveMonkeys,
		FundingFloorSet: h.watermarkFn != nil,
	}, nil)
}

// advance applies queued funding, steps the simulation once, and returns the
// broadcast snapshot.
func (h *Hub) advance(now time.Time, dt float64) stateMessage {
	events := h.drainFunding()
	tick := h.tick.Add(1)

	h.mu.Lock()
	for _, event := range events {
		if event.Amount <= 0 {
			h.telemetry.RecordFundingDropped()
			continue
		}
		h.world.ApplyFunding(event)
		h.telemetry.RecordFundingApplied()
	}
	h.world.Step(tick, now.UnixMilli(), dt, h.combatEnabled.Load())
	msg := h.stateMessageLocked()
	h.mu.Unlock()

	return msg
}

// RunSimulation drives the fixed-rate tick loop until the stop channel
// closes. dt is clamped so a stalled frame cannot catapult monkeys through
// walls or collapse many cooldown windows into one.
func (h *Hub) RunSimulation(stop <-chan struct{}) {
	ticker := time.NewTicker(time.Second / tickRate)
	defer ticker.Stop()

	last := time.Now()
	for {
		select {
		case <-stop:
			return
		case now := <-ticker.C:
			dt := now.Sub(last).Seconds()
			if dt <= 0 {
				dt = 1.0 / float64(tickRate)
			}
			if dt > maxTickDelta {
				dt = maxTickDelta
			}
			last = now

			started := time.Now()
			msg := h.advance(now, dt)
			h.telemetry.RecordTick(time.Since(started))
			h.broadcastState(msg)
		}
	}
}

// StateMessage returns the current snapshot for the HTTP surface.
func (h *Hub) StateMessage() stateMessage {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.stateMessageLocked()
}

func (h *Hub) stateMessageLocked() stateMessage {
	monkeys, bananas, teams := h.world.Snapshot()
	return stateMessage{
		Type:          "state",
		Tick:          h.tick.Load(),
		ServerTime:    time.Now().UnixMilli(),
		Monkeys:       monkeys,
		Bananas:       bananas,
		Teams:         teams,
		Trees:         h.world.TreesSnapshot(),
		Decorations:   h.world.DecorationsSnapshot(),
		Config:        h.worldCfg,
		CombatEnabled: h.combatEnabled.Load(),
	}
}

// Diagnostics summarizes the hub for the diagnostics endpoint.
func (h *Hub) Diagnostics() diagnosticsMessage {
	h.mu.Lock()
	live := h.world.liveCount()
	teams := len(h.world.teams)
	bananas := len(h.world.bananas)
	subs := len(h.subscribers)
	h.mu.Unlock()

	return diagnosticsMessage{
		Tick:          h.tick.Load(),
		Subscribers:   subs,
		LiveMonkeys:   live,
		Teams:         teams,
		Bananas:       bananas,
		CombatEnabled: h.combatEnabled.Load(),
		Telemetry:     h.telemetry.Snapshot(),
	}
}

// broadcastState sends the snapshot to every subscriber, dropping any whose
// write fails.
func (h *Hub) broadcastState(msg stateMessage) {
	data, err := json.Marshal(msg)
	if err != nil {
		log.Printf("failed to marshal state message: %v", err)
		return
	}
	h.telemetry.RecordBroadcast(len(data), len(msg.Monkeys)+len(msg.Bananas))

	h.mu.Lock()
	subs := make(map[uint64]*subscriber, len(h.subscribers))
	for id, sub := range h.subscribers {
		subs[id] = sub
	}
	h.mu.Unlock()

	for id, sub := range subs {
		sub.mu.Lock()
		sub.conn.SetWriteDeadline(time.Now().Add(writeWait))
		err := sub.conn.WriteMessage(websocket.TextMessage, data)
		sub.mu.Unlock()
		if err != nil {
			log.Printf("dropping subscriber %d: %v", id, err)
			h.Unsubscribe(id)
		}
	}
}
