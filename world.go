package main

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"sort"

	"monkey-rumble/server/funding"
	"monkey-rumble/server/logging"
	loggingeconomy "monkey-rumble/server/logging/economy"
	logginglifecycle "monkey-rumble/server/logging/lifecycle"
	"monkey-rumble/server/stats"
)

// World owns the authoritative simulation state. It is exclusively owned by
// the hub's tick loop; nothing else mutates it.
type World struct {
	monkeys      map[string]*monkeyState
	teams        map[string]*teamState
	bananas      map[string]*Banana
	fundingPools map[string]*FundingPool

	trees       []Tree
	decorations []Decoration

	config    worldConfig
	seed      string
	rng       *rand.Rand
	bananaRNG *rand.Rand
	spawnRNG  *rand.Rand

	publisher   logging.Publisher
	currentTick uint64

	nextMonkeyID uint64
	nextBananaID uint64

	// promotionCursor remembers where the last reserve round-robin stopped
	// so no team is permanently favored by id ordering.
	promotionCursor int

	teamAnchors map[string]vec2
}

// newWorld constructs an empty world with generated arena props.
func newWorld(cfg worldConfig, publisher logging.Publisher) *World {
	normalized := cfg.normalized()

	if publisher == nil {
		publisher = logging.NopPublisher{}
	}

	w := &World{
		monkeys:      make(map[string]*monkeyState),
		teams:        make(map[string]*teamState),
		bananas:      make(map[string]*Banana),
		fundingPools: make(map[string]*FundingPool),
		config:       normalized,
		seed:         normalized.Seed,
		publisher:    publisher,
		teamAnchors:  make(map[string]vec2),
	}
	w.rng = w.subsystemRNG("world")
	w.bananaRNG = w.subsystemRNG("bananas")
	w.spawnRNG = w.subsystemRNG("spawn")
	w.trees = w.generateTrees(normalized.TreeCount)
	w.decorations = w.generateDecorations(decorationCount)
	return w
}

func (w *World) entityRef(id string) logging.EntityRef {
	return logging.EntityRef{ID: id, Kind: logging.EntityKindMonkey}
}

// liveCount counts monkeys currently in the live set.
func (w *World) liveCount() int {
	return len(w.monkeys)
}

// freeCapacity reports how many more monkeys may materialize.
func (w *World) freeCapacity() int {
	free := w.config.MaxLiveMonkeys - w.liveCount()
	if free < 0 {
		return 0
	}
	return free
}

// teamAnchor picks a stable spawn anchor for a team, chosen once from the
// spawn RNG so a team's monkeys cluster together.
func (w *World) teamAnchor(teamID string) vec2 {
	if anchor, ok := w.teamAnchors[teamID]; ok {
		return anchor
	}
	anchor := vec2{
		X: arenaSpawnMargin + w.spawnRNG.Float64()*(worldWidth-2*arenaSpawnMargin),
		Y: arenaSpawnMargin + w.spawnRNG.Float64()*(worldHeight-2*arenaSpawnMargin),
	}
	w.teamAnchors[teamID] = anchor
	return anchor
}

// spawnMonkeyAt materializes one monkey near the team anchor with jitter.
func (w *World) spawnMonkeyAt(teamID string, tier stats.Tier) *monkeyState {
	anchor := w.teamAnchor(teamID)
	angle := w.spawnRNG.Float64() * 2 * math.Pi
	dist := spawnJitterRadius * math.Sqrt(w.spawnRNG.Float64())
	profile := stats.ForTier(tier)
	half := profile.Size / 2
	x := clamp(anchor.X+math.Cos(angle)*dist, half, worldWidth-half)
	y := clamp(anchor.Y+math.Sin(angle)*dist, half, worldHeight-half)

	w.nextMonkeyID++
	id := fmt.Sprintf("monkey-%d", w.nextMonkeyID)
	m := newMonkeyState(id, teamID, tier, x, y)
	m.heading = w.randomUnitVector()
	w.monkeys[id] = m
	return m
}

// SpawnMonkeys materializes up to count monkeys for a team, banking the
// remainder in the team's reserve. Zero or negative counts are a no-op.
// Returns (spawned, reserved).
func (w *World) SpawnMonkeys(teamID string, tier stats.Tier, count int) (int, int) {
	if count <= 0 {
		return 0, 0
	}
	team := w.ensureTeam(teamID)

	spawned := count
	if free := w.freeCapacity(); spawned > free {
		spawned = free
	}
	reserved := count - spawned

	for i := 0; i < spawned; i++ {
		w.spawnMonkeyAt(teamID, tier)
	}
	team.recordSpawnOutcome(spawned, reserved, tier)

	logginglifecycle.MonkeysSpawned(
		context.Background(),
		w.publisher,
		w.currentTick,
		logging.EntityRef{ID: teamID, Kind: logging.EntityKindTeam},
		logginglifecycle.MonkeysSpawnedPayload{Tier: tier.String(), Spawned: spawned, Reserved: reserved},
		nil,
	)
	return spawned, reserved
}

// promoteReserves drains queued reserves into freed capacity, visiting teams
// with nonzero reserves round-robin so no team starves. Promoted monkeys
// spawn at their team's dominant tier.
func (w *World) promoteReserves() {
	free := w.freeCapacity()
	if free <= 0 {
		return
	}

	ids := make([]string, 0, len(w.teams))
	for id, team := range w.teams {
		if team.Reserved > 0 {
			ids = append(ids, id)
		}
	}
	if len(ids) == 0 {
		return
	}
	sort.Strings(ids)

	cursor := w.promotionCursor % len(ids)
	for free > 0 {
		promotedAny := false
		for i := 0; i < len(ids) && free > 0; i++ {
			team := w.teams[ids[(cursor+i)%len(ids)]]
			if team.takeReserve(1) == 0 {
				continue
			}
			m := w.spawnMonkeyAt(team.ID, team.dominantTier)
			team.Alive++
			free--
			promotedAny = true
			logginglifecycle.MonkeyPromoted(
				context.Background(),
				w.publisher,
				w.currentTick,
				w.entityRef(m.ID),
				logginglifecycle.MonkeyPromotedPayload{TeamID: team.ID, Tier: team.dominantTier.String()},
				nil,
			)
		}
		if !promotedAny {
			break
		}
	}
	w.promotionCursor++
}

// ApplyFunding applies one normalized funding event: ledger update, then (for
// buys) a greedy allocation converted into spawn requests. Events are applied
// whole; the hub guarantees they land between ticks.
func (w *World) ApplyFunding(event funding.Event) {
	teamID := teamIDFor(w.config.TeamStrategy, event.Wallet, event.Amount, event.TeamID)
	if teamID == "" || event.Amount <= 0 {
		return
	}
	team := w.ensureTeam(teamID)
	applied := team.recordFunding(event.Wallet, event.Amount, event.IsWithdrawal)

	pool, ok := w.fundingPools[teamID]
	if !ok {
		pool = newFundingPool(teamID)
		w.fundingPools[teamID] = pool
	}
	pool.Apply(event.Wallet, event.Amount, event.IsWithdrawal)

	loggingeconomy.FundingApplied(
		context.Background(),
		w.publisher,
		w.currentTick,
		logging.EntityRef{ID: teamID, Kind: logging.EntityKindTeam},
		loggingeconomy.FundingAppliedPayload{
			Wallet:     event.Wallet,
			Amount:     event.Amount,
			Applied:    applied,
			Withdrawal: event.IsWithdrawal,
		},
		map[string]any{"idempotencyKey": event.IdempotencyKey},
	)

	if event.IsWithdrawal {
		return
	}
	for _, tc := range Allocate(event.Amount) {
		w.SpawnMonkeys(teamID, tc.Tier, tc.Count)
	}
}

// Snapshot copies monkeys, bananas, and teams into broadcast-friendly structs.
func (w *World) Snapshot() ([]Monkey, []Banana, []Team) {
	monkeys := make([]Monkey, 0, len(w.monkeys))
	for _, m := range w.monkeys {
		monkeys = append(monkeys, m.snapshot())
	}
	teams := make([]Team, 0, len(w.teams))
	for _, team := range w.teams {
		teams = append(teams, team.snapshot())
	}
	return monkeys, w.BananasSnapshot(), teams
}

// TreesSnapshot returns the static tree list; safe to share, never mutated.
func (w *World) TreesSnapshot() []Tree {
	return w.trees
}

// DecorationsSnapshot returns the static decoration list.
func (w *World) DecorationsSnapshot() []Decoration {
	return w.decorations
}
