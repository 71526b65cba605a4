package main

import (
	"fmt"
	"hash/fnv"
	"math"

	"monkey-rumble/server/stats"
)

// Team is the broadcast-friendly snapshot of a team record.
type Team struct {
	ID       string  `json:"id"`
	Color    string  `json:"color"`
	Pool     float64 `json:"pool"`
	Spawned  int     `json:"spawned"`
	Alive    int     `json:"alive"`
	Dead     int     `json:"dead"`
	Kills    int     `json:"kills"`
	Reserved int     `json:"reserved"`
	Tier     string  `json:"tier"`
}

// teamState tracks per-team funding and population bookkeeping. Records are
// created lazily and live until the world is reset.
type teamState struct {
	Team

	wallets      map[string]float64
	dominantTier stats.Tier
}

func newTeamState(id string) *teamState {
	return &teamState{
		Team: Team{
			ID:    id,
			Color: teamColor(id),
			Tier:  stats.TierSmall.String(),
		},
		wallets:      make(map[string]float64),
		dominantTier: stats.TierSmall,
	}
}

// teamColor derives a stable display color from the team id by hashing it to
// a hue. Same id, same color, every run.
func teamColor(id string) string {
	h := fnv.New32a()
	_, _ = h.Write([]byte(id))
	hue := float64(h.Sum32()%360) / 360.0
	r, g, b := hslToRGB(hue, 0.72, 0.52)
	return fmt.Sprintf("#%02x%02x%02x", r, g, b)
}

func hslToRGB(h, s, l float64) (uint8, uint8, uint8) {
	if s == 0 {
		v := uint8(math.Round(l * 255))
		return v, v, v
	}
	var q float64
	if l < 0.5 {
		q = l * (1 + s)
	} else {
		q = l + s - l*s
	}
	p := 2*l - q
	r := hueToChannel(p, q, h+1.0/3.0)
	g := hueToChannel(p, q, h)
	b := hueToChannel(p, q, h-1.0/3.0)
	return uint8(math.Round(r * 255)), uint8(math.Round(g * 255)), uint8(math.Round(b * 255))
}

func hueToChannel(p, q, t float64) float64 {
	if t < 0 {
		t++
	}
	if t > 1 {
		t--
	}
	switch {
	case t < 1.0/6.0:
		return p + (q-p)*6*t
	case t < 1.0/2.0:
		return q
	case t < 2.0/3.0:
		return p + (q-p)*(2.0/3.0-t)*6
	default:
		return p
	}
}

func (t *teamState) snapshot() Team {
	return t.Team
}

// ensureTeam returns the record for id, creating it with zeroed counters on
// first use.
func (w *World) ensureTeam(id string) *teamState {
	if team, ok := w.teams[id]; ok {
		return team
	}
	team := newTeamState(id)
	w.teams[id] = team
	return team
}

// recordFunding applies a buy or sell to the team pool and the contributing
// wallet. Withdrawals are clamped to the wallet's own recorded contribution;
// a wallet whose contribution reaches zero is dropped from the map.
func (t *teamState) recordFunding(wallet string, amount float64, isWithdrawal bool) float64 {
	if amount <= 0 {
		return 0
	}
	if !isWithdrawal {
		t.wallets[wallet] += amount
		t.Pool += amount
		return amount
	}

	available := t.wallets[wallet]
	applied := math.Min(amount, available)
	if applied <= 0 {
		return 0
	}
	remaining := available - applied
	if remaining <= 0 {
		delete(t.wallets, wallet)
	} else {
		t.wallets[wallet] = remaining
	}
	t.Pool = math.Max(0, t.Pool-applied)
	return applied
}

// recordSpawnOutcome books a spawn request split into materialized and
// reserved counts, raising the dominant tier when the purchased tier costs
// more than the current one. Reserved monkeys respawn at the dominant tier.
func (t *teamState) recordSpawnOutcome(spawned, reserved int, tier stats.Tier) {
	if spawned < 0 {
		spawned = 0
	}
	if reserved < 0 {
		reserved = 0
	}
	t.Spawned += spawned + reserved
	t.Alive += spawned
	t.Reserved += reserved
	if tierCost(tier) > tierCost(t.dominantTier) {
		t.dominantTier = tier
		t.Tier = tier.String()
	}
}

func (t *teamState) recordDeath() {
	if t.Alive > 0 {
		t.Alive--
	}
	t.Dead++
}

func (t *teamState) recordKill() {
	t.Kills++
}

// takeReserve consumes up to n reserved slots and returns how many were taken.
func (t *teamState) takeReserve(n int) int {
	if n <= 0 || t.Reserved <= 0 {
		return 0
	}
	taken := n
	if taken > t.Reserved {
		taken = t.Reserved
	}
	t.Reserved -= taken
	return taken
}

// FundingPool is the optional team-vs-team funding variant. It mirrors the
// ledger's pool arithmetic but is independent state keyed by team id.
type FundingPool struct {
	TeamID  string             `json:"teamId"`
	Total   float64            `json:"total"`
	Wallets map[string]float64 `json:"wallets"`
}

func newFundingPool(teamID string) *FundingPool {
	return &FundingPool{TeamID: teamID, Wallets: make(map[string]float64)}
}

// Apply records a buy (add) or sell (subtract, floored at the wallet's own
// contribution) and returns the amount actually applied.
func (p *FundingPool) Apply(wallet string, amount float64, isWithdrawal bool) float64 {
	if amount <= 0 {
		return 0
	}
	if !isWithdrawal {
		p.Wallets[wallet] += amount
		p.Total += amount
		return amount
	}
	available := p.Wallets[wallet]
	applied := math.Min(amount, available)
	if applied <= 0 {
		return 0
	}
	if available-applied <= 0 {
		delete(p.Wallets, wallet)
	} else {
		p.Wallets[wallet] = available - applied
	}
	p.Total = math.Max(0, p.Total-applied)
	return applied
}
