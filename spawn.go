package main

import (
	"math"
	"strconv"

	"monkey-rumble/server/stats"
)

// tierCost returns the spawn cost for a tier in base currency.
func tierCost(tier stats.Tier) float64 {
	switch tier {
	case stats.TierSmall:
		return costSmall
	case stats.TierMedium:
		return costMedium
	case stats.TierLarge:
		return costLarge
	default:
		return costSmall
	}
}

// TierCount pairs a tier with how many monkeys of that tier to spawn.
type TierCount struct {
	Tier  stats.Tier
	Count int
}

// Allocate converts a funding amount into a greedy largest-tier-first
// allocation. A fixed margin is added first so fee noise just under a tier
// boundary still buys the intended monkey. Deterministic: equal amounts
// always produce equal allocations.
func Allocate(amount float64) []TierCount {
	if amount <= 0 {
		return nil
	}
	remaining := amount + allocFeeMargin

	allocation := make([]TierCount, 0, int(stats.TierCount))
	for _, tier := range stats.TiersByCostDesc() {
		cost := tierCost(tier)
		count := int(remaining / cost)
		if count <= 0 {
			continue
		}
		remaining -= float64(count) * cost
		allocation = append(allocation, TierCount{Tier: tier, Count: count})
	}
	return allocation
}

// TeamIDFromAmount derives a discrete team bucket ("0".."9") by rounding the
// amount up to 1/100 resolution and extracting the hundredths digit. Used by
// the bucket team strategy where teams are anonymous bins rather than
// per-wallet identities.
func TeamIDFromAmount(amount float64) string {
	if amount < 0 {
		amount = -amount
	}
	// The epsilon keeps float artifacts like 0.1*100 == 10.000000000000002
	// from ceiling into the next bucket.
	units := int64(math.Ceil(amount*teamBucketUnits - 1e-9))
	if units < 0 {
		units = 0
	}
	return strconv.FormatInt(units%10, 10)
}

// TeamStrategy selects how funding events map to teams.
type TeamStrategy string

const (
	// TeamStrategyWallet makes every contributing wallet its own team.
	TeamStrategyWallet TeamStrategy = "wallet"
	// TeamStrategyBucket derives one of ten bucket teams from the amount.
	TeamStrategyBucket TeamStrategy = "bucket"
)

// teamIDFor resolves the team for a funding event under the configured
// strategy. An explicit team id on the event always wins.
func teamIDFor(strategy TeamStrategy, wallet string, amount float64, explicit string) string {
	if explicit != "" {
		return explicit
	}
	switch strategy {
	case TeamStrategyBucket:
		return TeamIDFromAmount(amount)
	default:
		return wallet
	}
}
