// Package stats exposes the per-tier balance table for monkeys. The values
// are design constants: every other system (spawn costs, combat, rendering)
// assumes the relative ordering encoded here.
package stats

import "fmt"

// Tier identifies a monkey power class.
type Tier uint8

const (
	TierSmall Tier = iota
	TierMedium
	TierLarge

	TierCount
)

func (t Tier) String() string {
	switch t {
	case TierSmall:
		return "small"
	case TierMedium:
		return "medium"
	case TierLarge:
		return "large"
	default:
		return fmt.Sprintf("tier(%d)", uint8(t))
	}
}

// ParseTier validates a tier string received from a client or config file.
func ParseTier(value string) (Tier, bool) {
	switch value {
	case "small":
		return TierSmall, true
	case "medium":
		return TierMedium, true
	case "large":
		return TierLarge, true
	default:
		return TierSmall, false
	}
}

// Profile bundles the derived constants for one tier.
type Profile struct {
	Size            float64
	CollisionRadius float64
	Speed           float64
	MaxHealth       float64
	Damage          float64
	HealthBars      int
}

// Base profile for the small tier. The other tiers are fixed multipliers off
// these numbers; the ratios matter for balance, the absolutes are tuning.
const (
	baseSize   = 32.0
	baseSpeed  = 40.0
	baseHealth = 100.0
	baseDamage = 12.0
)

var tierProfiles = map[Tier]Profile{
	TierSmall: {
		Size:            baseSize,
		CollisionRadius: baseSize * 0.45,
		Speed:           baseSpeed,
		MaxHealth:       baseHealth,
		Damage:          baseDamage,
		HealthBars:      1,
	},
	TierMedium: {
		Size:            baseSize * 1.3,
		CollisionRadius: baseSize * 1.3 * 0.45,
		Speed:           baseSpeed * 0.5,
		MaxHealth:       baseHealth * 8,
		Damage:          baseDamage * 2,
		HealthBars:      4,
	},
	TierLarge: {
		Size:            baseSize * 1.8,
		CollisionRadius: baseSize * 1.8 * 0.45,
		Speed:           baseSpeed * 0.33,
		MaxHealth:       baseHealth * 50,
		Damage:          baseDamage * 20,
		HealthBars:      10,
	},
}

// ForTier returns the profile for the given tier. Supplying an unknown tier is
// a caller bug, not bad external input, so it fails fast.
func ForTier(tier Tier) Profile {
	profile, ok := tierProfiles[tier]
	if !ok {
		panic(fmt.Sprintf("stats: unknown tier %d", tier))
	}
	return profile
}

// Tiers returns every tier ordered from weakest to strongest.
func Tiers() []Tier {
	return []Tier{TierSmall, TierMedium, TierLarge}
}

// TiersByCostDesc returns every tier ordered from strongest to weakest, the
// order the spawn allocator consumes them in.
func TiersByCostDesc() []Tier {
	return []Tier{TierLarge, TierMedium, TierSmall}
}
