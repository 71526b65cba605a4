package stats

import "testing"

func TestForTierExactValues(t *testing.T) {
	small := ForTier(TierSmall)
	if small.Speed != 40 || small.MaxHealth != 100 || small.Damage != 12 {
		t.Fatalf("unexpected small profile: %+v", small)
	}
	if small.HealthBars != 1 {
		t.Fatalf("expected small to render 1 health bar, got %d", small.HealthBars)
	}

	medium := ForTier(TierMedium)
	if medium.Speed != 20 || medium.MaxHealth != 800 || medium.Damage != 24 {
		t.Fatalf("unexpected medium profile: %+v", medium)
	}
	if medium.HealthBars != 4 {
		t.Fatalf("expected medium to render 4 health bars, got %d", medium.HealthBars)
	}

	large := ForTier(TierLarge)
	if large.Speed != 40*0.33 || large.MaxHealth != 5000 || large.Damage != 240 {
		t.Fatalf("unexpected large profile: %+v", large)
	}
	if large.HealthBars != 10 {
		t.Fatalf("expected large to render 10 health bars, got %d", large.HealthBars)
	}
}

func TestTierOrderingPowerUpSpeedDown(t *testing.T) {
	tiers := Tiers()
	for i := 1; i < len(tiers); i++ {
		prev := ForTier(tiers[i-1])
		curr := ForTier(tiers[i])
		if curr.MaxHealth <= prev.MaxHealth {
			t.Fatalf("maxHealth not strictly increasing at %s", tiers[i])
		}
		if curr.Damage <= prev.Damage {
			t.Fatalf("damage not strictly increasing at %s", tiers[i])
		}
		if curr.Speed >= prev.Speed {
			t.Fatalf("speed not strictly decreasing at %s", tiers[i])
		}
		if curr.Size <= prev.Size {
			t.Fatalf("size not strictly increasing at %s", tiers[i])
		}
	}
}

func TestForTierUnknownPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic for unknown tier")
		}
	}()
	ForTier(TierCount)
}

func TestParseTierRoundTrips(t *testing.T) {
	for _, tier := range Tiers() {
		parsed, ok := ParseTier(tier.String())
		if !ok || parsed != tier {
			t.Fatalf("ParseTier(%q) = %v, %v", tier.String(), parsed, ok)
		}
	}
	if _, ok := ParseTier("gigantic"); ok {
		t.Fatalf("expected unknown tier string to be rejected")
	}
}

func TestTiersByCostDescIsReversed(t *testing.T) {
	desc := TiersByCostDesc()
	if len(desc) != int(TierCount) {
		t.Fatalf("expected %d tiers, got %d", TierCount, len(desc))
	}
	if desc[0] != TierLarge || desc[len(desc)-1] != TierSmall {
		t.Fatalf("unexpected order: %v", desc)
	}
}
