package driver

import "fmt"

// Tier is the driver strength class. Tier A is season-locked, tier B swaps
// consume the seasonal budget, tier C picks are free before each race.
type Tier string

const (
	TierA Tier = "A"
	TierB Tier = "B"
	TierC Tier = "C"
)

// AllTiers lists the tiers in roster order.
var AllTiers = []Tier{TierA, TierB, TierC}

// ValidTier reports whether t is a known tier.
func ValidTier(t Tier) bool {
	switch t {
	case TierA, TierB, TierC:
		return true
	}
	return false
}

// Driver is reference data. Only Points changes after ingestion; identity,
// tier and lock status are immutable for the season.
type Driver struct {
	ID     int
	Name   string
	Team   string
	Tier   Tier
	Locked bool
	Points int
}

func (d Driver) ValidateBasic() error {
	if d.ID <= 0 {
		return fmt.Errorf("driver id must be greater than zero")
	}
	if d.Name == "" {
		return fmt.Errorf("driver name is required")
	}
	if d.Team == "" {
		return fmt.Errorf("driver team is required")
	}
	if !ValidTier(d.Tier) {
		return fmt.Errorf("unknown driver tier %q", d.Tier)
	}
	return nil
}
