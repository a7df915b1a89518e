package roster

import (
	"errors"
	"fmt"
	"time"

	"github.com/f1mates/league-api/internal/domain/driver"
)

// InitialSwapBudget is the season allowance of Group B swaps.
const InitialSwapBudget = 6

var (
	ErrNoSwapsRemaining = errors.New("no group B swaps remaining")
	ErrTierLocked       = errors.New("tier is locked")
	ErrInvalidSelection = errors.New("selected driver is not eligible")
)

// Roster is one user's current driver per tier plus the remaining Group B
// swap budget.
type Roster struct {
	UserID         string
	DriverA        int
	DriverB        int
	DriverC        int
	SwapsRemaining int
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (r Roster) ValidateBasic() error {
	if r.UserID == "" {
		return fmt.Errorf("user id is required")
	}
	if r.DriverA <= 0 || r.DriverB <= 0 || r.DriverC <= 0 {
		return fmt.Errorf("all three tier assignments are required")
	}
	if r.SwapsRemaining < 0 || r.SwapsRemaining > InitialSwapBudget {
		return fmt.Errorf("swaps remaining %d out of range [0,%d]", r.SwapsRemaining, InitialSwapBudget)
	}
	return nil
}

// DriverFor returns the assigned driver id for a tier.
func (r Roster) DriverFor(tier driver.Tier) int {
	switch tier {
	case driver.TierA:
		return r.DriverA
	case driver.TierB:
		return r.DriverB
	case driver.TierC:
		return r.DriverC
	default:
		return 0
	}
}
