package swap

import (
	"fmt"
	"time"

	"github.com/f1mates/league-api/internal/domain/driver"
)

// Record is one immutable swap-history entry. Records are append-only and
// never edited or deleted.
type Record struct {
	ID          string
	UserID      string
	Tier        driver.Tier
	OldDriverID int
	NewDriverID int
	CreatedAt   time.Time
}

func (r Record) ValidateBasic() error {
	if r.ID == "" {
		return fmt.Errorf("swap record id is required")
	}
	if r.UserID == "" {
		return fmt.Errorf("user id is required")
	}
	if !driver.ValidTier(r.Tier) {
		return fmt.Errorf("unknown tier %q", r.Tier)
	}
	if r.OldDriverID <= 0 || r.NewDriverID <= 0 {
		return fmt.Errorf("old and new driver ids are required")
	}
	return nil
}
