package race

import (
	"errors"
	"fmt"
	"time"
)

var ErrDuplicateResult = errors.New("race result already recorded")

// basePointsTable is the canonical classification scoring: P1..P10 score,
// P11 and below score zero.
var basePointsTable = [...]int{25, 18, 15, 12, 10, 8, 6, 4, 2, 1}

// BasePointsForPosition returns the base points for a finishing position.
func BasePointsForPosition(position int) int {
	if position < 1 || position > len(basePointsTable) {
		return 0
	}
	return basePointsTable[position-1]
}

// Race is one calendar entry. QualifyingAt is the roster cutoff for the
// race weekend.
type Race struct {
	ID           string
	Name         string
	Circuit      string
	Season       int
	QualifyingAt time.Time
	StartsAt     time.Time
	CreatedAt    time.Time
}

func (r Race) ValidateBasic() error {
	if r.ID == "" {
		return fmt.Errorf("race id is required")
	}
	if r.Name == "" {
		return fmt.Errorf("race name is required")
	}
	if r.Season <= 0 {
		return fmt.Errorf("race season is required")
	}
	if r.StartsAt.IsZero() {
		return fmt.Errorf("race start time is required")
	}
	return nil
}

// DriverResult is one driver's classified finish in a race.
type DriverResult struct {
	DriverID    int
	Position    int
	BasePoints  int
	BonusPoints int
	BonusReason string
}

// Result is the finalized classification for one race. It is immutable once
// recorded.
type Result struct {
	RaceID     string
	Entries    []DriverResult
	RecordedAt time.Time
}

func (r Result) ValidateBasic() error {
	if r.RaceID == "" {
		return fmt.Errorf("race id is required")
	}
	if len(r.Entries) == 0 {
		return fmt.Errorf("result entries are required")
	}

	seenDrivers := make(map[int]struct{}, len(r.Entries))
	seenPositions := make(map[int]struct{}, len(r.Entries))
	for _, entry := range r.Entries {
		if entry.DriverID <= 0 {
			return fmt.Errorf("driver id is required in result entries")
		}
		if entry.Position <= 0 {
			return fmt.Errorf("position must be greater than zero for driver %d", entry.DriverID)
		}
		if entry.BonusPoints < 0 {
			return fmt.Errorf("bonus points cannot be negative for driver %d", entry.DriverID)
		}
		if _, dup := seenDrivers[entry.DriverID]; dup {
			return fmt.Errorf("duplicate driver %d in result entries", entry.DriverID)
		}
		seenDrivers[entry.DriverID] = struct{}{}
		if _, dup := seenPositions[entry.Position]; dup {
			return fmt.Errorf("duplicate position %d in result entries", entry.Position)
		}
		seenPositions[entry.Position] = struct{}{}
	}
	return nil
}

// EntryForDriver finds a driver's classified entry, if any.
func (r Result) EntryForDriver(driverID int) (DriverResult, bool) {
	for _, entry := range r.Entries {
		if entry.DriverID == driverID {
			return entry, true
		}
	}
	return DriverResult{}, false
}
