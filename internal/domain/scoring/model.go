package scoring

import (
	"time"

	"github.com/f1mates/league-api/internal/domain/roster"
)

// Lock marks a race's roster cutoff as passed. Snapshots are captured when
// the lock is taken; aggregation reads snapshots, never the live roster.
type Lock struct {
	RaceID   string
	LockedAt time.Time
}

// Snapshot is one user's roster as it stood at the race cutoff.
type Snapshot struct {
	RaceID     string
	UserID     string
	Roster     roster.Roster
	CapturedAt time.Time
}

// Tally is one user's incremental points for one race. Tallies are
// write-once, which makes the aggregation pass re-runnable: users already
// tallied are skipped.
type Tally struct {
	RaceID       string
	UserID       string
	GroupA       int
	GroupB       int
	GroupC       int
	Bonus        int
	Total        int
	CalculatedAt time.Time
}

// WeeklyAward records which user won the race week. Write-once per race so
// re-running a pass cannot double-increment weekly wins.
type WeeklyAward struct {
	RaceID    string
	UserID    string
	AwardedAt time.Time
}
