package scoring

import "context"

type Repository interface {
	GetLock(ctx context.Context, raceID string) (Lock, bool, error)
	CreateLock(ctx context.Context, lock Lock) (created bool, err error)

	UpsertSnapshot(ctx context.Context, snapshot Snapshot) error
	GetSnapshot(ctx context.Context, raceID, userID string) (Snapshot, bool, error)
	ListSnapshotsByRace(ctx context.Context, raceID string) ([]Snapshot, error)

	CreateTally(ctx context.Context, tally Tally) (created bool, err error)
	ListTalliesByRace(ctx context.Context, raceID string) ([]Tally, error)
	ListTalliesByUser(ctx context.Context, userID string) ([]Tally, error)

	GetWeeklyAward(ctx context.Context, raceID string) (WeeklyAward, bool, error)
	CreateWeeklyAward(ctx context.Context, award WeeklyAward) (created bool, err error)
}
