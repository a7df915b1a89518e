package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/f1mates/league-api/internal/domain/roster"
	"github.com/f1mates/league-api/internal/domain/scoring"
)

type snapshotRow struct {
	RaceID         string    `db:"race_id"`
	UserID         string    `db:"user_id"`
	DriverA        int       `db:"driver_a"`
	DriverB        int       `db:"driver_b"`
	DriverC        int       `db:"driver_c"`
	SwapsRemaining int       `db:"swaps_remaining"`
	CapturedAt     time.Time `db:"captured_at"`
}

func (row snapshotRow) toDomain() scoring.Snapshot {
	return scoring.Snapshot{
		RaceID: row.RaceID,
		UserID: row.UserID,
		Roster: roster.Roster{
			UserID:         row.UserID,
			DriverA:        row.DriverA,
			DriverB:        row.DriverB,
			DriverC:        row.DriverC,
			SwapsRemaining: row.SwapsRemaining,
		},
		CapturedAt: row.CapturedAt,
	}
}

type tallyRow struct {
	RaceID       string    `db:"race_id"`
	UserID       string    `db:"user_id"`
	GroupA       int       `db:"group_a"`
	GroupB       int       `db:"group_b"`
	GroupC       int       `db:"group_c"`
	Bonus        int       `db:"bonus"`
	Total        int       `db:"total"`
	CalculatedAt time.Time `db:"calculated_at"`
}

func (row tallyRow) toDomain() scoring.Tally {
	return scoring.Tally{
		RaceID:       row.RaceID,
		UserID:       row.UserID,
		GroupA:       row.GroupA,
		GroupB:       row.GroupB,
		GroupC:       row.GroupC,
		Bonus:        row.Bonus,
		Total:        row.Total,
		CalculatedAt: row.CalculatedAt,
	}
}

type ScoringRepository struct {
	db *sqlx.DB
}

func NewScoringRepository(db *sqlx.DB) *ScoringRepository {
	return &ScoringRepository{db: db}
}

func (r *ScoringRepository) GetLock(ctx context.Context, raceID string) (scoring.Lock, bool, error) {
	const query = `
SELECT race_id, locked_at
FROM race_locks
WHERE race_id = $1`

	var row struct {
		RaceID   string    `db:"race_id"`
		LockedAt time.Time `db:"locked_at"`
	}
	if err := r.db.GetContext(ctx, &row, query, raceID); err != nil {
		if isNotFound(err) {
			return scoring.Lock{}, false, nil
		}
		return scoring.Lock{}, false, markTransient(fmt.Errorf("get race lock: %w", err))
	}

	return scoring.Lock{RaceID: row.RaceID, LockedAt: row.LockedAt}, true, nil
}

func (r *ScoringRepository) CreateLock(ctx context.Context, lock scoring.Lock) (bool, error) {
	const query = `
INSERT INTO race_locks (race_id, locked_at)
VALUES ($1, $2)
ON CONFLICT (race_id) DO NOTHING`

	res, err := r.db.ExecContext(ctx, query, lock.RaceID, lock.LockedAt)
	if err != nil {
		return false, markTransient(fmt.Errorf("insert race lock: %w", err))
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("insert race lock rows affected: %w", err)
	}

	return affected > 0, nil
}

func (r *ScoringRepository) UpsertSnapshot(ctx context.Context, snapshot scoring.Snapshot) error {
	const query = `
INSERT INTO roster_snapshots (race_id, user_id, driver_a, driver_b, driver_c, swaps_remaining, captured_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)
ON CONFLICT (race_id, user_id) DO UPDATE SET
    driver_a = EXCLUDED.driver_a,
    driver_b = EXCLUDED.driver_b,
    driver_c = EXCLUDED.driver_c,
    swaps_remaining = EXCLUDED.swaps_remaining,
    captured_at = EXCLUDED.captured_at`

	_, err := r.db.ExecContext(ctx, query,
		snapshot.RaceID, snapshot.UserID,
		snapshot.Roster.DriverA, snapshot.Roster.DriverB, snapshot.Roster.DriverC,
		snapshot.Roster.SwapsRemaining, snapshot.CapturedAt)
	if err != nil {
		return markTransient(fmt.Errorf("upsert roster snapshot: %w", err))
	}

	return nil
}

func (r *ScoringRepository) GetSnapshot(ctx context.Context, raceID, userID string) (scoring.Snapshot, bool, error) {
	const query = `
SELECT race_id, user_id, driver_a, driver_b, driver_c, swaps_remaining, captured_at
FROM roster_snapshots
WHERE race_id = $1 AND user_id = $2`

	var row snapshotRow
	if err := r.db.GetContext(ctx, &row, query, raceID, userID); err != nil {
		if isNotFound(err) {
			return scoring.Snapshot{}, false, nil
		}
		return scoring.Snapshot{}, false, markTransient(fmt.Errorf("get roster snapshot: %w", err))
	}

	return row.toDomain(), true, nil
}

func (r *ScoringRepository) ListSnapshotsByRace(ctx context.Context, raceID string) ([]scoring.Snapshot, error) {
	const query = `
SELECT race_id, user_id, driver_a, driver_b, driver_c, swaps_remaining, captured_at
FROM roster_snapshots
WHERE race_id = $1
ORDER BY user_id`

	var rows []snapshotRow
	if err := r.db.SelectContext(ctx, &rows, query, raceID); err != nil {
		return nil, markTransient(fmt.Errorf("list roster snapshots: %w", err))
	}

	out := make([]scoring.Snapshot, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}

	return out, nil
}

func (r *ScoringRepository) CreateTally(ctx context.Context, tally scoring.Tally) (bool, error) {
	const query = `
INSERT INTO race_tallies (race_id, user_id, group_a, group_b, group_c, bonus, total, calculated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
ON CONFLICT (race_id, user_id) DO NOTHING`

	res, err := r.db.ExecContext(ctx, query,
		tally.RaceID, tally.UserID, tally.GroupA, tally.GroupB, tally.GroupC,
		tally.Bonus, tally.Total, tally.CalculatedAt)
	if err != nil {
		return false, markTransient(fmt.Errorf("insert race tally: %w", err))
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("insert race tally rows affected: %w", err)
	}

	return affected > 0, nil
}

func (r *ScoringRepository) ListTalliesByRace(ctx context.Context, raceID string) ([]scoring.Tally, error) {
	const query = `
SELECT race_id, user_id, group_a, group_b, group_c, bonus, total, calculated_at
FROM race_tallies
WHERE race_id = $1
ORDER BY user_id`

	var rows []tallyRow
	if err := r.db.SelectContext(ctx, &rows, query, raceID); err != nil {
		return nil, markTransient(fmt.Errorf("list race tallies: %w", err))
	}

	out := make([]scoring.Tally, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}

	return out, nil
}

func (r *ScoringRepository) ListTalliesByUser(ctx context.Context, userID string) ([]scoring.Tally, error) {
	const query = `
SELECT race_id, user_id, group_a, group_b, group_c, bonus, total, calculated_at
FROM race_tallies
WHERE user_id = $1
ORDER BY calculated_at`

	var rows []tallyRow
	if err := r.db.SelectContext(ctx, &rows, query, userID); err != nil {
		return nil, markTransient(fmt.Errorf("list user tallies: %w", err))
	}

	out := make([]scoring.Tally, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}

	return out, nil
}

func (r *ScoringRepository) GetWeeklyAward(ctx context.Context, raceID string) (scoring.WeeklyAward, bool, error) {
	const query = `
SELECT race_id, user_id, awarded_at
FROM weekly_awards
WHERE race_id = $1`

	var row struct {
		RaceID    string    `db:"race_id"`
		UserID    string    `db:"user_id"`
		AwardedAt time.Time `db:"awarded_at"`
	}
	if err := r.db.GetContext(ctx, &row, query, raceID); err != nil {
		if isNotFound(err) {
			return scoring.WeeklyAward{}, false, nil
		}
		return scoring.WeeklyAward{}, false, markTransient(fmt.Errorf("get weekly award: %w", err))
	}

	return scoring.WeeklyAward{RaceID: row.RaceID, UserID: row.UserID, AwardedAt: row.AwardedAt}, true, nil
}

func (r *ScoringRepository) CreateWeeklyAward(ctx context.Context, award scoring.WeeklyAward) (bool, error) {
	const query = `
INSERT INTO weekly_awards (race_id, user_id, awarded_at)
VALUES ($1, $2, $3)
ON CONFLICT (race_id) DO NOTHING`

	res, err := r.db.ExecContext(ctx, query, award.RaceID, award.UserID, award.AwardedAt)
	if err != nil {
		return false, markTransient(fmt.Errorf("insert weekly award: %w", err))
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("insert weekly award rows affected: %w", err)
	}

	return affected > 0, nil
}
