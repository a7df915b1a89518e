package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/f1mates/league-api/internal/domain/driver"
	"github.com/f1mates/league-api/internal/domain/roster"
	"github.com/f1mates/league-api/internal/domain/swap"
)

type rosterRow struct {
	UserID         string    `db:"user_id"`
	DriverA        int       `db:"driver_a"`
	DriverB        int       `db:"driver_b"`
	DriverC        int       `db:"driver_c"`
	SwapsRemaining int       `db:"swaps_remaining"`
	CreatedAt      time.Time `db:"created_at"`
	UpdatedAt      time.Time `db:"updated_at"`
}

func (row rosterRow) toDomain() roster.Roster {
	return roster.Roster{
		UserID:         row.UserID,
		DriverA:        row.DriverA,
		DriverB:        row.DriverB,
		DriverC:        row.DriverC,
		SwapsRemaining: row.SwapsRemaining,
		CreatedAt:      row.CreatedAt,
		UpdatedAt:      row.UpdatedAt,
	}
}

// RosterRepository persists rosters and their append-only swap history. It
// implements both the roster ledger and the swap history reader.
type RosterRepository struct {
	db *sqlx.DB
}

func NewRosterRepository(db *sqlx.DB) *RosterRepository {
	return &RosterRepository{db: db}
}

func (r *RosterRepository) Get(ctx context.Context, userID string) (roster.Roster, bool, error) {
	const query = `
SELECT user_id, driver_a, driver_b, driver_c, swaps_remaining, created_at, updated_at
FROM rosters
WHERE user_id = $1`

	var row rosterRow
	if err := r.db.GetContext(ctx, &row, query, userID); err != nil {
		if isNotFound(err) {
			return roster.Roster{}, false, nil
		}
		return roster.Roster{}, false, markTransient(fmt.Errorf("get roster: %w", err))
	}

	return row.toDomain(), true, nil
}

func (r *RosterRepository) List(ctx context.Context) ([]roster.Roster, error) {
	const query = `
SELECT user_id, driver_a, driver_b, driver_c, swaps_remaining, created_at, updated_at
FROM rosters
ORDER BY user_id`

	var rows []rosterRow
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, markTransient(fmt.Errorf("list rosters: %w", err))
	}

	out := make([]roster.Roster, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}

	return out, nil
}

func (r *RosterRepository) Create(ctx context.Context, item roster.Roster) (bool, error) {
	const query = `
INSERT INTO rosters (user_id, driver_a, driver_b, driver_c, swaps_remaining)
VALUES ($1, $2, $3, $4, $5)
ON CONFLICT (user_id) DO NOTHING`

	res, err := r.db.ExecContext(ctx, query,
		item.UserID, item.DriverA, item.DriverB, item.DriverC, item.SwapsRemaining)
	if err != nil {
		return false, markTransient(fmt.Errorf("insert roster: %w", err))
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("insert roster rows affected: %w", err)
	}

	return affected > 0, nil
}

// ApplySwap commits the roster update and the history record in one
// transaction. The UPDATE is guarded by the lineup and budget the caller
// read, so a roster changed by a concurrent swap matches zero rows and the
// whole transaction is abandoned. A failure on either statement leaves both
// tables untouched.
func (r *RosterRepository) ApplySwap(ctx context.Context, prior, updated roster.Roster, record swap.Record) (bool, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return false, markTransient(fmt.Errorf("begin tx for swap: %w", err))
	}
	defer func() {
		_ = tx.Rollback()
	}()

	const updateQuery = `
UPDATE rosters
SET driver_a = $2, driver_b = $3, driver_c = $4, swaps_remaining = $5, updated_at = $6
WHERE user_id = $1
  AND driver_a = $7 AND driver_b = $8 AND driver_c = $9 AND swaps_remaining = $10`

	res, err := tx.ExecContext(ctx, updateQuery,
		updated.UserID, updated.DriverA, updated.DriverB, updated.DriverC,
		updated.SwapsRemaining, updated.UpdatedAt,
		prior.DriverA, prior.DriverB, prior.DriverC, prior.SwapsRemaining)
	if err != nil {
		return false, markTransient(fmt.Errorf("update roster: %w", err))
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("update roster rows affected: %w", err)
	}
	if affected == 0 {
		return false, nil
	}

	const insertQuery = `
INSERT INTO swap_records (id, user_id, tier, old_driver_id, new_driver_id, created_at)
VALUES ($1, $2, $3, $4, $5, $6)`

	if _, err := tx.ExecContext(ctx, insertQuery,
		record.ID, record.UserID, string(record.Tier),
		record.OldDriverID, record.NewDriverID, record.CreatedAt); err != nil {
		return false, markTransient(fmt.Errorf("insert swap record: %w", err))
	}

	if err := tx.Commit(); err != nil {
		return false, markTransient(fmt.Errorf("commit swap: %w", err))
	}

	return true, nil
}

func (r *RosterRepository) ListByUser(ctx context.Context, userID string) ([]swap.Record, error) {
	const query = `
SELECT id, user_id, tier, old_driver_id, new_driver_id, created_at
FROM swap_records
WHERE user_id = $1
ORDER BY created_at DESC`

	var rows []struct {
		ID          string    `db:"id"`
		UserID      string    `db:"user_id"`
		Tier        string    `db:"tier"`
		OldDriverID int       `db:"old_driver_id"`
		NewDriverID int       `db:"new_driver_id"`
		CreatedAt   time.Time `db:"created_at"`
	}
	if err := r.db.SelectContext(ctx, &rows, query, userID); err != nil {
		return nil, markTransient(fmt.Errorf("list swap records: %w", err))
	}

	out := make([]swap.Record, 0, len(rows))
	for _, row := range rows {
		out = append(out, swap.Record{
			ID:          row.ID,
			UserID:      row.UserID,
			Tier:        driver.Tier(row.Tier),
			OldDriverID: row.OldDriverID,
			NewDriverID: row.NewDriverID,
			CreatedAt:   row.CreatedAt,
		})
	}

	return out, nil
}
