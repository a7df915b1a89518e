package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/f1mates/league-api/internal/domain/race"
)

type raceRow struct {
	ID           string    `db:"id"`
	Name         string    `db:"name"`
	Circuit      string    `db:"circuit"`
	Season       int       `db:"season"`
	QualifyingAt time.Time `db:"qualifying_at"`
	StartsAt     time.Time `db:"starts_at"`
	CreatedAt    time.Time `db:"created_at"`
}

func (row raceRow) toDomain() race.Race {
	return race.Race{
		ID:           row.ID,
		Name:         row.Name,
		Circuit:      row.Circuit,
		Season:       row.Season,
		QualifyingAt: row.QualifyingAt,
		StartsAt:     row.StartsAt,
		CreatedAt:    row.CreatedAt,
	}
}

type resultEntryRow struct {
	RaceID      string `db:"race_id"`
	DriverID    int    `db:"driver_id"`
	Position    int    `db:"position"`
	BasePoints  int    `db:"base_points"`
	BonusPoints int    `db:"bonus_points"`
	BonusReason string `db:"bonus_reason"`
}

type RaceRepository struct {
	db *sqlx.DB
}

func NewRaceRepository(db *sqlx.DB) *RaceRepository {
	return &RaceRepository{db: db}
}

func (r *RaceRepository) ListRaces(ctx context.Context) ([]race.Race, error) {
	const query = `
SELECT id, name, circuit, season, qualifying_at, starts_at, created_at
FROM races
ORDER BY starts_at`

	var rows []raceRow
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, markTransient(fmt.Errorf("list races: %w", err))
	}

	out := make([]race.Race, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}

	return out, nil
}

func (r *RaceRepository) GetRace(ctx context.Context, raceID string) (race.Race, bool, error) {
	const query = `
SELECT id, name, circuit, season, qualifying_at, starts_at, created_at
FROM races
WHERE id = $1`

	var row raceRow
	if err := r.db.GetContext(ctx, &row, query, raceID); err != nil {
		if isNotFound(err) {
			return race.Race{}, false, nil
		}
		return race.Race{}, false, markTransient(fmt.Errorf("get race: %w", err))
	}

	return row.toDomain(), true, nil
}

func (r *RaceRepository) CreateRace(ctx context.Context, item race.Race) (bool, error) {
	const query = `
INSERT INTO races (id, name, circuit, season, qualifying_at, starts_at)
VALUES ($1, $2, $3, $4, $5, $6)
ON CONFLICT (id) DO NOTHING`

	res, err := r.db.ExecContext(ctx, query,
		item.ID, item.Name, item.Circuit, item.Season, item.QualifyingAt, item.StartsAt)
	if err != nil {
		return false, markTransient(fmt.Errorf("insert race: %w", err))
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("insert race rows affected: %w", err)
	}

	return affected > 0, nil
}

func (r *RaceRepository) GetResult(ctx context.Context, raceID string) (race.Result, bool, error) {
	const query = `
SELECT race_id, recorded_at
FROM race_results
WHERE race_id = $1`

	var row struct {
		RaceID     string    `db:"race_id"`
		RecordedAt time.Time `db:"recorded_at"`
	}
	if err := r.db.GetContext(ctx, &row, query, raceID); err != nil {
		if isNotFound(err) {
			return race.Result{}, false, nil
		}
		return race.Result{}, false, markTransient(fmt.Errorf("get race result: %w", err))
	}

	entries, err := r.listEntries(ctx, raceID)
	if err != nil {
		return race.Result{}, false, err
	}

	return race.Result{RaceID: row.RaceID, Entries: entries, RecordedAt: row.RecordedAt}, true, nil
}

func (r *RaceRepository) ListResults(ctx context.Context) ([]race.Result, error) {
	const query = `
SELECT race_id, recorded_at
FROM race_results
ORDER BY recorded_at DESC`

	var rows []struct {
		RaceID     string    `db:"race_id"`
		RecordedAt time.Time `db:"recorded_at"`
	}
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, markTransient(fmt.Errorf("list race results: %w", err))
	}

	out := make([]race.Result, 0, len(rows))
	for _, row := range rows {
		entries, err := r.listEntries(ctx, row.RaceID)
		if err != nil {
			return nil, err
		}
		out = append(out, race.Result{RaceID: row.RaceID, Entries: entries, RecordedAt: row.RecordedAt})
	}

	return out, nil
}

func (r *RaceRepository) CreateResult(ctx context.Context, item race.Result) (bool, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return false, markTransient(fmt.Errorf("begin tx for result: %w", err))
	}
	defer func() {
		_ = tx.Rollback()
	}()

	const resultQuery = `
INSERT INTO race_results (race_id, recorded_at)
VALUES ($1, $2)
ON CONFLICT (race_id) DO NOTHING`

	res, err := tx.ExecContext(ctx, resultQuery, item.RaceID, item.RecordedAt)
	if err != nil {
		return false, markTransient(fmt.Errorf("insert race result: %w", err))
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("insert race result rows affected: %w", err)
	}
	if affected == 0 {
		return false, nil
	}

	const entryQuery = `
INSERT INTO race_result_entries (race_id, driver_id, position, base_points, bonus_points, bonus_reason)
VALUES ($1, $2, $3, $4, $5, $6)`

	for _, entry := range item.Entries {
		if _, err := tx.ExecContext(ctx, entryQuery,
			item.RaceID, entry.DriverID, entry.Position,
			entry.BasePoints, entry.BonusPoints, entry.BonusReason); err != nil {
			return false, markTransient(fmt.Errorf("insert result entry: %w", err))
		}
	}

	if err := tx.Commit(); err != nil {
		return false, markTransient(fmt.Errorf("commit race result: %w", err))
	}

	return true, nil
}

func (r *RaceRepository) listEntries(ctx context.Context, raceID string) ([]race.DriverResult, error) {
	const query = `
SELECT race_id, driver_id, position, base_points, bonus_points, bonus_reason
FROM race_result_entries
WHERE race_id = $1
ORDER BY position`

	var rows []resultEntryRow
	if err := r.db.SelectContext(ctx, &rows, query, raceID); err != nil {
		return nil, markTransient(fmt.Errorf("list result entries: %w", err))
	}

	out := make([]race.DriverResult, 0, len(rows))
	for _, row := range rows {
		out = append(out, race.DriverResult{
			DriverID:    row.DriverID,
			Position:    row.Position,
			BasePoints:  row.BasePoints,
			BonusPoints: row.BonusPoints,
			BonusReason: row.BonusReason,
		})
	}

	return out, nil
}
