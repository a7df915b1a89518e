package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/f1mates/league-api/internal/domain/driver"
)

type driverRow struct {
	ID     int    `db:"id"`
	Name   string `db:"name"`
	Team   string `db:"team"`
	Tier   string `db:"tier"`
	Locked bool   `db:"locked"`
	Points int    `db:"points"`
}

func (row driverRow) toDomain() driver.Driver {
	return driver.Driver{
		ID:     row.ID,
		Name:   row.Name,
		Team:   row.Team,
		Tier:   driver.Tier(row.Tier),
		Locked: row.Locked,
		Points: row.Points,
	}
}

type DriverRepository struct {
	db *sqlx.DB
}

func NewDriverRepository(db *sqlx.DB) *DriverRepository {
	return &DriverRepository{db: db}
}

func (r *DriverRepository) List(ctx context.Context) ([]driver.Driver, error) {
	const query = `
SELECT id, name, team, tier, locked, points
FROM drivers
ORDER BY id`

	var rows []driverRow
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, markTransient(fmt.Errorf("list drivers: %w", err))
	}

	out := make([]driver.Driver, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}

	return out, nil
}

func (r *DriverRepository) GetByID(ctx context.Context, driverID int) (driver.Driver, bool, error) {
	const query = `
SELECT id, name, team, tier, locked, points
FROM drivers
WHERE id = $1`

	var row driverRow
	if err := r.db.GetContext(ctx, &row, query, driverID); err != nil {
		if isNotFound(err) {
			return driver.Driver{}, false, nil
		}
		return driver.Driver{}, false, markTransient(fmt.Errorf("get driver: %w", err))
	}

	return row.toDomain(), true, nil
}

func (r *DriverRepository) UpdatePoints(ctx context.Context, pointsByDriver map[int]int) error {
	if len(pointsByDriver) == 0 {
		return nil
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return markTransient(fmt.Errorf("begin tx for driver points: %w", err))
	}
	defer func() {
		_ = tx.Rollback()
	}()

	const query = `
UPDATE drivers
SET points = $2, updated_at = NOW()
WHERE id = $1`

	for driverID, points := range pointsByDriver {
		if _, err := tx.ExecContext(ctx, query, driverID, points); err != nil {
			return markTransient(fmt.Errorf("update driver %d points: %w", driverID, err))
		}
	}

	if err := tx.Commit(); err != nil {
		return markTransient(fmt.Errorf("commit driver points: %w", err))
	}

	return nil
}
