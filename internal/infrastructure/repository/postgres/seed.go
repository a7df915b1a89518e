package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/f1mates/league-api/internal/infrastructure/repository/memory"
)

// BootstrapSeed loads the driver grid and opening race calendar into an
// empty database. Existing rows are left alone.
func BootstrapSeed(ctx context.Context, db *sqlx.DB) error {
	var count int
	if err := db.GetContext(ctx, &count, `SELECT COUNT(1) FROM drivers`); err != nil {
		return fmt.Errorf("count drivers for bootstrap seed: %w", err)
	}
	if count > 0 {
		return nil
	}

	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin seed tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for _, d := range memory.SeedDrivers() {
		sqlQuery, args, err := sqlx.Named(`
INSERT INTO drivers (id, name, team, tier, locked, points)
VALUES (:id, :name, :team, :tier, :locked, :points)
ON CONFLICT (id) DO NOTHING`, map[string]any{
			"id":     d.ID,
			"name":   d.Name,
			"team":   d.Team,
			"tier":   string(d.Tier),
			"locked": d.Locked,
			"points": d.Points,
		})
		if err != nil {
			return fmt.Errorf("bind seed driver %d query: %w", d.ID, err)
		}
		sqlQuery = tx.Rebind(sqlQuery)
		if _, err := tx.ExecContext(ctx, sqlQuery, args...); err != nil {
			return fmt.Errorf("seed driver %d: %w", d.ID, err)
		}
	}

	for _, item := range memory.SeedRaces() {
		sqlQuery, args, err := sqlx.Named(`
INSERT INTO races (id, name, circuit, season, qualifying_at, starts_at)
VALUES (:id, :name, :circuit, :season, :qualifying_at, :starts_at)
ON CONFLICT (id) DO NOTHING`, map[string]any{
			"id":            item.ID,
			"name":          item.Name,
			"circuit":       item.Circuit,
			"season":        item.Season,
			"qualifying_at": item.QualifyingAt,
			"starts_at":     item.StartsAt,
		})
		if err != nil {
			return fmt.Errorf("bind seed race %s query: %w", item.ID, err)
		}
		sqlQuery = tx.Rebind(sqlQuery)
		if _, err := tx.ExecContext(ctx, sqlQuery, args...); err != nil {
			return fmt.Errorf("seed race %s: %w", item.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit bootstrap seed: %w", err)
	}

	return nil
}
