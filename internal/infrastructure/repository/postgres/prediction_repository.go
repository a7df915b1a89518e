package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/f1mates/league-api/internal/domain/prediction"
)

type predictionRow struct {
	ID        string     `db:"id"`
	UserID    string     `db:"user_id"`
	RaceID    string     `db:"race_id"`
	Text      string     `db:"text"`
	Result    string     `db:"result"`
	Points    int        `db:"points"`
	CreatedAt time.Time  `db:"created_at"`
	SettledAt *time.Time `db:"settled_at"`
}

func (row predictionRow) toDomain() prediction.Prediction {
	return prediction.Prediction{
		ID:        row.ID,
		UserID:    row.UserID,
		RaceID:    row.RaceID,
		Text:      row.Text,
		Result:    prediction.Result(row.Result),
		Points:    row.Points,
		CreatedAt: row.CreatedAt,
		SettledAt: row.SettledAt,
	}
}

type PredictionRepository struct {
	db *sqlx.DB
}

func NewPredictionRepository(db *sqlx.DB) *PredictionRepository {
	return &PredictionRepository{db: db}
}

func (r *PredictionRepository) Create(ctx context.Context, item prediction.Prediction) error {
	const query = `
INSERT INTO predictions (id, user_id, race_id, text, result, points, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.db.ExecContext(ctx, query,
		item.ID, item.UserID, item.RaceID, item.Text,
		string(item.Result), item.Points, item.CreatedAt)
	if err != nil {
		return markTransient(fmt.Errorf("insert prediction: %w", err))
	}

	return nil
}

func (r *PredictionRepository) GetByID(ctx context.Context, predictionID string) (prediction.Prediction, bool, error) {
	const query = `
SELECT id, user_id, race_id, text, result, points, created_at, settled_at
FROM predictions
WHERE id = $1`

	var row predictionRow
	if err := r.db.GetContext(ctx, &row, query, predictionID); err != nil {
		if isNotFound(err) {
			return prediction.Prediction{}, false, nil
		}
		return prediction.Prediction{}, false, markTransient(fmt.Errorf("get prediction: %w", err))
	}

	return row.toDomain(), true, nil
}

func (r *PredictionRepository) ListByUser(ctx context.Context, userID string) ([]prediction.Prediction, error) {
	const query = `
SELECT id, user_id, race_id, text, result, points, created_at, settled_at
FROM predictions
WHERE user_id = $1
ORDER BY created_at DESC`

	return r.list(ctx, query, userID)
}

func (r *PredictionRepository) ListPendingByRace(ctx context.Context, raceID string) ([]prediction.Prediction, error) {
	const query = `
SELECT id, user_id, race_id, text, result, points, created_at, settled_at
FROM predictions
WHERE race_id = $1 AND result = 'pending'
ORDER BY id`

	return r.list(ctx, query, raceID)
}

// Settle is a compare-and-set on the pending state. The WHERE clause makes
// concurrent settles race-free: exactly one caller observes settled = true.
func (r *PredictionRepository) Settle(ctx context.Context, predictionID string, result prediction.Result, points int, settledAt time.Time) (bool, error) {
	const query = `
UPDATE predictions
SET result = $2, points = $3, settled_at = $4
WHERE id = $1 AND result = 'pending'`

	res, err := r.db.ExecContext(ctx, query, predictionID, string(result), points, settledAt)
	if err != nil {
		return false, markTransient(fmt.Errorf("settle prediction: %w", err))
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("settle prediction rows affected: %w", err)
	}

	return affected > 0, nil
}

func (r *PredictionRepository) list(ctx context.Context, query string, arg any) ([]prediction.Prediction, error) {
	var rows []predictionRow
	if err := r.db.SelectContext(ctx, &rows, query, arg); err != nil {
		return nil, markTransient(fmt.Errorf("list predictions: %w", err))
	}

	out := make([]prediction.Prediction, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}

	return out, nil
}
