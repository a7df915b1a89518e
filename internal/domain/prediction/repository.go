package prediction

import (
	"context"
	"time"
)

// Repository describes prediction persistence needs from use cases.
type Repository interface {
	Create(ctx context.Context, item Prediction) error
	GetByID(ctx context.Context, predictionID string) (Prediction, bool, error)
	ListByUser(ctx context.Context, userID string) ([]Prediction, error)
	ListPendingByRace(ctx context.Context, raceID string) ([]Prediction, error)
	// Settle moves a pending prediction to its terminal result. It is a
	// compare-and-set: settled reports false when the prediction was not
	// pending anymore, and the row is left untouched in that case.
	Settle(ctx context.Context, predictionID string, result Result, points int, settledAt time.Time) (settled bool, err error)
}
