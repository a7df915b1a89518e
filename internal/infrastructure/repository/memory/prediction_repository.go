package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/f1mates/league-api/internal/domain/prediction"
)

type PredictionRepository struct {
	mu          sync.RWMutex
	predictions map[string]prediction.Prediction
}

func NewPredictionRepository() *PredictionRepository {
	return &PredictionRepository{predictions: make(map[string]prediction.Prediction)}
}

func (r *PredictionRepository) Create(_ context.Context, item prediction.Prediction) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.predictions[item.ID] = clonePrediction(item)

	return nil
}

func (r *PredictionRepository) GetByID(_ context.Context, predictionID string) (prediction.Prediction, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.predictions[predictionID]
	if !ok {
		return prediction.Prediction{}, false, nil
	}

	return clonePrediction(item), true, nil
}

func (r *PredictionRepository) ListByUser(_ context.Context, userID string) ([]prediction.Prediction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]prediction.Prediction, 0)
	for _, item := range r.predictions {
		if item.UserID == userID {
			out = append(out, clonePrediction(item))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })

	return out, nil
}

func (r *PredictionRepository) ListPendingByRace(_ context.Context, raceID string) ([]prediction.Prediction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]prediction.Prediction, 0)
	for _, item := range r.predictions {
		if item.RaceID == raceID && item.Result == prediction.ResultPending {
			out = append(out, clonePrediction(item))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })

	return out, nil
}

func (r *PredictionRepository) Settle(_ context.Context, predictionID string, result prediction.Result, points int, settledAt time.Time) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, ok := r.predictions[predictionID]
	if !ok || item.Result != prediction.ResultPending {
		return false, nil
	}
	item.Result = result
	item.Points = points
	item.SettledAt = &settledAt
	r.predictions[predictionID] = item

	return true, nil
}

func clonePrediction(item prediction.Prediction) prediction.Prediction {
	out := item
	if item.SettledAt != nil {
		settledAt := *item.SettledAt
		out.SettledAt = &settledAt
	}
	return out
}
