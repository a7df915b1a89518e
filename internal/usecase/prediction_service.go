package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/f1mates/league-api/internal/domain/prediction"
	"github.com/f1mates/league-api/internal/domain/race"
	"github.com/f1mates/league-api/internal/domain/user"
	"github.com/f1mates/league-api/internal/platform/id"
	"github.com/f1mates/league-api/internal/platform/logging"
)

type SubmitPredictionInput struct {
	UserID string
	RaceID string
	Text   string
}

// PredictionService manages free-text race predictions. Settlement is
// terminal: an admin verdict lands exactly once, either here or during the
// race aggregation pass, whichever reaches the row first.
type PredictionService struct {
	predictionRepo prediction.Repository
	raceRepo       race.Repository
	userRepo       user.Repository
	idGen          id.Generator
	logger         *logging.Logger
	now            func() time.Time
}

func NewPredictionService(
	predictionRepo prediction.Repository,
	raceRepo race.Repository,
	userRepo user.Repository,
	idGen id.Generator,
	logger *logging.Logger,
) *PredictionService {
	if logger == nil {
		logger = logging.Default()
	}
	return &PredictionService{
		predictionRepo: predictionRepo,
		raceRepo:       raceRepo,
		userRepo:       userRepo,
		idGen:          idGen,
		logger:         logger,
		now:            time.Now,
	}
}

// Submit stores a pending prediction for an upcoming race.
func (s *PredictionService) Submit(ctx context.Context, input SubmitPredictionInput) (prediction.Prediction, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PredictionService.Submit")
	defer span.End()

	userID := strings.TrimSpace(input.UserID)
	raceID := strings.TrimSpace(input.RaceID)
	text := strings.TrimSpace(input.Text)
	if userID == "" {
		return prediction.Prediction{}, fmt.Errorf("%w: user_id is required", ErrInvalidInput)
	}
	if raceID == "" {
		return prediction.Prediction{}, fmt.Errorf("%w: race_id is required", ErrInvalidInput)
	}
	if text == "" {
		return prediction.Prediction{}, fmt.Errorf("%w: prediction text is required", ErrInvalidInput)
	}

	if _, exists, err := s.raceRepo.GetRace(ctx, raceID); err != nil {
		return prediction.Prediction{}, fmt.Errorf("get race: %w", err)
	} else if !exists {
		return prediction.Prediction{}, fmt.Errorf("%w: race %s", ErrNotFound, raceID)
	}
	if _, exists, err := s.raceRepo.GetResult(ctx, raceID); err != nil {
		return prediction.Prediction{}, fmt.Errorf("check result: %w", err)
	} else if exists {
		return prediction.Prediction{}, fmt.Errorf("%w: race %s already has a result", ErrInvalidInput, raceID)
	}

	predictionID, err := s.idGen.NewID()
	if err != nil {
		return prediction.Prediction{}, fmt.Errorf("generate prediction id: %w", err)
	}

	item := prediction.Prediction{
		ID:        predictionID,
		UserID:    userID,
		RaceID:    raceID,
		Text:      text,
		Result:    prediction.ResultPending,
		CreatedAt: s.now().UTC(),
	}
	if err := s.predictionRepo.Create(ctx, item); err != nil {
		return prediction.Prediction{}, fmt.Errorf("create prediction: %w", err)
	}

	s.logger.InfoContext(ctx, "prediction submitted",
		"prediction_id", item.ID,
		"user_id", userID,
		"race_id", raceID,
	)
	return item, nil
}

// ListMine returns the caller's predictions, newest first.
func (s *PredictionService) ListMine(ctx context.Context, userID string) ([]prediction.Prediction, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PredictionService.ListMine")
	defer span.End()

	if strings.TrimSpace(userID) == "" {
		return nil, fmt.Errorf("%w: user_id is required", ErrInvalidInput)
	}
	items, err := s.predictionRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list predictions: %w", err)
	}
	return items, nil
}

// Settle applies an admin verdict to a pending prediction and, when correct,
// credits the flat bonus to the owner's cumulative totals.
func (s *PredictionService) Settle(ctx context.Context, predictionID string, correct bool) (prediction.Prediction, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PredictionService.Settle")
	defer span.End()

	predictionID = strings.TrimSpace(predictionID)
	if predictionID == "" {
		return prediction.Prediction{}, fmt.Errorf("%w: prediction_id is required", ErrInvalidInput)
	}

	item, exists, err := s.predictionRepo.GetByID(ctx, predictionID)
	if err != nil {
		return prediction.Prediction{}, fmt.Errorf("get prediction: %w", err)
	}
	if !exists {
		return prediction.Prediction{}, fmt.Errorf("%w: prediction %s", ErrNotFound, predictionID)
	}

	verdict := prediction.ResultIncorrect
	points := 0
	if correct {
		verdict = prediction.ResultCorrect
		points = prediction.CorrectPoints
	}

	now := s.now().UTC()
	settled, err := s.predictionRepo.Settle(ctx, predictionID, verdict, points, now)
	if err != nil {
		return prediction.Prediction{}, fmt.Errorf("settle prediction: %w", err)
	}
	if !settled {
		return prediction.Prediction{}, fmt.Errorf("%w: prediction %s is already settled", ErrInvalidInput, predictionID)
	}

	if points > 0 {
		delta := user.PointsDelta{Bonus: points}
		if err := s.userRepo.AddPoints(ctx, item.UserID, delta, ""); err != nil {
			return prediction.Prediction{}, fmt.Errorf("credit prediction bonus: %w", err)
		}
	}

	item.Result = verdict
	item.Points = points
	item.SettledAt = &now

	s.logger.InfoContext(ctx, "prediction settled",
		"prediction_id", predictionID,
		"result", string(verdict),
	)
	return item, nil
}
