package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/f1mates/league-api/internal/domain/race"
)

type CreateRaceInput struct {
	ID           string
	Name         string
	Circuit      string
	Season       int
	QualifyingAt time.Time
	StartsAt     time.Time
}

// RaceService maintains the race calendar and serves recorded results.
type RaceService struct {
	raceRepo race.Repository
	now      func() time.Time
}

func NewRaceService(raceRepo race.Repository) *RaceService {
	return &RaceService{
		raceRepo: raceRepo,
		now:      time.Now,
	}
}

func (s *RaceService) ListRaces(ctx context.Context) ([]race.Race, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RaceService.ListRaces")
	defer span.End()

	items, err := s.raceRepo.ListRaces(ctx)
	if err != nil {
		return nil, fmt.Errorf("list races: %w", err)
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].StartsAt.Before(items[j].StartsAt)
	})
	return items, nil
}

func (s *RaceService) GetRace(ctx context.Context, raceID string) (race.Race, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RaceService.GetRace")
	defer span.End()

	raceID = strings.TrimSpace(raceID)
	if raceID == "" {
		return race.Race{}, fmt.Errorf("%w: race_id is required", ErrInvalidInput)
	}

	item, exists, err := s.raceRepo.GetRace(ctx, raceID)
	if err != nil {
		return race.Race{}, fmt.Errorf("get race: %w", err)
	}
	if !exists {
		return race.Race{}, fmt.Errorf("%w: race %s", ErrNotFound, raceID)
	}
	return item, nil
}

// NextRace returns the first race starting after now, if any.
func (s *RaceService) NextRace(ctx context.Context) (race.Race, bool, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RaceService.NextRace")
	defer span.End()

	items, err := s.ListRaces(ctx)
	if err != nil {
		return race.Race{}, false, err
	}

	now := s.now().UTC()
	for _, item := range items {
		if item.StartsAt.After(now) {
			return item, true, nil
		}
	}
	return race.Race{}, false, nil
}

func (s *RaceService) CreateRace(ctx context.Context, input CreateRaceInput) (race.Race, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RaceService.CreateRace")
	defer span.End()

	item := race.Race{
		ID:           strings.TrimSpace(input.ID),
		Name:         strings.TrimSpace(input.Name),
		Circuit:      strings.TrimSpace(input.Circuit),
		Season:       input.Season,
		QualifyingAt: input.QualifyingAt.UTC(),
		StartsAt:     input.StartsAt.UTC(),
		CreatedAt:    s.now().UTC(),
	}
	if err := item.ValidateBasic(); err != nil {
		return race.Race{}, fmt.Errorf("%w: %s", ErrInvalidInput, err)
	}

	created, err := s.raceRepo.CreateRace(ctx, item)
	if err != nil {
		return race.Race{}, fmt.Errorf("create race: %w", err)
	}
	if !created {
		return race.Race{}, fmt.Errorf("%w: race %s", ErrAlreadyExists, item.ID)
	}
	return item, nil
}

func (s *RaceService) GetResult(ctx context.Context, raceID string) (race.Result, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RaceService.GetResult")
	defer span.End()

	raceID = strings.TrimSpace(raceID)
	if raceID == "" {
		return race.Result{}, fmt.Errorf("%w: race_id is required", ErrInvalidInput)
	}

	result, exists, err := s.raceRepo.GetResult(ctx, raceID)
	if err != nil {
		return race.Result{}, fmt.Errorf("get race result: %w", err)
	}
	if !exists {
		return race.Result{}, fmt.Errorf("%w: result for race %s", ErrNotFound, raceID)
	}
	return result, nil
}

func (s *RaceService) ListResults(ctx context.Context) ([]race.Result, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RaceService.ListResults")
	defer span.End()

	results, err := s.raceRepo.ListResults(ctx)
	if err != nil {
		return nil, fmt.Errorf("list race results: %w", err)
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].RecordedAt.After(results[j].RecordedAt)
	})
	return results, nil
}
