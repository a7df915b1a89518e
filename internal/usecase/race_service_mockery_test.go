package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/f1mates/league-api/internal/domain/race"
	racemock "github.com/f1mates/league-api/internal/mocks/domain/race"
)

func TestRaceService_ListRaces_SortedByStartUsingMockery(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	raceRepo := racemock.NewRepository(t)

	service := NewRaceService(raceRepo)
	stored := []race.Race{
		{ID: "saudi-2025", Season: 2025, StartsAt: time.Date(2025, 3, 9, 17, 0, 0, 0, time.UTC)},
		{ID: "bahrain-2025", Season: 2025, StartsAt: time.Date(2025, 3, 2, 15, 0, 0, 0, time.UTC)},
	}

	raceRepo.
		On("ListRaces", mock.MatchedBy(func(v context.Context) bool { return v == ctx })).
		Return(stored, nil).
		Once()

	got, err := service.ListRaces(ctx)
	if err != nil {
		t.Fatalf("list races: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("unexpected race count: got=%d want=2", len(got))
	}
	if got[0].ID != "bahrain-2025" || got[1].ID != "saudi-2025" {
		t.Fatalf("races not sorted by start time: %s, %s", got[0].ID, got[1].ID)
	}
}

func TestRaceService_GetResult_NotFoundUsingMockery(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	raceRepo := racemock.NewRepository(t)

	service := NewRaceService(raceRepo)

	raceRepo.
		On("GetResult", mock.MatchedBy(func(v context.Context) bool { return v == ctx }), "missing-race").
		Return(race.Result{}, false, nil).
		Once()

	_, err := service.GetResult(ctx, "missing-race")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestRaceService_CreateRace_DuplicateUsingMockery(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	raceRepo := racemock.NewRepository(t)

	service := NewRaceService(raceRepo)
	input := CreateRaceInput{
		ID:           "bahrain-2025",
		Name:         "Bahrain Grand Prix",
		Circuit:      "Bahrain International Circuit",
		Season:       2025,
		QualifyingAt: time.Date(2025, 3, 1, 15, 0, 0, 0, time.UTC),
		StartsAt:     time.Date(2025, 3, 2, 15, 0, 0, 0, time.UTC),
	}

	raceRepo.
		On("CreateRace", mock.MatchedBy(func(v context.Context) bool { return v == ctx }), mock.AnythingOfType("race.Race")).
		Return(false, nil).
		Once()

	_, err := service.CreateRace(ctx, input)
	if !errors.Is(err, ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists, got %v", err)
	}
}
