package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/f1mates/league-api/internal/domain/driver"
	"github.com/f1mates/league-api/internal/domain/prediction"
	"github.com/f1mates/league-api/internal/domain/race"
	"github.com/f1mates/league-api/internal/domain/roster"
	"github.com/f1mates/league-api/internal/domain/user"
)

// RosterSlot pairs a tier assignment with the driver's catalog entry.
type RosterSlot struct {
	Tier   driver.Tier
	Driver driver.Driver
}

// Dashboard is the single-call view backing a user's home screen.
type Dashboard struct {
	Player         user.Player
	Slots          []RosterSlot
	SwapsRemaining int
	Predictions    []prediction.Prediction
	NextRace       *race.Race
}

// DashboardService assembles the per-user overview from the other stores.
type DashboardService struct {
	userRepo       user.Repository
	rosterRepo     roster.Repository
	driverRepo     driver.Repository
	predictionRepo prediction.Repository
	raceRepo       race.Repository
	now            func() time.Time
}

func NewDashboardService(
	userRepo user.Repository,
	rosterRepo roster.Repository,
	driverRepo driver.Repository,
	predictionRepo prediction.Repository,
	raceRepo race.Repository,
) *DashboardService {
	return &DashboardService{
		userRepo:       userRepo,
		rosterRepo:     rosterRepo,
		driverRepo:     driverRepo,
		predictionRepo: predictionRepo,
		raceRepo:       raceRepo,
		now:            time.Now,
	}
}

// Overview loads the caller's points document, roster with driver details,
// predictions and the next scheduled race.
func (s *DashboardService) Overview(ctx context.Context, userID string) (Dashboard, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.DashboardService.Overview")
	defer span.End()

	userID = strings.TrimSpace(userID)
	if userID == "" {
		return Dashboard{}, fmt.Errorf("%w: user_id is required", ErrInvalidInput)
	}

	player, exists, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return Dashboard{}, fmt.Errorf("get player: %w", err)
	}
	if !exists {
		return Dashboard{}, fmt.Errorf("%w: user %s", ErrNotFound, userID)
	}

	item, exists, err := s.rosterRepo.Get(ctx, userID)
	if err != nil {
		return Dashboard{}, fmt.Errorf("get roster: %w", err)
	}
	if !exists {
		return Dashboard{}, fmt.Errorf("%w: roster for user %s", ErrNotFound, userID)
	}

	slots := make([]RosterSlot, 0, len(driver.AllTiers))
	for _, tier := range driver.AllTiers {
		driverID := item.DriverFor(tier)
		assigned, found, err := s.driverRepo.GetByID(ctx, driverID)
		if err != nil {
			return Dashboard{}, fmt.Errorf("get driver %d: %w", driverID, err)
		}
		if !found {
			return Dashboard{}, fmt.Errorf("%w: driver %d", ErrNotFound, driverID)
		}
		slots = append(slots, RosterSlot{Tier: tier, Driver: assigned})
	}

	predictions, err := s.predictionRepo.ListByUser(ctx, userID)
	if err != nil {
		return Dashboard{}, fmt.Errorf("list predictions: %w", err)
	}

	dashboard := Dashboard{
		Player:         player,
		Slots:          slots,
		SwapsRemaining: item.SwapsRemaining,
		Predictions:    predictions,
	}

	races, err := s.raceRepo.ListRaces(ctx)
	if err != nil {
		return Dashboard{}, fmt.Errorf("list races: %w", err)
	}
	now := s.now().UTC()
	for i := range races {
		candidate := races[i]
		if !candidate.StartsAt.After(now) {
			continue
		}
		if dashboard.NextRace == nil || candidate.StartsAt.Before(dashboard.NextRace.StartsAt) {
			dashboard.NextRace = &candidate
		}
	}

	return dashboard, nil
}
