package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/f1mates/league-api/internal/domain/driver"
	"github.com/f1mates/league-api/internal/domain/roster"
	"github.com/f1mates/league-api/internal/domain/swap"
)

type InitializeRosterInput struct {
	UserID  string
	DriverA int
	DriverB int
	DriverC int
}

// RosterService reads rosters and handles the one-time draft.
type RosterService struct {
	rosterRepo roster.Repository
	driverRepo driver.Repository
	swapRepo   swap.Repository
	now        func() time.Time
}

func NewRosterService(
	rosterRepo roster.Repository,
	driverRepo driver.Repository,
	swapRepo swap.Repository,
) *RosterService {
	return &RosterService{
		rosterRepo: rosterRepo,
		driverRepo: driverRepo,
		swapRepo:   swapRepo,
		now:        time.Now,
	}
}

func (s *RosterService) Get(ctx context.Context, userID string) (roster.Roster, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RosterService.Get")
	defer span.End()

	userID = strings.TrimSpace(userID)
	if userID == "" {
		return roster.Roster{}, fmt.Errorf("%w: user_id is required", ErrInvalidInput)
	}

	item, exists, err := s.rosterRepo.Get(ctx, userID)
	if err != nil {
		return roster.Roster{}, fmt.Errorf("get roster: %w", err)
	}
	if !exists {
		return roster.Roster{}, fmt.Errorf("%w: roster for user %s", ErrNotFound, userID)
	}
	return item, nil
}

// Initialize drafts a roster for a user that has none yet. Callers that want
// idempotence must check existence first; a second call fails.
func (s *RosterService) Initialize(ctx context.Context, input InitializeRosterInput) (roster.Roster, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RosterService.Initialize")
	defer span.End()

	input.UserID = strings.TrimSpace(input.UserID)
	if input.UserID == "" {
		return roster.Roster{}, fmt.Errorf("%w: user_id is required", ErrInvalidInput)
	}

	for tier, driverID := range map[driver.Tier]int{
		driver.TierA: input.DriverA,
		driver.TierB: input.DriverB,
		driver.TierC: input.DriverC,
	} {
		item, exists, err := s.driverRepo.GetByID(ctx, driverID)
		if err != nil {
			return roster.Roster{}, fmt.Errorf("get driver for draft: %w", err)
		}
		if !exists || item.Tier != tier {
			return roster.Roster{}, fmt.Errorf("%w: driver %d is not a tier %s driver", ErrInvalidInput, driverID, tier)
		}
	}

	now := s.now().UTC()
	item := roster.Roster{
		UserID:         input.UserID,
		DriverA:        input.DriverA,
		DriverB:        input.DriverB,
		DriverC:        input.DriverC,
		SwapsRemaining: roster.InitialSwapBudget,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	created, err := s.rosterRepo.Create(ctx, item)
	if err != nil {
		return roster.Roster{}, fmt.Errorf("create roster: %w", err)
	}
	if !created {
		return roster.Roster{}, fmt.Errorf("%w: roster for user %s", ErrAlreadyExists, input.UserID)
	}
	return item, nil
}

func (s *RosterService) History(ctx context.Context, userID string) ([]swap.Record, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RosterService.History")
	defer span.End()

	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, fmt.Errorf("%w: user_id is required", ErrInvalidInput)
	}

	records, err := s.swapRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list swap history: %w", err)
	}
	return records, nil
}
