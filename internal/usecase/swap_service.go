package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/f1mates/league-api/internal/domain/driver"
	"github.com/f1mates/league-api/internal/domain/roster"
	"github.com/f1mates/league-api/internal/domain/swap"
	"github.com/f1mates/league-api/internal/platform/id"
	"github.com/f1mates/league-api/internal/platform/logging"
)

// SwapService enforces the tier mutation rules: tier A never changes, tier B
// consumes the seasonal budget, tier C is free. Every applied change writes
// the roster and its history record in one ledger transaction.
type SwapService struct {
	rosterRepo roster.Repository
	driverRepo driver.Repository
	idGen      id.Generator
	logger     *logging.Logger
	now        func() time.Time
}

func NewSwapService(
	rosterRepo roster.Repository,
	driverRepo driver.Repository,
	idGen id.Generator,
	logger *logging.Logger,
) *SwapService {
	if logger == nil {
		logger = logging.Default()
	}
	return &SwapService{
		rosterRepo: rosterRepo,
		driverRepo: driverRepo,
		idGen:      idGen,
		logger:     logger,
		now:        time.Now,
	}
}

// Swap dispatches a tier change request. Tier A requests always fail with
// roster.ErrTierLocked.
func (s *SwapService) Swap(ctx context.Context, userID string, tier driver.Tier, newDriverID int) (roster.Roster, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SwapService.Swap")
	defer span.End()

	switch tier {
	case driver.TierA:
		return roster.Roster{}, fmt.Errorf("%w: tier A is fixed for the season", roster.ErrTierLocked)
	case driver.TierB:
		return s.SwapGroupB(ctx, userID, newDriverID)
	case driver.TierC:
		return s.PickGroupC(ctx, userID, newDriverID)
	default:
		return roster.Roster{}, fmt.Errorf("%w: unknown tier %q", ErrInvalidInput, tier)
	}
}

// applyAttempts bounds how often a change is re-read and re-applied after
// losing the guarded roster write to a concurrent caller.
const applyAttempts = 3

// SwapGroupB replaces the tier B driver, consuming one unit of the budget.
// The budget check and the write are tied together by the guarded roster
// update: when a concurrent swap lands first the write is rejected and the
// check re-runs against the fresh budget.
func (s *SwapService) SwapGroupB(ctx context.Context, userID string, newDriverID int) (roster.Roster, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SwapService.SwapGroupB")
	defer span.End()

	for attempt := 0; attempt < applyAttempts; attempt++ {
		current, target, err := s.loadForChange(ctx, userID, driver.TierB, newDriverID)
		if err != nil {
			return roster.Roster{}, err
		}
		if current.SwapsRemaining <= 0 {
			return roster.Roster{}, fmt.Errorf("%w: budget exhausted", roster.ErrNoSwapsRemaining)
		}

		updated := current
		updated.DriverB = target.ID
		updated.SwapsRemaining = current.SwapsRemaining - 1
		result, applied, err := s.apply(ctx, current, updated, driver.TierB, current.DriverB, target.ID)
		if err != nil {
			return roster.Roster{}, err
		}
		if applied {
			return result, nil
		}
	}

	return roster.Roster{}, fmt.Errorf("%w: roster changed concurrently, retry the swap", ErrDependencyUnavailable)
}

// PickGroupC replaces the tier C driver without touching the budget.
func (s *SwapService) PickGroupC(ctx context.Context, userID string, newDriverID int) (roster.Roster, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SwapService.PickGroupC")
	defer span.End()

	for attempt := 0; attempt < applyAttempts; attempt++ {
		current, target, err := s.loadForChange(ctx, userID, driver.TierC, newDriverID)
		if err != nil {
			return roster.Roster{}, err
		}

		updated := current
		updated.DriverC = target.ID
		result, applied, err := s.apply(ctx, current, updated, driver.TierC, current.DriverC, target.ID)
		if err != nil {
			return roster.Roster{}, err
		}
		if applied {
			return result, nil
		}
	}

	return roster.Roster{}, fmt.Errorf("%w: roster changed concurrently, retry the pick", ErrDependencyUnavailable)
}

func (s *SwapService) loadForChange(ctx context.Context, userID string, tier driver.Tier, newDriverID int) (roster.Roster, driver.Driver, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return roster.Roster{}, driver.Driver{}, fmt.Errorf("%w: user_id is required", ErrInvalidInput)
	}
	if newDriverID <= 0 {
		return roster.Roster{}, driver.Driver{}, fmt.Errorf("%w: driver id must be greater than zero", ErrInvalidInput)
	}

	current, exists, err := s.rosterRepo.Get(ctx, userID)
	if err != nil {
		return roster.Roster{}, driver.Driver{}, fmt.Errorf("get roster: %w", err)
	}
	if !exists {
		return roster.Roster{}, driver.Driver{}, fmt.Errorf("%w: roster for user %s", ErrNotFound, userID)
	}

	target, exists, err := s.driverRepo.GetByID(ctx, newDriverID)
	if err != nil {
		return roster.Roster{}, driver.Driver{}, fmt.Errorf("get driver: %w", err)
	}
	if !exists || target.Tier != tier {
		return roster.Roster{}, driver.Driver{}, fmt.Errorf("%w: driver %d is not a tier %s driver", roster.ErrInvalidSelection, newDriverID, tier)
	}
	if current.DriverFor(tier) == newDriverID {
		return roster.Roster{}, driver.Driver{}, fmt.Errorf("%w: driver %d is already in the roster", roster.ErrInvalidSelection, newDriverID)
	}

	return current, target, nil
}

func (s *SwapService) apply(ctx context.Context, current, updated roster.Roster, tier driver.Tier, oldDriverID, newDriverID int) (roster.Roster, bool, error) {
	recordID, err := s.idGen.NewID()
	if err != nil {
		return roster.Roster{}, false, fmt.Errorf("generate swap record id: %w", err)
	}

	now := s.now().UTC()
	updated.UpdatedAt = now
	record := swap.Record{
		ID:          recordID,
		UserID:      current.UserID,
		Tier:        tier,
		OldDriverID: oldDriverID,
		NewDriverID: newDriverID,
		CreatedAt:   now,
	}

	applied, err := s.rosterRepo.ApplySwap(ctx, current, updated, record)
	if err != nil {
		return roster.Roster{}, false, fmt.Errorf("apply swap: %w", err)
	}
	if !applied {
		s.logger.WarnContext(ctx, "roster change lost to a concurrent write",
			"user_id", current.UserID,
			"tier", string(tier),
		)
		return roster.Roster{}, false, nil
	}

	s.logger.InfoContext(ctx, "roster changed",
		"user_id", current.UserID,
		"tier", string(tier),
		"old_driver_id", oldDriverID,
		"new_driver_id", newDriverID,
		"swaps_remaining", updated.SwapsRemaining,
	)
	return updated, true, nil
}
