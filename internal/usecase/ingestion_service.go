package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sourcegraph/conc/pool"

	"github.com/f1mates/league-api/internal/domain/race"
	"github.com/f1mates/league-api/internal/domain/roster"
	"github.com/f1mates/league-api/internal/domain/scoring"
	"github.com/f1mates/league-api/internal/platform/logging"
)

const snapshotCaptureConcurrency = 8

type ResultEntryInput struct {
	DriverID    int
	Position    int
	BonusPoints int
	BonusReason string
}

// PredictionOutcomeInput is the admin's verdict on one pending prediction,
// applied while the race is aggregated.
type PredictionOutcomeInput struct {
	PredictionID string
	Correct      bool
}

type RecordResultInput struct {
	RaceID             string
	Entries            []ResultEntryInput
	PredictionOutcomes []PredictionOutcomeInput
}

// IngestionService accepts finalized race classifications. Recording a
// result locks the race's roster snapshots (if the cutoff lock was not taken
// explicitly at qualifying) and triggers the one-time aggregation pass.
type IngestionService struct {
	raceRepo    race.Repository
	rosterRepo  roster.Repository
	scoringRepo scoring.Repository
	scorer      *ScoringService
	logger      *logging.Logger
	now         func() time.Time
}

func NewIngestionService(
	raceRepo race.Repository,
	rosterRepo roster.Repository,
	scoringRepo scoring.Repository,
	scorer *ScoringService,
	logger *logging.Logger,
) *IngestionService {
	if logger == nil {
		logger = logging.Default()
	}
	return &IngestionService{
		raceRepo:    raceRepo,
		rosterRepo:  rosterRepo,
		scoringRepo: scoringRepo,
		scorer:      scorer,
		logger:      logger,
		now:         time.Now,
	}
}

// LockRace marks the roster cutoff for a race and captures every user's
// roster into a snapshot. Calling it again is a no-op.
func (s *IngestionService) LockRace(ctx context.Context, raceID string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.IngestionService.LockRace")
	defer span.End()

	raceID = strings.TrimSpace(raceID)
	if raceID == "" {
		return fmt.Errorf("%w: race_id is required", ErrInvalidInput)
	}

	if _, exists, err := s.raceRepo.GetRace(ctx, raceID); err != nil {
		return fmt.Errorf("get race for lock: %w", err)
	} else if !exists {
		return fmt.Errorf("%w: race %s", ErrNotFound, raceID)
	}

	now := s.now().UTC()
	created, err := s.scoringRepo.CreateLock(ctx, scoring.Lock{RaceID: raceID, LockedAt: now})
	if err != nil {
		return fmt.Errorf("create race lock: %w", err)
	}
	if !created {
		return nil
	}

	rosters, err := s.rosterRepo.List(ctx)
	if err != nil {
		return fmt.Errorf("list rosters for snapshot: %w", err)
	}

	capture := pool.New().WithContext(ctx).WithMaxGoroutines(snapshotCaptureConcurrency)
	for _, item := range rosters {
		capture.Go(func(ctx context.Context) error {
			snapshot := scoring.Snapshot{
				RaceID:     raceID,
				UserID:     item.UserID,
				Roster:     item,
				CapturedAt: now,
			}
			if err := s.scoringRepo.UpsertSnapshot(ctx, snapshot); err != nil {
				return fmt.Errorf("upsert snapshot user=%s: %w", item.UserID, err)
			}
			return nil
		})
	}
	if err := capture.Wait(); err != nil {
		return fmt.Errorf("capture roster snapshots race=%s: %w", raceID, err)
	}

	s.logger.InfoContext(ctx, "race locked",
		"race_id", raceID,
		"snapshots", len(rosters),
	)
	return nil
}

// RecordResult stores a race's classification exactly once and runs the
// aggregation pass. Base points come from the canonical position table, not
// from the caller. Resubmitting the identical classification re-drives the
// aggregation pass; a conflicting one is rejected.
func (s *IngestionService) RecordResult(ctx context.Context, input RecordResultInput) (race.Result, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.IngestionService.RecordResult")
	defer span.End()

	raceID := strings.TrimSpace(input.RaceID)
	if raceID == "" {
		return race.Result{}, fmt.Errorf("%w: race_id is required", ErrInvalidInput)
	}
	if _, exists, err := s.raceRepo.GetRace(ctx, raceID); err != nil {
		return race.Result{}, fmt.Errorf("get race for result: %w", err)
	} else if !exists {
		return race.Result{}, fmt.Errorf("%w: race %s", ErrNotFound, raceID)
	}

	entries := make([]race.DriverResult, 0, len(input.Entries))
	for _, entry := range input.Entries {
		entries = append(entries, race.DriverResult{
			DriverID:    entry.DriverID,
			Position:    entry.Position,
			BasePoints:  race.BasePointsForPosition(entry.Position),
			BonusPoints: entry.BonusPoints,
			BonusReason: strings.TrimSpace(entry.BonusReason),
		})
	}

	result := race.Result{
		RaceID:     raceID,
		Entries:    entries,
		RecordedAt: s.now().UTC(),
	}
	if err := result.ValidateBasic(); err != nil {
		return race.Result{}, fmt.Errorf("%w: %s", ErrInvalidInput, err)
	}

	// Late lock: results arriving before an explicit qualifying-time lock
	// still snapshot rosters before any points are derived.
	if err := s.LockRace(ctx, raceID); err != nil {
		return race.Result{}, err
	}

	created, err := s.raceRepo.CreateResult(ctx, result)
	if err != nil {
		return race.Result{}, fmt.Errorf("create race result: %w", err)
	}
	if !created {
		stored, exists, err := s.raceRepo.GetResult(ctx, raceID)
		if err != nil {
			return race.Result{}, fmt.Errorf("get stored result: %w", err)
		}
		if !exists || !sameClassification(stored, result) {
			return race.Result{}, fmt.Errorf("%w: race %s", race.ErrDuplicateResult, raceID)
		}
		// The same classification was resubmitted, likely after a partial
		// aggregation failure. Fall through and re-drive the pass: tallies
		// and the weekly award are write-once, so already aggregated users
		// are untouched and only the missing ones land.
		result = stored
	}

	outcomes := make(map[string]bool, len(input.PredictionOutcomes))
	for _, outcome := range input.PredictionOutcomes {
		predictionID := strings.TrimSpace(outcome.PredictionID)
		if predictionID == "" {
			continue
		}
		outcomes[predictionID] = outcome.Correct
	}

	if err := s.scorer.AggregateRace(ctx, raceID, outcomes); err != nil {
		return race.Result{}, fmt.Errorf("aggregate race %s: %w", raceID, err)
	}

	s.logger.InfoContext(ctx, "race result recorded",
		"race_id", raceID,
		"entries", len(entries),
	)
	return result, nil
}

// sameClassification reports whether two results classify the same drivers
// into the same positions with the same bonuses, ignoring recording time.
func sameClassification(a, b race.Result) bool {
	if a.RaceID != b.RaceID || len(a.Entries) != len(b.Entries) {
		return false
	}
	for _, entry := range a.Entries {
		other, ok := b.EntryForDriver(entry.DriverID)
		if !ok || other != entry {
			return false
		}
	}
	return true
}
