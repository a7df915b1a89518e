package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/f1mates/league-api/internal/domain/driver"
	"github.com/f1mates/league-api/internal/domain/prediction"
	"github.com/f1mates/league-api/internal/domain/race"
	"github.com/f1mates/league-api/internal/domain/scoring"
	"github.com/f1mates/league-api/internal/domain/user"
	"github.com/f1mates/league-api/internal/platform/logging"
	"github.com/f1mates/league-api/internal/platform/resilience"
)

const defaultAggregationWorkers = 4

// ScoringService derives per-user race tallies from roster snapshots and a
// recorded classification. The pass is re-runnable: tallies and the weekly
// award are write-once, and prediction settlement is a compare-and-set.
type ScoringService struct {
	userRepo       user.Repository
	driverRepo     driver.Repository
	raceRepo       race.Repository
	predictionRepo prediction.Repository
	scoringRepo    scoring.Repository
	logger         *logging.Logger
	workers        int
	retry          resilience.RetryConfig
	now            func() time.Time
}

func NewScoringService(
	userRepo user.Repository,
	driverRepo driver.Repository,
	raceRepo race.Repository,
	predictionRepo prediction.Repository,
	scoringRepo scoring.Repository,
	logger *logging.Logger,
	workers int,
	retry resilience.RetryConfig,
) *ScoringService {
	if logger == nil {
		logger = logging.Default()
	}
	if workers < 1 {
		workers = defaultAggregationWorkers
	}
	return &ScoringService{
		userRepo:       userRepo,
		driverRepo:     driverRepo,
		raceRepo:       raceRepo,
		predictionRepo: predictionRepo,
		scoringRepo:    scoringRepo,
		logger:         logger,
		workers:        workers,
		retry:          resilience.NormalizeRetryConfig(retry),
		now:            time.Now,
	}
}

// AggregateRace applies a recorded result to every snapshotted roster.
// outcomes carries the admin verdict for pending predictions keyed by
// prediction id; predictions without a verdict stay pending.
func (s *ScoringService) AggregateRace(ctx context.Context, raceID string, outcomes map[string]bool) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScoringService.AggregateRace")
	defer span.End()

	result, exists, err := s.raceRepo.GetResult(ctx, raceID)
	if err != nil {
		return fmt.Errorf("get result: %w", err)
	}
	if !exists {
		return fmt.Errorf("%w: result for race %s", ErrNotFound, raceID)
	}

	snapshots, err := s.scoringRepo.ListSnapshotsByRace(ctx, raceID)
	if err != nil {
		return fmt.Errorf("list snapshots: %w", err)
	}

	if err := s.updateDriverRacePoints(ctx, result); err != nil {
		return err
	}

	pendingByUser, err := s.pendingPredictions(ctx, raceID)
	if err != nil {
		return err
	}

	wp, err := ants.NewPool(s.workers)
	if err != nil {
		return fmt.Errorf("create aggregation pool: %w", err)
	}
	defer wp.Release()

	var (
		workers  sync.WaitGroup
		errMu    sync.Mutex
		taskErrs []error
	)
	for _, snapshot := range snapshots {
		snapshot := snapshot
		workers.Add(1)
		if err := wp.Submit(func() {
			defer workers.Done()

			taskErr := resilience.Retry(ctx, s.retry, func(ctx context.Context) error {
				return s.aggregateUser(ctx, result, snapshot, pendingByUser[snapshot.UserID], outcomes)
			})
			if taskErr != nil {
				errMu.Lock()
				taskErrs = append(taskErrs, fmt.Errorf("aggregate user %s: %w", snapshot.UserID, taskErr))
				errMu.Unlock()
			}
		}); err != nil {
			workers.Done()
			return fmt.Errorf("submit aggregation task: %w", err)
		}
	}
	workers.Wait()

	if len(taskErrs) > 0 {
		return errors.Join(taskErrs...)
	}

	if err := s.awardWeeklyWinner(ctx, raceID); err != nil {
		return err
	}

	s.logger.InfoContext(ctx, "race aggregated",
		"race_id", raceID,
		"users", len(snapshots),
	)
	return nil
}

// updateDriverRacePoints refreshes the catalog's last-race points column.
// The same map is written on every pass, so re-runs are harmless.
func (s *ScoringService) updateDriverRacePoints(ctx context.Context, result race.Result) error {
	points := make(map[int]int, len(result.Entries))
	for _, entry := range result.Entries {
		points[entry.DriverID] = entry.BasePoints + entry.BonusPoints
	}
	if err := s.driverRepo.UpdatePoints(ctx, points); err != nil {
		return fmt.Errorf("update driver points: %w", err)
	}
	return nil
}

func (s *ScoringService) pendingPredictions(ctx context.Context, raceID string) (map[string][]prediction.Prediction, error) {
	pending, err := s.predictionRepo.ListPendingByRace(ctx, raceID)
	if err != nil {
		return nil, fmt.Errorf("list pending predictions: %w", err)
	}
	byUser := make(map[string][]prediction.Prediction, len(pending))
	for _, item := range pending {
		byUser[item.UserID] = append(byUser[item.UserID], item)
	}
	return byUser, nil
}

// aggregateUser computes and commits one user's tally. The tally row is the
// commit point: cumulative player counters are only touched when the row was
// created by this call.
func (s *ScoringService) aggregateUser(
	ctx context.Context,
	result race.Result,
	snapshot scoring.Snapshot,
	pending []prediction.Prediction,
	outcomes map[string]bool,
) error {
	now := s.now().UTC()

	bonus := 0
	for _, item := range pending {
		correct, decided := outcomes[item.ID]
		if !decided {
			continue
		}
		verdict := prediction.ResultIncorrect
		points := 0
		if correct {
			verdict = prediction.ResultCorrect
			points = prediction.CorrectPoints
		}
		if _, err := s.predictionRepo.Settle(ctx, item.ID, verdict, points, now); err != nil {
			return fmt.Errorf("settle prediction %s: %w", item.ID, err)
		}
		// The pending set was captured before the first settlement attempt,
		// so the verdict's points belong to this tally even when a retried
		// attempt finds the row already settled.
		bonus += points
	}

	delta := user.PointsDelta{
		GroupA: s.driverPoints(result, snapshot.Roster.DriverA),
		GroupB: s.driverPoints(result, snapshot.Roster.DriverB),
		GroupC: s.driverPoints(result, snapshot.Roster.DriverC),
		Bonus:  bonus,
	}

	tally := scoring.Tally{
		RaceID:       result.RaceID,
		UserID:       snapshot.UserID,
		GroupA:       delta.GroupA,
		GroupB:       delta.GroupB,
		GroupC:       delta.GroupC,
		Bonus:        delta.Bonus,
		Total:        delta.Total(),
		CalculatedAt: now,
	}
	created, err := s.scoringRepo.CreateTally(ctx, tally)
	if err != nil {
		return fmt.Errorf("create tally: %w", err)
	}
	if !created {
		return nil
	}

	bestFinish := s.groupCFinishLabel(ctx, result, snapshot)
	if err := s.userRepo.AddPoints(ctx, snapshot.UserID, delta, bestFinish); err != nil {
		return fmt.Errorf("add points: %w", err)
	}
	return nil
}

func (s *ScoringService) driverPoints(result race.Result, driverID int) int {
	entry, ok := result.EntryForDriver(driverID)
	if !ok {
		return 0
	}
	return entry.BasePoints + entry.BonusPoints
}

// groupCFinishLabel returns the new best-finish label when this race improves
// on the stored one, or empty to leave it unchanged.
func (s *ScoringService) groupCFinishLabel(ctx context.Context, result race.Result, snapshot scoring.Snapshot) string {
	entry, ok := result.EntryForDriver(snapshot.Roster.DriverC)
	if !ok {
		return ""
	}
	player, exists, err := s.userRepo.GetByID(ctx, snapshot.UserID)
	if err != nil || !exists {
		return ""
	}
	if !user.BetterFinish(player.BestGroupCFinish, entry.Position) {
		return ""
	}
	return user.FormatFinish(entry.Position)
}

// awardWeeklyWinner grants the race week to the non-admin user with the
// highest incremental total. Ties break toward the lowest user id so exactly
// one winner exists. The award row is write-once.
func (s *ScoringService) awardWeeklyWinner(ctx context.Context, raceID string) error {
	tallies, err := s.scoringRepo.ListTalliesByRace(ctx, raceID)
	if err != nil {
		return fmt.Errorf("list tallies: %w", err)
	}
	if len(tallies) == 0 {
		return nil
	}

	players, err := s.userRepo.List(ctx)
	if err != nil {
		return fmt.Errorf("list players: %w", err)
	}
	admins := make(map[string]bool, len(players))
	for _, player := range players {
		if player.IsAdmin {
			admins[player.ID] = true
		}
	}

	var winner *scoring.Tally
	for i := range tallies {
		tally := &tallies[i]
		if admins[tally.UserID] {
			continue
		}
		if winner == nil ||
			tally.Total > winner.Total ||
			(tally.Total == winner.Total && tally.UserID < winner.UserID) {
			winner = tally
		}
	}
	if winner == nil {
		return nil
	}

	award := scoring.WeeklyAward{
		RaceID:    raceID,
		UserID:    winner.UserID,
		AwardedAt: s.now().UTC(),
	}
	created, err := s.scoringRepo.CreateWeeklyAward(ctx, award)
	if err != nil {
		return fmt.Errorf("create weekly award: %w", err)
	}
	if !created {
		return nil
	}

	if err := s.userRepo.IncrementWeeklyWins(ctx, winner.UserID); err != nil {
		return fmt.Errorf("increment weekly wins: %w", err)
	}

	s.logger.InfoContext(ctx, "weekly winner awarded",
		"race_id", raceID,
		"user_id", winner.UserID,
		"total", winner.Total,
	)
	return nil
}
