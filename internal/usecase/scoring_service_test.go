package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/f1mates/league-api/internal/domain/race"
	"github.com/f1mates/league-api/internal/domain/scoring"
	"github.com/f1mates/league-api/internal/infrastructure/repository/memory"
	idgen "github.com/f1mates/league-api/internal/platform/id"
	"github.com/f1mates/league-api/internal/platform/resilience"
)

type scoringFixture struct {
	drivers     *memory.DriverRepository
	users       *memory.UserRepository
	rosters     *memory.RosterRepository
	races       *memory.RaceRepository
	scoring     *memory.ScoringRepository
	predictions *memory.PredictionRepository

	userSvc       *UserService
	predictionSvc *PredictionService
	ingestionSvc  *IngestionService
}

func newScoringFixture(t *testing.T) *scoringFixture {
	t.Helper()

	f := &scoringFixture{
		drivers:     memory.NewDriverRepository(memory.SeedDrivers()),
		users:       memory.NewUserRepository(),
		rosters:     memory.NewRosterRepository(),
		races:       memory.NewRaceRepository(memory.SeedRaces()),
		scoring:     memory.NewScoringRepository(),
		predictions: memory.NewPredictionRepository(),
	}

	f.userSvc = NewUserService(f.users, f.rosters, f.drivers, nil)
	f.predictionSvc = NewPredictionService(f.predictions, f.races, f.users, idgen.NewRandomGenerator(), nil)

	scorer := NewScoringService(
		f.users, f.drivers, f.races, f.predictions, f.scoring,
		nil, 2, resilience.DefaultRetryConfig(),
	)
	f.ingestionSvc = NewIngestionService(f.races, f.rosters, f.scoring, scorer, nil)

	return f
}

func (f *scoringFixture) register(t *testing.T, input RegisterUserInput) {
	t.Helper()
	if _, err := f.userSvc.Register(t.Context(), input); err != nil {
		t.Fatalf("register %s: %v", input.UserID, err)
	}
}

// rewire rebuilds the scorer and ingestion services over a wrapped scoring
// repository so tests can inject tally write failures.
func (f *scoringFixture) rewire(repo scoring.Repository, retry resilience.RetryConfig) {
	scorer := NewScoringService(
		f.users, f.drivers, f.races, f.predictions, repo,
		nil, 2, retry,
	)
	f.ingestionSvc = NewIngestionService(f.races, f.rosters, repo, scorer, nil)
}

// flakyTallyRepo fails CreateTally for one user until the failure budget is
// spent, then delegates to the wrapped repository.
type flakyTallyRepo struct {
	scoring.Repository
	mu       sync.Mutex
	userID   string
	failures int
	failWith error
}

func (r *flakyTallyRepo) CreateTally(ctx context.Context, tally scoring.Tally) (bool, error) {
	r.mu.Lock()
	shouldFail := tally.UserID == r.userID && r.failures > 0
	if shouldFail {
		r.failures--
	}
	r.mu.Unlock()

	if shouldFail {
		return false, r.failWith
	}
	return r.Repository.CreateTally(ctx, tally)
}

func TestRecordResult_AggregatesRosterPoints(t *testing.T) {
	f := newScoringFixture(t)

	// user-1 keeps the default roster (1, 7, 13); user-2 drafts 8 and 14.
	f.register(t, RegisterUserInput{UserID: "user-1", Name: "Alex", Email: "alex@example.com"})
	f.register(t, RegisterUserInput{UserID: "user-2", Name: "Sam", Email: "sam@example.com", DriverB: 8, DriverC: 14})

	_, err := f.ingestionSvc.RecordResult(t.Context(), RecordResultInput{
		RaceID: "bahrain-2025",
		Entries: []ResultEntryInput{
			{DriverID: 1, Position: 1},
			{DriverID: 7, Position: 2},
			{DriverID: 13, Position: 3},
			{DriverID: 14, Position: 5},
			{DriverID: 8, Position: 11},
		},
	})
	if err != nil {
		t.Fatalf("record result failed: %v", err)
	}

	alex, _, err := f.users.GetByID(t.Context(), "user-1")
	if err != nil {
		t.Fatalf("get user-1: %v", err)
	}
	// P1=25, P2=18, P3=15.
	if alex.GroupAPoints != 25 || alex.GroupBPoints != 18 || alex.GroupCPoints != 15 {
		t.Fatalf("unexpected user-1 group points: %+v", alex)
	}
	if alex.TotalPoints != 58 {
		t.Fatalf("unexpected user-1 total: %d", alex.TotalPoints)
	}
	if err := alex.CheckTotals(); err != nil {
		t.Fatalf("user-1 totals invariant: %v", err)
	}
	if alex.BestGroupCFinish != "P3" {
		t.Fatalf("unexpected user-1 best finish: %s", alex.BestGroupCFinish)
	}

	sam, _, err := f.users.GetByID(t.Context(), "user-2")
	if err != nil {
		t.Fatalf("get user-2: %v", err)
	}
	// P11 pays nothing.
	if sam.GroupBPoints != 0 {
		t.Fatalf("expected zero group B points for P11, got %d", sam.GroupBPoints)
	}
	if sam.TotalPoints != 35 {
		t.Fatalf("unexpected user-2 total: %d", sam.TotalPoints)
	}
	if err := sam.CheckTotals(); err != nil {
		t.Fatalf("user-2 totals invariant: %v", err)
	}

	// user-1 scored higher, so the week is theirs.
	if alex.WeeklyWins != 1 || sam.WeeklyWins != 0 {
		t.Fatalf("unexpected weekly wins: user-1=%d user-2=%d", alex.WeeklyWins, sam.WeeklyWins)
	}

	tallies, err := f.scoring.ListTalliesByRace(t.Context(), "bahrain-2025")
	if err != nil {
		t.Fatalf("list tallies: %v", err)
	}
	if len(tallies) != 2 {
		t.Fatalf("expected 2 tallies, got %d", len(tallies))
	}
}

func TestRecordResult_ConflictingResubmitIsRejected(t *testing.T) {
	f := newScoringFixture(t)
	f.register(t, RegisterUserInput{UserID: "user-1", Name: "Alex", Email: "alex@example.com"})

	first := RecordResultInput{
		RaceID:  "bahrain-2025",
		Entries: []ResultEntryInput{{DriverID: 1, Position: 1}},
	}
	if _, err := f.ingestionSvc.RecordResult(t.Context(), first); err != nil {
		t.Fatalf("first record failed: %v", err)
	}

	// A different classification for the same race must not replace or
	// re-score the stored one.
	conflicting := RecordResultInput{
		RaceID:  "bahrain-2025",
		Entries: []ResultEntryInput{{DriverID: 1, Position: 2}, {DriverID: 7, Position: 1}},
	}
	_, err := f.ingestionSvc.RecordResult(t.Context(), conflicting)
	if !errors.Is(err, race.ErrDuplicateResult) {
		t.Fatalf("expected ErrDuplicateResult, got %v", err)
	}

	alex, _, _ := f.users.GetByID(t.Context(), "user-1")
	if alex.TotalPoints != 25 {
		t.Fatalf("conflicting result changed totals: %d", alex.TotalPoints)
	}
	if alex.WeeklyWins != 1 {
		t.Fatalf("conflicting result changed weekly wins: %d", alex.WeeklyWins)
	}
}

func TestRecordResult_IdenticalResubmitDoesNotDoubleCount(t *testing.T) {
	f := newScoringFixture(t)
	f.register(t, RegisterUserInput{UserID: "user-1", Name: "Alex", Email: "alex@example.com"})

	input := RecordResultInput{
		RaceID:  "bahrain-2025",
		Entries: []ResultEntryInput{{DriverID: 1, Position: 1}},
	}
	if _, err := f.ingestionSvc.RecordResult(t.Context(), input); err != nil {
		t.Fatalf("first record failed: %v", err)
	}
	if _, err := f.ingestionSvc.RecordResult(t.Context(), input); err != nil {
		t.Fatalf("identical resubmit failed: %v", err)
	}

	alex, _, _ := f.users.GetByID(t.Context(), "user-1")
	if alex.TotalPoints != 25 {
		t.Fatalf("resubmit changed totals: %d", alex.TotalPoints)
	}
	if alex.WeeklyWins != 1 {
		t.Fatalf("resubmit changed weekly wins: %d", alex.WeeklyWins)
	}

	tallies, err := f.scoring.ListTalliesByRace(t.Context(), "bahrain-2025")
	if err != nil {
		t.Fatalf("list tallies: %v", err)
	}
	if len(tallies) != 1 {
		t.Fatalf("expected 1 tally after resubmit, got %d", len(tallies))
	}
}

func TestRecordResult_ResubmitCompletesPartialAggregation(t *testing.T) {
	f := newScoringFixture(t)
	f.register(t, RegisterUserInput{UserID: "user-1", Name: "Alex", Email: "alex@example.com"})
	f.register(t, RegisterUserInput{UserID: "user-2", Name: "Sam", Email: "sam@example.com"})

	// user-2's tally write is refused outright on the first pass.
	flaky := &flakyTallyRepo{
		Repository: f.scoring,
		userID:     "user-2",
		failures:   1,
		failWith:   errors.New("tally write refused"),
	}
	f.rewire(flaky, resilience.DefaultRetryConfig())

	input := RecordResultInput{
		RaceID:  "bahrain-2025",
		Entries: []ResultEntryInput{{DriverID: 1, Position: 1}},
	}
	if _, err := f.ingestionSvc.RecordResult(t.Context(), input); err == nil {
		t.Fatal("expected first record to report the failed tally")
	}

	tallies, err := f.scoring.ListTalliesByRace(t.Context(), "bahrain-2025")
	if err != nil {
		t.Fatalf("list tallies: %v", err)
	}
	if len(tallies) != 1 {
		t.Fatalf("expected only user-1 tallied after partial failure, got %d", len(tallies))
	}

	// Resubmitting the identical classification must finish the pass.
	if _, err := f.ingestionSvc.RecordResult(t.Context(), input); err != nil {
		t.Fatalf("resubmit after partial failure: %v", err)
	}

	alex, _, _ := f.users.GetByID(t.Context(), "user-1")
	sam, _, _ := f.users.GetByID(t.Context(), "user-2")
	if alex.TotalPoints != 25 {
		t.Fatalf("resubmit double-counted user-1: %d", alex.TotalPoints)
	}
	if sam.TotalPoints != 25 {
		t.Fatalf("resubmit did not score user-2: %d", sam.TotalPoints)
	}

	tallies, err = f.scoring.ListTalliesByRace(t.Context(), "bahrain-2025")
	if err != nil {
		t.Fatalf("list tallies: %v", err)
	}
	if len(tallies) != 2 {
		t.Fatalf("expected 2 tallies after resubmit, got %d", len(tallies))
	}
	if alex.WeeklyWins+sam.WeeklyWins != 1 {
		t.Fatalf("expected exactly one weekly win, got user-1=%d user-2=%d", alex.WeeklyWins, sam.WeeklyWins)
	}
}

func TestRecordResult_TransientTallyFailureKeepsPredictionBonus(t *testing.T) {
	f := newScoringFixture(t)
	f.register(t, RegisterUserInput{UserID: "user-1", Name: "Alex", Email: "alex@example.com"})

	item, err := f.predictionSvc.Submit(t.Context(), SubmitPredictionInput{
		UserID: "user-1",
		RaceID: "bahrain-2025",
		Text:   "Verstappen wins",
	})
	if err != nil {
		t.Fatalf("submit prediction: %v", err)
	}

	// The first tally write fails after settlement already landed; the
	// retried attempt must still carry the bonus into the tally.
	flaky := &flakyTallyRepo{
		Repository: f.scoring,
		userID:     "user-1",
		failures:   1,
		failWith:   fmt.Errorf("%w: tally insert refused", resilience.ErrTransient),
	}
	f.rewire(flaky, resilience.RetryConfig{
		Attempts:    3,
		BaseBackoff: time.Millisecond,
		MaxBackoff:  5 * time.Millisecond,
	})

	_, err = f.ingestionSvc.RecordResult(t.Context(), RecordResultInput{
		RaceID:             "bahrain-2025",
		Entries:            []ResultEntryInput{{DriverID: 1, Position: 1}},
		PredictionOutcomes: []PredictionOutcomeInput{{PredictionID: item.ID, Correct: true}},
	})
	if err != nil {
		t.Fatalf("record result: %v", err)
	}

	alex, _, _ := f.users.GetByID(t.Context(), "user-1")
	if alex.BonusPoints != 10 {
		t.Fatalf("retried tally lost the prediction bonus: %d", alex.BonusPoints)
	}
	if alex.TotalPoints != 35 {
		t.Fatalf("unexpected total with bonus: %d", alex.TotalPoints)
	}

	tallies, err := f.scoring.ListTalliesByRace(t.Context(), "bahrain-2025")
	if err != nil {
		t.Fatalf("list tallies: %v", err)
	}
	if len(tallies) != 1 || tallies[0].Bonus != 10 {
		t.Fatalf("unexpected tallies after retry: %+v", tallies)
	}
}

func TestRecordResult_SwapAfterLockDoesNotCount(t *testing.T) {
	f := newScoringFixture(t)
	f.register(t, RegisterUserInput{UserID: "user-1", Name: "Alex", Email: "alex@example.com"})

	if err := f.ingestionSvc.LockRace(t.Context(), "bahrain-2025"); err != nil {
		t.Fatalf("lock race: %v", err)
	}

	// Change the tier C driver after the cutoff.
	swapSvc := NewSwapService(f.rosters, f.drivers, idgen.NewRandomGenerator(), nil)
	if _, err := swapSvc.PickGroupC(t.Context(), "user-1", 14); err != nil {
		t.Fatalf("pick group C: %v", err)
	}

	_, err := f.ingestionSvc.RecordResult(t.Context(), RecordResultInput{
		RaceID: "bahrain-2025",
		Entries: []ResultEntryInput{
			{DriverID: 13, Position: 1},
			{DriverID: 14, Position: 2},
		},
	})
	if err != nil {
		t.Fatalf("record result: %v", err)
	}

	// The snapshot still holds driver 13, so the P1 score (25) applies, not
	// the post-cutoff pick's P2 score.
	alex, _, _ := f.users.GetByID(t.Context(), "user-1")
	if alex.GroupCPoints != 25 {
		t.Fatalf("expected snapshot roster to score, got group C points %d", alex.GroupCPoints)
	}
}

func TestRecordResult_WeeklyWinnerTieBreaksOnUserID(t *testing.T) {
	f := newScoringFixture(t)

	// Identical rosters guarantee identical totals.
	f.register(t, RegisterUserInput{UserID: "user-b", Name: "Sam", Email: "sam@example.com"})
	f.register(t, RegisterUserInput{UserID: "user-a", Name: "Alex", Email: "alex@example.com"})

	_, err := f.ingestionSvc.RecordResult(t.Context(), RecordResultInput{
		RaceID:  "bahrain-2025",
		Entries: []ResultEntryInput{{DriverID: 1, Position: 1}},
	})
	if err != nil {
		t.Fatalf("record result: %v", err)
	}

	award, exists, err := f.scoring.GetWeeklyAward(t.Context(), "bahrain-2025")
	if err != nil || !exists {
		t.Fatalf("weekly award missing: exists=%t err=%v", exists, err)
	}
	if award.UserID != "user-a" {
		t.Fatalf("tie should break to lowest user id, got %s", award.UserID)
	}
}

func TestRecordResult_AdminsExcludedFromWeeklyAward(t *testing.T) {
	f := newScoringFixture(t)

	f.register(t, RegisterUserInput{UserID: "admin-1", Name: "Boss", Email: "boss@example.com", IsAdmin: true, DriverB: 8})
	f.register(t, RegisterUserInput{UserID: "user-1", Name: "Alex", Email: "alex@example.com"})

	_, err := f.ingestionSvc.RecordResult(t.Context(), RecordResultInput{
		RaceID: "bahrain-2025",
		Entries: []ResultEntryInput{
			{DriverID: 1, Position: 1},
			{DriverID: 8, Position: 2},
			{DriverID: 7, Position: 11},
		},
	})
	if err != nil {
		t.Fatalf("record result: %v", err)
	}

	// The admin out-scored user-1 but must not take the week.
	award, exists, err := f.scoring.GetWeeklyAward(t.Context(), "bahrain-2025")
	if err != nil || !exists {
		t.Fatalf("weekly award missing: exists=%t err=%v", exists, err)
	}
	if award.UserID != "user-1" {
		t.Fatalf("expected user-1 to win the week, got %s", award.UserID)
	}
}

func TestRecordResult_SettlesPredictionsWithBonus(t *testing.T) {
	f := newScoringFixture(t)
	f.register(t, RegisterUserInput{UserID: "user-1", Name: "Alex", Email: "alex@example.com"})

	correct, err := f.predictionSvc.Submit(t.Context(), SubmitPredictionInput{
		UserID: "user-1",
		RaceID: "bahrain-2025",
		Text:   "Verstappen wins",
	})
	if err != nil {
		t.Fatalf("submit prediction: %v", err)
	}
	wrong, err := f.predictionSvc.Submit(t.Context(), SubmitPredictionInput{
		UserID: "user-1",
		RaceID: "bahrain-2025",
		Text:   "Rain on lap 10",
	})
	if err != nil {
		t.Fatalf("submit prediction: %v", err)
	}

	_, err = f.ingestionSvc.RecordResult(t.Context(), RecordResultInput{
		RaceID:  "bahrain-2025",
		Entries: []ResultEntryInput{{DriverID: 1, Position: 1}},
		PredictionOutcomes: []PredictionOutcomeInput{
			{PredictionID: correct.ID, Correct: true},
			{PredictionID: wrong.ID, Correct: false},
		},
	})
	if err != nil {
		t.Fatalf("record result: %v", err)
	}

	alex, _, _ := f.users.GetByID(t.Context(), "user-1")
	if alex.BonusPoints != 10 {
		t.Fatalf("expected 10 bonus points, got %d", alex.BonusPoints)
	}
	if alex.TotalPoints != 35 {
		t.Fatalf("unexpected total with bonus: %d", alex.TotalPoints)
	}

	items, err := f.predictionSvc.ListMine(t.Context(), "user-1")
	if err != nil {
		t.Fatalf("list predictions: %v", err)
	}
	for _, item := range items {
		switch item.ID {
		case correct.ID:
			if item.Points != 10 {
				t.Fatalf("correct prediction points: %d", item.Points)
			}
		case wrong.ID:
			if item.Points != 0 {
				t.Fatalf("incorrect prediction points: %d", item.Points)
			}
		}
		if item.SettledAt == nil {
			t.Fatalf("prediction %s left unsettled", item.ID)
		}
	}
}

func TestRecordResult_UpdatesDriverCatalogPoints(t *testing.T) {
	f := newScoringFixture(t)
	f.register(t, RegisterUserInput{UserID: "user-1", Name: "Alex", Email: "alex@example.com"})

	_, err := f.ingestionSvc.RecordResult(t.Context(), RecordResultInput{
		RaceID: "bahrain-2025",
		Entries: []ResultEntryInput{
			{DriverID: 1, Position: 1, BonusPoints: 1, BonusReason: "fastest lap"},
			{DriverID: 7, Position: 4},
		},
	})
	if err != nil {
		t.Fatalf("record result: %v", err)
	}

	verstappen, _, _ := f.drivers.GetByID(t.Context(), 1)
	if verstappen.Points != 26 {
		t.Fatalf("expected 26 catalog points (25 base + 1 bonus), got %d", verstappen.Points)
	}
	albon, _, _ := f.drivers.GetByID(t.Context(), 7)
	if albon.Points != 12 {
		t.Fatalf("expected 12 catalog points for P4, got %d", albon.Points)
	}
}
