package usecase

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/f1mates/league-api/internal/domain/driver"
	"github.com/f1mates/league-api/internal/domain/roster"
	"github.com/f1mates/league-api/internal/infrastructure/repository/memory"
	idgen "github.com/f1mates/league-api/internal/platform/id"
)

func newSwapFixture(t *testing.T) (*SwapService, *memory.RosterRepository) {
	t.Helper()

	driverRepo := memory.NewDriverRepository(memory.SeedDrivers())
	rosterRepo := memory.NewRosterRepository()
	userRepo := memory.NewUserRepository()

	userSvc := NewUserService(userRepo, rosterRepo, driverRepo, nil)
	if _, err := userSvc.Register(t.Context(), RegisterUserInput{
		UserID: "user-1",
		Name:   "Alex",
		Email:  "alex@example.com",
	}); err != nil {
		t.Fatalf("register user: %v", err)
	}

	return NewSwapService(rosterRepo, driverRepo, idgen.NewRandomGenerator(), nil), rosterRepo
}

func TestSwapService_TierAIsLocked(t *testing.T) {
	svc, _ := newSwapFixture(t)

	_, err := svc.Swap(t.Context(), "user-1", driver.TierA, 2)
	if !errors.Is(err, roster.ErrTierLocked) {
		t.Fatalf("expected ErrTierLocked, got %v", err)
	}
}

func TestSwapService_GroupBConsumesBudget(t *testing.T) {
	svc, repo := newSwapFixture(t)

	updated, err := svc.SwapGroupB(t.Context(), "user-1", 8)
	if err != nil {
		t.Fatalf("swap group B failed: %v", err)
	}
	if updated.DriverB != 8 {
		t.Fatalf("unexpected driver B: %d", updated.DriverB)
	}
	if updated.SwapsRemaining != roster.InitialSwapBudget-1 {
		t.Fatalf("unexpected budget: got=%d want=%d", updated.SwapsRemaining, roster.InitialSwapBudget-1)
	}

	records, err := repo.ListByUser(t.Context(), "user-1")
	if err != nil {
		t.Fatalf("list swap history: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 history record, got %d", len(records))
	}
	if records[0].OldDriverID != 7 || records[0].NewDriverID != 8 {
		t.Fatalf("unexpected history record: %+v", records[0])
	}
}

func TestSwapService_GroupBBudgetExhausted(t *testing.T) {
	svc, repo := newSwapFixture(t)

	// Drain the budget bouncing between two tier B drivers.
	next := []int{8, 9, 10, 11, 12, 8}
	for _, driverID := range next {
		if _, err := svc.SwapGroupB(t.Context(), "user-1", driverID); err != nil {
			t.Fatalf("swap to %d failed: %v", driverID, err)
		}
	}

	before, _, err := repo.Get(t.Context(), "user-1")
	if err != nil {
		t.Fatalf("get roster: %v", err)
	}
	if before.SwapsRemaining != 0 {
		t.Fatalf("expected exhausted budget, got %d", before.SwapsRemaining)
	}

	_, err = svc.SwapGroupB(t.Context(), "user-1", 9)
	if !errors.Is(err, roster.ErrNoSwapsRemaining) {
		t.Fatalf("expected ErrNoSwapsRemaining, got %v", err)
	}

	after, _, err := repo.Get(t.Context(), "user-1")
	if err != nil {
		t.Fatalf("get roster after rejection: %v", err)
	}
	if after != before {
		t.Fatalf("rejected swap mutated the roster: before=%+v after=%+v", before, after)
	}
}

// gatedRosterRepo holds the first two Get calls at a rendezvous so both
// callers observe the same roster state before either one writes. Later
// reads (the loser re-reading after a rejected write) pass straight through.
type gatedRosterRepo struct {
	*memory.RosterRepository
	firstReads sync.WaitGroup
	gated      atomic.Int32
}

func newGatedRosterRepo(inner *memory.RosterRepository) *gatedRosterRepo {
	g := &gatedRosterRepo{RosterRepository: inner}
	g.gated.Store(2)
	g.firstReads.Add(2)
	return g
}

func (g *gatedRosterRepo) Get(ctx context.Context, userID string) (roster.Roster, bool, error) {
	item, ok, err := g.RosterRepository.Get(ctx, userID)
	if g.gated.Add(-1) >= 0 {
		g.firstReads.Done()
		g.firstReads.Wait()
	}
	return item, ok, err
}

func TestSwapService_GroupBConcurrentSwapsCannotOverspend(t *testing.T) {
	svc, repo := newSwapFixture(t)

	// Leave exactly one swap in the budget.
	for _, driverID := range []int{8, 9, 10, 11, 12} {
		if _, err := svc.SwapGroupB(t.Context(), "user-1", driverID); err != nil {
			t.Fatalf("swap to %d failed: %v", driverID, err)
		}
	}

	gated := newGatedRosterRepo(repo)
	racing := NewSwapService(gated, memory.NewDriverRepository(memory.SeedDrivers()), idgen.NewRandomGenerator(), nil)

	errs := make(chan error, 2)
	for _, driverID := range []int{9, 10} {
		go func() {
			_, err := racing.SwapGroupB(t.Context(), "user-1", driverID)
			errs <- err
		}()
	}

	var succeeded, rejected int
	for i := 0; i < 2; i++ {
		switch err := <-errs; {
		case err == nil:
			succeeded++
		case errors.Is(err, roster.ErrNoSwapsRemaining):
			rejected++
		default:
			t.Fatalf("unexpected swap error: %v", err)
		}
	}
	if succeeded != 1 || rejected != 1 {
		t.Fatalf("expected one winner and one rejection, got succeeded=%d rejected=%d", succeeded, rejected)
	}

	final, _, err := repo.Get(t.Context(), "user-1")
	if err != nil {
		t.Fatalf("get roster: %v", err)
	}
	if final.SwapsRemaining != 0 {
		t.Fatalf("unexpected final budget: %d", final.SwapsRemaining)
	}

	records, err := repo.ListByUser(t.Context(), "user-1")
	if err != nil {
		t.Fatalf("list swap history: %v", err)
	}
	if len(records) != 6 {
		t.Fatalf("expected 6 history records for 6 spent swaps, got %d", len(records))
	}
}

func TestSwapService_GroupCPickIsFree(t *testing.T) {
	svc, _ := newSwapFixture(t)

	updated, err := svc.PickGroupC(t.Context(), "user-1", 14)
	if err != nil {
		t.Fatalf("pick group C failed: %v", err)
	}
	if updated.DriverC != 14 {
		t.Fatalf("unexpected driver C: %d", updated.DriverC)
	}
	if updated.SwapsRemaining != roster.InitialSwapBudget {
		t.Fatalf("group C pick consumed budget: %d", updated.SwapsRemaining)
	}
}

func TestSwapService_RejectsWrongTierAndNoopSwaps(t *testing.T) {
	svc, _ := newSwapFixture(t)

	// Driver 13 is tier C, not tier B.
	if _, err := svc.SwapGroupB(t.Context(), "user-1", 13); !errors.Is(err, roster.ErrInvalidSelection) {
		t.Fatalf("expected ErrInvalidSelection for cross-tier swap, got %v", err)
	}

	// Driver 7 is already the tier B pick.
	if _, err := svc.SwapGroupB(t.Context(), "user-1", 7); !errors.Is(err, roster.ErrInvalidSelection) {
		t.Fatalf("expected ErrInvalidSelection for same-driver swap, got %v", err)
	}

	if _, err := svc.SwapGroupB(t.Context(), "user-1", 999); !errors.Is(err, roster.ErrInvalidSelection) {
		t.Fatalf("expected ErrInvalidSelection for unknown driver, got %v", err)
	}
}
