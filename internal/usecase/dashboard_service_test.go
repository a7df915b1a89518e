package usecase

import (
	"testing"
	"time"

	"github.com/f1mates/league-api/internal/domain/driver"
	"github.com/f1mates/league-api/internal/domain/roster"
	"github.com/f1mates/league-api/internal/infrastructure/repository/memory"
)

func TestDashboardService_Overview(t *testing.T) {
	driverRepo := memory.NewDriverRepository(memory.SeedDrivers())
	userRepo := memory.NewUserRepository()
	rosterRepo := memory.NewRosterRepository()
	raceRepo := memory.NewRaceRepository(memory.SeedRaces())
	predictionRepo := memory.NewPredictionRepository()

	userSvc := NewUserService(userRepo, rosterRepo, driverRepo, nil)
	if _, err := userSvc.Register(t.Context(), RegisterUserInput{
		UserID: "user-1",
		Name:   "Alex",
		Email:  "alex@example.com",
	}); err != nil {
		t.Fatalf("register user: %v", err)
	}

	svc := NewDashboardService(userRepo, rosterRepo, driverRepo, predictionRepo, raceRepo)
	// Pin "now" between the first and second seeded race weekend.
	svc.now = func() time.Time {
		return time.Date(2025, time.March, 3, 0, 0, 0, 0, time.UTC)
	}

	dashboard, err := svc.Overview(t.Context(), "user-1")
	if err != nil {
		t.Fatalf("overview failed: %v", err)
	}

	if dashboard.Player.ID != "user-1" {
		t.Fatalf("unexpected player: %s", dashboard.Player.ID)
	}
	if dashboard.SwapsRemaining != roster.InitialSwapBudget {
		t.Fatalf("unexpected budget: %d", dashboard.SwapsRemaining)
	}

	if len(dashboard.Slots) != 3 {
		t.Fatalf("expected 3 roster slots, got %d", len(dashboard.Slots))
	}
	wantTiers := []driver.Tier{driver.TierA, driver.TierB, driver.TierC}
	wantDrivers := []int{1, 7, 13}
	for i, slot := range dashboard.Slots {
		if slot.Tier != wantTiers[i] {
			t.Fatalf("slot %d tier: got=%s want=%s", i, slot.Tier, wantTiers[i])
		}
		if slot.Driver.ID != wantDrivers[i] {
			t.Fatalf("slot %d driver: got=%d want=%d", i, slot.Driver.ID, wantDrivers[i])
		}
	}

	if dashboard.NextRace == nil {
		t.Fatalf("next race missing")
	}
	if dashboard.NextRace.ID != "saudi-2025" {
		t.Fatalf("unexpected next race: %s", dashboard.NextRace.ID)
	}
}

func TestDashboardService_NoUpcomingRace(t *testing.T) {
	driverRepo := memory.NewDriverRepository(memory.SeedDrivers())
	userRepo := memory.NewUserRepository()
	rosterRepo := memory.NewRosterRepository()
	raceRepo := memory.NewRaceRepository(memory.SeedRaces())
	predictionRepo := memory.NewPredictionRepository()

	userSvc := NewUserService(userRepo, rosterRepo, driverRepo, nil)
	if _, err := userSvc.Register(t.Context(), RegisterUserInput{
		UserID: "user-1",
		Name:   "Alex",
		Email:  "alex@example.com",
	}); err != nil {
		t.Fatalf("register user: %v", err)
	}

	svc := NewDashboardService(userRepo, rosterRepo, driverRepo, predictionRepo, raceRepo)
	svc.now = func() time.Time {
		return time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)
	}

	dashboard, err := svc.Overview(t.Context(), "user-1")
	if err != nil {
		t.Fatalf("overview failed: %v", err)
	}
	if dashboard.NextRace != nil {
		t.Fatalf("expected no next race after the season, got %s", dashboard.NextRace.ID)
	}
}
