package usecase

import (
	"errors"
	"testing"

	"github.com/f1mates/league-api/internal/domain/roster"
	"github.com/f1mates/league-api/internal/domain/user"
	"github.com/f1mates/league-api/internal/infrastructure/repository/memory"
)

func TestUserService_RegisterSeedsRoster(t *testing.T) {
	driverRepo := memory.NewDriverRepository(memory.SeedDrivers())
	userRepo := memory.NewUserRepository()
	rosterRepo := memory.NewRosterRepository()
	svc := NewUserService(userRepo, rosterRepo, driverRepo, nil)

	player, err := svc.Register(t.Context(), RegisterUserInput{
		UserID: "user-1",
		Name:   "Alex",
		Email:  "Alex@Example.COM",
	})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if player.Email != "alex@example.com" {
		t.Fatalf("email not normalized: %s", player.Email)
	}
	if player.TotalPoints != 0 || player.WeeklyWins != 0 {
		t.Fatalf("scoring document not zeroed: %+v", player)
	}
	if player.BestGroupCFinish != user.NoGroupCFinish {
		t.Fatalf("unexpected initial best finish: %s", player.BestGroupCFinish)
	}

	item, exists, err := rosterRepo.Get(t.Context(), "user-1")
	if err != nil || !exists {
		t.Fatalf("initial roster missing: exists=%t err=%v", exists, err)
	}
	if item.DriverA != 1 || item.DriverB != 7 || item.DriverC != 13 {
		t.Fatalf("unexpected default draft: %+v", item)
	}
	if item.SwapsRemaining != roster.InitialSwapBudget {
		t.Fatalf("unexpected initial budget: %d", item.SwapsRemaining)
	}
}

func TestUserService_RegisterWithExplicitDraft(t *testing.T) {
	driverRepo := memory.NewDriverRepository(memory.SeedDrivers())
	userRepo := memory.NewUserRepository()
	rosterRepo := memory.NewRosterRepository()
	svc := NewUserService(userRepo, rosterRepo, driverRepo, nil)

	if _, err := svc.Register(t.Context(), RegisterUserInput{
		UserID:  "user-1",
		Name:    "Alex",
		Email:   "alex@example.com",
		DriverA: 4,
		DriverB: 10,
		DriverC: 18,
	}); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	item, _, _ := rosterRepo.Get(t.Context(), "user-1")
	if item.DriverA != 4 || item.DriverB != 10 || item.DriverC != 18 {
		t.Fatalf("explicit draft ignored: %+v", item)
	}
}

func TestUserService_RegisterRejectsCrossTierDraft(t *testing.T) {
	driverRepo := memory.NewDriverRepository(memory.SeedDrivers())
	svc := NewUserService(memory.NewUserRepository(), memory.NewRosterRepository(), driverRepo, nil)

	// Driver 13 is tier C and cannot fill the tier B seat.
	_, err := svc.Register(t.Context(), RegisterUserInput{
		UserID:  "user-1",
		Name:    "Alex",
		Email:   "alex@example.com",
		DriverB: 13,
	})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestUserService_RegisterDuplicate(t *testing.T) {
	driverRepo := memory.NewDriverRepository(memory.SeedDrivers())
	svc := NewUserService(memory.NewUserRepository(), memory.NewRosterRepository(), driverRepo, nil)

	input := RegisterUserInput{UserID: "user-1", Name: "Alex", Email: "alex@example.com"}
	if _, err := svc.Register(t.Context(), input); err != nil {
		t.Fatalf("first register failed: %v", err)
	}
	if _, err := svc.Register(t.Context(), input); !errors.Is(err, ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists, got %v", err)
	}
}

func TestUserService_IsAdmin(t *testing.T) {
	driverRepo := memory.NewDriverRepository(memory.SeedDrivers())
	svc := NewUserService(memory.NewUserRepository(), memory.NewRosterRepository(), driverRepo, nil)

	if _, err := svc.Register(t.Context(), RegisterUserInput{
		UserID: "admin-1", Name: "Boss", Email: "boss@example.com", IsAdmin: true,
	}); err != nil {
		t.Fatalf("register admin: %v", err)
	}

	isAdmin, err := svc.IsAdmin(t.Context(), "admin-1")
	if err != nil || !isAdmin {
		t.Fatalf("expected admin: isAdmin=%t err=%v", isAdmin, err)
	}
	isAdmin, err = svc.IsAdmin(t.Context(), "ghost")
	if err != nil || isAdmin {
		t.Fatalf("unknown user must not be admin: isAdmin=%t err=%v", isAdmin, err)
	}
}
