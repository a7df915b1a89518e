package usecase

import (
	"errors"
	"testing"
	"time"

	"github.com/f1mates/league-api/internal/domain/prediction"
	"github.com/f1mates/league-api/internal/domain/race"
	"github.com/f1mates/league-api/internal/infrastructure/repository/memory"
	idgen "github.com/f1mates/league-api/internal/platform/id"
)

func newPredictionFixture(t *testing.T) (*PredictionService, *memory.UserRepository, *memory.RaceRepository) {
	t.Helper()

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

	svc := NewPredictionService(predictionRepo, raceRepo, userRepo, idgen.NewRandomGenerator(), nil)
	return svc, userRepo, raceRepo
}

func TestPredictionService_SubmitAndList(t *testing.T) {
	svc, _, _ := newPredictionFixture(t)

	item, err := svc.Submit(t.Context(), SubmitPredictionInput{
		UserID: "user-1",
		RaceID: "bahrain-2025",
		Text:   "Safety car before lap 5",
	})
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if item.Result != prediction.ResultPending {
		t.Fatalf("new prediction should be pending, got %s", item.Result)
	}

	items, err := svc.ListMine(t.Context(), "user-1")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(items) != 1 || items[0].ID != item.ID {
		t.Fatalf("unexpected list: %+v", items)
	}
}

func TestPredictionService_SubmitRejectedAfterResult(t *testing.T) {
	svc, _, raceRepo := newPredictionFixture(t)

	created, err := raceRepo.CreateResult(t.Context(), race.Result{
		RaceID:     "bahrain-2025",
		Entries:    []race.DriverResult{{DriverID: 1, Position: 1, BasePoints: 25}},
		RecordedAt: time.Now().UTC(),
	})
	if err != nil || !created {
		t.Fatalf("seed result: created=%t err=%v", created, err)
	}

	_, err = svc.Submit(t.Context(), SubmitPredictionInput{
		UserID: "user-1",
		RaceID: "bahrain-2025",
		Text:   "too late",
	})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput after result exists, got %v", err)
	}
}

func TestPredictionService_SettleOnce(t *testing.T) {
	svc, userRepo, _ := newPredictionFixture(t)

	item, err := svc.Submit(t.Context(), SubmitPredictionInput{
		UserID: "user-1",
		RaceID: "bahrain-2025",
		Text:   "Verstappen wins",
	})
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}

	settled, err := svc.Settle(t.Context(), item.ID, true)
	if err != nil {
		t.Fatalf("settle failed: %v", err)
	}
	if settled.Result != prediction.ResultCorrect || settled.Points != prediction.CorrectPoints {
		t.Fatalf("unexpected settled prediction: %+v", settled)
	}

	player, _, _ := userRepo.GetByID(t.Context(), "user-1")
	if player.BonusPoints != prediction.CorrectPoints {
		t.Fatalf("bonus not credited: %d", player.BonusPoints)
	}

	// Second verdict must not double-credit.
	if _, err := svc.Settle(t.Context(), item.ID, true); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput on re-settle, got %v", err)
	}
	player, _, _ = userRepo.GetByID(t.Context(), "user-1")
	if player.BonusPoints != prediction.CorrectPoints {
		t.Fatalf("re-settle double-credited: %d", player.BonusPoints)
	}
}

func TestPredictionService_SettleIncorrectPaysNothing(t *testing.T) {
	svc, userRepo, _ := newPredictionFixture(t)

	item, err := svc.Submit(t.Context(), SubmitPredictionInput{
		UserID: "user-1",
		RaceID: "bahrain-2025",
		Text:   "Rain",
	})
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}

	settled, err := svc.Settle(t.Context(), item.ID, false)
	if err != nil {
		t.Fatalf("settle failed: %v", err)
	}
	if settled.Result != prediction.ResultIncorrect || settled.Points != 0 {
		t.Fatalf("unexpected settled prediction: %+v", settled)
	}

	player, _, _ := userRepo.GetByID(t.Context(), "user-1")
	if player.BonusPoints != 0 {
		t.Fatalf("incorrect prediction credited points: %d", player.BonusPoints)
	}
}
