package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/mock"

	"github.com/f1mates/league-api/internal/domain/driver"
	drivermock "github.com/f1mates/league-api/internal/mocks/domain/driver"
)

func TestCatalogService_ListDrivers_SuccessUsingMockery(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	driverRepo := drivermock.NewRepository(t)

	service := NewCatalogService(driverRepo)
	expected := []driver.Driver{
		{ID: 1, Name: "Max Verstappen", Team: "Red Bull", Tier: driver.TierA, Locked: true},
		{ID: 7, Name: "Alex Albon", Team: "Williams", Tier: driver.TierB},
	}

	driverRepo.
		On("List", mock.MatchedBy(func(v context.Context) bool { return v == ctx })).
		Return(expected, nil).
		Once()

	got, err := service.ListDrivers(ctx)
	if err != nil {
		t.Fatalf("list drivers: %v", err)
	}
	if len(got) != len(expected) {
		t.Fatalf("unexpected driver count: got=%d want=%d", len(got), len(expected))
	}
	if got[0].ID != expected[0].ID {
		t.Fatalf("unexpected driver id: got=%d want=%d", got[0].ID, expected[0].ID)
	}
}

func TestCatalogService_GetDriver_NotFoundUsingMockery(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	driverRepo := drivermock.NewRepository(t)

	service := NewCatalogService(driverRepo)

	driverRepo.
		On("GetByID", mock.MatchedBy(func(v context.Context) bool { return v == ctx }), 99).
		Return(driver.Driver{}, false, nil).
		Once()

	_, err := service.GetDriver(ctx, 99)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestCatalogService_ListDrivers_RepositoryErrorUsingMockery(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	driverRepo := drivermock.NewRepository(t)

	service := NewCatalogService(driverRepo)
	storeErr := errors.New("store unavailable")

	driverRepo.
		On("List", mock.MatchedBy(func(v context.Context) bool { return v == ctx })).
		Return(nil, storeErr).
		Once()

	_, err := service.ListDrivers(ctx)
	if !errors.Is(err, storeErr) {
		t.Fatalf("expected wrapped repository error, got %v", err)
	}
}
