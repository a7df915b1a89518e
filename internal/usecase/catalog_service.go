package usecase

import (
	"context"
	"fmt"

	"github.com/f1mates/league-api/internal/domain/driver"
)

// CatalogService exposes the driver reference list.
type CatalogService struct {
	driverRepo driver.Repository
}

func NewCatalogService(driverRepo driver.Repository) *CatalogService {
	return &CatalogService{driverRepo: driverRepo}
}

func (s *CatalogService) ListDrivers(ctx context.Context) ([]driver.Driver, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.CatalogService.ListDrivers")
	defer span.End()

	items, err := s.driverRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list drivers: %w", err)
	}
	return items, nil
}

func (s *CatalogService) GetDriver(ctx context.Context, driverID int) (driver.Driver, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.CatalogService.GetDriver")
	defer span.End()

	if driverID <= 0 {
		return driver.Driver{}, fmt.Errorf("%w: driver id must be greater than zero", ErrInvalidInput)
	}

	item, exists, err := s.driverRepo.GetByID(ctx, driverID)
	if err != nil {
		return driver.Driver{}, fmt.Errorf("get driver: %w", err)
	}
	if !exists {
		return driver.Driver{}, fmt.Errorf("%w: driver %d", ErrNotFound, driverID)
	}
	return item, nil
}
