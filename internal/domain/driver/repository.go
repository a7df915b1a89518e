package driver

import "context"

// Repository describes driver catalog persistence needs from use cases.
type Repository interface {
	List(ctx context.Context) ([]Driver, error)
	GetByID(ctx context.Context, driverID int) (Driver, bool, error)
	// UpdatePoints bulk-writes last-race points after ingestion. It never
	// touches tier or lock attributes.
	UpdatePoints(ctx context.Context, pointsByDriver map[int]int) error
}
