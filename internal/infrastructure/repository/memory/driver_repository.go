package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/f1mates/league-api/internal/domain/driver"
)

type DriverRepository struct {
	mu      sync.RWMutex
	drivers map[int]driver.Driver
}

func NewDriverRepository(drivers []driver.Driver) *DriverRepository {
	index := make(map[int]driver.Driver, len(drivers))
	for _, d := range drivers {
		index[d.ID] = d
	}
	return &DriverRepository{drivers: index}
}

func (r *DriverRepository) List(_ context.Context) ([]driver.Driver, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]driver.Driver, 0, len(r.drivers))
	for _, d := range r.drivers {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })

	return out, nil
}

func (r *DriverRepository) GetByID(_ context.Context, driverID int) (driver.Driver, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	d, ok := r.drivers[driverID]
	return d, ok, nil
}

func (r *DriverRepository) UpdatePoints(_ context.Context, pointsByDriver map[int]int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for driverID, points := range pointsByDriver {
		d, ok := r.drivers[driverID]
		if !ok {
			continue
		}
		d.Points = points
		r.drivers[driverID] = d
	}

	return nil
}
