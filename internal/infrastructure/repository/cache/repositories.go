package cache

import (
	"context"
	"strconv"

	"github.com/f1mates/league-api/internal/domain/driver"
	"github.com/f1mates/league-api/internal/domain/race"
	basecache "github.com/f1mates/league-api/internal/platform/cache"
)

// DriverRepository caches the driver catalog in front of the real store. The
// catalog only changes when ingestion writes points, so UpdatePoints drops
// all driver keys.
type DriverRepository struct {
	next  driver.Repository
	cache *basecache.Store
}

func NewDriverRepository(next driver.Repository, cache *basecache.Store) *DriverRepository {
	return &DriverRepository{next: next, cache: cache}
}

func (r *DriverRepository) List(ctx context.Context) ([]driver.Driver, error) {
	v, err := r.cache.GetOrLoad(ctx, "driver:list", func(ctx context.Context) (any, error) {
		items, err := r.next.List(ctx)
		if err != nil {
			return nil, err
		}
		return append([]driver.Driver(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]driver.Driver)
	return append([]driver.Driver(nil), items...), nil
}

func (r *DriverRepository) GetByID(ctx context.Context, driverID int) (driver.Driver, bool, error) {
	key := "driver:id:" + strconv.Itoa(driverID)
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		item, exists, err := r.next.GetByID(ctx, driverID)
		if err != nil {
			return nil, err
		}
		return cachedDriverByID{value: item, exists: exists}, nil
	})
	if err != nil {
		return driver.Driver{}, false, err
	}

	cached, _ := v.(cachedDriverByID)
	return cached.value, cached.exists, nil
}

func (r *DriverRepository) UpdatePoints(ctx context.Context, pointsByDriver map[int]int) error {
	if err := r.next.UpdatePoints(ctx, pointsByDriver); err != nil {
		return err
	}
	r.cache.DeletePrefix(ctx, "driver:")

	return nil
}

type cachedDriverByID struct {
	value  driver.Driver
	exists bool
}

// RaceRepository caches the calendar reads. Result reads stay uncached since
// they feed the aggregation pass, which must see its own writes.
type RaceRepository struct {
	next  race.Repository
	cache *basecache.Store
}

func NewRaceRepository(next race.Repository, cache *basecache.Store) *RaceRepository {
	return &RaceRepository{next: next, cache: cache}
}

func (r *RaceRepository) ListRaces(ctx context.Context) ([]race.Race, error) {
	v, err := r.cache.GetOrLoad(ctx, "race:list", func(ctx context.Context) (any, error) {
		items, err := r.next.ListRaces(ctx)
		if err != nil {
			return nil, err
		}
		return append([]race.Race(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]race.Race)
	return append([]race.Race(nil), items...), nil
}

func (r *RaceRepository) GetRace(ctx context.Context, raceID string) (race.Race, bool, error) {
	key := "race:id:" + raceID
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		item, exists, err := r.next.GetRace(ctx, raceID)
		if err != nil {
			return nil, err
		}
		return cachedRaceByID{value: item, exists: exists}, nil
	})
	if err != nil {
		return race.Race{}, false, err
	}

	cached, _ := v.(cachedRaceByID)
	return cached.value, cached.exists, nil
}

func (r *RaceRepository) CreateRace(ctx context.Context, item race.Race) (bool, error) {
	created, err := r.next.CreateRace(ctx, item)
	if err != nil {
		return false, err
	}
	if created {
		r.cache.DeletePrefix(ctx, "race:")
	}

	return created, nil
}

func (r *RaceRepository) GetResult(ctx context.Context, raceID string) (race.Result, bool, error) {
	return r.next.GetResult(ctx, raceID)
}

func (r *RaceRepository) ListResults(ctx context.Context) ([]race.Result, error) {
	return r.next.ListResults(ctx)
}

func (r *RaceRepository) CreateResult(ctx context.Context, item race.Result) (bool, error) {
	return r.next.CreateResult(ctx, item)
}

type cachedRaceByID struct {
	value  race.Race
	exists bool
}
