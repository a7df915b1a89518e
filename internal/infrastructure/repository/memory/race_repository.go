package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/f1mates/league-api/internal/domain/race"
)

type RaceRepository struct {
	mu      sync.RWMutex
	races   map[string]race.Race
	results map[string]race.Result
}

func NewRaceRepository(races []race.Race) *RaceRepository {
	index := make(map[string]race.Race, len(races))
	for _, item := range races {
		index[item.ID] = item
	}
	return &RaceRepository{
		races:   index,
		results: make(map[string]race.Result),
	}
}

func (r *RaceRepository) ListRaces(_ context.Context) ([]race.Race, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]race.Race, 0, len(r.races))
	for _, item := range r.races {
		out = append(out, item)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartsAt.Before(out[j].StartsAt) })

	return out, nil
}

func (r *RaceRepository) GetRace(_ context.Context, raceID string) (race.Race, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.races[raceID]
	return item, ok, nil
}

func (r *RaceRepository) CreateRace(_ context.Context, item race.Race) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.races[item.ID]; ok {
		return false, nil
	}
	r.races[item.ID] = item

	return true, nil
}

func (r *RaceRepository) GetResult(_ context.Context, raceID string) (race.Result, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.results[raceID]
	if !ok {
		return race.Result{}, false, nil
	}

	return cloneResult(item), true, nil
}

func (r *RaceRepository) ListResults(_ context.Context) ([]race.Result, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]race.Result, 0, len(r.results))
	for _, item := range r.results {
		out = append(out, cloneResult(item))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].RecordedAt.After(out[j].RecordedAt) })

	return out, nil
}

func (r *RaceRepository) CreateResult(_ context.Context, item race.Result) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.results[item.RaceID]; ok {
		return false, nil
	}
	r.results[item.RaceID] = cloneResult(item)

	return true, nil
}

func cloneResult(item race.Result) race.Result {
	out := item
	out.Entries = append([]race.DriverResult(nil), item.Entries...)
	return out
}
