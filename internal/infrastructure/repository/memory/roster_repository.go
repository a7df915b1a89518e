package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/f1mates/league-api/internal/domain/roster"
	"github.com/f1mates/league-api/internal/domain/swap"
)

// RosterRepository holds rosters and their swap history under one lock, so
// ApplySwap is atomic the same way the SQL implementation is.
type RosterRepository struct {
	mu          sync.RWMutex
	rosters     map[string]roster.Roster
	swapsByUser map[string][]swap.Record
}

func NewRosterRepository() *RosterRepository {
	return &RosterRepository{
		rosters:     make(map[string]roster.Roster),
		swapsByUser: make(map[string][]swap.Record),
	}
}

func (r *RosterRepository) Get(_ context.Context, userID string) (roster.Roster, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.rosters[userID]
	return item, ok, nil
}

func (r *RosterRepository) List(_ context.Context) ([]roster.Roster, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]roster.Roster, 0, len(r.rosters))
	for _, item := range r.rosters {
		out = append(out, item)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UserID < out[j].UserID })

	return out, nil
}

func (r *RosterRepository) Create(_ context.Context, item roster.Roster) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.rosters[item.UserID]; ok {
		return false, nil
	}
	r.rosters[item.UserID] = item

	return true, nil
}

// ApplySwap compares the stored lineup and budget against prior before
// writing, so two callers racing over the same roster cannot both land on
// the same starting state.
func (r *RosterRepository) ApplySwap(_ context.Context, prior, updated roster.Roster, record swap.Record) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.rosters[updated.UserID]
	if !ok || !sameLineup(stored, prior) {
		return false, nil
	}
	r.rosters[updated.UserID] = updated
	r.swapsByUser[record.UserID] = append(r.swapsByUser[record.UserID], record)

	return true, nil
}

func sameLineup(a, b roster.Roster) bool {
	return a.DriverA == b.DriverA &&
		a.DriverB == b.DriverB &&
		a.DriverC == b.DriverC &&
		a.SwapsRemaining == b.SwapsRemaining
}

// ListByUser returns swap history, newest first.
func (r *RosterRepository) ListByUser(_ context.Context, userID string) ([]swap.Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	records := r.swapsByUser[userID]
	out := make([]swap.Record, 0, len(records))
	out = append(out, records...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })

	return out, nil
}
