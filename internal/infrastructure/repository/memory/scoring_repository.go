package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/f1mates/league-api/internal/domain/scoring"
)

type snapshotKey struct {
	raceID string
	userID string
}

type ScoringRepository struct {
	mu        sync.RWMutex
	locks     map[string]scoring.Lock
	snapshots map[snapshotKey]scoring.Snapshot
	tallies   map[snapshotKey]scoring.Tally
	awards    map[string]scoring.WeeklyAward
}

func NewScoringRepository() *ScoringRepository {
	return &ScoringRepository{
		locks:     make(map[string]scoring.Lock),
		snapshots: make(map[snapshotKey]scoring.Snapshot),
		tallies:   make(map[snapshotKey]scoring.Tally),
		awards:    make(map[string]scoring.WeeklyAward),
	}
}

func (r *ScoringRepository) GetLock(_ context.Context, raceID string) (scoring.Lock, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	lock, ok := r.locks[raceID]
	return lock, ok, nil
}

func (r *ScoringRepository) CreateLock(_ context.Context, lock scoring.Lock) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.locks[lock.RaceID]; ok {
		return false, nil
	}
	r.locks[lock.RaceID] = lock

	return true, nil
}

func (r *ScoringRepository) UpsertSnapshot(_ context.Context, snapshot scoring.Snapshot) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.snapshots[snapshotKey{snapshot.RaceID, snapshot.UserID}] = snapshot

	return nil
}

func (r *ScoringRepository) GetSnapshot(_ context.Context, raceID, userID string) (scoring.Snapshot, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	snapshot, ok := r.snapshots[snapshotKey{raceID, userID}]
	return snapshot, ok, nil
}

func (r *ScoringRepository) ListSnapshotsByRace(_ context.Context, raceID string) ([]scoring.Snapshot, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]scoring.Snapshot, 0)
	for key, snapshot := range r.snapshots {
		if key.raceID == raceID {
			out = append(out, snapshot)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UserID < out[j].UserID })

	return out, nil
}

func (r *ScoringRepository) CreateTally(_ context.Context, tally scoring.Tally) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := snapshotKey{tally.RaceID, tally.UserID}
	if _, ok := r.tallies[key]; ok {
		return false, nil
	}
	r.tallies[key] = tally

	return true, nil
}

func (r *ScoringRepository) ListTalliesByRace(_ context.Context, raceID string) ([]scoring.Tally, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]scoring.Tally, 0)
	for key, tally := range r.tallies {
		if key.raceID == raceID {
			out = append(out, tally)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UserID < out[j].UserID })

	return out, nil
}

func (r *ScoringRepository) ListTalliesByUser(_ context.Context, userID string) ([]scoring.Tally, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]scoring.Tally, 0)
	for key, tally := range r.tallies {
		if key.userID == userID {
			out = append(out, tally)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CalculatedAt.Before(out[j].CalculatedAt) })

	return out, nil
}

func (r *ScoringRepository) GetWeeklyAward(_ context.Context, raceID string) (scoring.WeeklyAward, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	award, ok := r.awards[raceID]
	return award, ok, nil
}

func (r *ScoringRepository) CreateWeeklyAward(_ context.Context, award scoring.WeeklyAward) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.awards[award.RaceID]; ok {
		return false, nil
	}
	r.awards[award.RaceID] = award

	return true, nil
}
