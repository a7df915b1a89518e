package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/f1mates/league-api/internal/domain/user"
)

type UserRepository struct {
	mu      sync.RWMutex
	players map[string]user.Player
}

func NewUserRepository() *UserRepository {
	return &UserRepository{players: make(map[string]user.Player)}
}

func (r *UserRepository) Create(_ context.Context, player user.Player) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.players[player.ID]; ok {
		return false, nil
	}
	r.players[player.ID] = clonePlayer(player)

	return true, nil
}

func (r *UserRepository) GetByID(_ context.Context, userID string) (user.Player, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	player, ok := r.players[userID]
	if !ok {
		return user.Player{}, false, nil
	}

	return clonePlayer(player), true, nil
}

func (r *UserRepository) List(_ context.Context) ([]user.Player, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]user.Player, 0, len(r.players))
	for _, player := range r.players {
		out = append(out, clonePlayer(player))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })

	return out, nil
}

func (r *UserRepository) AddPoints(_ context.Context, userID string, delta user.PointsDelta, bestGroupCFinish string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	player, ok := r.players[userID]
	if !ok {
		return nil
	}
	player.GroupAPoints += delta.GroupA
	player.GroupBPoints += delta.GroupB
	player.GroupCPoints += delta.GroupC
	player.BonusPoints += delta.Bonus
	player.TotalPoints += delta.Total()
	if bestGroupCFinish != "" {
		player.BestGroupCFinish = bestGroupCFinish
	}
	r.players[userID] = player

	return nil
}

func (r *UserRepository) IncrementWeeklyWins(_ context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	player, ok := r.players[userID]
	if !ok {
		return nil
	}
	player.WeeklyWins++
	r.players[userID] = player

	return nil
}

func (r *UserRepository) AppendSentInvite(_ context.Context, userID, email string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	player, ok := r.players[userID]
	if !ok {
		return nil
	}
	player.SentInvites = append(player.SentInvites, email)
	r.players[userID] = player

	return nil
}

func clonePlayer(player user.Player) user.Player {
	out := player
	out.SentInvites = append([]string(nil), player.SentInvites...)
	return out
}
