package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/f1mates/league-api/internal/domain/invite"
)

type InviteRepository struct {
	mu      sync.RWMutex
	byID    map[string]invite.Invitation
	byEmail map[string]string
}

func NewInviteRepository() *InviteRepository {
	return &InviteRepository{
		byID:    make(map[string]invite.Invitation),
		byEmail: make(map[string]string),
	}
}

func (r *InviteRepository) Create(_ context.Context, item invite.Invitation) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.byID[item.ID] = item
	r.byEmail[strings.ToLower(item.Email)] = item.ID

	return nil
}

func (r *InviteRepository) GetByEmail(_ context.Context, email string) (invite.Invitation, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	inviteID, ok := r.byEmail[strings.ToLower(email)]
	if !ok {
		return invite.Invitation{}, false, nil
	}
	item, ok := r.byID[inviteID]

	return item, ok, nil
}

func (r *InviteRepository) ListBySender(_ context.Context, senderID string) ([]invite.Invitation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]invite.Invitation, 0)
	for _, item := range r.byID {
		if item.SenderID == senderID {
			out = append(out, item)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })

	return out, nil
}
