package invite

import "context"

type Repository interface {
	Create(ctx context.Context, item Invitation) error
	GetByEmail(ctx context.Context, email string) (Invitation, bool, error)
	ListBySender(ctx context.Context, senderID string) ([]Invitation, error)
}
