package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/f1mates/league-api/internal/domain/invite"
)

type inviteRow struct {
	ID         string    `db:"id"`
	SenderID   string    `db:"sender_id"`
	SenderName string    `db:"sender_name"`
	Email      string    `db:"email"`
	Code       string    `db:"code"`
	Status     string    `db:"status"`
	CreatedAt  time.Time `db:"created_at"`
}

func (row inviteRow) toDomain() invite.Invitation {
	return invite.Invitation{
		ID:         row.ID,
		SenderID:   row.SenderID,
		SenderName: row.SenderName,
		Email:      row.Email,
		Code:       row.Code,
		Status:     invite.Status(row.Status),
		CreatedAt:  row.CreatedAt,
	}
}

type InviteRepository struct {
	db *sqlx.DB
}

func NewInviteRepository(db *sqlx.DB) *InviteRepository {
	return &InviteRepository{db: db}
}

func (r *InviteRepository) Create(ctx context.Context, item invite.Invitation) error {
	const query = `
INSERT INTO invitations (id, sender_id, sender_name, email, code, status, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.db.ExecContext(ctx, query,
		item.ID, item.SenderID, item.SenderName,
		strings.ToLower(item.Email), item.Code, string(item.Status), item.CreatedAt)
	if err != nil {
		return markTransient(fmt.Errorf("insert invitation: %w", err))
	}

	return nil
}

func (r *InviteRepository) GetByEmail(ctx context.Context, email string) (invite.Invitation, bool, error) {
	const query = `
SELECT id, sender_id, sender_name, email, code, status, created_at
FROM invitations
WHERE email = $1`

	var row inviteRow
	if err := r.db.GetContext(ctx, &row, query, strings.ToLower(email)); err != nil {
		if isNotFound(err) {
			return invite.Invitation{}, false, nil
		}
		return invite.Invitation{}, false, markTransient(fmt.Errorf("get invitation: %w", err))
	}

	return row.toDomain(), true, nil
}

func (r *InviteRepository) ListBySender(ctx context.Context, senderID string) ([]invite.Invitation, error) {
	const query = `
SELECT id, sender_id, sender_name, email, code, status, created_at
FROM invitations
WHERE sender_id = $1
ORDER BY created_at DESC`

	var rows []inviteRow
	if err := r.db.SelectContext(ctx, &rows, query, senderID); err != nil {
		return nil, markTransient(fmt.Errorf("list invitations: %w", err))
	}

	out := make([]invite.Invitation, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}

	return out, nil
}
