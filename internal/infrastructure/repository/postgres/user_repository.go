package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/f1mates/league-api/internal/domain/user"
)

type userRow struct {
	ID               string         `db:"id"`
	Name             string         `db:"name"`
	Email            string         `db:"email"`
	IsAdmin          bool           `db:"is_admin"`
	GroupAPoints     int            `db:"group_a_points"`
	GroupBPoints     int            `db:"group_b_points"`
	GroupCPoints     int            `db:"group_c_points"`
	BonusPoints      int            `db:"bonus_points"`
	TotalPoints      int            `db:"total_points"`
	WeeklyWins       int            `db:"weekly_wins"`
	BestGroupCFinish string         `db:"best_group_c_finish"`
	SentInvites      pq.StringArray `db:"sent_invites"`
	CreatedAt        time.Time      `db:"created_at"`
	UpdatedAt        time.Time      `db:"updated_at"`
}

func (row userRow) toDomain() user.Player {
	return user.Player{
		ID:               row.ID,
		Name:             row.Name,
		Email:            row.Email,
		IsAdmin:          row.IsAdmin,
		GroupAPoints:     row.GroupAPoints,
		GroupBPoints:     row.GroupBPoints,
		GroupCPoints:     row.GroupCPoints,
		BonusPoints:      row.BonusPoints,
		TotalPoints:      row.TotalPoints,
		WeeklyWins:       row.WeeklyWins,
		BestGroupCFinish: row.BestGroupCFinish,
		SentInvites:      append([]string(nil), row.SentInvites...),
		CreatedAt:        row.CreatedAt,
		UpdatedAt:        row.UpdatedAt,
	}
}

const userColumns = `
id, name, email, is_admin,
group_a_points, group_b_points, group_c_points, bonus_points, total_points,
weekly_wins, best_group_c_finish, sent_invites, created_at, updated_at`

type UserRepository struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, player user.Player) (bool, error) {
	const query = `
INSERT INTO users (
    id, name, email, is_admin,
    group_a_points, group_b_points, group_c_points, bonus_points, total_points,
    weekly_wins, best_group_c_finish, sent_invites
)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
ON CONFLICT (id) DO NOTHING`

	res, err := r.db.ExecContext(ctx, query,
		player.ID, player.Name, player.Email, player.IsAdmin,
		player.GroupAPoints, player.GroupBPoints, player.GroupCPoints,
		player.BonusPoints, player.TotalPoints,
		player.WeeklyWins, player.BestGroupCFinish, pq.StringArray(player.SentInvites),
	)
	if err != nil {
		return false, markTransient(fmt.Errorf("insert user: %w", err))
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("insert user rows affected: %w", err)
	}

	return affected > 0, nil
}

func (r *UserRepository) GetByID(ctx context.Context, userID string) (user.Player, bool, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	var row userRow
	if err := r.db.GetContext(ctx, &row, query, userID); err != nil {
		if isNotFound(err) {
			return user.Player{}, false, nil
		}
		return user.Player{}, false, markTransient(fmt.Errorf("get user: %w", err))
	}

	return row.toDomain(), true, nil
}

func (r *UserRepository) List(ctx context.Context) ([]user.Player, error) {
	query := `SELECT ` + userColumns + ` FROM users ORDER BY id`

	var rows []userRow
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, markTransient(fmt.Errorf("list users: %w", err))
	}

	out := make([]user.Player, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}

	return out, nil
}

func (r *UserRepository) AddPoints(ctx context.Context, userID string, delta user.PointsDelta, bestGroupCFinish string) error {
	const query = `
UPDATE users
SET group_a_points = group_a_points + $2,
    group_b_points = group_b_points + $3,
    group_c_points = group_c_points + $4,
    bonus_points = bonus_points + $5,
    total_points = total_points + $6,
    best_group_c_finish = CASE WHEN $7 <> '' THEN $7 ELSE best_group_c_finish END,
    updated_at = NOW()
WHERE id = $1`

	_, err := r.db.ExecContext(ctx, query,
		userID, delta.GroupA, delta.GroupB, delta.GroupC, delta.Bonus, delta.Total(), bestGroupCFinish)
	if err != nil {
		return markTransient(fmt.Errorf("add user points: %w", err))
	}

	return nil
}

func (r *UserRepository) IncrementWeeklyWins(ctx context.Context, userID string) error {
	const query = `
UPDATE users
SET weekly_wins = weekly_wins + 1, updated_at = NOW()
WHERE id = $1`

	if _, err := r.db.ExecContext(ctx, query, userID); err != nil {
		return markTransient(fmt.Errorf("increment weekly wins: %w", err))
	}

	return nil
}

func (r *UserRepository) AppendSentInvite(ctx context.Context, userID, email string) error {
	const query = `
UPDATE users
SET sent_invites = array_append(sent_invites, $2), updated_at = NOW()
WHERE id = $1`

	if _, err := r.db.ExecContext(ctx, query, userID, email); err != nil {
		return markTransient(fmt.Errorf("append sent invite: %w", err))
	}

	return nil
}
