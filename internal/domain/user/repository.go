package user

import "context"

// Repository describes player persistence needs from use cases. The
// increment-style operations are atomic per player so concurrent aggregation
// tasks and request handlers cannot lose updates.
type Repository interface {
	Create(ctx context.Context, player Player) (created bool, err error)
	GetByID(ctx context.Context, userID string) (Player, bool, error)
	List(ctx context.Context) ([]Player, error)

	// AddPoints adds delta to the player's cumulative tier, bonus and total
	// counters in one write. When bestGroupCFinish is non-empty it replaces
	// the stored label in the same write.
	AddPoints(ctx context.Context, userID string, delta PointsDelta, bestGroupCFinish string) error

	IncrementWeeklyWins(ctx context.Context, userID string) error
	AppendSentInvite(ctx context.Context, userID, email string) error
}
