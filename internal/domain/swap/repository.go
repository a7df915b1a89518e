package swap

import "context"

// Repository reads swap history. Appends happen only through the roster
// ledger transaction (roster.Repository.ApplySwap).
type Repository interface {
	ListByUser(ctx context.Context, userID string) ([]Record, error)
}
