package roster

import (
	"context"

	"github.com/f1mates/league-api/internal/domain/swap"
)

// Repository describes roster persistence needs from use cases.
type Repository interface {
	Get(ctx context.Context, userID string) (Roster, bool, error)
	List(ctx context.Context) ([]Roster, error)
	// Create inserts a roster only if none exists for the user yet.
	Create(ctx context.Context, item Roster) (created bool, err error)
	// ApplySwap writes the updated roster and appends the history record in
	// one transaction: either both are visible afterwards or neither is.
	// The write only lands while the stored lineup and budget still match
	// prior; applied reports false when a concurrent change won the race.
	ApplySwap(ctx context.Context, prior, updated Roster, record swap.Record) (applied bool, err error)
}
