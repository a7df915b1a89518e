package race

import "context"

// Repository describes race calendar and result persistence.
type Repository interface {
	ListRaces(ctx context.Context) ([]Race, error)
	GetRace(ctx context.Context, raceID string) (Race, bool, error)
	CreateRace(ctx context.Context, item Race) (created bool, err error)

	GetResult(ctx context.Context, raceID string) (Result, bool, error)
	ListResults(ctx context.Context) ([]Result, error)
	// CreateResult stores a result only if the race has none yet; created
	// reports false when one was already recorded.
	CreateResult(ctx context.Context, item Result) (created bool, err error)
}
