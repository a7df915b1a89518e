package memory

import (
	"time"

	"github.com/f1mates/league-api/internal/domain/driver"
	"github.com/f1mates/league-api/internal/domain/race"
)

const seedSeason = 2025

// SeedDrivers is the season's fixed 18-driver grid. Tier A is locked for the
// whole season; ids are stable and referenced by rosters and results.
func SeedDrivers() []driver.Driver {
	return []driver.Driver{
		{ID: 1, Name: "Max Verstappen", Team: "Red Bull Racing", Tier: driver.TierA, Locked: true},
		{ID: 2, Name: "Lewis Hamilton", Team: "Mercedes", Tier: driver.TierA, Locked: true},
		{ID: 3, Name: "Charles Leclerc", Team: "Ferrari", Tier: driver.TierA, Locked: true},
		{ID: 4, Name: "Lando Norris", Team: "McLaren", Tier: driver.TierA, Locked: true},
		{ID: 5, Name: "Carlos Sainz", Team: "Ferrari", Tier: driver.TierA, Locked: true},
		{ID: 6, Name: "George Russell", Team: "Mercedes", Tier: driver.TierA, Locked: true},

		{ID: 7, Name: "Alex Albon", Team: "Williams", Tier: driver.TierB},
		{ID: 8, Name: "Oscar Piastri", Team: "McLaren", Tier: driver.TierB},
		{ID: 9, Name: "Pierre Gasly", Team: "Alpine", Tier: driver.TierB},
		{ID: 10, Name: "Fernando Alonso", Team: "Aston Martin", Tier: driver.TierB},
		{ID: 11, Name: "Lance Stroll", Team: "Aston Martin", Tier: driver.TierB},
		{ID: 12, Name: "Esteban Ocon", Team: "Alpine", Tier: driver.TierB},

		{ID: 13, Name: "Yuki Tsunoda", Team: "RB", Tier: driver.TierC},
		{ID: 14, Name: "Valtteri Bottas", Team: "Sauber", Tier: driver.TierC},
		{ID: 15, Name: "Kevin Magnussen", Team: "Haas F1 Team", Tier: driver.TierC},
		{ID: 16, Name: "Zhou Guanyu", Team: "Sauber", Tier: driver.TierC},
		{ID: 17, Name: "Daniel Ricciardo", Team: "RB", Tier: driver.TierC},
		{ID: 18, Name: "Nico Hulkenberg", Team: "Haas F1 Team", Tier: driver.TierC},
	}
}

// SeedRaces is the opening stretch of the season calendar. Admins append the
// rest through the race endpoint.
func SeedRaces() []race.Race {
	return []race.Race{
		seedRace("bahrain-2025", "Bahrain GP", "Bahrain International Circuit",
			time.Date(2025, time.March, 1, 15, 0, 0, 0, time.UTC),
			time.Date(2025, time.March, 2, 15, 0, 0, 0, time.UTC)),
		seedRace("saudi-2025", "Saudi GP", "Jeddah Corniche Circuit",
			time.Date(2025, time.March, 8, 17, 0, 0, 0, time.UTC),
			time.Date(2025, time.March, 9, 17, 0, 0, 0, time.UTC)),
		seedRace("australia-2025", "Australian GP", "Albert Park Circuit",
			time.Date(2025, time.March, 23, 5, 0, 0, 0, time.UTC),
			time.Date(2025, time.March, 24, 5, 0, 0, 0, time.UTC)),
		seedRace("japan-2025", "Japanese GP", "Suzuka Circuit",
			time.Date(2025, time.April, 5, 6, 0, 0, 0, time.UTC),
			time.Date(2025, time.April, 6, 5, 0, 0, 0, time.UTC)),
		seedRace("china-2025", "Chinese GP", "Shanghai International Circuit",
			time.Date(2025, time.April, 19, 7, 0, 0, 0, time.UTC),
			time.Date(2025, time.April, 20, 7, 0, 0, 0, time.UTC)),
		seedRace("miami-2025", "Miami GP", "Miami International Autodrome",
			time.Date(2025, time.May, 3, 20, 0, 0, 0, time.UTC),
			time.Date(2025, time.May, 4, 19, 30, 0, 0, time.UTC)),
	}
}

func seedRace(id, name, circuit string, qualifyingAt, startsAt time.Time) race.Race {
	return race.Race{
		ID:           id,
		Name:         name,
		Circuit:      circuit,
		Season:       seedSeason,
		QualifyingAt: qualifyingAt,
		StartsAt:     startsAt,
		CreatedAt:    qualifyingAt.AddDate(0, -1, 0),
	}
}
