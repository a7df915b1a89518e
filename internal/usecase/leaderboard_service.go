package usecase

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/f1mates/league-api/internal/domain/user"
)

// LeaderboardEntry is one ranked row of the league standings.
type LeaderboardEntry struct {
	Rank             int
	UserID           string
	Name             string
	GroupAPoints     int
	GroupBPoints     int
	GroupCPoints     int
	BonusPoints      int
	TotalPoints      int
	WeeklyWins       int
	BestGroupCFinish string
	IsCurrentLeader  bool
	IsOnHotStreak    bool
}

// LeaderboardService derives the league standings from cumulative player
// totals. Admin accounts never appear.
type LeaderboardService struct {
	userRepo user.Repository
	now      func() time.Time
}

func NewLeaderboardService(userRepo user.Repository) *LeaderboardService {
	return &LeaderboardService{userRepo: userRepo, now: time.Now}
}

// Standings ranks players by total points, then weekly wins, then user id.
// The ordering is total, so equal totals still produce a stable rank and
// exactly one current leader.
func (s *LeaderboardService) Standings(ctx context.Context) ([]LeaderboardEntry, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeaderboardService.Standings")
	defer span.End()

	players, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list players: %w", err)
	}

	entries := make([]LeaderboardEntry, 0, len(players))
	for _, player := range players {
		if player.IsAdmin {
			continue
		}
		entries = append(entries, LeaderboardEntry{
			UserID:           player.ID,
			Name:             player.Name,
			GroupAPoints:     player.GroupAPoints,
			GroupBPoints:     player.GroupBPoints,
			GroupCPoints:     player.GroupCPoints,
			BonusPoints:      player.BonusPoints,
			TotalPoints:      player.TotalPoints,
			WeeklyWins:       player.WeeklyWins,
			BestGroupCFinish: player.BestGroupCFinish,
			IsOnHotStreak:    player.WeeklyWins > 1,
		})
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].TotalPoints != entries[j].TotalPoints {
			return entries[i].TotalPoints > entries[j].TotalPoints
		}
		if entries[i].WeeklyWins != entries[j].WeeklyWins {
			return entries[i].WeeklyWins > entries[j].WeeklyWins
		}
		return entries[i].UserID < entries[j].UserID
	})

	for i := range entries {
		entries[i].Rank = i + 1
	}
	if len(entries) > 0 {
		entries[0].IsCurrentLeader = true
	}
	return entries, nil
}
