package httpapi

import (
	"net/http"

	"github.com/f1mates/league-api/internal/usecase"
)

type leaderboardEntryDTO struct {
	Rank             int    `json:"rank"`
	UserID           string `json:"user_id"`
	Name             string `json:"name"`
	GroupAPoints     int    `json:"group_a_points"`
	GroupBPoints     int    `json:"group_b_points"`
	GroupCPoints     int    `json:"group_c_points"`
	BonusPoints      int    `json:"bonus_points"`
	TotalPoints      int    `json:"total_points"`
	WeeklyWins       int    `json:"weekly_wins"`
	BestGroupCFinish string `json:"best_group_c_finish"`
	IsCurrentLeader  bool   `json:"is_current_leader"`
	IsOnHotStreak    bool   `json:"is_on_hot_streak"`
}

func leaderboardEntryToDTO(entry usecase.LeaderboardEntry) leaderboardEntryDTO {
	return leaderboardEntryDTO{
		Rank:             entry.Rank,
		UserID:           entry.UserID,
		Name:             entry.Name,
		GroupAPoints:     entry.GroupAPoints,
		GroupBPoints:     entry.GroupBPoints,
		GroupCPoints:     entry.GroupCPoints,
		BonusPoints:      entry.BonusPoints,
		TotalPoints:      entry.TotalPoints,
		WeeklyWins:       entry.WeeklyWins,
		BestGroupCFinish: entry.BestGroupCFinish,
		IsCurrentLeader:  entry.IsCurrentLeader,
		IsOnHotStreak:    entry.IsOnHotStreak,
	}
}

func (h *Handler) GetLeaderboard(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetLeaderboard")
	defer span.End()

	entries, err := h.leaderboardService.Standings(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "get leaderboard failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]leaderboardEntryDTO, 0, len(entries))
	for _, entry := range entries {
		items = append(items, leaderboardEntryToDTO(entry))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}
