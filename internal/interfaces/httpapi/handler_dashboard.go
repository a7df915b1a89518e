package httpapi

import (
	"fmt"
	"net/http"

	"github.com/f1mates/league-api/internal/usecase"
)

type rosterSlotDTO struct {
	Tier   string    `json:"tier"`
	Driver driverDTO `json:"driver"`
}

type pointsSummaryDTO struct {
	GroupAPoints     int    `json:"group_a_points"`
	GroupBPoints     int    `json:"group_b_points"`
	GroupCPoints     int    `json:"group_c_points"`
	BonusPoints      int    `json:"bonus_points"`
	TotalPoints      int    `json:"total_points"`
	WeeklyWins       int    `json:"weekly_wins"`
	BestGroupCFinish string `json:"best_group_c_finish"`
}

type dashboardDTO struct {
	Name           string          `json:"name"`
	Points         pointsSummaryDTO `json:"points"`
	Slots          []rosterSlotDTO `json:"roster"`
	SwapsRemaining int             `json:"swaps_remaining"`
	Predictions    []predictionDTO `json:"predictions"`
	NextRace       *raceDTO        `json:"next_race,omitempty"`
}

func (h *Handler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetDashboard")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	dashboard, err := h.dashboardService.Overview(ctx, principal.UserID)
	if err != nil {
		h.logger.WarnContext(ctx, "get dashboard failed", "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	slots := make([]rosterSlotDTO, 0, len(dashboard.Slots))
	for _, slot := range dashboard.Slots {
		slots = append(slots, rosterSlotDTO{
			Tier:   string(slot.Tier),
			Driver: driverToDTO(slot.Driver),
		})
	}

	predictions := make([]predictionDTO, 0, len(dashboard.Predictions))
	for _, item := range dashboard.Predictions {
		predictions = append(predictions, predictionToDTO(item))
	}

	payload := dashboardDTO{
		Name: dashboard.Player.Name,
		Points: pointsSummaryDTO{
			GroupAPoints:     dashboard.Player.GroupAPoints,
			GroupBPoints:     dashboard.Player.GroupBPoints,
			GroupCPoints:     dashboard.Player.GroupCPoints,
			BonusPoints:      dashboard.Player.BonusPoints,
			TotalPoints:      dashboard.Player.TotalPoints,
			WeeklyWins:       dashboard.Player.WeeklyWins,
			BestGroupCFinish: dashboard.Player.BestGroupCFinish,
		},
		Slots:          slots,
		SwapsRemaining: dashboard.SwapsRemaining,
		Predictions:    predictions,
	}
	if dashboard.NextRace != nil {
		next := raceToDTO(*dashboard.NextRace)
		payload.NextRace = &next
	}

	writeSuccess(ctx, w, http.StatusOK, payload)
}
