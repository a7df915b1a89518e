package httpapi

import (
	"fmt"
	"net/http"
	"time"

	sonic "github.com/bytedance/sonic"

	"github.com/f1mates/league-api/internal/domain/user"
	"github.com/f1mates/league-api/internal/usecase"
)

type registerUserRequest struct {
	UserID  string `json:"user_id" validate:"required,max=64"`
	Name    string `json:"name" validate:"required,max=100"`
	Email   string `json:"email" validate:"required,email"`
	IsAdmin bool   `json:"is_admin"`
	DriverA int    `json:"driver_a" validate:"omitempty,gt=0"`
	DriverB int    `json:"driver_b" validate:"omitempty,gt=0"`
	DriverC int    `json:"driver_c" validate:"omitempty,gt=0"`
}

type playerDTO struct {
	ID               string `json:"id"`
	Name             string `json:"name"`
	Email            string `json:"email"`
	IsAdmin          bool   `json:"is_admin"`
	GroupAPoints     int    `json:"group_a_points"`
	GroupBPoints     int    `json:"group_b_points"`
	GroupCPoints     int    `json:"group_c_points"`
	BonusPoints      int    `json:"bonus_points"`
	TotalPoints      int    `json:"total_points"`
	WeeklyWins       int    `json:"weekly_wins"`
	BestGroupCFinish string `json:"best_group_c_finish"`
}

func playerToDTO(player user.Player) playerDTO {
	return playerDTO{
		ID:               player.ID,
		Name:             player.Name,
		Email:            player.Email,
		IsAdmin:          player.IsAdmin,
		GroupAPoints:     player.GroupAPoints,
		GroupBPoints:     player.GroupBPoints,
		GroupCPoints:     player.GroupCPoints,
		BonusPoints:      player.BonusPoints,
		TotalPoints:      player.TotalPoints,
		WeeklyWins:       player.WeeklyWins,
		BestGroupCFinish: player.BestGroupCFinish,
	}
}

func (h *Handler) RegisterUser(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RegisterUser")
	defer span.End()

	var req registerUserRequest
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	player, err := h.userService.Register(ctx, usecase.RegisterUserInput{
		UserID:  req.UserID,
		Name:    req.Name,
		Email:   req.Email,
		IsAdmin: req.IsAdmin,
		DriverA: req.DriverA,
		DriverB: req.DriverB,
		DriverC: req.DriverC,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "register user failed", "user_id", req.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, playerToDTO(player))
}

func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListUsers")
	defer span.End()

	players, err := h.userService.ListPlayers(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	items := make([]playerDTO, 0, len(players))
	for _, player := range players {
		items = append(items, playerToDTO(player))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

type createRaceRequest struct {
	ID           string    `json:"id" validate:"required,max=64"`
	Name         string    `json:"name" validate:"required,max=100"`
	Circuit      string    `json:"circuit" validate:"required,max=120"`
	Season       int       `json:"season" validate:"required,gte=2020"`
	QualifyingAt time.Time `json:"qualifying_at" validate:"required"`
	StartsAt     time.Time `json:"starts_at" validate:"required"`
}

func (h *Handler) CreateRace(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateRace")
	defer span.End()

	var req createRaceRequest
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.raceService.CreateRace(ctx, usecase.CreateRaceInput{
		ID:           req.ID,
		Name:         req.Name,
		Circuit:      req.Circuit,
		Season:       req.Season,
		QualifyingAt: req.QualifyingAt,
		StartsAt:     req.StartsAt,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "create race failed", "race_id", req.ID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, raceToDTO(item))
}

func (h *Handler) LockRace(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.LockRace")
	defer span.End()

	raceID := r.PathValue("raceID")
	if err := h.ingestionService.LockRace(ctx, raceID); err != nil {
		h.logger.WarnContext(ctx, "lock race failed", "race_id", raceID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"race_id": raceID, "status": "locked"})
}

type recordResultRequest struct {
	Entries []struct {
		DriverID    int    `json:"driver_id" validate:"required,gt=0"`
		Position    int    `json:"position" validate:"required,gt=0"`
		BonusPoints int    `json:"bonus_points" validate:"gte=0"`
		BonusReason string `json:"bonus_reason" validate:"omitempty,max=100"`
	} `json:"entries" validate:"required,min=1,dive"`
	PredictionOutcomes []struct {
		PredictionID string `json:"prediction_id" validate:"required"`
		Correct      bool   `json:"correct"`
	} `json:"prediction_outcomes" validate:"omitempty,dive"`
}

func (h *Handler) RecordRaceResult(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RecordRaceResult")
	defer span.End()

	raceID := r.PathValue("raceID")

	var req recordResultRequest
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	input := usecase.RecordResultInput{RaceID: raceID}
	for _, entry := range req.Entries {
		input.Entries = append(input.Entries, usecase.ResultEntryInput{
			DriverID:    entry.DriverID,
			Position:    entry.Position,
			BonusPoints: entry.BonusPoints,
			BonusReason: entry.BonusReason,
		})
	}
	for _, outcome := range req.PredictionOutcomes {
		input.PredictionOutcomes = append(input.PredictionOutcomes, usecase.PredictionOutcomeInput{
			PredictionID: outcome.PredictionID,
			Correct:      outcome.Correct,
		})
	}

	result, err := h.ingestionService.RecordResult(ctx, input)
	if err != nil {
		h.logger.WarnContext(ctx, "record race result failed", "race_id", raceID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, resultToDTO(result))
}

type settlePredictionRequest struct {
	Correct bool `json:"correct"`
}

func (h *Handler) SettlePrediction(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SettlePrediction")
	defer span.End()

	predictionID := r.PathValue("predictionID")

	var req settlePredictionRequest
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}

	item, err := h.predictionService.Settle(ctx, predictionID, req.Correct)
	if err != nil {
		h.logger.WarnContext(ctx, "settle prediction failed", "prediction_id", predictionID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, predictionToDTO(item))
}
