package httpapi

import (
	"fmt"
	"net/http"
	"time"

	sonic "github.com/bytedance/sonic"

	"github.com/f1mates/league-api/internal/domain/prediction"
	"github.com/f1mates/league-api/internal/usecase"
)

type predictionDTO struct {
	ID        string     `json:"id"`
	RaceID    string     `json:"race_id"`
	Text      string     `json:"text"`
	Result    string     `json:"result"`
	Points    int        `json:"points"`
	CreatedAt time.Time  `json:"created_at"`
	SettledAt *time.Time `json:"settled_at,omitempty"`
}

func predictionToDTO(item prediction.Prediction) predictionDTO {
	return predictionDTO{
		ID:        item.ID,
		RaceID:    item.RaceID,
		Text:      item.Text,
		Result:    string(item.Result),
		Points:    item.Points,
		CreatedAt: item.CreatedAt,
		SettledAt: item.SettledAt,
	}
}

type submitPredictionRequest struct {
	RaceID string `json:"race_id" validate:"required"`
	Text   string `json:"text" validate:"required,max=280"`
}

func (h *Handler) ListMyPredictions(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListMyPredictions")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	predictions, err := h.predictionService.ListMine(ctx, principal.UserID)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	items := make([]predictionDTO, 0, len(predictions))
	for _, item := range predictions {
		items = append(items, predictionToDTO(item))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) SubmitPrediction(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SubmitPrediction")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	var req submitPredictionRequest
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

	item, err := h.predictionService.Submit(ctx, usecase.SubmitPredictionInput{
		UserID: principal.UserID,
		RaceID: req.RaceID,
		Text:   req.Text,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "submit prediction failed", "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, predictionToDTO(item))
}
