package httpapi

import (
	"fmt"
	"net/http"
	"time"

	sonic "github.com/bytedance/sonic"

	"github.com/f1mates/league-api/internal/domain/roster"
	"github.com/f1mates/league-api/internal/domain/swap"
	"github.com/f1mates/league-api/internal/usecase"
)

type rosterDTO struct {
	UserID         string    `json:"user_id"`
	DriverA        int       `json:"driver_a"`
	DriverB        int       `json:"driver_b"`
	DriverC        int       `json:"driver_c"`
	SwapsRemaining int       `json:"swaps_remaining"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func rosterToDTO(item roster.Roster) rosterDTO {
	return rosterDTO{
		UserID:         item.UserID,
		DriverA:        item.DriverA,
		DriverB:        item.DriverB,
		DriverC:        item.DriverC,
		SwapsRemaining: item.SwapsRemaining,
		UpdatedAt:      item.UpdatedAt,
	}
}

type swapRecordDTO struct {
	ID          string    `json:"id"`
	Tier        string    `json:"tier"`
	OldDriverID int       `json:"old_driver_id"`
	NewDriverID int       `json:"new_driver_id"`
	CreatedAt   time.Time `json:"created_at"`
}

func swapRecordToDTO(record swap.Record) swapRecordDTO {
	return swapRecordDTO{
		ID:          record.ID,
		Tier:        string(record.Tier),
		OldDriverID: record.OldDriverID,
		NewDriverID: record.NewDriverID,
		CreatedAt:   record.CreatedAt,
	}
}

type driverChangeRequest struct {
	NewDriverID int `json:"new_driver_id" validate:"required,gt=0"`
}

func (h *Handler) GetMyRoster(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetMyRoster")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	item, err := h.rosterService.Get(ctx, principal.UserID)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, rosterToDTO(item))
}

func (h *Handler) ListMySwaps(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListMySwaps")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	records, err := h.rosterService.History(ctx, principal.UserID)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	items := make([]swapRecordDTO, 0, len(records))
	for _, record := range records {
		items = append(items, swapRecordToDTO(record))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) SwapGroupB(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SwapGroupB")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	var req driverChangeRequest
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

	item, err := h.swapService.SwapGroupB(ctx, principal.UserID, req.NewDriverID)
	if err != nil {
		h.logger.WarnContext(ctx, "group B swap failed", "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, rosterToDTO(item))
}

func (h *Handler) PickGroupC(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.PickGroupC")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	var req driverChangeRequest
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

	item, err := h.swapService.PickGroupC(ctx, principal.UserID, req.NewDriverID)
	if err != nil {
		h.logger.WarnContext(ctx, "group C pick failed", "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, rosterToDTO(item))
}
