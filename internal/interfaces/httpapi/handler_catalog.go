package httpapi

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/f1mates/league-api/internal/domain/driver"
	"github.com/f1mates/league-api/internal/usecase"
)

type driverDTO struct {
	ID     int    `json:"id"`
	Name   string `json:"name"`
	Team   string `json:"team"`
	Tier   string `json:"tier"`
	Locked bool   `json:"locked"`
	Points int    `json:"points"`
}

func driverToDTO(d driver.Driver) driverDTO {
	return driverDTO{
		ID:     d.ID,
		Name:   d.Name,
		Team:   d.Team,
		Tier:   string(d.Tier),
		Locked: d.Locked,
		Points: d.Points,
	}
}

func (h *Handler) ListDrivers(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListDrivers")
	defer span.End()

	drivers, err := h.catalogService.ListDrivers(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list drivers failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]driverDTO, 0, len(drivers))
	for _, d := range drivers {
		items = append(items, driverToDTO(d))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetDriver(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetDriver")
	defer span.End()

	driverID, err := strconv.Atoi(r.PathValue("driverID"))
	if err != nil {
		writeError(ctx, w, fmt.Errorf("%w: driver id must be numeric", usecase.ErrInvalidInput))
		return
	}

	d, err := h.catalogService.GetDriver(ctx, driverID)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, driverToDTO(d))
}
