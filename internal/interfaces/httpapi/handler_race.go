package httpapi

import (
	"net/http"
	"time"

	"github.com/f1mates/league-api/internal/domain/race"
)

type raceDTO struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Circuit      string    `json:"circuit"`
	Season       int       `json:"season"`
	QualifyingAt time.Time `json:"qualifying_at"`
	StartsAt     time.Time `json:"starts_at"`
}

func raceToDTO(item race.Race) raceDTO {
	return raceDTO{
		ID:           item.ID,
		Name:         item.Name,
		Circuit:      item.Circuit,
		Season:       item.Season,
		QualifyingAt: item.QualifyingAt,
		StartsAt:     item.StartsAt,
	}
}

type resultEntryDTO struct {
	DriverID    int    `json:"driver_id"`
	Position    int    `json:"position"`
	BasePoints  int    `json:"base_points"`
	BonusPoints int    `json:"bonus_points"`
	BonusReason string `json:"bonus_reason,omitempty"`
}

type raceResultDTO struct {
	RaceID     string           `json:"race_id"`
	Entries    []resultEntryDTO `json:"entries"`
	RecordedAt time.Time        `json:"recorded_at"`
}

func resultToDTO(item race.Result) raceResultDTO {
	entries := make([]resultEntryDTO, 0, len(item.Entries))
	for _, entry := range item.Entries {
		entries = append(entries, resultEntryDTO{
			DriverID:    entry.DriverID,
			Position:    entry.Position,
			BasePoints:  entry.BasePoints,
			BonusPoints: entry.BonusPoints,
			BonusReason: entry.BonusReason,
		})
	}
	return raceResultDTO{
		RaceID:     item.RaceID,
		Entries:    entries,
		RecordedAt: item.RecordedAt,
	}
}

func (h *Handler) ListRaces(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListRaces")
	defer span.End()

	races, err := h.raceService.ListRaces(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list races failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]raceDTO, 0, len(races))
	for _, item := range races {
		items = append(items, raceToDTO(item))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetRace(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetRace")
	defer span.End()

	item, err := h.raceService.GetRace(ctx, r.PathValue("raceID"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, raceToDTO(item))
}

func (h *Handler) GetRaceResult(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetRaceResult")
	defer span.End()

	item, err := h.raceService.GetResult(ctx, r.PathValue("raceID"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, resultToDTO(item))
}
