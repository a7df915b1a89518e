package httpapi

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/f1mates/league-api/internal/usecase"
)

type Handler struct {
	catalogService     *usecase.CatalogService
	raceService        *usecase.RaceService
	leaderboardService *usecase.LeaderboardService
	rosterService      *usecase.RosterService
	swapService        *usecase.SwapService
	userService        *usecase.UserService
	ingestionService   *usecase.IngestionService
	predictionService  *usecase.PredictionService
	inviteService      *usecase.InviteService
	dashboardService   *usecase.DashboardService
	logger             *slog.Logger
	validator          *validator.Validate
}

func NewHandler(
	catalogService *usecase.CatalogService,
	raceService *usecase.RaceService,
	leaderboardService *usecase.LeaderboardService,
	rosterService *usecase.RosterService,
	swapService *usecase.SwapService,
	userService *usecase.UserService,
	ingestionService *usecase.IngestionService,
	predictionService *usecase.PredictionService,
	inviteService *usecase.InviteService,
	dashboardService *usecase.DashboardService,
	logger *slog.Logger,
) *Handler {
	if logger == nil {
		logger = slog.Default()
	}

	return &Handler{
		catalogService:     catalogService,
		raceService:        raceService,
		leaderboardService: leaderboardService,
		rosterService:      rosterService,
		swapService:        swapService,
		userService:        userService,
		ingestionService:   ingestionService,
		predictionService:  predictionService,
		inviteService:      inviteService,
		dashboardService:   dashboardService,
		logger:             logger,
		validator:          validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}
