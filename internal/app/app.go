package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"
	"go.opentelemetry.io/otel/attribute"

	"github.com/f1mates/league-api/internal/config"
	"github.com/f1mates/league-api/internal/domain/driver"
	"github.com/f1mates/league-api/internal/domain/invite"
	"github.com/f1mates/league-api/internal/domain/prediction"
	"github.com/f1mates/league-api/internal/domain/race"
	"github.com/f1mates/league-api/internal/domain/roster"
	"github.com/f1mates/league-api/internal/domain/scoring"
	"github.com/f1mates/league-api/internal/domain/swap"
	"github.com/f1mates/league-api/internal/domain/user"
	"github.com/f1mates/league-api/internal/infrastructure/account/authgate"
	"github.com/f1mates/league-api/internal/infrastructure/mailer"
	cachedrepo "github.com/f1mates/league-api/internal/infrastructure/repository/cache"
	"github.com/f1mates/league-api/internal/infrastructure/repository/memory"
	"github.com/f1mates/league-api/internal/infrastructure/repository/postgres"
	"github.com/f1mates/league-api/internal/interfaces/httpapi"
	basecache "github.com/f1mates/league-api/internal/platform/cache"
	idgen "github.com/f1mates/league-api/internal/platform/id"
	"github.com/f1mates/league-api/internal/platform/logging"
	"github.com/f1mates/league-api/internal/platform/resilience"
	"github.com/f1mates/league-api/internal/usecase"
)

type repositories struct {
	drivers     driver.Repository
	users       user.Repository
	rosters     roster.Repository
	swaps       swap.Repository
	races       race.Repository
	scoring     scoring.Repository
	predictions prediction.Repository
	invites     invite.Repository
}

func NewHTTPServer(cfg config.Config, logger *logging.Logger, httpLogger *slog.Logger) (*http.Server, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if httpLogger == nil {
		httpLogger = slog.Default()
	}

	repos, err := buildRepositories(cfg, logger)
	if err != nil {
		return nil, err
	}

	if cfg.CacheEnabled {
		store := basecache.NewStore(cfg.CacheTTL)
		repos.drivers = cachedrepo.NewDriverRepository(repos.drivers, store)
		repos.races = cachedrepo.NewRaceRepository(repos.races, store)
	}

	scoringRetry := resilience.NormalizeRetryConfig(resilience.RetryConfig{
		Attempts:    cfg.ScoringRetryAttempts,
		BaseBackoff: cfg.ScoringRetryBaseBackoff,
	})

	generator := idgen.NewRandomGenerator()

	catalogSvc := usecase.NewCatalogService(repos.drivers)
	raceSvc := usecase.NewRaceService(repos.races)
	leaderboardSvc := usecase.NewLeaderboardService(repos.users)
	rosterSvc := usecase.NewRosterService(repos.rosters, repos.drivers, repos.swaps)
	swapSvc := usecase.NewSwapService(repos.rosters, repos.drivers, generator, logger)
	userSvc := usecase.NewUserService(repos.users, repos.rosters, repos.drivers, logger)
	scoringSvc := usecase.NewScoringService(
		repos.users,
		repos.drivers,
		repos.races,
		repos.predictions,
		repos.scoring,
		logger,
		cfg.ScoringWorkers,
		scoringRetry,
	)
	ingestionSvc := usecase.NewIngestionService(repos.races, repos.rosters, repos.scoring, scoringSvc, logger)
	predictionSvc := usecase.NewPredictionService(repos.predictions, repos.races, repos.users, generator, logger)
	inviteSvc := usecase.NewInviteService(repos.invites, repos.users, buildMailer(cfg, httpLogger), generator, logger)
	dashboardSvc := usecase.NewDashboardService(repos.users, repos.rosters, repos.drivers, repos.predictions, repos.races)

	authClient := authgate.NewClient(
		&http.Client{Timeout: cfg.AuthGateTimeout},
		cfg.AuthGateBaseURL,
		cfg.AuthGateIntrospectPath,
		httpLogger,
	)

	handler := httpapi.NewHandler(
		catalogSvc,
		raceSvc,
		leaderboardSvc,
		rosterSvc,
		swapSvc,
		userSvc,
		ingestionSvc,
		predictionSvc,
		inviteSvc,
		dashboardSvc,
		httpLogger,
	)
	router := httpapi.NewRouter(handler, authClient, userSvc, httpLogger, cfg.CORSAllowedOrigins)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	if server.Addr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	return server, nil
}

func buildRepositories(cfg config.Config, logger *logging.Logger) (repositories, error) {
	if strings.TrimSpace(cfg.DBURL) == "" {
		logger.Info("storage backend", "kind", "memory")
		rosterRepo := memory.NewRosterRepository()
		return repositories{
			drivers:     memory.NewDriverRepository(memory.SeedDrivers()),
			users:       memory.NewUserRepository(),
			rosters:     rosterRepo,
			swaps:       rosterRepo,
			races:       memory.NewRaceRepository(memory.SeedRaces()),
			scoring:     memory.NewScoringRepository(),
			predictions: memory.NewPredictionRepository(),
			invites:     memory.NewInviteRepository(),
		}, nil
	}

	dbURL := normalizeDBURL(cfg.DBURL, cfg.DBDisablePreparedBinary)
	db, err := otelsqlx.Open("postgres", dbURL,
		otelsql.WithAttributes(
			attribute.String("db.system", "postgresql"),
			attribute.String("db.name", dbNameFromURL(cfg.DBURL)),
		),
		otelsql.WithQueryFormatter(formatDBQueryForTrace),
	)
	if err != nil {
		return repositories{}, fmt.Errorf("open database: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		return repositories{}, fmt.Errorf("ping database: %w", err)
	}

	seedCtx, cancelSeed := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancelSeed()
	if err := postgres.BootstrapSeed(seedCtx, db); err != nil {
		return repositories{}, fmt.Errorf("bootstrap seed: %w", err)
	}

	logger.Info("storage backend", "kind", "postgres", "db_name", dbNameFromURL(cfg.DBURL))
	rosterRepo := postgres.NewRosterRepository(db)
	return repositories{
		drivers:     postgres.NewDriverRepository(db),
		users:       postgres.NewUserRepository(db),
		rosters:     rosterRepo,
		swaps:       rosterRepo,
		races:       postgres.NewRaceRepository(db),
		scoring:     postgres.NewScoringRepository(db),
		predictions: postgres.NewPredictionRepository(db),
		invites:     postgres.NewInviteRepository(db),
	}, nil
}

func buildMailer(cfg config.Config, logger *slog.Logger) usecase.InviteMailer {
	if !cfg.MailerEnabled {
		return logOnlyMailer{logger: logger}
	}

	return mailer.NewClient(mailer.ClientConfig{
		BaseURL:   cfg.MailerBaseURL,
		Token:     cfg.MailerToken,
		FromName:  cfg.MailerFromName,
		FromEmail: cfg.MailerFromEmail,
		Timeout:   cfg.MailerTimeout,
		Retry: resilience.RetryConfig{
			Attempts: cfg.MailerRetries,
		},
		Breaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.MailerCircuitEnabled,
			FailureThreshold: cfg.MailerCircuitFailureCount,
			OpenTimeout:      cfg.MailerCircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.MailerCircuitHalfOpenMaxReq,
		},
	}, logger)
}

// logOnlyMailer stands in when no mail provider is configured. Invitations
// are still recorded; the email just shows up in the logs.
type logOnlyMailer struct {
	logger *slog.Logger
}

func (m logOnlyMailer) SendInvite(ctx context.Context, invitation invite.Invitation) error {
	m.logger.InfoContext(ctx, "invite email skipped, mailer disabled",
		"invite_id", invitation.ID,
		"email", invitation.Email,
		"code", invitation.Code,
	)
	return nil
}
