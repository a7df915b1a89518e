package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/f1mates/league-api/internal/domain/driver"
	"github.com/f1mates/league-api/internal/domain/roster"
	"github.com/f1mates/league-api/internal/domain/user"
	"github.com/f1mates/league-api/internal/platform/logging"
)

// Default draft for a fresh account: the first driver of each tier.
const (
	defaultTierADriver = 1  // Verstappen
	defaultTierBDriver = 7  // Albon
	defaultTierCDriver = 13 // Tsunoda
)

type RegisterUserInput struct {
	UserID  string
	Name    string
	Email   string
	IsAdmin bool
	// Optional explicit draft. Zero values fall back to the default
	// assignment above.
	DriverA int
	DriverB int
	DriverC int
}

// UserService creates accounts and serves profiles. Registration seeds the
// zeroed scoring document and the initial roster in one flow.
type UserService struct {
	userRepo   user.Repository
	rosterRepo roster.Repository
	driverRepo driver.Repository
	logger     *logging.Logger
	now        func() time.Time
}

func NewUserService(
	userRepo user.Repository,
	rosterRepo roster.Repository,
	driverRepo driver.Repository,
	logger *logging.Logger,
) *UserService {
	if logger == nil {
		logger = logging.Default()
	}
	return &UserService{
		userRepo:   userRepo,
		rosterRepo: rosterRepo,
		driverRepo: driverRepo,
		logger:     logger,
		now:        time.Now,
	}
}

func (s *UserService) Register(ctx context.Context, input RegisterUserInput) (user.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.UserService.Register")
	defer span.End()

	input.UserID = strings.TrimSpace(input.UserID)
	input.Name = strings.TrimSpace(input.Name)
	input.Email = strings.TrimSpace(strings.ToLower(input.Email))
	if input.UserID == "" || input.Name == "" || input.Email == "" {
		return user.Player{}, fmt.Errorf("%w: user_id, name and email are required", ErrInvalidInput)
	}

	now := s.now().UTC()
	player := user.Player{
		ID:               input.UserID,
		Name:             input.Name,
		Email:            input.Email,
		IsAdmin:          input.IsAdmin,
		BestGroupCFinish: user.NoGroupCFinish,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	created, err := s.userRepo.Create(ctx, player)
	if err != nil {
		return user.Player{}, fmt.Errorf("create player: %w", err)
	}
	if !created {
		return user.Player{}, fmt.Errorf("%w: user %s", ErrAlreadyExists, input.UserID)
	}

	assignment, err := s.resolveInitialAssignment(ctx, input)
	if err != nil {
		return user.Player{}, err
	}

	initial := roster.Roster{
		UserID:         input.UserID,
		DriverA:        assignment[driver.TierA],
		DriverB:        assignment[driver.TierB],
		DriverC:        assignment[driver.TierC],
		SwapsRemaining: roster.InitialSwapBudget,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	rosterCreated, err := s.rosterRepo.Create(ctx, initial)
	if err != nil {
		return user.Player{}, fmt.Errorf("create initial roster: %w", err)
	}
	if !rosterCreated {
		// Account document existed without a roster would be the only path
		// here; the player create above already guards duplicates.
		s.logger.WarnContext(ctx, "roster already present at registration", "user_id", input.UserID)
	}

	s.logger.InfoContext(ctx, "player registered",
		"user_id", input.UserID,
		"driver_a", initial.DriverA,
		"driver_b", initial.DriverB,
		"driver_c", initial.DriverC,
	)
	return player, nil
}

func (s *UserService) resolveInitialAssignment(ctx context.Context, input RegisterUserInput) (map[driver.Tier]int, error) {
	assignment := map[driver.Tier]int{
		driver.TierA: defaultTierADriver,
		driver.TierB: defaultTierBDriver,
		driver.TierC: defaultTierCDriver,
	}
	explicit := map[driver.Tier]int{
		driver.TierA: input.DriverA,
		driver.TierB: input.DriverB,
		driver.TierC: input.DriverC,
	}

	for tier, driverID := range explicit {
		if driverID == 0 {
			continue
		}
		item, exists, err := s.driverRepo.GetByID(ctx, driverID)
		if err != nil {
			return nil, fmt.Errorf("get driver for draft: %w", err)
		}
		if !exists || item.Tier != tier {
			return nil, fmt.Errorf("%w: driver %d is not a tier %s driver", ErrInvalidInput, driverID, tier)
		}
		assignment[tier] = driverID
	}
	return assignment, nil
}

func (s *UserService) GetProfile(ctx context.Context, userID string) (user.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.UserService.GetProfile")
	defer span.End()

	userID = strings.TrimSpace(userID)
	if userID == "" {
		return user.Player{}, fmt.Errorf("%w: user_id is required", ErrInvalidInput)
	}

	player, exists, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return user.Player{}, fmt.Errorf("get player: %w", err)
	}
	if !exists {
		return user.Player{}, fmt.Errorf("%w: user %s", ErrNotFound, userID)
	}
	return player, nil
}

func (s *UserService) ListPlayers(ctx context.Context) ([]user.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.UserService.ListPlayers")
	defer span.End()

	players, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list players: %w", err)
	}
	return players, nil
}

// IsAdmin reports whether the user exists and carries the admin flag.
func (s *UserService) IsAdmin(ctx context.Context, userID string) (bool, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.UserService.IsAdmin")
	defer span.End()

	player, exists, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return false, fmt.Errorf("get player for admin check: %w", err)
	}
	return exists && player.IsAdmin, nil
}
