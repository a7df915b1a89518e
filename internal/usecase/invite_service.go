package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/f1mates/league-api/internal/domain/invite"
	"github.com/f1mates/league-api/internal/domain/user"
	"github.com/f1mates/league-api/internal/platform/id"
	"github.com/f1mates/league-api/internal/platform/logging"
)

// InviteMailer delivers the invite email. Delivery is best effort: the
// invitation record exists regardless of the outcome.
type InviteMailer interface {
	SendInvite(ctx context.Context, invitation invite.Invitation) error
}

type SendInviteInput struct {
	SenderID string
	Email    string
}

// InviteService issues league invitations.
type InviteService struct {
	inviteRepo invite.Repository
	userRepo   user.Repository
	mailer     InviteMailer
	idGen      id.Generator
	logger     *logging.Logger
	now        func() time.Time
}

func NewInviteService(
	inviteRepo invite.Repository,
	userRepo user.Repository,
	mailer InviteMailer,
	idGen id.Generator,
	logger *logging.Logger,
) *InviteService {
	if logger == nil {
		logger = logging.Default()
	}
	return &InviteService{
		inviteRepo: inviteRepo,
		userRepo:   userRepo,
		mailer:     mailer,
		idGen:      idGen,
		logger:     logger,
		now:        time.Now,
	}
}

// Send creates a pending invitation for an email address not yet invited and
// hands it to the mailer. A mailer failure is logged, not surfaced.
func (s *InviteService) Send(ctx context.Context, input SendInviteInput) (invite.Invitation, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.InviteService.Send")
	defer span.End()

	senderID := strings.TrimSpace(input.SenderID)
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if senderID == "" {
		return invite.Invitation{}, fmt.Errorf("%w: sender_id is required", ErrInvalidInput)
	}
	if email == "" || !strings.Contains(email, "@") {
		return invite.Invitation{}, fmt.Errorf("%w: a valid email is required", ErrInvalidInput)
	}

	sender, exists, err := s.userRepo.GetByID(ctx, senderID)
	if err != nil {
		return invite.Invitation{}, fmt.Errorf("get sender: %w", err)
	}
	if !exists {
		return invite.Invitation{}, fmt.Errorf("%w: user %s", ErrNotFound, senderID)
	}

	if _, exists, err := s.inviteRepo.GetByEmail(ctx, email); err != nil {
		return invite.Invitation{}, fmt.Errorf("check existing invite: %w", err)
	} else if exists {
		return invite.Invitation{}, fmt.Errorf("%w: %s was already invited", ErrAlreadyExists, email)
	}

	inviteID, err := s.idGen.NewID()
	if err != nil {
		return invite.Invitation{}, fmt.Errorf("generate invite id: %w", err)
	}
	code, err := id.NewInviteCode()
	if err != nil {
		return invite.Invitation{}, fmt.Errorf("generate invite code: %w", err)
	}

	item := invite.Invitation{
		ID:         inviteID,
		SenderID:   senderID,
		SenderName: sender.Name,
		Email:      email,
		Code:       code,
		Status:     invite.StatusPending,
		CreatedAt:  s.now().UTC(),
	}
	if err := s.inviteRepo.Create(ctx, item); err != nil {
		return invite.Invitation{}, fmt.Errorf("create invitation: %w", err)
	}
	if err := s.userRepo.AppendSentInvite(ctx, senderID, email); err != nil {
		return invite.Invitation{}, fmt.Errorf("record sent invite: %w", err)
	}

	if s.mailer != nil {
		if err := s.mailer.SendInvite(ctx, item); err != nil {
			s.logger.WarnContext(ctx, "invite email delivery failed",
				"invite_id", item.ID,
				"email", email,
				"error", err.Error(),
			)
		}
	}

	s.logger.InfoContext(ctx, "invitation sent",
		"invite_id", item.ID,
		"sender_id", senderID,
	)
	return item, nil
}

// ListSent returns the invitations a user has issued.
func (s *InviteService) ListSent(ctx context.Context, senderID string) ([]invite.Invitation, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.InviteService.ListSent")
	defer span.End()

	if strings.TrimSpace(senderID) == "" {
		return nil, fmt.Errorf("%w: sender_id is required", ErrInvalidInput)
	}
	items, err := s.inviteRepo.ListBySender(ctx, senderID)
	if err != nil {
		return nil, fmt.Errorf("list invitations: %w", err)
	}
	return items, nil
}
