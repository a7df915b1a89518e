package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/f1mates/league-api/internal/domain/invite"
	"github.com/f1mates/league-api/internal/infrastructure/repository/memory"
	idgen "github.com/f1mates/league-api/internal/platform/id"
)

type failingMailer struct {
	calls int
}

func (m *failingMailer) SendInvite(context.Context, invite.Invitation) error {
	m.calls++
	return errors.New("smtp provider down")
}

func newInviteFixture(t *testing.T, mailer InviteMailer) (*InviteService, *memory.UserRepository) {
	t.Helper()

	driverRepo := memory.NewDriverRepository(memory.SeedDrivers())
	userRepo := memory.NewUserRepository()
	rosterRepo := memory.NewRosterRepository()
	inviteRepo := memory.NewInviteRepository()

	userSvc := NewUserService(userRepo, rosterRepo, driverRepo, nil)
	if _, err := userSvc.Register(t.Context(), RegisterUserInput{
		UserID: "user-1",
		Name:   "Alex",
		Email:  "alex@example.com",
	}); err != nil {
		t.Fatalf("register user: %v", err)
	}

	return NewInviteService(inviteRepo, userRepo, mailer, idgen.NewRandomGenerator(), nil), userRepo
}

func TestInviteService_Send(t *testing.T) {
	svc, userRepo := newInviteFixture(t, nil)

	item, err := svc.Send(t.Context(), SendInviteInput{SenderID: "user-1", Email: "Mate@Example.COM"})
	if err != nil {
		t.Fatalf("send failed: %v", err)
	}
	if item.Email != "mate@example.com" {
		t.Fatalf("email not normalized: %s", item.Email)
	}
	if item.Status != invite.StatusPending {
		t.Fatalf("unexpected status: %s", item.Status)
	}
	if item.SenderName != "Alex" {
		t.Fatalf("sender name not resolved: %s", item.SenderName)
	}
	if item.Code == "" {
		t.Fatalf("invite code missing")
	}

	sender, _, _ := userRepo.GetByID(t.Context(), "user-1")
	if len(sender.SentInvites) != 1 || sender.SentInvites[0] != "mate@example.com" {
		t.Fatalf("sent invites not recorded: %v", sender.SentInvites)
	}

	sent, err := svc.ListSent(t.Context(), "user-1")
	if err != nil {
		t.Fatalf("list sent failed: %v", err)
	}
	if len(sent) != 1 {
		t.Fatalf("expected 1 sent invitation, got %d", len(sent))
	}
}

func TestInviteService_DuplicateEmailRejected(t *testing.T) {
	svc, _ := newInviteFixture(t, nil)

	if _, err := svc.Send(t.Context(), SendInviteInput{SenderID: "user-1", Email: "mate@example.com"}); err != nil {
		t.Fatalf("first send failed: %v", err)
	}
	_, err := svc.Send(t.Context(), SendInviteInput{SenderID: "user-1", Email: "MATE@example.com"})
	if !errors.Is(err, ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists, got %v", err)
	}
}

func TestInviteService_MailerFailureStillRecords(t *testing.T) {
	mailer := &failingMailer{}
	svc, _ := newInviteFixture(t, mailer)

	item, err := svc.Send(t.Context(), SendInviteInput{SenderID: "user-1", Email: "mate@example.com"})
	if err != nil {
		t.Fatalf("send should survive mailer failure: %v", err)
	}
	if mailer.calls != 1 {
		t.Fatalf("mailer not invoked: calls=%d", mailer.calls)
	}

	sent, err := svc.ListSent(t.Context(), "user-1")
	if err != nil {
		t.Fatalf("list sent failed: %v", err)
	}
	if len(sent) != 1 || sent[0].ID != item.ID {
		t.Fatalf("invitation not recorded after mailer failure: %+v", sent)
	}
}

func TestInviteService_InvalidEmail(t *testing.T) {
	svc, _ := newInviteFixture(t, nil)

	if _, err := svc.Send(t.Context(), SendInviteInput{SenderID: "user-1", Email: "not-an-email"}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}
