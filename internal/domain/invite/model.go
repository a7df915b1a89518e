package invite

import (
	"fmt"
	"time"
)

type Status string

const (
	StatusPending  Status = "pending"
	StatusAccepted Status = "accepted"
)

// Invitation is one outbound league invite. The record is kept even when the
// email delivery fails.
type Invitation struct {
	ID         string
	SenderID   string
	SenderName string
	Email      string
	Code       string
	Status     Status
	CreatedAt  time.Time
}

func (i Invitation) ValidateBasic() error {
	if i.ID == "" {
		return fmt.Errorf("invitation id is required")
	}
	if i.SenderID == "" {
		return fmt.Errorf("sender id is required")
	}
	if i.Email == "" {
		return fmt.Errorf("receiver email is required")
	}
	if i.Code == "" {
		return fmt.Errorf("invite code is required")
	}
	return nil
}
