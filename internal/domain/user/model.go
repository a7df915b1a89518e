package user

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// NoGroupCFinish is the best-Group-C-finish placeholder before a user's
// Group C driver has ever been classified.
const NoGroupCFinish = "N/A"

// Principal is the identity asserted by the auth service for one request.
type Principal struct {
	UserID string
	Email  string
}

// Player is one league member's scoring document.
type Player struct {
	ID               string
	Name             string
	Email            string
	IsAdmin          bool
	GroupAPoints     int
	GroupBPoints     int
	GroupCPoints     int
	BonusPoints      int
	TotalPoints      int
	WeeklyWins       int
	BestGroupCFinish string
	SentInvites      []string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

func (p Player) ValidateBasic() error {
	if p.ID == "" {
		return fmt.Errorf("player id is required")
	}
	if p.Name == "" {
		return fmt.Errorf("player name is required")
	}
	if p.Email == "" {
		return fmt.Errorf("player email is required")
	}
	return nil
}

// CheckTotals verifies the cumulative points invariant.
func (p Player) CheckTotals() error {
	sum := p.GroupAPoints + p.GroupBPoints + p.GroupCPoints + p.BonusPoints
	if p.TotalPoints != sum {
		return fmt.Errorf("total points %d != group sum %d for player %s", p.TotalPoints, sum, p.ID)
	}
	return nil
}

// PointsDelta is one race's incremental contribution to a player's
// cumulative totals. All fields are non-negative.
type PointsDelta struct {
	GroupA int
	GroupB int
	GroupC int
	Bonus  int
}

func (d PointsDelta) Total() int {
	return d.GroupA + d.GroupB + d.GroupC + d.Bonus
}

// FormatFinish renders a classified position as the stored label ("P9").
func FormatFinish(position int) string {
	return "P" + strconv.Itoa(position)
}

// BetterFinish reports whether position improves on the stored best label.
func BetterFinish(current string, position int) bool {
	if position <= 0 {
		return false
	}
	current = strings.TrimSpace(current)
	if current == "" || current == NoGroupCFinish {
		return true
	}
	stored, err := strconv.Atoi(strings.TrimPrefix(current, "P"))
	if err != nil {
		return true
	}
	return position < stored
}
