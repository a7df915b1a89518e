package prediction

import (
	"fmt"
	"time"
)

type Result string

const (
	ResultPending   Result = "pending"
	ResultCorrect   Result = "correct"
	ResultIncorrect Result = "incorrect"
)

// CorrectPoints is the flat bonus for a correct prediction.
const CorrectPoints = 10

// Prediction is one user's free-text call for a race. It starts pending and
// transitions exactly once to correct or incorrect.
type Prediction struct {
	ID        string
	UserID    string
	RaceID    string
	Text      string
	Result    Result
	Points    int
	CreatedAt time.Time
	SettledAt *time.Time
}

func (p Prediction) ValidateBasic() error {
	if p.ID == "" {
		return fmt.Errorf("prediction id is required")
	}
	if p.UserID == "" {
		return fmt.Errorf("user id is required")
	}
	if p.RaceID == "" {
		return fmt.Errorf("race id is required")
	}
	if p.Text == "" {
		return fmt.Errorf("prediction text is required")
	}
	return nil
}
