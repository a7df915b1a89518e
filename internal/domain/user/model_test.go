package user

import "testing"

func TestFormatFinish(t *testing.T) {
	if got := FormatFinish(9); got != "P9" {
		t.Fatalf("got=%q want=P9", got)
	}
	if got := FormatFinish(1); got != "P1" {
		t.Fatalf("got=%q want=P1", got)
	}
}

func TestBetterFinish(t *testing.T) {
	cases := []struct {
		name     string
		current  string
		position int
		want     bool
	}{
		{"no prior finish", NoGroupCFinish, 12, true},
		{"empty prior finish", "", 12, true},
		{"improves on stored", "P9", 5, true},
		{"equal to stored", "P9", 9, false},
		{"worse than stored", "P9", 14, false},
		{"unparseable stored label", "DNF", 8, true},
		{"unclassified position", "P9", 0, false},
		{"negative position", "P9", -1, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := BetterFinish(tc.current, tc.position); got != tc.want {
				t.Fatalf("BetterFinish(%q, %d)=%v want=%v", tc.current, tc.position, got, tc.want)
			}
		})
	}
}

func TestPlayerCheckTotals(t *testing.T) {
	player := Player{
		ID:           "user-1",
		GroupAPoints: 25,
		GroupBPoints: 12,
		GroupCPoints: 1,
		BonusPoints:  10,
		TotalPoints:  48,
	}
	if err := player.CheckTotals(); err != nil {
		t.Fatalf("consistent totals rejected: %v", err)
	}

	player.TotalPoints = 50
	if err := player.CheckTotals(); err == nil {
		t.Fatalf("inconsistent totals accepted")
	}
}

func TestPointsDeltaTotal(t *testing.T) {
	delta := PointsDelta{GroupA: 25, GroupB: 8, GroupC: 2, Bonus: 10}
	if got := delta.Total(); got != 45 {
		t.Fatalf("got=%d want=45", got)
	}
}
