package race

import (
	"testing"
	"time"
)

func TestBasePointsForPosition(t *testing.T) {
	cases := []struct {
		position int
		want     int
	}{
		{1, 25},
		{2, 18},
		{3, 15},
		{4, 12},
		{5, 10},
		{6, 8},
		{7, 6},
		{8, 4},
		{9, 2},
		{10, 1},
		{11, 0},
		{20, 0},
		{0, 0},
		{-3, 0},
	}
	for _, tc := range cases {
		if got := BasePointsForPosition(tc.position); got != tc.want {
			t.Fatalf("position %d: got=%d want=%d", tc.position, got, tc.want)
		}
	}
}

func TestResultValidateBasic(t *testing.T) {
	base := Result{
		RaceID: "bahrain-2025",
		Entries: []DriverResult{
			{DriverID: 1, Position: 1, BasePoints: 25},
			{DriverID: 2, Position: 2, BasePoints: 18},
		},
		RecordedAt: time.Now(),
	}
	if err := base.ValidateBasic(); err != nil {
		t.Fatalf("valid result rejected: %v", err)
	}

	dupDriver := base
	dupDriver.Entries = []DriverResult{
		{DriverID: 1, Position: 1},
		{DriverID: 1, Position: 2},
	}
	if err := dupDriver.ValidateBasic(); err == nil {
		t.Fatalf("duplicate driver accepted")
	}

	dupPosition := base
	dupPosition.Entries = []DriverResult{
		{DriverID: 1, Position: 1},
		{DriverID: 2, Position: 1},
	}
	if err := dupPosition.ValidateBasic(); err == nil {
		t.Fatalf("duplicate position accepted")
	}

	empty := Result{RaceID: "bahrain-2025"}
	if err := empty.ValidateBasic(); err == nil {
		t.Fatalf("empty entries accepted")
	}
}

func TestResultEntryForDriver(t *testing.T) {
	result := Result{
		RaceID: "bahrain-2025",
		Entries: []DriverResult{
			{DriverID: 1, Position: 1, BasePoints: 25},
			{DriverID: 7, Position: 4, BasePoints: 12, BonusPoints: 1, BonusReason: "fastest lap"},
		},
	}

	entry, found := result.EntryForDriver(7)
	if !found {
		t.Fatalf("driver 7 not found")
	}
	if entry.Position != 4 || entry.BasePoints != 12 || entry.BonusPoints != 1 {
		t.Fatalf("unexpected entry: %+v", entry)
	}

	if _, found := result.EntryForDriver(99); found {
		t.Fatalf("unknown driver reported as found")
	}
}
