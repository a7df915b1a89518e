package postgres

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"

	"github.com/f1mates/league-api/internal/platform/resilience"
)

func TestMarkTransient(t *testing.T) {
	cases := []struct {
		name      string
		err       error
		transient bool
	}{
		{"nil", nil, false},
		{"connection failure class", &pq.Error{Code: "08006"}, true},
		{"serialization failure", &pq.Error{Code: "40001"}, true},
		{"deadlock detected", &pq.Error{Code: "40P01"}, true},
		{"closed connection", sql.ErrConnDone, true},
		{"wrapped closed connection", fmt.Errorf("exec: %w", sql.ErrConnDone), true},
		{"unique violation", &pq.Error{Code: "23505"}, false},
		{"no rows", sql.ErrNoRows, false},
		{"plain error", errors.New("boom"), false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := markTransient(tc.err)
			if tc.err == nil {
				if got != nil {
					t.Fatalf("nil input produced %v", got)
				}
				return
			}
			if resilience.IsTransient(got) != tc.transient {
				t.Fatalf("transient=%v want=%v for %v", resilience.IsTransient(got), tc.transient, tc.err)
			}
			if !errors.Is(got, tc.err) && !errors.As(got, new(*pq.Error)) {
				t.Fatalf("original error lost: %v", got)
			}
		})
	}
}

func TestIsNotFound(t *testing.T) {
	if !isNotFound(sql.ErrNoRows) {
		t.Fatalf("sql.ErrNoRows not detected")
	}
	if !isNotFound(fmt.Errorf("get: %w", sql.ErrNoRows)) {
		t.Fatalf("wrapped sql.ErrNoRows not detected")
	}
	if isNotFound(errors.New("boom")) {
		t.Fatalf("unrelated error detected as not found")
	}
}
