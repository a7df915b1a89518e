package postgres

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/f1mates/league-api/internal/platform/resilience"
)

func isNotFound(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

// markTransient tags connection-class and concurrency-class driver errors so
// callers can retry them. Everything else passes through unchanged.
func markTransient(err error) error {
	if err == nil {
		return nil
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch {
		case pqErr.Code.Class() == "08": // connection exceptions
			return fmt.Errorf("%w: %w", resilience.ErrTransient, err)
		case pqErr.Code == "40001" || pqErr.Code == "40P01": // serialization failure, deadlock
			return fmt.Errorf("%w: %w", resilience.ErrTransient, err)
		}
	}
	if errors.Is(err, sql.ErrConnDone) {
		return fmt.Errorf("%w: %w", resilience.ErrTransient, err)
	}

	return err
}
