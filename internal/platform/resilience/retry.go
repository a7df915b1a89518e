package resilience

import (
	"context"
	"errors"
	"time"
)

// ErrTransient marks a failure that is safe to retry. Store adapters wrap
// retry-eligible driver errors with it.
var ErrTransient = errors.New("transient failure")

// IsTransient reports whether err is retry-eligible.
func IsTransient(err error) bool {
	return errors.Is(err, ErrTransient)
}

type RetryConfig struct {
	Attempts    int
	BaseBackoff time.Duration
	MaxBackoff  time.Duration
}

func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		Attempts:    3,
		BaseBackoff: 100 * time.Millisecond,
		MaxBackoff:  2 * time.Second,
	}
}

func NormalizeRetryConfig(cfg RetryConfig) RetryConfig {
	defaults := DefaultRetryConfig()
	if cfg.Attempts < 1 {
		cfg.Attempts = defaults.Attempts
	}
	if cfg.BaseBackoff <= 0 {
		cfg.BaseBackoff = defaults.BaseBackoff
	}
	if cfg.MaxBackoff < cfg.BaseBackoff {
		cfg.MaxBackoff = defaults.MaxBackoff
	}
	return cfg
}

// Retry runs fn up to cfg.Attempts times, sleeping with exponential backoff
// between attempts. Non-transient errors abort immediately; the last error is
// returned once attempts are exhausted.
func Retry(ctx context.Context, cfg RetryConfig, fn func(ctx context.Context) error) error {
	cfg = NormalizeRetryConfig(cfg)

	backoff := cfg.BaseBackoff
	var lastErr error
	for attempt := 1; attempt <= cfg.Attempts; attempt++ {
		lastErr = fn(ctx)
		if lastErr == nil {
			return nil
		}
		if !IsTransient(lastErr) {
			return lastErr
		}
		if attempt == cfg.Attempts {
			break
		}

		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}

		backoff *= 2
		if backoff > cfg.MaxBackoff {
			backoff = cfg.MaxBackoff
		}
	}

	return lastErr
}
