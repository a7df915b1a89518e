package resilience

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"
)

func fastRetryConfig(attempts int) RetryConfig {
	return RetryConfig{
		Attempts:    attempts,
		BaseBackoff: time.Millisecond,
		MaxBackoff:  2 * time.Millisecond,
	}
}

func TestRetrySucceedsAfterTransientFailures(t *testing.T) {
	calls := 0
	err := Retry(t.Context(), fastRetryConfig(3), func(ctx context.Context) error {
		calls++
		if calls < 3 {
			return fmt.Errorf("%w: connection reset", ErrTransient)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("retry failed: %v", err)
	}
	if calls != 3 {
		t.Fatalf("calls=%d want=3", calls)
	}
}

func TestRetryStopsOnNonTransientError(t *testing.T) {
	permanent := errors.New("constraint violation")
	calls := 0
	err := Retry(t.Context(), fastRetryConfig(3), func(ctx context.Context) error {
		calls++
		return permanent
	})
	if !errors.Is(err, permanent) {
		t.Fatalf("err=%v want=%v", err, permanent)
	}
	if calls != 1 {
		t.Fatalf("calls=%d want=1", calls)
	}
}

func TestRetryExhaustsAttempts(t *testing.T) {
	calls := 0
	err := Retry(t.Context(), fastRetryConfig(3), func(ctx context.Context) error {
		calls++
		return fmt.Errorf("%w: still down", ErrTransient)
	})
	if !IsTransient(err) {
		t.Fatalf("err=%v want transient", err)
	}
	if calls != 3 {
		t.Fatalf("calls=%d want=3", calls)
	}
}

func TestRetryHonorsContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(t.Context())
	calls := 0
	err := Retry(ctx, RetryConfig{Attempts: 5, BaseBackoff: 50 * time.Millisecond, MaxBackoff: time.Second}, func(ctx context.Context) error {
		calls++
		cancel()
		return fmt.Errorf("%w: still down", ErrTransient)
	})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err=%v want context.Canceled", err)
	}
	if calls != 1 {
		t.Fatalf("calls=%d want=1", calls)
	}
}

func TestNormalizeRetryConfigAppliesDefaults(t *testing.T) {
	got := NormalizeRetryConfig(RetryConfig{})
	want := DefaultRetryConfig()
	if got != want {
		t.Fatalf("got=%+v want=%+v", got, want)
	}

	partial := NormalizeRetryConfig(RetryConfig{Attempts: 7, BaseBackoff: time.Second})
	if partial.Attempts != 7 || partial.BaseBackoff != time.Second {
		t.Fatalf("explicit values overwritten: %+v", partial)
	}
	if partial.MaxBackoff < partial.BaseBackoff {
		t.Fatalf("max backoff %v below base %v", partial.MaxBackoff, partial.BaseBackoff)
	}
}
