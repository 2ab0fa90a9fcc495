package infra

import (
	"context"
	"errors"
	"testing"
	"time"
)

var errTransient = errors.New("transient")

func TestRetryValue_SucceedsAfterFailures(t *testing.T) {
	ctx := context.Background()
	attempts := 0
	recoveries := 0

	op := func(context.Context) (int, error) {
		attempts++
		if attempts <= 2 {
			return 0, errTransient
		}
		return 42, nil
	}
	rec := func(context.Context) error {
		recoveries++
		return nil
	}

	got, err := RetryValue(ctx, op, func(error) bool { return true }, rec, 3, time.Millisecond)
	if err != nil {
		t.Fatalf("RetryValue returned error: %v", err)
	}
	if got != 42 {
		t.Errorf("result = %d, want 42", got)
	}
	if attempts != 3 {
		t.Errorf("attempts = %d, want 3", attempts)
	}
	if recoveries != 2 {
		t.Errorf("recoveries = %d, want 2 (exactly one per failed attempt)", recoveries)
	}
}

func TestRetryValue_ExhaustsBudget(t *testing.T) {
	ctx := context.Background()
	attempts := 0

	op := func(context.Context) (int, error) {
		attempts++
		return 0, errTransient
	}

	_, err := RetryValue(ctx, op, func(error) bool { return true }, nil, 3, time.Millisecond)
	if !errors.Is(err, errTransient) {
		t.Fatalf("error = %v, want %v", err, errTransient)
	}
	// budget of 3 retries means 4 total attempts
	if attempts != 4 {
		t.Errorf("attempts = %d, want 4", attempts)
	}
}

func TestRetryValue_NonRetryableFailsImmediately(t *testing.T) {
	ctx := context.Background()
	attempts := 0
	recoveries := 0

	op := func(context.Context) (int, error) {
		attempts++
		return 0, errors.New("insufficient funds")
	}
	rec := func(context.Context) error {
		recoveries++
		return nil
	}

	_, err := RetryValue(ctx, op, func(error) bool { return false }, rec, 3, time.Millisecond)
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if attempts != 1 {
		t.Errorf("attempts = %d, want 1", attempts)
	}
	if recoveries != 0 {
		t.Errorf("recoveries = %d, want 0", recoveries)
	}
}

func TestRetryValue_RecoveryFailureAborts(t *testing.T) {
	ctx := context.Background()
	recErr := errors.New("reconnect failed")
	attempts := 0

	op := func(context.Context) (int, error) {
		attempts++
		return 0, errTransient
	}
	rec := func(context.Context) error { return recErr }

	_, err := RetryValue(ctx, op, func(error) bool { return true }, rec, 3, time.Millisecond)
	if !errors.Is(err, recErr) {
		t.Fatalf("error = %v, want recovery error", err)
	}
	if attempts != 1 {
		t.Errorf("attempts = %d, want 1 (no retry after failed recovery)", attempts)
	}
}

func TestRetry_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := Retry(ctx, func(context.Context) error { return errTransient },
		func(error) bool { return true }, nil, 3, time.Hour)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("error = %v, want context.Canceled", err)
	}
}
