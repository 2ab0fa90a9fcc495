package infra

import (
	"context"
	"time"
)

const (
	// Defaults for remote marketplace calls.
	DefaultMaxRetries = 3
	DefaultRetryDelay = 1 * time.Second
)

// RetryValue invokes op, retrying when retryable accepts the failure. Before
// each retry the recover action runs to completion; its failure aborts the
// whole call. The delay between attempts is fixed, not backoff-increasing.
// A failure the predicate rejects propagates immediately; once the retry
// budget is exhausted the last failure propagates.
func RetryValue[T any](
	ctx context.Context,
	op func(context.Context) (T, error),
	retryable func(error) bool,
	recover func(context.Context) error,
	maxRetries int,
	delay time.Duration,
) (T, error) {
	var zero T
	if maxRetries < 0 {
		maxRetries = DefaultMaxRetries
	}
	if delay <= 0 {
		delay = DefaultRetryDelay
	}

	for attempt := 0; ; attempt++ {
		v, err := op(ctx)
		if err == nil {
			return v, nil
		}
		if !retryable(err) || attempt >= maxRetries {
			return zero, err
		}

		if recover != nil {
			if rerr := recover(ctx); rerr != nil {
				return zero, rerr
			}
		}

		select {
		case <-ctx.Done():
			return zero, ctx.Err()
		case <-time.After(delay):
		}
	}
}

// Retry is RetryValue for operations without a result.
func Retry(
	ctx context.Context,
	op func(context.Context) error,
	retryable func(error) bool,
	recover func(context.Context) error,
	maxRetries int,
	delay time.Duration,
) error {
	_, err := RetryValue(ctx, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, op(ctx)
	}, retryable, recover, maxRetries, delay)
	return err
}
