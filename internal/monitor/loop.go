package monitor

import (
	"context"
	"time"
)

// Recipe tiers are scanned strictly in ascending order.
const (
	minTier = 1
	maxTier = 5
)

// sleep waits for d, returning false when ctx is cancelled first.
func sleep(ctx context.Context, d time.Duration) bool {
	select {
	case <-ctx.Done():
		return false
	case <-time.After(d):
		return true
	}
}
