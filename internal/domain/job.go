package domain

import "time"

// CraftingJob is a scheduled production run triggered by a profitable buy
// order. Immutable after creation; it lives in the CraftingQueue until its
// duration has elapsed and fulfillment has been attempted.
type CraftingJob struct {
	ItemID   uint64
	MarketID uint64
	OrderID  uint64 // buy order that triggered the job
	Quantity int64
	Start    time.Time
	Duration time.Duration
}

// Done reports whether the crafting duration has elapsed at the given time.
func (j CraftingJob) Done(now time.Time) bool {
	return !now.Before(j.Start.Add(j.Duration))
}
