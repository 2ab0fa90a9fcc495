package domain

import (
	"log/slog"
	"sync"
)

// CraftingQueue is a FIFO of pending production jobs. Safe for concurrent
// producers (one per scanned market) and a single consumer.
type CraftingQueue struct {
	mu   sync.Mutex
	jobs []CraftingJob
}

func NewCraftingQueue() *CraftingQueue {
	return &CraftingQueue{}
}

// Add appends a job to the tail unconditionally.
func (q *CraftingQueue) Add(job CraftingJob) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.append(job)
}

// TryAdd appends the job only if no queued job references the same item.
// Membership check and append happen under one lock, so concurrent scans of
// different markets cannot double-enqueue an item.
func (q *CraftingQueue) TryAdd(job CraftingJob) bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	for _, j := range q.jobs {
		if j.ItemID == job.ItemID {
			return false
		}
	}
	q.append(job)
	return true
}

func (q *CraftingQueue) append(job CraftingJob) {
	q.jobs = append(q.jobs, job)
	slog.Info("Job added to crafting queue",
		slog.Uint64("item", job.ItemID),
		slog.Int64("quantity", job.Quantity),
		slog.Uint64("market", job.MarketID),
		slog.Time("ready_at", job.Start.Add(job.Duration)))
}

// Peek returns the head job without removing it.
func (q *CraftingQueue) Peek() (CraftingJob, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.jobs) == 0 {
		return CraftingJob{}, false
	}
	return q.jobs[0], true
}

// Dequeue removes and returns the head job.
func (q *CraftingQueue) Dequeue() (CraftingJob, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.jobs) == 0 {
		return CraftingJob{}, false
	}
	job := q.jobs[0]
	q.jobs = q.jobs[1:]
	return job, true
}

// Contains reports whether any queued job references the item.
func (q *CraftingQueue) Contains(itemID uint64) bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	for _, j := range q.jobs {
		if j.ItemID == itemID {
			return true
		}
	}
	return false
}

// Len returns the current number of queued jobs.
func (q *CraftingQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.jobs)
}
