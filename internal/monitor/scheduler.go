package monitor

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/scheissegalo/myDU-MarketBot/internal/domain"
	"github.com/scheissegalo/myDU-MarketBot/internal/market"
)

// CraftingScheduler is the single consumer of the crafting queue. Jobs are
// strictly FIFO: the head is re-checked every tick until its crafting time
// has elapsed, and a later job with a shorter duration never jumps ahead.
type CraftingScheduler struct {
	queue  *domain.CraftingQueue
	market market.Service
	tick   time.Duration

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewCraftingScheduler(queue *domain.CraftingQueue, svc market.Service, tick time.Duration) *CraftingScheduler {
	return &CraftingScheduler{queue: queue, market: svc, tick: tick}
}

func (s *CraftingScheduler) Start(ctx context.Context) {
	ctx, s.cancel = context.WithCancel(ctx)
	s.wg.Add(1)
	go s.run(ctx)
}

func (s *CraftingScheduler) Stop() {
	if s.cancel != nil {
		s.cancel()
	}
	s.wg.Wait()
}

func (s *CraftingScheduler) run(ctx context.Context) {
	defer s.wg.Done()
	slog.Info("Crafting queue processing started")

	for {
		for s.queue.Len() > 0 {
			s.processHead(ctx)
			if !sleep(ctx, s.tick) {
				slog.Info("Crafting queue processing stopped")
				return
			}
		}

		slog.Debug("Crafting queue drained")
		if !sleep(ctx, s.tick) {
			slog.Info("Crafting queue processing stopped")
			return
		}
	}
}

// processHead fulfills and removes the head job once it is due. A
// fulfillment failure is logged, not retried: the attempt consumes the job
// either way.
func (s *CraftingScheduler) processHead(ctx context.Context) {
	job, ok := s.queue.Peek()
	if !ok || !job.Done(time.Now()) {
		return
	}

	if err := s.market.HandleCraftedItem(ctx, job.ItemID, job.MarketID, job.Quantity); err != nil {
		slog.Error("Failed to fulfill crafted item",
			slog.Uint64("item", job.ItemID),
			slog.Uint64("market", job.MarketID),
			slog.Any("error", err))
	}
	s.queue.Dequeue()
}
