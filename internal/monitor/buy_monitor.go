package monitor

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/scheissegalo/myDU-MarketBot/internal/domain"
	"github.com/scheissegalo/myDU-MarketBot/internal/market"
)

// recipeSource is the slice of the catalog the scanners need.
type recipeSource interface {
	RecipesByTier(tier int) []domain.Recipe
}

// BuyMonitorConfig holds the demand scanner's settings. MinPrice is quanta.
type BuyMonitorConfig struct {
	Markets  []uint64
	Tick     time.Duration
	MinPrice int64
}

// BuyOrderMonitor discovers high-value buy-side demand and enqueues
// crafting jobs for it. Each configured market is scanned concurrently
// once per tick; within a pass, tiers are processed 1 through 5 in order.
type BuyOrderMonitor struct {
	cfg     BuyMonitorConfig
	recipes recipeSource
	market  market.Service
	queue   *domain.CraftingQueue

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewBuyOrderMonitor(cfg BuyMonitorConfig, recipes recipeSource, svc market.Service, queue *domain.CraftingQueue) *BuyOrderMonitor {
	return &BuyOrderMonitor{cfg: cfg, recipes: recipes, market: svc, queue: queue}
}

// Start launches the monitoring loop. Stop cancels it and waits.
func (m *BuyOrderMonitor) Start(ctx context.Context) {
	ctx, m.cancel = context.WithCancel(ctx)
	m.wg.Add(1)
	go m.run(ctx)
}

func (m *BuyOrderMonitor) Stop() {
	if m.cancel != nil {
		m.cancel()
	}
	m.wg.Wait()
}

func (m *BuyOrderMonitor) run(ctx context.Context) {
	defer m.wg.Done()
	slog.Info("Buy order monitoring started")

	for {
		var g errgroup.Group
		for _, marketID := range m.cfg.Markets {
			marketID := marketID
			g.Go(func() error {
				return m.scanMarket(ctx, marketID)
			})
		}
		// A failed pass for one market is logged; the loop carries on to
		// the next tick regardless.
		if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
			slog.Error("Error during buy order monitoring pass", slog.Any("error", err))
		}

		if !sleep(ctx, m.cfg.Tick) {
			slog.Info("Buy order monitoring stopped")
			return
		}
	}
}

// scanMarket runs one pass over a single market. Products appearing in
// several recipes are checked once per pass.
func (m *BuyOrderMonitor) scanMarket(ctx context.Context, marketID uint64) error {
	visited := make(map[uint64]struct{})

	for tier := minTier; tier <= maxTier; tier++ {
		for _, recipe := range m.recipes.RecipesByTier(tier) {
			for _, product := range recipe.Products {
				if _, seen := visited[product.ID]; seen {
					continue
				}
				visited[product.ID] = struct{}{}

				if err := ctx.Err(); err != nil {
					return err
				}
				buyOrders, err := m.market.GetBuyOrders(ctx, marketID, product.ID)
				if err != nil {
					return err
				}

				for _, order := range buyOrders {
					if !m.shouldCraft(order) {
						continue
					}
					m.queueForCrafting(order, marketID, recipe.Time)
				}
			}
		}

		if !sleep(ctx, m.cfg.Tick) {
			return ctx.Err()
		}
	}
	return nil
}

func (m *BuyOrderMonitor) shouldCraft(order domain.BuyOrder) bool {
	return order.Price > m.cfg.MinPrice
}

func (m *BuyOrderMonitor) queueForCrafting(order domain.BuyOrder, marketID uint64, craftSeconds int) {
	job := domain.CraftingJob{
		ItemID:   order.ItemID,
		MarketID: marketID,
		OrderID:  order.OrderID,
		Quantity: order.Quantity,
		Start:    time.Now(),
		Duration: time.Duration(craftSeconds) * time.Second,
	}
	// TryAdd keeps at most one active job per item, even when several
	// market scans spot the same demand concurrently.
	m.queue.TryAdd(job)
}
