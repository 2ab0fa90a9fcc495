package monitor

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/scheissegalo/myDU-MarketBot/internal/domain"
	"github.com/scheissegalo/myDU-MarketBot/internal/market"
)

// Orders listed by the market seeding bots carry this marker in the owner
// name; flipping seed stock is pointless.
const seedOwnerMarker = "marketbot"

// purchasedSweepInterval paces the resale loop independently of the market
// tick.
const purchasedSweepInterval = 30 * time.Second

// itemSource supplies the full item-identity list for the supplementary
// sweep over items no recipe produces.
type itemSource interface {
	ItemIDs() []uint64
}

// SellMonitorConfig holds the flipper's settings. MaxBuyPrice is quanta.
type SellMonitorConfig struct {
	Markets          []uint64
	Tick             time.Duration
	MaxBuyPrice      int64
	Markup           decimal.Decimal
	ExpirationWindow time.Duration
	BotName          string
}

// SellOrderMonitor buys underpriced, soon-expiring listings and resells
// them at a markup. Two loops run per process: the tiered listing scan and
// the purchased-items resale sweep.
type SellOrderMonitor struct {
	cfg     SellMonitorConfig
	recipes recipeSource
	items   itemSource
	market  market.Service
	ledger  *AcquisitionLedger

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewSellOrderMonitor(cfg SellMonitorConfig, recipes recipeSource, items itemSource, svc market.Service) *SellOrderMonitor {
	return &SellOrderMonitor{
		cfg:     cfg,
		recipes: recipes,
		items:   items,
		market:  svc,
		ledger:  NewAcquisitionLedger(),
	}
}

// Start launches the scan and resale loops. Stop cancels both and waits.
func (m *SellOrderMonitor) Start(ctx context.Context) {
	ctx, m.cancel = context.WithCancel(ctx)
	m.wg.Add(2)
	go m.runScan(ctx)
	go m.runSweep(ctx)
}

func (m *SellOrderMonitor) Stop() {
	if m.cancel != nil {
		m.cancel()
	}
	m.wg.Wait()
}

func (m *SellOrderMonitor) runScan(ctx context.Context) {
	defer m.wg.Done()
	slog.Info("Sell order monitoring started")

	for {
		var g errgroup.Group
		for _, marketID := range m.cfg.Markets {
			marketID := marketID
			g.Go(func() error {
				return m.scanMarket(ctx, marketID)
			})
		}
		if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
			slog.Error("Error during sell order monitoring pass", slog.Any("error", err))
		}

		if !sleep(ctx, m.cfg.Tick) {
			slog.Info("Sell order monitoring stopped")
			return
		}
	}
}

func (m *SellOrderMonitor) runSweep(ctx context.Context) {
	defer m.wg.Done()
	slog.Info("Purchased items processing started")

	for {
		var g errgroup.Group
		for _, marketID := range m.cfg.Markets {
			marketID := marketID
			g.Go(func() error {
				return m.processPurchased(ctx, marketID)
			})
		}
		if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
			slog.Error("Error during purchased items pass", slog.Any("error", err))
		}

		if !sleep(ctx, purchasedSweepInterval) {
			slog.Info("Purchased items processing stopped")
			return
		}
	}
}

// scanMarket mirrors the demand scanner's tiered walk, then sweeps the
// supplementary item-identity list for items unreachable via any recipe.
func (m *SellOrderMonitor) scanMarket(ctx context.Context, marketID uint64) error {
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
				m.processListings(ctx, marketID, product.ID)
			}
		}

		if !sleep(ctx, m.cfg.Tick) {
			return ctx.Err()
		}
	}

	for _, itemID := range m.items.ItemIDs() {
		if _, seen := visited[itemID]; seen {
			continue
		}
		visited[itemID] = struct{}{}

		if err := ctx.Err(); err != nil {
			return err
		}
		m.processListings(ctx, marketID, itemID)
	}
	return nil
}

// processListings inspects one item's sell book. A failure here is logged
// and skipped so the rest of the pass still runs.
func (m *SellOrderMonitor) processListings(ctx context.Context, marketID, itemID uint64) {
	sellOrders, err := m.market.GetSellOrders(ctx, marketID, itemID)
	if err != nil {
		slog.Error("Error fetching sell orders",
			slog.Uint64("item", itemID),
			slog.Uint64("market", marketID),
			slog.Any("error", err))
		return
	}

	for _, order := range sellOrders {
		if !m.shouldBuy(order, time.Now()) {
			continue
		}
		m.buyForResale(ctx, order)
	}
}

// shouldBuy is the flip acceptance policy: not seed stock, not our own
// listing, within budget, and close enough to expiry.
func (m *SellOrderMonitor) shouldBuy(order domain.SellOrder, now time.Time) bool {
	if strings.Contains(strings.ToLower(order.OwnerName), seedOwnerMarker) {
		return false
	}
	if order.OwnerName == m.cfg.BotName {
		return false
	}
	if order.Price > m.cfg.MaxBuyPrice {
		return false
	}
	if order.Expiration.Sub(now) > m.cfg.ExpirationWindow {
		return false
	}
	return true
}

func (m *SellOrderMonitor) buyForResale(ctx context.Context, order domain.SellOrder) {
	slog.Info("Buying listing for resale",
		slog.Int64("quantity", order.Quantity),
		slog.Uint64("item", order.ItemID),
		slog.Int64("price", order.Price),
		slog.String("owner", order.OwnerName))

	if err := m.market.BuyFromSellOrder(ctx, order); err != nil {
		slog.Error("Failed to buy from sell order",
			slog.Uint64("order", order.OrderID),
			slog.Uint64("item", order.ItemID),
			slog.Any("error", err))
		return
	}

	m.ledger.Record(order.ItemID, order.Price)
}

// processPurchased relists everything in the market container that we
// bought for flipping. Items not yet reflected in the container stay
// pending until a later sweep.
func (m *SellOrderMonitor) processPurchased(ctx context.Context, marketID uint64) error {
	items, err := m.market.GetPurchasedItems(ctx, marketID)
	if err != nil {
		return err
	}

	for _, item := range items {
		price, ok := m.ledger.TakePrice(item.ItemID)
		if !ok {
			continue
		}

		resalePrice := domain.ApplyMarkup(price, m.cfg.Markup)
		slog.Info("Reselling purchased item",
			slog.Int64("quantity", item.Quantity),
			slog.Uint64("item", item.ItemID),
			slog.Int64("price", resalePrice),
			slog.Int64("bought_at", price))

		err := m.market.PlaceOrder(ctx, market.OrderSpec{
			MarketID:      marketID,
			ItemID:        item.ItemID,
			Quantity:      item.Quantity,
			UnitPrice:     resalePrice,
			Sell:          true,
			FromContainer: true,
		})
		if err != nil {
			// The obligation stands; put the entry back for the next sweep.
			m.ledger.Record(item.ItemID, price)
			slog.Error("Failed to list purchased item",
				slog.Uint64("item", item.ItemID),
				slog.Any("error", err))
		}
	}
	return nil
}
