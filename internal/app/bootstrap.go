package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/scheissegalo/myDU-MarketBot/internal/catalog"
	"github.com/scheissegalo/myDU-MarketBot/internal/domain"
	"github.com/scheissegalo/myDU-MarketBot/internal/infra"
	"github.com/scheissegalo/myDU-MarketBot/internal/market"
	"github.com/scheissegalo/myDU-MarketBot/internal/monitor"
	"github.com/scheissegalo/myDU-MarketBot/internal/remote"
	"github.com/scheissegalo/myDU-MarketBot/internal/storage"
)

// Bootstrap orchestrates the application startup sequence.
type Bootstrap struct {
	Config  *infra.Config
	Journal *storage.Journal
	Session *remote.Session
	Market  *market.Gateway

	queue       *domain.CraftingQueue
	buyMonitor  *monitor.BuyOrderMonitor
	scheduler   *monitor.CraftingScheduler
	sellMonitor *monitor.SellOrderMonitor
}

func NewBootstrap() *Bootstrap {
	return &Bootstrap{}
}

// Initialize loads configuration and data files, connects to the game
// server, and wires every component. Nothing runs until Run.
func (b *Bootstrap) Initialize(ctx context.Context, configPath string, debug bool) error {
	slog.Info("🚀 Bootstrapping market bot...")

	// 1. Load Config
	cfg, err := infra.LoadConfig(configPath)
	if err != nil {
		return err
	}
	b.Config = cfg

	// 2. Setup Logger
	slog.SetDefault(infra.NewLogger(cfg.Logging.Level, debug))

	// 3. Cross-check operation markets against the identity file
	if err := cfg.ResolveMarkets(); err != nil {
		return err
	}
	slog.Info("✅ Operating markets resolved", slog.Int("count", len(cfg.Market.OperationMarkets)))

	// 4. Trade journal (optional, WAL-mode sqlite)
	if cfg.Data.Journal != "" {
		journal, err := storage.OpenJournal(cfg.Data.Journal)
		if err != nil {
			return fmt.Errorf("opening trade journal: %w", err)
		}
		b.Journal = journal
		slog.Info("✅ Trade journal opened (WAL-mode)", slog.String("path", cfg.Data.Journal))
	}

	// 5. Catalog data
	store := catalog.NewStore(cfg.Data.Recipes, cfg.Data.Resources)
	items := catalog.NewItemIndex(cfg.Data.Items)

	// 6. Game server session
	session, err := remote.Dial(ctx, cfg.Remote.URL, cfg.Remote.Login, cfg.Remote.Password)
	if err != nil {
		return fmt.Errorf("connecting to game server: %w", err)
	}
	b.Session = session
	slog.Info("✅ Connected to game server", slog.String("url", cfg.Remote.URL))

	reconnector := remote.NewReconnector(session)
	b.Market = market.NewGateway(session, reconnector, cfg.Market.OperationMarkets, b.Journal)

	// 7. Monitors and the crafting pipeline
	b.queue = domain.NewCraftingQueue()
	b.buyMonitor = monitor.NewBuyOrderMonitor(monitor.BuyMonitorConfig{
		Markets:  cfg.Market.OperationMarkets,
		Tick:     cfg.MarketTick(),
		MinPrice: cfg.MinBuyOrderQuanta(),
	}, store, b.Market, b.queue)
	b.scheduler = monitor.NewCraftingScheduler(b.queue, b.Market, cfg.QueueTick())

	if cfg.Market.ResellEnabled {
		b.sellMonitor = monitor.NewSellOrderMonitor(monitor.SellMonitorConfig{
			Markets:          cfg.Market.OperationMarkets,
			Tick:             cfg.MarketTick(),
			MaxBuyPrice:      cfg.MaxResellBuyQuanta(),
			Markup:           cfg.ResellMarkup(),
			ExpirationWindow: cfg.ExpirationWindow(),
			BotName:          cfg.Market.BotName,
		}, store, items, b.Market)
	}

	return nil
}

// Run starts every monitor and blocks until the context is cancelled, then
// stops them in order and releases the session and journal.
func (b *Bootstrap) Run(ctx context.Context) error {
	b.logRecentTrades(ctx)

	b.buyMonitor.Start(ctx)
	b.scheduler.Start(ctx)
	if b.sellMonitor != nil {
		b.sellMonitor.Start(ctx)
	} else {
		slog.Info("Reselling disabled; sell order monitoring not started")
	}

	<-ctx.Done()
	slog.Info("Shutting down...")

	b.buyMonitor.Stop()
	b.scheduler.Stop()
	if b.sellMonitor != nil {
		b.sellMonitor.Stop()
	}

	if err := b.Session.Close(); err != nil {
		slog.Warn("Error closing session", slog.Any("error", err))
	}
	if err := b.Journal.Close(); err != nil {
		slog.Warn("Error closing trade journal", slog.Any("error", err))
	}
	return nil
}

func (b *Bootstrap) logRecentTrades(ctx context.Context) {
	trades, err := b.Journal.Recent(ctx, 5)
	if err != nil {
		slog.Warn("Could not read trade journal", slog.Any("error", err))
		return
	}
	for _, tr := range trades {
		slog.Info("Recent trade",
			slog.String("kind", tr.Kind),
			slog.Uint64("item", tr.ItemID),
			slog.Uint64("market", tr.MarketID),
			slog.Int64("quantity", tr.Quantity),
			slog.Int64("price", tr.Price))
	}
}
