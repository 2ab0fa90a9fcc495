package monitor

import (
	"context"
	"testing"
	"time"

	"github.com/scheissegalo/myDU-MarketBot/internal/domain"
)

func newTestBuyMonitor(svc *fakeService, recipes *fakeRecipes, queue *domain.CraftingQueue) *BuyOrderMonitor {
	cfg := BuyMonitorConfig{
		Markets:  []uint64{1},
		Tick:     time.Millisecond,
		MinPrice: 10_000,
	}
	return NewBuyOrderMonitor(cfg, recipes, svc, queue)
}

func TestBuyMonitor_QueuesProfitableDemand(t *testing.T) {
	svc := newFakeService()
	svc.buyBooks[50] = []domain.BuyOrder{
		{OrderID: 1, ItemID: 50, Quantity: 3, Price: 25_000, MarketID: 1},
		{OrderID: 2, ItemID: 50, Quantity: 5, Price: 9_999, MarketID: 1},
	}
	recipes := &fakeRecipes{byTier: map[int][]domain.Recipe{
		1: {{ID: 7, Tier: 1, Time: 120, Products: []domain.ItemStack{{ID: 50, Quantity: 1}}}},
	}}
	queue := domain.NewCraftingQueue()

	m := newTestBuyMonitor(svc, recipes, queue)
	if err := m.scanMarket(context.Background(), 1); err != nil {
		t.Fatalf("scanMarket: %v", err)
	}

	if queue.Len() != 1 {
		t.Fatalf("queue length = %d, want 1", queue.Len())
	}
	job, _ := queue.Peek()
	if job.ItemID != 50 || job.OrderID != 1 || job.Quantity != 3 {
		t.Errorf("queued job = %+v, want item 50 order 1 quantity 3", job)
	}
	if job.Duration != 120*time.Second {
		t.Errorf("job duration = %v, want 2m0s", job.Duration)
	}
}

func TestBuyMonitor_ChecksProductOncePerPass(t *testing.T) {
	// The same product appears in two recipes on different tiers; its book
	// must only be fetched once per pass.
	recipes := &fakeRecipes{byTier: map[int][]domain.Recipe{
		1: {{ID: 1, Tier: 1, Time: 60, Products: []domain.ItemStack{{ID: 50, Quantity: 1}}}},
		2: {{ID: 2, Tier: 2, Time: 60, Products: []domain.ItemStack{{ID: 50, Quantity: 1}, {ID: 51, Quantity: 1}}}},
	}}
	svc := newFakeService()
	queue := domain.NewCraftingQueue()

	m := newTestBuyMonitor(svc, recipes, queue)
	if err := m.scanMarket(context.Background(), 1); err != nil {
		t.Fatalf("scanMarket: %v", err)
	}

	counts := make(map[uint64]int)
	for _, id := range svc.buyFetches {
		counts[id]++
	}
	if counts[50] != 1 || counts[51] != 1 {
		t.Errorf("fetch counts = %v, want one fetch per product", counts)
	}
}

func TestBuyMonitor_SkipsItemsAlreadyQueued(t *testing.T) {
	svc := newFakeService()
	svc.buyBooks[50] = []domain.BuyOrder{
		{OrderID: 1, ItemID: 50, Quantity: 3, Price: 25_000, MarketID: 1},
	}
	recipes := &fakeRecipes{byTier: map[int][]domain.Recipe{
		1: {{ID: 7, Tier: 1, Time: 60, Products: []domain.ItemStack{{ID: 50, Quantity: 1}}}},
	}}
	queue := domain.NewCraftingQueue()
	queue.Add(domain.CraftingJob{ItemID: 50, MarketID: 2, Quantity: 1, Start: time.Now()})

	m := newTestBuyMonitor(svc, recipes, queue)
	if err := m.scanMarket(context.Background(), 1); err != nil {
		t.Fatalf("scanMarket: %v", err)
	}

	if queue.Len() != 1 {
		t.Errorf("queue length = %d, want the pre-existing job only", queue.Len())
	}
}

func TestBuyMonitor_StopsOnCancel(t *testing.T) {
	svc := newFakeService()
	recipes := &fakeRecipes{byTier: map[int][]domain.Recipe{}}
	queue := domain.NewCraftingQueue()

	m := newTestBuyMonitor(svc, recipes, queue)
	m.Start(context.Background())
	m.Stop()
	// Stop must return promptly; reaching this point is the assertion.
}
