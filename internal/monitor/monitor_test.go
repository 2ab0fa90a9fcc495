package monitor

import (
	"context"
	"sync"

	"github.com/scheissegalo/myDU-MarketBot/internal/domain"
	"github.com/scheissegalo/myDU-MarketBot/internal/market"
)

// fakeService implements market.Service with canned order books and
// recorded calls.
type fakeService struct {
	mu sync.Mutex

	buyBooks  map[uint64][]domain.BuyOrder  // keyed by item id
	sellBooks map[uint64][]domain.SellOrder // keyed by item id
	purchased map[uint64][]domain.PurchasedItem

	buyFetches  []uint64
	sellFetches []uint64
	bought      []domain.SellOrder
	placed      []market.OrderSpec
	handled     []handledItem

	buyOrdersErr error
	buyErr       error
	placeErr     error
	handleErr    error
}

type handledItem struct {
	itemID   uint64
	marketID uint64
	quantity int64
}

func newFakeService() *fakeService {
	return &fakeService{
		buyBooks:  make(map[uint64][]domain.BuyOrder),
		sellBooks: make(map[uint64][]domain.SellOrder),
		purchased: make(map[uint64][]domain.PurchasedItem),
	}
}

func (f *fakeService) GetBuyOrders(_ context.Context, _, itemID uint64) ([]domain.BuyOrder, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.buyFetches = append(f.buyFetches, itemID)
	if f.buyOrdersErr != nil {
		return nil, f.buyOrdersErr
	}
	return f.buyBooks[itemID], nil
}

func (f *fakeService) GetSellOrders(_ context.Context, _, itemID uint64) ([]domain.SellOrder, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sellFetches = append(f.sellFetches, itemID)
	return f.sellBooks[itemID], nil
}

func (f *fakeService) CreateItem(context.Context, uint64, int64) error { return nil }

func (f *fakeService) PlaceOrder(_ context.Context, spec market.OrderSpec) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.placeErr != nil {
		return f.placeErr
	}
	f.placed = append(f.placed, spec)
	return nil
}

func (f *fakeService) FulfillBuyOrder(context.Context, uint64, uint64, int64, int64, uint64) error {
	return nil
}

func (f *fakeService) BuyFromSellOrder(_ context.Context, order domain.SellOrder) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.buyErr != nil {
		return f.buyErr
	}
	f.bought = append(f.bought, order)
	return nil
}

func (f *fakeService) GetPurchasedItems(_ context.Context, marketID uint64) ([]domain.PurchasedItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.purchased[marketID], nil
}

func (f *fakeService) HandleCraftedItem(_ context.Context, itemID, marketID uint64, quantity int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.handleErr != nil {
		return f.handleErr
	}
	f.handled = append(f.handled, handledItem{itemID: itemID, marketID: marketID, quantity: quantity})
	return nil
}

// fakeRecipes serves recipes by tier from a fixed map.
type fakeRecipes struct {
	byTier map[int][]domain.Recipe
}

func (f *fakeRecipes) RecipesByTier(tier int) []domain.Recipe {
	return f.byTier[tier]
}

// fakeItems serves a fixed item-identity list.
type fakeItems struct {
	ids []uint64
}

func (f *fakeItems) ItemIDs() []uint64 { return f.ids }
