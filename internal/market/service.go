package market

import (
	"context"

	"github.com/scheissegalo/myDU-MarketBot/internal/domain"
)

// Service is every marketplace operation the monitors need. One concrete
// implementation (Gateway) talks to the game server; tests substitute fakes.
type Service interface {
	GetBuyOrders(ctx context.Context, marketID, itemID uint64) ([]domain.BuyOrder, error)
	GetSellOrders(ctx context.Context, marketID, itemID uint64) ([]domain.SellOrder, error)
	CreateItem(ctx context.Context, itemID uint64, quantity int64) error
	PlaceOrder(ctx context.Context, spec OrderSpec) error
	FulfillBuyOrder(ctx context.Context, marketID, itemID uint64, quantity, price int64, buyOrderID uint64) error
	BuyFromSellOrder(ctx context.Context, order domain.SellOrder) error
	GetPurchasedItems(ctx context.Context, marketID uint64) ([]domain.PurchasedItem, error)
	HandleCraftedItem(ctx context.Context, itemID, marketID uint64, quantity int64) error
}

// OrderSpec describes a standing order to place on the book.
type OrderSpec struct {
	MarketID      uint64
	ItemID        uint64
	Quantity      int64
	UnitPrice     int64 // quanta
	Sell          bool
	FromContainer bool // source the items from the market container
}
