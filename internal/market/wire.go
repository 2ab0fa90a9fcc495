package market

import "time"

// Wire types for the game server's market surface. Quantities are signed:
// positive buys, negative sells. Prices are quanta.

const (
	methodSelectItem   = "market.selectItem"
	methodPlaceOrder   = "market.placeOrder"
	methodInstantOrder = "market.instantOrder"
	methodContainer    = "market.container"
	methodGiveItems    = "bot.giveItems"
	methodGetWallet    = "wallet.get"
)

const (
	sourceInventory       = "inventory"
	sourceMarketContainer = "marketContainer"
)

// Standing orders placed by the bot never manage their own expiry.
const orderLifetime = 300 * 24 * time.Hour

type selectRequest struct {
	MarketIDs []uint64 `json:"marketIds"`
	ItemTypes []uint64 `json:"itemTypes"`
}

type wireOrder struct {
	OrderID        uint64    `json:"orderId"`
	ItemType       uint64    `json:"itemType"`
	MarketID       uint64    `json:"marketId"`
	BuyQuantity    int64     `json:"buyQuantity"`
	UnitPrice      int64     `json:"unitPrice"`
	OwnerName      string    `json:"ownerName"`
	ExpirationDate time.Time `json:"expirationDate"`
}

type ordersResponse struct {
	Orders []wireOrder `json:"orders"`
}

type marketRequest struct {
	MarketID       uint64     `json:"marketId"`
	ItemType       uint64     `json:"itemType"`
	BuyQuantity    int64      `json:"buyQuantity"`
	UnitPrice      int64      `json:"unitPrice"`
	ExpirationDate *time.Time `json:"expirationDate,omitempty"`
	OrderID        uint64     `json:"orderId,omitempty"`
	Source         string     `json:"source,omitempty"`
}

type itemAndQuantity struct {
	ItemType uint64 `json:"itemType"`
	Quantity int64  `json:"quantity"`
}

type giveItemsRequest struct {
	Items []itemAndQuantity `json:"items"`
}

type containerSlot struct {
	ItemType  uint64 `json:"itemType"`
	Quantity  int64  `json:"quantity"`
	Purchased bool   `json:"purchased"`
}

type containerResponse struct {
	Slots []containerSlot `json:"slots"`
}

type walletResponse struct {
	Amount int64 `json:"amount"`
}
