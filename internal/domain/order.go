package domain

import "time"

// BuyOrder is a snapshot of a live buy-side order read from a market.
// It is never mutated locally; a fresh fetch replaces it.
type BuyOrder struct {
	OrderID  uint64
	ItemID   uint64
	Quantity int64
	Price    int64 // quanta
	MarketID uint64
}

// SellOrder is a snapshot of a live sell-side listing. Quantity is the
// positive magnitude; the wire carries sell quantities as negatives.
type SellOrder struct {
	OrderID    uint64
	ItemID     uint64
	Quantity   int64
	Price      int64 // quanta
	MarketID   uint64
	OwnerName  string
	Expiration time.Time
}

// PurchasedItem is a snapshot of a market-container slot holding items
// bought on that market and pending collection.
type PurchasedItem struct {
	ItemID   uint64
	Quantity int64
	MarketID uint64
}

// Wallet is the bot's current balance in quanta.
type Wallet struct {
	Amount int64
}
