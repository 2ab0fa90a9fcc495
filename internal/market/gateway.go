package market

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/scheissegalo/myDU-MarketBot/internal/domain"
	"github.com/scheissegalo/myDU-MarketBot/internal/infra"
	"github.com/scheissegalo/myDU-MarketBot/internal/remote"
	"github.com/scheissegalo/myDU-MarketBot/internal/storage"
)

// ErrInsufficientFunds is returned when the wallet cannot cover a buy order.
var ErrInsufficientFunds = errors.New("insufficient funds")

// Caller is the slice of the remote session the gateway needs.
type Caller interface {
	Call(ctx context.Context, method string, params, result any) error
}

// Recoverer re-establishes the session between retries.
type Recoverer interface {
	Recover(ctx context.Context) error
}

// Gateway implements Service against the game server. Every remote call
// runs through the retry policy: session-loss failures trigger a
// deduplicated reconnect and a bounded number of retries, anything else
// propagates immediately.
type Gateway struct {
	caller  Caller
	rec     Recoverer
	markets []uint64 // configured operation markets, in config order
	journal *storage.Journal

	retries int
	delay   time.Duration
}

func NewGateway(caller Caller, rec Recoverer, markets []uint64, journal *storage.Journal) *Gateway {
	return &Gateway{
		caller:  caller,
		rec:     rec,
		markets: markets,
		journal: journal,
		retries: infra.DefaultMaxRetries,
		delay:   infra.DefaultRetryDelay,
	}
}

func (g *Gateway) call(ctx context.Context, method string, params, result any) error {
	return infra.Retry(ctx, func(ctx context.Context) error {
		return g.caller.Call(ctx, method, params, result)
	}, remote.IsSessionLoss, g.rec.Recover, g.retries, g.delay)
}

func (g *Gateway) selectItem(ctx context.Context, marketID, itemID uint64) ([]wireOrder, error) {
	var resp ordersResponse
	err := g.call(ctx, methodSelectItem, selectRequest{
		MarketIDs: []uint64{marketID},
		ItemTypes: []uint64{itemID},
	}, &resp)
	if err != nil {
		return nil, fmt.Errorf("error retrieving orders for item %d in market %d: %w", itemID, marketID, err)
	}
	return resp.Orders, nil
}

// GetBuyOrders fetches the live buy-side orders for an item in a market.
func (g *Gateway) GetBuyOrders(ctx context.Context, marketID, itemID uint64) ([]domain.BuyOrder, error) {
	orders, err := g.selectItem(ctx, marketID, itemID)
	if err != nil {
		return nil, err
	}

	var out []domain.BuyOrder
	for _, o := range orders {
		if o.BuyQuantity <= 0 {
			continue
		}
		out = append(out, domain.BuyOrder{
			OrderID:  o.OrderID,
			ItemID:   o.ItemType,
			Quantity: o.BuyQuantity,
			Price:    o.UnitPrice,
			MarketID: o.MarketID,
		})
	}
	return out, nil
}

// GetSellOrders fetches the live sell-side listings for an item in a
// market. Wire sell quantities are negative; the snapshot carries the
// positive magnitude.
func (g *Gateway) GetSellOrders(ctx context.Context, marketID, itemID uint64) ([]domain.SellOrder, error) {
	orders, err := g.selectItem(ctx, marketID, itemID)
	if err != nil {
		return nil, err
	}

	var out []domain.SellOrder
	for _, o := range orders {
		if o.BuyQuantity >= 0 {
			continue
		}
		out = append(out, domain.SellOrder{
			OrderID:    o.OrderID,
			ItemID:     o.ItemType,
			Quantity:   -o.BuyQuantity,
			Price:      o.UnitPrice,
			MarketID:   o.MarketID,
			OwnerName:  o.OwnerName,
			Expiration: o.ExpirationDate,
		})
	}
	return out, nil
}

// CreateItem materializes inventory in the bot's possession ahead of a sale.
func (g *Gateway) CreateItem(ctx context.Context, itemID uint64, quantity int64) error {
	err := g.call(ctx, methodGiveItems, giveItemsRequest{
		Items: []itemAndQuantity{{ItemType: itemID, Quantity: quantity}},
	}, nil)
	if err != nil {
		return fmt.Errorf("failed to create item %d in the bot inventory: %w", itemID, err)
	}
	return nil
}

// Wallet reads the bot's current balance.
func (g *Gateway) Wallet(ctx context.Context) (domain.Wallet, error) {
	var resp walletResponse
	if err := g.call(ctx, methodGetWallet, nil, &resp); err != nil {
		return domain.Wallet{}, fmt.Errorf("failed to read wallet: %w", err)
	}
	return domain.Wallet{Amount: resp.Amount}, nil
}

// PlaceOrder submits a standing order. Buy orders are refused when the
// wallet cannot cover them; sell quantities are flipped negative on the
// wire; expiration is far-future.
func (g *Gateway) PlaceOrder(ctx context.Context, spec OrderSpec) error {
	if !spec.Sell {
		wallet, err := g.Wallet(ctx)
		if err != nil {
			return err
		}
		needed := spec.UnitPrice * spec.Quantity
		if wallet.Amount < needed {
			slog.Warn("Not enough money to place order",
				slog.Uint64("item", spec.ItemID),
				slog.Int64("needed", needed),
				slog.Int64("available", wallet.Amount))
			return fmt.Errorf("placing buy order for item %d: %w", spec.ItemID, ErrInsufficientFunds)
		}
	}

	quantity := spec.Quantity
	if spec.Sell {
		quantity = -quantity
	}
	source := sourceInventory
	if spec.FromContainer {
		source = sourceMarketContainer
	}
	expiration := time.Now().Add(orderLifetime)

	slog.Info("Placing market order",
		slog.Uint64("item", spec.ItemID),
		slog.Uint64("market", spec.MarketID),
		slog.Int64("quantity", quantity),
		slog.Int64("price", spec.UnitPrice))

	err := g.call(ctx, methodPlaceOrder, marketRequest{
		MarketID:       spec.MarketID,
		ItemType:       spec.ItemID,
		BuyQuantity:    quantity,
		UnitPrice:      spec.UnitPrice,
		ExpirationDate: &expiration,
		Source:         source,
	}, nil)
	if err != nil {
		return fmt.Errorf("failed to place order for item %d in market %d: %w", spec.ItemID, spec.MarketID, err)
	}

	if spec.Sell && spec.FromContainer {
		if jerr := g.journal.Record(ctx, storage.KindResale, spec.ItemID, spec.MarketID, spec.Quantity, spec.UnitPrice); jerr != nil {
			slog.Error("Failed to journal resale", slog.Any("error", jerr))
		}
	}
	return nil
}

// FulfillBuyOrder creates the items and consumes a specific existing buy
// order with an instant order at its listed price.
func (g *Gateway) FulfillBuyOrder(ctx context.Context, marketID, itemID uint64, quantity, price int64, buyOrderID uint64) error {
	if err := g.CreateItem(ctx, itemID, quantity); err != nil {
		return err
	}

	err := g.call(ctx, methodInstantOrder, marketRequest{
		MarketID:    marketID,
		ItemType:    itemID,
		BuyQuantity: -quantity, // selling into the buy order
		UnitPrice:   price,
		OrderID:     buyOrderID,
		Source:      sourceInventory,
	}, nil)
	if err != nil {
		return fmt.Errorf("failed to fulfill buy order %d in market %d: %w", buyOrderID, marketID, err)
	}

	if jerr := g.journal.Record(ctx, storage.KindFill, itemID, marketID, quantity, price); jerr != nil {
		slog.Error("Failed to journal fill", slog.Any("error", jerr))
	}
	return nil
}

// BuyFromSellOrder consumes a specific sell listing at its listed price and
// quantity.
func (g *Gateway) BuyFromSellOrder(ctx context.Context, order domain.SellOrder) error {
	err := g.call(ctx, methodInstantOrder, marketRequest{
		MarketID:    order.MarketID,
		ItemType:    order.ItemID,
		BuyQuantity: order.Quantity,
		UnitPrice:   order.Price,
		OrderID:     order.OrderID,
	}, nil)
	if err != nil {
		return fmt.Errorf("failed to buy from sell order %d in market %d: %w", order.OrderID, order.MarketID, err)
	}

	if jerr := g.journal.Record(ctx, storage.KindFlip, order.ItemID, order.MarketID, order.Quantity, order.Price); jerr != nil {
		slog.Error("Failed to journal flip", slog.Any("error", jerr))
	}
	return nil
}

// GetPurchasedItems reads the market-container slots holding already-bought
// items pending collection.
func (g *Gateway) GetPurchasedItems(ctx context.Context, marketID uint64) ([]domain.PurchasedItem, error) {
	var resp containerResponse
	err := g.call(ctx, methodContainer, marketRequest{MarketID: marketID}, &resp)
	if err != nil {
		return nil, fmt.Errorf("failed to read container for market %d: %w", marketID, err)
	}

	var out []domain.PurchasedItem
	for _, slot := range resp.Slots {
		if !slot.Purchased {
			continue
		}
		out = append(out, domain.PurchasedItem{
			ItemID:   slot.ItemType,
			Quantity: slot.Quantity,
			MarketID: marketID,
		})
	}
	return out, nil
}

// HandleCraftedItem sells finished inventory into the best available buy
// orders: the originating market first, then every other configured market,
// highest price first within each. Whatever cannot be sold is logged and
// dropped, never requeued.
func (g *Gateway) HandleCraftedItem(ctx context.Context, itemID, marketID uint64, quantity int64) error {
	slog.Info("Handling crafted item",
		slog.Uint64("item", itemID),
		slog.Uint64("market", marketID),
		slog.Int64("quantity", quantity))

	candidates := make([]uint64, 0, len(g.markets)+1)
	candidates = append(candidates, marketID)
	for _, m := range g.markets {
		if m != marketID {
			candidates = append(candidates, m)
		}
	}

	remaining := quantity
	for _, current := range candidates {
		if remaining <= 0 {
			break
		}

		buyOrders, err := g.GetBuyOrders(ctx, current, itemID)
		if err != nil {
			return err
		}
		sort.Slice(buyOrders, func(i, j int) bool {
			return buyOrders[i].Price > buyOrders[j].Price
		})

		for _, bo := range buyOrders {
			if remaining <= 0 {
				break
			}

			toSell := min(remaining, bo.Quantity)
			if err := g.FulfillBuyOrder(ctx, current, itemID, toSell, bo.Price, bo.OrderID); err != nil {
				return fmt.Errorf("unable to sell %d of item %d at price %d in market %d: %w",
					toSell, itemID, bo.Price, current, err)
			}

			slog.Info("Sold crafted items",
				slog.Int64("quantity", toSell),
				slog.Uint64("item", itemID),
				slog.Int64("price", bo.Price),
				slog.Uint64("market", current))
			remaining -= toSell
		}
	}

	if remaining > 0 {
		slog.Warn("Crafted items left unsold due to lack of buy orders",
			slog.Int64("remaining", remaining),
			slog.Uint64("item", itemID))
	}
	return nil
}
