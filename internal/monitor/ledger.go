package monitor

import "sync"

// AcquisitionLedger tracks the price last paid for each flipped item. An
// entry is a pending resale obligation: it is written when an arbitrage buy
// succeeds and consumed when the item shows up in the market container and
// gets relisted. Last write wins when the same item is bought twice.
type AcquisitionLedger struct {
	mu     sync.Mutex
	prices map[uint64]int64
}

func NewAcquisitionLedger() *AcquisitionLedger {
	return &AcquisitionLedger{prices: make(map[uint64]int64)}
}

// Record stores the acquisition price for an item.
func (l *AcquisitionLedger) Record(itemID uint64, price int64) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.prices[itemID] = price
}

// TakePrice removes and returns the item's entry. Lookup and removal are
// one atomic step, so concurrent resale sweeps cannot list the same
// acquisition twice.
func (l *AcquisitionLedger) TakePrice(itemID uint64) (int64, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	price, ok := l.prices[itemID]
	if ok {
		delete(l.prices, itemID)
	}
	return price, ok
}

// Len returns the number of pending resale obligations.
func (l *AcquisitionLedger) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.prices)
}
