package orderbookv1

import (
	"fmt"
	"sort"

	snapshotv1 "github.com/NeedRelax/solana-orderbook/internal/domain/snapshot/v1"
)

// Book is the single-pair limit order book: two price-time ordered sides of
// resting orders plus the monotonic order id counter. The book is a pure
// data container; it performs no transfers and no ownership validation, and
// it carries no lock — callers serialize access (the matching usecase holds
// one exclusive lock around every operation that touches the book).
type Book struct {
	baseAsset  string
	quoteAsset string

	// Both sides are kept best-priority first: highest price first for bids,
	// lowest price first for asks, earlier order id first among equal prices.
	bids []*Order
	asks []*Order

	// Last issued order id. Strictly increasing, never reused, even across
	// cancellations.
	orderIDCounter uint64
}

// NewBook creates an empty book bound to a base/quote asset pair.
func NewBook(baseAsset, quoteAsset string) *Book {
	return &Book{
		baseAsset:  baseAsset,
		quoteAsset: quoteAsset,
	}
}

// BaseAsset returns the identifier of the base asset traded by this book.
func (b *Book) BaseAsset() string {
	return b.baseAsset
}

// QuoteAsset returns the identifier of the quote asset traded by this book.
func (b *Book) QuoteAsset() string {
	return b.quoteAsset
}

// side returns the slice backing the given side.
func (b *Book) side(s Side) *[]*Order {
	if s == SideBuy {
		return &b.bids
	}
	return &b.asks
}

// ranksBefore reports whether order a has strictly better price-time
// priority than order b on the given side.
func ranksBefore(s Side, a, b *Order) bool {
	if a.Price != b.Price {
		if s == SideBuy {
			return a.Price > b.Price
		}
		return a.Price < b.Price
	}
	return a.OrderID < b.OrderID
}

// BestBid returns the price of the highest-priority resting bid.
func (b *Book) BestBid() (uint64, bool) {
	if len(b.bids) == 0 {
		return 0, false
	}
	return b.bids[0].Price, true
}

// BestAsk returns the price of the highest-priority resting ask.
func (b *Book) BestAsk() (uint64, bool) {
	if len(b.asks) == 0 {
		return 0, false
	}
	return b.asks[0].Price, true
}

// Insert places the order on the given side, maintaining price-time
// priority. A re-inserted partially filled maker keeps its original order id
// and therefore its original time priority at its unchanged price.
func (b *Book) Insert(s Side, o *Order) {
	orders := b.side(s)

	i := sort.Search(len(*orders), func(i int) bool {
		return ranksBefore(s, o, (*orders)[i])
	})

	*orders = append(*orders, nil)
	copy((*orders)[i+1:], (*orders)[i:])
	(*orders)[i] = o
}

// PopBest removes and returns the single best-priority order on the given
// side, or nil when the side is empty.
func (b *Book) PopBest(s Side) *Order {
	orders := b.side(s)
	if len(*orders) == 0 {
		return nil
	}

	best := (*orders)[0]
	*orders = (*orders)[1:]
	return best
}

// RemoveByID removes and returns the order with the given id from the given
// side, or nil when the side does not hold it.
func (b *Book) RemoveByID(s Side, id uint64) *Order {
	orders := b.side(s)
	for i, o := range *orders {
		if o.OrderID == id {
			*orders = append((*orders)[:i], (*orders)[i+1:]...)
			return o
		}
	}
	return nil
}

// OrderByID searches both sides for the given id without removing it.
func (b *Book) OrderByID(id uint64) (Side, *Order, bool) {
	for _, o := range b.bids {
		if o.OrderID == id {
			return SideBuy, o, true
		}
	}
	for _, o := range b.asks {
		if o.OrderID == id {
			return SideSell, o, true
		}
	}
	return 0, nil, false
}

// NextOrderID increments and returns the order id counter. Ids are assigned
// only to resting orders, never to fully filled takers.
func (b *Book) NextOrderID() uint64 {
	b.orderIDCounter++
	return b.orderIDCounter
}

// Bids returns a copy of the resting bids in priority order.
func (b *Book) Bids() []*Order {
	out := make([]*Order, len(b.bids))
	copy(out, b.bids)
	return out
}

// Asks returns a copy of the resting asks in priority order.
func (b *Book) Asks() []*Order {
	out := make([]*Order, len(b.asks))
	copy(out, b.asks)
	return out
}

// Snapshot captures the persisted book layout.
func (b *Book) Snapshot() snapshotv1.BookSnapshot {
	return snapshotv1.BookSnapshot{
		BaseAsset:      b.baseAsset,
		QuoteAsset:     b.quoteAsset,
		Bids:           toBookOrders(b.bids),
		Asks:           toBookOrders(b.asks),
		OrderIDCounter: b.orderIDCounter,
	}
}

// Restore replaces the book contents from a persisted layout. Both sides are
// re-sorted by price-time priority, so the snapshot ordering does not need
// to be trusted.
func (b *Book) Restore(snap snapshotv1.BookSnapshot) {
	b.baseAsset = snap.BaseAsset
	b.quoteAsset = snap.QuoteAsset
	b.orderIDCounter = snap.OrderIDCounter
	b.bids = fromBookOrders(snap.Bids)
	b.asks = fromBookOrders(snap.Asks)

	sort.SliceStable(b.bids, func(i, j int) bool {
		return ranksBefore(SideBuy, b.bids[i], b.bids[j])
	})
	sort.SliceStable(b.asks, func(i, j int) bool {
		return ranksBefore(SideSell, b.asks[i], b.asks[j])
	})
}

// Validate checks the book invariants: positive prices and quantities,
// price-time ordering within each side, and no crossing between the best
// bid and the best ask.
func (b *Book) Validate() error {
	for _, s := range []Side{SideBuy, SideSell} {
		orders := *b.side(s)
		for i, o := range orders {
			if o.Price == 0 {
				return fmt.Errorf("order %d has zero price", o.OrderID)
			}
			if o.Quantity == 0 {
				return fmt.Errorf("order %d has zero quantity", o.OrderID)
			}
			if i > 0 && ranksBefore(s, o, orders[i-1]) {
				return fmt.Errorf("side %s out of priority order at order %d", s, o.OrderID)
			}
		}
	}

	bestBid, okBid := b.BestBid()
	bestAsk, okAsk := b.BestAsk()
	if okBid && okAsk && bestBid >= bestAsk {
		return fmt.Errorf("book is crossed: best bid %d >= best ask %d", bestBid, bestAsk)
	}

	return nil
}

func toBookOrders(orders []*Order) []snapshotv1.BookOrder {
	out := make([]snapshotv1.BookOrder, 0, len(orders))
	for _, o := range orders {
		out = append(out, snapshotv1.BookOrder{
			Owner:    o.Owner,
			Price:    o.Price,
			Quantity: o.Quantity,
			OrderID:  o.OrderID,
		})
	}
	return out
}

func fromBookOrders(orders []snapshotv1.BookOrder) []*Order {
	out := make([]*Order, 0, len(orders))
	for _, o := range orders {
		out = append(out, &Order{
			Owner:    o.Owner,
			Price:    o.Price,
			Quantity: o.Quantity,
			OrderID:  o.OrderID,
		})
	}
	return out
}
