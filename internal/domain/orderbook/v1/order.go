package orderbookv1

import (
	"github.com/NeedRelax/solana-orderbook/pkg/errors"
)

// Side identifies which half of the book an order belongs to.
type Side uint8

const (
	// SideBuy is the bid side of the book.
	SideBuy Side = iota
	// SideSell is the ask side of the book.
	SideSell
)

// ErrInvalidSide is returned when an order request carries an unknown side.
var ErrInvalidSide = errors.NewErrorDetails(
	"order side must be buy or sell",
	string(errors.DexInvalidSide),
	"side",
)

// String returns the wire representation of the side.
func (s Side) String() string {
	if s == SideBuy {
		return "buy"
	}
	return "sell"
}

// Opposite returns the side a taker order matches against.
func (s Side) Opposite() Side {
	if s == SideBuy {
		return SideSell
	}
	return SideBuy
}

// ParseSide parses the wire representation of a side.
func ParseSide(s string) (Side, error) {
	switch s {
	case "buy":
		return SideBuy, nil
	case "sell":
		return SideSell, nil
	default:
		return 0, ErrInvalidSide
	}
}

// Order represents a single order in the order book. Quantity is the
// remaining unfilled base-asset amount and only ever decreases; an order
// whose quantity reaches zero is removed from the book in the same step.
type Order struct {
	Owner    string `json:"owner"`
	Price    uint64 `json:"price"`
	Quantity uint64 `json:"quantity"`
	OrderID  uint64 `json:"orderID"`
}

// NewOrder creates a new order with the given parameters.
func NewOrder(owner string, price, quantity, orderID uint64) *Order {
	return &Order{
		Owner:    owner,
		Price:    price,
		Quantity: quantity,
		OrderID:  orderID,
	}
}

// IsFilled checks if the order is filled (quantity is zero).
func (o *Order) IsFilled() bool {
	return o.Quantity == 0
}
