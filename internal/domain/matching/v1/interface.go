package matchingv1

import (
	"context"

	orderbookv1 "github.com/NeedRelax/solana-orderbook/internal/domain/orderbook/v1"
	snapshotv1 "github.com/NeedRelax/solana-orderbook/internal/domain/snapshot/v1"
)

// Matcher defines the two order-entry operations of the matching engine plus
// snapshot support. Implementations serialize all calls against the book.
//
//go:generate mockgen -source interface.go -destination=mock/interface_mock.go -package=matchingv1_mock
type Matcher interface {
	// Place reserves the taker's funds, crosses the order against the
	// opposite side and rests any unfilled remainder.
	Place(ctx context.Context, owner string, side orderbookv1.Side, price, quantity uint64) (*PlaceOutcome, error)
	// Cancel removes a resting order by id and releases its reserved funds.
	Cancel(ctx context.Context, requester string, orderID uint64) error
	// Snapshot captures the current book state.
	Snapshot() *snapshotv1.Snapshot
	// Restore replaces the book state from a snapshot.
	Restore(snapshot *snapshotv1.Snapshot)
}
