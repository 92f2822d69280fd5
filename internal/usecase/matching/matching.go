package matching

import (
	"context"
	"math/bits"
	"sync"

	ledgerv1 "github.com/NeedRelax/solana-orderbook/internal/domain/ledger/v1"
	matchingv1 "github.com/NeedRelax/solana-orderbook/internal/domain/matching/v1"
	orderbookv1 "github.com/NeedRelax/solana-orderbook/internal/domain/orderbook/v1"
	snapshotv1 "github.com/NeedRelax/solana-orderbook/internal/domain/snapshot/v1"
	tradepublisherv1 "github.com/NeedRelax/solana-orderbook/internal/domain/trade-publisher/v1"
	"github.com/NeedRelax/solana-orderbook/pkg/errors"
	"github.com/NeedRelax/solana-orderbook/pkg/logger"
)

// Engine crosses incoming limit orders against the book and settles every
// fill through the custody ledger. All operations run under one exclusive
// lock per book instance: intermediate states (a maker popped but not yet
// re-inserted) are never visible to a second caller.
type Engine struct {
	mu        sync.Mutex
	book      *orderbookv1.Book
	ledger    ledgerv1.CustodyLedger
	resolver  ledgerv1.SettlementResolver
	publisher tradepublisherv1.TradePublisher
	custody   ledgerv1.Custody
	logger    *logger.Logger
}

// NewEngine creates a matching engine bound to one book and its custody
// vaults.
func NewEngine(
	book *orderbookv1.Book,
	ledger ledgerv1.CustodyLedger,
	resolver ledgerv1.SettlementResolver,
	publisher tradepublisherv1.TradePublisher,
	custody ledgerv1.Custody,
	log *logger.Logger,
) *Engine {
	return &Engine{
		book:      book,
		ledger:    ledger,
		resolver:  resolver,
		publisher: publisher,
		custody:   custody,
		logger:    log,
	}
}

// Place reserves the taker's funds for the full requested size, crosses the
// order against resting opposite-side orders in price-time priority, and
// rests any unfilled remainder. Every fill executes at the maker's resting
// price and produces exactly one trade event after both settlement legs
// complete.
func (e *Engine) Place(ctx context.Context, owner string, side orderbookv1.Side, price, quantity uint64) (*matchingv1.PlaceOutcome, error) {
	if price == 0 || quantity == 0 {
		return nil, matchingv1.ErrInvalidOrder
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	taker, err := e.resolver.ResolveSettlementAccount(ctx, owner)
	if err != nil {
		return nil, errors.TracerFromError(err)
	}

	// Step 1: reserve the taker's funds. Nothing on the book has been
	// touched yet, so any failure here aborts with no state change.
	switch side {
	case orderbookv1.SideBuy:
		totalQuote, ok := mulUint64(price, quantity)
		if !ok {
			return nil, matchingv1.ErrCalculation
		}
		if err := e.ledger.Transfer(ctx, e.book.QuoteAsset(), taker.QuoteAccount, e.custody.QuoteVault, totalQuote); err != nil {
			return nil, errors.TracerFromError(err)
		}
	case orderbookv1.SideSell:
		if err := e.ledger.Transfer(ctx, e.book.BaseAsset(), taker.BaseAccount, e.custody.BaseVault, quantity); err != nil {
			return nil, errors.TracerFromError(err)
		}
	default:
		return nil, orderbookv1.ErrInvalidSide
	}

	outcome := &matchingv1.PlaceOutcome{}
	remaining := quantity

	// Step 2: crossing loop.
	for remaining > 0 {
		bestPrice, ok := e.bestOpposing(side)
		if !ok || !crosses(side, price, bestPrice) {
			break
		}

		maker := e.book.PopBest(side.Opposite())

		fill, err := e.settleRound(ctx, owner, taker, side, maker, remaining)
		if err != nil {
			// The maker was popped before the failing step and its quantity
			// has not been touched; restore it (original id, hence original
			// priority) so the book survives the abort.
			e.book.Insert(side.Opposite(), maker)
			return nil, err
		}

		remaining -= fill.Quantity
		maker.Quantity -= fill.Quantity
		if maker.Quantity > 0 {
			e.book.Insert(side.Opposite(), maker)
		}

		outcome.Fills = append(outcome.Fills, *fill)
	}

	// Step 3: rest the unfilled remainder.
	if remaining > 0 {
		id := e.book.NextOrderID()
		e.book.Insert(side, orderbookv1.NewOrder(owner, price, remaining, id))
		outcome.RestingOrderID = id
		outcome.RemainingQuantity = remaining

		e.logger.Debug("order resting",
			logger.Field{Key: "owner", Value: owner},
			logger.Field{Key: "side", Value: side.String()},
			logger.Field{Key: "price", Value: price},
			logger.Field{Key: "quantity", Value: remaining},
			logger.Field{Key: "orderID", Value: id},
		)
	}

	return outcome, nil
}

// settleRound executes one round of the crossing loop against an already
// popped maker: counter-party resolution, both settlement legs and the trade
// event. It never mutates the maker or the book, so the caller can restore
// the maker untouched when the round fails.
func (e *Engine) settleRound(
	ctx context.Context,
	takerOwner string,
	taker ledgerv1.Account,
	side orderbookv1.Side,
	maker *orderbookv1.Order,
	remaining uint64,
) (*matchingv1.Fill, error) {
	makerAcct, err := e.resolver.ResolveSettlementAccount(ctx, maker.Owner)
	if err != nil || makerAcct.Owner != maker.Owner {
		return nil, matchingv1.ErrMakerAccountMismatch
	}

	tradeQuantity := min(remaining, maker.Quantity)
	tradePrice := maker.Price

	totalQuote, ok := mulUint64(tradePrice, tradeQuantity)
	if !ok {
		return nil, matchingv1.ErrCalculation
	}

	// The buyer of the round receives the base leg, the seller the quote leg.
	var baseTo, quoteTo string
	if side == orderbookv1.SideBuy {
		baseTo = taker.BaseAccount
		quoteTo = makerAcct.QuoteAccount
	} else {
		baseTo = makerAcct.BaseAccount
		quoteTo = taker.QuoteAccount
	}

	if err := e.ledger.Transfer(ctx, e.book.BaseAsset(), e.custody.BaseVault, baseTo, tradeQuantity); err != nil {
		return nil, errors.TracerFromError(err)
	}
	if err := e.ledger.Transfer(ctx, e.book.QuoteAsset(), e.custody.QuoteVault, quoteTo, totalQuote); err != nil {
		return nil, errors.TracerFromError(err)
	}

	event := tradepublisherv1.NewTradeEvent(
		takerOwner,
		maker.Owner,
		e.book.BaseAsset(),
		e.book.QuoteAsset(),
		tradeQuantity,
		tradePrice,
	)
	if err := e.publisher.PublishTradeEvent(ctx, event); err != nil {
		// Fire-and-forget: a publish failure never aborts the settled trade.
		e.logger.ErrorContext(ctx, err,
			logger.Field{Key: "action", Value: "publish_trade_event"},
			logger.Field{Key: "tradeID", Value: event.TradeID},
		)
	}

	return &matchingv1.Fill{
		Maker:        maker.Owner,
		MakerOrderID: maker.OrderID,
		Quantity:     tradeQuantity,
		Price:        tradePrice,
	}, nil
}

// Cancel removes a resting order and releases its fully reserved funds back
// to the owner: price*quantity of the quote asset for a bid, quantity of the
// base asset for an ask. The order leaves the book before the refund so it
// can never be matched again.
func (e *Engine) Cancel(ctx context.Context, requester string, orderID uint64) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	side, order, ok := e.book.OrderByID(orderID)
	if !ok {
		return matchingv1.ErrOrderNotFound
	}
	if order.Owner != requester {
		return matchingv1.ErrOrderNotOwned
	}

	acct, err := e.resolver.ResolveSettlementAccount(ctx, requester)
	if err != nil {
		return errors.TracerFromError(err)
	}

	var asset, to string
	var amount uint64
	if side == orderbookv1.SideBuy {
		totalQuote, ok := mulUint64(order.Price, order.Quantity)
		if !ok {
			return matchingv1.ErrCalculation
		}
		asset, to, amount = e.book.QuoteAsset(), acct.QuoteAccount, totalQuote
	} else {
		asset, to, amount = e.book.BaseAsset(), acct.BaseAccount, order.Quantity
	}

	e.book.RemoveByID(side, orderID)

	var from string
	if side == orderbookv1.SideBuy {
		from = e.custody.QuoteVault
	} else {
		from = e.custody.BaseVault
	}

	if err := e.ledger.Transfer(ctx, asset, from, to, amount); err != nil {
		// The order is already out of the book; surface the stuck refund.
		e.logger.ErrorContext(ctx, err,
			logger.Field{Key: "action", Value: "refund_cancelled_order"},
			logger.Field{Key: "orderID", Value: orderID},
			logger.Field{Key: "amount", Value: amount},
		)
		return errors.TracerFromError(err)
	}

	return nil
}

// Snapshot captures the current book state under the engine lock.
func (e *Engine) Snapshot() *snapshotv1.Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()

	return &snapshotv1.Snapshot{
		Book: e.book.Snapshot(),
	}
}

// Restore replaces the book state from a snapshot.
func (e *Engine) Restore(snapshot *snapshotv1.Snapshot) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.book.Restore(snapshot.Book)
}

// bestOpposing returns the best price on the side the taker matches against.
func (e *Engine) bestOpposing(side orderbookv1.Side) (uint64, bool) {
	if side == orderbookv1.SideBuy {
		return e.book.BestAsk()
	}
	return e.book.BestBid()
}

// crosses reports whether the taker's limit price reaches the best opposing
// price.
func crosses(side orderbookv1.Side, takerPrice, bestOpposing uint64) bool {
	if side == orderbookv1.SideBuy {
		return takerPrice >= bestOpposing
	}
	return takerPrice <= bestOpposing
}

// mulUint64 multiplies two uint64 values, reporting overflow.
func mulUint64(a, b uint64) (uint64, bool) {
	hi, lo := bits.Mul64(a, b)
	return lo, hi == 0
}
