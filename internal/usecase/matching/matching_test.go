package matching

import (
	"context"
	"math"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ledgerv1 "github.com/NeedRelax/solana-orderbook/internal/domain/ledger/v1"
	ledgermock "github.com/NeedRelax/solana-orderbook/internal/domain/ledger/v1/mock"
	matchingv1 "github.com/NeedRelax/solana-orderbook/internal/domain/matching/v1"
	orderbookv1 "github.com/NeedRelax/solana-orderbook/internal/domain/orderbook/v1"
	tradepublishermock "github.com/NeedRelax/solana-orderbook/internal/domain/trade-publisher/v1/mock"
	"github.com/NeedRelax/solana-orderbook/internal/usecase/ledger"
	"github.com/NeedRelax/solana-orderbook/pkg/logger"
)

const (
	baseAsset  = "SOL"
	quoteAsset = "USDC"
	baseVault  = "vault:base"
	quoteVault = "vault:quote"
)

var testCustody = ledgerv1.Custody{BaseVault: baseVault, QuoteVault: quoteVault}

// engineFixture wires a matching engine to the in-memory ledger so funds
// conservation can be asserted end to end.
type engineFixture struct {
	engine    *Engine
	book      *orderbookv1.Book
	ledger    *ledger.Memory
	publisher *tradepublishermock.MockTradePublisher
}

func setupEngine(t *testing.T) *engineFixture {
	t.Helper()

	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	log, err := logger.NewLogger(logger.WithLoggingLevel(logger.ErrorLevel))
	require.NoError(t, err)

	book := orderbookv1.NewBook(baseAsset, quoteAsset)
	mem := ledger.NewMemory()
	publisher := tradepublishermock.NewMockTradePublisher(ctrl)

	return &engineFixture{
		engine:    NewEngine(book, mem, mem, publisher, testCustody, log),
		book:      book,
		ledger:    mem,
		publisher: publisher,
	}
}

// fund registers a party and credits both settlement accounts.
func (f *engineFixture) fund(owner string, base, quote uint64) ledgerv1.Account {
	acct := f.ledger.Register(owner)
	f.ledger.Deposit(baseAsset, acct.BaseAccount, base)
	f.ledger.Deposit(quoteAsset, acct.QuoteAccount, quote)
	return acct
}

func (f *engineFixture) expectTrades(n int) {
	f.publisher.EXPECT().
		PublishTradeEvent(gomock.Any(), gomock.Any()).
		Return(nil).
		Times(n)
}

func TestEngine_PlaceRestsOnEmptyBook(t *testing.T) {
	f := setupEngine(t)
	ctx := context.Background()
	alice := f.fund("alice", 0, 10_000)

	outcome, err := f.engine.Place(ctx, "alice", orderbookv1.SideBuy, 100, 10)
	require.NoError(t, err)

	assert.Empty(t, outcome.Fills)
	assert.Equal(t, uint64(1), outcome.RestingOrderID)
	assert.Equal(t, uint64(10), outcome.RemainingQuantity)

	bids := f.book.Bids()
	require.Len(t, bids, 1)
	assert.Equal(t, uint64(100), bids[0].Price)
	assert.Equal(t, uint64(10), bids[0].Quantity)
	assert.Equal(t, uint64(1), bids[0].OrderID)
	assert.Empty(t, f.book.Asks())

	// The full quote cost is reserved in the vault
	assert.Equal(t, uint64(1000), f.ledger.BalanceOf(quoteAsset, quoteVault))
	assert.Equal(t, uint64(9000), f.ledger.BalanceOf(quoteAsset, alice.QuoteAccount))
}

func TestEngine_PlaceFillsAndRestsRemainder(t *testing.T) {
	f := setupEngine(t)
	ctx := context.Background()
	alice := f.fund("alice", 0, 10_000)
	bob := f.fund("bob", 100, 0)

	f.expectTrades(1)

	// Resting ask 5@100 from bob
	_, err := f.engine.Place(ctx, "bob", orderbookv1.SideSell, 100, 5)
	require.NoError(t, err)

	// Taker buy 10@100 crosses for 5 and rests the remainder
	outcome, err := f.engine.Place(ctx, "alice", orderbookv1.SideBuy, 100, 10)
	require.NoError(t, err)

	require.Len(t, outcome.Fills, 1)
	assert.Equal(t, matchingv1.Fill{Maker: "bob", MakerOrderID: 1, Quantity: 5, Price: 100}, outcome.Fills[0])
	assert.Equal(t, uint64(2), outcome.RestingOrderID)
	assert.Equal(t, uint64(5), outcome.RemainingQuantity)

	assert.Empty(t, f.book.Asks())
	bids := f.book.Bids()
	require.Len(t, bids, 1)
	assert.Equal(t, uint64(5), bids[0].Quantity)
	assert.Equal(t, uint64(2), bids[0].OrderID)

	// Settlement: alice received 5 base, bob received 500 quote
	assert.Equal(t, uint64(5), f.ledger.BalanceOf(baseAsset, alice.BaseAccount))
	assert.Equal(t, uint64(500), f.ledger.BalanceOf(quoteAsset, bob.QuoteAccount))
	// The unfilled remainder stays reserved
	assert.Equal(t, uint64(500), f.ledger.BalanceOf(quoteAsset, quoteVault))
	assert.Equal(t, uint64(0), f.ledger.BalanceOf(baseAsset, baseVault))
}

func TestEngine_PartialMakerKeepsPriority(t *testing.T) {
	f := setupEngine(t)
	ctx := context.Background()
	alice := f.fund("alice", 0, 10_000)
	f.fund("bob", 100, 0)

	f.expectTrades(1)

	_, err := f.engine.Place(ctx, "bob", orderbookv1.SideSell, 100, 20)
	require.NoError(t, err)

	// Taker is fully filled, no new order id is burned for it
	outcome, err := f.engine.Place(ctx, "alice", orderbookv1.SideBuy, 100, 5)
	require.NoError(t, err)

	require.Len(t, outcome.Fills, 1)
	assert.Equal(t, uint64(5), outcome.Fills[0].Quantity)
	assert.Equal(t, uint64(0), outcome.RestingOrderID)
	assert.Equal(t, uint64(0), outcome.RemainingQuantity)

	asks := f.book.Asks()
	require.Len(t, asks, 1)
	assert.Equal(t, uint64(15), asks[0].Quantity)
	assert.Equal(t, uint64(1), asks[0].OrderID)
	assert.Empty(t, f.book.Bids())

	assert.Equal(t, uint64(5), f.ledger.BalanceOf(baseAsset, alice.BaseAccount))
}

func TestEngine_PriceTimePriority(t *testing.T) {
	f := setupEngine(t)
	ctx := context.Background()
	f.fund("alice", 0, 100_000)
	f.fund("bob", 1000, 0)
	f.fund("carol", 1000, 0)

	f.expectTrades(3)

	// carol's cheaper ask must fill first despite arriving later; at equal
	// prices bob's earlier order fills before carol's.
	_, err := f.engine.Place(ctx, "bob", orderbookv1.SideSell, 100, 5) // id 1
	require.NoError(t, err)
	_, err = f.engine.Place(ctx, "carol", orderbookv1.SideSell, 100, 5) // id 2
	require.NoError(t, err)
	_, err = f.engine.Place(ctx, "carol", orderbookv1.SideSell, 99, 5) // id 3
	require.NoError(t, err)

	outcome, err := f.engine.Place(ctx, "alice", orderbookv1.SideBuy, 100, 12)
	require.NoError(t, err)

	require.Len(t, outcome.Fills, 3)
	assert.Equal(t, matchingv1.Fill{Maker: "carol", MakerOrderID: 3, Quantity: 5, Price: 99}, outcome.Fills[0])
	assert.Equal(t, matchingv1.Fill{Maker: "bob", MakerOrderID: 1, Quantity: 5, Price: 100}, outcome.Fills[1])
	assert.Equal(t, matchingv1.Fill{Maker: "carol", MakerOrderID: 2, Quantity: 2, Price: 100}, outcome.Fills[2])

	asks := f.book.Asks()
	require.Len(t, asks, 1)
	assert.Equal(t, uint64(2), asks[0].OrderID)
	assert.Equal(t, uint64(3), asks[0].Quantity)
}

func TestEngine_NonCrossingOrdersRest(t *testing.T) {
	f := setupEngine(t)
	ctx := context.Background()
	f.fund("alice", 0, 10_000)
	f.fund("bob", 100, 0)

	_, err := f.engine.Place(ctx, "bob", orderbookv1.SideSell, 105, 5)
	require.NoError(t, err)

	// 100 < 105: no trade, both rest
	outcome, err := f.engine.Place(ctx, "alice", orderbookv1.SideBuy, 100, 5)
	require.NoError(t, err)

	assert.Empty(t, outcome.Fills)
	require.Len(t, f.book.Bids(), 1)
	require.Len(t, f.book.Asks(), 1)
	require.NoError(t, f.book.Validate())
}

func TestEngine_PlaceValidation(t *testing.T) {
	f := setupEngine(t)
	ctx := context.Background()
	f.fund("alice", 100, 100)

	_, err := f.engine.Place(ctx, "alice", orderbookv1.SideBuy, 0, 10)
	assert.ErrorIs(t, err, matchingv1.ErrInvalidOrder)

	_, err = f.engine.Place(ctx, "alice", orderbookv1.SideBuy, 100, 0)
	assert.ErrorIs(t, err, matchingv1.ErrInvalidOrder)

	_, err = f.engine.Place(ctx, "nobody", orderbookv1.SideBuy, 100, 10)
	assert.ErrorIs(t, err, ledger.ErrUnknownAccount)
}

func TestEngine_PlaceOverflow(t *testing.T) {
	f := setupEngine(t)
	ctx := context.Background()
	alice := f.fund("alice", 0, 10_000)

	_, err := f.engine.Place(ctx, "alice", orderbookv1.SideBuy, math.MaxUint64, 2)
	assert.ErrorIs(t, err, matchingv1.ErrCalculation)

	// No reservation happened and the book is untouched
	assert.Equal(t, uint64(10_000), f.ledger.BalanceOf(quoteAsset, alice.QuoteAccount))
	assert.Empty(t, f.book.Bids())
}

func TestEngine_PlaceInsufficientFunds(t *testing.T) {
	f := setupEngine(t)
	ctx := context.Background()
	f.fund("alice", 0, 100)

	_, err := f.engine.Place(ctx, "alice", orderbookv1.SideBuy, 100, 10)
	assert.ErrorIs(t, err, ledger.ErrInsufficientFunds)
	assert.Empty(t, f.book.Bids())
}

func TestEngine_MakerAccountMismatchRestoresMaker(t *testing.T) {
	f := setupEngine(t)
	ctx := context.Background()
	f.fund("alice", 0, 10_000)
	f.fund("bob", 100, 0)

	_, err := f.engine.Place(ctx, "bob", orderbookv1.SideSell, 100, 5)
	require.NoError(t, err)

	// bob's settlement accounts disappear between resting and matching
	directory := ledger.NewMemory()
	directory.Register("alice")
	f.engine.resolver = directory

	_, err = f.engine.Place(ctx, "alice", orderbookv1.SideBuy, 100, 5)
	assert.ErrorIs(t, err, matchingv1.ErrMakerAccountMismatch)

	// The popped maker was restored untouched, original id and quantity
	asks := f.book.Asks()
	require.Len(t, asks, 1)
	assert.Equal(t, uint64(1), asks[0].OrderID)
	assert.Equal(t, uint64(5), asks[0].Quantity)
}

func TestEngine_SettlementFailureRestoresMaker(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	log, err := logger.NewLogger(logger.WithLoggingLevel(logger.ErrorLevel))
	require.NoError(t, err)

	book := orderbookv1.NewBook(baseAsset, quoteAsset)
	book.Insert(orderbookv1.SideSell, orderbookv1.NewOrder("bob", 100, 5, book.NextOrderID()))

	mockLedger := ledgermock.NewMockCustodyLedger(ctrl)
	resolver := ledger.NewMemory()
	resolver.Register("alice")
	resolver.Register("bob")
	publisher := tradepublishermock.NewMockTradePublisher(ctrl)

	engine := NewEngine(book, mockLedger, resolver, publisher, testCustody, log)
	ctx := context.Background()

	// Reservation succeeds, the base settlement leg fails mid-loop
	mockLedger.EXPECT().
		Transfer(ctx, quoteAsset, "alice/quote", quoteVault, uint64(500)).
		Return(nil)
	mockLedger.EXPECT().
		Transfer(ctx, baseAsset, baseVault, "alice/base", uint64(5)).
		Return(ledger.ErrInsufficientFunds)

	_, err = engine.Place(ctx, "alice", orderbookv1.SideBuy, 100, 5)
	assert.ErrorIs(t, err, ledger.ErrInsufficientFunds)

	asks := book.Asks()
	require.Len(t, asks, 1)
	assert.Equal(t, uint64(1), asks[0].OrderID)
	assert.Equal(t, uint64(5), asks[0].Quantity)
}

func TestEngine_PublishFailureDoesNotAbortTrade(t *testing.T) {
	f := setupEngine(t)
	ctx := context.Background()
	alice := f.fund("alice", 0, 10_000)
	f.fund("bob", 100, 0)

	f.publisher.EXPECT().
		PublishTradeEvent(gomock.Any(), gomock.Any()).
		Return(assert.AnError).
		Times(1)

	_, err := f.engine.Place(ctx, "bob", orderbookv1.SideSell, 100, 5)
	require.NoError(t, err)

	outcome, err := f.engine.Place(ctx, "alice", orderbookv1.SideBuy, 100, 5)
	require.NoError(t, err)
	require.Len(t, outcome.Fills, 1)
	assert.Equal(t, uint64(5), f.ledger.BalanceOf(baseAsset, alice.BaseAccount))
}

func TestEngine_CancelBidRefundsQuote(t *testing.T) {
	f := setupEngine(t)
	ctx := context.Background()
	alice := f.fund("alice", 0, 10_000)

	outcome, err := f.engine.Place(ctx, "alice", orderbookv1.SideBuy, 100, 10)
	require.NoError(t, err)

	require.NoError(t, f.engine.Cancel(ctx, "alice", outcome.RestingOrderID))

	assert.Empty(t, f.book.Bids())
	assert.Equal(t, uint64(10_000), f.ledger.BalanceOf(quoteAsset, alice.QuoteAccount))
	assert.Equal(t, uint64(0), f.ledger.BalanceOf(quoteAsset, quoteVault))

	// A second cancel of the same id fails, the refund happened exactly once
	err = f.engine.Cancel(ctx, "alice", outcome.RestingOrderID)
	assert.ErrorIs(t, err, matchingv1.ErrOrderNotFound)
	assert.Equal(t, uint64(10_000), f.ledger.BalanceOf(quoteAsset, alice.QuoteAccount))
}

func TestEngine_CancelAskRefundsBase(t *testing.T) {
	f := setupEngine(t)
	ctx := context.Background()
	bob := f.fund("bob", 100, 0)

	outcome, err := f.engine.Place(ctx, "bob", orderbookv1.SideSell, 100, 40)
	require.NoError(t, err)

	require.NoError(t, f.engine.Cancel(ctx, "bob", outcome.RestingOrderID))

	assert.Empty(t, f.book.Asks())
	assert.Equal(t, uint64(100), f.ledger.BalanceOf(baseAsset, bob.BaseAccount))
}

func TestEngine_CancelPartiallyFilledRefundsRemainder(t *testing.T) {
	f := setupEngine(t)
	ctx := context.Background()
	f.fund("alice", 0, 10_000)
	bob := f.fund("bob", 100, 0)

	f.expectTrades(1)

	outcome, err := f.engine.Place(ctx, "bob", orderbookv1.SideSell, 100, 20)
	require.NoError(t, err)
	_, err = f.engine.Place(ctx, "alice", orderbookv1.SideBuy, 100, 5)
	require.NoError(t, err)

	require.NoError(t, f.engine.Cancel(ctx, "bob", outcome.RestingOrderID))

	// 5 sold, 15 refunded
	assert.Equal(t, uint64(15+80), f.ledger.BalanceOf(baseAsset, bob.BaseAccount))
	assert.Equal(t, uint64(0), f.ledger.BalanceOf(baseAsset, baseVault))
}

func TestEngine_CancelOwnership(t *testing.T) {
	f := setupEngine(t)
	ctx := context.Background()
	f.fund("alice", 0, 10_000)
	f.fund("mallory", 0, 0)

	outcome, err := f.engine.Place(ctx, "alice", orderbookv1.SideBuy, 100, 10)
	require.NoError(t, err)

	err = f.engine.Cancel(ctx, "mallory", outcome.RestingOrderID)
	assert.ErrorIs(t, err, matchingv1.ErrOrderNotOwned)

	// The order is still resting and still funded
	require.Len(t, f.book.Bids(), 1)
	assert.Equal(t, uint64(1000), f.ledger.BalanceOf(quoteAsset, quoteVault))
}

func TestEngine_CancelUnknownOrder(t *testing.T) {
	f := setupEngine(t)

	err := f.engine.Cancel(context.Background(), "alice", 42)
	assert.ErrorIs(t, err, matchingv1.ErrOrderNotFound)
}

func TestEngine_FundsConservation(t *testing.T) {
	f := setupEngine(t)
	ctx := context.Background()
	f.fund("alice", 0, 100_000)
	f.fund("bob", 1000, 0)
	f.fund("carol", 1000, 0)

	f.publisher.EXPECT().
		PublishTradeEvent(gomock.Any(), gomock.Any()).
		Return(nil).
		AnyTimes()

	_, err := f.engine.Place(ctx, "bob", orderbookv1.SideSell, 100, 10)
	require.NoError(t, err)
	_, err = f.engine.Place(ctx, "carol", orderbookv1.SideSell, 95, 7)
	require.NoError(t, err)
	_, err = f.engine.Place(ctx, "alice", orderbookv1.SideBuy, 100, 12)
	require.NoError(t, err)
	outcome, err := f.engine.Place(ctx, "alice", orderbookv1.SideBuy, 90, 3)
	require.NoError(t, err)
	require.NoError(t, f.engine.Cancel(ctx, "alice", outcome.RestingOrderID))

	totalBase := f.ledger.BalanceOf(baseAsset, baseVault) +
		f.ledger.BalanceOf(baseAsset, "alice/base") +
		f.ledger.BalanceOf(baseAsset, "bob/base") +
		f.ledger.BalanceOf(baseAsset, "carol/base")
	totalQuote := f.ledger.BalanceOf(quoteAsset, quoteVault) +
		f.ledger.BalanceOf(quoteAsset, "alice/quote") +
		f.ledger.BalanceOf(quoteAsset, "bob/quote") +
		f.ledger.BalanceOf(quoteAsset, "carol/quote")

	assert.Equal(t, uint64(2000), totalBase)
	assert.Equal(t, uint64(100_000), totalQuote)
	require.NoError(t, f.book.Validate())
}

func TestEngine_SnapshotRestoreRoundTrip(t *testing.T) {
	f := setupEngine(t)
	ctx := context.Background()
	f.fund("alice", 0, 10_000)
	f.fund("bob", 100, 0)

	_, err := f.engine.Place(ctx, "alice", orderbookv1.SideBuy, 95, 10)
	require.NoError(t, err)
	_, err = f.engine.Place(ctx, "bob", orderbookv1.SideSell, 105, 5)
	require.NoError(t, err)

	snap := f.engine.Snapshot()
	require.Len(t, snap.Book.Bids, 1)
	require.Len(t, snap.Book.Asks, 1)

	other := setupEngine(t)
	other.engine.Restore(snap)

	require.Len(t, other.book.Bids(), 1)
	require.Len(t, other.book.Asks(), 1)
	assert.Equal(t, uint64(3), other.book.NextOrderID())
}
