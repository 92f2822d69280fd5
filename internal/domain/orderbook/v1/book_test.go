package orderbookv1

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	snapshotv1 "github.com/NeedRelax/solana-orderbook/internal/domain/snapshot/v1"
)

func TestParseSide(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected Side
		wantErr  bool
	}{
		{name: "buy", input: "buy", expected: SideBuy},
		{name: "sell", input: "sell", expected: SideSell},
		{name: "unknown", input: "hold", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			side, err := ParseSide(tc.input)
			if tc.wantErr {
				assert.ErrorIs(t, err, ErrInvalidSide)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, side)
		})
	}
}

func TestSide_Opposite(t *testing.T) {
	assert.Equal(t, SideSell, SideBuy.Opposite())
	assert.Equal(t, SideBuy, SideSell.Opposite())
}

func TestBook_InsertOrdering(t *testing.T) {
	testCases := []struct {
		name     string
		side     Side
		orders   []*Order
		expected []uint64 // order ids in expected priority order
	}{
		{
			name: "bids sorted highest price first",
			side: SideBuy,
			orders: []*Order{
				NewOrder("a", 100, 1, 1),
				NewOrder("b", 105, 1, 2),
				NewOrder("c", 95, 1, 3),
			},
			expected: []uint64{2, 1, 3},
		},
		{
			name: "asks sorted lowest price first",
			side: SideSell,
			orders: []*Order{
				NewOrder("a", 100, 1, 1),
				NewOrder("b", 105, 1, 2),
				NewOrder("c", 95, 1, 3),
			},
			expected: []uint64{3, 1, 2},
		},
		{
			name: "equal prices keep earlier order id first",
			side: SideBuy,
			orders: []*Order{
				NewOrder("a", 100, 1, 5),
				NewOrder("b", 100, 1, 2),
				NewOrder("c", 100, 1, 9),
			},
			expected: []uint64{2, 5, 9},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			book := NewBook("SOL", "USDC")
			for _, o := range tc.orders {
				book.Insert(tc.side, o)
			}

			var got []uint64
			for {
				o := book.PopBest(tc.side)
				if o == nil {
					break
				}
				got = append(got, o.OrderID)
			}
			assert.Equal(t, tc.expected, got)
		})
	}
}

func TestBook_BestPrices(t *testing.T) {
	book := NewBook("SOL", "USDC")

	_, ok := book.BestBid()
	assert.False(t, ok)
	_, ok = book.BestAsk()
	assert.False(t, ok)

	book.Insert(SideBuy, NewOrder("a", 98, 1, 1))
	book.Insert(SideBuy, NewOrder("b", 99, 1, 2))
	book.Insert(SideSell, NewOrder("c", 101, 1, 3))
	book.Insert(SideSell, NewOrder("d", 103, 1, 4))

	bid, ok := book.BestBid()
	require.True(t, ok)
	assert.Equal(t, uint64(99), bid)

	ask, ok := book.BestAsk()
	require.True(t, ok)
	assert.Equal(t, uint64(101), ask)

	require.NoError(t, book.Validate())
}

func TestBook_PopBestEmpty(t *testing.T) {
	book := NewBook("SOL", "USDC")
	assert.Nil(t, book.PopBest(SideBuy))
	assert.Nil(t, book.PopBest(SideSell))
}

func TestBook_RemoveByID(t *testing.T) {
	book := NewBook("SOL", "USDC")
	book.Insert(SideBuy, NewOrder("a", 100, 1, 1))
	book.Insert(SideBuy, NewOrder("b", 100, 1, 2))
	book.Insert(SideBuy, NewOrder("c", 100, 1, 3))

	removed := book.RemoveByID(SideBuy, 2)
	require.NotNil(t, removed)
	assert.Equal(t, "b", removed.Owner)

	// Remaining orders keep their relative priority
	assert.Equal(t, uint64(1), book.PopBest(SideBuy).OrderID)
	assert.Equal(t, uint64(3), book.PopBest(SideBuy).OrderID)

	assert.Nil(t, book.RemoveByID(SideBuy, 2))
}

func TestBook_OrderByID(t *testing.T) {
	book := NewBook("SOL", "USDC")
	book.Insert(SideBuy, NewOrder("a", 100, 1, 1))
	book.Insert(SideSell, NewOrder("b", 110, 1, 2))

	side, order, ok := book.OrderByID(1)
	require.True(t, ok)
	assert.Equal(t, SideBuy, side)
	assert.Equal(t, "a", order.Owner)

	side, order, ok = book.OrderByID(2)
	require.True(t, ok)
	assert.Equal(t, SideSell, side)
	assert.Equal(t, "b", order.Owner)

	_, _, ok = book.OrderByID(99)
	assert.False(t, ok)
}

func TestBook_NextOrderID(t *testing.T) {
	book := NewBook("SOL", "USDC")

	assert.Equal(t, uint64(1), book.NextOrderID())
	assert.Equal(t, uint64(2), book.NextOrderID())

	// Removing an order never frees its id for reuse
	book.Insert(SideBuy, NewOrder("a", 100, 1, 2))
	book.RemoveByID(SideBuy, 2)
	assert.Equal(t, uint64(3), book.NextOrderID())
}

func TestBook_SnapshotRestore(t *testing.T) {
	book := NewBook("SOL", "USDC")
	book.Insert(SideBuy, NewOrder("a", 100, 5, book.NextOrderID()))
	book.Insert(SideBuy, NewOrder("b", 102, 3, book.NextOrderID()))
	book.Insert(SideSell, NewOrder("c", 110, 7, book.NextOrderID()))

	snap := book.Snapshot()

	restored := NewBook("", "")
	restored.Restore(snap)

	assert.Equal(t, "SOL", restored.BaseAsset())
	assert.Equal(t, "USDC", restored.QuoteAsset())
	assert.Equal(t, uint64(4), restored.NextOrderID())

	bids := restored.Bids()
	require.Len(t, bids, 2)
	assert.Equal(t, uint64(102), bids[0].Price)
	assert.Equal(t, uint64(100), bids[1].Price)
	require.Len(t, restored.Asks(), 1)
	require.NoError(t, restored.Validate())
}

func TestBook_RestoreResorts(t *testing.T) {
	// A stored snapshot is not trusted to be ordered
	snap := snapshotv1.BookSnapshot{
		BaseAsset:  "SOL",
		QuoteAsset: "USDC",
		Bids: []snapshotv1.BookOrder{
			{Owner: "a", Price: 95, Quantity: 1, OrderID: 1},
			{Owner: "b", Price: 100, Quantity: 1, OrderID: 3},
			{Owner: "c", Price: 100, Quantity: 1, OrderID: 2},
		},
		Asks: []snapshotv1.BookOrder{
			{Owner: "d", Price: 120, Quantity: 1, OrderID: 4},
			{Owner: "e", Price: 110, Quantity: 1, OrderID: 5},
		},
		OrderIDCounter: 5,
	}

	book := NewBook("", "")
	book.Restore(snap)
	require.NoError(t, book.Validate())

	bids := book.Bids()
	require.Len(t, bids, 3)
	assert.Equal(t, uint64(2), bids[0].OrderID)
	assert.Equal(t, uint64(3), bids[1].OrderID)
	assert.Equal(t, uint64(1), bids[2].OrderID)

	asks := book.Asks()
	require.Len(t, asks, 2)
	assert.Equal(t, uint64(5), asks[0].OrderID)
	assert.Equal(t, uint64(4), asks[1].OrderID)
}

func TestBook_Validate(t *testing.T) {
	t.Run("crossed book", func(t *testing.T) {
		book := NewBook("SOL", "USDC")
		book.Insert(SideBuy, NewOrder("a", 105, 1, 1))
		book.Insert(SideSell, NewOrder("b", 100, 1, 2))
		assert.Error(t, book.Validate())
	})

	t.Run("zero quantity order", func(t *testing.T) {
		book := NewBook("SOL", "USDC")
		book.Insert(SideBuy, &Order{Owner: "a", Price: 100, Quantity: 0, OrderID: 1})
		assert.Error(t, book.Validate())
	})

	t.Run("empty book is valid", func(t *testing.T) {
		assert.NoError(t, NewBook("SOL", "USDC").Validate())
	})
}
