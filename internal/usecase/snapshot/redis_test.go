package snapshot

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	snapshotv1 "github.com/NeedRelax/solana-orderbook/internal/domain/snapshot/v1"
	"github.com/NeedRelax/solana-orderbook/pkg/logger"
	redis_mock "github.com/NeedRelax/solana-orderbook/pkg/redis/mock"
)

func newRedisFixture(t *testing.T) (*RedisStore, *redis_mock.MockClient) {
	t.Helper()

	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	log, err := logger.NewLogger(logger.WithLoggingLevel(logger.ErrorLevel))
	require.NoError(t, err)

	client := redis_mock.NewMockClient(ctrl)
	return NewRedisStore(client, "SOL/USDC", log), client
}

func TestRedisStore_Store(t *testing.T) {
	store, client := newRedisFixture(t)
	ctx := context.Background()

	snap := &snapshotv1.Snapshot{
		OrderOffset: 7,
		Book: snapshotv1.BookSnapshot{
			BaseAsset:      "SOL",
			QuoteAsset:     "USDC",
			OrderIDCounter: 3,
		},
	}
	buf, err := json.Marshal(snap)
	require.NoError(t, err)

	client.EXPECT().
		Set(ctx, "SOL/USDC", buf, time.Duration(0)).
		Return(nil)

	require.NoError(t, store.Store(ctx, snap))
}

func TestRedisStore_LoadEmpty(t *testing.T) {
	store, client := newRedisFixture(t)
	ctx := context.Background()

	client.EXPECT().Get(ctx, "SOL/USDC").Return("", nil)

	snap, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Nil(t, snap)
}

func TestRedisStore_LoadRoundTrip(t *testing.T) {
	store, client := newRedisFixture(t)
	ctx := context.Background()

	want := &snapshotv1.Snapshot{
		OrderOffset: 19,
		Book: snapshotv1.BookSnapshot{
			BaseAsset:  "SOL",
			QuoteAsset: "USDC",
			Bids: []snapshotv1.BookOrder{
				{Owner: "alice", Price: 95, Quantity: 4, OrderID: 6},
			},
			OrderIDCounter: 6,
		},
	}
	buf, err := json.Marshal(want)
	require.NoError(t, err)

	client.EXPECT().Get(ctx, "SOL/USDC").Return(string(buf), nil)

	got, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}
