package ledger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ledgerv1 "github.com/NeedRelax/solana-orderbook/internal/domain/ledger/v1"
)

func TestMemory_RegisterAndResolve(t *testing.T) {
	mem := NewMemory()
	ctx := context.Background()

	acct := mem.Register("alice")
	assert.Equal(t, "alice", acct.Owner)
	assert.Equal(t, "alice/base", acct.BaseAccount)
	assert.Equal(t, "alice/quote", acct.QuoteAccount)

	resolved, err := mem.ResolveSettlementAccount(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, acct, resolved)

	_, err = mem.ResolveSettlementAccount(ctx, "bob")
	assert.ErrorIs(t, err, ErrUnknownAccount)
}

func TestMemory_RegisterAccount(t *testing.T) {
	mem := NewMemory()

	custom := ledgerv1.Account{
		Owner:        "desk",
		BaseAccount:  "desk-base-7",
		QuoteAccount: "desk-quote-7",
	}
	mem.RegisterAccount(custom)

	resolved, err := mem.ResolveSettlementAccount(context.Background(), "desk")
	require.NoError(t, err)
	assert.Equal(t, custom, resolved)
}

func TestMemory_Transfer(t *testing.T) {
	mem := NewMemory()
	ctx := context.Background()

	mem.Deposit("SOL", "a", 100)

	require.NoError(t, mem.Transfer(ctx, "SOL", "a", "b", 40))
	assert.Equal(t, uint64(60), mem.BalanceOf("SOL", "a"))
	assert.Equal(t, uint64(40), mem.BalanceOf("SOL", "b"))
}

func TestMemory_TransferInsufficientFunds(t *testing.T) {
	mem := NewMemory()
	ctx := context.Background()

	mem.Deposit("SOL", "a", 10)

	err := mem.Transfer(ctx, "SOL", "a", "b", 11)
	assert.ErrorIs(t, err, ErrInsufficientFunds)

	// All-or-nothing: no funds moved
	assert.Equal(t, uint64(10), mem.BalanceOf("SOL", "a"))
	assert.Equal(t, uint64(0), mem.BalanceOf("SOL", "b"))
}

func TestMemory_TransferUnknownAsset(t *testing.T) {
	mem := NewMemory()

	err := mem.Transfer(context.Background(), "DOGE", "a", "b", 1)
	assert.ErrorIs(t, err, ErrInsufficientFunds)
}

func TestMemory_BalanceOfUnknownAccount(t *testing.T) {
	mem := NewMemory()
	assert.Equal(t, uint64(0), mem.BalanceOf("SOL", "ghost"))
}
