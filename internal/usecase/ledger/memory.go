package ledger

import (
	"context"
	"fmt"
	"sync"

	ledgerv1 "github.com/NeedRelax/solana-orderbook/internal/domain/ledger/v1"
	"github.com/NeedRelax/solana-orderbook/pkg/errors"
)

var (
	// ErrUnknownAccount is returned when resolving a party that was never
	// registered with the ledger.
	ErrUnknownAccount = errors.NewErrorDetails(
		"no settlement accounts registered for this party",
		string(errors.LedgerUnknownAccount),
		"resolve",
	)

	// ErrInsufficientFunds is returned when a transfer exceeds the source
	// account balance. No funds move.
	ErrInsufficientFunds = errors.NewErrorDetails(
		"transfer exceeds the source account balance",
		string(errors.LedgerInsufficientFunds),
		"transfer",
	)
)

// Memory is an in-process custody ledger and settlement directory. The
// production ledger is an external system; this implementation backs local
// runs and the matching tests, and keeps the same all-or-nothing transfer
// contract.
type Memory struct {
	mu       sync.RWMutex
	balances map[string]map[string]uint64 // asset -> account -> balance
	accounts map[string]ledgerv1.Account  // owner -> settlement accounts
}

// NewMemory creates an empty in-memory ledger.
func NewMemory() *Memory {
	return &Memory{
		balances: make(map[string]map[string]uint64),
		accounts: make(map[string]ledgerv1.Account),
	}
}

// Register records settlement accounts for a party, deriving the account
// identifiers from the owner, and returns them.
func (m *Memory) Register(owner string) ledgerv1.Account {
	acct := ledgerv1.Account{
		Owner:        owner,
		BaseAccount:  fmt.Sprintf("%s/base", owner),
		QuoteAccount: fmt.Sprintf("%s/quote", owner),
	}

	m.mu.Lock()
	m.accounts[owner] = acct
	m.mu.Unlock()

	return acct
}

// RegisterAccount records pre-built settlement accounts for a party.
func (m *Memory) RegisterAccount(acct ledgerv1.Account) {
	m.mu.Lock()
	m.accounts[acct.Owner] = acct
	m.mu.Unlock()
}

// Deposit credits an account out of thin air. Test and bootstrap helper.
func (m *Memory) Deposit(asset, account string, amount uint64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.balances[asset] == nil {
		m.balances[asset] = make(map[string]uint64)
	}
	m.balances[asset][account] += amount
}

// BalanceOf returns the balance of an account, zero when never credited.
func (m *Memory) BalanceOf(asset, account string) uint64 {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.balances[asset][account]
}

// Transfer moves amount of asset between two accounts. It either fully
// succeeds or fails without effect.
func (m *Memory) Transfer(ctx context.Context, asset, from, to string, amount uint64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.balances[asset] == nil {
		m.balances[asset] = make(map[string]uint64)
	}

	if m.balances[asset][from] < amount {
		return ErrInsufficientFunds
	}

	m.balances[asset][from] -= amount
	m.balances[asset][to] += amount

	return nil
}

// ResolveSettlementAccount returns the settlement accounts recorded for the
// given party.
func (m *Memory) ResolveSettlementAccount(ctx context.Context, owner string) (ledgerv1.Account, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	acct, ok := m.accounts[owner]
	if !ok {
		return ledgerv1.Account{}, ErrUnknownAccount
	}
	return acct, nil
}
