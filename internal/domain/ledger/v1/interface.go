package ledgerv1

import "context"

// CustodyLedger moves asset amounts between accounts. A transfer is
// all-or-nothing: any non-nil error means no funds moved. The matching
// engine never touches balances directly, only through this capability.
//
//go:generate mockgen -source interface.go -destination=mock/interface_mock.go -package=ledgerv1_mock
type CustodyLedger interface {
	Transfer(ctx context.Context, asset, from, to string, amount uint64) error
}

// SettlementResolver looks up the settlement accounts recorded for a party.
// The matching engine resolves the taker once per place call and each maker
// once per matched round.
type SettlementResolver interface {
	ResolveSettlementAccount(ctx context.Context, owner string) (Account, error)
}
