package ledgerv1

// Account holds a party's settlement accounts for the traded pair. Owner is
// the recorded controlling party; a resolved account whose Owner does not
// match the order it settles is rejected by the matching engine.
type Account struct {
	Owner        string `json:"owner"`
	BaseAccount  string `json:"baseAccount"`
	QuoteAccount string `json:"quoteAccount"`
}

// Custody identifies the pooled vault accounts the book settles through:
// taker reservations move into the vaults, trade legs and cancel refunds
// move out of them.
type Custody struct {
	BaseVault  string `json:"baseVault"`
	QuoteVault string `json:"quoteVault"`
}
