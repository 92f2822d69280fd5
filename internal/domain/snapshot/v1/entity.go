package snapshotv1

// Snapshot represents the persisted state of the matching service at a
// specific point in the order stream.
type Snapshot struct {
	OrderOffset int64        `json:"orderOffset"`
	Book        BookSnapshot `json:"book"`
}

// BookSnapshot is the persisted book layout. Bids and asks are stored in
// price-time priority order, but loaders must not rely on it: the book
// re-sorts both sides deterministically on restore.
type BookSnapshot struct {
	BaseAsset      string      `json:"baseAsset"`
	QuoteAsset     string      `json:"quoteAsset"`
	Bids           []BookOrder `json:"bids"`
	Asks           []BookOrder `json:"asks"`
	OrderIDCounter uint64      `json:"orderIDCounter"`
}

// BookOrder represents a resting order in the persisted book layout.
type BookOrder struct {
	Owner    string `json:"owner"`
	Price    uint64 `json:"price"`
	Quantity uint64 `json:"quantity"`
	OrderID  uint64 `json:"orderID"`
}
