package matchingv1

// Fill records one round of the crossing loop: the maker order consumed (in
// full or in part), the traded quantity, and the execution price. The price
// is always the maker's resting price — price improvement favors the taker.
type Fill struct {
	Maker        string `json:"maker"`
	MakerOrderID uint64 `json:"makerOrderID"`
	Quantity     uint64 `json:"quantity"`
	Price        uint64 `json:"price"`
}

// PlaceOutcome is the result of a successful place call.
type PlaceOutcome struct {
	Fills []Fill `json:"fills"`
	// RestingOrderID is the id assigned to the unfilled remainder, or zero
	// when the taker was fully filled.
	RestingOrderID    uint64 `json:"restingOrderID"`
	RemainingQuantity uint64 `json:"remainingQuantity"`
}
