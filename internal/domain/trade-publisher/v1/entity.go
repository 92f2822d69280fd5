package tradepublisherv1

import (
	"encoding/json"
	"time"

	"github.com/oklog/ulid/v2"
)

// TradeEvent records a single fill: the taker whose order triggered it, the
// maker whose resting order was consumed, the traded pair, and the executed
// quantity and price. One event corresponds to exactly one completed pair of
// custody transfers.
type TradeEvent struct {
	TradeID    string `json:"tradeID"`
	Taker      string `json:"taker"`
	Maker      string `json:"maker"`
	BaseAsset  string `json:"baseAsset"`
	QuoteAsset string `json:"quoteAsset"`
	Quantity   uint64 `json:"quantity"`
	Price      uint64 `json:"price"`
	Timestamp  int64  `json:"timestamp"`
}

// NewTradeEvent creates a trade event with a fresh ULID trade id.
func NewTradeEvent(taker, maker, baseAsset, quoteAsset string, quantity, price uint64) *TradeEvent {
	return &TradeEvent{
		TradeID:    ulid.Make().String(),
		Taker:      taker,
		Maker:      maker,
		BaseAsset:  baseAsset,
		QuoteAsset: quoteAsset,
		Quantity:   quantity,
		Price:      price,
		Timestamp:  time.Now().UnixNano(),
	}
}

// ToBytes converts the trade event to its wire form.
func ToBytes(event *TradeEvent) []byte {
	buf, err := json.Marshal(event)
	if err != nil {
		return nil
	}
	return buf
}

// FromBytes parses a trade event from its wire form.
func FromBytes(data []byte) *TradeEvent {
	var event TradeEvent
	if err := json.Unmarshal(data, &event); err != nil {
		return nil
	}
	return &event
}
