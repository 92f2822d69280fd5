package orderreaderv1

// RequestType distinguishes the two order-entry operations.
type RequestType string

const (
	// RequestTypePlace submits a limit order.
	RequestTypePlace RequestType = "place"
	// RequestTypeCancel cancels a resting order by id.
	RequestTypeCancel RequestType = "cancel"
)

// OrderRequest represents a request consumed from the order intake stream.
// For a place request Side, Price and Quantity are set; for a cancel request
// OrderID identifies the resting order to remove.
type OrderRequest struct {
	Type     RequestType `json:"type"`
	Owner    string      `json:"owner"`
	Side     string      `json:"side"`
	Price    uint64      `json:"price"`
	Quantity uint64      `json:"quantity"`
	OrderID  uint64      `json:"orderID"`
	Offset   int64       `json:"-"` // Offset of the request in the stream
}
