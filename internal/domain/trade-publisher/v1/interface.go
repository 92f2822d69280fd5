package tradepublisherv1

import "context"

// TradePublisher publishes one event per fill. Publication is
// fire-and-forget from the matching engine's perspective: delivery
// guarantees are the sink's responsibility and a publish failure never
// aborts the trade that produced the event.
//
//go:generate mockgen -source interface.go -destination=mock/interface_mock.go -package=tradepublisherv1_mock
type TradePublisher interface {
	PublishTradeEvent(ctx context.Context, event *TradeEvent) error
}
