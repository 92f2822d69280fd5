package tradepublisher

import (
	"context"

	tradepublisherv1 "github.com/NeedRelax/solana-orderbook/internal/domain/trade-publisher/v1"
	"github.com/NeedRelax/solana-orderbook/pkg/config"
	"github.com/NeedRelax/solana-orderbook/pkg/errors"
	"github.com/NeedRelax/solana-orderbook/pkg/logger"
	"github.com/segmentio/kafka-go"
)

// Publisher writes trade events to the trade topic.
type Publisher struct {
	kafkaWriter *kafka.Writer
	logger      *logger.Logger
}

// NewPublisher creates a Kafka publisher for trade events.
func NewPublisher(cfg config.KafkaConfig, log *logger.Logger) *Publisher {
	kafkaWriter := kafka.NewWriter(kafka.WriterConfig{
		Brokers: cfg.Brokers,
		Topic:   cfg.TradeTopic,
	})

	return &Publisher{
		kafkaWriter: kafkaWriter,
		logger:      log,
	}
}

// PublishTradeEvent publishes a trade event to the trade topic.
func (p *Publisher) PublishTradeEvent(ctx context.Context, event *tradepublisherv1.TradeEvent) error {
	msg := kafka.Message{
		Key:   []byte(event.TradeID),
		Value: tradepublisherv1.ToBytes(event),
	}

	if err := p.kafkaWriter.WriteMessages(ctx, msg); err != nil {
		p.logger.Error(err,
			logger.Field{Key: "tradeID", Value: event.TradeID},
		)
		return errors.NewTracer("failed to publish trade event").Wrap(err)
	}
	return nil
}

// Close closes the underlying Kafka writer.
func (p *Publisher) Close() error {
	return p.kafkaWriter.Close()
}
