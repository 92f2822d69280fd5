package orderreader

import (
	"context"
	"encoding/json"

	orderreaderv1 "github.com/NeedRelax/solana-orderbook/internal/domain/order-reader/v1"
	"github.com/NeedRelax/solana-orderbook/pkg/config"
	"github.com/NeedRelax/solana-orderbook/pkg/logger"
	"github.com/segmentio/kafka-go"
)

// Reader consumes order requests from the intake topic. It implements the
// OrderReader interface.
type Reader struct {
	kafkaReader *kafka.Reader
	logger      *logger.Logger
}

// NewReader creates a Kafka reader for the order intake topic.
func NewReader(cfg config.KafkaConfig, log *logger.Logger) Reader {
	kafkaReader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:     cfg.Brokers,
		Topic:       cfg.OrderTopic,
		Partition:   0,
		MinBytes:    1,
		MaxBytes:    10e6,
		StartOffset: kafka.LastOffset,
	})

	return Reader{
		kafkaReader: kafkaReader,
		logger:      log,
	}
}

func (r Reader) logError(err error, operation string) {
	r.logger.Error(err,
		logger.Field{Key: "operation", Value: operation},
	)
}

// SetOffset sets the offset for the Kafka reader.
func (r Reader) SetOffset(offset int64) error {
	if err := r.kafkaReader.SetOffset(offset); err != nil {
		r.logError(err, "SetOffset")
		return err
	}
	return nil
}

// ReadMessage reads a message from the intake topic and parses it as an
// OrderRequest.
func (r Reader) ReadMessage(ctx context.Context) (kafka.Message, orderreaderv1.OrderRequest, error) {
	msg, err := r.kafkaReader.ReadMessage(ctx)
	if err != nil {
		r.logError(err, "ReadMessage")
		return kafka.Message{}, orderreaderv1.OrderRequest{}, err
	}

	var request orderreaderv1.OrderRequest
	if err := json.Unmarshal(msg.Value, &request); err != nil {
		r.logError(err, "UnmarshalOrderRequest")
		return kafka.Message{}, orderreaderv1.OrderRequest{}, err
	}

	r.logger.Debug("ReadMessage",
		logger.Field{Key: "type", Value: request.Type},
		logger.Field{Key: "owner", Value: request.Owner},
		logger.Field{Key: "side", Value: request.Side},
		logger.Field{Key: "price", Value: request.Price},
		logger.Field{Key: "quantity", Value: request.Quantity},
		logger.Field{Key: "orderID", Value: request.OrderID},
	)

	request.Offset = msg.Offset

	return msg, request, nil
}

// CommitMessages commits the messages to Kafka after processing.
func (r Reader) CommitMessages(ctx context.Context, msgs ...kafka.Message) error {
	if err := r.kafkaReader.CommitMessages(ctx, msgs...); err != nil {
		r.logError(err, "CommitMessages")
		return err
	}
	return nil
}

// Close properly closes the Kafka reader.
func (r Reader) Close() error {
	if err := r.kafkaReader.Close(); err != nil {
		r.logError(err, "Close")
		return err
	}
	return nil
}
