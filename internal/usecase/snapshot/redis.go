package snapshot

import (
	"context"
	"encoding/json"

	snapshotv1 "github.com/NeedRelax/solana-orderbook/internal/domain/snapshot/v1"
	"github.com/NeedRelax/solana-orderbook/pkg/errors"
	"github.com/NeedRelax/solana-orderbook/pkg/logger"
	"github.com/NeedRelax/solana-orderbook/pkg/redis"
)

// RedisStore persists snapshots in Redis, keyed by trading pair.
type RedisStore struct {
	pair        string
	logger      *logger.Logger
	redisclient redis.Client
}

// NewRedisStore creates a snapshot store backed by the given Redis client.
func NewRedisStore(redisclient redis.Client, pair string, log *logger.Logger) *RedisStore {
	return &RedisStore{
		pair:        pair,
		redisclient: redisclient,
		logger:      log,
	}
}

// Store serializes the snapshot and stores it in Redis.
func (s *RedisStore) Store(ctx context.Context, snapshot *snapshotv1.Snapshot) error {
	buf, err := json.Marshal(snapshot)
	if err != nil {
		s.logger.ErrorContext(ctx, err, logger.Field{
			Key:   "pair",
			Value: s.pair,
		})
		return errors.NewTracer("snapshot_marshal_error").Wrap(err)
	}

	if err := s.redisclient.Set(ctx, s.pair, buf, 0); err != nil {
		s.logger.ErrorContext(ctx, err, logger.Field{
			Key:   "pair",
			Value: s.pair,
		})
		return errors.NewTracer("snapshot_store_error").Wrap(err)
	}

	s.logger.InfoContext(ctx, "Snapshot stored", logger.Field{
		Key:   "pair",
		Value: s.pair,
	}, logger.Field{
		Key:   "orderOffset",
		Value: snapshot.OrderOffset,
	})
	return nil
}

// Load deserializes the latest snapshot from Redis, returning nil when none
// has been stored yet.
func (s *RedisStore) Load(ctx context.Context) (*snapshotv1.Snapshot, error) {
	data, err := s.redisclient.Get(ctx, s.pair)
	if err != nil {
		s.logger.ErrorContext(ctx, err, logger.Field{
			Key:   "pair",
			Value: s.pair,
		})
		return nil, errors.NewTracer("snapshot_load_error").Wrap(err)
	}

	if data == "" {
		s.logger.WarnContext(ctx, "No snapshot found", logger.Field{
			Key:   "pair",
			Value: s.pair,
		})
		return nil, nil
	}

	var snapshot snapshotv1.Snapshot
	if err := json.Unmarshal([]byte(data), &snapshot); err != nil {
		s.logger.ErrorContext(ctx, err, logger.Field{
			Key:   "pair",
			Value: s.pair,
		})
		return nil, errors.NewTracer("snapshot_unmarshal_error").Wrap(err)
	}

	return &snapshot, nil
}
