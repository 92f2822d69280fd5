package snapshot

import (
	"context"
	"encoding/json"

	"github.com/cockroachdb/pebble"

	snapshotv1 "github.com/NeedRelax/solana-orderbook/internal/domain/snapshot/v1"
	"github.com/NeedRelax/solana-orderbook/pkg/errors"
	"github.com/NeedRelax/solana-orderbook/pkg/logger"
)

// PebbleStore persists snapshots in a local pebble database. It is the
// backend of choice when the service runs without a Redis deployment.
type PebbleStore struct {
	pair   string
	logger *logger.Logger
	db     *pebble.DB
}

// NewPebbleStore opens (or creates) a pebble database at dir.
func NewPebbleStore(dir, pair string, log *logger.Logger) (*PebbleStore, error) {
	db, err := pebble.Open(dir, &pebble.Options{})
	if err != nil {
		return nil, errors.NewTracer("snapshot_pebble_open_error").Wrap(err)
	}

	return &PebbleStore{
		pair:   pair,
		logger: log,
		db:     db,
	}, nil
}

// Store serializes the snapshot and writes it synchronously.
func (s *PebbleStore) Store(ctx context.Context, snapshot *snapshotv1.Snapshot) error {
	buf, err := json.Marshal(snapshot)
	if err != nil {
		s.logger.ErrorContext(ctx, err, logger.Field{
			Key:   "pair",
			Value: s.pair,
		})
		return errors.NewTracer("snapshot_marshal_error").Wrap(err)
	}

	if err := s.db.Set([]byte(s.pair), buf, pebble.Sync); err != nil {
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

// Load reads the latest snapshot, returning nil when none has been stored.
func (s *PebbleStore) Load(ctx context.Context) (*snapshotv1.Snapshot, error) {
	data, closer, err := s.db.Get([]byte(s.pair))
	if err == pebble.ErrNotFound {
		s.logger.WarnContext(ctx, "No snapshot found", logger.Field{
			Key:   "pair",
			Value: s.pair,
		})
		return nil, nil
	}
	if err != nil {
		return nil, errors.NewTracer("snapshot_load_error").Wrap(err)
	}

	var snapshot snapshotv1.Snapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		closer.Close()
		return nil, errors.NewTracer("snapshot_unmarshal_error").Wrap(err)
	}
	if err := closer.Close(); err != nil {
		return nil, errors.NewTracer("snapshot_load_error").Wrap(err)
	}

	return &snapshot, nil
}

// Close releases the underlying database.
func (s *PebbleStore) Close() error {
	return s.db.Close()
}
