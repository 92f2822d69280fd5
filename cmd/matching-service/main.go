package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	app "github.com/NeedRelax/solana-orderbook/internal/app/engine"
	ledgerv1 "github.com/NeedRelax/solana-orderbook/internal/domain/ledger/v1"
	orderbookv1 "github.com/NeedRelax/solana-orderbook/internal/domain/orderbook/v1"
	snapshotv1 "github.com/NeedRelax/solana-orderbook/internal/domain/snapshot/v1"
	"github.com/NeedRelax/solana-orderbook/internal/usecase/ledger"
	"github.com/NeedRelax/solana-orderbook/internal/usecase/matching"
	orderreader "github.com/NeedRelax/solana-orderbook/internal/usecase/order-reader"
	"github.com/NeedRelax/solana-orderbook/internal/usecase/snapshot"
	tradepublisher "github.com/NeedRelax/solana-orderbook/internal/usecase/trade-publisher"
	"github.com/NeedRelax/solana-orderbook/pkg/config"
	"github.com/NeedRelax/solana-orderbook/pkg/logger"
	"github.com/NeedRelax/solana-orderbook/pkg/redis"
)

var cfg *config.Config
var log *logger.Logger

func init() {
	var err error
	cfg = &config.Config{}
	err = config.Load(cfg)
	if err != nil {
		panic(err)
	}

	logger, err := logger.NewLogger()
	if err != nil {
		panic(err)
	}

	log = logger
}

func main() {
	// Create a context that can be cancelled
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Set up signal handling for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	snapshotStore, cleanup, err := newSnapshotStore(ctx)
	if err != nil {
		log.Error(err, logger.Field{
			Key:   "action",
			Value: "init_snapshot_store",
		})
		return
	}
	defer cleanup()

	// Initialize components
	custodyLedger := ledger.NewMemory()
	custodyLedger.RegisterAccount(ledgerv1.Account{
		Owner:        "vault",
		BaseAccount:  cfg.BaseVault,
		QuoteAccount: cfg.QuoteVault,
	})

	book := orderbookv1.NewBook(cfg.BaseAsset, cfg.QuoteAsset)
	tradePublisher := tradepublisher.NewPublisher(cfg.KafkaConfig, log)
	matcher := matching.NewEngine(
		book,
		custodyLedger,
		custodyLedger,
		tradePublisher,
		ledgerv1.Custody{
			BaseVault:  cfg.BaseVault,
			QuoteVault: cfg.QuoteVault,
		},
		log,
	)

	oReader := orderreader.NewReader(cfg.KafkaConfig, log)
	engine := app.NewEngine(
		matcher,
		oReader,
		snapshotStore,
		log,
		cfg,
	)

	// Start the engine
	if err := engine.Start(ctx); err != nil {
		log.Error(err, logger.Field{
			Key:   "action",
			Value: "start_engine",
		})
		return
	}

	log.Info("Matching service started successfully", logger.Field{
		Key:   "pair",
		Value: cfg.Pair,
	})

	// Wait for shutdown signal
	sig := <-sigChan
	log.Info("Received shutdown signal", logger.Field{
		Key:   "signal",
		Value: sig.String(),
	})

	// Cancel the main context to signal shutdown
	cancel()

	// Create a timeout context for graceful shutdown
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	// Stop the engine gracefully
	if err := engine.Stop(shutdownCtx); err != nil {
		log.Error(err, logger.Field{
			Key:   "action",
			Value: "stop_engine",
		})
	}

	if err := tradePublisher.Close(); err != nil {
		log.Error(err, logger.Field{
			Key:   "action",
			Value: "close_trade_publisher",
		})
	}

	log.Info("Matching service shutdown complete")
}

// newSnapshotStore builds the configured snapshot backend. The returned
// cleanup releases whatever the backend holds open.
func newSnapshotStore(ctx context.Context) (snapshotv1.Store, func(), error) {
	switch cfg.SnapshotConfig.Backend {
	case "pebble":
		store, err := snapshot.NewPebbleStore(cfg.SnapshotConfig.Dir, cfg.Pair, log)
		if err != nil {
			return nil, nil, err
		}
		return store, func() {
			if err := store.Close(); err != nil {
				log.Error(err, logger.Field{
					Key:   "action",
					Value: "close_pebble_store",
				})
			}
		}, nil
	default:
		redisConfig := redis.DefaultConfig()
		redisConfig.Addrs = []string{cfg.RedisConfig.Addrs}
		redisConfig.Password = cfg.RedisConfig.Password
		redisConfig.Username = cfg.RedisConfig.Username
		redisConfig.DB = cfg.RedisConfig.DB
		rclient := redis.NewClient(log, redisConfig)

		if err := rclient.Connect(ctx); err != nil {
			return nil, nil, err
		}
		return snapshot.NewRedisStore(rclient, cfg.Pair, log), func() {
			if err := rclient.Disconnect(context.Background()); err != nil {
				log.Error(err, logger.Field{
					Key:   "action",
					Value: "disconnect_redis_client",
				})
			}
		}, nil
	}
}
