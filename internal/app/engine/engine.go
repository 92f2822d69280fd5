package engine

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap/zapcore"

	matchingv1 "github.com/NeedRelax/solana-orderbook/internal/domain/matching/v1"
	orderreaderv1 "github.com/NeedRelax/solana-orderbook/internal/domain/order-reader/v1"
	orderbookv1 "github.com/NeedRelax/solana-orderbook/internal/domain/orderbook/v1"
	snapshotv1 "github.com/NeedRelax/solana-orderbook/internal/domain/snapshot/v1"
	"github.com/NeedRelax/solana-orderbook/pkg/config"
	"github.com/NeedRelax/solana-orderbook/pkg/logger"
)

// Engine drives the matching service: it consumes order requests from the
// intake stream, routes them through the matcher and persists periodic book
// snapshots.
type Engine struct {
	// Core components
	matcher       matchingv1.Matcher
	orderReader   orderreaderv1.OrderReader
	snapshotStore snapshotv1.Store
	logger        *logger.Logger
	config        *config.Config

	// Simple state management with mutex instead of atomics
	mu                 sync.RWMutex
	orderOffset        int64
	lastSnapshotOffset int64

	// Simple shutdown coordination
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	// Configuration
	snapshotInterval    time.Duration
	snapshotOffsetDelta int64

	// Fill statistics
	totalFills int64
	fillsMutex sync.RWMutex
}

// NewEngine creates a new instance of Engine with the provided dependencies.
func NewEngine(
	matcher matchingv1.Matcher,
	orderReader orderreaderv1.OrderReader,
	snapshotStore snapshotv1.Store,
	logger *logger.Logger,
	config *config.Config,
) *Engine {
	return NewEngineWithOptions(matcher, orderReader, snapshotStore, logger, config, DefaultEngineOptions())
}

// NewEngineWithOptions creates a new engine with custom options.
func NewEngineWithOptions(
	matcher matchingv1.Matcher,
	orderReader orderreaderv1.OrderReader,
	snapshotStore snapshotv1.Store,
	logger *logger.Logger,
	config *config.Config,
	options *Options,
) *Engine {
	e := &Engine{
		matcher:       matcher,
		orderReader:   orderReader,
		snapshotStore: snapshotStore,
		logger:        logger,
		config:        config,

		snapshotInterval:    options.SnapshotInterval,
		snapshotOffsetDelta: options.SnapshotOffsetDelta,
		orderOffset:         -1,
	}

	// Load snapshot during initialization
	if err := e.loadSnapshot(context.Background()); err != nil {
		e.logger.GetZap().Fatal("Failed to load snapshot", zapcore.Field{
			Key:       "error",
			Interface: err,
		})
	}

	return e
}

// Start initializes the engine and starts processing routines.
func (e *Engine) Start(ctx context.Context) error {
	e.ctx, e.cancel = context.WithCancel(ctx)

	e.wg.Add(2)
	go e.runOrderProcessor()
	go e.runSnapshotManager()

	e.logger.Info("Engine started", logger.Field{
		Key:   "pair",
		Value: e.config.Pair,
	})

	return nil
}

// Stop gracefully shuts down the engine.
func (e *Engine) Stop(ctx context.Context) error {
	if e.cancel != nil {
		e.cancel()
	}

	// Wait for goroutines to finish with timeout
	done := make(chan struct{})
	go func() {
		e.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		e.logger.Info("Engine stopped gracefully")
		return nil
	case <-ctx.Done():
		e.logger.Warn("Engine stop timeout exceeded")
		return ctx.Err()
	}
}

// runOrderProcessor combines order reading and processing in a single goroutine.
func (e *Engine) runOrderProcessor() {
	defer e.wg.Done()

	e.logger.Info("Starting order processor", logger.Field{
		Key:   "pair",
		Value: e.config.Pair,
	})

	// Resume one past the last applied offset
	currentOffset := e.getOrderOffset()
	if currentOffset > 0 {
		currentOffset++
	}

	if err := e.orderReader.SetOffset(currentOffset); err != nil {
		e.logger.GetZap().Fatal("Failed to set offset for order reader", zapcore.Field{
			Key:       "error",
			Interface: err,
		})
	}

	for {
		select {
		case <-e.ctx.Done():
			e.logger.Info("Order processor shutting down")
			e.orderReader.Close()
			return
		default:
			msg, orderRequest, err := e.orderReader.ReadMessage(e.ctx)
			if err != nil {
				e.logger.ErrorContext(e.ctx, err, logger.Field{
					Key:   "action",
					Value: "read_order_message",
				})
				// Simple backoff
				time.Sleep(100 * time.Millisecond)
				continue
			}

			if err := e.orderReader.CommitMessages(e.ctx, msg); err != nil {
				e.logger.ErrorContext(e.ctx, err, logger.Field{
					Key:   "action",
					Value: "commit_order_message",
				})
			}

			if err := e.processRequest(&orderRequest); err != nil {
				e.logger.ErrorContext(e.ctx, err, logger.Field{
					Key:   "action",
					Value: "process_order",
				})
				continue
			}

			e.setOrderOffset(msg.Offset)
		}
	}
}

// runSnapshotManager handles periodic snapshots.
func (e *Engine) runSnapshotManager() {
	defer e.wg.Done()

	ticker := time.NewTicker(e.snapshotInterval)
	defer ticker.Stop()

	e.logger.Info("Starting snapshot manager")

	for {
		select {
		case <-e.ctx.Done():
			e.logger.Info("Snapshot manager shutting down")
			return
		case <-ticker.C:
			if e.shouldCreateSnapshot() {
				e.createAndStoreSnapshot()
			}
		}
	}
}

// processRequest routes a single order request through the matcher.
func (e *Engine) processRequest(orderRequest *orderreaderv1.OrderRequest) error {
	e.logger.Debug("Processing order request",
		logger.Field{Key: "orderOffset", Value: orderRequest.Offset},
		logger.Field{Key: "owner", Value: orderRequest.Owner},
		logger.Field{Key: "type", Value: orderRequest.Type},
	)

	switch orderRequest.Type {
	case orderreaderv1.RequestTypePlace:
		side, err := orderbookv1.ParseSide(orderRequest.Side)
		if err != nil {
			return err
		}

		outcome, err := e.matcher.Place(e.ctx, orderRequest.Owner, side, orderRequest.Price, orderRequest.Quantity)
		if err != nil {
			return err
		}

		if len(outcome.Fills) > 0 {
			e.logFills(orderRequest.Owner, outcome.Fills)
		}
	case orderreaderv1.RequestTypeCancel:
		return e.matcher.Cancel(e.ctx, orderRequest.Owner, orderRequest.OrderID)
	}
	return nil
}

// logFills logs the fills and updates statistics.
func (e *Engine) logFills(taker string, fills []matchingv1.Fill) {
	e.fillsMutex.Lock()
	e.totalFills += int64(len(fills))
	currentTotal := e.totalFills
	e.fillsMutex.Unlock()

	e.logger.Info("Fills executed",
		logger.Field{Key: "fillCount", Value: len(fills)},
		logger.Field{Key: "totalFills", Value: currentTotal},
	)

	for i, fill := range fills {
		e.logger.Info("Trade executed",
			logger.Field{Key: "fillIndex", Value: i + 1},
			logger.Field{Key: "taker", Value: taker},
			logger.Field{Key: "maker", Value: fill.Maker},
			logger.Field{Key: "makerOrderID", Value: fill.MakerOrderID},
			logger.Field{Key: "price", Value: fill.Price},
			logger.Field{Key: "quantity", Value: fill.Quantity},
		)
	}
}

// shouldCreateSnapshot checks if a snapshot should be created.
func (e *Engine) shouldCreateSnapshot() bool {
	e.mu.RLock()
	currentOffset := e.orderOffset
	lastSnapshotOffset := e.lastSnapshotOffset
	e.mu.RUnlock()

	if currentOffset <= 0 {
		return false
	}

	delta := currentOffset - lastSnapshotOffset
	return delta >= e.snapshotOffsetDelta
}

// createAndStoreSnapshot creates and stores a snapshot.
func (e *Engine) createAndStoreSnapshot() {
	currentOffset := e.getOrderOffset()

	e.logger.Info("Creating snapshot", logger.Field{
		Key:   "currentOffset",
		Value: currentOffset,
	})

	snapshot := e.matcher.Snapshot()
	snapshot.OrderOffset = currentOffset

	if err := e.snapshotStore.Store(e.ctx, snapshot); err != nil {
		e.logger.ErrorContext(e.ctx, err, logger.Field{
			Key:   "action",
			Value: "store_snapshot",
		})
	} else {
		e.setLastSnapshotOffset(currentOffset)
		e.logger.Info("Snapshot stored successfully", logger.Field{
			Key:   "pair",
			Value: e.config.Pair,
		}, logger.Field{
			Key:   "offset",
			Value: currentOffset,
		})
	}
}

// Thread-safe getters and setters
func (e *Engine) getOrderOffset() int64 {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.orderOffset
}

func (e *Engine) setOrderOffset(offset int64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.orderOffset = offset
}

func (e *Engine) getLastSnapshotOffset() int64 {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.lastSnapshotOffset
}

func (e *Engine) setLastSnapshotOffset(offset int64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.lastSnapshotOffset = offset
}

// loadSnapshot loads and restores the book from the latest snapshot.
func (e *Engine) loadSnapshot(ctx context.Context) error {
	snapshot, err := e.snapshotStore.Load(ctx)
	if err != nil {
		return err
	}

	if snapshot != nil {
		e.matcher.Restore(snapshot)
		e.mu.Lock()
		e.orderOffset = snapshot.OrderOffset
		e.lastSnapshotOffset = snapshot.OrderOffset
		e.mu.Unlock()

		e.logger.Info("Book restored from snapshot", logger.Field{
			Key:   "orderOffset",
			Value: snapshot.OrderOffset,
		})
	}

	return nil
}

// GetOrderOffset returns the current order offset.
func (e *Engine) GetOrderOffset() int64 {
	return e.getOrderOffset()
}

// GetLastSnapshotOffset returns the last snapshot offset.
func (e *Engine) GetLastSnapshotOffset() int64 {
	return e.getLastSnapshotOffset()
}

// GetTotalFills returns the total number of fills processed.
func (e *Engine) GetTotalFills() int64 {
	e.fillsMutex.RLock()
	defer e.fillsMutex.RUnlock()
	return e.totalFills
}
