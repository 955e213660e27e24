// Package worker runs the delivery workers that drain the delta queue and
// hand each classified score delta to the ledger notifier.
//
// Workers never propagate delivery failures: the notifier captures the
// outcome, workers record it, and the delta is gone either way.
package worker

import (
	"context"
	"fmt"
	"runtime"
	"strconv"
	"time"

	"github.com/verifund/aiscore/internal/adapters/mq/queue"
	"github.com/verifund/aiscore/internal/adapters/notify"
	"github.com/verifund/aiscore/pkg/logger"
	"github.com/verifund/aiscore/pkg/metrics"
)

// Default worker configuration constants.
const (
	defaultWorkerCount    = 4
	workerShutdownTimeout = 5 * time.Second
	poolShutdownTimeout   = 30 * time.Second
)

// Delta is what workers read off the queue.
type Delta = queue.Delta

// Source defines how workers receive deltas.
type Source interface {
	Dequeue(ctx context.Context) <-chan Delta
}

// Worker drains deltas and delivers them until stopped.
type Worker interface {
	// Run starts the worker loop until ctx is canceled.
	Run(ctx context.Context)

	// Shutdown gracefully stops the worker.
	Shutdown(ctx context.Context) error
}

// DeliveryWorker implements Worker around a notifier.
type DeliveryWorker struct {
	source   Source
	notifier notify.Notifier
	name     string

	shutdown chan struct{}
	done     chan struct{}

	logger logger.Logger
}

// NewDeliveryWorker creates a worker with configuration options.
func NewDeliveryWorker(source Source, notifier notify.Notifier, opts ...Option) *DeliveryWorker {
	w := &DeliveryWorker{
		source:   source,
		notifier: notifier,
		name:     "worker",
		shutdown: make(chan struct{}),
		done:     make(chan struct{}),
		logger:   logger.Get().Named("worker"),
	}
	for _, opt := range opts {
		opt(w)
	}
	if w.name != "worker" {
		w.logger = w.logger.Named(w.name)
	}
	return w
}

// Run starts the worker loop.
func (w *DeliveryWorker) Run(ctx context.Context) {
	defer close(w.done)

	deltas := w.source.Dequeue(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-w.shutdown:
			return
		case delta, ok := <-deltas:
			if !ok {
				return
			}
			w.deliver(ctx, delta)
		}
	}
}

// Shutdown gracefully stops the worker.
func (w *DeliveryWorker) Shutdown(ctx context.Context) error {
	close(w.shutdown)
	select {
	case <-w.done:
		return nil
	case <-ctx.Done():
		w.logger.Warn(ctx, "shutdown timed out")
		return fmt.Errorf("shutdown timed out: %w", ctx.Err())
	}
}

// deliver hands one delta to the notifier and records the outcome.
func (w *DeliveryWorker) deliver(ctx context.Context, delta Delta) {
	start := time.Now()
	defer func() {
		metrics.RecordWorkerProcessingLatency(float64(time.Since(start).Milliseconds()))
	}()

	outcome := w.notifier.Notify(ctx, delta)
	if outcome.Delivered {
		return
	}

	// Failure already logged by the notifier; count it at the worker level
	// and move on. No retry, no rollback: delivery is best-effort.
	metrics.RecordWorkerError()
	metrics.RecordErrorByComponent("worker", "delivery_failed")
	metrics.RecordErrorByType("delivery_failed", "medium")
	w.logger.Debug(ctx, "delivery outcome discarded",
		logger.String("deliveryID", outcome.DeliveryID),
		logger.String("projectID", delta.ProjectID),
	)
}

// Pool manages multiple delivery workers.
type Pool struct {
	workers []*DeliveryWorker
	source  Source

	shutdown chan struct{}

	logger logger.Logger
}

// NewPool creates a pool of workerCount delivery workers.
func NewPool(workerCount int, source Source, notifier notify.Notifier) *Pool {
	if workerCount < 1 {
		workerCount = min(defaultWorkerCount, runtime.NumCPU())
	}

	p := &Pool{
		workers:  make([]*DeliveryWorker, workerCount),
		source:   source,
		shutdown: make(chan struct{}),
		logger:   logger.Get().Named("worker-pool"),
	}
	for i := range p.workers {
		p.workers[i] = NewDeliveryWorker(
			source,
			notifier,
			WithName("worker-"+strconv.Itoa(i)),
		)
	}

	metrics.UpdateWorkerCount(workerCount)
	return p
}

// Start starts all workers in the pool.
func (p *Pool) Start(ctx context.Context) {
	for _, w := range p.workers {
		go w.Run(ctx)
	}
}

// Stop gracefully stops all workers.
func (p *Pool) Stop() {
	close(p.shutdown)
	for _, w := range p.workers {
		select {
		case <-w.done:
		case <-time.After(workerShutdownTimeout):
		}
	}
}

// Shutdown closes the queue and waits for workers to drain, bounded by a
// pool-wide timeout.
func (p *Pool) Shutdown(ctx context.Context) error {
	if closer, ok := p.source.(interface{ Close() error }); ok {
		if err := closer.Close(); err != nil {
			p.logger.Error(ctx, "error closing queue", logger.Error(err))
		}
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, poolShutdownTimeout)
	defer cancel()

	for i, w := range p.workers {
		select {
		case <-w.done:
		case <-shutdownCtx.Done():
			p.logger.Warn(ctx, "worker shutdown timed out", logger.Int("worker_id", i))
		}
	}
	return nil
}
