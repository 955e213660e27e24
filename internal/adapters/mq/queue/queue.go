// Package queue buffers classified score deltas between the webhook handler
// and the delivery workers.
//
// The queue is in-memory and bounded. A full queue drops the delta (the
// pipeline is fire-and-forget by design); nothing is persisted or retried.
package queue

import (
	"context"
	"sync"

	"github.com/verifund/aiscore/internal/domain/model"
	"github.com/verifund/aiscore/pkg/metrics"
)

// defaultCapacity bounds the queue when no option overrides it.
const defaultCapacity = 10000

// Delta is the payload type flowing through the queue.
type Delta = model.ScoreDelta

// Queue provides non-blocking enqueue and channel-based dequeue semantics.
type Queue interface {
	// Enqueue adds a delta. Returns false if the queue is full or closed.
	Enqueue(ctx context.Context, d Delta) bool

	// Dequeue returns a channel that receives deltas as they become
	// available. The channel closes when the queue closes.
	Dequeue(ctx context.Context) <-chan Delta

	// Len returns the current number of queued deltas.
	Len(ctx context.Context) int

	// Close stops the queue; no further enqueues are accepted.
	Close() error

	// IsClosed reports whether Close was called.
	IsClosed() bool
}

// InMemoryQueue implements Queue with a buffered channel.
type InMemoryQueue struct {
	deltas   chan Delta
	capacity int

	mu     sync.RWMutex
	closed bool
}

// NewInMemoryQueue creates a queue with configuration options.
func NewInMemoryQueue(opts ...Option) *InMemoryQueue {
	q := &InMemoryQueue{
		capacity: defaultCapacity,
	}
	for _, opt := range opts {
		opt(q)
	}
	q.deltas = make(chan Delta, q.capacity)

	metrics.UpdateQueueCapacity(q.capacity)
	metrics.UpdateQueueSize(0)
	metrics.UpdateQueueUtilization(0)

	return q
}

// Enqueue adds a delta to the queue without blocking.
func (q *InMemoryQueue) Enqueue(ctx context.Context, d Delta) bool {
	q.mu.RLock()
	defer q.mu.RUnlock()

	if q.closed {
		metrics.RecordQueueEnqueueError()
		metrics.RecordErrorByComponent("queue", "closed")
		return false
	}

	select {
	case q.deltas <- d:
		metrics.RecordQueueEnqueue()
		q.observe()
		return true
	case <-ctx.Done():
		metrics.RecordQueueEnqueueError()
		metrics.RecordErrorByComponent("queue", "context_cancelled")
		return false
	default:
		metrics.RecordQueueEnqueueError()
		metrics.RecordErrorByComponent("queue", "queue_full")
		return false
	}
}

// Dequeue returns a channel that receives deltas as they become available.
func (q *InMemoryQueue) Dequeue(ctx context.Context) <-chan Delta {
	out := make(chan Delta)
	go func() {
		defer close(out)
		for d := range q.deltas {
			select {
			case out <- d:
				metrics.RecordQueueDequeue()
				q.observe()
			case <-ctx.Done():
				return
			}
		}
	}()
	return out
}

// Len returns the current number of queued deltas.
func (q *InMemoryQueue) Len(_ context.Context) int {
	size := len(q.deltas)
	q.observe()
	return size
}

// Close stops the queue.
func (q *InMemoryQueue) Close() error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return nil
	}
	close(q.deltas)
	q.closed = true
	return nil
}

// IsClosed reports whether Close was called.
func (q *InMemoryQueue) IsClosed() bool {
	q.mu.RLock()
	defer q.mu.RUnlock()
	return q.closed
}

func (q *InMemoryQueue) observe() {
	size := len(q.deltas)
	metrics.UpdateQueueSize(size)
	metrics.UpdateQueueUtilization(float64(size) / float64(q.capacity))
}
