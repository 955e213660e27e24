package worker_test

import (
	"context"
	"sync"
	"testing"
	"time"

	queue "github.com/verifund/aiscore/internal/adapters/mq/queue"
	worker "github.com/verifund/aiscore/internal/adapters/mq/worker"
	notify "github.com/verifund/aiscore/internal/adapters/notify"
	. "github.com/smartystreets/goconvey/convey"
)

// recordingNotifier captures delivered deltas and can simulate failures.
type recordingNotifier struct {
	mu        sync.Mutex
	delivered []worker.Delta
	fail      bool
}

func (n *recordingNotifier) Notify(_ context.Context, delta worker.Delta) notify.Outcome {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.delivered = append(n.delivered, delta)
	return notify.Outcome{DeliveryID: "test", Delivered: !n.fail}
}

func (n *recordingNotifier) count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.delivered)
}

func waitFor(cond func() bool, timeout time.Duration) bool {
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return true
		}
		time.Sleep(5 * time.Millisecond)
	}
	return cond()
}

func TestDeliveryWorker(t *testing.T) {
	Convey("Given a delivery worker over a queue", t, func() {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		q := queue.NewInMemoryQueue(queue.WithCapacity(16))
		notifier := &recordingNotifier{}
		w := worker.NewDeliveryWorker(q, notifier, worker.WithName("test-worker"))

		Convey("When deltas are enqueued", func() {
			go w.Run(ctx)

			So(q.Enqueue(ctx, worker.Delta{ProjectID: "p1", Delta: 1.5}), ShouldBeTrue)
			So(q.Enqueue(ctx, worker.Delta{ProjectID: "p2", Delta: 0.75}), ShouldBeTrue)

			Convey("Then each delta should reach the notifier", func() {
				So(waitFor(func() bool { return notifier.count() == 2 }, time.Second), ShouldBeTrue)
			})
		})

		Convey("When the notifier reports failures", func() {
			notifier.fail = true
			go w.Run(ctx)

			So(q.Enqueue(ctx, worker.Delta{ProjectID: "p1", Delta: 1.5}), ShouldBeTrue)
			So(q.Enqueue(ctx, worker.Delta{ProjectID: "p2", Delta: 0.75}), ShouldBeTrue)

			Convey("Then the worker should keep draining without retrying", func() {
				So(waitFor(func() bool { return notifier.count() == 2 }, time.Second), ShouldBeTrue)
				So(q.Len(ctx), ShouldEqual, 0)
			})
		})

		Convey("When the worker is shut down", func() {
			go w.Run(ctx)

			shutdownCtx, shutdownCancel := context.WithTimeout(ctx, time.Second)
			defer shutdownCancel()

			err := w.Shutdown(shutdownCtx)

			Convey("Then shutdown should complete cleanly", func() {
				So(err, ShouldBeNil)
			})
		})
	})
}

func TestPool(t *testing.T) {
	Convey("Given a pool of delivery workers", t, func() {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		q := queue.NewInMemoryQueue(queue.WithCapacity(64))
		notifier := &recordingNotifier{}

		Convey("When starting a pool and enqueueing deltas", func() {
			p := worker.NewPool(3, q, notifier)
			p.Start(ctx)

			for i := 0; i < 10; i++ {
				So(q.Enqueue(ctx, worker.Delta{ProjectID: "p", Delta: 1}), ShouldBeTrue)
			}

			Convey("Then all deltas should be delivered across workers", func() {
				So(waitFor(func() bool { return notifier.count() == 10 }, 2*time.Second), ShouldBeTrue)
			})

			Convey("Then shutdown should close the queue and drain", func() {
				So(waitFor(func() bool { return notifier.count() == 10 }, 2*time.Second), ShouldBeTrue)
				So(p.Shutdown(ctx), ShouldBeNil)
				So(q.IsClosed(), ShouldBeTrue)
			})
		})

		Convey("When the worker count is not positive", func() {
			p := worker.NewPool(0, q, notifier)

			Convey("Then the pool should still start with a sane default", func() {
				So(p, ShouldNotBeNil)
				p.Start(ctx)
				So(q.Enqueue(ctx, worker.Delta{ProjectID: "p", Delta: 1}), ShouldBeTrue)
				So(waitFor(func() bool { return notifier.count() == 1 }, time.Second), ShouldBeTrue)
			})
		})
	})
}
