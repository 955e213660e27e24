package queue_test

import (
	"context"
	"testing"
	"time"

	queue "github.com/verifund/aiscore/internal/adapters/mq/queue"
	. "github.com/smartystreets/goconvey/convey"
)

func TestInMemoryQueue(t *testing.T) {
	Convey("Given a new InMemoryQueue", t, func() {
		ctx := context.Background()

		Convey("When creating a queue with default options", func() {
			q := queue.NewInMemoryQueue()

			Convey("Then it should be empty and open", func() {
				So(q, ShouldNotBeNil)
				So(q.Len(ctx), ShouldEqual, 0)
				So(q.IsClosed(), ShouldBeFalse)
			})
		})

		Convey("When enqueueing deltas", func() {
			q := queue.NewInMemoryQueue(queue.WithCapacity(4))

			ok := q.Enqueue(ctx, queue.Delta{ProjectID: "p1", Delta: 1.25})

			Convey("Then the delta should be queued", func() {
				So(ok, ShouldBeTrue)
				So(q.Len(ctx), ShouldEqual, 1)
			})
		})

		Convey("When the queue is full", func() {
			q := queue.NewInMemoryQueue(queue.WithCapacity(2))
			So(q.Enqueue(ctx, queue.Delta{ProjectID: "p1"}), ShouldBeTrue)
			So(q.Enqueue(ctx, queue.Delta{ProjectID: "p2"}), ShouldBeTrue)

			ok := q.Enqueue(ctx, queue.Delta{ProjectID: "p3"})

			Convey("Then the overflow delta should be dropped without blocking", func() {
				So(ok, ShouldBeFalse)
				So(q.Len(ctx), ShouldEqual, 2)
			})
		})

		Convey("When dequeuing deltas", func() {
			q := queue.NewInMemoryQueue(queue.WithCapacity(4))
			want := queue.Delta{ProjectID: "p1", Delta: 2.5, CommitMessage: "feat: thing"}
			So(q.Enqueue(ctx, want), ShouldBeTrue)

			deltas := q.Dequeue(ctx)

			Convey("Then the delta should arrive in order", func() {
				select {
				case got := <-deltas:
					So(got, ShouldResemble, want)
				case <-time.After(time.Second):
					So("timeout waiting for delta", ShouldBeEmpty)
				}
			})
		})

		Convey("When closing the queue", func() {
			q := queue.NewInMemoryQueue(queue.WithCapacity(4))
			So(q.Enqueue(ctx, queue.Delta{ProjectID: "p1"}), ShouldBeTrue)
			So(q.Close(), ShouldBeNil)

			Convey("Then it should reject further enqueues", func() {
				So(q.IsClosed(), ShouldBeTrue)
				So(q.Enqueue(ctx, queue.Delta{ProjectID: "p2"}), ShouldBeFalse)
			})

			Convey("Then dequeue should drain the remainder and close", func() {
				deltas := q.Dequeue(ctx)

				select {
				case got := <-deltas:
					So(got.ProjectID, ShouldEqual, "p1")
				case <-time.After(time.Second):
					So("timeout waiting for delta", ShouldBeEmpty)
				}

				select {
				case _, open := <-deltas:
					So(open, ShouldBeFalse)
				case <-time.After(time.Second):
					So("timeout waiting for close", ShouldBeEmpty)
				}
			})

			Convey("Then closing again should be a no-op", func() {
				So(q.Close(), ShouldBeNil)
			})
		})

		Convey("When the dequeue context is canceled", func() {
			q := queue.NewInMemoryQueue(queue.WithCapacity(4))
			cancelCtx, cancel := context.WithCancel(ctx)

			deltas := q.Dequeue(cancelCtx)
			cancel()
			So(q.Enqueue(ctx, queue.Delta{ProjectID: "p1"}), ShouldBeTrue)

			Convey("Then the consumer channel should close", func() {
				select {
				case _, open := <-deltas:
					So(open, ShouldBeFalse)
				case <-time.After(time.Second):
					So("timeout waiting for close", ShouldBeEmpty)
				}
			})
		})
	})
}
