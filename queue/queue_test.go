package queue_test

import (
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/queueworks/taskpool/job"
	"github.com/queueworks/taskpool/queue"
)

// testJob is an inert job with an identity, so dequeue order can be
// asserted without executing anything.
type testJob struct {
	n int
}

func (j *testJob) Execute() error { return nil }

func TestQueue_FIFO(t *testing.T) {
	q := queue.New()

	const n = 10
	for i := 0; i < n; i++ {
		if err := q.Push(&testJob{n: i}); err != nil {
			t.Fatalf("push %d: unexpected error: %v", i, err)
		}
	}
	if got := q.Len(); got != n {
		t.Fatalf("Len() = %d, want %d", got, n)
	}

	for i := 0; i < n; i++ {
		j, ok := q.Pop()
		if !ok {
			t.Fatalf("pop %d: queue reported empty sentinel", i)
		}
		tj, ok := j.(*testJob)
		if !ok {
			t.Fatalf("pop %d: unexpected job type %T", i, j)
		}
		if tj.n != i {
			t.Errorf("pop %d: got job %d, want %d", i, tj.n, i)
		}
	}

	if !q.Empty() {
		t.Error("queue not empty after popping every job")
	}
}

func TestQueue_NilPushRejected(t *testing.T) {
	q := queue.New()

	err := q.Push(nil)
	if !errors.Is(err, queue.ErrNilJob) {
		t.Fatalf("Push(nil) error = %v, want ErrNilJob", err)
	}
	if q.Len() != 0 {
		t.Error("nil push must not grow the buffer")
	}
}

func TestQueue_PopBlocksUntilPush(t *testing.T) {
	q := queue.New()

	popped := make(chan job.Job, 1)
	go func() {
		j, ok := q.Pop()
		if !ok {
			t.Error("pop returned empty sentinel on an open queue")
		}
		popped <- j
	}()

	// The consumer must stay parked while the queue is empty and open.
	select {
	case <-popped:
		t.Fatal("pop returned before any push")
	case <-time.After(50 * time.Millisecond):
	}

	want := &testJob{n: 42}
	if err := q.Push(want); err != nil {
		t.Fatalf("push: unexpected error: %v", err)
	}

	select {
	case got := <-popped:
		if got != want {
			t.Errorf("popped %v, want %v", got, want)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("pop did not wake after push")
	}
}

func TestQueue_ShutdownUnblocksPop(t *testing.T) {
	q := queue.New()

	done := make(chan bool, 1)
	go func() {
		_, ok := q.Pop()
		done <- ok
	}()

	time.Sleep(20 * time.Millisecond) // let the consumer park
	q.Shutdown()

	select {
	case ok := <-done:
		if ok {
			t.Error("pop after shutdown on empty queue must report the empty sentinel")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("pop still blocked after shutdown")
	}

	// Subsequent pops return immediately.
	if _, ok := q.Pop(); ok {
		t.Error("pop on a closed, drained queue must report the empty sentinel")
	}
}

func TestQueue_ShutdownDoesNotDiscardBufferedJobs(t *testing.T) {
	q := queue.New()

	if err := q.Push(&testJob{n: 1}); err != nil {
		t.Fatal(err)
	}
	if err := q.Push(&testJob{n: 2}); err != nil {
		t.Fatal(err)
	}
	q.Shutdown()

	// A closed queue keeps handing out buffered jobs until drained.
	for i := 1; i <= 2; i++ {
		j, ok := q.Pop()
		if !ok {
			t.Fatalf("pop %d after shutdown: got empty sentinel with jobs buffered", i)
		}
		if got := j.(*testJob).n; got != i {
			t.Errorf("pop %d: got job %d, want %d", i, got, i)
		}
	}
	if _, ok := q.Pop(); ok {
		t.Error("drained closed queue must report the empty sentinel")
	}
}

func TestQueue_PushAfterShutdownAccepted(t *testing.T) {
	q := queue.New()
	q.Shutdown()

	if err := q.Push(&testJob{n: 7}); err != nil {
		t.Fatalf("push after shutdown: unexpected error: %v", err)
	}
	if got := q.Len(); got != 1 {
		t.Fatalf("Len() = %d after push-after-shutdown, want 1", got)
	}
}

func TestQueue_ShutdownIdempotent(t *testing.T) {
	q := queue.New()
	q.Shutdown()
	q.Shutdown()

	if !q.Closed() {
		t.Error("Closed() = false after Shutdown")
	}
}

func TestQueue_Clear(t *testing.T) {
	q := queue.New()
	for i := 0; i < 3; i++ {
		if err := q.Push(&testJob{n: i}); err != nil {
			t.Fatal(err)
		}
	}

	q.Clear()

	if !q.Empty() {
		t.Error("queue not empty after Clear")
	}
	if q.Closed() {
		t.Error("Clear must not touch the closed flag")
	}
}

func TestQueue_ConcurrentProducersConsumers(t *testing.T) {
	q := queue.New()

	const (
		producers       = 4
		jobsPerProducer = 100
	)

	var popped atomic.Int64
	consumersDone := make(chan struct{})
	for c := 0; c < 3; c++ {
		go func() {
			for {
				_, ok := q.Pop()
				if !ok {
					consumersDone <- struct{}{}
					return
				}
				popped.Add(1)
			}
		}()
	}

	var g errgroup.Group
	for p := 0; p < producers; p++ {
		g.Go(func() error {
			for i := 0; i < jobsPerProducer; i++ {
				if err := q.Push(&testJob{n: i}); err != nil {
					return err
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		t.Fatalf("producer error: %v", err)
	}

	q.Shutdown()
	for c := 0; c < 3; c++ {
		select {
		case <-consumersDone:
		case <-time.After(5 * time.Second):
			t.Fatal("consumer did not terminate after shutdown")
		}
	}

	if got := popped.Load(); got != producers*jobsPerProducer {
		t.Errorf("popped %d jobs, want %d", got, producers*jobsPerProducer)
	}
}
