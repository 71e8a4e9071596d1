// Package queue provides the thread-safe FIFO hand-off point between job
// producers and pool workers.
//
// The queue is unbounded and closable. Push always succeeds — even after
// Shutdown — because admission control is the pool's responsibility, not
// the queue's. Pop blocks while the queue is open and empty; Shutdown is
// the only way to make blocked consumers give up. Once the queue is closed
// and drained, Pop reports the empty sentinel and consumers terminate.
package queue

import (
	"errors"
	"sync"

	"github.com/queueworks/taskpool/job"
)

// ErrNilJob reports a nil job handle passed to Push.
var ErrNilJob = errors.New("taskpool: nil job")

// Queue is a closable FIFO buffer of jobs, safe for concurrent producers
// and consumers. The zero value is not usable; create one with New.
//
// Internally a single mutex guards the buffer and the closed flag, paired
// with one condition variable. Push signals exactly one waiter — one new
// job can satisfy only one consumer — while Shutdown broadcasts, because
// every blocked consumer must re-evaluate the close condition.
type Queue struct {
	mu     sync.Mutex
	cond   *sync.Cond
	jobs   []job.Job
	closed bool
}

// New creates an open, empty queue.
func New() *Queue {
	q := &Queue{}
	q.cond = sync.NewCond(&q.mu)
	return q
}

// Push appends j to the tail and wakes exactly one blocked consumer.
//
// Push performs no admission control: it succeeds even after Shutdown. A
// job pushed into a closed queue sits in the buffer and may never be
// popped once the queue is drained — gating pushes on the closed flag
// belongs to the caller (see the pool's TryEnqueue). A nil job is rejected
// with ErrNilJob.
func (q *Queue) Push(j job.Job) error {
	if j == nil {
		return ErrNilJob
	}
	q.mu.Lock()
	defer q.mu.Unlock()
	q.jobs = append(q.jobs, j)
	q.cond.Signal()
	return nil
}

// Pop removes and returns the head of the queue, blocking while the queue
// is open and empty. The wait is guarded by the predicate "closed or
// non-empty", so a spurious wakeup can never produce a bad dequeue.
//
// The boolean result reports whether a job was dequeued. It is false only
// when the queue is closed and fully drained — the signal for a worker to
// terminate. A closed queue that still holds jobs keeps handing them out.
func (q *Queue) Pop() (job.Job, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	for !q.closed && len(q.jobs) == 0 {
		q.cond.Wait()
	}
	if q.closed && len(q.jobs) == 0 {
		return nil, false
	}

	j := q.jobs[0]
	q.jobs[0] = nil
	q.jobs = q.jobs[1:]
	return j, true
}

// Empty reports whether the queue holds no jobs. The result is an
// instantaneous snapshot; a concurrent producer may push immediately after
// it is taken.
func (q *Queue) Empty() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.jobs) == 0
}

// Len returns the number of buffered jobs. Snapshot semantics, as Empty.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.jobs)
}

// Clear drops every buffered job without waking waiters and without
// touching the closed flag. Intended for administrative reset only:
// running it concurrently with producers and consumers can silently
// discard in-flight work.
func (q *Queue) Clear() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.jobs = nil
}

// Shutdown closes the queue and wakes all blocked consumers so each can
// re-evaluate the close condition. Idempotent; a closed queue never
// reopens.
func (q *Queue) Shutdown() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.closed = true
	q.cond.Broadcast()
}

// Closed reports whether Shutdown has been called. Advisory only: the
// value may be stale by the time the caller acts on it.
func (q *Queue) Closed() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.closed
}
