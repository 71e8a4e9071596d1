// Package worker provides the job execution engine: a fixed-size pool of
// worker goroutines consuming jobs from a shared queue until the queue
// signals closure.
package worker

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/queueworks/taskpool/hook"
	"github.com/queueworks/taskpool/job"
	"github.com/queueworks/taskpool/middleware"
	"github.com/queueworks/taskpool/queue"
)

const (
	defaultDrainTimeout      = 1 * time.Second
	defaultDrainPollInterval = 5 * time.Millisecond
)

// Pool owns one queue and a fixed set of workers, and governs their
// start/stop lifecycle. The worker count is fixed at Start time: no
// resizing, no work stealing, no worker reuse across a stop.
type Pool struct {
	queue  *queue.Queue
	logger *slog.Logger
	hooks  *hook.Registry
	mw     middleware.Middleware
	extra  []middleware.Middleware

	drainTimeout time.Duration
	drainPoll    time.Duration

	// running gates TryEnqueue and the shutdown paths. It is deliberately
	// not synchronized with the queue's closed flag: the window where
	// running is already false but the queue is still open is the
	// graceful-drain grace period.
	running atomic.Bool

	mu      sync.Mutex
	workers []string
	wg      sync.WaitGroup
}

// Option configures a Pool.
type Option func(*Pool)

// WithDrainTimeout sets the ceiling a graceful Shutdown waits for queued
// jobs to drain before closing the queue anyway. Non-positive values are
// ignored.
func WithDrainTimeout(d time.Duration) Option {
	return func(p *Pool) {
		if d > 0 {
			p.drainTimeout = d
		}
	}
}

// WithDrainPollInterval sets how often Shutdown re-checks queue emptiness
// while draining. Non-positive values are ignored.
func WithDrainPollInterval(d time.Duration) Option {
	return func(p *Pool) {
		if d > 0 {
			p.drainPoll = d
		}
	}
}

// WithHooks sets the lifecycle hook registry notified of pool events.
func WithHooks(r *hook.Registry) Option {
	return func(p *Pool) {
		if r != nil {
			p.hooks = r
		}
	}
}

// WithMiddleware appends middleware applied around every job execution,
// inside the pool's recovery boundary.
func WithMiddleware(mws ...middleware.Middleware) Option {
	return func(p *Pool) { p.extra = append(p.extra, mws...) }
}

// NewPool creates a stopped pool owning its own empty queue.
func NewPool(logger *slog.Logger, opts ...Option) *Pool {
	if logger == nil {
		logger = slog.Default()
	}
	p := &Pool{
		queue:        queue.New(),
		logger:       logger,
		drainTimeout: defaultDrainTimeout,
		drainPoll:    defaultDrainPollInterval,
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.hooks == nil {
		p.hooks = hook.NewRegistry(logger)
	}

	// Recover is always outermost so per-job failures are contained at
	// the worker loop no matter what middleware the caller installs.
	chain := append([]middleware.Middleware{middleware.Recover(logger)}, p.extra...)
	p.mw = middleware.Chain(chain...)

	return p
}

// Start launches n workers consuming from the pool's queue. It is a no-op
// if the pool is already running. n is clamped to a minimum of 1: a pool
// never starts with zero workers.
//
// A stopped pool cannot be meaningfully restarted; once its workers have
// been joined the instance is done.
func (p *Pool) Start(n int) {
	if !p.running.CompareAndSwap(false, true) {
		return
	}
	if n < 1 {
		n = 1
	}

	p.logger.Info("pool starting", slog.Int("workers", n))

	p.mu.Lock()
	for i := 0; i < n; i++ {
		name := fmt.Sprintf("worker-%d", i)
		p.workers = append(p.workers, name)
		p.wg.Add(1)
		go p.workerLoop(name)
	}
	p.mu.Unlock()
}

// Enqueue hands j to the queue unconditionally, regardless of the pool's
// running state. Because the queue admits pushes even after it is closed,
// a job enqueued once shutdown has begun is accepted but may never
// execute — it is stranded in the closed queue. Callers that want
// admission control should use TryEnqueue. A nil job is rejected with
// queue.ErrNilJob.
func (p *Pool) Enqueue(j job.Job) error {
	if err := p.queue.Push(j); err != nil {
		return err
	}
	p.hooks.EmitJobEnqueued(j)
	return nil
}

// TryEnqueue enqueues j only while the pool is running and the queue is
// open, and reports whether the job was accepted. This is the only
// admission-controlled entry point; see Enqueue for the unguarded one.
func (p *Pool) TryEnqueue(j job.Job) bool {
	if j == nil {
		p.logger.Warn("job rejected: nil job")
		return false
	}
	if !p.running.Load() {
		p.logger.Warn("job rejected: pool not running", slog.String("job_name", job.Name(j)))
		return false
	}
	if p.queue.Closed() {
		p.logger.Warn("job rejected: queue closed", slog.String("job_name", job.Name(j)))
		return false
	}
	if err := p.queue.Push(j); err != nil {
		return false
	}
	p.hooks.EmitJobEnqueued(j)
	return true
}

// Shutdown stops the pool gracefully: it clears the running flag, waits —
// bounded by the drain timeout — for already-queued jobs to be picked up,
// then closes the queue and joins every worker. The drain is best-effort:
// on timeout the queue closes with jobs still buffered. No-op if the pool
// is not running; never blocks indefinitely.
func (p *Pool) Shutdown() {
	if !p.running.CompareAndSwap(true, false) {
		return
	}

	p.logger.Info("pool shutdown requested")

	deadline := time.Now().Add(p.drainTimeout)
	for !p.queue.Empty() {
		if time.Now().After(deadline) {
			p.logger.Warn("timeout waiting for queue to drain",
				slog.Int("pending", p.queue.Len()),
			)
			break
		}
		time.Sleep(p.drainPoll)
	}

	p.queue.Shutdown()
	p.Join()
	p.hooks.EmitShutdown()

	p.logger.Info("pool shutdown complete")
}

// ShutdownNow stops the pool immediately: no drain wait — the queue is
// closed right away and the workers are joined. Closing does not discard
// jobs already buffered: a worker blocked in Pop that wakes to a
// non-empty buffer still dequeues and runs that job. The guarantee is "no
// further blocking and no drain delay for the caller", not "no further
// jobs run". No-op if the pool is not running.
func (p *Pool) ShutdownNow() {
	if !p.running.CompareAndSwap(true, false) {
		return
	}

	p.logger.Info("pool immediate shutdown requested")

	p.queue.Shutdown()
	p.Join()
	p.hooks.EmitShutdown()

	p.logger.Info("pool shutdown complete")
}

// Join waits for every tracked worker to terminate, then clears the
// worker collection. Both shutdown variants call it; it is safe to call
// with no workers.
func (p *Pool) Join() {
	p.wg.Wait()
	p.mu.Lock()
	p.workers = nil
	p.mu.Unlock()
}

// Size returns the number of currently tracked workers.
func (p *Pool) Size() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.workers)
}

// Running reports whether the pool is running.
func (p *Pool) Running() bool { return p.running.Load() }

// Pending returns the number of jobs currently buffered in the queue.
// Snapshot semantics only.
func (p *Pool) Pending() int { return p.queue.Len() }

// workerLoop is run by each worker goroutine. It pops until the queue
// reports the empty sentinel — the only termination path; there is no
// external interrupt delivered mid-job.
func (p *Pool) workerLoop(name string) {
	defer p.wg.Done()

	logger := p.logger.With(slog.String("worker", name))
	logger.Info("worker started")

	for {
		j, ok := p.queue.Pop()
		if !ok {
			break
		}

		p.hooks.EmitJobStarted(j)
		start := time.Now()

		err := p.mw(context.Background(), j, func(context.Context) error {
			return j.Execute()
		})
		elapsed := time.Since(start)

		if err != nil {
			logger.Error("job failed",
				slog.String("job_name", job.Name(j)),
				slog.Duration("elapsed", elapsed),
				slog.String("error", err.Error()),
			)
			p.hooks.EmitJobFailed(j, err)
			continue
		}
		p.hooks.EmitJobCompleted(j, elapsed)
	}

	logger.Info("worker exiting")
}
