// Package taskpool provides a concurrent job-execution engine: a
// thread-safe, closable FIFO job queue paired with a fixed-size pool of
// worker goroutines that consume and execute arbitrary units of work.
//
// Taskpool is a library, not a service. Import it, build a pool, and hand
// it jobs as ordinary Go values implementing [job.Job].
//
// # Quick Start
//
//	cfg := taskpool.DefaultConfig()
//	pool := taskpool.New(cfg, taskpool.WithLogger(logger))
//	pool.Start(cfg.Workers)
//
//	_ = pool.Enqueue(job.Func(func() error {
//	    // do some work
//	    return nil
//	}))
//
//	pool.Shutdown()
//
// # Architecture
//
// Producers transfer job ownership into the queue via push; an idle worker
// receives ownership via pop, executes the job, and discards it. The pool
// governs queue lifecycle (close on shutdown) and worker lifecycle (join on
// shutdown); the queue governs blocking and wake semantics on its own.
//
// Shutdown comes in two flavors. [worker.Pool.Shutdown] stops accepting the
// expectation of further work, waits a bounded time for the backlog to
// drain, then closes the queue and joins the workers. [worker.Pool.ShutdownNow]
// closes the queue immediately and joins — it guarantees no further blocking
// and no drain delay for the caller, not that no further jobs run.
//
// Per-job failures (errors and panics alike) are contained at the worker
// loop: they are logged, reported to lifecycle hooks, and never terminate
// the worker. Optional middleware ([middleware.Logging], [middleware.Metrics],
// [middleware.Tracing]) and lifecycle extensions ([hook.Extension]) observe
// execution without affecting control flow.
package taskpool
