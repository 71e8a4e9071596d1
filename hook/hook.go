// Package hook defines the lifecycle extension system for the pool.
//
// Extensions are notified of lifecycle events and can react to them —
// recording counters, emitting webhooks, writing audit logs. Each
// lifecycle hook is a separate interface so extensions opt in only to the
// events they care about. Hooks are observability-only: their return
// values never affect pool control flow.
//
// # Implementing an Extension
//
//	type MyExtension struct{}
//
//	func (e *MyExtension) Name() string { return "my-extension" }
//
//	// Opt in to specific hooks by implementing their interfaces.
//	func (e *MyExtension) OnJobCompleted(j job.Job, elapsed time.Duration) error {
//	    log.Printf("job %s completed in %s", job.Name(j), elapsed)
//	    return nil
//	}
//
// The [Registry] fans out each event to all registered extensions that
// implement the corresponding hook interface.
package hook

import (
	"time"

	"github.com/queueworks/taskpool/job"
)

// Extension is the base interface all extensions must implement.
type Extension interface {
	// Name returns a unique human-readable name for the extension.
	Name() string
}

// JobEnqueued is called after a job is handed to the queue.
type JobEnqueued interface {
	OnJobEnqueued(j job.Job) error
}

// JobStarted is called when a worker begins executing a job.
type JobStarted interface {
	OnJobStarted(j job.Job) error
}

// JobCompleted is called after a job finishes successfully.
type JobCompleted interface {
	OnJobCompleted(j job.Job, elapsed time.Duration) error
}

// JobFailed is called when a job's execution returns an error or panics.
type JobFailed interface {
	OnJobFailed(j job.Job, err error) error
}

// Shutdown is called after the pool has closed its queue and joined every
// worker.
type Shutdown interface {
	OnShutdown() error
}
