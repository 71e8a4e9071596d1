package hook

import (
	"log/slog"
	"time"

	"github.com/queueworks/taskpool/job"
)

// Named entry types pair a hook implementation with the extension name
// captured at registration time. This avoids type-asserting back to
// Extension inside the emit methods.
type jobEnqueuedEntry struct {
	name string
	hook JobEnqueued
}

type jobStartedEntry struct {
	name string
	hook JobStarted
}

type jobCompletedEntry struct {
	name string
	hook JobCompleted
}

type jobFailedEntry struct {
	name string
	hook JobFailed
}

type shutdownEntry struct {
	name string
	hook Shutdown
}

// Registry holds registered extensions and dispatches lifecycle events to
// them. It type-caches extensions at registration time so emit calls
// iterate only over extensions that implement the relevant hook.
//
// Register all extensions before handing the registry to a pool; the
// Registry itself performs no locking.
type Registry struct {
	extensions []Extension
	logger     *slog.Logger

	// Type-cached slices for each lifecycle hook.
	jobEnqueued  []jobEnqueuedEntry
	jobStarted   []jobStartedEntry
	jobCompleted []jobCompletedEntry
	jobFailed    []jobFailedEntry
	shutdown     []shutdownEntry
}

// NewRegistry creates an extension registry with the given logger.
func NewRegistry(logger *slog.Logger) *Registry {
	if logger == nil {
		logger = slog.Default()
	}
	return &Registry{logger: logger}
}

// Register adds an extension and type-asserts it into all applicable hook
// caches. Extensions are notified in registration order.
func (r *Registry) Register(e Extension) {
	r.extensions = append(r.extensions, e)
	name := e.Name()

	if h, ok := e.(JobEnqueued); ok {
		r.jobEnqueued = append(r.jobEnqueued, jobEnqueuedEntry{name, h})
	}
	if h, ok := e.(JobStarted); ok {
		r.jobStarted = append(r.jobStarted, jobStartedEntry{name, h})
	}
	if h, ok := e.(JobCompleted); ok {
		r.jobCompleted = append(r.jobCompleted, jobCompletedEntry{name, h})
	}
	if h, ok := e.(JobFailed); ok {
		r.jobFailed = append(r.jobFailed, jobFailedEntry{name, h})
	}
	if h, ok := e.(Shutdown); ok {
		r.shutdown = append(r.shutdown, shutdownEntry{name, h})
	}
}

// Extensions returns the registered extensions in registration order.
func (r *Registry) Extensions() []Extension {
	return r.extensions
}

// hookError logs a hook failure. Hook errors are reported and dropped:
// lifecycle observation must never affect pool control flow.
func (r *Registry) hookError(extension, hookName string, err error) {
	r.logger.Warn("extension hook failed",
		slog.String("extension", extension),
		slog.String("hook", hookName),
		slog.String("error", err.Error()),
	)
}

// EmitJobEnqueued notifies extensions that a job entered the queue.
func (r *Registry) EmitJobEnqueued(j job.Job) {
	for _, en := range r.jobEnqueued {
		if err := en.hook.OnJobEnqueued(j); err != nil {
			r.hookError(en.name, "OnJobEnqueued", err)
		}
	}
}

// EmitJobStarted notifies extensions that a worker began executing a job.
func (r *Registry) EmitJobStarted(j job.Job) {
	for _, en := range r.jobStarted {
		if err := en.hook.OnJobStarted(j); err != nil {
			r.hookError(en.name, "OnJobStarted", err)
		}
	}
}

// EmitJobCompleted notifies extensions that a job finished successfully.
func (r *Registry) EmitJobCompleted(j job.Job, elapsed time.Duration) {
	for _, en := range r.jobCompleted {
		if err := en.hook.OnJobCompleted(j, elapsed); err != nil {
			r.hookError(en.name, "OnJobCompleted", err)
		}
	}
}

// EmitJobFailed notifies extensions that a job failed.
func (r *Registry) EmitJobFailed(j job.Job, jobErr error) {
	for _, en := range r.jobFailed {
		if err := en.hook.OnJobFailed(j, jobErr); err != nil {
			r.hookError(en.name, "OnJobFailed", err)
		}
	}
}

// EmitShutdown notifies extensions that the pool has shut down.
func (r *Registry) EmitShutdown() {
	for _, en := range r.shutdown {
		if err := en.hook.OnShutdown(); err != nil {
			r.hookError(en.name, "OnShutdown", err)
		}
	}
}
