// Package job defines the unit of work executed by the pool, plus a few
// built-in job types for demos and tests.
package job

import "fmt"

// Job is a single unit of executable work. A job is exclusively owned by
// whoever currently holds it: the producer until it is enqueued, the queue
// until a worker pops it, and the worker until Execute returns. A job is
// executed at most once.
type Job interface {
	// Execute performs the job's side effects. Failures are surfaced
	// through the returned error (or a panic); the pool contains both and
	// keeps the worker alive.
	Execute() error
}

// Func adapts a plain function to the Job interface.
type Func func() error

// Execute calls f.
func (f Func) Execute() error { return f() }

// Name returns the job's self-reported name if it implements
// interface{ Name() string }, falling back to its dynamic type.
func Name(j Job) string {
	if n, ok := j.(interface{ Name() string }); ok {
		return n.Name()
	}
	return fmt.Sprintf("%T", j)
}
