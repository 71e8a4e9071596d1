package hook

import (
	"sync/atomic"
	"time"

	"github.com/queueworks/taskpool/job"
)

// Compile-time interface checks.
var (
	_ Extension    = (*StatsExtension)(nil)
	_ JobEnqueued  = (*StatsExtension)(nil)
	_ JobStarted   = (*StatsExtension)(nil)
	_ JobCompleted = (*StatsExtension)(nil)
	_ JobFailed    = (*StatsExtension)(nil)
)

// Stats is a point-in-time snapshot of pool activity counters.
type Stats struct {
	Enqueued  int64
	Started   int64
	Completed int64
	Failed    int64
}

// StatsExtension counts lifecycle events with atomic counters. Register it
// on a pool to get cheap activity stats without a metrics backend.
type StatsExtension struct {
	enqueued  atomic.Int64
	started   atomic.Int64
	completed atomic.Int64
	failed    atomic.Int64
}

// NewStats creates a StatsExtension with all counters at zero.
func NewStats() *StatsExtension { return &StatsExtension{} }

// Name implements Extension.
func (s *StatsExtension) Name() string { return "stats" }

// OnJobEnqueued implements JobEnqueued.
func (s *StatsExtension) OnJobEnqueued(_ job.Job) error {
	s.enqueued.Add(1)
	return nil
}

// OnJobStarted implements JobStarted.
func (s *StatsExtension) OnJobStarted(_ job.Job) error {
	s.started.Add(1)
	return nil
}

// OnJobCompleted implements JobCompleted.
func (s *StatsExtension) OnJobCompleted(_ job.Job, _ time.Duration) error {
	s.completed.Add(1)
	return nil
}

// OnJobFailed implements JobFailed.
func (s *StatsExtension) OnJobFailed(_ job.Job, _ error) error {
	s.failed.Add(1)
	return nil
}

// Snapshot returns the current counter values. Each counter is read
// atomically, but the snapshot as a whole is not transactional against
// concurrent execution.
func (s *StatsExtension) Snapshot() Stats {
	return Stats{
		Enqueued:  s.enqueued.Load(),
		Started:   s.started.Load(),
		Completed: s.completed.Load(),
		Failed:    s.failed.Load(),
	}
}
