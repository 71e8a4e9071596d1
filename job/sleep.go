package job

import "time"

// Sleep is a job that blocks for a fixed duration. It simulates slow work
// in demos and shutdown tests.
type Sleep struct {
	d time.Duration
}

// NewSleep creates a Sleep job with the given duration.
func NewSleep(d time.Duration) *Sleep { return &Sleep{d: d} }

// Name implements the optional naming interface used by middleware.
func (s *Sleep) Name() string { return "sleep" }

// Execute sleeps for the configured duration.
func (s *Sleep) Execute() error {
	time.Sleep(s.d)
	return nil
}
