package middleware

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"

	"github.com/queueworks/taskpool/job"
)

// Recover returns middleware that recovers from panics in the handler
// chain. Panics are converted to errors and logged with a stack trace.
// The pool installs it as the outermost middleware unconditionally: this
// is the failure-isolating boundary that keeps a misbehaving job from
// killing its worker.
func Recover(logger *slog.Logger) Middleware {
	return func(ctx context.Context, j job.Job, next Handler) (retErr error) {
		defer func() {
			if r := recover(); r != nil {
				stack := string(debug.Stack())
				logger.Error("job panicked",
					slog.String("job_name", job.Name(j)),
					slog.Any("panic", r),
					slog.String("stack", stack),
				)
				retErr = fmt.Errorf("panic in job %s: %v", job.Name(j), r)
			}
		}()
		return next(ctx)
	}
}
