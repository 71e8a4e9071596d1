package middleware

import (
	"context"
	"log/slog"
	"time"

	"github.com/queueworks/taskpool/job"
)

// Logging returns middleware that logs job start and completion.
func Logging(logger *slog.Logger) Middleware {
	return func(ctx context.Context, j job.Job, next Handler) error {
		name := job.Name(j)
		logger.Debug("job started", slog.String("job_name", name))

		start := time.Now()
		err := next(ctx)
		elapsed := time.Since(start)

		if err != nil {
			logger.Error("job failed",
				slog.String("job_name", name),
				slog.Duration("elapsed", elapsed),
				slog.String("error", err.Error()),
			)
		} else {
			logger.Info("job completed",
				slog.String("job_name", name),
				slog.Duration("elapsed", elapsed),
			)
		}

		return err
	}
}
