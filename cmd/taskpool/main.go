// Command taskpool is a demo harness for the worker pool. It starts a
// pool, feeds it log and/or sleep jobs from rate-limited concurrent
// producers, and demonstrates graceful versus immediate shutdown.
//
// Usage:
//
//	taskpool [flags]
//
//	-config string        path to a YAML or JSON config file
//	-workers int          number of workers (overrides config)
//	-jobs int             number of log jobs to enqueue (default 5)
//	-slow int             number of slow jobs to enqueue
//	-slow-duration dur    duration of each slow job (default 200ms)
//	-producers int        number of concurrent producers (default 2)
//	-rate float           max jobs/s across producers (0 = unlimited)
//	-immediate            use ShutdownNow instead of graceful Shutdown
//	-log-level string     minimum log level (overrides config)
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/queueworks/taskpool"
	"github.com/queueworks/taskpool/hook"
	"github.com/queueworks/taskpool/job"
	"github.com/queueworks/taskpool/middleware"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "taskpool:", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		configPath   = flag.String("config", "", "path to a YAML or JSON config file")
		workers      = flag.Int("workers", 0, "number of workers (overrides config)")
		jobs         = flag.Int("jobs", 5, "number of log jobs to enqueue")
		slow         = flag.Int("slow", 0, "number of slow jobs to enqueue")
		slowDuration = flag.Duration("slow-duration", 200*time.Millisecond, "duration of each slow job")
		producers    = flag.Int("producers", 2, "number of concurrent producers")
		rateLimit    = flag.Float64("rate", 0, "max jobs per second across producers (0 = unlimited)")
		immediate    = flag.Bool("immediate", false, "use immediate shutdown instead of graceful")
		logLevel     = flag.String("log-level", "", "minimum log level (overrides config)")
	)
	flag.Parse()

	cfg := taskpool.DefaultConfig()
	if *configPath != "" {
		var err error
		if cfg, err = taskpool.LoadConfig(*configPath); err != nil {
			return err
		}
	}
	if *workers > 0 {
		cfg.Workers = *workers
	}
	if *logLevel != "" {
		cfg.LogLevel = *logLevel
	}

	level, err := taskpool.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	stats := hook.NewStats()
	pool := taskpool.New(cfg,
		taskpool.WithLogger(logger),
		taskpool.WithExtensions(stats),
		taskpool.WithMiddleware(middleware.Logging(logger)),
	)
	pool.Start(cfg.Workers)

	limiter := rate.NewLimiter(rate.Inf, 1)
	if *rateLimit > 0 {
		limiter = rate.NewLimiter(rate.Limit(*rateLimit), 1)
	}

	nProducers := *producers
	if nProducers < 1 {
		nProducers = 1
	}

	var g errgroup.Group
	for p := 0; p < nProducers; p++ {
		p := p
		share := *jobs / nProducers
		if p == 0 {
			share += *jobs % nProducers
		}
		g.Go(func() error {
			for i := 0; i < share; i++ {
				if err := limiter.Wait(context.Background()); err != nil {
					return err
				}
				msg := fmt.Sprintf("task %d from producer %d", i, p)
				if err := pool.Enqueue(job.NewLog(logger, msg)); err != nil {
					return err
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	for i := 0; i < *slow; i++ {
		if err := pool.Enqueue(job.NewSleep(*slowDuration)); err != nil {
			return err
		}
	}

	// Give the workers a moment to pick up the backlog before stopping.
	time.Sleep(100 * time.Millisecond)

	if *immediate {
		logger.Warn("calling ShutdownNow")
		pool.ShutdownNow()
	} else {
		logger.Info("calling Shutdown")
		pool.Shutdown()
	}

	s := stats.Snapshot()
	logger.Info("pool stopped",
		slog.Int64("enqueued", s.Enqueued),
		slog.Int64("completed", s.Completed),
		slog.Int64("failed", s.Failed),
		slog.Int("stranded", pool.Pending()),
	)
	return nil
}
