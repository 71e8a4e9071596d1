package taskpool

import (
	"log/slog"

	"github.com/queueworks/taskpool/hook"
	"github.com/queueworks/taskpool/middleware"
	"github.com/queueworks/taskpool/worker"
)

// builder collects the collaborators wired into a pool by New.
type builder struct {
	logger     *slog.Logger
	extensions []hook.Extension
	mws        []middleware.Middleware
}

// Option configures New.
type Option func(*builder)

// WithLogger sets the logger used by the pool and its collaborators.
// Defaults to slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(b *builder) {
		if l != nil {
			b.logger = l
		}
	}
}

// WithExtensions registers lifecycle hook extensions on the pool.
func WithExtensions(exts ...hook.Extension) Option {
	return func(b *builder) { b.extensions = append(b.extensions, exts...) }
}

// WithMiddleware appends middleware applied around every job execution,
// inside the pool's recovery boundary.
func WithMiddleware(mws ...middleware.Middleware) Option {
	return func(b *builder) { b.mws = append(b.mws, mws...) }
}

// New wires a worker pool from cfg: logger, hook registry, middleware
// chain, and drain behavior. The pool is created stopped; call Start with
// cfg.Workers (or any count) to launch it.
func New(cfg Config, opts ...Option) *worker.Pool {
	b := &builder{logger: slog.Default()}
	for _, opt := range opts {
		opt(b)
	}

	hooks := hook.NewRegistry(b.logger)
	for _, e := range b.extensions {
		hooks.Register(e)
	}

	return worker.NewPool(b.logger,
		worker.WithDrainTimeout(cfg.DrainTimeout),
		worker.WithDrainPollInterval(cfg.DrainPollInterval),
		worker.WithHooks(hooks),
		worker.WithMiddleware(b.mws...),
	)
}
