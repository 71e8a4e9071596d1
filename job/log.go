package job

import "log/slog"

// Log is a job that writes a fixed message to the logger when executed.
// It is intentionally trivial: a placeholder during development, a
// demonstration of how jobs behave, and a convenient target for exercising
// the pool in tests.
type Log struct {
	logger *slog.Logger
	msg    string
}

// NewLog creates a Log job that records msg at info level on execution.
// A nil logger falls back to slog.Default().
func NewLog(logger *slog.Logger, msg string) *Log {
	if logger == nil {
		logger = slog.Default()
	}
	return &Log{logger: logger, msg: msg}
}

// Name implements the optional naming interface used by middleware.
func (l *Log) Name() string { return "log" }

// Execute logs the stored message.
func (l *Log) Execute() error {
	l.logger.Info("log job executed", slog.String("message", l.msg))
	return nil
}
