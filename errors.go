package taskpool

import (
	"errors"

	"github.com/queueworks/taskpool/queue"
)

var (
	// ErrNilJob reports a nil job handle passed to an enqueue operation.
	// Defined by the queue package and re-exported here for callers that
	// only import the root package.
	ErrNilJob = queue.ErrNilJob

	// ErrUnsupportedConfig reports a config file extension that is neither
	// YAML nor JSON.
	ErrUnsupportedConfig = errors.New("taskpool: unsupported config format")

	// ErrUnknownLogLevel reports an unrecognized log level string.
	ErrUnknownLogLevel = errors.New("taskpool: unknown log level")
)
