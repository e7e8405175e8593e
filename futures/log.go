package futures

import "github.com/rs/zerolog"

// defaultLogger is silent: the library has no observable side effects
// unless a caller opts into logging via WithLogger.
var defaultLogger = zerolog.Nop()

// ExecutorOption configures the logger used by a promise, a combinator, or
// one of the four launch policies.
type ExecutorOption func(*executorOptions)

type executorOptions struct {
	logger zerolog.Logger
}

// WithLogger wires a zerolog.Logger into the state(s) a call constructs. The
// events logged are a state's last reference being released and a failed
// execution of an executor-run task.
func WithLogger(l zerolog.Logger) ExecutorOption {
	return func(o *executorOptions) { o.logger = l }
}

func newExecutorOptions(opts ...ExecutorOption) executorOptions {
	o := executorOptions{logger: defaultLogger}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
