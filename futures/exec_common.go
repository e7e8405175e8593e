package futures

import (
	"fmt"

	"github.com/Wizermil/future/futures/threadexit"
)

// panicToError converts a recovered panic value into an error, the same
// conversion sharedState.runTask applies to executor-run tasks — used
// anywhere else in the package that runs a user callable directly.
func panicToError(r any) error {
	if err, ok := r.(error); ok {
		return fmt.Errorf("future: task panicked: %w", err)
	}
	return fmt.Errorf("future: task panicked: %v", r)
}

// runInThreadExitScope runs s.execute() inside a threadexit.Scope. Every
// executor that runs arbitrary user code (Async, Queued, ThreadPool) goes
// through this helper; Deferred runs synchronously on the waiter's own
// goroutine without one. The scope's Registry is not handed to the bound
// task, so nothing the task does registers with it; a task that uses
// SetValueAtThreadExit/SetExceptionAtThreadExit passes a Registry from a
// threadexit.Scope of its own.
func runInThreadExitScope[T any](s *sharedState[T]) {
	threadexit.Scope(func(r *threadexit.Registry) {
		if err := s.execute(); err != nil {
			s.log.Debug().Str("state", s.id.String()).Err(err).Msg("future: task execution failed")
		}
	})
}
