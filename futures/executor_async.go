package futures

import "sync"

// ThreadSpawner starts fn on a new goroutine and reports whether it managed
// to do so. Go's runtime scheduler never fails to schedule a goroutine the
// way an OS thread pool can be exhausted, so the default spawner always
// succeeds; ThreadSpawner exists so tests (and callers simulating resource
// exhaustion) can exercise the async-falls-back-to-deferred behavior
// documented on Async, which otherwise has no trigger in Go.
type ThreadSpawner func(fn func()) bool

func defaultThreadSpawner(fn func()) bool {
	go fn()
	return true
}

var (
	threadSpawnerMu sync.RWMutex
	threadSpawner   ThreadSpawner = defaultThreadSpawner
)

// SetThreadSpawner overrides the goroutine-spawning strategy used by
// LaunchAsync. Passing nil restores the default. Intended for tests; the
// override is process-wide, so tests that use it should restore the
// default when done.
func SetThreadSpawner(spawner ThreadSpawner) {
	threadSpawnerMu.Lock()
	defer threadSpawnerMu.Unlock()
	if spawner == nil {
		spawner = defaultThreadSpawner
	}
	threadSpawner = spawner
}

func currentThreadSpawner() ThreadSpawner {
	threadSpawnerMu.RLock()
	defer threadSpawnerMu.RUnlock()
	return threadSpawner
}

// runAsync attempts to start s's bound task on its own goroutine, run
// through runInThreadExitScope. It reports whether the goroutine was
// actually started; when it wasn't, the caller falls back to LaunchDeferred
// if the policy allows it and otherwise fails the future.
func runAsync[T any](s *sharedState[T]) bool {
	return currentThreadSpawner()(func() {
		runInThreadExitScope(s)
	})
}
