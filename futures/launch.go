package futures

import "fmt"

// Launch is a bitmask of launch policies. Callers may combine Async and
// Deferred to let Async choose between them; Queued and ThreadPool request
// one of the other two executors explicitly.
type Launch uint8

const (
	// LaunchAsync requests execution on its own goroutine, as soon as
	// possible.
	LaunchAsync Launch = 1 << iota
	// LaunchDeferred requests lazy, synchronous-on-first-wait execution.
	LaunchDeferred
	// LaunchQueued requests execution on the single shared background
	// worker, preserving submission order across every caller that uses it.
	LaunchQueued
	// LaunchThreadPool requests execution on the shared worker pool.
	LaunchThreadPool
)

// resolve picks a single concrete policy out of a combined mask with at
// least one bit set: Queued and ThreadPool are explicit requests and take
// priority over the Async/Deferred combination bits. When both Async and
// Deferred are set, Async wins, falling back to Deferred only if the
// goroutine could not be started. resolve is never called with policy == 0
// — Async checks that case itself, since an empty mask is not "pick a
// default" but an invalid request.
func (l Launch) resolve() Launch {
	switch {
	case l&LaunchQueued != 0:
		return LaunchQueued
	case l&LaunchThreadPool != 0:
		return LaunchThreadPool
	case l&LaunchAsync != 0:
		return LaunchAsync
	default:
		return LaunchDeferred
	}
}

// Async launches fn under the given policy and returns a future for its
// result. fn runs with no arguments and returns (T, error); a non-nil error
// becomes the future's exception. A zero Launch (no bits set at all) is an
// invalid request and Async returns an invalid, stateless Future[T] without
// ever invoking fn — distinct from LaunchAsync|LaunchDeferred, which is a
// valid request that resolves to Async-with-fallback. With LaunchAsync
// alone, a goroutine that cannot be started fails the returned future
// instead of falling back.
func Async[T any](policy Launch, fn func() (T, error), opts ...ExecutorOption) Future[T] {
	if policy == 0 {
		return Future[T]{}
	}

	o := newExecutorOptions(opts...)
	s := newSharedState[T](o.logger)
	s.task = fn

	switch policy.resolve() {
	case LaunchQueued:
		s.status |= statusQueued
		runQueued(s)
	case LaunchThreadPool:
		s.status |= statusThreadPool
		runThreadPool(s)
	case LaunchDeferred:
		s.status |= statusDeferred
	default: // LaunchAsync
		if !runAsync(s) {
			if policy&LaunchDeferred == 0 {
				// Thread creation failed and Deferred was not allowed:
				// surface the failure through the future.
				_ = s.setException(fmt.Errorf("future: could not start a goroutine for LaunchAsync"))
			} else {
				// Thread creation failed: fall back to running lazily on
				// the first wait instead.
				s.status |= statusDeferred
			}
		}
	}

	return Future[T]{state: s}
}
