package futures

import "go.uber.org/atomic"

// refCount is the strong-reference bookkeeping shared by every owner of a
// sharedState: the promise, each future/shared future, a pending
// continuation closure, an executor task, or a combinator context. It
// exists as its own testable component with its own retain/release/useCount
// surface; Go's garbage collector — not this counter — is what actually
// reclaims a sharedState once nothing reaches it.
type refCount struct {
	n             atomic.Int64
	onLastRelease func()
}

// init sets the starting count and the hook to run when the count reaches
// zero. Must be called once, before any retain/release, and not concurrently
// with either.
func (r *refCount) init(initial int64, onLastRelease func()) {
	r.n.Store(initial)
	r.onLastRelease = onLastRelease
}

// retain adds one strong reference and returns the new count.
func (r *refCount) retain() int64 {
	return r.n.Inc()
}

// release drops one strong reference. The goroutine whose release brings
// the count to zero — and only that goroutine — runs onLastRelease.
func (r *refCount) release() int64 {
	n := r.n.Dec()
	if n == 0 {
		if f := r.onLastRelease; f != nil {
			r.onLastRelease = nil
			f()
		}
	}
	return n
}

// useCount returns the current number of strong references.
func (r *refCount) useCount() int64 {
	return r.n.Load()
}
