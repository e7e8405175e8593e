package futures

import "time"

// Future is the single-consumer read end of a shared state. It is obtained
// from Promise.GetFuture, Async, MakeReadyFuture/MakeExceptionalFuture, or
// one of the combinators. A Future is consumed exactly once: Get (or Share)
// detaches it from its state, after which it is no longer Valid.
type Future[T any] struct {
	state *sharedState[T]
}

// Valid reports whether this handle still refers to a shared state.
func (f *Future[T]) Valid() bool {
	return f != nil && f.state != nil
}

// detachState hands back the underlying state and invalidates f — the
// single consumption point every exclusive use of a Future goes through.
func (f *Future[T]) detachState() *sharedState[T] {
	s := f.state
	f.state = nil
	return s
}

// peekState returns the underlying state without consuming f. Used
// internally by combinators (WhenAll/WhenAny) that need to observe a
// future's settlement while still handing back a live, gettable Future to
// the caller.
func (f Future[T]) peekState() *sharedState[T] {
	return f.state
}

// Get waits for the state to settle, then returns the value or the stored
// exception, consuming f. A second Get (or a Get on a zero-value Future)
// fails with no_state.
func (f *Future[T]) Get() (T, error) {
	s := f.detachState()
	if s == nil {
		var zero T
		return zero, ErrNoState
	}
	defer s.release()
	return s.takeValue()
}

// Wait blocks until the state settles. If the state was launched Deferred,
// Wait runs the bound task synchronously on the calling goroutine instead
// of blocking.
func (f *Future[T]) Wait() error {
	if f.state == nil {
		return ErrNoState
	}
	return f.state.wait()
}

// WaitFor blocks up to d for the state to settle, or returns StatusDeferred
// immediately without running anything if the state is Deferred.
func (f *Future[T]) WaitFor(d time.Duration) (FutureStatus, error) {
	if f.state == nil {
		return 0, ErrNoState
	}
	return f.state.waitFor(d), nil
}

// WaitUntil is WaitFor against an absolute deadline.
func (f *Future[T]) WaitUntil(t time.Time) (FutureStatus, error) {
	if f.state == nil {
		return 0, ErrNoState
	}
	return f.state.waitUntil(t), nil
}

// IsReady reports whether the state has already settled, without blocking.
func (f *Future[T]) IsReady() bool {
	return f.state != nil && f.state.isReady()
}

// Share converts this future into a copyable SharedFuture, consuming f.
func (f *Future[T]) Share() SharedFuture[T] {
	s := f.detachState()
	return SharedFuture[T]{state: s}
}
