package futures

import (
	"sync"

	"github.com/Wizermil/future/futures/threadexit"
)

// PackagedTask wraps a callable together with a promise, so invoking it
// both runs the callable and fulfills the future obtained via GetFuture.
// The launch-policy executors do not use it; they run the callable bound
// to the shared state directly.
type PackagedTask[T any] struct {
	mu      sync.Mutex
	fn      func() (T, error)
	promise *Promise[T]
	done    bool
}

// NewPackagedTask wraps fn for deferred invocation.
func NewPackagedTask[T any](fn func() (T, error), opts ...ExecutorOption) *PackagedTask[T] {
	return &PackagedTask[T]{
		fn:      fn,
		promise: NewPromise[T](opts...),
	}
}

// GetFuture returns the task's future; like Promise.GetFuture, only the
// first call succeeds.
func (pt *PackagedTask[T]) GetFuture() (Future[T], error) {
	return pt.promise.GetFuture()
}

// Invoke runs the wrapped callable and fulfills the future with its
// result. Calling Invoke a second time fails with
// ErrPromiseAlreadySatisfied; Reset is required to run it again. Fails with
// ErrNoState on a zero-value PackagedTask that was never constructed via
// NewPackagedTask.
func (pt *PackagedTask[T]) Invoke() error {
	pt.mu.Lock()
	if pt.fn == nil || pt.promise == nil {
		pt.mu.Unlock()
		return ErrNoState
	}
	if pt.done {
		pt.mu.Unlock()
		return ErrPromiseAlreadySatisfied
	}
	pt.done = true
	pt.mu.Unlock()

	v, err := pt.runFn()
	if err != nil {
		return pt.promise.SetException(err)
	}
	return pt.promise.SetValue(v)
}

// InvokeAtThreadExit runs the callable immediately but defers the future's
// readiness until r's enclosing threadexit.Scope ends. Fails with
// ErrNoState on a zero-value PackagedTask that was never constructed via
// NewPackagedTask.
func (pt *PackagedTask[T]) InvokeAtThreadExit(r *threadexit.Registry) error {
	pt.mu.Lock()
	if pt.fn == nil || pt.promise == nil {
		pt.mu.Unlock()
		return ErrNoState
	}
	if pt.done {
		pt.mu.Unlock()
		return ErrPromiseAlreadySatisfied
	}
	pt.done = true
	pt.mu.Unlock()

	v, err := pt.runFn()
	if err != nil {
		return pt.promise.SetExceptionAtThreadExit(r, err)
	}
	return pt.promise.SetValueAtThreadExit(r, v)
}

func (pt *PackagedTask[T]) runFn() (v T, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = panicToError(r)
		}
	}()
	return pt.fn()
}

// Reset rebinds the task to a fresh promise/future pair so it can be
// invoked again with the same callable. Fails with no_state on a
// zero-value PackagedTask that was never constructed via NewPackagedTask.
func (pt *PackagedTask[T]) Reset(opts ...ExecutorOption) error {
	pt.mu.Lock()
	defer pt.mu.Unlock()
	if pt.fn == nil {
		return ErrNoState
	}
	_ = pt.promise.Close()
	pt.promise = NewPromise[T](opts...)
	pt.done = false
	return nil
}
