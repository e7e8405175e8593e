package futures

import "time"

// SharedFuture is the multi-reader observer obtained from Future.Share. Any
// number of copies may read the same state concurrently; unlike Future, Get
// does not consume it.
type SharedFuture[T any] struct {
	state *sharedState[T]
}

// Valid reports whether this handle still refers to a shared state.
func (sf SharedFuture[T]) Valid() bool {
	return sf.state != nil
}

// Clone returns another independent owner of the same shared state,
// retaining a strong reference on its behalf. Plain Go assignment
// (sf2 := sf) shares the struct but not the reference-count bookkeeping;
// prefer Clone when handing a copy to a goroutine that will call Close.
func (sf SharedFuture[T]) Clone() SharedFuture[T] {
	if sf.state != nil {
		sf.state.retain()
	}
	return sf
}

// Close releases this copy's strong reference. Only meaningful for copies
// obtained via Clone; the value returned directly by Future.Share does not
// need closing if it is simply left to be garbage collected (Go has no
// deterministic destructor to rely on here).
func (sf SharedFuture[T]) Close() {
	if sf.state != nil {
		sf.state.release()
	}
}

// Get waits for the state to settle and returns a copy of the value (or the
// stored exception), without consuming sf.
func (sf SharedFuture[T]) Get() (T, error) {
	if sf.state == nil {
		var zero T
		return zero, ErrNoState
	}
	return sf.state.copyValue()
}

// Wait blocks until the state settles.
func (sf SharedFuture[T]) Wait() error {
	if sf.state == nil {
		return ErrNoState
	}
	return sf.state.wait()
}

// WaitFor blocks up to d for the state to settle.
func (sf SharedFuture[T]) WaitFor(d time.Duration) (FutureStatus, error) {
	if sf.state == nil {
		return 0, ErrNoState
	}
	return sf.state.waitFor(d), nil
}

// WaitUntil is WaitFor against an absolute deadline.
func (sf SharedFuture[T]) WaitUntil(t time.Time) (FutureStatus, error) {
	if sf.state == nil {
		return 0, ErrNoState
	}
	return sf.state.waitUntil(t), nil
}

// IsReady reports whether the state has already settled, without blocking.
func (sf SharedFuture[T]) IsReady() bool {
	return sf.state != nil && sf.state.isReady()
}

// OnReady attaches a continuation that runs with the value and error once
// the state settles — immediately, on the calling goroutine, if it already
// has. Each call to OnReady (across any number of clones of the same
// SharedFuture) installs its own independent observer; see DESIGN.md for
// why the continuation slot was generalized into a list for this type.
func (sf SharedFuture[T]) OnReady(cb func(T, error)) error {
	if sf.state == nil {
		return ErrNoState
	}
	s := sf.state
	s.retain()
	s.attachContinuation(func(exc error) {
		defer s.release()
		if exc != nil {
			var zero T
			cb(zero, exc)
			return
		}
		v, _ := s.copyValue()
		cb(v, nil)
	})
	return nil
}

// OnSuccess and OnFailure are thin wrappers over OnReady that only fire on
// one outcome each.
func (sf SharedFuture[T]) OnSuccess(cb func(T)) error {
	return sf.OnReady(func(v T, err error) {
		if err == nil {
			cb(v)
		}
	})
}

func (sf SharedFuture[T]) OnFailure(cb func(err error)) error {
	return sf.OnReady(func(_ T, err error) {
		if err != nil {
			cb(err)
		}
	})
}
