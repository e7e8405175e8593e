package futures

// OnSuccess registers a callback to run with the value if f succeeds,
// firing immediately on the calling goroutine if f is already ready. It
// does not consume f — unlike Get or Share — so the same *Future[T] may
// have both OnSuccess and OnFailure (or several of either) attached.
func (f *Future[T]) OnSuccess(cb func(T)) error {
	s := f.peekState()
	if s == nil {
		return ErrNoState
	}
	s.retain()
	s.attachContinuation(func(exc error) {
		defer s.release()
		if exc == nil {
			v, _ := s.copyValue()
			cb(v)
		}
	})
	return nil
}

// OnFailure registers a callback to run with the error if f fails. See
// OnSuccess for the non-consuming contract.
func (f *Future[T]) OnFailure(cb func(error)) error {
	s := f.peekState()
	if s == nil {
		return ErrNoState
	}
	s.retain()
	s.attachContinuation(func(exc error) {
		defer s.release()
		if exc != nil {
			cb(exc)
		}
	})
	return nil
}
