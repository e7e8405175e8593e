package futures

// Then attaches a continuation to f and returns a new future for its
// result. If f fails, its exception propagates directly to the returned
// future and fn is never invoked; fn only runs when the antecedent
// succeeded. fn still receives f's error alongside its value to match
// ThenFlat's shape, but that error is always nil by the time fn is called.
//
// fn runs synchronously on whichever goroutine causes it to fire: the
// producer's goroutine, if f is not yet ready when Then is called, or the
// calling goroutine immediately, if f is already ready. There is no
// separate launch policy for a continuation, only for the antecedent
// itself.
//
// Then is a package-level function rather than a method on Future[T]
// because a method cannot introduce the additional type parameter U that
// the result type needs — Go does not allow generic methods.
func Then[T, U any](f *Future[T], fn func(T, error) (U, error), opts ...ExecutorOption) Future[U] {
	o := newExecutorOptions(opts...)
	out := newSharedState[U](o.logger)
	s := f.detachState()
	if s == nil {
		_ = out.setException(ErrNoState)
		return Future[U]{state: out}
	}

	s.attachContinuation(func(error) {
		defer s.release()
		v, err := s.copyValue()
		if err != nil {
			_ = out.setException(err)
			return
		}
		rv, rerr := runContinuation(fn, v, nil)
		if rerr != nil {
			_ = out.setException(rerr)
			return
		}
		_ = out.setValue(rv)
	})

	return Future[U]{state: out}
}

// ThenFlat is Then for a continuation that itself returns a Future[U]
// instead of a bare U — it flattens the result instead of producing a
// Future[Future[U]], the same distinction errorx.Result.FlatMap draws
// against Result.Map. If f fails, its exception propagates directly to the
// returned future and fn is never invoked, exactly like Then.
func ThenFlat[T, U any](f *Future[T], fn func(T, error) (Future[U], error), opts ...ExecutorOption) Future[U] {
	o := newExecutorOptions(opts...)
	out := newSharedState[U](o.logger)
	s := f.detachState()
	if s == nil {
		_ = out.setException(ErrNoState)
		return Future[U]{state: out}
	}

	s.attachContinuation(func(error) {
		defer s.release()
		v, err := s.copyValue()
		if err != nil {
			_ = out.setException(err)
			return
		}
		inner, rerr := runContinuationFlat(fn, v, nil)
		if rerr != nil {
			_ = out.setException(rerr)
			return
		}
		iv, ierr := inner.Get()
		if ierr != nil {
			_ = out.setException(ierr)
			return
		}
		_ = out.setValue(iv)
	})

	return Future[U]{state: out}
}

// runContinuation and runContinuationFlat convert a panic inside a
// user-supplied continuation into an error the same way an executor task
// does, so that a continuation can never unwind the producer's own
// goroutine — the failure routes into the downstream state instead.
func runContinuation[T, U any](fn func(T, error) (U, error), v T, err error) (u U, rerr error) {
	defer func() {
		if r := recover(); r != nil {
			rerr = panicToError(r)
		}
	}()
	return fn(v, err)
}

func runContinuationFlat[T, U any](fn func(T, error) (Future[U], error), v T, err error) (f Future[U], rerr error) {
	defer func() {
		if r := recover(); r != nil {
			rerr = panicToError(r)
		}
	}()
	return fn(v, err)
}
