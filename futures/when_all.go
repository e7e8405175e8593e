package futures

import "sync"

// WhenAll returns a future that becomes ready once every future in fs has
// settled. The combined future is fulfilled with the first exception
// observed in arrival order if any input failed; only if every input
// succeeded is it fulfilled with fs itself, each element now safe to Get
// without blocking, in input order.
func WhenAll[T any](fs []Future[T], opts ...ExecutorOption) Future[[]Future[T]] {
	o := newExecutorOptions(opts...)
	out := newSharedState[[]Future[T]](o.logger)

	states := make([]*sharedState[T], len(fs))
	remaining := int64(0)
	for i := range fs {
		if st := fs[i].peekState(); st != nil {
			states[i] = st
			remaining++
		}
	}
	if remaining == 0 {
		_ = out.setValue(fs)
		return Future[[]Future[T]]{state: out}
	}

	var mu sync.Mutex
	var firstErr error
	for _, st := range states {
		if st == nil {
			continue
		}
		st := st
		st.retain()
		st.attachContinuation(func(exc error) {
			defer st.release()
			mu.Lock()
			if exc != nil && firstErr == nil {
				firstErr = exc
			}
			remaining--
			done := remaining == 0
			err := firstErr
			mu.Unlock()
			if !done {
				return
			}
			if err != nil {
				_ = out.setException(err)
				return
			}
			_ = out.setValue(fs)
		})
	}

	return Future[[]Future[T]]{state: out}
}
