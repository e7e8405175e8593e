package futures

import "sync"

// WhenAnyResult is the value carried by the future returned from WhenAny:
// Index identifies which member of Sequence settled first with success,
// and Sequence is the input slice, each future still independently
// gettable.
type WhenAnyResult[T any] struct {
	Index    int
	Sequence []Future[T]
}

// WhenAny returns a future that becomes ready as soon as any single future
// in fs succeeds; success dominates over failure — Index names the first
// input to succeed, regardless of how many others failed first. If every
// input fails, the future settles with the last-observed failure. If fs is
// empty the returned future never becomes ready on its own.
func WhenAny[T any](fs []Future[T], opts ...ExecutorOption) Future[WhenAnyResult[T]] {
	o := newExecutorOptions(opts...)
	out := newSharedState[WhenAnyResult[T]](o.logger)

	states := make([]*sharedState[T], len(fs))
	installed := 0
	for i := range fs {
		if st := fs[i].peekState(); st != nil {
			states[i] = st
			installed++
		}
	}

	var mu sync.Mutex
	failedCount := 0
	successIndex := -1
	var lastErr error
	delivered := false

	deliver := func() {
		if delivered {
			return
		}
		if successIndex >= 0 {
			delivered = true
			_ = out.setValue(WhenAnyResult[T]{Index: successIndex, Sequence: fs})
		} else if failedCount == installed && installed > 0 {
			delivered = true
			_ = out.setException(lastErr)
		}
	}

	for i, st := range states {
		if st == nil {
			continue
		}
		idx := i
		st := st
		st.retain()
		st.attachContinuation(func(exc error) {
			defer st.release()
			mu.Lock()
			defer mu.Unlock()
			if exc != nil {
				failedCount++
				lastErr = exc
			} else if successIndex < 0 {
				successIndex = idx
			}
			deliver()
		})
	}

	mu.Lock()
	deliver()
	mu.Unlock()

	return Future[WhenAnyResult[T]]{state: out}
}
