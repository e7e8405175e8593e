package futures

import (
	"sync"

	"github.com/Wizermil/future/futures/threadexit"
)

// Promise is the exclusive write end of a shared state: the producer that
// will eventually fulfill — or, by being closed unfulfilled while observed,
// break — the future it hands to its consumer.
type Promise[T any] struct {
	mu        sync.Mutex
	state     *sharedState[T]
	retrieved bool
}

// NewPromise allocates a fresh shared state and the promise that owns it.
func NewPromise[T any](opts ...ExecutorOption) *Promise[T] {
	o := newExecutorOptions(opts...)
	return &Promise[T]{state: newSharedState[T](o.logger)}
}

// GetFuture extracts the promise's future exactly once; a second call fails
// with future_already_retrieved, and calling it on a closed promise fails
// with no_state.
func (p *Promise[T]) GetFuture() (Future[T], error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.state == nil {
		return Future[T]{}, ErrNoState
	}
	if p.retrieved {
		return Future[T]{}, ErrFutureAlreadyRetrieved
	}
	p.retrieved = true
	p.state.retain()
	p.state.markFutureAttached()
	return Future[T]{state: p.state}, nil
}

// SetValue fulfills the promise with v.
func (p *Promise[T]) SetValue(v T) error {
	s, err := p.stateOrNoState()
	if err != nil {
		return err
	}
	return s.setValue(v)
}

// SetException fulfills the promise with err.
func (p *Promise[T]) SetException(err error) error {
	s, stateErr := p.stateOrNoState()
	if stateErr != nil {
		return stateErr
	}
	return s.setException(err)
}

// SetValueAtThreadExit stores v and registers the state with r, deferring
// readiness until r's Scope ends (see the threadexit package).
func (p *Promise[T]) SetValueAtThreadExit(r *threadexit.Registry, v T) error {
	s, err := p.stateOrNoState()
	if err != nil {
		return err
	}
	return s.setValueAtThreadExit(r, v)
}

// SetExceptionAtThreadExit is the failure-path symmetric of
// SetValueAtThreadExit.
func (p *Promise[T]) SetExceptionAtThreadExit(r *threadexit.Registry, err error) error {
	s, stateErr := p.stateOrNoState()
	if stateErr != nil {
		return stateErr
	}
	return s.setExceptionAtThreadExit(r, err)
}

// Close releases the promise's own reference to its shared state. If the
// state was never fulfilled and some other owner (a future or a pending
// continuation) still observes it, Close first records a broken_promise
// exception. Go has no deterministic destructor to run this check
// automatically at scope exit, so callers that need the behavior call
// Close explicitly (typically via defer), the same way *os.File or
// context.CancelFunc are used.
func (p *Promise[T]) Close() error {
	p.mu.Lock()
	s := p.state
	p.state = nil
	p.mu.Unlock()
	if s == nil {
		return nil
	}

	if !s.isSatisfied() && s.useCount() > 1 {
		_ = s.setException(ErrBrokenPromise)
	}
	s.release()
	return nil
}

func (p *Promise[T]) stateOrNoState() (*sharedState[T], error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.state == nil {
		return nil, ErrNoState
	}
	return p.state, nil
}
