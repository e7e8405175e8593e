package futures

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/Wizermil/future/futures/threadexit"
)

// status is the bitset tracking a shared state's lifecycle. Guarded
// entirely by sharedState.mu except for the one-time publication at
// construction.
type status uint32

const (
	statusConstructed status = 1 << iota
	statusFutureAttached
	statusReady
	statusDeferred
	statusQueued
	statusThreadPool
	statusContinuationAttached
)

func (s status) has(bit status) bool { return s&bit != 0 }

// FutureStatus is the outcome of a bounded wait (WaitFor/WaitUntil).
type FutureStatus int

const (
	StatusReady FutureStatus = iota
	StatusTimeout
	StatusDeferred
)

func (s FutureStatus) String() string {
	switch s {
	case StatusReady:
		return "ready"
	case StatusTimeout:
		return "timeout"
	case StatusDeferred:
		return "deferred"
	default:
		return "unknown"
	}
}

// sharedState is the handoff object between a promise and its consumers: it
// holds the status bitset, the value/exception slots, an ordered list of
// continuations, and the strong reference count shared by every owner
// (producer, future(s), pending continuation closures, executor tasks,
// combinator contexts). A single generic type covers by-value, by-reference
// (T = *X), and "void" (T = struct{}) results, since Go has no separate
// reference-specialization mechanism to mirror.
type sharedState[T any] struct {
	refCount

	id  uuid.UUID
	log zerolog.Logger

	mu    sync.Mutex
	ready chan struct{} // closed exactly once, when statusReady is set

	status status

	value T
	exc   error

	continuations []func(error)

	// task is the callable bound by an executor; nil for a bare
	// promise/future pair with no executor attached — calling execute on
	// such a state is a programming error, reported as an error by execute.
	task func() (T, error)
}

func newSharedState[T any](log zerolog.Logger) *sharedState[T] {
	s := &sharedState[T]{
		id:    uuid.New(),
		log:   log,
		ready: make(chan struct{}),
	}
	s.refCount.init(1, func() {
		s.log.Debug().Str("state", s.id.String()).Msg("future: shared state released")
	})
	return s
}

// setValue fulfills the state with a value. Constructed and exception-set
// are both sticky: a second attempt at either fails.
func (s *sharedState[T]) setValue(v T) error {
	s.mu.Lock()
	if s.status.has(statusConstructed) || s.exc != nil {
		s.mu.Unlock()
		return ErrPromiseAlreadySatisfied
	}
	s.value = v
	s.status |= statusConstructed | statusReady
	conts := s.continuations
	s.continuations = nil
	close(s.ready)
	s.mu.Unlock()

	for _, c := range conts {
		c(nil)
	}
	return nil
}

// setException is the failure-path symmetric of setValue: it sets Ready but
// never Constructed.
func (s *sharedState[T]) setException(err error) error {
	if err == nil {
		return errors.WithStack(errNilException)
	}
	s.mu.Lock()
	if s.status.has(statusConstructed) || s.exc != nil {
		s.mu.Unlock()
		return ErrPromiseAlreadySatisfied
	}
	s.exc = err
	s.status |= statusReady
	conts := s.continuations
	s.continuations = nil
	close(s.ready)
	s.mu.Unlock()

	for _, c := range conts {
		c(err)
	}
	return nil
}

// setValueAtThreadExit stores the value and marks Constructed, but leaves
// Ready unset; it registers the state with r so a later Scope teardown
// calls makeReady. See threadexit package doc for why a Registry, not a
// hidden TLS slot, is the Go translation.
func (s *sharedState[T]) setValueAtThreadExit(r *threadexit.Registry, v T) error {
	s.mu.Lock()
	if s.status.has(statusConstructed) || s.exc != nil {
		s.mu.Unlock()
		return ErrPromiseAlreadySatisfied
	}
	s.value = v
	s.status |= statusConstructed
	s.mu.Unlock()

	s.retain() // the registry holds this reference until it fires MakeReady/Release
	r.RegisterState(s)
	return nil
}

func (s *sharedState[T]) setExceptionAtThreadExit(r *threadexit.Registry, err error) error {
	if err == nil {
		return errors.WithStack(errNilException)
	}
	s.mu.Lock()
	if s.status.has(statusConstructed) || s.exc != nil {
		s.mu.Unlock()
		return ErrPromiseAlreadySatisfied
	}
	s.exc = err
	s.mu.Unlock()

	s.retain()
	r.RegisterState(s)
	return nil
}

// MakeReady marks the state ready outside of set_value/set_exception — used
// by the thread-exit registry to finalize a "semi-set" state. Exported so it
// satisfies threadexit.Readyable.
func (s *sharedState[T]) MakeReady() {
	s.mu.Lock()
	if s.status.has(statusReady) {
		s.mu.Unlock()
		return
	}
	s.status |= statusReady
	conts := s.continuations
	s.continuations = nil
	exc := s.exc
	close(s.ready)
	s.mu.Unlock()

	for _, c := range conts {
		c(exc)
	}
}

// Release drops the registry's strong reference. Exported so it satisfies
// threadexit.Readyable.
func (s *sharedState[T]) Release() {
	s.release()
}

// attachContinuation installs c to run once the state becomes ready. If the
// state is already ready, c runs immediately on the calling goroutine
// instead of being stored — matching the at-most-once, fire-on-attach rule.
// The continuation slot is generalized into an ordered list (see DESIGN.md,
// Open Questions) so that a shared_future's copies may each attach their
// own observer.
func (s *sharedState[T]) attachContinuation(c func(error)) {
	s.mu.Lock()
	s.status |= statusContinuationAttached
	if s.status.has(statusReady) {
		exc := s.exc
		s.mu.Unlock()
		c(exc)
		return
	}
	s.continuations = append(s.continuations, c)
	s.mu.Unlock()
}

// wait blocks until the state is ready. If the state is Deferred, it clears
// the bit and runs the bound task synchronously on the calling goroutine
// instead of blocking.
func (s *sharedState[T]) wait() error {
	s.mu.Lock()
	if s.status.has(statusDeferred) {
		s.status &^= statusDeferred
		s.mu.Unlock()
		return s.execute()
	}
	s.mu.Unlock()
	<-s.ready
	return nil
}

// waitFor returns StatusDeferred without executing anything if the state is
// Deferred; otherwise it blocks up to d for readiness.
func (s *sharedState[T]) waitFor(d time.Duration) FutureStatus {
	s.mu.Lock()
	if s.status.has(statusDeferred) {
		s.mu.Unlock()
		return StatusDeferred
	}
	s.mu.Unlock()

	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-s.ready:
		return StatusReady
	case <-timer.C:
		return StatusTimeout
	}
}

func (s *sharedState[T]) waitUntil(t time.Time) FutureStatus {
	return s.waitFor(time.Until(t))
}

// execute runs the bound task and fulfills the state with its outcome.
// Calling execute on a state with no bound task is a programming error.
func (s *sharedState[T]) execute() error {
	if s.task == nil {
		return errors.WithStack(fmt.Errorf("future: execute called on a state with no bound task"))
	}
	v, err := s.runTask()
	if err != nil {
		return s.setException(err)
	}
	return s.setValue(v)
}

// runTask invokes the bound task, converting a panic into an error instead
// of letting it propagate — user callables never escape an executor worker.
func (s *sharedState[T]) runTask() (v T, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = panicToError(r)
		}
	}()
	return s.task()
}

// takeValue waits for readiness, then moves the value out (or rethrows the
// exception). Callers are expected to drop their reference immediately
// after; a state may only be taken from once.
func (s *sharedState[T]) takeValue() (T, error) {
	if err := s.wait(); err != nil {
		var zero T
		return zero, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.exc != nil {
		var zero T
		return zero, s.exc
	}
	v := s.value
	var zero T
	s.value = zero
	return v, nil
}

// copyValue waits for readiness, then returns the stored value without
// clearing it — used by SharedFuture, whose Get may be called repeatedly
// across copies.
func (s *sharedState[T]) copyValue() (T, error) {
	if err := s.wait(); err != nil {
		var zero T
		return zero, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.exc != nil {
		var zero T
		return zero, s.exc
	}
	return s.value, nil
}

// markFutureAttached records that a Future has been handed out for this
// state — informational bookkeeping, not currently branched on by any
// operation here.
func (s *sharedState[T]) markFutureAttached() {
	s.mu.Lock()
	s.status |= statusFutureAttached
	s.mu.Unlock()
}

func (s *sharedState[T]) isSatisfied() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status.has(statusConstructed) || s.exc != nil
}

func (s *sharedState[T]) isReady() bool {
	select {
	case <-s.ready:
		return true
	default:
		return false
	}
}
