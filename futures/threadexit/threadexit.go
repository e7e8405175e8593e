// Package threadexit gives a goroutine a "finish these states when I exit"
// hook. Goroutines have no OS-level TLS destructor to piggyback on, so a
// registering goroutine wraps its own body in Scope — a scoped sentinel
// standing in for thread-exit teardown. Everything registered during the
// scope is finalized, in registration order, when the scope's function
// returns: condition-variable notifications first, then state readiness.
package threadexit

import "sync"

// Readyable is implemented by any shared state a Registry can finalize: it
// must expose a way to transition to ready and to drop the registry's own
// strong reference once notified.
type Readyable interface {
	MakeReady()
	Release()
}

type notifyPair struct {
	mu *sync.Mutex
	cv *sync.Cond
}

// Registry collects the condition variables and shared states a producing
// goroutine wants finalized when its Scope exits.
type Registry struct {
	mu     sync.Mutex
	notify []notifyPair
	states []Readyable
}

// RegisterNotify asks the registry to broadcast cv (locking mu around it)
// when the scope ends.
func (r *Registry) RegisterNotify(mu *sync.Mutex, cv *sync.Cond) {
	r.mu.Lock()
	r.notify = append(r.notify, notifyPair{mu, cv})
	r.mu.Unlock()
}

// RegisterState asks the registry to call MakeReady then Release on s when
// the scope ends. The caller must already hold a strong reference on s's
// behalf; the registry takes ownership of that reference.
func (r *Registry) RegisterState(s Readyable) {
	r.mu.Lock()
	r.states = append(r.states, s)
	r.mu.Unlock()
}

// finish runs every registered notification before marking any registered
// state ready, and releases each state's registry-held reference after.
func (r *Registry) finish() {
	r.mu.Lock()
	notify := r.notify
	states := r.states
	r.notify = nil
	r.states = nil
	r.mu.Unlock()

	for _, p := range notify {
		p.mu.Lock()
		p.cv.Broadcast()
		p.mu.Unlock()
	}
	for _, s := range states {
		s.MakeReady()
		s.Release()
	}
}

// Scope runs fn with a fresh Registry, then finalizes everything fn
// registered. Only code that fn hands r to can register with it. The
// futures package's executors also run each task inside a Scope, but do
// not pass that Registry on to the task.
func Scope(fn func(r *Registry)) {
	r := &Registry{}
	defer r.finish()
	fn(r)
}
