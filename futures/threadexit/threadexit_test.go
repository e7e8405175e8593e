package threadexit_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Wizermil/future/futures/threadexit"
)

type fakeState struct {
	ready   bool
	released bool
}

func (f *fakeState) MakeReady() { f.ready = true }
func (f *fakeState) Release()   { f.released = true }

func TestScopeFinalizesRegisteredStates(t *testing.T) {
	s := &fakeState{}
	threadexit.Scope(func(r *threadexit.Registry) {
		r.RegisterState(s)
		assert.False(t, s.ready)
	})
	assert.True(t, s.ready)
	assert.True(t, s.released)
}

func TestScopeWithNoRegistrationsIsANoop(t *testing.T) {
	ran := false
	threadexit.Scope(func(r *threadexit.Registry) {
		ran = true
	})
	assert.True(t, ran)
}

func TestScopeMakesStatesReadyBeforeRelease(t *testing.T) {
	var order []string
	s := &orderedState{order: &order}
	threadexit.Scope(func(r *threadexit.Registry) {
		r.RegisterState(s)
	})
	assert.Equal(t, []string{"ready", "release"}, order)
}

type orderedState struct {
	order *[]string
}

func (s *orderedState) MakeReady() { *s.order = append(*s.order, "ready") }
func (s *orderedState) Release()   { *s.order = append(*s.order, "release") }
