package futures_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Wizermil/future/futures/threadexit"

	"github.com/Wizermil/future/futures"
)

// TestSetValueAtThreadExit pins the documented behavior: a state that has
// had SetValueAtThreadExit called, but whose scope has not yet ended, must
// report Timeout (not Ready) to a bounded wait.
func TestSetValueAtThreadExit(t *testing.T) {
	p := futures.NewPromise[int]()
	f, err := p.GetFuture()
	require.NoError(t, err)

	started := make(chan struct{})
	finished := make(chan struct{})
	go func() {
		threadexit.Scope(func(r *threadexit.Registry) {
			require.NoError(t, p.SetValueAtThreadExit(r, 11))
			close(started)
			time.Sleep(30 * time.Millisecond)
		})
		close(finished)
	}()

	<-started
	status, err := f.WaitFor(5 * time.Millisecond)
	require.NoError(t, err)
	assert.Equal(t, futures.StatusTimeout, status)
	assert.False(t, f.IsReady())

	<-finished
	v, err := f.Get()
	require.NoError(t, err)
	assert.Equal(t, 11, v)
}
