package futures_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Wizermil/future/futures"
)

// TestAsyncFallsBackToDeferredOnSpawnFailure pins the documented behavior:
// when the runtime can't start a new thread for LaunchAsync|LaunchDeferred,
// the task silently becomes LaunchDeferred instead of failing outright. Go's
// scheduler never actually refuses a goroutine, so this is exercised
// through the ThreadSpawner hook.
func TestAsyncFallsBackToDeferredOnSpawnFailure(t *testing.T) {
	futures.SetThreadSpawner(func(fn func()) bool { return false })
	defer futures.SetThreadSpawner(nil)

	ran := false
	f := futures.Async[int](futures.LaunchAsync|futures.LaunchDeferred, func() (int, error) {
		ran = true
		return 3, nil
	})

	status, err := f.WaitFor(5 * time.Millisecond)
	require.NoError(t, err)
	assert.Equal(t, futures.StatusDeferred, status)
	assert.False(t, ran)

	v, err := f.Get()
	require.NoError(t, err)
	assert.Equal(t, 3, v)
	assert.True(t, ran)
}
