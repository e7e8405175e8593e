package futures_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Wizermil/future/futures"
)

// TestWhenAnySuccessDominatesFailure is scenario S6: a failure observed
// before a success must not win — the successful input's index is
// reported regardless of arrival order.
func TestWhenAnySuccessDominatesFailure(t *testing.T) {
	pa := futures.NewPromise[int]()
	pb := futures.NewPromise[int]()
	fa, err := pa.GetFuture()
	require.NoError(t, err)
	fb, err := pb.GetFuture()
	require.NoError(t, err)

	w := futures.WhenAny([]futures.Future[int]{fa, fb})

	require.NoError(t, pa.SetException(fmt.Errorf("boom")))
	require.NoError(t, pb.SetValue(9))

	result, err := w.Get()
	require.NoError(t, err)
	assert.Equal(t, 1, result.Index)

	v, err := result.Sequence[1].Get()
	require.NoError(t, err)
	assert.Equal(t, 9, v)
}

func TestWhenAnyAllFail(t *testing.T) {
	errA := fmt.Errorf("a failed")
	errB := fmt.Errorf("b failed")
	fa := futures.MakeExceptionalFuture[int](errA)
	fb := futures.MakeExceptionalFuture[int](errB)

	w := futures.WhenAny([]futures.Future[int]{fa, fb})
	_, err := w.Get()
	assert.Error(t, err)
}
