package futures

import "fmt"

// Errc enumerates the four error kinds the library ever raises through a
// shared state: a fulfillment-protocol violation, a double future
// extraction, a missing/consumed state, or a dropped producer.
type Errc int

const (
	ErrcFutureAlreadyRetrieved Errc = iota + 1
	ErrcPromiseAlreadySatisfied
	ErrcNoState
	ErrcBrokenPromise
)

var errcText = map[Errc]string{
	ErrcFutureAlreadyRetrieved:  "future already retrieved",
	ErrcPromiseAlreadySatisfied: "promise already satisfied",
	ErrcNoState:                 "no associated state",
	ErrcBrokenPromise:           "broken promise",
}

func (e Errc) String() string {
	if s, ok := errcText[e]; ok {
		return s
	}
	return fmt.Sprintf("future_errc(%d)", int(e))
}

// FutureError carries one of the four Errc kinds plus a fixed message, as
// required by the library's error taxonomy.
type FutureError struct {
	Errc Errc
}

func (e *FutureError) Error() string {
	return e.Errc.String()
}

// Is lets errors.Is(err, ErrBrokenPromise) (etc.) match any FutureError of
// the same kind, regardless of how it was constructed.
func (e *FutureError) Is(target error) bool {
	t, ok := target.(*FutureError)
	return ok && t.Errc == e.Errc
}

func newFutureError(errc Errc) *FutureError {
	return &FutureError{Errc: errc}
}

// Sentinel errors for the four future_errc kinds; compare with errors.Is.
var (
	ErrFutureAlreadyRetrieved  = newFutureError(ErrcFutureAlreadyRetrieved)
	ErrPromiseAlreadySatisfied = newFutureError(ErrcPromiseAlreadySatisfied)
	ErrNoState                 = newFutureError(ErrcNoState)
	ErrBrokenPromise           = newFutureError(ErrcBrokenPromise)
)

// errNilException is an internal logic error: SetException/SetExceptionAtThreadExit
// were handed a nil error, which the protocol never allows — this, unlike
// the FutureError taxonomy, is raised to the caller directly rather than
// being captured on the state.
var errNilException = fmt.Errorf("future: SetException given a nil error")
