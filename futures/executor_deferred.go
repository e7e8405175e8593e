package futures

// Deferred execution needs no dedicated runner: sharedState.wait already
// special-cases statusDeferred and runs the bound task synchronously on the
// first waiter's own goroutine. This file exists so the four launch
// policies each have a visible home in the package, matching how the
// original keeps one translation unit per execution strategy.
