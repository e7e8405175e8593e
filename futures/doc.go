// Package futures implements shared asynchronous state, futures, promises,
// packaged tasks and their continuations, in the spirit of the C++
// standard library's <future> header and its std::experimental
// continuations/when_all/when_any extensions.
//
// A Promise[T] is fulfilled with SetValue or SetException; its Future[T],
// obtained once via GetFuture, is consumed by Get, or converted with Share
// into a SharedFuture[T] that many observers can read independently. Async
// launches a callable under one of four policies (LaunchAsync,
// LaunchDeferred, LaunchQueued, LaunchThreadPool); Then and ThenFlat chain
// continuations onto an existing future; WhenAll and WhenAny combine many
// futures into one.
package futures
