package futures

// MakeReadyFuture returns a future that is already settled with v — useful
// for call sites that sometimes have a value in hand and sometimes need to
// launch work, without special-casing the synchronous path.
func MakeReadyFuture[T any](v T, opts ...ExecutorOption) Future[T] {
	o := newExecutorOptions(opts...)
	s := newSharedState[T](o.logger)
	_ = s.setValue(v)
	return Future[T]{state: s}
}

// MakeExceptionalFuture returns a future that is already settled with err.
func MakeExceptionalFuture[T any](err error, opts ...ExecutorOption) Future[T] {
	o := newExecutorOptions(opts...)
	s := newSharedState[T](o.logger)
	_ = s.setException(err)
	return Future[T]{state: s}
}

// MakeReadyVoidFuture is MakeReadyFuture for the common case of a future
// carrying no meaningful value.
func MakeReadyVoidFuture(opts ...ExecutorOption) Future[struct{}] {
	return MakeReadyFuture(struct{}{}, opts...)
}
