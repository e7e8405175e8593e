package futures

import "sync"

// queuedExecutor is a single background goroutine draining tasks off a FIFO
// channel, giving LaunchQueued its documented guarantee: tasks submitted
// through it run in submission order, never concurrently with each other.
type queuedExecutor struct {
	tasks chan func()
}

func newQueuedExecutor() *queuedExecutor {
	e := &queuedExecutor{tasks: make(chan func(), 256)}
	go e.loop()
	return e
}

func (e *queuedExecutor) loop() {
	for task := range e.tasks {
		task()
	}
}

func (e *queuedExecutor) submit(task func()) {
	e.tasks <- task
}

var (
	queuedOnce sync.Once
	queued     *queuedExecutor
)

func getQueuedExecutor() *queuedExecutor {
	queuedOnce.Do(func() {
		queued = newQueuedExecutor()
	})
	return queued
}

func runQueued[T any](s *sharedState[T]) {
	getQueuedExecutor().submit(func() {
		runInThreadExitScope(s)
	})
}
