package futures

import (
	"runtime"
	"sync"
	"time"

	"go.uber.org/atomic"
)

// ThreadPoolExecutor is a pool of worker goroutines that execute submitted
// tasks with a bounded degree of parallelism, grounded on the same elastic
// worker-queue shape used elsewhere in the ecosystem for simple pools:
// workers are created lazily up to maxWorkers and retired after sitting
// idle past idleTimeout. SubmitToPool blocks only long enough to hand the task to
// an existing or newly started worker; it never blocks for the task itself
// to finish.
type ThreadPoolExecutor struct {
	maxWorkers  int32
	idleTimeout time.Duration
	workerQueue chan func()
	workerCount atomic.Int32
}

// NewThreadPoolExecutor creates a pool with the given worker cap and idle
// retirement timeout. maxWorkers below 1 is treated as 1.
func NewThreadPoolExecutor(maxWorkers int, idleTimeout time.Duration) *ThreadPoolExecutor {
	if maxWorkers < 1 {
		maxWorkers = 1
	}
	return &ThreadPoolExecutor{
		maxWorkers:  int32(maxWorkers),
		idleTimeout: idleTimeout,
		workerQueue: make(chan func()),
	}
}

// SubmitToPool hands task to the pool, starting a new worker if none is
// immediately free and the pool has not reached maxWorkers.
func (p *ThreadPoolExecutor) SubmitToPool(task func()) {
	if task == nil {
		return
	}
	select {
	case p.workerQueue <- task:
	default:
		p.tryStartWorker()
		p.workerQueue <- task
	}
}

func (p *ThreadPoolExecutor) tryStartWorker() {
	if p.workerCount.Inc() > p.maxWorkers {
		p.workerCount.Dec()
		return
	}
	go p.runWorker()
}

func (p *ThreadPoolExecutor) runWorker() {
	defer p.workerCount.Dec()
	timer := time.NewTimer(p.idleTimeout)
	defer timer.Stop()

	for {
		select {
		case task := <-p.workerQueue:
			if !timer.Stop() {
				select {
				case <-timer.C:
				default:
				}
			}
			task()
			timer.Reset(p.idleTimeout)
		case <-timer.C:
			return
		}
	}
}

const defaultThreadPoolIdleTimeout = 30 * time.Second

var (
	threadPoolOnce sync.Once
	threadPool     *ThreadPoolExecutor
)

// getThreadPool lazily builds the shared pool LaunchThreadPool submits to,
// sized to the host's available concurrency (one worker per usable CPU).
// There is no manager goroutine: each worker retires itself after sitting
// idle. LaunchThreadPool always uses this pool; callers cannot substitute
// their own ThreadPoolExecutor for it.
func getThreadPool() *ThreadPoolExecutor {
	threadPoolOnce.Do(func() {
		threadPool = NewThreadPoolExecutor(runtime.GOMAXPROCS(0), defaultThreadPoolIdleTimeout)
	})
	return threadPool
}

func runThreadPool[T any](s *sharedState[T]) {
	getThreadPool().SubmitToPool(func() {
		runInThreadExitScope(s)
	})
}
