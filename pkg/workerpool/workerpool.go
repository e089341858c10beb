// Package workerpool provides the process-wide worker pool that backs the
// parallel phases of the CSV reader and writer.
//
// One pool is lazily created on first use, sized to the host's available
// parallelism, and reused for the life of the process. Read and write
// operations submit one task per chunk or row range and block on Do until
// every task has finished; tasks own disjoint memory regions, so the join
// is the only synchronization point.
package workerpool

import (
	"runtime"
	"sync"

	"go.uber.org/zap"

	"github.com/tabular-dev/tabular/pkg/logger"
)

// Pool is a fixed-size pool of worker goroutines consuming from a shared
// task queue. It is safe for concurrent use; independent Do calls may
// interleave their tasks on the same workers.
type Pool struct {
	tasks chan task
	size  int
}

type task struct {
	fn   func()
	done *sync.WaitGroup
}

var (
	defaultPool *Pool
	defaultOnce sync.Once
)

// Default returns the process-wide pool, creating it on first call with
// one worker per available CPU.
func Default() *Pool {
	defaultOnce.Do(func() {
		defaultPool = NewPool(runtime.GOMAXPROCS(0))
		logger.Debug("worker pool initialized", zap.Int("workers", defaultPool.size))
	})
	return defaultPool
}

// NewPool creates a pool with the given number of workers. Sizes below 1
// are clamped to 1. Most callers should use Default; dedicated pools are
// for tests that need deterministic worker counts.
func NewPool(size int) *Pool {
	if size < 1 {
		size = 1
	}
	p := &Pool{
		// Buffered so a submitting goroutine rarely blocks before the
		// join barrier.
		tasks: make(chan task, size*2),
		size:  size,
	}
	for i := 0; i < size; i++ {
		go p.worker()
	}
	return p
}

// Size returns the number of workers in the pool.
func (p *Pool) Size() int {
	return p.size
}

func (p *Pool) worker() {
	for t := range p.tasks {
		t.fn()
		t.done.Done()
	}
}

// Do submits every task to the pool and blocks until all of them have
// completed. Tasks must handle their own errors (typically by writing
// into a result slot owned by the task).
func (p *Pool) Do(tasks ...func()) {
	if len(tasks) == 0 {
		return
	}
	// A single task runs inline; no reason to bounce it through the queue.
	if len(tasks) == 1 {
		tasks[0]()
		return
	}

	var wg sync.WaitGroup
	wg.Add(len(tasks))
	for _, fn := range tasks {
		select {
		case p.tasks <- task{fn: fn, done: &wg}:
		default:
			// Queue full: run on the submitting goroutine instead of
			// blocking.
			fn()
			wg.Done()
		}
	}

	// Work-stealing join: while waiting the caller drains the shared queue.
	// Every worker may be parked inside an outer task's join with the inner
	// tasks sitting in the queue, so the waiter must execute tasks itself or
	// nested Do calls deadlock.
	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()
	for {
		select {
		case t := <-p.tasks:
			t.fn()
			t.done.Done()
		case <-done:
			return
		}
	}
}
