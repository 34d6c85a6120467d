// File: internal/concurrency/executor.go
// Package concurrency implements a NUMA-aware task executor with
// work-stealing-style fallback.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Executor dispatches tasks across worker goroutines, using lock-free
// per-worker local queues (internal/ringbuf.Ring) and a buffered
// global queue as overflow. Its caller in this module is
// concurrency.Scheduler, which submits each due callback here;
// dispatcher.Dispatcher.Dispatch runs handlers on the calling goroutine
// and does not use the Executor.

package concurrency

import (
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/momentics/eventqueue/api"
	"github.com/momentics/eventqueue/internal/ringbuf"
)

// TaskFunc is a unit of work to execute.
type TaskFunc func()

// Executor manages a pool of worker goroutines.
type Executor struct {
	globalQueue chan TaskFunc          // fallback queue for tasks when local queues are full
	localQueues []*ringbuf.Ring[TaskFunc] // per-worker lock-free queues
	workers     []*worker              // worker instances
	closeCh     chan struct{}          // signals executor shutdown
	closed      int32                  // atomic flag: 1 if closed
	numWorkers  int32                  // current number of workers
	mu          sync.Mutex             // protects resizing operations

	totalTasks     int64
	completedTasks int64
}

// NewExecutor creates a new Executor with the given number of workers
// and optional NUMA node (-1 disables pinning).
func NewExecutor(numWorkers, numaNode int) *Executor {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}
	e := &Executor{
		globalQueue: make(chan TaskFunc, numWorkers*4),
		closeCh:     make(chan struct{}),
		numWorkers:  int32(numWorkers),
	}
	e.localQueues = make([]*ringbuf.Ring[TaskFunc], numWorkers)
	e.workers = make([]*worker, numWorkers)
	for i := 0; i < numWorkers; i++ {
		e.localQueues[i] = ringbuf.New[TaskFunc](1024)
	}
	for i := 0; i < numWorkers; i++ {
		w := &worker{
			id:         i,
			executor:   e,
			localQueue: e.localQueues[i],
			stopCh:     make(chan struct{}),
		}
		e.workers[i] = w
		go w.run(numaNode)
	}
	return e
}

// Submit enqueues a task for execution, returning api.ErrExecutorClosed
// if the executor has been closed, or api.ErrResourceExhausted if both
// the chosen local queue and the global queue are full.
func (e *Executor) Submit(task func()) error {
	if atomic.LoadInt32(&e.closed) == 1 {
		return api.ErrExecutorClosed
	}
	t := TaskFunc(task)
	atomic.AddInt64(&e.totalTasks, 1)
	idx := int(atomic.LoadInt64(&e.totalTasks) % int64(e.NumWorkers()))
	if e.localQueues[idx].Enqueue(t) {
		return nil
	}
	select {
	case e.globalQueue <- t:
		return nil
	case <-e.closeCh:
		return api.ErrExecutorClosed
	default:
		return api.ErrResourceExhausted
	}
}

// NumWorkers returns the current number of active workers.
func (e *Executor) NumWorkers() int {
	return int(atomic.LoadInt32(&e.numWorkers))
}

// Resize is currently a no-op; the ring-backed worker pool is sized at
// construction. Exists to satisfy api.Executor.
func (e *Executor) Resize(newCount int) {}

var _ api.Executor = (*Executor)(nil)

// Close gracefully shuts down the executor and signals workers to exit.
func (e *Executor) Close() {
	if atomic.CompareAndSwapInt32(&e.closed, 0, 1) {
		close(e.closeCh)
		e.mu.Lock()
		defer e.mu.Unlock()
		for _, w := range e.workers {
			close(w.stopCh)
		}
	}
}

// Stats returns basic executor metrics.
func (e *Executor) Stats() map[string]int64 {
	return map[string]int64{
		"total_tasks":     atomic.LoadInt64(&e.totalTasks),
		"completed_tasks": atomic.LoadInt64(&e.completedTasks),
		"pending_tasks":   atomic.LoadInt64(&e.totalTasks) - atomic.LoadInt64(&e.completedTasks),
		"num_workers":     int64(e.NumWorkers()),
	}
}

// worker represents a single executor goroutine.
type worker struct {
	id         int
	executor   *Executor
	localQueue *ringbuf.Ring[TaskFunc]
	stopCh     chan struct{}
	stopped    int32
}

// run is the main loop for a worker, optionally pinning to numaNode.
func (w *worker) run(numaNode int) {
	defer atomic.StoreInt32(&w.stopped, 1)
	if numaNode >= 0 {
		if err := PinCurrentThread(numaNode, w.id); err != nil {
			// pinning is best-effort; an unpinned worker still runs correctly
		}
		defer UnpinCurrentThread()
	}
	for {
		select {
		case <-w.stopCh:
			return
		default:
			if task, ok := w.localQueue.Dequeue(); ok {
				w.executeTask(task)
				continue
			}
			select {
			case task := <-w.executor.globalQueue:
				w.executeTask(task)
			case <-w.stopCh:
				return
			default:
				time.Sleep(time.Millisecond)
			}
		}
	}
}

// executeTask runs the task and updates statistics, recovering from panics.
func (w *worker) executeTask(task TaskFunc) {
	defer func() {
		if r := recover(); r != nil {
			// swallow panic to keep worker alive; a panicking task
			// must not be allowed to take down the pool
		}
		atomic.AddInt64(&w.executor.completedTasks, 1)
	}()
	task()
}
