// File: internal/concurrency/scheduler.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Scheduler implements api.Scheduler: a general callback scheduler
// distinct from the dispatcher's event-producing Timer Scheduler
// (internal/timer). facade.Service exposes it through Scheduler() for
// callers that need a delayed callback rather than a posted Event.

package concurrency

import (
	"sync"
	"time"

	"github.com/momentics/eventqueue/api"
)

// Scheduler runs fn on the Executor after delayNanos elapses.
type Scheduler struct {
	executor *Executor
	start    time.Time
}

// NewScheduler creates a Scheduler that submits due callbacks to
// executor rather than running them on time.AfterFunc's own goroutine,
// so scheduled work shares the same worker pool as everything else.
func NewScheduler(executor *Executor) *Scheduler {
	return &Scheduler{executor: executor, start: time.Now()}
}

type cancelable struct {
	timer *time.Timer
	done  chan struct{}
	once  sync.Once
	err   error
}

func (c *cancelable) Cancel() error {
	c.once.Do(func() {
		c.timer.Stop()
		c.err = api.ErrOperationTimeout
		close(c.done)
	})
	return nil
}

func (c *cancelable) Done() <-chan struct{} { return c.done }
func (c *cancelable) Err() error            { return c.err }

// Schedule runs fn after delayNanos on the Scheduler's executor,
// returning a handle that can cancel it before it fires.
func (s *Scheduler) Schedule(delayNanos int64, fn func()) (api.Cancelable, error) {
	c := &cancelable{done: make(chan struct{})}
	c.timer = time.AfterFunc(time.Duration(delayNanos), func() {
		defer func() {
			c.once.Do(func() { close(c.done) })
		}()
		if s.executor != nil {
			s.executor.Submit(fn)
		} else {
			fn()
		}
	})
	return c, nil
}

// Cancel cancels a previously scheduled callback.
func (s *Scheduler) Cancel(c api.Cancelable) error {
	return c.Cancel()
}

// Now returns monotonic nanoseconds since the Scheduler was created.
func (s *Scheduler) Now() int64 {
	return time.Since(s.start).Nanoseconds()
}

var _ api.Scheduler = (*Scheduler)(nil)
