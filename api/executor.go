// Package api
// Author: momentics
//
// Executor contract for the worker pool that runs submitted closures,
// such as the callbacks internal/concurrency.Scheduler fires; the
// Dispatcher runs Handler.Handle itself and does not use it.
// internal/concurrency.Executor is the sole implementation.

package api

// Executor abstracts parallel task and custom eventloop execution.
type Executor interface {
    // Submit schedules task for execution.
    Submit(task func()) error

    // NumWorkers returns current number of active worker routines.
    NumWorkers() int

    // Resize adjusts the concurrency at runtime.
    Resize(newCount int)
}
