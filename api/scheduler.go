// Package api
// Author: momentics
//
// Scheduler is the general-purpose callback scheduler exposed by
// facade.Service.Scheduler, distinct from the Dispatcher's own
// event-producing internal/timer.Scheduler: this one runs arbitrary
// fn() callbacks off the consumer thread, the Dispatcher's one emits
// synthetic TIMER events onto it.

package api

// Scheduler abstracts out-of-band callback scheduling, independent of
// the Dispatcher's event loop.
type Scheduler interface {
    // Schedule schedules a callback to be executed after delayNanos.
    Schedule(delayNanos int64, fn func()) (Cancelable, error)

    // Cancel cancels a previously scheduled callback.
    Cancel(c Cancelable) error

    // Now returns monotonic time in nanoseconds.
    Now() int64
}
