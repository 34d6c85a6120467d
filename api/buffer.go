// File: api/buffer.go
// Package api
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// EventBuffer is the pluggable low-level queue the Dispatcher sits on
// top of. It may block on an OS wait primitive; the default
// implementation (internal/eventbuffer) blocks on a condition variable.

package api

// BufferResult classifies what GetEvent produced.
type BufferResult int

const (
	// None means the wait produced nothing useful; the caller should
	// re-check its deadline and retry.
	None BufferResult = iota
	// SystemResult means a fully populated synthetic event (e.g. a
	// platform wake) was returned directly.
	SystemResult
	// UserResult means a data id previously enqueued via AddEvent was
	// returned and must be resolved through the Event Store.
	UserResult
)

// EventBuffer is the contract the core requires from a pluggable
// low-level queue and timer-handle factory.
type EventBuffer interface {
	// IsEmpty reports emptiness cheaply, without blocking.
	IsEmpty() bool

	// WaitForEvent blocks up to timeoutSeconds; negative means wait
	// indefinitely, zero means poll. May return spuriously.
	WaitForEvent(timeoutSeconds float64)

	// GetEvent returns the next ready event. For SystemResult, ev is
	// fully populated. For UserResult, dataID identifies a payload
	// previously stored via AddEvent. For None, ev and dataID are
	// unspecified.
	GetEvent() (result BufferResult, ev Event, dataID uint32)

	// AddEvent enqueues a previously stored payload's id; returns false
	// under resource pressure.
	AddEvent(dataID uint32) bool

	// NewTimer mints an opaque platform timer handle for period/oneShot.
	// The core never uses this handle for scheduling logic; it is
	// passed back to DeleteTimer and carried in TimerPayload.
	NewTimer(period float64, oneShot bool) TimerHandle

	// DeleteTimer releases a platform timer handle.
	DeleteTimer(h TimerHandle)
}
