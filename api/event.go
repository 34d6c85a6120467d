// File: api/event.go
// Package api defines the core event vocabulary shared across the queue.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package api

// EventType identifies the kind of an Event. Zero value is Unknown.
type EventType int

// Reserved event types. These four identities are stable across a
// release: Unknown is the catch-all handler key, Quit is interrupt-
// injected, System is buffer-synthesised, Timer is scheduler-synthesised.
// Last marks the boundary before the first client-allocatable id.
const (
	Unknown EventType = iota
	Quit
	System
	Timer
	Last = Timer
)

// reservedNames holds the fixed names for the reserved event types.
var reservedNames = map[EventType]string{
	Unknown: "nil",
	Quit:    "quit",
	System:  "system",
	Timer:   "timer",
}

// ReservedName returns the constant name for a reserved type, and ok=false
// for any non-reserved type.
func ReservedName(t EventType) (string, bool) {
	name, ok := reservedNames[t]
	return name, ok
}

// Event is an immutable (type, target, data) tuple delivered by the
// Dispatcher. Target is an opaque handle compared only by identity;
// Data ownership transfers into the queue on post and out of it on
// retrieval.
type Event struct {
	Type   EventType
	Target any
	Data   Payload
}

// TimerPayload is the fixed payload layout for Timer events: the
// platform timer handle for client identification, and the number of
// full periods that elapsed beyond one since the timer's last delivery.
type TimerPayload struct {
	Handle      TimerHandle
	MissedCount uint32
}

// TimerHandle identifies a platform timer, minted by an EventBuffer and
// never interpreted by the core beyond equality and inclusion in
// TimerPayload.
type TimerHandle any
