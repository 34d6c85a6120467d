// File: internal/typeregistry/registry.go
// Package typeregistry grows the process-wide mapping from event type id
// to human-readable name.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// The caller (dispatcher.Dispatcher) holds the single lock this module's
// concurrency model requires; Registry itself assumes exclusive access
// per call, exactly like the original CEventQueue::m_typeMap it is
// grounded on.

package typeregistry

import "github.com/momentics/eventqueue/api"

// Registry grows monotonically; ids are never reused. The four reserved
// ids (api.Unknown, api.Quit, api.System, api.Timer) are never inserted.
type Registry struct {
	next  api.EventType
	names map[api.EventType]string
}

// New creates a Registry whose first allocatable id is api.Last+1.
func New() *Registry {
	return &Registry{
		next:  api.Last + 1,
		names: make(map[api.EventType]string),
	}
}

// Register allocates the next id, records name, and returns the id.
func (r *Registry) Register(name string) api.EventType {
	t := r.next
	r.names[t] = name
	r.next++
	return t
}

// RegisterOnce writes slot only if it is still api.Unknown, returning
// the (now stable) id either way. Idempotent across repeated calls
// under the caller's lock.
func (r *Registry) RegisterOnce(slot *api.EventType, name string) api.EventType {
	if *slot == api.Unknown {
		*slot = r.Register(name)
	}
	return *slot
}

// Name returns the reserved name for reserved ids, the registered name
// otherwise, or "<unknown>" if t was never registered.
func (r *Registry) Name(t api.EventType) string {
	if name, ok := api.ReservedName(t); ok {
		return name
	}
	if name, ok := r.names[t]; ok {
		return name
	}
	return "<unknown>"
}
