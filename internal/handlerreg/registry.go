// File: internal/handlerreg/registry.go
// Package handlerreg maps (event type, target) pairs to a Handler,
// with a fall-through lookup for handlers registered against a
// target regardless of event type.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Grounded on CEventQueue's doAdoptHandler/doOrphanHandler/getHandler
// and their CTypeTarget key, which orders first by a wildcard-capable
// type and then target. Go's comparable-key maps make the ordering
// irrelevant; kUnknown's role as a wildcard type is preserved exactly.

package handlerreg

import "github.com/momentics/eventqueue/api"

type key struct {
	eventType api.EventType
	target    any
}

// Registry stores handlers keyed by (type, target), where type may be
// api.Unknown to mean "any type not more specifically registered for
// this target".
type Registry struct {
	handlers map[key]api.Handler
}

// New creates an empty Registry.
func New() *Registry {
	return &Registry{handlers: make(map[key]api.Handler)}
}

// Adopt installs handler for (t, target), replacing any previous
// handler at that exact key. Passing api.Unknown for t registers a
// catch-all for target.
func (r *Registry) Adopt(t api.EventType, target any, handler api.Handler) {
	r.handlers[key{t, target}] = handler
}

// Orphan removes and returns the handler at the exact (t, target)
// key, if any.
func (r *Registry) Orphan(t api.EventType, target any) (api.Handler, bool) {
	k := key{t, target}
	h, ok := r.handlers[k]
	if ok {
		delete(r.handlers, k)
	}
	return h, ok
}

// Lookup returns the handler registered for (t, target); if none is
// registered for that exact type, it falls back to the catch-all
// handler registered under api.Unknown for target.
func (r *Registry) Lookup(t api.EventType, target any) (api.Handler, bool) {
	if h, ok := r.handlers[key{t, target}]; ok {
		return h, true
	}
	if h, ok := r.handlers[key{api.Unknown, target}]; ok {
		return h, true
	}
	return nil, false
}

// Len returns the number of registered handler entries.
func (r *Registry) Len() int { return len(r.handlers) }
