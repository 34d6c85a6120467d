// File: internal/store/store.go
// Package store holds events that have been posted but not yet
// delivered, indexed by a recyclable uint32 id.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Grounded on CEventQueue::saveEvent/removeEvent: an event is saved
// under a freshly allocated or recycled id, the id travels through the
// EventBuffer alone, and removeEvent both returns and frees the slot.
// Like the original, Store assumes the caller serializes access (the
// dispatcher's single mutex).

package store

import "github.com/momentics/eventqueue/api"

// Store maps ids to pending events.
type Store struct {
	events  map[uint32]api.Event
	freeIDs []uint32
	nextID  uint32
}

// New creates an empty Store.
func New() *Store {
	return &Store{events: make(map[uint32]api.Event)}
}

// Save assigns ev an id, preferring a recycled id over growing the
// table, and returns that id.
func (s *Store) Save(ev api.Event) uint32 {
	var id uint32
	if n := len(s.freeIDs); n > 0 {
		id = s.freeIDs[n-1]
		s.freeIDs = s.freeIDs[:n-1]
	} else {
		id = s.nextID
		s.nextID++
	}
	s.events[id] = ev
	return id
}

// Remove looks up and deletes the event at id, releasing the id for
// reuse, and reports whether the id was present.
func (s *Store) Remove(id uint32) (api.Event, bool) {
	ev, ok := s.events[id]
	if !ok {
		return api.Event{}, false
	}
	delete(s.events, id)
	s.freeIDs = append(s.freeIDs, id)
	return ev, true
}

// Len returns the number of currently held events.
func (s *Store) Len() int {
	return len(s.events)
}

// DrainAndRelease removes every currently held event and releases its
// payload, returning how many were dropped. Grounded on
// CEventQueue::adoptBuffer, which destroys every event still held by
// the store being replaced before swapping in the new buffer, so a
// pluggable buffer swap never leaks a posted-but-undelivered payload.
func (s *Store) DrainAndRelease() int {
	n := len(s.events)
	for id, ev := range s.events {
		if ev.Data != nil {
			ev.Data.Release()
		}
		delete(s.events, id)
	}
	s.freeIDs = s.freeIDs[:0]
	return n
}
