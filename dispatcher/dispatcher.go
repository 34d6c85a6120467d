// File: dispatcher/dispatcher.go
// Package dispatcher implements the top-level Event Queue object: type
// registration, handler registration, the next-event/dispatch loop,
// and the merge of timer expiry with buffer output.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Grounded on original_source/lib/base/CEventQueue.cpp in its entirety:
// getEvent/addEvent/dispatchEvent/registerType/registerTypeOnce/
// getTypeName/adoptHandler/orphanHandler/removeHandler/isEmpty/
// adoptBuffer. A single mutex guards every field below; Dispatch reads
// the handler pointer under the lock and invokes it after releasing,
// per CEventQueue::dispatchEvent's own comment to that effect.

package dispatcher

import (
	"log"
	"sync"

	"github.com/momentics/eventqueue/api"
	"github.com/momentics/eventqueue/internal/clock"
	"github.com/momentics/eventqueue/internal/handlerreg"
	"github.com/momentics/eventqueue/internal/store"
	"github.com/momentics/eventqueue/internal/timer"
	"github.com/momentics/eventqueue/internal/typeregistry"
)

// Dispatcher is the process's single Event Queue instance. Exactly one
// should exist at a time; facade.Service enforces that by construction
// (spec invariant: "exactly one Dispatcher exists process-wide").
type Dispatcher struct {
	mu sync.Mutex

	clock    *clock.Clock
	buffer   api.EventBuffer
	store    *store.Store
	timers   *timer.Scheduler
	handlers *handlerreg.Registry
	types    *typeregistry.Registry

	logger *log.Logger
	onDrop func()
}

// Option configures a Dispatcher at construction.
type Option func(*Dispatcher)

// WithLogger overrides the default stderr logger.
func WithLogger(l *log.Logger) Option {
	return func(d *Dispatcher) { d.logger = l }
}

// WithDropCallback registers a callback invoked once per posted-but-
// dropped event (buffer refusal, or a bogus-type post), so a caller
// can surface it as a metric without the Dispatcher depending on any
// particular metrics package.
func WithDropCallback(fn func()) Option {
	return func(d *Dispatcher) { d.onDrop = fn }
}

// New builds a Dispatcher over buf, which must not be nil.
func New(buf api.EventBuffer, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		clock:    clock.New(),
		buffer:   buf,
		store:    store.New(),
		timers:   timer.New(),
		handlers: handlerreg.New(),
		types:    typeregistry.New(),
		logger:   log.Default(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// RegisterType allocates a fresh event type id and records its name.
func (d *Dispatcher) RegisterType(name string) api.EventType {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.types.Register(name)
}

// RegisterTypeOnce writes *slot only if it is still api.Unknown and
// returns the stable id either way. Safe to call concurrently with
// the same slot from multiple goroutines.
func (d *Dispatcher) RegisterTypeOnce(slot *api.EventType, name string) api.EventType {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.types.RegisterOnce(slot, name)
}

// TypeName returns the reserved name for reserved ids, else the
// registered name, else "<unknown>".
func (d *Dispatcher) TypeName(t api.EventType) string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.types.Name(t)
}

// PostEvent stores ev and hands its id to the buffer. Events of type
// Unknown, System, or Timer are silently dropped: clients must not
// produce those directly (System and Timer are buffer/scheduler
// synthesized; Quit is reserved for the interrupt path but is not
// blocked here since InterruptSource posts it through this same call).
func (d *Dispatcher) PostEvent(ev api.Event) {
	if ev.Type == api.Unknown || ev.Type == api.System || ev.Type == api.Timer {
		if ev.Data != nil {
			ev.Data.Release()
		}
		d.dropped()
		return
	}

	d.mu.Lock()
	id := d.store.Save(ev)
	ok := d.buffer.AddEvent(id)
	if !ok {
		d.store.Remove(id)
	}
	d.mu.Unlock()

	if !ok {
		if ev.Data != nil {
			ev.Data.Release()
		}
		d.dropped()
	}
}

func (d *Dispatcher) dropped() {
	if d.onDrop != nil {
		d.onDrop()
	}
}

// IsEmpty reports true iff the buffer is empty AND no timer is
// currently due. An imminent (already-due) timer therefore makes the
// queue report non-empty, matching the original's isEmpty precisely
// even though that reads as counter-intuitive at first glance.
func (d *Dispatcher) IsEmpty() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.buffer.IsEmpty() && d.timers.NextTimeout(d.clock.Now()) != 0
}

// NextEvent blocks up to timeout seconds (negative means forever,
// zero means poll) for the next event, interleaving timer expiry with
// buffer output, and reports whether one was produced.
func (d *Dispatcher) NextEvent(timeout float64) (api.Event, bool) {
	started := clock.New()

	for {
		d.mu.Lock()
		empty := d.buffer.IsEmpty()
		if empty {
			if ev, ok := d.sweepTimersLocked(); ok {
				d.mu.Unlock()
				return ev, true
			}

			elapsed := started.Now()
			timeLeft := timeout - elapsed
			if timeout >= 0 && timeLeft <= 0 {
				d.mu.Unlock()
				return api.Event{}, false
			}

			slice := timeLeft
			hint := d.timers.NextTimeout(d.clock.Now())
			if timeout < 0 || (hint >= 0 && hint < timeLeft) {
				slice = hint
			}
			buf := d.buffer
			d.mu.Unlock()

			buf.WaitForEvent(slice)
			continue
		}
		d.mu.Unlock()

		result, ev, id := d.buffer.GetEvent()
		switch result {
		case api.SystemResult:
			return ev, true
		case api.UserResult:
			d.mu.Lock()
			stored, ok := d.store.Remove(id)
			d.mu.Unlock()
			if ok {
				return stored, true
			}
			// id unknown: fall through and retry within the deadline
		}

		elapsed := started.Now()
		if timeout >= 0 && elapsed >= timeout {
			return api.Event{}, false
		}
	}
}

// sweepTimersLocked runs one expiration sweep and must be called with
// d.mu held. Unlike the original's countdown-per-timer design, timers
// here carry an absolute deadline against d.clock, which therefore
// must never be reset once timers exist: resetting it would
// invalidate every other scheduled deadline in the same sweep.
func (d *Dispatcher) sweepTimersLocked() (api.Event, bool) {
	return d.timers.Expired(d.clock.Now())
}

// Dispatch looks up the handler for (ev.Type, ev.Target), falling
// through to (Unknown, ev.Target), and invokes it with the lock
// released. Returns false if no handler was found.
func (d *Dispatcher) Dispatch(ev api.Event) bool {
	d.mu.Lock()
	h, ok := d.handlers.Lookup(ev.Type, ev.Target)
	d.mu.Unlock()
	if !ok {
		return false
	}
	h.Handle(ev)
	return true
}

// AdoptHandler installs handler for (t, target), destroying any prior
// handler at that exact key. Pass api.Unknown for t to register the
// catch-all handler for target.
func (d *Dispatcher) AdoptHandler(t api.EventType, target any, handler api.Handler) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.handlers.Adopt(t, target, handler)
}

// OrphanHandler detaches and returns the handler at (t, target)
// without invoking it, transferring ownership back to the caller.
func (d *Dispatcher) OrphanHandler(t api.EventType, target any) (api.Handler, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.handlers.Orphan(t, target)
}

// RemoveHandler orphans and discards the handler at (t, target).
func (d *Dispatcher) RemoveHandler(t api.EventType, target any) {
	d.mu.Lock()
	d.handlers.Orphan(t, target)
	d.mu.Unlock()
}

// NewTimer schedules a timer of the given period (seconds), due to
// first fire period seconds from now. The platform handle is obtained
// from the buffer first (per CEventQueue::newTimer, which calls
// m_buffer->newTimer before constructing its CTimer), so a pluggable
// buffer's own handle identity is what the timer scheduler and the
// fired event's TimerPayload carry. If target is nil, that handle
// itself becomes the target, letting the caller identify its own
// events without pre-allocating one.
func (d *Dispatcher) NewTimer(period float64, oneShot bool, target any) api.TimerHandle {
	if period <= 0 {
		panic("dispatcher: timer period must be positive")
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	handle := d.buffer.NewTimer(period, oneShot)
	d.timers.Add(d.clock.Now(), period, oneShot, handle, target)
	return handle
}

// DeleteTimer removes a scheduled timer and releases its platform
// handle back to the buffer (CEventQueue::deleteTimer calls
// m_buffer->deleteTimer after removing the CTimer). Deleting a timer
// whose event is already dequeued is permitted; that event's handle
// remains valid for inspection but must not be reused with buffer
// operations once released here.
func (d *Dispatcher) DeleteTimer(h api.TimerHandle) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.timers.Delete(h)
	d.buffer.DeleteTimer(h)
}

// AdoptBuffer swaps in newBuffer. Every event still held by the store
// (posted but not yet retrieved through the old buffer) has its
// payload released before the store itself is replaced: the old
// buffer's ids are meaningless once it is gone, so there is no other
// chance to free what they point to. Matches CEventQueue::adoptBuffer,
// which destroys the outgoing buffer's pending events before the swap.
func (d *Dispatcher) AdoptBuffer(newBuffer api.EventBuffer) {
	d.mu.Lock()
	defer d.mu.Unlock()
	n := d.store.DrainAndRelease()
	d.store = store.New()
	d.buffer = newBuffer
	if n > 0 {
		d.logger.Printf("dispatcher: adopt-buffer dropped %d pending event(s)", n)
	}
}
