// File: internal/timer/timer.go
// Package timer implements the priority queue of periodic and one-shot
// timers backing dispatcher.Dispatcher.NewTimer/DeleteTimer.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Grounded on CEventQueue::CTimer and CEventQueue::hasTimerExpired /
// getNextTimerTimeout / newTimer / deleteTimer. The original counts
// down a per-timer remaining-time field each poll; this version keeps
// an absolute next-deadline instead, which composes more naturally
// with container/heap and Go's monotonic clock.Clock, but preserves
// the same missed-tick accounting (CTimer::fillEvent's m_count
// formula).

package timer

import (
	"container/heap"

	"github.com/momentics/eventqueue/api"
)

// entry is one scheduled timer.
type entry struct {
	handle   api.TimerHandle
	target   any
	period   float64
	oneShot  bool
	deadline float64
	index    int // heap.Interface bookkeeping
}

type entryHeap []*entry

func (h entryHeap) Len() int            { return len(h) }
func (h entryHeap) Less(i, j int) bool  { return h[i].deadline < h[j].deadline }
func (h entryHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i]; h[i].index = i; h[j].index = j }
func (h *entryHeap) Push(x any)         { e := x.(*entry); e.index = len(*h); *h = append(*h, e) }
func (h *entryHeap) Pop() any {
	old := *h
	n := len(old)
	e := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]
	return e
}

// Scheduler is a priority queue of timers ordered by next firing time.
// It does not mint timer handles itself: per spec, the handle is
// obtained from the api.EventBuffer (CEventQueue::newTimer calls
// m_buffer->newTimer before constructing its CTimer), and the caller
// (dispatcher.Dispatcher) passes that handle into Add so the platform
// buffer's identity is what travels in TimerPayload and what Delete
// hands back for release. Not safe for concurrent use; callers
// serialize access (the dispatcher's single mutex), matching the
// original's CArchMutexLock.
type Scheduler struct {
	h        entryHeap
	byHandle map[api.TimerHandle]*entry
}

// New creates an empty Scheduler.
func New() *Scheduler {
	return &Scheduler{byHandle: make(map[api.TimerHandle]*entry)}
}

// Add schedules a new timer of the given period (seconds) under the
// already-minted handle, due to first fire period seconds after now.
// target is the event's Target field when the timer fires; if nil,
// handle itself is used as the target, mirroring CEventQueue::newTimer's
// fallback ("if (target == NULL) target = timer;").
func (s *Scheduler) Add(now, period float64, oneShot bool, handle api.TimerHandle, target any) {
	e := &entry{
		handle:   handle,
		period:   period,
		oneShot:  oneShot,
		deadline: now + period,
	}
	if target == nil {
		e.target = handle
	} else {
		e.target = target
	}
	heap.Push(&s.h, e)
	s.byHandle[handle] = e
}

// Delete removes the timer identified by handle, if present.
func (s *Scheduler) Delete(handle api.TimerHandle) {
	e, ok := s.byHandle[handle]
	if !ok {
		return
	}
	heap.Remove(&s.h, e.index)
	delete(s.byHandle, handle)
}

// Len returns the number of live timers.
func (s *Scheduler) Len() int { return len(s.h) }

// NextTimeout returns -1 if no timers are scheduled, 0 if the nearest
// timer has already reached its deadline, or the seconds remaining
// until it does.
func (s *Scheduler) NextTimeout(now float64) float64 {
	if len(s.h) == 0 {
		return -1
	}
	remaining := s.h[0].deadline - now
	if remaining <= 0 {
		return 0
	}
	return remaining
}

// Expired pops and reschedules the nearest timer if its deadline has
// passed, returning the fired event and true. A repeating timer that
// missed one or more full periods (because the caller was slow to
// poll) is reported with MissedCount set to the number of whole
// periods skipped, floor(overshoot/period), which is 0 for a firing
// swept less than one period after its deadline, but its
// remaining time is then reset to a single period, per
// CTimer::reset()'s unconditional `m_time = m_timeout` — the missed
// count is reporting-only and must not stretch future cadence.
func (s *Scheduler) Expired(now float64) (api.Event, bool) {
	if len(s.h) == 0 || s.h[0].deadline > now {
		return api.Event{}, false
	}
	e := heap.Pop(&s.h).(*entry)

	overshoot := now - e.deadline
	missed := uint32(0)
	if e.period > 0 {
		missed = uint32(overshoot / e.period)
	}

	ev := api.Event{
		Type:   api.Timer,
		Target: e.target,
		Data: api.NewValuePayload(api.TimerPayload{
			Handle:      e.handle,
			MissedCount: missed,
		}),
	}

	if e.oneShot {
		delete(s.byHandle, e.handle)
		return ev, true
	}

	e.deadline = now + e.period
	heap.Push(&s.h, e)
	return ev, true
}
