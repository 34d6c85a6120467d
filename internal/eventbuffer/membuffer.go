// File: internal/eventbuffer/membuffer.go
// Package eventbuffer provides the default in-process api.EventBuffer:
// a condition-variable-guarded FIFO of event-store ids.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Grounded on CEventQueue's default buffer (CEventQueueBuffer in the
// original, a deque guarded by a platform condition variable) and on
// the teacher's sync.Cond usage pattern. github.com/eapache/queue
// backs the FIFO itself: a ring-buffer-based deque that grows by
// doubling, which is the same amortized-O(1) push/pop shape the
// original's std::deque provided.

package eventbuffer

import (
	"sync"
	"time"

	"github.com/eapache/queue"

	"github.com/momentics/eventqueue/api"
)

// timerToken is the opaque handle minted by NewTimer and handed back to
// DeleteTimer. It
// carries no scheduling state of its own: the buffer only needs to
// hand out and later recognize an identity, exactly as the original's
// m_buffer->newTimer returned an opaque CEventQueueTimer* used purely
// as a map key. Actual timer expiry is tracked by internal/timer,
// owned by the dispatcher.
type timerToken struct{ id uint64 }

// MemBuffer is a single-process EventBuffer: AddEvent enqueues a data
// id, GetEvent dequeues one, and WaitForEvent blocks on a condition
// variable until an id is available, the buffer is closed, or the
// deadline passes.
type MemBuffer struct {
	mu     sync.Mutex
	cond   *sync.Cond
	ids    *queue.Queue
	closed bool
	nextID uint64
}

// New creates an empty MemBuffer.
func New() *MemBuffer {
	b := &MemBuffer{ids: queue.New()}
	b.cond = sync.NewCond(&b.mu)
	return b
}

var _ api.EventBuffer = (*MemBuffer)(nil)

// IsEmpty reports whether the FIFO currently holds no ids.
func (b *MemBuffer) IsEmpty() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.ids.Length() == 0
}

// WaitForEvent blocks until an id is queued, the buffer is closed, or
// timeoutSeconds elapses (a negative timeout waits indefinitely, zero
// polls once without blocking).
func (b *MemBuffer) WaitForEvent(timeoutSeconds float64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.ids.Length() > 0 || b.closed {
		return
	}
	if timeoutSeconds == 0 {
		return
	}

	if timeoutSeconds < 0 {
		for b.ids.Length() == 0 && !b.closed {
			b.cond.Wait()
		}
		return
	}

	deadline := time.Now().Add(time.Duration(timeoutSeconds * float64(time.Second)))
	done := make(chan struct{})
	go func() {
		select {
		case <-time.After(time.Until(deadline)):
			b.mu.Lock()
			b.cond.Broadcast()
			b.mu.Unlock()
		case <-done:
		}
	}()
	defer close(done)

	for b.ids.Length() == 0 && !b.closed && time.Now().Before(deadline) {
		b.cond.Wait()
	}
}

// GetEvent dequeues the oldest id, reporting api.UserResult, or
// api.None if the FIFO is empty.
func (b *MemBuffer) GetEvent() (api.BufferResult, api.Event, uint32) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.ids.Length() == 0 {
		return api.None, api.Event{}, 0
	}
	id := b.ids.Remove().(uint32)
	return api.UserResult, api.Event{}, id
}

// AddEvent enqueues dataID and wakes one waiter. Succeeds unless the
// buffer has been closed: the in-process FIFO has no fixed capacity.
func (b *MemBuffer) AddEvent(dataID uint32) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return false
	}
	b.ids.Add(dataID)
	b.cond.Signal()
	return true
}

// NewTimer mints a fresh opaque handle.
func (b *MemBuffer) NewTimer(period float64, oneShot bool) api.TimerHandle {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.nextID++
	return timerToken{id: b.nextID}
}

// DeleteTimer is a no-op: MemBuffer's timer handles own no resources.
func (b *MemBuffer) DeleteTimer(h api.TimerHandle) {}

// Close marks the buffer closed and wakes all waiters; subsequent
// AddEvent calls fail.
func (b *MemBuffer) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.closed = true
	b.cond.Broadcast()
}
