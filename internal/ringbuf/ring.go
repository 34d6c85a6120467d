// File: internal/ringbuf/ring.go
// Package ringbuf implements a lock-free ring buffer.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Ring is a bounded circular buffer with atomic head/tail, padded to
// prevent false sharing. It backs internal/concurrency.Executor's
// per-worker local task queues, where a fixed capacity and lock-free
// MPMC access are load-bearing; the Event Store's id free-list and
// the default EventBuffer's FIFO have no fixed-capacity requirement
// and are built on a plain slice and github.com/eapache/queue
// respectively (see SPEC_FULL.md).

package ringbuf

import (
	"sync/atomic"

	"github.com/momentics/eventqueue/api"
)

// Ensure compile-time interface compliance.
var _ api.Ring[any] = (*Ring[any])(nil)

type cell[T any] struct {
	sequence atomic.Uint64
	data     T
}

// Ring is a lock-free MPMC ring buffer of fixed, power-of-two capacity.
type Ring[T any] struct {
	head uint64
	_    [56]byte // padding to separate hot head/tail cache lines
	tail uint64
	_    [56]byte
	mask  uint64
	cells []cell[T]
}

// New allocates a ring buffer of at least the requested size, rounded
// up to the next power of two.
func New[T any](size int) *Ring[T] {
	if size < 2 {
		size = 2
	}
	n := 1
	for n < size {
		n <<= 1
	}
	r := &Ring[T]{
		mask:  uint64(n - 1),
		cells: make([]cell[T], n),
	}
	for i := range r.cells {
		r.cells[i].sequence.Store(uint64(i))
	}
	return r
}

// Enqueue adds item; returns false if full.
func (r *Ring[T]) Enqueue(item T) bool {
	for {
		tail := atomic.LoadUint64(&r.tail)
		c := &r.cells[tail&r.mask]
		seq := c.sequence.Load()
		dif := int64(seq) - int64(tail)

		switch {
		case dif == 0:
			if atomic.CompareAndSwapUint64(&r.tail, tail, tail+1) {
				c.data = item
				c.sequence.Store(tail + 1)
				return true
			}
		case dif < 0:
			return false // full
		}
	}
}

// Dequeue removes and returns the oldest item; ok is false if empty.
func (r *Ring[T]) Dequeue() (item T, ok bool) {
	for {
		head := atomic.LoadUint64(&r.head)
		c := &r.cells[head&r.mask]
		seq := c.sequence.Load()
		dif := int64(seq) - int64(head+1)

		switch {
		case dif == 0:
			if atomic.CompareAndSwapUint64(&r.head, head, head+1) {
				item = c.data
				c.sequence.Store(head + r.mask + 1)
				return item, true
			}
		case dif < 0:
			var zero T
			return zero, false // empty
		}
	}
}

// Len returns an approximate number of items currently buffered.
func (r *Ring[T]) Len() int {
	head := atomic.LoadUint64(&r.head)
	tail := atomic.LoadUint64(&r.tail)
	return int(tail - head)
}

// Cap returns the fixed buffer capacity.
func (r *Ring[T]) Cap() int {
	return len(r.cells)
}
