// Package api
// Author: momentics@gmail.com
//
// Lock-free ring buffer contract. internal/ringbuf.Ring implements it
// for internal/concurrency.Executor's per-worker task queues, the one
// place in this module where a fixed-capacity MPMC structure is
// actually load-bearing (the Event Store and default EventBuffer use
// other structures; see DESIGN.md).

package api

// Ring is a lock-free ring buffer contract.
type Ring[T any] interface {
    // Enqueue adds an item, returns false if full.
    Enqueue(item T) bool
    // Dequeue removes oldest item, returns false if empty.
    Dequeue() (T, bool)
    // Len returns current number of items.
    Len() int
    // Cap returns buffer capacity.
    Cap() int
}
