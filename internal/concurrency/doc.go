// File: internal/concurrency/doc.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// NUMA-aware, lock-free concurrency primitives backing the event
// queue's consumer loop: a work-stealing-style Executor, CPU/NUMA
// pinning, and a general-purpose callback Scheduler.
//
// All implementations are cross-platform compatible (Linux/Windows),
// falling back to unpinned execution elsewhere.
package concurrency
