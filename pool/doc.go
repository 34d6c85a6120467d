// Package pool
// Author: momentics <momentics@gmail.com>
//
// Size-classed, NUMA-sharded byte and object pools used for event
// payload buffers. Adapted from the original NUMA-aware buffer pool:
// concrete NUMA allocation hardware is not assumed, but the same
// per-node sharding and size-class rounding is retained so the pool
// degrades to plain sync.Pool behavior on platforms without NUMA.
package pool
