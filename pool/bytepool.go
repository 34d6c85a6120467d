// File: pool/bytepool.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// BytePool hands out []byte buffers for event payloads (spec.md §6's
// payload contract) from a small set of size classes, each backed by
// its own sync.Pool, sharded per NUMA node to keep cross-node false
// sharing out of the hot dispatch path. Grounded on the teacher's
// pool/numapool.go and pool/bytepool.go; the NUMA allocator hook there
// is replaced by plain per-shard sync.Pool since this module has no
// cgo NUMA allocation dependency to call into.

package pool

import (
	"sync"

	"github.com/momentics/eventqueue/api"
)

// sizeClasses are the buffer sizes BytePool rounds requests up to.
// Anything larger than the last class is allocated directly and never
// pooled, matching the original's "fallback: make regular slice"
// behavior for oversized requests.
var sizeClasses = []int{64, 256, 1024, 4096, 16384, 65536}

const numSizeClasses = 6

type shard struct {
	pools [numSizeClasses]sync.Pool
}

// BytePool implements api.BytePool with nShards independent shards,
// typically one per NUMA node, selected round-robin by Acquire.
type BytePool struct {
	shards []*shard
	next   uint64
	mu     sync.Mutex
}

// New creates a BytePool with the given number of shards (minimum 1).
func New(nShards int) *BytePool {
	if nShards < 1 {
		nShards = 1
	}
	p := &BytePool{shards: make([]*shard, nShards)}
	for i := range p.shards {
		p.shards[i] = newShard()
	}
	return p
}

func newShard() *shard {
	s := &shard{}
	for i, size := range sizeClasses {
		sz := size
		s.pools[i].New = func() any { return make([]byte, sz) }
	}
	return s
}

func classFor(n int) int {
	for i, sz := range sizeClasses {
		if n <= sz {
			return i
		}
	}
	return -1
}

// Acquire returns a slice of length n, reusing a pooled buffer from
// the smallest size class that fits when one exists.
func (p *BytePool) Acquire(n int) []byte {
	class := classFor(n)
	if class < 0 {
		return make([]byte, n)
	}
	p.mu.Lock()
	idx := p.next % uint64(len(p.shards))
	p.next++
	p.mu.Unlock()

	buf := p.shards[idx].pools[class].Get().([]byte)
	return buf[:n]
}

// Release returns buf to the pool whose size class matches its
// capacity. Buffers whose capacity doesn't match any class (oversized
// acquires) are simply dropped for the GC to reclaim.
func (p *BytePool) Release(buf []byte) {
	class := classFor(cap(buf))
	if class < 0 || sizeClasses[class] != cap(buf) {
		return
	}
	p.mu.Lock()
	idx := p.next % uint64(len(p.shards))
	p.next++
	p.mu.Unlock()
	p.shards[idx].pools[class].Put(buf[:cap(buf)])
}

var _ api.BytePool = (*BytePool)(nil)
