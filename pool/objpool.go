// File: pool/objpool.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package pool

import (
	"sync"

	"github.com/momentics/eventqueue/api"
)

// SyncPool wraps sync.Pool for generic reuse of transient objects
// (e.g. *api.Event scratch values, TimerPayload wrappers).
type SyncPool[T any] struct {
	pool *sync.Pool
}

// NewSyncPool creates a SyncPool whose Get falls back to creator when
// empty.
func NewSyncPool[T any](creator func() T) *SyncPool[T] {
	return &SyncPool[T]{
		pool: &sync.Pool{New: func() any { return creator() }},
	}
}

func (sp *SyncPool[T]) Get() T    { return sp.pool.Get().(T) }
func (sp *SyncPool[T]) Put(obj T) { sp.pool.Put(obj) }

var _ api.ObjectPool[int] = (*SyncPool[int])(nil)
