// File: api/payload.go
// Package api
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Payload is the opaque, type-tagged blob an Event carries. The core
// never inspects payload contents except for Timer events, whose layout
// is fixed (see TimerPayload).

package api

// Payload is an opaque event data blob with an owner-supplied release
// callback, the Go analogue of the "deleteData(event)" destructor the
// core invokes on any payload it cannot or will not deliver.
type Payload interface {
	// Value returns the underlying data, typically a []byte acquired
	// from a BytePool or an in-process struct such as *TimerPayload.
	Value() any

	// Release returns any pooled resources backing this payload and
	// marks it consumed. Safe to call more than once.
	Release()
}

// valuePayload is a Payload with no pooled resources to release, used
// for lightweight or synthetic payloads (timer deliveries, system
// events, values constructed purely in memory).
type valuePayload struct {
	v any
}

// NewValuePayload wraps any value as a Payload whose Release is a no-op.
func NewValuePayload(v any) Payload {
	return &valuePayload{v: v}
}

func (p *valuePayload) Value() any { return p.v }
func (p *valuePayload) Release()   {}

// bytePayload is a Payload backed by a pooled []byte.
type bytePayload struct {
	buf  []byte
	pool BytePool
}

// NewBytePayload wraps a buffer acquired from pool; Release returns it.
func NewBytePayload(buf []byte, pool BytePool) Payload {
	return &bytePayload{buf: buf, pool: pool}
}

func (p *bytePayload) Value() any { return p.buf }

func (p *bytePayload) Release() {
	if p.pool != nil && p.buf != nil {
		p.pool.Release(p.buf)
		p.buf = nil
	}
}
