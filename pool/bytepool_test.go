package pool

import "testing"

func TestBytePool_AcquireReleaseRoundTrip(t *testing.T) {
	p := New(4)
	buf := p.Acquire(100)
	if len(buf) != 100 {
		t.Fatalf("expected length 100, got %d", len(buf))
	}
	if cap(buf) != 256 {
		t.Fatalf("expected rounded-up capacity 256, got %d", cap(buf))
	}
	p.Release(buf)
}

func TestBytePool_OversizedBypassesPool(t *testing.T) {
	p := New(2)
	buf := p.Acquire(1 << 20)
	if len(buf) != 1<<20 {
		t.Fatalf("expected exact oversized length, got %d", len(buf))
	}
	p.Release(buf) // should be a no-op, not a panic
}

func TestSyncPool_GetPut(t *testing.T) {
	p := NewSyncPool(func() int { return 42 })
	v := p.Get()
	if v != 42 {
		t.Fatalf("expected 42 from fresh pool, got %d", v)
	}
	p.Put(7)
}
