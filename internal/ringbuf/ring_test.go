package ringbuf

import (
	"runtime"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestRing_MPMC(t *testing.T) {
	r := New[int](1024)
	producers := 8
	consumers := 8
	itemsPerProducer := 5000

	var wg sync.WaitGroup
	var sentSum, receivedSum, receivedCount int64
	total := int64(producers * itemsPerProducer)

	for p := 0; p < producers; p++ {
		wg.Add(1)
		go func(pid int) {
			defer wg.Done()
			for i := 0; i < itemsPerProducer; i++ {
				val := pid*itemsPerProducer + i + 1
				for !r.Enqueue(val) {
					runtime.Gosched()
				}
				atomic.AddInt64(&sentSum, int64(val))
			}
		}(p)
	}

	var consumerWg sync.WaitGroup
	for c := 0; c < consumers; c++ {
		consumerWg.Add(1)
		go func() {
			defer consumerWg.Done()
			for {
				if val, ok := r.Dequeue(); ok {
					atomic.AddInt64(&receivedSum, int64(val))
					if atomic.AddInt64(&receivedCount, 1) == total {
						return
					}
				} else if atomic.LoadInt64(&receivedCount) >= total {
					return
				} else {
					runtime.Gosched()
				}
			}
		}()
	}

	wg.Wait()

	done := make(chan struct{})
	go func() {
		consumerWg.Wait()
		close(done)
	}()

	select {
	case <-done:
		if sentSum != receivedSum {
			t.Errorf("checksum mismatch: sent %d, received %d", sentSum, receivedSum)
		}
	case <-time.After(5 * time.Second):
		t.Errorf("timeout waiting for consumers: %d/%d", atomic.LoadInt64(&receivedCount), total)
	}
}

func TestRing_EmptyAndFull(t *testing.T) {
	r := New[int](2)
	if _, ok := r.Dequeue(); ok {
		t.Fatal("expected empty dequeue to fail")
	}
	if !r.Enqueue(1) || !r.Enqueue(2) {
		t.Fatal("expected two enqueues to succeed on capacity-2 ring")
	}
	if r.Enqueue(3) {
		t.Fatal("expected enqueue to fail once full")
	}
	if v, ok := r.Dequeue(); !ok || v != 1 {
		t.Fatalf("expected FIFO order, got %d, %v", v, ok)
	}
}

func TestRing_RoundsUpCapacity(t *testing.T) {
	r := New[int](3)
	if r.Cap() != 4 {
		t.Fatalf("expected capacity rounded to 4, got %d", r.Cap())
	}
}
