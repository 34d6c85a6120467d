package dispatcher

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/momentics/eventqueue/api"
	"github.com/momentics/eventqueue/internal/eventbuffer"
)

func newTestDispatcher() *Dispatcher {
	return New(eventbuffer.New())
}

// S1: register a type, post to it, dispatch delivers exactly once.
func TestDispatcher_S1_RegisterPostDispatch(t *testing.T) {
	d := newTestDispatcher()
	foo := d.RegisterType("foo")
	if foo <= api.Last {
		t.Fatalf("expected allocated id beyond reserved range, got %d", foo)
	}

	target := &struct{ name string }{"T"}
	var deliveries int
	d.AdoptHandler(foo, target, api.HandlerFunc(func(ev api.Event) {
		deliveries++
	}))

	d.PostEvent(api.Event{Type: foo, Target: target, Data: api.NewValuePayload("x")})

	ev, ok := d.NextEvent(1.0)
	if !ok {
		t.Fatal("expected an event")
	}
	if !d.Dispatch(ev) {
		t.Fatal("expected dispatch to find a handler")
	}
	if deliveries != 1 {
		t.Fatalf("expected exactly one delivery, got %d", deliveries)
	}

	if _, ok := d.NextEvent(0.1); ok {
		t.Fatal("expected second next-event to time out")
	}
}

// S2: a repeating 0.05s timer polled for ~0.28s should deliver about
// floor(0.28/0.05) = 5 times, missed-count making up any shortfall.
func TestDispatcher_S2_RepeatingTimer(t *testing.T) {
	d := newTestDispatcher()
	target := &struct{ name string }{"T"}
	d.NewTimer(0.05, false, target)

	deadline := time.Now().Add(280 * time.Millisecond)
	deliveries := 0
	totalTicks := uint32(0)
	for time.Now().Before(deadline) {
		remaining := time.Until(deadline).Seconds()
		if remaining <= 0 {
			break
		}
		ev, ok := d.NextEvent(remaining)
		if !ok {
			break
		}
		if ev.Type != api.Timer {
			continue
		}
		deliveries++
		payload := ev.Data.Value().(api.TimerPayload)
		totalTicks += 1 + payload.MissedCount
	}

	if deliveries < 4 || deliveries > 7 {
		t.Fatalf("expected roughly 5 deliveries, got %d", deliveries)
	}
	if totalTicks < 4 || totalTicks > 7 {
		t.Fatalf("expected roughly 5 total ticks accounted for, got %d", totalTicks)
	}
}

// S3: a one-shot timer deleted before it fires yields no delivery.
func TestDispatcher_S3_DeletedOneShotTimer(t *testing.T) {
	d := newTestDispatcher()
	h := d.NewTimer(0.1, true, nil)

	time.Sleep(50 * time.Millisecond)
	d.DeleteTimer(h)

	if _, ok := d.NextEvent(0.3); ok {
		t.Fatal("expected no delivery for a deleted one-shot timer")
	}
}

// S4: exact-type handler takes precedence over the catch-all.
func TestDispatcher_S4_ExactBeatsFallthrough(t *testing.T) {
	d := newTestDispatcher()
	five := d.RegisterType("five")
	six := d.RegisterType("six")
	target := &struct{ name string }{"T"}

	var hA, hB int
	d.AdoptHandler(api.Unknown, target, api.HandlerFunc(func(ev api.Event) { hA++ }))
	d.AdoptHandler(five, target, api.HandlerFunc(func(ev api.Event) { hB++ }))

	d.PostEvent(api.Event{Type: five, Target: target})
	ev, _ := d.NextEvent(1.0)
	d.Dispatch(ev)
	if hB != 1 || hA != 0 {
		t.Fatalf("expected only exact handler to run, got hA=%d hB=%d", hA, hB)
	}

	d.PostEvent(api.Event{Type: six, Target: target})
	ev, _ = d.NextEvent(1.0)
	d.Dispatch(ev)
	if hA != 1 || hB != 1 {
		t.Fatalf("expected fall-through handler to run, got hA=%d hB=%d", hA, hB)
	}
}

// S5: concurrent producers, single consumer, all deliveries accounted for.
func TestDispatcher_S5_ConcurrentProducers(t *testing.T) {
	d := newTestDispatcher()
	evType := d.RegisterType("s5")
	target := &struct{ name string }{"T"}

	const perProducer = 1000
	const producers = 2
	var delivered int64
	d.AdoptHandler(evType, target, api.HandlerFunc(func(ev api.Event) {
		atomic.AddInt64(&delivered, 1)
	}))

	var wg sync.WaitGroup
	for p := 0; p < producers; p++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perProducer; i++ {
				d.PostEvent(api.Event{Type: evType, Target: target})
			}
		}()
	}

	done := make(chan struct{})
	go func() {
		for atomic.LoadInt64(&delivered) < producers*perProducer {
			ev, ok := d.NextEvent(1.0)
			if !ok {
				continue
			}
			d.Dispatch(ev)
		}
		close(done)
	}()

	wg.Wait()
	select {
	case <-done:
	case <-time.After(10 * time.Second):
		t.Fatalf("timed out waiting for deliveries: %d/%d", atomic.LoadInt64(&delivered), producers*perProducer)
	}
	if delivered != producers*perProducer {
		t.Fatalf("expected %d deliveries, got %d", producers*perProducer, delivered)
	}
}

// S6: the interrupt path posts Quit directly through PostEvent, the
// one case where a normally-client-forbidden reserved type is
// expected to flow (InterruptSource is the sole producer of it).
func TestDispatcher_S6_Interrupt(t *testing.T) {
	d := newTestDispatcher()
	d.PostEvent(api.Event{Type: api.Quit})

	ev, ok := d.NextEvent(1.0)
	if !ok {
		t.Fatal("expected an event after interrupt")
	}
	if ev.Type != api.Quit {
		t.Fatalf("expected Quit event, got %v", ev.Type)
	}
}

func TestDispatcher_DeliverToNobodyDiscardsSilently(t *testing.T) {
	d := newTestDispatcher()
	evType := d.RegisterType("orphan")
	d.PostEvent(api.Event{Type: evType, Target: "nobody-registered"})

	ev, ok := d.NextEvent(1.0)
	if !ok {
		t.Fatal("expected an event")
	}
	if d.Dispatch(ev) {
		t.Fatal("expected dispatch to find no handler")
	}
}

func TestDispatcher_BogusTypePostIsDropped(t *testing.T) {
	d := newTestDispatcher()
	var dropped int
	d2 := New(eventbuffer.New(), WithDropCallback(func() { dropped++ }))

	d.PostEvent(api.Event{Type: api.System})
	if !d.IsEmpty() {
		t.Fatal("expected bogus-type post to be a no-op")
	}

	d2.PostEvent(api.Event{Type: api.Timer})
	if dropped != 1 {
		t.Fatalf("expected drop callback invoked once, got %d", dropped)
	}
}

func TestDispatcher_RegisterTypeOnceIsIdempotent(t *testing.T) {
	d := newTestDispatcher()
	var slot api.EventType
	var wg sync.WaitGroup
	ids := make([]api.EventType, 8)
	for i := range ids {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			ids[i] = d.RegisterTypeOnce(&slot, "shared")
		}(i)
	}
	wg.Wait()
	for _, id := range ids {
		if id != ids[0] {
			t.Fatalf("expected all goroutines to observe the same id, got %v vs %v", id, ids[0])
		}
	}
}

// countingPayload tracks whether Release was called, so tests can tell
// a dropped event's payload was actually freed rather than merely
// forgotten.
type countingPayload struct {
	released *int32
}

func (p countingPayload) Value() any { return nil }
func (p countingPayload) Release()   { atomic.AddInt32(p.released, 1) }

func TestDispatcher_AdoptBufferDropsPending(t *testing.T) {
	d := newTestDispatcher()
	evType := d.RegisterType("pending")
	var released int32
	d.PostEvent(api.Event{Type: evType, Data: countingPayload{released: &released}})

	d.AdoptBuffer(eventbuffer.New())
	if !d.IsEmpty() {
		t.Fatal("expected adopt-buffer to leave the queue empty")
	}
	if atomic.LoadInt32(&released) != 1 {
		t.Fatalf("expected the pending event's payload to be released exactly once, got %d", released)
	}
}
