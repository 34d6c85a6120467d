package handlerreg

import (
	"testing"

	"github.com/momentics/eventqueue/api"
)

type target struct{ name string }

func TestRegistry_ExactLookup(t *testing.T) {
	r := New()
	tgt := &target{"a"}
	called := false
	r.Adopt(api.System, tgt, api.HandlerFunc(func(ev api.Event) { called = true }))

	h, ok := r.Lookup(api.System, tgt)
	if !ok {
		t.Fatal("expected handler to be found")
	}
	h.Handle(api.Event{})
	if !called {
		t.Fatal("expected handler to be invoked")
	}
}

func TestRegistry_FallsThroughToUnknown(t *testing.T) {
	r := New()
	tgt := &target{"b"}
	r.Adopt(api.Unknown, tgt, api.HandlerFunc(func(ev api.Event) {}))

	if _, ok := r.Lookup(api.Timer, tgt); !ok {
		t.Fatal("expected fall-through to catch-all handler")
	}
}

func TestRegistry_OrphanRemoves(t *testing.T) {
	r := New()
	tgt := &target{"c"}
	r.Adopt(api.Quit, tgt, api.HandlerFunc(func(ev api.Event) {}))
	if _, ok := r.Orphan(api.Quit, tgt); !ok {
		t.Fatal("expected orphan to find handler")
	}
	if _, ok := r.Lookup(api.Quit, tgt); ok {
		t.Fatal("expected handler removed after orphan")
	}
}
