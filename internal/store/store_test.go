package store

import (
	"testing"

	"github.com/momentics/eventqueue/api"
)

func TestStore_SaveRemoveRoundTrip(t *testing.T) {
	s := New()
	ev := api.Event{Type: api.System}
	id := s.Save(ev)
	got, ok := s.Remove(id)
	if !ok {
		t.Fatalf("expected event at id %d", id)
	}
	if got.Type != api.System {
		t.Fatalf("unexpected event returned: %+v", got)
	}
	if s.Len() != 0 {
		t.Fatalf("expected empty store after remove, got len %d", s.Len())
	}
}

func TestStore_RecyclesIDs(t *testing.T) {
	s := New()
	a := s.Save(api.Event{Type: api.Quit})
	s.Remove(a)
	b := s.Save(api.Event{Type: api.Timer})
	if b != a {
		t.Fatalf("expected id %d to be recycled, got %d", a, b)
	}
}

func TestStore_RemoveUnknownIDFails(t *testing.T) {
	s := New()
	if _, ok := s.Remove(42); ok {
		t.Fatal("expected removing an unknown id to fail")
	}
}

type countingPayload struct{ released *int }

func (p countingPayload) Value() any { return nil }
func (p countingPayload) Release()   { *p.released++ }

func TestStore_DrainAndReleaseFreesAllPayloads(t *testing.T) {
	s := New()
	var released int
	s.Save(api.Event{Type: api.System, Data: countingPayload{released: &released}})
	s.Save(api.Event{Type: api.Quit, Data: countingPayload{released: &released}})
	s.Save(api.Event{Type: api.Timer}) // nil payload must not panic

	n := s.DrainAndRelease()
	if n != 3 {
		t.Fatalf("expected 3 drained events, got %d", n)
	}
	if released != 2 {
		t.Fatalf("expected 2 payloads released, got %d", released)
	}
	if s.Len() != 0 {
		t.Fatalf("expected empty store after drain, got len %d", s.Len())
	}
}
