package concurrency

import (
	"testing"
	"time"
)

func TestScheduler_RunsAfterDelay(t *testing.T) {
	exec := NewExecutor(2, -1)
	defer exec.Close()
	s := NewScheduler(exec)

	done := make(chan struct{})
	_, err := s.Schedule(int64(10*time.Millisecond), func() { close(done) })
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("expected callback to run")
	}
}

func TestScheduler_CancelPreventsRun(t *testing.T) {
	exec := NewExecutor(2, -1)
	defer exec.Close()
	s := NewScheduler(exec)

	ran := make(chan struct{}, 1)
	c, _ := s.Schedule(int64(50*time.Millisecond), func() { ran <- struct{}{} })
	if err := s.Cancel(c); err != nil {
		t.Fatalf("unexpected cancel error: %v", err)
	}

	select {
	case <-ran:
		t.Fatal("expected callback not to run after cancel")
	case <-time.After(100 * time.Millisecond):
	}
}

func TestScheduler_NowIsMonotonic(t *testing.T) {
	s := NewScheduler(nil)
	a := s.Now()
	time.Sleep(time.Millisecond)
	b := s.Now()
	if b <= a {
		t.Fatalf("expected Now() to advance, got %d then %d", a, b)
	}
}
