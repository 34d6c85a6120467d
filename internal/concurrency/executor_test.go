package concurrency

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/momentics/eventqueue/api"
)

func TestExecutor_SubmitRunsTask(t *testing.T) {
	e := NewExecutor(2, -1)
	defer e.Close()

	var ran int32
	if err := e.Submit(func() { atomic.StoreInt32(&ran, 1) }); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	deadline := time.Now().Add(time.Second)
	for atomic.LoadInt32(&ran) == 0 && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	if atomic.LoadInt32(&ran) == 0 {
		t.Fatal("expected task to run")
	}
}

func TestExecutor_SubmitAfterCloseFails(t *testing.T) {
	e := NewExecutor(1, -1)
	e.Close()
	if err := e.Submit(func() {}); err != api.ErrExecutorClosed {
		t.Fatalf("expected ErrExecutorClosed, got %v", err)
	}
}

func TestExecutor_StatsTracksCompletion(t *testing.T) {
	e := NewExecutor(2, -1)
	defer e.Close()

	const n = 50
	for i := 0; i < n; i++ {
		e.Submit(func() {})
	}

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if e.Stats()["completed_tasks"] >= n {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("expected %d completed tasks, got %v", n, e.Stats())
}
