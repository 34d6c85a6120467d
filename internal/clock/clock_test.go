package clock

import (
	"testing"
	"time"
)

func TestClock_MonotonicAdvance(t *testing.T) {
	c := New()
	time.Sleep(5 * time.Millisecond)
	elapsed := c.Now()
	if elapsed <= 0 {
		t.Fatalf("expected positive elapsed time, got %v", elapsed)
	}
}

func TestClock_Reset(t *testing.T) {
	c := New()
	time.Sleep(5 * time.Millisecond)
	c.Reset()
	elapsed := c.Now()
	if elapsed < 0 || elapsed > 0.1 {
		t.Fatalf("expected near-zero elapsed time after reset, got %v", elapsed)
	}
}
