package facade

import (
	"testing"
	"time"

	"github.com/momentics/eventqueue/api"
)

func newTestConfig() *Config {
	cfg := DefaultConfig()
	cfg.InstallInterrupt = false // avoid stealing the test process's signal handling
	cfg.PinConsumerThread = false
	return cfg
}

func TestService_StartStopLifecycle(t *testing.T) {
	s := New(newTestConfig())
	defer s.Shutdown()

	if err := s.Start(); err != nil {
		t.Fatalf("unexpected Start error: %v", err)
	}
	if Current() != s {
		t.Fatal("expected Current() to return the installed Service")
	}
	if err := s.Stop(); err != nil {
		t.Fatalf("unexpected Stop error: %v", err)
	}
}

func TestService_NewPanicsOnDoubleInstall(t *testing.T) {
	s := New(newTestConfig())
	defer s.Shutdown()

	defer func() {
		if r := recover(); r == nil {
			t.Fatal("expected panic on double install")
		}
	}()
	New(newTestConfig())
}

func TestService_RunConsumerLoopStopsOnQuit(t *testing.T) {
	s := New(newTestConfig())
	defer s.Shutdown()
	s.Start()

	done := make(chan struct{})
	go func() {
		s.RunConsumerLoop(make(chan struct{}))
		close(done)
	}()

	s.Dispatcher().PostEvent(api.Event{Type: api.Quit})

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("expected consumer loop to stop on Quit")
	}
}

func TestService_DropCallbackIncrementsMetric(t *testing.T) {
	s := New(newTestConfig())
	defer s.Shutdown()

	s.Dispatcher().PostEvent(api.Event{Type: api.System})

	stats := s.Control().Stats()
	if stats["events.posted_but_dropped"] != int64(1) {
		t.Fatalf("expected drop counter at 1, got %v", stats["events.posted_but_dropped"])
	}
}
