// File: facade/service.go
// Package facade wires the core Event Queue components plus the
// ambient/domain supporting stack behind a single Service type.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Grounded on the teacher's facade/hioload.go: same Config/DefaultConfig/
// New/Start/Stop/Shutdown shape, same "initialize everything in New,
// pin threads and flip the started flag in Start" flow, generalized
// from a WebSocket server facade to the single process-wide Dispatcher
// instance spec.md §3/§9 calls for ("exactly one Dispatcher exists
// process-wide... a single getter").

package facade

import (
	"log"
	"sync"

	"github.com/momentics/eventqueue/api"
	"github.com/momentics/eventqueue/control"
	"github.com/momentics/eventqueue/dispatcher"
	"github.com/momentics/eventqueue/internal/concurrency"
	"github.com/momentics/eventqueue/internal/eventbuffer"
	"github.com/momentics/eventqueue/internal/platform"
	"github.com/momentics/eventqueue/pool"
)

// Config holds parameters immutable per run.
type Config struct {
	NumWorkers        int  // Executor worker goroutine count
	NUMANode          int  // Preferred NUMA node for the executor and the consumer thread; -1 disables pinning
	PinConsumerThread bool // Whether to run the next-event/dispatch loop on a pinned OS thread
	InstallInterrupt  bool // Whether to install the process-wide SIGINT/SIGTERM -> Quit source
	EnableMetrics     bool // Whether to enable runtime metrics collection
	EnableDebug       bool // Whether to register debug probes
	ByteShards        int  // Number of shards in the event-payload byte pool
}

// DefaultConfig returns sane defaults for typical use.
func DefaultConfig() *Config {
	return &Config{
		NumWorkers:        4,
		NUMANode:          -1,
		PinConsumerThread: false,
		InstallInterrupt:  true,
		EnableMetrics:     true,
		EnableDebug:       true,
		ByteShards:        4,
	}
}

var (
	globalMu  sync.Mutex
	globalSvc *Service
)

// Service is the process's single Event Queue instance, composing the
// core Dispatcher with its executor, byte pool, control plane, and
// platform collaborators. Spec invariant: exactly one Dispatcher
// exists process-wide; New installs it as the process-wide singleton
// and panics if one is already installed, matching the original's
// assert-single-instance posture.
type Service struct {
	config     *Config
	dispatcher *dispatcher.Dispatcher
	executor   *concurrency.Executor
	scheduler  *concurrency.Scheduler
	affinity   api.Affinity
	control    *control.Runtime
	bytePool   *pool.BytePool
	interrupt  *platform.InterruptSource

	mu      sync.RWMutex
	started bool
}

var _ api.GracefulShutdown = (*Service)(nil)

// New constructs and installs the process-wide Service. It panics if
// called twice without an intervening Shutdown, since exactly one
// Dispatcher may exist process-wide.
func New(cfg *Config) *Service {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	globalMu.Lock()
	defer globalMu.Unlock()
	if globalSvc != nil {
		panic("facade: a Service is already installed process-wide")
	}

	s := &Service{config: cfg}
	s.control = control.NewRuntime(nil)
	s.affinity = concurrency.NewAffinity()
	s.bytePool = pool.New(cfg.ByteShards)
	s.executor = concurrency.NewExecutor(cfg.NumWorkers, cfg.NUMANode)
	s.scheduler = concurrency.NewScheduler(s.executor)

	s.dispatcher = dispatcher.New(
		eventbuffer.New(),
		dispatcher.WithDropCallback(func() {
			s.control.IncMetric("events.posted_but_dropped", 1)
		}),
	)

	if cfg.EnableDebug {
		s.control.RegisterDebugProbe("dispatcher.empty", func() any {
			return s.dispatcher.IsEmpty()
		})
	}

	globalSvc = s
	return s
}

// Current returns the process-wide Service installed by New, or nil
// if none is installed. InterruptSource and other process-wide
// collaborators use this to reach the Dispatcher without a parameter.
func Current() *Service {
	globalMu.Lock()
	defer globalMu.Unlock()
	return globalSvc
}

// Dispatcher returns the underlying Event Queue core.
func (s *Service) Dispatcher() *dispatcher.Dispatcher { return s.dispatcher }

// Control returns the runtime config/metrics/debug surface.
func (s *Service) Control() api.Control { return s.control }

// BytePool returns the shared event-payload byte pool.
func (s *Service) BytePool() api.BytePool { return s.bytePool }

// Scheduler returns the general-purpose callback scheduler, distinct
// from the Dispatcher's own event-producing timer scheduler.
func (s *Service) Scheduler() api.Scheduler { return s.scheduler }

// Start pins the consumer thread if configured and installs the
// process interrupt source. Subsequent calls are a no-op.
func (s *Service) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.started {
		return nil
	}

	if s.config.PinConsumerThread && s.config.NUMANode >= 0 {
		if err := s.affinity.Pin(0, s.config.NUMANode); err != nil {
			log.Printf("facade: affinity pin warning: %v", err)
		}
	}

	if s.config.InstallInterrupt {
		s.interrupt = platform.NewInterruptSource(s.dispatcher)
	}

	if s.config.EnableMetrics {
		if err := s.control.SetConfig(map[string]any{"metrics.enabled": true}); err != nil {
			log.Printf("facade: enable-metrics config warning: %v", err)
		}
	}

	s.started = true
	return nil
}

// Stop uninstalls the interrupt source, closes the executor, and
// unpins the consumer thread. A no-op if Start was never called.
func (s *Service) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.started {
		return nil
	}
	if s.interrupt != nil {
		s.interrupt.Close()
	}
	s.executor.Close()
	if s.config.PinConsumerThread && s.config.NUMANode >= 0 {
		s.affinity.Unpin()
	}
	s.started = false
	return nil
}

// Shutdown implements api.GracefulShutdown by delegating to Stop, then
// releasing the process-wide singleton slot.
func (s *Service) Shutdown() error {
	err := s.Stop()
	globalMu.Lock()
	if globalSvc == s {
		globalSvc = nil
	}
	globalMu.Unlock()
	return err
}

// RunConsumerLoop drains next-event/dispatch until stop is closed or
// NextEvent observes a Quit event, whichever happens first. When
// PinConsumerThread is set and NUMANode is not -1, the loop runs pinned
// on its own OS thread for the loop's lifetime; a pin failure is ignored
// and the loop runs unpinned.
func (s *Service) RunConsumerLoop(stop <-chan struct{}) {
	if s.config.PinConsumerThread && s.config.NUMANode >= 0 {
		if err := s.affinity.Pin(0, s.config.NUMANode); err == nil {
			defer s.affinity.Unpin()
		}
	}
	for {
		select {
		case <-stop:
			return
		default:
		}
		ev, ok := s.dispatcher.NextEvent(0.25)
		if !ok {
			continue
		}
		s.dispatcher.Dispatch(ev)
		if ev.Type == api.Quit {
			return
		}
	}
}
