// File: internal/platform/interrupt.go
// Package platform hosts the narrow collaborator seams spec.md §1/§6
// name as out-of-scope products whose interfaces the core consumes:
// the process interrupt, a screen-saver poll source, an X11-style raw
// input source, and a task-bar receiver.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// InterruptSource replaces the original's ARCH->setInterruptHandler
// (a platform SIGINT trap calling a C function pointer) with
// os/signal, the idiomatic Go equivalent the rest of this codebase's
// session-cancellation code already used.

package platform

import (
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/momentics/eventqueue/api"
)

// eventPoster is the narrow surface every collaborator in this
// package requires from the Dispatcher: enough to post an event, never
// anything that reaches into its internals.
type eventPoster interface {
	PostEvent(ev api.Event)
}

// InterruptSource installs a process-wide SIGINT/SIGTERM handler that
// posts a Quit event, mirroring spec.md §4.5's "installs the process-
// wide interrupt handler that posts a QUIT event" at construction and
// uninstalls it at teardown.
type InterruptSource struct {
	target eventPoster
	stopCh chan struct{}
	wg     sync.WaitGroup
}

// NewInterruptSource installs the handler immediately.
func NewInterruptSource(target eventPoster) *InterruptSource {
	s := &InterruptSource{target: target, stopCh: make(chan struct{})}
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		select {
		case <-sigCh:
			s.target.PostEvent(api.Event{Type: api.Quit})
		case <-s.stopCh:
		}
		signal.Stop(sigCh)
	}()
	return s
}

// Close uninstalls the interrupt handler.
func (s *InterruptSource) Close() {
	close(s.stopCh)
	s.wg.Wait()
}
