// File: internal/platform/rawinput.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// RawInputSource stands in for the original's X11 event translation
// layer (out of scope per spec.md §1): it wraps a reactor.EventReactor
// (epoll on Linux, IOCP on Windows, a stub elsewhere) and turns each
// reactor wake into a posted event carrying the (fd, userData) pair
// the reactor reports, without any X11-specific decoding.

package platform

import (
	"sync"

	"github.com/momentics/eventqueue/api"
	"github.com/momentics/eventqueue/reactor"
)

// RawInputPayload is the data carried by events RawInputSource posts.
type RawInputPayload struct {
	Fd       uintptr
	UserData uintptr
}

// RawInputSource drains a reactor.EventReactor on its own goroutine
// and posts one event per ready descriptor.
type RawInputSource struct {
	poster  eventPoster
	evType  api.EventType
	reactor reactor.EventReactor
	stopCh  chan struct{}
	wg      sync.WaitGroup
}

// StartRawInputSource begins draining r, posting evType for each
// ready descriptor until Close is called.
func StartRawInputSource(poster eventPoster, evType api.EventType, r reactor.EventReactor) *RawInputSource {
	s := &RawInputSource{poster: poster, evType: evType, reactor: r, stopCh: make(chan struct{})}
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		buf := make([]reactor.Event, 64)
		for {
			select {
			case <-s.stopCh:
				return
			default:
			}
			n, err := r.Wait(buf)
			if err != nil {
				return
			}
			for i := 0; i < n; i++ {
				s.poster.PostEvent(api.Event{
					Type: s.evType,
					Data: api.NewValuePayload(RawInputPayload{
						Fd:       buf[i].Fd,
						UserData: buf[i].UserData,
					}),
				})
			}
		}
	}()
	return s
}

// Close stops draining and closes the underlying reactor.
func (s *RawInputSource) Close() {
	close(s.stopCh)
	s.reactor.Close()
	s.wg.Wait()
}
