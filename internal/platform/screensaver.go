// File: internal/platform/screensaver.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// ScreenSaverSource narrows original_source/lib/platform/CXWindowsScreenSaver.h
// (a full X11 screen-saver control surface, out of scope per spec.md §1)
// down to the one seam the core cares about: posting an event when the
// screen-saver's active/inactive state changes. ScreenSaverStatusFunc
// stands in for the X11 polling this module does not implement.

package platform

import (
	"sync"
	"time"

	"github.com/momentics/eventqueue/api"
)

// ScreenSaverStatusFunc reports whether the screen saver is currently
// active. A real implementation would query XScreenSaverQueryInfo or
// the platform equivalent; tests and this module supply a stub.
type ScreenSaverStatusFunc func() bool

// ScreenSaverSource polls a ScreenSaverStatusFunc on a ticker and
// posts evType whenever the reported state flips.
type ScreenSaverSource struct {
	poster eventPoster
	evType api.EventType
	stopCh chan struct{}
	wg     sync.WaitGroup
}

// StartScreenSaverSource begins polling status every interval,
// posting evType with Data carrying the new active/inactive bool on
// each transition.
func StartScreenSaverSource(poster eventPoster, evType api.EventType, interval time.Duration, status ScreenSaverStatusFunc) *ScreenSaverSource {
	s := &ScreenSaverSource{poster: poster, evType: evType, stopCh: make(chan struct{})}
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		last := status()
		for {
			select {
			case <-ticker.C:
				cur := status()
				if cur != last {
					last = cur
					s.poster.PostEvent(api.Event{
						Type: s.evType,
						Data: api.NewValuePayload(cur),
					})
				}
			case <-s.stopCh:
				return
			}
		}
	}()
	return s
}

// Close stops polling.
func (s *ScreenSaverSource) Close() {
	close(s.stopCh)
	s.wg.Wait()
}
