// File: internal/platform/taskbar.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// TaskBarReceiver narrows original_source/cmd/synergys/CXWindowsServerTaskBarReceiver.h
// (a full task-bar icon and menu, out of scope per spec.md §1) down to
// the one fact worth preserving: from the core's point of view the
// task-bar icon is just another (type, target) handler registration,
// nothing more privileged than any other collaborator.

package platform

import "github.com/momentics/eventqueue/api"

// handlerInstaller is the narrow surface TaskBarReceiver needs from
// the Dispatcher to register itself.
type handlerInstaller interface {
	AdoptHandler(t api.EventType, target any, handler api.Handler)
}

// TaskBarReceiver models the task-bar icon's message pump as a plain
// handler target: Status reports the last-seen value posted to it.
type TaskBarReceiver struct {
	status string
}

// NewTaskBarReceiver registers itself as the handler for (evType, recv)
// on d and returns the receiver.
func NewTaskBarReceiver(d handlerInstaller, evType api.EventType) *TaskBarReceiver {
	recv := &TaskBarReceiver{}
	d.AdoptHandler(evType, recv, api.HandlerFunc(func(ev api.Event) {
		if ev.Data == nil {
			return
		}
		if s, ok := ev.Data.Value().(string); ok {
			recv.status = s
		}
	}))
	return recv
}

// Status returns the last status string delivered to this receiver.
func (r *TaskBarReceiver) Status() string { return r.status }
