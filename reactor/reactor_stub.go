//go:build !linux && !windows
// +build !linux,!windows

// File: reactor/reactor_stub.go
// Author: momentics <momentics@gmail.com>
//
// Fallback for platforms with no epoll/IOCP binding. Raw input is an
// optional collaborator (spec.md §1): a caller that never requests
// internal/platform.StartRawInputSource on such a platform is
// unaffected by this error.

package reactor

import "errors"

// NewReactor returns an error for unsupported platforms.
func NewReactor() (EventReactor, error) {
	return nil, errors.New("reactor: this platform is not supported")
}
