// File: internal/concurrency/affinity.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Platform-neutral CPU affinity contract. Platform-specific pinning
// lives in pin_linux.go, pin_windows.go, and pin_stub.go, each guarded
// by build tags, consolidating what the teacher repo had spread across
// four duplicate, non-compiling variants into one implementation per
// platform.

package concurrency

import "github.com/momentics/eventqueue/api"

// affinity implements api.Affinity for worker-pool thread pinning.
type affinity struct{}

// NewAffinity returns the process-wide CPU affinity controller.
func NewAffinity() api.Affinity {
	return affinity{}
}

func (affinity) Pin(cpuID, numaID int) error {
	return PinCurrentThread(numaID, cpuID)
}

func (affinity) Unpin() error {
	return UnpinCurrentThread()
}

func (affinity) Get() (cpuID int, numaID int, err error) {
	numaID, cpuID, err = currentAffinity()
	return
}

var _ api.Affinity = affinity{}
