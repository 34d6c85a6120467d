//go:build !linux && !windows

// File: internal/concurrency/pin_stub.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// No-op affinity for platforms without a pinning syscall. Workers run
// unpinned; correctness is unaffected, only NUMA locality is lost.

package concurrency

import "runtime"

func PinCurrentThread(numaNode, cpuID int) error {
	runtime.LockOSThread()
	return nil
}

func UnpinCurrentThread() error {
	runtime.UnlockOSThread()
	return nil
}

func currentAffinity() (numaNode, cpuID int, err error) {
	return -1, -1, nil
}
