//go:build linux

// File: internal/concurrency/pin_linux.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Linux thread pinning via golang.org/x/sys/unix, no cgo required.

package concurrency

import (
	"runtime"

	"golang.org/x/sys/unix"
)

// PinCurrentThread locks the calling goroutine to its OS thread and
// restricts that thread to cpuID. numaNode is currently advisory on
// Linux: cpuID alone determines placement, since sched_setaffinity
// operates on logical CPUs, not nodes.
func PinCurrentThread(numaNode, cpuID int) error {
	runtime.LockOSThread()
	var set unix.CPUSet
	set.Zero()
	set.Set(cpuID)
	return unix.SchedSetaffinity(0, &set)
}

// UnpinCurrentThread restores affinity to all online CPUs and releases
// the OS thread lock.
func UnpinCurrentThread() error {
	defer runtime.UnlockOSThread()
	var set unix.CPUSet
	set.Zero()
	n := runtime.NumCPU()
	for i := 0; i < n; i++ {
		set.Set(i)
	}
	return unix.SchedSetaffinity(0, &set)
}

// currentAffinity reports the lowest CPU id in the thread's current
// affinity mask; NUMA node is reported as unknown (-1) since the
// generic event-queue domain has no topology requirement beyond the
// CPU the caller pinned to.
func currentAffinity() (numaNode, cpuID int, err error) {
	var set unix.CPUSet
	if err = unix.SchedGetaffinity(0, &set); err != nil {
		return -1, -1, err
	}
	for i := 0; i < runtime.NumCPU()*4; i++ {
		if set.IsSet(i) {
			return -1, i, nil
		}
	}
	return -1, -1, nil
}
