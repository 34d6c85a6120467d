//go:build windows

// File: internal/concurrency/pin_windows.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Windows thread pinning via golang.org/x/sys/windows.

package concurrency

import (
	"runtime"

	"golang.org/x/sys/windows"
)

// PinCurrentThread locks the calling goroutine to its OS thread and
// restricts that thread to cpuID via SetThreadAffinityMask. numaNode
// is advisory; Windows affinity masks operate per logical processor.
func PinCurrentThread(numaNode, cpuID int) error {
	runtime.LockOSThread()
	mask := uintptr(1) << uint(cpuID)
	h := windows.CurrentThread()
	prev, err := windows.SetThreadAffinityMask(h, mask)
	if prev == 0 {
		return err
	}
	return nil
}

// UnpinCurrentThread restores affinity to all logical processors and
// releases the OS thread lock.
func UnpinCurrentThread() error {
	defer runtime.UnlockOSThread()
	var info windows.SystemInfo
	windows.GetSystemInfo(&info)
	full := uintptr(1)<<uint(info.NumberOfProcessors) - 1
	h := windows.CurrentThread()
	_, err := windows.SetThreadAffinityMask(h, full)
	return err
}

// currentAffinity reports the lowest CPU id set in the thread's
// current affinity mask by probing SetThreadAffinityMask with the
// full mask and reading back the previous value.
func currentAffinity() (numaNode, cpuID int, err error) {
	var info windows.SystemInfo
	windows.GetSystemInfo(&info)
	full := uintptr(1)<<uint(info.NumberOfProcessors) - 1
	h := windows.CurrentThread()
	prev, err := windows.SetThreadAffinityMask(h, full)
	if err != nil {
		return -1, -1, err
	}
	if _, err = windows.SetThreadAffinityMask(h, prev); err != nil {
		return -1, -1, err
	}
	for i := 0; i < 64; i++ {
		if prev&(uintptr(1)<<uint(i)) != 0 {
			return -1, i, nil
		}
	}
	return -1, -1, nil
}
