//go:build linux
// +build linux

// control/platform_linux.go
// Author: momentics <momentics@gmail.com>
//
// Linux-specific debug probes: alongside the total logical CPU count,
// reports how many of them the process is actually allowed to run on
// (sched_getaffinity), which can differ from runtime.NumCPU() under a
// cgroup/taskset restriction and is the figure that actually bounds
// internal/concurrency's worker pool and pinning.

package control

import (
	"runtime"

	"golang.org/x/sys/unix"
)

// RegisterPlatformProbes sets Linux-specific debug metrics.
func RegisterPlatformProbes(dp *DebugProbes) {
	dp.RegisterProbe("platform.cpus", func() any {
		return runtime.NumCPU()
	})
	dp.RegisterProbe("platform.allowed_cpus", func() any {
		var set unix.CPUSet
		if err := unix.SchedGetaffinity(0, &set); err != nil {
			return -1
		}
		n := 0
		for i := 0; i < runtime.NumCPU()*4; i++ {
			if set.IsSet(i) {
				n++
			}
		}
		return n
	})
}
