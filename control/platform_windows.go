//go:build windows
// +build windows

// control/platform_windows.go
// Author: momentics <momentics@gmail.com>
//
// Windows-specific debug probes, read straight from GetSystemInfo
// rather than runtime.NumCPU() alone, matching the processor count
// internal/concurrency's pin_windows.go derives its affinity masks
// from.

package control

import (
	"runtime"

	"golang.org/x/sys/windows"
)

// RegisterPlatformProbes sets Windows-specific debug probes.
func RegisterPlatformProbes(dp *DebugProbes) {
	dp.RegisterProbe("platform.cpus", func() any {
		return runtime.NumCPU()
	})
	dp.RegisterProbe("platform.system_processors", func() any {
		var info windows.SystemInfo
		windows.GetSystemInfo(&info)
		return int(info.NumberOfProcessors)
	})
}
