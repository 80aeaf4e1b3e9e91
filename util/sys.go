// util/sys.go
// Copyright(c) 2022-2025 airrescue contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package util

import (
	"runtime"

	"github.com/shirou/gopsutil/cpu"
)

// DefaultWorkers returns the number of worker goroutines to use for
// CPU-bound work when the user hasn't specified one: the number of logical
// CPUs, as reported by the OS, falling back to GOMAXPROCS.
func DefaultWorkers() int {
	if n, err := cpu.Counts(true); err == nil && n > 0 {
		return Clamp(n, 1, runtime.GOMAXPROCS(0))
	}
	return max(1, runtime.GOMAXPROCS(0))
}
