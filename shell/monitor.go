// Copyright 2026 The Burrow Authors
// SPDX-License-Identifier: Apache-2.0

package shell

import (
	"sort"
	"time"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/mem"
	"github.com/shirou/gopsutil/v4/process"
)

// processSample is one row of the monitor table.
type processSample struct {
	pid           int32
	name          string
	cpuPercent    float64
	memoryPercent float32
}

// commandMonitor reports aggregate CPU and memory utilization and the
// top processes by CPU share. When the runtime environment does not
// expose process information (no /proc, unsupported platform), it
// prints a single explanatory line and does no further work.
func (e *Engine) commandMonitor(args []string) error {
	cpuPercents, err := cpu.Percent(500*time.Millisecond, false)
	if err != nil || len(cpuPercents) == 0 {
		e.printf("monitor: process inspection unavailable on this system\n")
		return nil
	}
	memory, err := mem.VirtualMemory()
	if err != nil {
		e.printf("monitor: process inspection unavailable on this system\n")
		return nil
	}
	e.printf("CPU: %.1f%%  |  Memory: %.1f%% (%dMB / %dMB)\n",
		cpuPercents[0], memory.UsedPercent,
		memory.Used/(1024*1024), memory.Total/(1024*1024))

	processes, err := process.Processes()
	if err != nil {
		e.printf("monitor: process list unavailable: %v\n", err)
		return nil
	}
	samples := make([]processSample, 0, len(processes))
	for _, p := range processes {
		// Kernel threads and exited processes fail individual field
		// reads; skip them rather than aborting the table.
		name, err := p.Name()
		if err != nil {
			continue
		}
		cpuShare, err := p.CPUPercent()
		if err != nil {
			continue
		}
		memoryShare, err := p.MemoryPercent()
		if err != nil {
			continue
		}
		samples = append(samples, processSample{
			pid:           p.Pid,
			name:          name,
			cpuPercent:    cpuShare,
			memoryPercent: memoryShare,
		})
	}
	sort.Slice(samples, func(i, j int) bool {
		return samples[i].cpuPercent > samples[j].cpuPercent
	})
	if len(samples) > e.topProcesses {
		samples = samples[:e.topProcesses]
	}

	e.printf("\nTop processes (by CPU%%):\n")
	e.printf("%-6s %-25s %6s %7s\n", "PID", "NAME", "CPU%", "MEM%")
	for _, sample := range samples {
		name := sample.name
		if len(name) > 24 {
			name = name[:24]
		}
		e.printf("%-6d %-25s %6.1f %7.2f\n", sample.pid, name, sample.cpuPercent, sample.memoryPercent)
	}
	return nil
}
