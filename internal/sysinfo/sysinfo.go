// Package sysinfo reports process and host memory for the run summary.
package sysinfo

import (
	"os"

	"github.com/shirou/gopsutil/v3/mem"
	"github.com/shirou/gopsutil/v3/process"

	"github.com/teranos/partgen/errors"
)

// Memory is a snapshot of memory usage in bytes
type Memory struct {
	ProcessRSS    uint64 `json:"process_rss" yaml:"process_rss"`
	HostTotal     uint64 `json:"host_total" yaml:"host_total"`
	HostAvailable uint64 `json:"host_available" yaml:"host_available"`
}

// ReadMemory returns the resident set size of the current process together
// with host memory totals.
func ReadMemory() (Memory, error) {
	proc, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		return Memory{}, errors.Wrap(err, "failed to inspect current process")
	}
	info, err := proc.MemoryInfo()
	if err != nil {
		return Memory{}, errors.Wrap(err, "failed to get process memory")
	}

	v, err := mem.VirtualMemory()
	if err != nil {
		return Memory{}, errors.Wrap(err, "failed to get memory stats")
	}

	return Memory{
		ProcessRSS:    info.RSS,
		HostTotal:     v.Total,
		HostAvailable: v.Available,
	}, nil
}
