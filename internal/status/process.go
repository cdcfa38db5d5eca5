package status

import (
	"fmt"
	"time"

	"github.com/shirou/gopsutil/v4/process"

	"github.com/conn-castle/lethe-installer/internal/messages"
)

// ProcessDetails describes a live process.
type ProcessDetails struct {
	PID        int
	Name       string
	RSSBytes   uint64
	CPUPercent float64
	StartedAt  time.Time
	Cmdline    string
}

// Uptime returns how long the process has run as of now.
func (d ProcessDetails) Uptime(now time.Time) time.Duration {
	if d.StartedAt.IsZero() {
		return 0
	}
	return now.Sub(d.StartedAt).Truncate(time.Second)
}

var newProcess = process.NewProcess

// LookupProcess samples pid. Fields the OS refuses to report stay zero.
func LookupProcess(pid int) (ProcessDetails, error) {
	proc, err := newProcess(int32(pid))
	if err != nil {
		return ProcessDetails{}, fmt.Errorf(messages.StatusProcessLookupFmt, pid, err)
	}

	details := ProcessDetails{PID: pid}
	if name, err := proc.Name(); err == nil {
		details.Name = name
	}
	if mem, err := proc.MemoryInfo(); err == nil && mem != nil {
		details.RSSBytes = mem.RSS
	}
	if cpu, err := proc.CPUPercent(); err == nil {
		details.CPUPercent = cpu
	}
	if created, err := proc.CreateTime(); err == nil && created > 0 {
		details.StartedAt = time.UnixMilli(created)
	}
	if cmdline, err := proc.Cmdline(); err == nil {
		details.Cmdline = cmdline
	}
	return details, nil
}
