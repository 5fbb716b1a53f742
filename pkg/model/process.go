package model

import "strings"

// Status is the normalized run state of a process.
type Status string

const (
	StatusRunning       Status = "Running"
	StatusSleeping      Status = "Sleeping"
	StatusDiskSleep     Status = "Disk Sleep"
	StatusZombie        Status = "Zombie"
	StatusStopped       Status = "Stopped"
	StatusIdle          Status = "Idle"
	StatusNotResponding Status = "Not Responding"
	StatusUnknown       Status = "Unknown"
)

// Statuses lists every status in display order.
var Statuses = []Status{
	StatusRunning,
	StatusSleeping,
	StatusDiskSleep,
	StatusZombie,
	StatusStopped,
	StatusIdle,
	StatusNotResponding,
	StatusUnknown,
}

// ParseStatus matches s case-insensitively against the known statuses.
func ParseStatus(s string) (Status, bool) {
	s = strings.TrimSpace(s)
	for _, st := range Statuses {
		if strings.EqualFold(string(st), s) {
			return st, true
		}
	}
	return StatusUnknown, false
}

// Process is one row of a process listing snapshot.
// Optional fields are nil when the listing tool did not provide them.
type Process struct {
	PID        int      `json:"pid" yaml:"pid"`
	Name       string   `json:"name" yaml:"name"`
	User       string   `json:"user,omitempty" yaml:"user,omitempty"`
	CPUPercent *float64 `json:"cpuPercent,omitempty" yaml:"cpuPercent,omitempty"`
	MemoryMB   *float64 `json:"memoryMB,omitempty" yaml:"memoryMB,omitempty"`
	Status     Status   `json:"status" yaml:"status"`
	Command    string   `json:"command" yaml:"command"`
}

// CPU returns the CPU percentage and whether one was computed.
func (p Process) CPU() (float64, bool) {
	if p.CPUPercent == nil {
		return 0, false
	}
	return *p.CPUPercent, true
}

// Memory returns resident memory in MB and whether it is known.
func (p Process) Memory() (float64, bool) {
	if p.MemoryMB == nil {
		return 0, false
	}
	return *p.MemoryMB, true
}

// Float returns a pointer to v, for populating optional fields.
func Float(v float64) *float64 {
	return &v
}
