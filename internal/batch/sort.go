package batch

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/pranshuparmar/procmon/internal/control"
	"github.com/pranshuparmar/procmon/pkg/model"
)

// SortField names a snapshot ordering.
type SortField string

const (
	SortCPU  SortField = "cpu"
	SortMem  SortField = "mem"
	SortPID  SortField = "pid"
	SortName SortField = "name"
)

// SortFields lists the orderings in the order the TUI cycles through them.
var SortFields = []SortField{SortCPU, SortMem, SortPID, SortName}

// ParseSortField accepts a field name case-insensitively.
func ParseSortField(s string) (SortField, error) {
	f := SortField(strings.ToLower(strings.TrimSpace(s)))
	if slices.Contains(SortFields, f) {
		return f, nil
	}
	return "", fmt.Errorf("unknown sort field %q (want cpu, mem, pid or name)", s)
}

// Next returns the ordering after f, wrapping around.
func (f SortField) Next() SortField {
	i := slices.Index(SortFields, f)
	return SortFields[(i+1)%len(SortFields)]
}

// Sort orders procs in place. CPU and memory sort descending with absent
// values last; pid and name ascending. Ties fall back to pid.
func Sort(procs []model.Process, field SortField) {
	slices.SortStableFunc(procs, func(a, b model.Process) int {
		var c int
		switch field {
		case SortCPU:
			c = descOptional(a.CPUPercent, b.CPUPercent)
		case SortMem:
			c = descOptional(a.MemoryMB, b.MemoryMB)
		case SortName:
			c = cmp.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name))
		}
		if c != 0 {
			return c
		}
		return cmp.Compare(a.PID, b.PID)
	})
}

func descOptional(a, b *float64) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return 1
	case b == nil:
		return -1
	}
	return cmp.Compare(*b, *a)
}

func sortOutcomes(outcomes []control.Outcome) {
	slices.SortFunc(outcomes, func(a, b control.Outcome) int {
		return cmp.Compare(a.PID, b.PID)
	})
}
