package inventory

import (
	"context"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
)

//go:generate mockgen -destination=mocks/mock_counters.go -package=mocks github.com/pranshuparmar/procmon/internal/inventory Counters

// CPULoadUnavailable is the sentinel load reported before the OS has a reading.
const CPULoadUnavailable = -1.0

// Counters reads OS-wide aggregate counters.
type Counters interface {
	// Memory returns total and free physical memory in bytes.
	Memory(ctx context.Context) (total, free uint64, err error)
	// CPULoad returns system CPU load in [0,1], or a negative value when
	// no reading is available yet.
	CPULoad(ctx context.Context) (float64, error)
}

// HostCounters reads counters through gopsutil.
type HostCounters struct{}

func (HostCounters) Memory(ctx context.Context) (uint64, uint64, error) {
	vm, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil {
		return 0, 0, err
	}
	return vm.Total, vm.Available, nil
}

// CPULoad compares against the previous call, so the first reading after
// startup may cover very little time.
func (HostCounters) CPULoad(ctx context.Context) (float64, error) {
	pct, err := cpu.PercentWithContext(ctx, 0, false)
	if err != nil {
		return CPULoadUnavailable, err
	}
	if len(pct) == 0 {
		return CPULoadUnavailable, nil
	}
	return pct[0] / 100, nil
}
