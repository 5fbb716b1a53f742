// Package cpuacct turns cumulative per-process CPU time counters into
// instantaneous percentages by comparing successive samples.
package cpuacct

import (
	"sync"
	"time"
)

// MinWindow is the shortest wall-clock gap that produces a percentage.
// Shorter gaps report zero and keep the previous baseline.
const MinWindow = time.Second

type sample struct {
	cpuSeconds float64
	observedAt time.Time
}

// Cache holds the last CPU sample per pid. It is safe for concurrent use.
type Cache struct {
	mu      sync.Mutex
	samples map[int]sample
}

// New returns an empty cache.
func New() *Cache {
	return &Cache{samples: make(map[int]sample)}
}

// Observe records cumulative CPU seconds for pid at time at and returns the
// CPU percentage since the previous sample. ok is false on the first
// observation of a pid, when there is nothing to compare against.
//
// A gap under MinWindow or a counter that went backwards (pid reuse, counter
// reset) yields 0 and leaves the stored sample unchanged.
func (c *Cache) Observe(pid int, cpuSeconds float64, at time.Time) (percent float64, ok bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	prev, found := c.samples[pid]
	if !found {
		c.samples[pid] = sample{cpuSeconds: cpuSeconds, observedAt: at}
		return 0, false
	}

	deltaCPU := cpuSeconds - prev.cpuSeconds
	deltaWall := at.Sub(prev.observedAt).Seconds()
	if deltaWall < MinWindow.Seconds() || deltaCPU < 0 {
		return 0, true
	}

	c.samples[pid] = sample{cpuSeconds: cpuSeconds, observedAt: at}
	return clamp(deltaCPU/deltaWall*100, 0, 100), true
}

// Prune drops every pid that is not in live.
func (c *Cache) Prune(live map[int]struct{}) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for pid := range c.samples {
		if _, ok := live[pid]; !ok {
			delete(c.samples, pid)
		}
	}
}

// Len returns the number of tracked pids.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.samples)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
