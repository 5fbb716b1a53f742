// Package inventory lists processes through the platform listing tool and
// reports system-wide CPU and memory usage.
//
// Every method blocks on an external command or OS counter; interactive
// callers run them off their UI loop.
package inventory

import (
	"context"
	"fmt"
	"math"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/pranshuparmar/procmon/internal/cpuacct"
	"github.com/pranshuparmar/procmon/internal/logging"
	"github.com/pranshuparmar/procmon/internal/platform"
	"github.com/pranshuparmar/procmon/internal/proc"
	"github.com/pranshuparmar/procmon/pkg/model"
)

// DefaultCPURetryDelay is the pause before re-reading an unavailable CPU load.
const DefaultCPURetryDelay = 500 * time.Millisecond

// Service owns the CPU accounting cache for one monitor instance.
type Service struct {
	platform      platform.Platform
	exec          proc.Executor
	counters      Counters
	cache         *cpuacct.Cache
	cpuRetryDelay time.Duration
	now           func() time.Time
	log           *zap.Logger

	// listMu serializes the annotate-and-prune pass of overlapping refreshes.
	listMu sync.Mutex
}

// Option customizes a Service.
type Option func(*Service)

func WithPlatform(p platform.Platform) Option {
	return func(s *Service) { s.platform = p }
}

func WithExecutor(e proc.Executor) Option {
	return func(s *Service) { s.exec = e }
}

func WithCounters(c Counters) Option {
	return func(s *Service) { s.counters = c }
}

func WithCPURetryDelay(d time.Duration) Option {
	return func(s *Service) { s.cpuRetryDelay = d }
}

// WithClock replaces the wall clock used to timestamp CPU samples.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// New returns a Service for the host platform unless overridden.
func New(opts ...Option) *Service {
	s := &Service{
		platform:      platform.Current(),
		exec:          &proc.RealExecutor{},
		counters:      HostCounters{},
		cache:         cpuacct.New(),
		cpuRetryDelay: DefaultCPURetryDelay,
		now:           time.Now,
		log:           logging.L("inventory"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Platform returns the platform the service drives.
func (s *Service) Platform() platform.Platform {
	return s.platform
}

// Tracked returns how many pids have a CPU baseline.
func (s *Service) Tracked() int {
	return s.cache.Len()
}

// NeedsWarmup reports whether CPU percentages come from sampling, so the first
// listing after startup has none.
func (s *Service) NeedsWarmup() bool {
	return s.platform == platform.Windows
}

// ListProcesses returns the current process snapshot. Failures to run or read
// the listing tool are logged and yield an empty snapshot.
func (s *Service) ListProcesses(ctx context.Context) []model.Process {
	start := time.Now()
	procs, err := s.list(ctx)
	if err != nil {
		s.log.Warn("process listing failed",
			zap.String(logging.KeyPlatform, s.platform.String()),
			zap.Error(err))
		return []model.Process{}
	}
	s.log.Debug("process listing complete",
		zap.Int("count", len(procs)),
		zap.Int("tracked", s.cache.Len()),
		zap.Int64(logging.KeyDurationMs, time.Since(start).Milliseconds()))
	return procs
}

// Sample lists once to seed CPU baselines, waits interval, and lists again.
// Platforms that report CPU directly skip the first pass.
func (s *Service) Sample(ctx context.Context, interval time.Duration) []model.Process {
	if !s.NeedsWarmup() {
		return s.ListProcesses(ctx)
	}

	s.ListProcesses(ctx)

	timer := time.NewTimer(interval)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return []model.Process{}
	case <-timer.C:
	}
	return s.ListProcesses(ctx)
}

func (s *Service) list(ctx context.Context) ([]model.Process, error) {
	name, args, err := proc.ListCommand(s.platform)
	if err != nil {
		return nil, err
	}

	res, err := s.exec.Run(ctx, name, args...)
	if err != nil {
		return nil, err
	}
	// Stamp the sample when the tool returned, not when the lock was won.
	at := s.now()
	if res.ExitCode != 0 {
		return nil, fmt.Errorf("%s exited with code %d: %s", name, res.ExitCode, firstLine(res.Output))
	}

	var rows []proc.Row
	if s.platform == platform.Windows {
		rows = proc.ParseTasklistCSV(res.Lines())
	} else {
		rows = proc.ParsePS(res.Lines())
	}

	s.listMu.Lock()
	defer s.listMu.Unlock()

	live := make(map[int]struct{}, len(rows))
	procs := make([]model.Process, 0, len(rows))
	for _, row := range rows {
		p := row.Process
		live[p.PID] = struct{}{}

		switch {
		case row.CPUTime != "":
			p.CPUPercent = nil
			if pct, ok := s.cache.Observe(p.PID, proc.ParseCPUTime(row.CPUTime), at); ok {
				p.CPUPercent = model.Float(pct)
			}
		case p.CPUPercent != nil:
			p.CPUPercent = model.Float(clamp(*p.CPUPercent, 0, 100))
		}

		procs = append(procs, p)
	}
	s.cache.Prune(live)

	return procs, nil
}

// TotalCPUPercent returns system CPU usage in [0,100]. An unavailable reading
// is retried once after the retry delay, then reported as 0.
func (s *Service) TotalCPUPercent(ctx context.Context) float64 {
	load := s.cpuLoad(ctx)
	if load < 0 {
		timer := time.NewTimer(s.cpuRetryDelay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return 0
		case <-timer.C:
		}
		load = s.cpuLoad(ctx)
	}
	if load < 0 {
		return 0
	}
	return clamp(load*100, 0, 100)
}

func (s *Service) cpuLoad(ctx context.Context) float64 {
	load, err := s.counters.CPULoad(ctx)
	if err != nil {
		s.log.Debug("cpu load unavailable", zap.Error(err))
		return CPULoadUnavailable
	}
	return load
}

// TotalMemoryPercent returns used physical memory in [0,100], or 0 when the
// counters cannot be read.
func (s *Service) TotalMemoryPercent(ctx context.Context) float64 {
	total, free, err := s.counters.Memory(ctx)
	if err != nil {
		s.log.Warn("memory counters unavailable", zap.Error(err))
		return 0
	}
	if total == 0 || free > total {
		return 0
	}
	return clamp(float64(total-free)/float64(total)*100, 0, 100)
}

func firstLine(out []byte) string {
	line, _, _ := strings.Cut(strings.TrimSpace(string(out)), "\n")
	return strings.TrimSpace(line)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo || math.IsNaN(v) {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
