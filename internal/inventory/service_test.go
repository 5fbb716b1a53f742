package inventory

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"
	"testing"
	"time"

	"go.uber.org/mock/gomock"

	"github.com/pranshuparmar/procmon/internal/inventory/mocks"
	"github.com/pranshuparmar/procmon/internal/platform"
	"github.com/pranshuparmar/procmon/internal/proc"
	procmocks "github.com/pranshuparmar/procmon/internal/proc/mocks"
	"github.com/pranshuparmar/procmon/pkg/model"
)

const tasklistHeader = `"Image Name","PID","Session Name","Session#","Mem Usage","Status","User Name","CPU Time","Window Title"` + "\n"

func tasklistRow(name string, pid int, cpuTime string) string {
	return fmt.Sprintf("%q,\"%d\",\"Console\",\"1\",\"1,024 K\",\"Running\",\"user1\",%q,\"N/A\"\n", name, pid, cpuTime)
}

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func byPID(procs []model.Process) map[int]model.Process {
	m := make(map[int]model.Process, len(procs))
	for _, p := range procs {
		m[p.PID] = p
	}
	return m
}

func TestListProcessesWindowsSampling(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockExec := procmocks.NewMockExecutor(ctrl)
	clock := &fakeClock{now: time.UnixMilli(0)}
	svc := New(
		WithPlatform(platform.Windows),
		WithExecutor(mockExec),
		WithClock(clock.Now),
	)

	first := tasklistHeader + tasklistRow("chrome.exe", 1234, "0:00:10") + tasklistRow("idle.exe", 10, "0:00:00")
	second := tasklistHeader + tasklistRow("chrome.exe", 1234, "0:00:12") + tasklistRow("idle.exe", 10, "0:00:00")
	third := tasklistHeader + tasklistRow("chrome.exe", 1234, "0:00:13")

	gomock.InOrder(
		mockExec.EXPECT().Run(gomock.Any(), "tasklist", "/v", "/fo", "csv").Return(proc.Result{Output: []byte(first)}, nil),
		mockExec.EXPECT().Run(gomock.Any(), "tasklist", "/v", "/fo", "csv").Return(proc.Result{Output: []byte(second)}, nil),
		mockExec.EXPECT().Run(gomock.Any(), "tasklist", "/v", "/fo", "csv").Return(proc.Result{Output: []byte(third)}, nil),
	)

	procs := svc.ListProcesses(context.Background())
	if len(procs) != 2 {
		t.Fatalf("Got %d processes, want 2", len(procs))
	}
	for _, p := range procs {
		if p.CPUPercent != nil {
			t.Errorf("pid %d: first observation should have no CPU, got %v", p.PID, *p.CPUPercent)
		}
	}

	clock.Advance(2 * time.Second)
	byID := byPID(svc.ListProcesses(context.Background()))
	if cpu, ok := byID[1234].CPU(); !ok || cpu != 100 {
		t.Errorf("chrome CPU = %v (%v), want 100", cpu, ok)
	}
	if cpu, ok := byID[10].CPU(); !ok || cpu != 0 {
		t.Errorf("idle CPU = %v (%v), want 0", cpu, ok)
	}
	if svc.Tracked() != 2 {
		t.Errorf("Tracked() = %d, want 2", svc.Tracked())
	}

	clock.Advance(4 * time.Second)
	byID = byPID(svc.ListProcesses(context.Background()))
	if cpu, ok := byID[1234].CPU(); !ok || cpu != 25 {
		t.Errorf("chrome CPU = %v (%v), want 25", cpu, ok)
	}
	if svc.Tracked() != 1 {
		t.Errorf("exited pid should be pruned, Tracked() = %d", svc.Tracked())
	}
}

func TestListProcessesConcurrentRefreshes(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	var mu sync.Mutex
	tick := int64(0)
	clock := func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		tick++
		return time.UnixMilli(tick * 1000)
	}

	mockExec := procmocks.NewMockExecutor(ctrl)
	out := tasklistHeader + tasklistRow("chrome.exe", 1234, "0:00:10") + tasklistRow("svchost.exe", 88, "0:01:00")
	mockExec.EXPECT().Run(gomock.Any(), "tasklist", "/v", "/fo", "csv").
		Return(proc.Result{Output: []byte(out)}, nil).
		AnyTimes()

	svc := New(WithPlatform(platform.Windows), WithExecutor(mockExec), WithClock(clock))

	const workers, rounds = 8, 25
	var wg sync.WaitGroup
	errs := make(chan string, workers*rounds*2)
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < rounds; i++ {
				procs := svc.ListProcesses(context.Background())
				if len(procs) != 2 {
					errs <- fmt.Sprintf("got %d processes, want 2", len(procs))
					continue
				}
				for _, p := range procs {
					if cpu, ok := p.CPU(); ok && (cpu < 0 || cpu > 100) {
						errs <- fmt.Sprintf("pid %d: CPU %v out of range", p.PID, cpu)
					}
				}
			}
		}()
	}
	wg.Wait()
	close(errs)

	for e := range errs {
		t.Error(e)
	}
	if svc.Tracked() != 2 {
		t.Errorf("Tracked() = %d, want 2", svc.Tracked())
	}
}

func TestListProcessesDropsNonFiniteCPU(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockExec := procmocks.NewMockExecutor(ctrl)
	svc := New(WithPlatform(platform.Linux), WithExecutor(mockExec))
	mockExec.EXPECT().Run(gomock.Any(), "ps", gomock.Any(), gomock.Any()).
		Return(proc.Result{Output: []byte(" 5 root nan 100 R x\n")}, nil)

	procs := svc.ListProcesses(context.Background())
	if len(procs) != 1 {
		t.Fatalf("Got %d processes, want 1", len(procs))
	}
	if procs[0].CPUPercent != nil {
		t.Errorf("CPU = %v, want absent", *procs[0].CPUPercent)
	}
}

func TestClampNaN(t *testing.T) {
	if got := clamp(math.NaN(), 0, 100); got != 0 {
		t.Errorf("clamp(NaN) = %v, want 0", got)
	}
}

func TestListProcessesLinuxClampsCPU(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockExec := procmocks.NewMockExecutor(ctrl)
	svc := New(WithPlatform(platform.Linux), WithExecutor(mockExec))

	psOut := "  1 root  0.0 11264 Ss /sbin/init\n 77 alice 250.0 2048 R stress\n"
	mockExec.EXPECT().
		Run(gomock.Any(), "ps", "-eo", "pid=,user=,pcpu=,rss=,stat=,comm=").
		Return(proc.Result{Output: []byte(psOut)}, nil)

	procs := byPID(svc.ListProcesses(context.Background()))
	if len(procs) != 2 {
		t.Fatalf("Got %d processes, want 2", len(procs))
	}
	if cpu, _ := procs[77].CPU(); cpu != 100 {
		t.Errorf("CPU = %v, want clamp to 100", cpu)
	}
	if cpu, ok := procs[1].CPU(); !ok || cpu != 0 {
		t.Errorf("CPU = %v (%v), want 0", cpu, ok)
	}
	if procs[1].Status != model.StatusSleeping {
		t.Errorf("Status = %q, want Sleeping", procs[1].Status)
	}
}

func TestListProcessesRecoversFromFailures(t *testing.T) {
	tests := []struct {
		name string
		res  proc.Result
		err  error
	}{
		{"tool missing", proc.Result{ExitCode: -1}, errors.New(`exec: "ps": executable file not found in $PATH`)},
		{"timeout", proc.Result{ExitCode: -1}, proc.ErrCommandTimeout},
		{"non-zero exit", proc.Result{Output: []byte("ps: illegal option\n"), ExitCode: 1}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockExec := procmocks.NewMockExecutor(ctrl)
			svc := New(WithPlatform(platform.Mac), WithExecutor(mockExec))
			mockExec.EXPECT().Run(gomock.Any(), "ps", gomock.Any(), gomock.Any()).Return(tt.res, tt.err)

			procs := svc.ListProcesses(context.Background())
			if procs == nil || len(procs) != 0 {
				t.Errorf("ListProcesses() = %v, want empty non-nil slice", procs)
			}
		})
	}
}

func TestListProcessesUnsupportedPlatform(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	// No expectations: the executor must not be called.
	mockExec := procmocks.NewMockExecutor(ctrl)
	svc := New(WithPlatform(platform.Unknown), WithExecutor(mockExec))

	if procs := svc.ListProcesses(context.Background()); len(procs) != 0 {
		t.Errorf("ListProcesses() = %v, want empty", procs)
	}
}

func TestSampleWindowsListsTwice(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockExec := procmocks.NewMockExecutor(ctrl)
	calls := 0
	clock := func() time.Time {
		t := time.UnixMilli(int64(calls) * 2000)
		calls++
		return t
	}
	svc := New(WithPlatform(platform.Windows), WithExecutor(mockExec), WithClock(clock))

	gomock.InOrder(
		mockExec.EXPECT().Run(gomock.Any(), "tasklist", gomock.Any(), gomock.Any(), gomock.Any()).
			Return(proc.Result{Output: []byte(tasklistHeader + tasklistRow("a.exe", 5, "0:00:01"))}, nil),
		mockExec.EXPECT().Run(gomock.Any(), "tasklist", gomock.Any(), gomock.Any(), gomock.Any()).
			Return(proc.Result{Output: []byte(tasklistHeader + tasklistRow("a.exe", 5, "0:00:02"))}, nil),
	)

	procs := svc.Sample(context.Background(), time.Millisecond)
	if len(procs) != 1 {
		t.Fatalf("Got %d processes, want 1", len(procs))
	}
	if cpu, ok := procs[0].CPU(); !ok || cpu != 50 {
		t.Errorf("CPU = %v (%v), want 50", cpu, ok)
	}
}

func TestSampleUnixListsOnce(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockExec := procmocks.NewMockExecutor(ctrl)
	svc := New(WithPlatform(platform.Linux), WithExecutor(mockExec))
	mockExec.EXPECT().Run(gomock.Any(), "ps", gomock.Any(), gomock.Any()).
		Return(proc.Result{Output: []byte("1 root 0.5 100 S init\n")}, nil).
		Times(1)

	if procs := svc.Sample(context.Background(), time.Hour); len(procs) != 1 {
		t.Errorf("Got %d processes, want 1", len(procs))
	}
}

func TestTotalCPUPercent(t *testing.T) {
	tests := []struct {
		name  string
		loads []float64
		errs  []error
		want  float64
	}{
		{"available", []float64{0.42}, []error{nil}, 42},
		{"retry succeeds", []float64{-1, 0.3}, []error{nil, nil}, 30},
		{"retry fails", []float64{-1, -1}, []error{nil, nil}, 0},
		{"errors", []float64{-1, -1}, []error{errors.New("boom"), errors.New("boom")}, 0},
		{"clamped", []float64{1.5}, []error{nil}, 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			counters := mocks.NewMockCounters(ctrl)
			var calls []any
			for i := range tt.loads {
				calls = append(calls, counters.EXPECT().CPULoad(gomock.Any()).Return(tt.loads[i], tt.errs[i]))
			}
			gomock.InOrder(calls...)

			svc := New(WithCounters(counters), WithCPURetryDelay(time.Millisecond))
			got := svc.TotalCPUPercent(context.Background())
			if diff := got - tt.want; diff > 1e-9 || diff < -1e-9 {
				t.Errorf("TotalCPUPercent() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTotalMemoryPercent(t *testing.T) {
	tests := []struct {
		name        string
		total, free uint64
		err         error
		want        float64
	}{
		{"used quarter", 1000, 750, nil, 25},
		{"full", 1000, 0, nil, 100},
		{"zero total", 0, 0, nil, 0},
		{"error", 0, 0, errors.New("no counters"), 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			counters := mocks.NewMockCounters(ctrl)
			counters.EXPECT().Memory(gomock.Any()).Return(tt.total, tt.free, tt.err)

			svc := New(WithCounters(counters))
			if got := svc.TotalMemoryPercent(context.Background()); got != tt.want {
				t.Errorf("TotalMemoryPercent() = %v, want %v", got, tt.want)
			}
		})
	}
}
