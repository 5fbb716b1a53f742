package batch

import (
	"os"
	"strings"

	"github.com/pranshuparmar/procmon/pkg/model"
)

// Filter selects processes from a snapshot. Empty fields match everything.
type Filter struct {
	Name   string // case-insensitive substring of name or command
	User   string // case-insensitive substring
	Status string // case-insensitive equality

	// ExcludeSelf drops this monitor and its parent (the shell or go run).
	ExcludeSelf bool
}

// Empty reports whether the filter selects every process.
func (f Filter) Empty() bool {
	return f.Name == "" && f.User == "" && f.Status == "" && !f.ExcludeSelf
}

// Match reports whether p passes every set field.
func (f Filter) Match(p model.Process) bool {
	if f.Name != "" {
		pattern := strings.ToLower(f.Name)
		if !strings.Contains(strings.ToLower(p.Name), pattern) &&
			!strings.Contains(strings.ToLower(p.Command), pattern) {
			return false
		}
	}
	if f.User != "" && !strings.Contains(strings.ToLower(p.User), strings.ToLower(f.User)) {
		return false
	}
	if f.Status != "" && !strings.EqualFold(string(p.Status), f.Status) {
		return false
	}
	if f.ExcludeSelf && (p.PID == os.Getpid() || p.PID == os.Getppid()) {
		return false
	}
	return true
}

// Apply returns the processes matching f, in input order. The input slice is
// not modified.
func (f Filter) Apply(procs []model.Process) []model.Process {
	out := make([]model.Process, 0, len(procs))
	for _, p := range procs {
		if f.Match(p) {
			out = append(out, p)
		}
	}
	return out
}

// PIDs extracts the pid of every process.
func PIDs(procs []model.Process) []int {
	pids := make([]int, len(procs))
	for i, p := range procs {
		pids[i] = p.PID
	}
	return pids
}
