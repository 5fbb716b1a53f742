package proc

import (
	"strconv"

	"github.com/pranshuparmar/procmon/internal/platform"
)

// psFormat asks for pid, user, pcpu, rss (kB), stat and comm with empty headers.
const psFormat = "pid=,user=,pcpu=,rss=,stat=,comm="

// ListCommand returns the listing tool invocation for p.
func ListCommand(p platform.Platform) (string, []string, error) {
	switch p {
	case platform.Windows:
		return "tasklist", []string{"/v", "/fo", "csv"}, nil
	case platform.Linux, platform.Mac:
		return "ps", []string{"-eo", psFormat}, nil
	default:
		return "", nil, platform.ErrUnsupported
	}
}

// KillCommand returns the forced termination invocation for pid on p.
func KillCommand(p platform.Platform, pid int) (string, []string, error) {
	id := strconv.Itoa(pid)
	switch p {
	case platform.Windows:
		return "taskkill", []string{"/PID", id, "/F"}, nil
	case platform.Linux, platform.Mac:
		return "kill", []string{"-9", id}, nil
	default:
		return "", nil, platform.ErrUnsupported
	}
}
