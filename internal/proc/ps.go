package proc

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/pranshuparmar/procmon/pkg/model"
)

// psColumns is the field count of the ps format: pid user pcpu rss stat comm.
const psColumns = 6

var psStates = map[byte]model.Status{
	'R': model.StatusRunning,
	'S': model.StatusSleeping,
	'D': model.StatusDiskSleep,
	'Z': model.StatusZombie,
	'T': model.StatusStopped,
	'I': model.StatusIdle,
}

// ParsePS parses ps output in the pid,user,pcpu,rss,stat,comm layout.
// The command column keeps its inner spaces.
func ParsePS(lines []string) []Row {
	rows := make([]Row, 0, len(lines))
	seen := make(map[int]bool, len(lines))

	for _, line := range lines {
		fields := splitFieldsN(line, psColumns)
		if len(fields) < psColumns {
			continue
		}

		pid, err := strconv.Atoi(fields[0])
		if err != nil || seen[pid] {
			continue
		}
		seen[pid] = true

		command := fields[5]
		p := model.Process{
			PID:     pid,
			Name:    command,
			User:    fields[1],
			Status:  psStatus(fields[4]),
			Command: command,
		}
		if cpu, ok := parseFinite(fields[2]); ok {
			p.CPUPercent = model.Float(cpu)
		}
		if kb, ok := parseFinite(fields[3]); ok && kb >= 0 {
			p.MemoryMB = model.Float(kb / 1024)
		}

		rows = append(rows, Row{Process: p})
	}

	return rows
}

func psStatus(stat string) model.Status {
	if stat == "" {
		return model.StatusUnknown
	}
	if st, ok := psStates[stat[0]]; ok {
		return st
	}
	return model.StatusUnknown
}

// splitFieldsN splits s on runs of whitespace into at most n fields.
// The last field holds the untouched remainder of the line.
func splitFieldsN(s string, n int) []string {
	var fields []string
	s = strings.TrimSpace(s)
	for s != "" {
		if len(fields) == n-1 {
			fields = append(fields, s)
			break
		}
		end := strings.IndexFunc(s, unicode.IsSpace)
		if end < 0 {
			fields = append(fields, s)
			break
		}
		fields = append(fields, s[:end])
		s = strings.TrimLeftFunc(s[end:], unicode.IsSpace)
	}
	return fields
}
