package proc

import (
	"encoding/csv"
	"strconv"
	"strings"

	"github.com/pranshuparmar/procmon/pkg/model"
)

// tasklist /v /fo csv columns:
// "Image Name","PID","Session Name","Session#","Mem Usage","Status","User Name","CPU Time","Window Title"
const (
	tasklistColName    = 0
	tasklistColPID     = 1
	tasklistColMemory  = 4
	tasklistColStatus  = 5
	tasklistColUser    = 6
	tasklistColCPUTime = 7

	tasklistMinColumns = 8
)

// Row is a parsed listing line. CPUTime holds the raw cumulative CPU time
// reported by tools that do not expose a percentage.
type Row struct {
	model.Process
	CPUTime string
}

// ParseTasklistCSV parses tasklist CSV output. The header, short rows and
// rows with a non-numeric PID are skipped.
func ParseTasklistCSV(lines []string) []Row {
	rows := make([]Row, 0, len(lines))
	seen := make(map[int]bool, len(lines))

	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		cols, err := splitCSVLine(line)
		if err != nil || len(cols) < tasklistMinColumns {
			continue
		}

		pid, err := strconv.Atoi(strings.TrimSpace(cols[tasklistColPID]))
		if err != nil || seen[pid] {
			continue
		}
		name := strings.TrimSpace(cols[tasklistColName])
		if name == "" {
			continue
		}
		seen[pid] = true

		p := model.Process{
			PID:     pid,
			Name:    name,
			Command: name,
			Status:  tasklistStatus(cols[tasklistColStatus]),
		}
		if user := strings.TrimSpace(cols[tasklistColUser]); user != "" && !strings.EqualFold(user, "N/A") {
			p.User = user
		}
		if kb, ok := parseDigits(cols[tasklistColMemory]); ok {
			p.MemoryMB = model.Float(kb / 1024)
		}

		rows = append(rows, Row{
			Process: p,
			CPUTime: strings.TrimSpace(cols[tasklistColCPUTime]),
		})
	}

	return rows
}

func splitCSVLine(line string) ([]string, error) {
	r := csv.NewReader(strings.NewReader(line))
	r.LazyQuotes = true
	r.FieldsPerRecord = -1
	return r.Read()
}

func tasklistStatus(s string) model.Status {
	s = strings.TrimSpace(s)
	switch {
	case s == "Running":
		return model.StatusRunning
	case strings.Contains(s, "Not Responding"):
		return model.StatusNotResponding
	default:
		return model.StatusUnknown
	}
}

// parseDigits keeps only the digits of s, so "45,678 K" and "45.678 K" both read as 45678.
func parseDigits(s string) (float64, bool) {
	var sb strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			sb.WriteRune(r)
		}
	}
	if sb.Len() == 0 {
		return 0, false
	}
	v, err := strconv.ParseFloat(sb.String(), 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
