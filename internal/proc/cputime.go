package proc

import (
	"math"
	"strconv"
	"strings"
)

// ParseCPUTime converts a cumulative CPU time such as "H:MM:SS", "M:SS" or
// ps's "D-HH:MM:SS" into seconds. Unparseable segments count as zero.
func ParseCPUTime(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}

	var days float64
	if i := strings.IndexByte(s, '-'); i >= 0 {
		days = cpuTimeSegment(s[:i])
		s = s[i+1:]
	}

	var total float64
	for _, part := range strings.Split(s, ":") {
		total = total*60 + cpuTimeSegment(part)
	}
	return days*86400 + total
}

func cpuTimeSegment(s string) float64 {
	v, ok := parseFinite(strings.TrimSpace(s))
	if !ok || v < 0 {
		return 0
	}
	return v
}

// parseFinite is strconv.ParseFloat without the "nan" and "inf" spellings,
// which no listing tool emits for a real measurement.
func parseFinite(s string) (float64, bool) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}
