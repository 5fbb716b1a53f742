package output

import (
	"fmt"
	"io"
	"strings"
)

// Stats is the system summary printed by the stats command.
type Stats struct {
	Hostname           string  `json:"hostname" yaml:"hostname"`
	Platform           string  `json:"platform" yaml:"platform"`
	OS                 string  `json:"os,omitempty" yaml:"os,omitempty"`
	Uptime             string  `json:"uptime,omitempty" yaml:"uptime,omitempty"`
	Processes          int     `json:"processes" yaml:"processes"`
	TotalCPUPercent    float64 `json:"totalCpuPercent" yaml:"totalCpuPercent"`
	TotalMemoryPercent float64 `json:"totalMemoryPercent" yaml:"totalMemoryPercent"`
}

const barWidth = 20

// RenderStats prints the summary with usage bars.
func RenderStats(w io.Writer, s Stats, colorEnabled bool) {
	host := s.Hostname
	if s.OS != "" {
		host += " (" + s.OS + ")"
	}
	fmt.Fprintln(w, paint(colorEnabled, colorBlue, host))
	if s.Uptime != "" {
		fmt.Fprintf(w, "  Uptime     %s\n", s.Uptime)
	}
	fmt.Fprintf(w, "  Processes  %d\n", s.Processes)
	fmt.Fprintf(w, "  CPU        %s %5.1f%%\n", Bar(s.TotalCPUPercent, colorEnabled), s.TotalCPUPercent)
	fmt.Fprintf(w, "  Memory     %s %5.1f%%\n", Bar(s.TotalMemoryPercent, colorEnabled), s.TotalMemoryPercent)
}

// Bar draws a fixed-width usage bar for a percentage in [0,100].
func Bar(pct float64, colorEnabled bool) string {
	pct = max(0, min(100, pct))
	filled := int(pct/100*barWidth + 0.5)
	bar := strings.Repeat("█", filled)

	color := colorGreen
	switch {
	case pct > 80:
		color = colorRed
	case pct > 50:
		color = colorYellow
	}
	return paint(colorEnabled, color, bar) + paint(colorEnabled, colorDim, strings.Repeat("░", barWidth-filled))
}
