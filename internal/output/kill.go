package output

import (
	"fmt"
	"io"

	"github.com/pranshuparmar/procmon/internal/batch"
	"github.com/pranshuparmar/procmon/internal/control"
)

// RenderOutcomes prints one line per kill outcome followed by a summary.
func RenderOutcomes(w io.Writer, outcomes []control.Outcome, s batch.Summary, colorEnabled bool) {
	for _, o := range outcomes {
		switch o.Kind {
		case control.Success:
			fmt.Fprintf(w, "%s pid %d killed\n", paint(colorEnabled, colorGreen, "✓"), o.PID)
		case control.PermissionDenied, control.ProcessNotFound:
			fmt.Fprintf(w, "%s pid %d: %s\n", paint(colorEnabled, colorYellow, "!"), o.PID, o.Message)
		default:
			fmt.Fprintf(w, "%s pid %d: %s\n", paint(colorEnabled, colorRed, "✗"), o.PID, o.Message)
		}
	}

	if s.Total <= 1 {
		return
	}
	fmt.Fprintf(w, "\n%d/%d killed", s.Succeeded, s.Total)
	if s.PermissionDenied > 0 {
		fmt.Fprintf(w, ", %d denied", s.PermissionDenied)
	}
	if s.NotFound > 0 {
		fmt.Fprintf(w, ", %d not found", s.NotFound)
	}
	if s.Failed > 0 {
		fmt.Fprintf(w, ", %d failed", s.Failed)
	}
	fmt.Fprintf(w, " (%.1fs)\n", s.Elapsed.Seconds())
}

// OutcomeRecord is the machine-readable form of a kill outcome.
type OutcomeRecord struct {
	PID     int    `json:"pid" yaml:"pid"`
	Outcome string `json:"outcome" yaml:"outcome"`
	Message string `json:"message,omitempty" yaml:"message,omitempty"`
}

// OutcomeRecords converts outcomes for Encode.
func OutcomeRecords(outcomes []control.Outcome) []OutcomeRecord {
	records := make([]OutcomeRecord, 0, len(outcomes))
	for _, o := range outcomes {
		records = append(records, OutcomeRecord{PID: o.PID, Outcome: o.Kind.String(), Message: o.Message})
	}
	return records
}
