package batch

import (
	"time"

	"github.com/pranshuparmar/procmon/internal/control"
)

// Summary aggregates the outcomes of one batch kill.
type Summary struct {
	Total            int
	Succeeded        int
	PermissionDenied int
	NotFound         int
	Failed           int
	Elapsed          time.Duration
	Failures         []control.Outcome
}

// AllSucceeded reports whether every pid in the batch was terminated.
func (s Summary) AllSucceeded() bool {
	return s.Total == s.Succeeded
}

// Summarize counts outcomes per kind. Failures keep pid order.
func Summarize(outcomes []control.Outcome) Summary {
	s := Summary{Total: len(outcomes)}
	for _, o := range outcomes {
		switch o.Kind {
		case control.Success:
			s.Succeeded++
			continue
		case control.PermissionDenied:
			s.PermissionDenied++
		case control.ProcessNotFound:
			s.NotFound++
		default:
			s.Failed++
		}
		s.Failures = append(s.Failures, o)
	}
	sortOutcomes(s.Failures)
	return s
}
