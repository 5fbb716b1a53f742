package tui

import (
	"time"

	"github.com/pranshuparmar/procmon/internal/batch"
	"github.com/pranshuparmar/procmon/internal/control"
	"github.com/pranshuparmar/procmon/pkg/model"
)

// tickMsg signals a refresh tick
type tickMsg time.Time

// processesMsg contains refreshed process data
type processesMsg struct {
	processes []model.Process
	totalCPU  float64
	totalMem  float64
	elapsed   time.Duration
}

// killResultMsg contains the result of kill operations
type killResultMsg struct {
	outcomes []control.Outcome
	summary  batch.Summary
}
