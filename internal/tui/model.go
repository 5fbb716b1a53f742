// Package tui implements the interactive process monitor.
package tui

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/pranshuparmar/procmon/internal/batch"
	"github.com/pranshuparmar/procmon/internal/control"
	"github.com/pranshuparmar/procmon/pkg/model"
)

const (
	defaultRefreshInterval = 2 * time.Second
	refreshTimeout         = 30 * time.Second
)

// Source supplies snapshots and system totals. *inventory.Service satisfies it.
type Source interface {
	ListProcesses(ctx context.Context) []model.Process
	TotalCPUPercent(ctx context.Context) float64
	TotalMemoryPercent(ctx context.Context) float64
}

// Options configures a Model.
type Options struct {
	Source          Source
	Killer          control.Killer
	RefreshInterval time.Duration
	KillConcurrency int
	SortField       batch.SortField
	Filter          batch.Filter
}

// Model is the bubbletea model for the watch view.
type Model struct {
	source          Source
	killer          control.Killer
	refreshInterval time.Duration
	killConcurrency int

	keys        KeyMap
	help        help.Model
	filterInput textinput.Model

	processes   []model.Process
	filtered    []model.Process
	selected    map[int]bool
	cursorIndex int
	offset      int

	sortField    batch.SortField
	userFilter   string
	statusFilter model.Status // empty shows every status
	filterMode   bool
	confirming   []int // pids awaiting kill confirmation

	paused      bool
	refreshing  bool
	lastRefresh time.Time
	lastElapsed time.Duration
	totalCPU    float64
	totalMem    float64
	lastKill    *killResultMsg

	width  int
	height int
}

// NewModel creates the watch model.
func NewModel(opts Options) Model {
	if opts.RefreshInterval <= 0 {
		opts.RefreshInterval = defaultRefreshInterval
	}
	if opts.SortField == "" {
		opts.SortField = batch.SortCPU
	}

	ti := textinput.New()
	ti.Placeholder = "name or command"
	ti.CharLimit = 64
	ti.Width = 30
	ti.Prompt = "/"
	ti.PromptStyle = filterPromptStyle
	ti.SetValue(opts.Filter.Name)

	var status model.Status
	if st, ok := model.ParseStatus(opts.Filter.Status); ok {
		status = st
	}

	return Model{
		source:          opts.Source,
		killer:          opts.Killer,
		refreshInterval: opts.RefreshInterval,
		killConcurrency: opts.KillConcurrency,
		keys:            DefaultKeyMap(),
		help:            help.New(),
		filterInput:     ti,
		selected:        make(map[int]bool),
		sortField:       opts.SortField,
		userFilter:      opts.Filter.User,
		statusFilter:    status,
		refreshing:      true,
	}
}

// Run starts the watch view in the alternate screen and blocks until it exits.
func Run(opts Options) error {
	p := tea.NewProgram(NewModel(opts), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running tui: %w", err)
	}
	return nil
}

// Init starts the first refresh and the tick loop.
func (m Model) Init() tea.Cmd {
	return tea.Batch(refreshCmd(m.source), tickCmd(m.refreshInterval))
}

// tickCmd schedules the next refresh tick
func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// refreshCmd lists processes and system totals off the UI loop
func refreshCmd(src Source) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), refreshTimeout)
		defer cancel()

		start := time.Now()
		procs := src.ListProcesses(ctx)
		return processesMsg{
			processes: procs,
			totalCPU:  src.TotalCPUPercent(ctx),
			totalMem:  src.TotalMemoryPercent(ctx),
			elapsed:   time.Since(start),
		}
	}
}

// killCmd kills pids through the batch fan-out
func killCmd(killer control.Killer, pids []int, concurrency int) tea.Cmd {
	return func() tea.Msg {
		outcomes, summary := batch.KillAll(context.Background(), killer, pids, concurrency)
		return killResultMsg{outcomes: outcomes, summary: summary}
	}
}

func (m Model) filter() batch.Filter {
	return batch.Filter{
		Name:        m.filterInput.Value(),
		User:        m.userFilter,
		Status:      string(m.statusFilter),
		ExcludeSelf: true,
	}
}

// applyFilter rebuilds the visible rows from the latest snapshot.
func (m *Model) applyFilter() {
	m.filtered = m.filter().Apply(m.processes)
	batch.Sort(m.filtered, m.sortField)

	live := make(map[int]bool, len(m.processes))
	for _, p := range m.processes {
		live[p.PID] = true
	}
	for pid := range m.selected {
		if !live[pid] {
			delete(m.selected, pid)
		}
	}

	m.cursorIndex = max(0, min(m.cursorIndex, len(m.filtered)-1))
	m.scrollToCursor()
}

// visibleRows is the number of table rows that fit on screen.
func (m Model) visibleRows() int {
	// title, totals, table header, separator, panel border, status and help lines
	return max(1, m.height-9)
}

func (m *Model) scrollToCursor() {
	rows := m.visibleRows()
	if m.cursorIndex < m.offset {
		m.offset = m.cursorIndex
	}
	if m.cursorIndex >= m.offset+rows {
		m.offset = m.cursorIndex - rows + 1
	}
	m.offset = max(0, min(m.offset, len(m.filtered)-rows))
}

func (m Model) currentProcess() *model.Process {
	if m.cursorIndex < 0 || m.cursorIndex >= len(m.filtered) {
		return nil
	}
	return &m.filtered[m.cursorIndex]
}

func (m Model) selectedCount() int {
	return len(m.selected)
}

// killTargets returns the selected visible pids, or the current row when
// nothing is selected.
func (m Model) killTargets() []int {
	var pids []int
	if m.selectedCount() > 0 {
		for _, p := range m.filtered {
			if m.selected[p.PID] {
				pids = append(pids, p.PID)
			}
		}
		return pids
	}
	if p := m.currentProcess(); p != nil {
		pids = append(pids, p.PID)
	}
	return pids
}

// nextStatus cycles the status filter through every status and back to all.
func nextStatus(s model.Status) model.Status {
	if s == "" {
		return model.Statuses[0]
	}
	for i, st := range model.Statuses {
		if st == s && i+1 < len(model.Statuses) {
			return model.Statuses[i+1]
		}
	}
	return ""
}
