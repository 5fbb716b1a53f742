package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.scrollToCursor()
		return m, nil

	case tickMsg:
		// Skip the tick while paused or while the previous refresh is still running.
		if m.paused || m.refreshing {
			return m, tickCmd(m.refreshInterval)
		}
		m.refreshing = true
		return m, tea.Batch(refreshCmd(m.source), tickCmd(m.refreshInterval))

	case processesMsg:
		m.refreshing = false
		m.lastRefresh = time.Now()
		m.lastElapsed = msg.elapsed
		m.processes = msg.processes
		m.totalCPU = msg.totalCPU
		m.totalMem = msg.totalMem
		m.applyFilter()
		return m, nil

	case killResultMsg:
		m.lastKill = &msg
		// Remove killed processes from selection
		for _, o := range msg.outcomes {
			if o.OK() {
				delete(m.selected, o.PID)
			}
		}
		if m.refreshing {
			return m, nil
		}
		// Trigger immediate refresh
		m.refreshing = true
		return m, refreshCmd(m.source)
	}

	return m, nil
}

// handleKeyPress handles keyboard input
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.confirming != nil {
		return m.handleConfirm(msg)
	}
	// Handle filter mode input
	if m.filterMode {
		return m.handleFilterInput(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Up):
		if m.cursorIndex > 0 {
			m.cursorIndex--
			m.scrollToCursor()
		}
		return m, nil

	case key.Matches(msg, m.keys.Down):
		if m.cursorIndex < len(m.filtered)-1 {
			m.cursorIndex++
			m.scrollToCursor()
		}
		return m, nil

	case key.Matches(msg, m.keys.PageUp):
		m.cursorIndex = max(0, m.cursorIndex-m.visibleRows())
		m.scrollToCursor()
		return m, nil

	case key.Matches(msg, m.keys.PageDown):
		m.cursorIndex = max(0, min(len(m.filtered)-1, m.cursorIndex+m.visibleRows()))
		m.scrollToCursor()
		return m, nil

	case key.Matches(msg, m.keys.Select):
		if p := m.currentProcess(); p != nil {
			// Toggle selection
			if m.selected[p.PID] {
				delete(m.selected, p.PID)
			} else {
				m.selected[p.PID] = true
			}
			// Move to next row
			if m.cursorIndex < len(m.filtered)-1 {
				m.cursorIndex++
				m.scrollToCursor()
			}
		}
		return m, nil

	case key.Matches(msg, m.keys.SelectAll):
		// Select all visible processes
		for _, p := range m.filtered {
			m.selected[p.PID] = true
		}
		return m, nil

	case key.Matches(msg, m.keys.DeselectAll):
		m.selected = make(map[int]bool)
		return m, nil

	case key.Matches(msg, m.keys.Kill):
		if pids := m.killTargets(); len(pids) > 0 {
			m.confirming = pids
		}
		return m, nil

	case key.Matches(msg, m.keys.Pause):
		m.paused = !m.paused
		return m, nil

	case key.Matches(msg, m.keys.Refresh):
		if m.refreshing {
			return m, nil
		}
		m.refreshing = true
		return m, refreshCmd(m.source)

	case key.Matches(msg, m.keys.Filter):
		m.filterMode = true
		return m, m.filterInput.Focus()

	case key.Matches(msg, m.keys.StatusFilter):
		m.statusFilter = nextStatus(m.statusFilter)
		m.applyFilter()
		return m, nil

	case key.Matches(msg, m.keys.Sort):
		// Cycle through sort fields
		m.sortField = m.sortField.Next()
		m.applyFilter()
		return m, nil

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil

	case key.Matches(msg, m.keys.Escape):
		m.lastKill = nil
		return m, nil
	}

	return m, nil
}

// handleFilterInput handles input in filter mode
func (m Model) handleFilterInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Escape):
		m.filterMode = false
		m.filterInput.Blur()
		m.filterInput.SetValue("")
		m.applyFilter()
		return m, nil

	case msg.Type == tea.KeyEnter:
		m.filterMode = false
		m.filterInput.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.filterInput, cmd = m.filterInput.Update(msg)
	m.applyFilter()
	return m, cmd
}

// handleConfirm kills the pending pids on confirmation and cancels on any other key.
func (m Model) handleConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	pids := m.confirming
	m.confirming = nil
	if !key.Matches(msg, m.keys.Confirm) {
		return m, nil
	}
	// Kill asynchronously
	return m, killCmd(m.killer, pids, m.killConcurrency)
}
