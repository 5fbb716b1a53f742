package tui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wrap"

	"github.com/pranshuparmar/procmon/internal/batch"
	"github.com/pranshuparmar/procmon/internal/output"
	"github.com/pranshuparmar/procmon/pkg/model"
)

const detailsMinWidth = 90

type column struct {
	name  string
	width int
}

var tableColumns = []column{
	{"PID", 7},
	{"NAME", 20},
	{"USER", 12},
	{"CPU", 6},
	{"MEM", 7},
	{"STATUS", 14},
}

// View renders the UI
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	header := m.renderHeader()

	var main string
	if m.width >= detailsMinWidth {
		// Calculate panel widths (70% table, 30% details)
		tableWidth := int(float64(m.width) * 0.68)
		detailsWidth := m.width - tableWidth - 4 // Account for borders
		main = lipgloss.JoinHorizontal(lipgloss.Top,
			m.renderTablePanel(tableWidth), m.renderDetailsPanel(detailsWidth))
	} else {
		main = m.renderTablePanel(m.width - 2)
	}

	return lipgloss.JoinVertical(lipgloss.Left, header, main, m.renderStatusLine(), m.renderHelpBar())
}

// renderHeader renders the title and the system totals.
func (m Model) renderHeader() string {
	title := titleStyle.Render("procmon")
	totals := fmt.Sprintf("  CPU %s %5.1f%%   MEM %s %5.1f%%",
		usageBar(m.totalCPU), m.totalCPU, usageBar(m.totalMem), m.totalMem)
	count := statusDescStyle.Render(fmt.Sprintf("   %d/%d processes", len(m.filtered), len(m.processes)))
	return title + totals + count
}

const usageBarWidth = 16

// usageBar draws a lipgloss-colored bar for a percentage in [0,100].
func usageBar(pct float64) string {
	pct = max(0, min(100, pct))
	filled := int(pct/100*usageBarWidth + 0.5)
	return levelStyle(pct, 50, 80).Render(strings.Repeat("█", filled)) +
		barEmptyStyle.Render(strings.Repeat("░", usageBarWidth-filled))
}

// renderTablePanel renders the process table
func (m Model) renderTablePanel(width int) string {
	var sb strings.Builder

	sb.WriteString(m.renderTableHeader())
	sb.WriteString("\n")
	sb.WriteString(lipgloss.NewStyle().Foreground(colorBorder).Render(strings.Repeat("─", max(0, width-4))))
	sb.WriteString("\n")

	if len(m.filtered) == 0 {
		msg := "No processes found"
		if m.refreshing && len(m.processes) == 0 {
			msg = "Loading processes..."
		}
		sb.WriteString(lipgloss.NewStyle().
			Foreground(colorMuted).
			Width(max(0, width-4)).
			Align(lipgloss.Center).
			Render(msg))
	} else {
		end := min(len(m.filtered), m.offset+m.visibleRows())
		rows := make([]string, 0, end-m.offset)
		for i := m.offset; i < end; i++ {
			rows = append(rows, m.renderTableRow(i, width-4))
		}
		sb.WriteString(strings.Join(rows, "\n"))
	}

	return panelStyle.
		Width(width).
		Height(m.visibleRows() + 2).
		Render(sb.String())
}

// renderTableHeader renders the table header
func (m Model) renderTableHeader() string {
	parts := []string{"  "} // Selection marker
	for _, col := range tableColumns {
		name := col.name
		if strings.EqualFold(name, string(m.sortField)) {
			name += "▼"
		}
		parts = append(parts, lipgloss.NewStyle().
			Width(col.width).
			Bold(true).
			Foreground(colorSecondary).
			Render(name))
	}
	parts = append(parts, lipgloss.NewStyle().Bold(true).Foreground(colorSecondary).Render("COMMAND"))
	return strings.Join(parts, " ")
}

// renderTableRow renders a single table row
func (m Model) renderTableRow(idx int, width int) string {
	p := m.filtered[idx]
	isSelected := m.selected[p.PID]
	isCursor := idx == m.cursorIndex

	// Selection marker
	marker := "  "
	switch {
	case isCursor && isSelected:
		marker = tableMultiSelectStyle.Render("▸ ")
	case isCursor:
		marker = lipgloss.NewStyle().Bold(true).Foreground(colorPrimary).Render("> ")
	case isSelected:
		marker = tableMultiSelectStyle.Render("• ")
	}

	values := []string{
		strconv.Itoa(p.PID),
		batch.Truncate(p.Name, tableColumns[1].width),
		batch.Truncate(orDash(p.User), tableColumns[2].width),
		formatCPU(p),
		formatMemory(p),
		formatStatus(p.Status),
	}

	parts := []string{marker}
	for i, v := range values {
		parts = append(parts, lipgloss.NewStyle().Width(tableColumns[i].width).Render(v))
	}

	used := 2
	for _, col := range tableColumns {
		used += col.width + 1
	}
	parts = append(parts, batch.Truncate(batch.ShortenPath(p.Command), max(8, width-used-1)))

	row := strings.Join(parts, " ")

	// Apply row styling
	if isCursor {
		row = tableSelectedStyle.Render(row)
	}
	return row
}

// renderDetailsPanel renders the right-side details panel
func (m Model) renderDetailsPanel(width int) string {
	height := m.visibleRows() + 2

	p := m.currentProcess()
	if p == nil {
		empty := lipgloss.NewStyle().
			Foreground(colorMuted).
			Width(width).
			Height(height).
			Align(lipgloss.Center, lipgloss.Center).
			Render("Select a process")
		return panelStyle.Width(width).Height(height).Render(empty)
	}

	sections := []string{
		detailsTitleStyle.Render(fmt.Sprintf("PID %d", p.PID)),
		renderDetailSection("NAME", p.Name, width-4),
		renderDetailSection("COMMAND", wrap.String(batch.ShortenPath(p.Command), max(1, width-4)), width-4),
		renderDetailSection("USER", orDash(p.User), width-4),
		renderDetailSection("STATUS", formatStatus(p.Status), width-4),
		renderDetailSection("RESOURCES", fmt.Sprintf("CPU: %s  MEM: %s", formatCPU(*p), formatMemory(*p)), width-4),
	}
	if m.selected[p.PID] {
		sections = append(sections, tableMultiSelectStyle.Render("selected"))
	}

	return panelStyle.
		Width(width).
		Height(height).
		Render(strings.Join(sections, "\n\n"))
}

// renderDetailSection renders a labeled section
func renderDetailSection(label, value string, width int) string {
	return detailsLabelStyle.Render(label) + "\n" + detailsValueStyle.Width(max(1, width)).Render(value)
}

// renderStatusLine shows the filter input, a pending confirmation, or the
// last kill result, with refresh state on the right.
func (m Model) renderStatusLine() string {
	var left string
	switch {
	case m.confirming != nil:
		left = confirmStyle.Render(fmt.Sprintf("Kill %s? (y to confirm, any key to cancel)", describePIDs(m.confirming)))
	case m.filterMode:
		left = m.filterInput.View()
	case m.lastKill != nil:
		left = renderKillResult(m.lastKill)
	default:
		var filters []string
		if v := m.filterInput.Value(); v != "" {
			filters = append(filters, "name~"+v)
		}
		if m.userFilter != "" {
			filters = append(filters, "user~"+m.userFilter)
		}
		if m.statusFilter != "" {
			filters = append(filters, "status="+string(m.statusFilter))
		}
		if len(filters) > 0 {
			left = statusDescStyle.Render("filter: " + strings.Join(filters, " "))
		}
	}

	var right string
	switch {
	case m.paused:
		right = pausedStyle.Render("⏸ PAUSED")
	case m.refreshing:
		right = refreshingStyle.Render("↻ refreshing...")
	default:
		right = statusDescStyle.Render(fmt.Sprintf("updated %s (%dms)",
			formatTimeSince(m.lastRefresh), m.lastElapsed.Milliseconds()))
	}
	if count := m.selectedCount(); count > 0 {
		right += statusDescStyle.Render(fmt.Sprintf(" | %d selected", count))
	}
	right += statusDescStyle.Render(" | sort:" + string(m.sortField))

	leftSide := helpStyle.Render(left)
	rightSide := helpStyle.Render(right)
	spacing := max(0, m.width-lipgloss.Width(leftSide)-lipgloss.Width(rightSide))
	return leftSide + strings.Repeat(" ", spacing) + rightSide
}

// renderHelpBar renders the bottom help bar
func (m Model) renderHelpBar() string {
	return helpStyle.Render(m.help.View(m.keys))
}

func renderKillResult(r *killResultMsg) string {
	s := r.summary
	if s.Total == 1 && len(r.outcomes) == 1 {
		o := r.outcomes[0]
		if o.OK() {
			return normalStyle.Render(fmt.Sprintf("killed pid %d", o.PID))
		}
		return errorStyle.Render(fmt.Sprintf("pid %d: %s", o.PID, o.Message))
	}

	text := fmt.Sprintf("killed %d/%d", s.Succeeded, s.Total)
	if s.AllSucceeded() {
		return normalStyle.Render(text)
	}
	if s.PermissionDenied > 0 {
		text += fmt.Sprintf(", %d denied", s.PermissionDenied)
	}
	if s.NotFound > 0 {
		text += fmt.Sprintf(", %d not found", s.NotFound)
	}
	if s.Failed > 0 {
		text += fmt.Sprintf(", %d failed", s.Failed)
	}
	return errorStyle.Render(text)
}

func describePIDs(pids []int) string {
	if len(pids) == 1 {
		return fmt.Sprintf("pid %d", pids[0])
	}
	return fmt.Sprintf("%d processes", len(pids))
}

// formatCPU formats CPU percentage with color
func formatCPU(p model.Process) string {
	cpu, ok := p.CPU()
	if !ok {
		return statusDescStyle.Render("-")
	}
	return levelStyle(cpu, 20, 50).Render(fmt.Sprintf("%.1f", cpu))
}

// formatMemory formats memory with color
func formatMemory(p model.Process) string {
	mb, ok := p.Memory()
	if !ok {
		return statusDescStyle.Render("-")
	}
	str := output.FormatMemory(mb)
	switch {
	case mb > 1024:
		return highStyle.Render(str)
	case mb > 512:
		return medStyle.Render(str)
	}
	return str
}

func formatStatus(s model.Status) string {
	switch s {
	case model.StatusRunning:
		return normalStyle.Render(string(s))
	case model.StatusZombie, model.StatusNotResponding:
		return highStyle.Render(string(s))
	case model.StatusStopped, model.StatusDiskSleep:
		return medStyle.Render(string(s))
	}
	return string(s)
}

// formatTimeSince formats duration since a time
func formatTimeSince(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	d := time.Since(t)
	if d < time.Second {
		return "just now"
	}
	return d.Truncate(time.Second).String() + " ago"
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
