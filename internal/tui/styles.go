package tui

import "github.com/charmbracelet/lipgloss"

// Colors
var (
	colorPrimary   = lipgloss.Color("#7C3AED") // Purple
	colorSecondary = lipgloss.Color("#3B82F6") // Blue
	colorSuccess   = lipgloss.Color("#22C55E") // Green
	colorWarning   = lipgloss.Color("#F59E0B") // Amber
	colorDanger    = lipgloss.Color("#EF4444") // Red
	colorMuted     = lipgloss.Color("#6B7280") // Gray
	colorBorder    = lipgloss.Color("#374151") // Dark gray
	colorSelected  = lipgloss.Color("#4F46E5") // Indigo
)

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(colorPrimary).
			Padding(0, 1)

	tableSelectedStyle = lipgloss.NewStyle().
				Background(colorSelected).
				Foreground(lipgloss.Color("#FFFFFF"))

	tableMultiSelectStyle = lipgloss.NewStyle().
				Foreground(colorPrimary).
				Bold(true)

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Padding(0, 1)

	detailsTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(colorPrimary)

	detailsLabelStyle = lipgloss.NewStyle().
				Foreground(colorMuted)

	detailsValueStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#FFFFFF"))

	helpStyle = lipgloss.NewStyle().
			Padding(0, 1)

	statusDescStyle = lipgloss.NewStyle().
			Foreground(colorMuted)

	// CPU/Memory color styles
	highStyle = lipgloss.NewStyle().
			Foreground(colorDanger).
			Bold(true)

	medStyle = lipgloss.NewStyle().
			Foreground(colorWarning)

	normalStyle = lipgloss.NewStyle().
			Foreground(colorSuccess)

	barEmptyStyle = lipgloss.NewStyle().
			Foreground(colorBorder)

	pausedStyle = lipgloss.NewStyle().
			Foreground(colorWarning).
			Bold(true)

	refreshingStyle = lipgloss.NewStyle().
			Foreground(colorSuccess)

	errorStyle = lipgloss.NewStyle().
			Foreground(colorDanger)

	confirmStyle = lipgloss.NewStyle().
			Foreground(colorWarning).
			Bold(true)

	filterPromptStyle = lipgloss.NewStyle().
				Foreground(colorPrimary).
				Bold(true)
)

// levelStyle picks a color for a usage value against its thresholds.
func levelStyle(v, med, high float64) lipgloss.Style {
	switch {
	case v > high:
		return highStyle
	case v > med:
		return medStyle
	default:
		return normalStyle
	}
}
