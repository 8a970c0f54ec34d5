package viz

import "github.com/charmbracelet/lipgloss"

var (
	// Spin cells
	SpinUp   = lipgloss.NewStyle().Foreground(lipgloss.Color("#00ccff"))
	SpinDown = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff4488"))

	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#00ffff"))

	PanelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#444466")).
			Padding(0, 1)

	StatsStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 2)

	LabelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(12)
	ValueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))

	StatusRunning = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#00ff88"))

	StatusPaused = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#ffaa00"))

	HelpStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)
)

// Stat renders a label/value row for the stats panel.
func Stat(label, value string) string {
	return lipgloss.JoinHorizontal(lipgloss.Top, LabelStyle.Render(label), ValueStyle.Render(value))
}
