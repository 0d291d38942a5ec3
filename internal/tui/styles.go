package tui

import "github.com/charmbracelet/lipgloss"

var (
	milkBlue = lipgloss.Color("#7B9ACC")
	white    = lipgloss.Color("#FFFFFF")

	titleStyle = lipgloss.NewStyle().
			Background(milkBlue).
			Foreground(white).
			Bold(true).
			Padding(0, 1)

	dialogStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(milkBlue).
			Padding(1, 2)

	dialogTitleStyle = lipgloss.NewStyle().Bold(true)

	helpStyle = lipgloss.NewStyle().Faint(true)

	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
)
