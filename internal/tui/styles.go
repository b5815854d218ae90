package tui

import "github.com/charmbracelet/lipgloss"

const sidebarWidth = 28

var (
	accent = lipgloss.Color("62")
	muted  = lipgloss.Color("241")

	sidebarStyle = lipgloss.NewStyle().
			Width(sidebarWidth).
			BorderStyle(lipgloss.NormalBorder()).
			BorderRight(true).
			BorderForeground(muted).
			Padding(0, 1)

	sidebarItemStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	sidebarCurrentStyle = lipgloss.NewStyle().Foreground(accent).Bold(true)

	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(accent).Padding(0, 1)

	userLabelStyle      = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	assistantLabelStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("42"))
	timestampStyle      = lipgloss.NewStyle().Foreground(muted)

	composerStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(accent).
			Padding(0, 1)

	dropdownStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(muted)

	dropdownItemStyle     = lipgloss.NewStyle().Padding(0, 1)
	dropdownSelectedStyle = lipgloss.NewStyle().Padding(0, 1).Background(accent).Foreground(lipgloss.Color("230"))
	matchStyle            = lipgloss.NewStyle().Bold(true)
	usernameStyle         = lipgloss.NewStyle().Foreground(muted)

	statusStyle = lipgloss.NewStyle().Foreground(muted).Padding(0, 1)
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Padding(0, 1)
)
