package tui

import "github.com/charmbracelet/lipgloss"

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("220")).Bold(true)
	cursorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("213")).Bold(true)
	panelStyle  = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("60")).
			Padding(0, 1)
	statusOK   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("82"))
	statusWarn = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("208"))
)
