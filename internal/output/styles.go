package output

import "charm.land/lipgloss/v2"

var (
	addedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("82")).Bold(true)
	skipStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	warnStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true)
	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	pathStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("62"))
	mutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)
