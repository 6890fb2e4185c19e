package main

import "github.com/charmbracelet/lipgloss"

var (
	accentColor  = lipgloss.Color("#87AF87") // Sage
	subtleColor  = lipgloss.Color("#666666") // Gray
	warningColor = lipgloss.Color("#D7AF5F") // Amber
	errorColor   = lipgloss.Color("#AF5F5F") // Terracotta

	// headerStyle for table header rows
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(accentColor)

	// titleStyle for the batch summary line
	titleStyle = lipgloss.NewStyle().
			Bold(true)

	// subtleStyle for secondary details
	subtleStyle = lipgloss.NewStyle().
			Foreground(subtleColor)

	// overdueStyle for tasks due before now
	overdueStyle = lipgloss.NewStyle().
			Foreground(warningColor)

	// errorStyle for error messages
	errorStyle = lipgloss.NewStyle().
			Foreground(errorColor)
)
