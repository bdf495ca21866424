package report

import "github.com/charmbracelet/lipgloss"

// Theme holds the styles and icons for the run summary.
type Theme struct {
	Success lipgloss.Style
	Fail    lipgloss.Style
	Warning lipgloss.Style
	Muted   lipgloss.Style
	Bold    lipgloss.Style

	PassIcon string
	FailIcon string
	WarnIcon string
}

// DefaultTheme returns the colored theme.
func DefaultTheme() Theme {
	return Theme{
		Success:  lipgloss.NewStyle().Foreground(lipgloss.Color("34")),  // green
		Fail:     lipgloss.NewStyle().Foreground(lipgloss.Color("196")), // red
		Warning:  lipgloss.NewStyle().Foreground(lipgloss.Color("214")), // orange
		Muted:    lipgloss.NewStyle().Foreground(lipgloss.Color("242")), // gray
		Bold:     lipgloss.NewStyle().Bold(true),
		PassIcon: "✓",
		FailIcon: "✗",
		WarnIcon: "⚠",
	}
}

// MonoTheme returns a theme without colors or Unicode icons.
func MonoTheme() Theme {
	plain := lipgloss.NewStyle()
	return Theme{
		Success:  plain,
		Fail:     plain,
		Warning:  plain,
		Muted:    plain,
		Bold:     plain,
		PassIcon: "ok",
		FailIcon: "!!",
		WarnIcon: "--",
	}
}
