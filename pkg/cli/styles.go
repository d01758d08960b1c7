package cli

import "github.com/charmbracelet/lipgloss"

// Color palette
var (
	ColorSuccess = lipgloss.Color("#10B981") // Emerald
	ColorError   = lipgloss.Color("#EF4444") // Red
	ColorAccent  = lipgloss.Color("#06B6D4") // Cyan
)

// Status and section styles
var (
	OKStyle = lipgloss.NewStyle().
		Foreground(ColorSuccess).
		Bold(true)

	FailStyle = lipgloss.NewStyle().
		Foreground(ColorError).
		Bold(true)

	HeaderStyle = lipgloss.NewStyle().
		Foreground(ColorAccent).
		Bold(true)
)
