// Package style provides shared UI styling primitives for consistent visual
// presentation across the CLI.
package style

import "github.com/charmbracelet/lipgloss"

// Brand Colors.
var (
	Slate  = lipgloss.Color("#667085")
	Green  = lipgloss.Color("#22A06B")
	Red    = lipgloss.Color("#D93025")
	Yellow = lipgloss.Color("#F59E0B")
)

// Status token styles used by context summaries.
var (
	NotFound = lipgloss.NewStyle().Foreground(Red)
	Local    = lipgloss.NewStyle().Foreground(Yellow)
	Muted    = lipgloss.NewStyle().Foreground(Slate)
)
