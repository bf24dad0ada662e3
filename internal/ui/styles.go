// ABOUTME: Shared lipgloss styles for CLI output
// ABOUTME: NoColor swaps in blank styles for pipes and --no-color runs

package ui

import "github.com/charmbracelet/lipgloss"

var (
	Title    = lipgloss.NewStyle().Bold(true)
	Ok       = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	Warn     = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	Err      = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	Subtle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	Selected = lipgloss.NewStyle().Bold(true).Underline(true)
)

// NoColor strips color and attributes from the shared styles. Called
// once at startup when the user asks for plain output or stdout is not
// a terminal.
func NoColor() {
	blank := lipgloss.NewStyle()
	Title = blank
	Ok = blank
	Warn = blank
	Err = blank
	Subtle = blank
	Selected = blank
}
