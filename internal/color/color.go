package color

import "github.com/charmbracelet/lipgloss"

// Initialize sets the background assumption for adaptive colors. Call
// once at startup before any styled output is rendered.
func Initialize(isDarkMode bool) {
	lipgloss.SetHasDarkBackground(isDarkMode)
}

// Semantic styles for command output. lipgloss downgrades or drops
// colors automatically for limited terminals and honors NO_COLOR.
var (
	// Success marks completed work and running forwards.
	Success = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "28", Dark: "42"})

	// Warning marks remaps, stopped forwards, and non-fatal failures.
	Warning = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "130", Dark: "214"})

	// Error marks per-token failures in batch commands.
	Error = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "160", Dark: "196"})

	// Accent highlights ids, ports, and field labels.
	Accent = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "31", Dark: "45"})

	// Dim renders secondary hints and ids inside confirmations.
	Dim = lipgloss.NewStyle().Faint(true)

	// Bold renders list headers and indices.
	Bold = lipgloss.NewStyle().Bold(true)
)
