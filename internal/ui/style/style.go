// Package style holds the colours and glyphs shared by the CLI output.
package style

import "github.com/charmbracelet/lipgloss"

// Colours.
var (
	Slate  = lipgloss.Color("#667085")
	Green  = lipgloss.Color("#22A06B")
	Red    = lipgloss.Color("#D93025")
	Yellow = lipgloss.Color("#F59E0B")
)

// Glyphs.
const (
	Check   = "✓"
	Cross   = "✗"
	Warning = "!"
)

// Success renders s in green, prefixed with a check mark.
func Success(s string) string {
	return lipgloss.NewStyle().Foreground(Green).Render(Check + " " + s)
}

// Failure renders s in red, prefixed with a cross.
func Failure(s string) string {
	return lipgloss.NewStyle().Foreground(Red).Render(Cross + " " + s)
}
