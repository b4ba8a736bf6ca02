package output

import (
	"github.com/charmbracelet/lipgloss"
)

// Styles holds the lipgloss styles for terminal output.
var Styles = struct {
	FileHeader lipgloss.Style
	Error      lipgloss.Style
	Label      lipgloss.Style
	Value      lipgloss.Style
}{
	FileHeader: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),  // Cyan
	Error:      lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196")), // Red
	Label:      lipgloss.NewStyle().Foreground(lipgloss.Color("244")),            // Gray
	Value:      lipgloss.NewStyle().Bold(true),
}
