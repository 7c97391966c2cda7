// Package style provides the colors and icons shared by the logger and the renderer.
package style

import "github.com/charmbracelet/lipgloss"

// Colors by severity.
var (
	Slate  = lipgloss.Color("#667085")
	Red    = lipgloss.Color("#D93025")
	Yellow = lipgloss.Color("#F59E0B")
)

// Icons.
const (
	// Check marks a completed step.
	Check = "✓"
	// Cross marks a failed step or an error.
	Cross = "✗"
	// Warning prefixes warnings.
	Warning = "!"
	// Arrow separates pipeline steps and error causes.
	Arrow = "→"
)
