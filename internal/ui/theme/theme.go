// Package theme holds the shared palette and text styles.
package theme

import (
	"image/color"

	"charm.land/lipgloss/v2"
)

// Palette: ink blue background, indigo for the interviewer, teal for the
// candidate.
var (
	Primary   = lipgloss.Color("#6366F1")
	Secondary = lipgloss.Color("#2DD4BF")
	Accent    = lipgloss.Color("#F59E0B")
	Success   = lipgloss.Color("#34D399")
	Error     = lipgloss.Color("#FB7185")
	Text      = lipgloss.Color("#E2E8F0")
	TextDim   = lipgloss.Color("#8B95A7")
	BgDark    = lipgloss.Color("#111827")
	BgCard    = lipgloss.Color("#1F2937")
	Border    = lipgloss.Color("#374151")
)

var (
	Title    = lipgloss.NewStyle().Bold(true).Foreground(Primary).Align(lipgloss.Center)
	Subtitle = lipgloss.NewStyle().Foreground(TextDim).Align(lipgloss.Center)
	Body     = lipgloss.NewStyle().Foreground(Text)
	Hint     = lipgloss.NewStyle().Foreground(TextDim).Italic(true)
	Label    = lipgloss.NewStyle().Foreground(Secondary).Bold(true)

	Card    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(Border).Padding(1, 2)
	Divider = lipgloss.NewStyle().Foreground(Border)

	Selected   = lipgloss.NewStyle().Foreground(Primary).Bold(true)
	Unselected = lipgloss.NewStyle().Foreground(Text)
	Bad        = lipgloss.NewStyle().Foreground(Error).Bold(true)
	Warning    = lipgloss.NewStyle().Foreground(Accent)
)

// Grade colors a share of the maximum score: below 0.4 is weak, below 0.7
// is fair.
func Grade(share float64) color.Color {
	switch {
	case share < 0.4:
		return Error
	case share < 0.7:
		return Accent
	}
	return Success
}
