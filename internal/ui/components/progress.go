package components

import (
	"fmt"
	"image/color"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/mockprep/internal/ui/theme"
)

// Meter is a horizontal bar for a value out of Max, such as a skill score
// out of 10 or answered questions out of the planned count.
type Meter struct {
	Label string
	// LabelWidth pads the label so stacked meters line up.
	LabelWidth int
	Value      int
	Max        int
	Width      int
	// Graded colours the fill by the value's share of Max: rose below 40%,
	// orange below 70%, green above.
	Graded bool
	// ShowValue appends "value/max".
	ShowValue bool
}

// Fill returns how many of n cells the value covers.
func (m Meter) Fill(n int) int {
	if m.Max <= 0 || n <= 0 {
		return 0
	}
	return max(0, min(n, n*m.Value/m.Max))
}

func (m Meter) color() color.Color {
	if !m.Graded || m.Max <= 0 {
		return theme.Secondary
	}
	return theme.Grade(float64(m.Value) / float64(m.Max))
}

// View renders the meter.
func (m Meter) View() string {
	var b strings.Builder
	if m.Label != "" {
		label := m.Label
		if pad := m.LabelWidth - lipgloss.Width(label); pad > 0 {
			label += strings.Repeat(" ", pad)
		}
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Render(label) + "  ")
	}

	suffix := ""
	if m.ShowValue {
		suffix = fmt.Sprintf(" %2d/%d", m.Value, m.Max)
	}

	cells := max(4, m.Width-lipgloss.Width(b.String())-len(suffix))
	filled := m.Fill(cells)
	b.WriteString(lipgloss.NewStyle().Background(m.color()).Render(strings.Repeat(" ", filled)))
	b.WriteString(lipgloss.NewStyle().Background(theme.Border).Render(strings.Repeat(" ", cells-filled)))

	if suffix != "" {
		b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).Render(suffix))
	}
	return b.String()
}
