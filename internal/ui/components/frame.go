package components

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/mockprep/internal/ui/theme"
)

// ContentWidth returns the inner width shared by the boxes of a framed
// screen, so they line up.
func ContentWidth(frameWidth int) int {
	// border (2) + inner padding (4)
	return min(max(frameWidth-6, 20), 60)
}

// Frame wraps content in a double border and centers it in the area.
func Frame(content string, width, height int) string {
	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Primary).
		Width(width-2).
		Height(height-2).
		Align(lipgloss.Center, lipgloss.Center).
		Render(content)
}

// Card wraps content in a rounded box at the given content width.
func Card(content string, cw int) string {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Width(cw-2).
		Align(lipgloss.Center).
		Padding(0, 1).
		Render(content)
}

// MenuButtons renders menu labels as a column of bordered buttons. When
// compact is set they become plain lines for short terminals.
func MenuButtons(m Menu, buttonWidth int, compact bool) string {
	lines := make([]string, 0, len(m.Items))
	for i, item := range m.Items {
		selected := i == m.Selected && !item.Disabled
		lines = append(lines, menuButton(item.Label, selected, item.Disabled, buttonWidth, compact))
	}
	return strings.Join(lines, "\n")
}

func menuButton(label string, selected, disabled bool, width int, compact bool) string {
	style := lipgloss.NewStyle().Foreground(theme.Text)
	switch {
	case disabled:
		style = style.Foreground(theme.TextDim)
	case selected:
		style = style.Bold(true).Foreground(theme.BgDark).Background(theme.Primary)
		label = "▸ " + label
	}

	if compact {
		return style.Render(" " + label + " ")
	}

	border := theme.Border
	if selected {
		border = theme.Primary
	}
	return style.
		Width(width).
		Align(lipgloss.Center).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Padding(0, 1).
		Render(label)
}
