// Package layout frames every screen between a header and a key-hint footer.
package layout

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/mockprep/internal/ui/theme"
)

const (
	MinWidth  = 80
	MinHeight = 24

	HeaderHeight = 3
	FooterHeight = 3

	CompactWidthThreshold  = 100
	CompactHeightThreshold = 30

	brand   = "MockPrep"
	hintGap = "   "
)

// KeyHint is one key binding shown in the footer.
type KeyHint struct {
	Key         string
	Description string
}

func (h KeyHint) render() string {
	return lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(h.Key) + " " +
		lipgloss.NewStyle().Foreground(theme.TextDim).Render(h.Description)
}

func IsCompactWidth(width int) bool {
	return width < CompactWidthThreshold
}

func IsCompactHeight(height int) bool {
	return height < CompactHeightThreshold
}

// IsTooSmall reports whether the terminal is below the minimum size.
func IsTooSmall(width, height int) bool {
	return width < MinWidth || height < MinHeight
}

// RenderMinSizeMessage asks the user to enlarge the terminal.
func RenderMinSizeMessage(width, height int) string {
	title := lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).Render("Terminal too small")
	body := lipgloss.NewStyle().Foreground(theme.Text).Render(
		fmt.Sprintf("Resize to at least %d x %d.", MinWidth, MinHeight))
	now := lipgloss.NewStyle().Foreground(theme.TextDim).Render(
		fmt.Sprintf("Current size: %d x %d", width, height))
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center, title, "", body, now))
}

// RenderHeader shows the brand on the left, the screen title centred and
// status, such as the question counter, on the right.
func RenderHeader(title, status string, width int) string {
	left := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(" " + brand)
	center := lipgloss.NewStyle().Foreground(theme.Text).Render(title)
	right := lipgloss.NewStyle().Foreground(theme.Accent).Render(status + " ")
	return bar(spread(left, center, right, max(width-2, 0)), width)
}

// spread places center in the middle of width cells with left and right at
// the edges. Every part keeps at least one space of separation.
func spread(left, center, right string, width int) string {
	lw, cw, rw := lipgloss.Width(left), lipgloss.Width(center), lipgloss.Width(right)
	leftGap := max((width-cw)/2-lw, 1)
	rightGap := max(width-lw-leftGap-cw-rw, 1)
	return left + strings.Repeat(" ", leftGap) + center + strings.Repeat(" ", rightGap) + right
}

// FitHints drops hints from the end until the rest fit in width cells. The
// last hint, normally Quit, is kept whenever anything fits.
func FitHints(hints []KeyHint, width int) []KeyHint {
	if len(hints) == 0 {
		return nil
	}
	last := hints[len(hints)-1]
	kept := hints
	for len(kept) > 1 && hintsWidth(kept) > width {
		kept = append(kept[:len(kept)-2:len(kept)-2], last)
	}
	if hintsWidth(kept) > width {
		return nil
	}
	return kept
}

func hintsWidth(hints []KeyHint) int {
	w := 0
	for i, h := range hints {
		if i > 0 {
			w += len(hintGap)
		}
		w += lipgloss.Width(h.Key) + 1 + lipgloss.Width(h.Description)
	}
	return w
}

// RenderFooter renders as many key hints as fit.
func RenderFooter(hints []KeyHint, width int) string {
	fitted := FitHints(hints, max(width-6, 0))
	parts := make([]string, 0, len(fitted))
	for _, h := range fitted {
		parts = append(parts, h.render())
	}
	return bar("  "+strings.Join(parts, hintGap), width)
}

func bar(content string, width int) string {
	return lipgloss.NewStyle().
		Width(width).
		Background(theme.BgCard).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Render(content)
}

// ClipLines keeps at most n lines of s.
func ClipLines(s string, n int) string {
	if n <= 0 {
		return ""
	}
	lines := strings.Split(s, "\n")
	if len(lines) <= n {
		return s
	}
	return strings.Join(lines[:n], "\n")
}

// RenderFrame stacks header, content and footer, padding or clipping the
// content to the height left between them.
func RenderFrame(header, content, footer string, width, height int) string {
	contentHeight := max(height-lipgloss.Height(header)-lipgloss.Height(footer), 0)
	body := lipgloss.NewStyle().
		Width(width).
		Height(contentHeight).
		Render(ClipLines(content, contentHeight))
	return header + "\n" + body + "\n" + footer
}
