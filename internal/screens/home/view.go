package home

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/mockprep/internal/ui/components"
	"github.com/abhisek/mockprep/internal/ui/layout"
	"github.com/abhisek/mockprep/internal/ui/theme"
)

const titleFull = `█▀▄▀█ █▀█ █▀▀ █▄▀ █▀█ █▀█ █▀▀ █▀█
█ ▀ █ █▄█ █▄▄ █ █ █▀▀ █▀▄ ██▄ █▀▀`

const titleCompact = "M O C K P R E P"

const buttonWidth = 22

func (h *HomeScreen) View(width, height int) string {
	// height is the content area; add back header and footer
	compact := layout.IsCompactHeight(height+layout.HeaderHeight+layout.FooterHeight) || layout.IsCompactWidth(width)
	cw := components.ContentWidth(width)

	var sections []string
	sections = append(sections, renderTitle(cw, compact))
	if !compact {
		sections = append(sections, center(RenderMascot(h.mascot()), cw))
	}
	sections = append(sections, components.Card(h.statsLine(compact), cw))
	if h.env.Warning != "" {
		sections = append(sections, lipgloss.NewStyle().
			Foreground(theme.Accent).Width(cw).Align(lipgloss.Center).
			Render("⚠ "+h.env.Warning))
	}
	sections = append(sections, center(components.MenuButtons(h.menu, buttonWidth, compact), cw))
	if h.latest != "" {
		sections = append(sections, lipgloss.NewStyle().
			Foreground(theme.TextDim).Width(cw).Align(lipgloss.Center).
			Render(fmt.Sprintf("New version %s available. Run mockprep update.", h.latest)))
	}

	sep := "\n\n"
	if compact {
		sep = "\n"
	}
	return components.Frame(strings.Join(sections, sep), width, height)
}

func renderTitle(cw int, compact bool) string {
	art := titleFull
	if compact {
		art = titleCompact
	}
	return center(lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(art), cw)
}

func (h *HomeScreen) statsLine(compact bool) string {
	count := lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true)
	rating := lipgloss.NewStyle().Foreground(theme.Accent).Bold(true)
	score := lipgloss.NewStyle().Foreground(theme.Success).Bold(true)

	st := h.stats
	if st.Count == 0 {
		return lipgloss.NewStyle().Foreground(theme.TextDim).Render("No sessions rated yet")
	}
	if compact {
		return fmt.Sprintf("%s %s %s",
			count.Render(fmt.Sprintf("#%d", st.Count)),
			rating.Render(fmt.Sprintf("★%.1f", st.AvgRating)),
			score.Render(fmt.Sprintf("◆%.1f", st.AvgScore)))
	}
	return fmt.Sprintf("%s  %s  %s",
		count.Render(fmt.Sprintf("%d SESSIONS", st.Count)),
		rating.Render(fmt.Sprintf("★ %.1f RATING", st.AvgRating)),
		score.Render(fmt.Sprintf("◆ %.1f SCORE", st.AvgScore)))
}

func center(s string, cw int) string {
	return lipgloss.NewStyle().Width(cw).Align(lipgloss.Center).Render(s)
}
