package interview

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/mockprep/internal/session"
	"github.com/abhisek/mockprep/internal/ui/components"
	"github.com/abhisek/mockprep/internal/ui/theme"
)

func questionCounter(v turnView) string {
	return fmt.Sprintf("Q %d/%d", v.Index+1, v.Total)
}

// renderTurn renders the question, hint and answer input.
func (s *InterviewScreen) renderTurn(width, height int) string {
	v := s.view
	inner := max(width-8, 20)

	var b strings.Builder

	infoLeft := theme.Label.Render(fmt.Sprintf("  Question %d of %d", v.Index+1, v.Total))
	source := ""
	if v.Reached {
		source = "from your " + sourceName(v)
	}
	infoRight := lipgloss.NewStyle().Foreground(theme.TextDim).Render(source)

	infoLine := infoLeft
	if pad := width - lipgloss.Width(infoLeft) - lipgloss.Width(infoRight) - 4; pad > 0 {
		infoLine += strings.Repeat(" ", pad) + infoRight
	}
	b.WriteString(infoLine + "\n")

	progress := components.Meter{Value: v.Answered, Max: v.Total, Width: min(inner, 60)}
	b.WriteString("  " + progress.View() + "\n")
	b.WriteString(theme.Divider.Render(strings.Repeat("─", max(width-4, 0))) + "\n\n")

	qStyle := lipgloss.NewStyle().Width(inner).Foreground(theme.Text).Bold(true)
	if !v.Reached {
		qStyle = qStyle.Foreground(theme.Error).Bold(false)
	}
	b.WriteString(lipgloss.NewStyle().PaddingLeft(2).Render(qStyle.Render(v.Question)) + "\n\n")

	if v.Hint != "" {
		b.WriteString("  " + theme.Hint.Render("Hint: "+v.Hint) + "\n\n")
	}

	b.WriteString("  " + theme.Label.Render("Answer") + "\n")
	b.WriteString("  " + s.input.View() + "\n\n")

	if s.busy && s.busyLabel != "" {
		b.WriteString("  " + theme.Hint.Render(s.busyLabel) + "\n")
	} else if s.notice != "" {
		b.WriteString("  " + theme.Warning.Render(s.notice) + "\n")
	}

	return lipgloss.NewStyle().MaxHeight(height).Render(b.String())
}

func sourceName(v turnView) string {
	if v.Source == session.SourceResume {
		return "résumé"
	}
	return "study notes"
}

func renderLoading(width, height int, label string) string {
	if label == "" {
		label = "Loading..."
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
		theme.Hint.Render(label))
}

func renderQuitConfirm(width, height int) string {
	box := theme.Card.Render(
		theme.Title.Render("Quit this interview?") + "\n\n" +
			theme.Body.Render("Your answers so far will be discarded.") + "\n\n" +
			theme.Hint.Render("Y to quit, N to keep going"))
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box)
}
