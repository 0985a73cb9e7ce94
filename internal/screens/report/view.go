package report

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/mockprep/internal/questiongen"
	rpt "github.com/abhisek/mockprep/internal/report"
	"github.com/abhisek/mockprep/internal/ui/components"
	"github.com/abhisek/mockprep/internal/ui/theme"
)

var (
	dimStyle    = lipgloss.NewStyle().Foreground(theme.TextDim)
	errorStyle  = lipgloss.NewStyle().Foreground(theme.Error)
	noticeStyle = lipgloss.NewStyle().Foreground(theme.Success)
)

// renderReport lays the whole report out at the given width. The screen
// scrolls through the result line by line.
func renderReport(r *rpt.Report, width int) string {
	inner := max(width-8, 20)
	block := lipgloss.NewStyle().Width(inner).PaddingLeft(4)

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Width(width).Align(lipgloss.Center).
		Foreground(theme.Primary).Bold(true).Render("Interview complete!"))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Width(width).Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render(fmt.Sprintf("%s level   %d of %d answered   average score %.1f",
			r.Level, r.Answered(), len(r.Entries), r.AverageScore)))
	b.WriteString("\n\n")

	b.WriteString("  " + theme.Label.Render("Skill scores"))
	if r.ScoresFallback {
		b.WriteString(dimStyle.Render("  (neutral defaults, rating unavailable)"))
	}
	b.WriteString("\n")
	for i, d := range questiongen.Dimensions {
		bar := components.Meter{Label: d, LabelWidth: 16, Value: r.Scores[i], Max: 10, Width: min(inner, 62), Graded: true, ShowValue: true}
		b.WriteString("    " + bar.View() + "\n")
	}
	b.WriteString("\n")

	if len(r.Entries) == 0 {
		b.WriteString(dimStyle.Italic(true).Render("  No questions were reached in this session.") + "\n")
	}

	for _, e := range r.Entries {
		b.WriteString(theme.Divider.Render("  "+strings.Repeat("─", min(inner, 72))) + "\n")
		title := fmt.Sprintf("Question %d · %s", e.Index+1, e.Source)
		b.WriteString("  " + theme.Label.Render(title) + "\n")
		b.WriteString(block.Foreground(theme.Text).Bold(true).Render(e.Question) + "\n\n")

		if e.Skipped {
			b.WriteString("  " + lipgloss.NewStyle().Foreground(theme.Accent).Render("Skipped. Here is a model answer:") + "\n")
			b.WriteString(block.Foreground(theme.Text).Render(e.IdealAnswer) + "\n\n")
			continue
		}
		b.WriteString("  " + dimStyle.Render("Your answer") + "\n")
		b.WriteString(block.Foreground(theme.TextDim).Render(e.Answer) + "\n")
		b.WriteString("  " + dimStyle.Render("Feedback") + "\n")
		b.WriteString(block.Foreground(theme.Text).Render(e.Evaluation) + "\n\n")
	}
	return b.String()
}
