// Package report is the screen that shows the compiled end-of-session
// report.
package report

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	rpt "github.com/abhisek/mockprep/internal/report"
	"github.com/abhisek/mockprep/internal/router"
	"github.com/abhisek/mockprep/internal/screen"
	"github.com/abhisek/mockprep/internal/screens"
	"github.com/abhisek/mockprep/internal/screens/review"
	"github.com/abhisek/mockprep/internal/ui/layout"
)

type compiledMsg struct {
	Report *rpt.Report
	Err    error
}

type exportedMsg struct {
	Path string
	Err  error
}

// ReportScreen shows the report and offers export and review.
type ReportScreen struct {
	env    *screens.Env
	report *rpt.Report
	offset int
	busy   bool

	reviewed bool
	notice   string
	errMsg   string
}

var _ screen.Screen = (*ReportScreen)(nil)
var _ screen.KeyHintProvider = (*ReportScreen)(nil)

// New creates a ReportScreen. The report is compiled in Init.
func New(env *screens.Env) *ReportScreen {
	return &ReportScreen{env: env}
}

func (s *ReportScreen) Init() tea.Cmd {
	s.busy = true
	ctrl := s.env.Controller
	return func() tea.Msg {
		r, err := ctrl.Report(context.Background())
		return compiledMsg{Report: r, Err: err}
	}
}

func (s *ReportScreen) Title() string {
	return "Interview Report"
}

func (s *ReportScreen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{{Key: "↑↓", Description: "Scroll"}}
	if !s.reviewed {
		hints = append(hints, layout.KeyHint{Key: "R", Description: "Rate session"})
	}
	if s.report != nil && s.report.Incomplete() {
		hints = append(hints, layout.KeyHint{Key: "Ctrl+R", Description: "Retry"})
	}
	return append(hints,
		layout.KeyHint{Key: "X", Description: "Export"},
		layout.KeyHint{Key: "Esc", Description: "Done"},
	)
}

func (s *ReportScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case compiledMsg:
		s.busy = false
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
			return s, nil
		}
		s.report = msg.Report
		s.notice = ""
		if s.report.Incomplete() {
			s.notice = "Some feedback could not be generated. Press Ctrl+R to retry."
		}
		return s, nil

	case exportedMsg:
		s.busy = false
		if msg.Err != nil {
			s.notice = "Export failed: " + msg.Err.Error()
		} else {
			s.notice = "Report saved to " + msg.Path
		}
		return s, nil

	case review.SavedMsg:
		s.reviewed = true
		s.notice = "Thanks! Your review was saved."
		return s, nil

	case tea.KeyMsg:
		if s.busy {
			return s, nil
		}
		switch msg.String() {
		case "esc", "q", "enter":
			s.busy = true
			ctrl := s.env.Controller
			return s, func() tea.Msg {
				ctrl.Reset(context.Background())
				return router.PopToRootMsg{}
			}
		case "up", "k":
			s.offset = max(0, s.offset-1)
		case "down", "j":
			s.offset++
		case "pgup":
			s.offset = max(0, s.offset-10)
		case "pgdown", "space":
			s.offset += 10
		case "home", "g":
			s.offset = 0
		case "r":
			if s.report != nil && !s.reviewed {
				next := review.New(s.env)
				return s, func() tea.Msg { return router.PushScreenMsg{Screen: next} }
			}
		case "x":
			if s.report != nil {
				return s, s.export()
			}
		case "ctrl+r":
			if s.report != nil && s.report.Incomplete() {
				s.busy = true
				s.notice = "Retrying..."
				ctrl := s.env.Controller
				return s, func() tea.Msg {
					r, err := ctrl.RetryReport(context.Background())
					return compiledMsg{Report: r, Err: err}
				}
			}
		}
	}
	return s, nil
}

// ExportPath returns where the report will be written.
func (s *ReportScreen) ExportPath() string {
	if s.env.ExportPath != "" {
		return s.env.ExportPath
	}
	return fmt.Sprintf("mockprep-report-%s.md", time.Now().Format("2006-01-02-1504"))
}

func (s *ReportScreen) export() tea.Cmd {
	s.busy = true
	path := s.ExportPath()
	md := s.report.Markdown()
	return func() tea.Msg {
		err := os.WriteFile(path, []byte(md), 0o644)
		return exportedMsg{Path: path, Err: err}
	}
}

func (s *ReportScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
			errorStyle.Render("Could not build the report: "+s.errMsg))
	}
	if s.report == nil {
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
			dimStyle.Render("Compiling your report..."))
	}

	lines := strings.Split(renderReport(s.report, width), "\n")
	footer := ""
	if s.notice != "" {
		footer = noticeStyle.Render("  " + s.notice)
	}
	visible := max(height-lipgloss.Height(footer), 1)

	maxOffset := max(len(lines)-visible, 0)
	if s.offset > maxOffset {
		s.offset = maxOffset
	}
	end := min(s.offset+visible, len(lines))
	out := strings.Join(lines[s.offset:end], "\n")
	if footer != "" {
		out += "\n" + footer
	}
	return out
}
