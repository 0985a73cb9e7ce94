// Package setup is the screen that collects documents and session settings
// before an interview starts.
package setup

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/mockprep/internal/documents"
	"github.com/abhisek/mockprep/internal/interview"
	"github.com/abhisek/mockprep/internal/router"
	"github.com/abhisek/mockprep/internal/screen"
	"github.com/abhisek/mockprep/internal/screens"
	interviewscreen "github.com/abhisek/mockprep/internal/screens/interview"
	"github.com/abhisek/mockprep/internal/session"
	"github.com/abhisek/mockprep/internal/ui/components"
	"github.com/abhisek/mockprep/internal/ui/layout"
	"github.com/abhisek/mockprep/internal/ui/theme"
)

type field int

const (
	fieldPaths field = iota
	fieldLevel
	fieldQuestions
	fieldCount
)

// startedMsg reports the outcome of Controller.Start.
type startedMsg struct {
	Diagnostics []documents.Diagnostic
	Err         error
}

// SetupScreen collects the files, level and question count.
type SetupScreen struct {
	env       *screens.Env
	paths     components.TextInput
	questions components.TextInput
	level     session.Level
	focus     field

	busy        bool
	diagnostics []documents.Diagnostic
	errMsg      string
}

var _ screen.Screen = (*SetupScreen)(nil)
var _ screen.KeyHintProvider = (*SetupScreen)(nil)

// New creates a SetupScreen prefilled from the command line and config.
func New(env *screens.Env) *SetupScreen {
	paths := components.NewTextInput("notes.pdf resume.pdf", false, 0)
	paths.SetValue(strings.Join(env.Paths, " "))

	questions := components.NewTextInput("5", true, 2)
	count := env.Defaults.Questions
	if count == 0 {
		count = 5
	}
	questions.SetValue(strconv.Itoa(count))
	questions.Blur()

	return &SetupScreen{
		env:       env,
		paths:     paths,
		questions: questions,
		level:     env.Defaults.Level,
	}
}

func (s *SetupScreen) Init() tea.Cmd {
	return s.paths.Init()
}

func (s *SetupScreen) Title() string {
	return "New Interview"
}

func (s *SetupScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Tab", Description: "Next field"},
		{Key: "←→", Description: "Level"},
		{Key: "Enter", Description: "Start"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *SetupScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case startedMsg:
		s.busy = false
		s.diagnostics = msg.Diagnostics
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
			return s, nil
		}
		next := interviewscreen.New(s.env)
		return s, func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }

	case tea.KeyMsg:
		if s.busy {
			return s, nil
		}
		switch msg.String() {
		case "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "tab", "down":
			s.setFocus((s.focus + 1) % fieldCount)
			return s, nil
		case "shift+tab", "up":
			s.setFocus((s.focus + fieldCount - 1) % fieldCount)
			return s, nil
		case "enter":
			return s.start()
		case "left", "right":
			if s.focus == fieldLevel {
				s.toggleLevel()
				return s, nil
			}
		case "space", " ":
			if s.focus == fieldLevel {
				s.toggleLevel()
				return s, nil
			}
		}
	}

	var cmd tea.Cmd
	switch s.focus {
	case fieldPaths:
		s.paths, cmd = s.paths.Update(msg)
	case fieldQuestions:
		s.questions, cmd = s.questions.Update(msg)
	}
	return s, cmd
}

func (s *SetupScreen) toggleLevel() {
	if s.level == session.LevelJob {
		s.level = session.LevelInternship
	} else {
		s.level = session.LevelJob
	}
}

func (s *SetupScreen) setFocus(f field) {
	s.focus = f
	s.paths.Blur()
	s.questions.Blur()
	switch f {
	case fieldPaths:
		s.paths.Focus()
	case fieldQuestions:
		s.questions.Focus()
	}
}

// Settings returns the settings the form currently describes.
func (s *SetupScreen) Settings() (interview.Settings, error) {
	n, err := s.questions.NumericValue()
	if err != nil || n < session.MinQuestions || n > session.MaxQuestions {
		return interview.Settings{}, session.ErrQuestionCount
	}
	return interview.Settings{Level: s.level, Questions: n}, nil
}

func (s *SetupScreen) start() (screen.Screen, tea.Cmd) {
	settings, err := s.Settings()
	if err != nil {
		s.errMsg = err.Error()
		return s, nil
	}
	paths := strings.Fields(s.paths.Value())
	if len(paths) == 0 {
		s.errMsg = "add at least one PDF"
		return s, nil
	}

	s.busy = true
	s.errMsg = ""
	s.diagnostics = nil
	ctrl := s.env.Controller
	return s, func() tea.Msg {
		files, readDiags := documents.LoadFiles(paths)
		res, err := ctrl.Start(context.Background(), settings, files)
		diags := append(readDiags, res.Diagnostics...)
		if errors.Is(err, interview.ErrInsufficientContext) && len(files) == 0 {
			err = fmt.Errorf("none of the files could be read: %w", err)
		}
		return startedMsg{Diagnostics: diags, Err: err}
	}
}

func (s *SetupScreen) View(width, height int) string {
	var b strings.Builder
	b.WriteString("\n")

	label := func(f field, text string) string {
		if s.focus == f {
			return theme.Selected.Render("▸ " + text)
		}
		return theme.Label.Render("  " + text)
	}

	b.WriteString(label(fieldPaths, "Documents") + "\n")
	b.WriteString("    " + s.paths.View() + "\n")
	b.WriteString(theme.Hint.Render("    Space-separated paths. Names containing resume, cv or portfolio are treated as your résumé.") + "\n\n")

	b.WriteString(label(fieldLevel, "Level") + "\n")
	for _, lv := range []session.Level{session.LevelInternship, session.LevelJob} {
		mark := "( )"
		style := theme.Unselected
		if lv == s.level {
			mark = "(•)"
			style = theme.Selected
		}
		b.WriteString("    " + style.Render(mark+" "+lv.String()))
	}
	b.WriteString("\n\n")

	b.WriteString(label(fieldQuestions, fmt.Sprintf("Questions (%d-%d)", session.MinQuestions, session.MaxQuestions)) + "\n")
	b.WriteString("    " + s.questions.View() + "\n\n")

	if s.busy {
		b.WriteString(theme.Hint.Render("  Reading documents...") + "\n")
	}
	for _, d := range s.diagnostics {
		b.WriteString(theme.Warning.Render("  ! "+d.Message()) + "\n")
	}
	if s.errMsg != "" {
		b.WriteString(theme.Bad.Render("  "+s.errMsg) + "\n")
	}

	return lipgloss.NewStyle().Width(width).MaxHeight(height).Render(b.String())
}
