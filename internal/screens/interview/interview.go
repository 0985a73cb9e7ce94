// Package interview is the screen that runs the question and answer loop.
package interview

import (
	"context"
	"errors"
	"strings"

	tea "charm.land/bubbletea/v2"

	iv "github.com/abhisek/mockprep/internal/interview"
	"github.com/abhisek/mockprep/internal/questiongen"
	"github.com/abhisek/mockprep/internal/router"
	"github.com/abhisek/mockprep/internal/screen"
	"github.com/abhisek/mockprep/internal/screens"
	reportscreen "github.com/abhisek/mockprep/internal/screens/report"
	"github.com/abhisek/mockprep/internal/transcribe"
	"github.com/abhisek/mockprep/internal/ui/components"
	"github.com/abhisek/mockprep/internal/ui/layout"
)

// VoicePrefix starts an answer that should be read from an audio file.
const VoicePrefix = ":voice "

// InterviewScreen implements screen.Screen for an active session.
type InterviewScreen struct {
	env   *screens.Env
	input components.TextInput

	view   turnView
	loaded bool

	// busy is set while a command holds the controller.
	busy      bool
	busyLabel string

	notice      string
	quitConfirm bool
}

var _ screen.Screen = (*InterviewScreen)(nil)
var _ screen.KeyHintProvider = (*InterviewScreen)(nil)

// New creates an InterviewScreen for the controller's started session.
func New(env *screens.Env) *InterviewScreen {
	return &InterviewScreen{
		env:   env,
		input: components.NewTextInput("Type your answer, or :voice path/to/recording.wav", false, 0),
	}
}

func (s *InterviewScreen) Init() tea.Cmd {
	return tea.Batch(
		s.run("Preparing your first question...", nil),
		s.input.Init(),
	)
}

func (s *InterviewScreen) Title() string {
	return "Interview"
}

// Status shows the question counter in the header.
func (s *InterviewScreen) Status() string {
	if !s.loaded {
		return ""
	}
	return questionCounter(s.view)
}

func (s *InterviewScreen) KeyHints() []layout.KeyHint {
	if s.quitConfirm {
		return []layout.KeyHint{
			{Key: "Y", Description: "Discard session"},
			{Key: "N", Description: "Keep going"},
		}
	}
	hints := []layout.KeyHint{
		{Key: "Enter", Description: "Next"},
		{Key: "Ctrl+P", Description: "Previous"},
		{Key: "Ctrl+T", Description: "Hint"},
		{Key: "Ctrl+E", Description: "Finish"},
	}
	if s.loaded && !s.view.Reached {
		hints = append(hints, layout.KeyHint{Key: "Ctrl+R", Description: "Retry"})
	}
	return append(hints, layout.KeyHint{Key: "Esc", Description: "Quit"})
}

func (s *InterviewScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case turnMsg:
		return s.handleTurn(msg)
	case hintMsg:
		return s.handleHint(msg)
	case captureMsg:
		return s.handleCapture(msg)
	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	if !s.busy {
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *InterviewScreen) handleTurn(msg turnMsg) (screen.Screen, tea.Cmd) {
	s.busy = false
	if msg.InReport {
		next := reportscreen.New(s.env)
		return s, func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }
	}

	changed := !s.loaded || msg.View.Index != s.view.Index
	s.view = msg.View
	s.loaded = true
	if changed {
		s.input.SetValue(msg.View.Answer)
	}

	s.notice = ""
	switch {
	case msg.GenErr != nil:
		s.view.Question = questiongen.Degraded(msg.GenErr)
		s.notice = "Could not get a question. Press Enter or Ctrl+R to try again, or Ctrl+E to finish."
	case msg.OpErr != nil:
		s.notice = "Feedback for the last answer is unavailable right now. It will be retried in the report."
	}
	return s, nil
}

func (s *InterviewScreen) handleHint(msg hintMsg) (screen.Screen, tea.Cmd) {
	s.busy = false
	s.view.Hint = msg.Hint
	return s, nil
}

func (s *InterviewScreen) handleCapture(msg captureMsg) (screen.Screen, tea.Cmd) {
	s.busy = false
	s.view = msg.View
	s.input.SetValue(msg.View.Answer)
	switch {
	case errors.Is(msg.Err, transcribe.ErrLowConfidence):
		s.notice = "Didn't catch that. Please re-record your answer."
	case msg.Err != nil:
		s.notice = "Voice answer failed: " + msg.Err.Error()
	case !msg.Applied:
		s.notice = "That recording was already used."
	default:
		s.notice = "Voice answer transcribed. Edit it or press Enter."
	}
	return s, nil
}

func (s *InterviewScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	if s.busy {
		return s, nil
	}
	ctrl := s.env.Controller
	key := msg.String()

	if s.quitConfirm {
		switch key {
		case "y", "Y":
			s.quitConfirm = false
			s.busy = true
			return s, func() tea.Msg {
				ctrl.Reset(context.Background())
				return router.PopToRootMsg{}
			}
		case "n", "N", "esc":
			s.quitConfirm = false
		}
		return s, nil
	}

	switch key {
	case "esc":
		s.quitConfirm = true
		return s, nil
	case "enter":
		if !s.view.Reached {
			return s, s.run("Generating question...", nil)
		}
		value := s.input.Value()
		if strings.HasPrefix(value, VoicePrefix) {
			return s, s.capture(strings.TrimSpace(strings.TrimPrefix(value, VoicePrefix)))
		}
		ctrl.RecordAnswer(value)
		return s, s.run("Reviewing your answer...", ctrl.Advance)
	case "ctrl+p":
		s.recordTyped()
		if !ctrl.Retreat() {
			return s, nil
		}
		return s, s.run("", nil)
	case "ctrl+e":
		s.recordTyped()
		return s, s.run("Wrapping up...", ctrl.Finish)
	case "ctrl+t":
		if !s.view.Reached {
			return s, nil
		}
		return s, s.hint()
	case "ctrl+r":
		if s.view.Reached {
			return s, nil
		}
		return s, s.run("Generating question...", nil)
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	s.recordTyped()
	return s, cmd
}

// recordTyped mirrors the input into the session on every edit. Text that
// is, or is becoming, a voice command is left out.
func (s *InterviewScreen) recordTyped() {
	value := s.input.Value()
	if value != "" && (strings.HasPrefix(value, VoicePrefix) || strings.HasPrefix(VoicePrefix, value)) {
		return
	}
	s.env.Controller.RecordAnswer(value)
}

// run executes op, then observes the current turn so a new question is
// generated if needed. A nil op only observes.
func (s *InterviewScreen) run(label string, op func(context.Context) (bool, error)) tea.Cmd {
	s.busy = true
	s.busyLabel = label
	ctrl := s.env.Controller
	return func() tea.Msg {
		ctx := context.Background()
		var msg turnMsg
		if op != nil {
			_, msg.OpErr = op(ctx)
		}
		sess := ctrl.Session()
		if sess == nil || sess.InReport() {
			msg.InReport = sess != nil
			return msg
		}
		_, msg.GenErr = ctrl.Current(ctx)
		msg.View = snapshot(ctrl)
		return msg
	}
}

func (s *InterviewScreen) hint() tea.Cmd {
	s.busy = true
	s.busyLabel = "Thinking of a hint..."
	ctrl := s.env.Controller
	return func() tea.Msg {
		h, err := ctrl.Hint(context.Background())
		return hintMsg{Hint: h, Err: err}
	}
}

func (s *InterviewScreen) capture(path string) tea.Cmd {
	s.busy = true
	s.busyLabel = "Transcribing..."
	ctrl := s.env.Controller
	return func() tea.Msg {
		cp, err := iv.CaptureFromFile(path)
		var applied bool
		if err == nil {
			applied, err = ctrl.ApplyCapture(context.Background(), cp)
		}
		return captureMsg{View: snapshot(ctrl), Applied: applied, Err: err}
	}
}

func (s *InterviewScreen) View(width, height int) string {
	if s.quitConfirm {
		return renderQuitConfirm(width, height)
	}
	if !s.loaded {
		return renderLoading(width, height, s.busyLabel)
	}
	return s.renderTurn(width, height)
}

// snapshot copies the current turn for display.
func snapshot(ctrl *iv.Controller) turnView {
	sess := ctrl.Session()
	if sess == nil {
		return turnView{}
	}
	_, answered := sess.Counts()
	v := turnView{Index: sess.Cursor, Total: sess.PlannedCount, Answered: answered}
	turn := sess.Current()
	if turn == nil {
		return v
	}
	v.Reached = turn.Reached()
	v.Question = turn.Question.Value
	v.Source = turn.Source
	v.Answer = turn.Answer
	v.Hint = turn.Hint.Value
	return v
}
