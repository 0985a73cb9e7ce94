package interview

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/mockprep/internal/documents"
	iv "github.com/abhisek/mockprep/internal/interview"
	"github.com/abhisek/mockprep/internal/questiongen"
	"github.com/abhisek/mockprep/internal/router"
	"github.com/abhisek/mockprep/internal/screens"
	"github.com/abhisek/mockprep/internal/session"
)

var plainText = documents.ReaderFunc(func(_ string, data []byte) (string, error) {
	return string(data), nil
})

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func ctrlKey(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Mod: tea.ModCtrl}
}

func testInterviewScreen(t *testing.T, gen questiongen.Generator, n int) *InterviewScreen {
	t.Helper()
	classifier := documents.NewClassifier(plainText, documents.DefaultConfig(), nil)
	ctrl := iv.New(gen, classifier)
	files := []documents.File{{Name: "notes.pdf", Data: []byte("Binary search halves the interval on every step.")}}
	if _, err := ctrl.Start(context.Background(), iv.Settings{Level: session.LevelJob, Questions: n}, files); err != nil {
		t.Fatalf("Start: %v", err)
	}
	return New(&screens.Env{Controller: ctrl})
}

// load runs the first observation the way Init would.
func load(t *testing.T, s *InterviewScreen) {
	t.Helper()
	settle(t, s, s.run("", nil))
}

// settle executes cmd and feeds its message back to the screen.
func settle(t *testing.T, s *InterviewScreen, cmd tea.Cmd) tea.Msg {
	t.Helper()
	if cmd == nil {
		t.Fatal("expected a command")
	}
	msg := cmd()
	_, next := s.Update(msg)
	if next != nil {
		return next()
	}
	return msg
}

func typeText(s *InterviewScreen, text string) {
	for _, r := range text {
		s.Update(keyPress(r))
	}
}

func TestInterviewScreen_FirstQuestion(t *testing.T) {
	s := testInterviewScreen(t, &questiongen.Stub{}, 3)
	load(t, s)

	if !s.view.Reached {
		t.Fatal("expected the first turn to be reached")
	}
	view := s.View(100, 30)
	if !strings.Contains(view, "Study question 1?") {
		t.Errorf("view should show the question, got:\n%s", view)
	}
	if got := s.Status(); got != "Q 1/3" {
		t.Errorf("Status = %q, want %q", got, "Q 1/3")
	}
}

func TestInterviewScreen_TypingRecordsAnswer(t *testing.T) {
	s := testInterviewScreen(t, &questiongen.Stub{}, 3)
	load(t, s)

	typeText(s, "log n")
	if got := s.env.Controller.Session().Current().Answer; got != "log n" {
		t.Errorf("Answer = %q, want %q", got, "log n")
	}
}

func TestInterviewScreen_EnterAdvances(t *testing.T) {
	gen := &questiongen.Stub{}
	s := testInterviewScreen(t, gen, 3)
	load(t, s)

	typeText(s, "log n")
	_, cmd := s.Update(specialKey(tea.KeyEnter))
	if !s.busy {
		t.Error("screen should be busy while advancing")
	}
	settle(t, s, cmd)

	if s.view.Index != 1 {
		t.Errorf("Index = %d, want 1", s.view.Index)
	}
	if s.input.Value() != "" {
		t.Errorf("input should be cleared for a new turn, got %q", s.input.Value())
	}
	if gen.Calls("Evaluate") != 1 {
		t.Errorf("Evaluate calls = %d, want 1", gen.Calls("Evaluate"))
	}
}

func TestInterviewScreen_KeysIgnoredWhileBusy(t *testing.T) {
	s := testInterviewScreen(t, &questiongen.Stub{}, 3)
	load(t, s)

	s.Update(specialKey(tea.KeyEnter))
	_, cmd := s.Update(specialKey(tea.KeyEnter))
	if cmd != nil {
		t.Error("second Enter should be ignored while busy")
	}
}

func TestInterviewScreen_RetreatKeepsAnswer(t *testing.T) {
	s := testInterviewScreen(t, &questiongen.Stub{}, 3)
	load(t, s)
	typeText(s, "first")
	_, cmd := s.Update(specialKey(tea.KeyEnter))
	settle(t, s, cmd)

	_, cmd = s.Update(ctrlKey('p'))
	settle(t, s, cmd)

	if s.view.Index != 0 {
		t.Fatalf("Index = %d, want 0", s.view.Index)
	}
	if s.input.Value() != "first" {
		t.Errorf("input = %q, want the earlier answer", s.input.Value())
	}
}

func TestInterviewScreen_LastAdvanceHandsOverToReport(t *testing.T) {
	s := testInterviewScreen(t, &questiongen.Stub{}, 1)
	load(t, s)

	typeText(s, "answer")
	_, cmd := s.Update(specialKey(tea.KeyEnter))
	msg := settle(t, s, cmd)

	if _, ok := msg.(router.ReplaceScreenMsg); !ok {
		t.Errorf("expected ReplaceScreenMsg, got %T", msg)
	}
}

func TestInterviewScreen_FinishEarly(t *testing.T) {
	s := testInterviewScreen(t, &questiongen.Stub{}, 5)
	load(t, s)

	_, cmd := s.Update(ctrlKey('e'))
	msg := settle(t, s, cmd)
	if _, ok := msg.(router.ReplaceScreenMsg); !ok {
		t.Errorf("expected ReplaceScreenMsg, got %T", msg)
	}
	if !s.env.Controller.Session().InReport() {
		t.Error("session should be in the report phase")
	}
}

func TestInterviewScreen_GenerationFailure(t *testing.T) {
	fail := true
	gen := &questiongen.Stub{
		QuestionFunc: func(questiongen.QuestionInput) (string, error) {
			if fail {
				return "", errors.New("model offline")
			}
			return "Recovered question?", nil
		},
	}
	s := testInterviewScreen(t, gen, 2)
	load(t, s)

	if s.view.Reached {
		t.Fatal("turn should not be reached after a failure")
	}
	if !strings.Contains(s.view.Question, "model offline") {
		t.Errorf("expected degraded text, got %q", s.view.Question)
	}

	fail = false
	_, cmd := s.Update(ctrlKey('r'))
	settle(t, s, cmd)
	if s.view.Question != "Recovered question?" {
		t.Errorf("Question = %q after retry", s.view.Question)
	}
}

func TestInterviewScreen_EnterRetriesFailedQuestion(t *testing.T) {
	fail := true
	gen := &questiongen.Stub{
		QuestionFunc: func(questiongen.QuestionInput) (string, error) {
			if fail {
				return "", errors.New("model offline")
			}
			return "Recovered question?", nil
		},
	}
	s := testInterviewScreen(t, gen, 1)
	load(t, s)

	_, cmd := s.Update(specialKey(tea.KeyEnter))
	settle(t, s, cmd)
	if s.env.Controller.Session().Cursor != 0 {
		t.Fatal("Enter must not move past a turn without a question")
	}
	if s.view.Reached {
		t.Fatal("turn should still be unreached")
	}

	fail = false
	_, cmd = s.Update(specialKey(tea.KeyEnter))
	settle(t, s, cmd)
	if s.view.Question != "Recovered question?" {
		t.Errorf("Question = %q after Enter", s.view.Question)
	}
	if s.env.Controller.Session().Cursor != 0 {
		t.Error("retrying should generate, not advance")
	}
}

func TestInterviewScreen_Hint(t *testing.T) {
	s := testInterviewScreen(t, &questiongen.Stub{}, 2)
	load(t, s)

	_, cmd := s.Update(ctrlKey('t'))
	settle(t, s, cmd)
	if s.view.Hint != "Think about the basics." {
		t.Errorf("Hint = %q", s.view.Hint)
	}
}

func TestInterviewScreen_QuitConfirm(t *testing.T) {
	s := testInterviewScreen(t, &questiongen.Stub{}, 2)
	load(t, s)

	s.Update(specialKey(tea.KeyEscape))
	if !s.quitConfirm {
		t.Fatal("Esc should ask for confirmation")
	}
	_, cmd := s.Update(keyPress('n'))
	if cmd != nil || s.quitConfirm {
		t.Error("n should dismiss the prompt")
	}

	s.Update(specialKey(tea.KeyEscape))
	_, cmd = s.Update(keyPress('y'))
	if cmd == nil {
		t.Fatal("y should return a command")
	}
	if _, ok := cmd().(router.PopToRootMsg); !ok {
		t.Error("expected PopToRootMsg")
	}
	if s.env.Controller.Session() != nil {
		t.Error("session should be discarded")
	}
}

func TestInterviewScreen_VoiceMissingFile(t *testing.T) {
	s := testInterviewScreen(t, &questiongen.Stub{}, 2)
	load(t, s)

	typeText(s, VoicePrefix+"/nonexistent/recording.wav")
	if s.env.Controller.Session().Current().Answer != "" {
		t.Error("a voice command should not be recorded as the answer")
	}
	_, cmd := s.Update(specialKey(tea.KeyEnter))
	settle(t, s, cmd)
	if !strings.HasPrefix(s.notice, "Voice answer failed") {
		t.Errorf("notice = %q", s.notice)
	}
}

func TestInterviewScreen_KeyHints(t *testing.T) {
	s := testInterviewScreen(t, &questiongen.Stub{}, 2)
	load(t, s)
	if len(s.KeyHints()) != 5 {
		t.Errorf("KeyHints length = %d, want 5", len(s.KeyHints()))
	}
}
