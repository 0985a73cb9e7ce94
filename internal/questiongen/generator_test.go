package questiongen

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/abhisek/mockprep/internal/llm"
	"github.com/abhisek/mockprep/internal/session"
)

func studyInput(asked ...string) QuestionInput {
	return QuestionInput{
		Level:   session.LevelJob,
		Source:  session.SourceStudy,
		Primary: "--- Study Source: os.pdf ---\nProcesses, threads, scheduling.",
		Asked:   asked,
	}
}

func TestQuestion_StoresCleanedText(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockText(`Question: "How does a scheduler pick the next thread?"`))
	gen := New(mock, DefaultConfig(), nil)

	q, err := gen.Question(context.Background(), studyInput())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if q != "How does a scheduler pick the next thread?" {
		t.Fatalf("q = %q", q)
	}

	req := mock.LastCall()
	if req.Temperature != 0.8 {
		t.Errorf("question temperature = %v, want 0.8", req.Temperature)
	}
	if !strings.Contains(req.Messages[0].Content, "Processes, threads, scheduling.") {
		t.Error("prompt missing primary material")
	}
	if !strings.Contains(req.Messages[0].Content, "full-time engineering job") {
		t.Error("prompt missing level phrasing")
	}
}

// A model that keeps repeating an earlier question is caught even though
// the exclusion list was in the prompt.
func TestQuestion_RejectsRepeats(t *testing.T) {
	asked := []string{"What is a race condition?", "Explain virtual memory."}
	mock := llm.NewMockProvider(
		llm.MockText("what is a race condition"),
		llm.MockText("What is a race-condition?"),
	)
	gen := New(mock, DefaultConfig(), nil)

	_, err := gen.Question(context.Background(), studyInput(asked...))
	if !errors.Is(err, ErrDuplicateQuestion) {
		t.Fatalf("expected ErrDuplicateQuestion, got %v", err)
	}
	if mock.CallCount() != 2 {
		t.Fatalf("expected one corrective re-prompt, got %d calls", mock.CallCount())
	}

	first := mock.Calls[0].Messages[0].Content
	for i, q := range asked {
		want := fmt.Sprintf("%d. %s", i+1, q)
		if !strings.Contains(first, want) {
			t.Errorf("prompt missing exclusion entry %q", want)
		}
	}
	retry := mock.Calls[1].Messages
	if len(retry) != 3 || retry[1].Role != llm.RoleAssistant {
		t.Fatalf("re-prompt should replay the rejected reply, got %+v", retry)
	}
}

func TestQuestion_RepeatThenFresh(t *testing.T) {
	mock := llm.NewMockProvider(
		llm.MockText("What is a race condition?"),
		llm.MockText("How would you detect a deadlock in production?"),
	)
	gen := New(mock, DefaultConfig(), nil)

	q, err := gen.Question(context.Background(), studyInput("What is a race condition?"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if q != "How would you detect a deadlock in production?" {
		t.Fatalf("q = %q", q)
	}
}

func TestQuestion_PreambleAcceptedByDefault(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockText("Sure! Here is a question: what is a mutex?"))
	gen := New(mock, DefaultConfig(), nil)

	q, err := gen.Question(context.Background(), studyInput())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if q != "Sure! Here is a question: what is a mutex?" {
		t.Fatalf("raw text should be kept, got %q", q)
	}
	if mock.CallCount() != 1 {
		t.Fatalf("expected 1 call, got %d", mock.CallCount())
	}
}

func TestQuestion_StrictModeRepromptsOnce(t *testing.T) {
	mock := llm.NewMockProvider(
		llm.MockText("Sure! Here is a question: what is a mutex?"),
		llm.MockText("What is a mutex?"),
	)
	cfg := DefaultConfig()
	cfg.StrictQuestions = true
	gen := New(mock, cfg, nil)

	q, err := gen.Question(context.Background(), studyInput())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if q != "What is a mutex?" || mock.CallCount() != 2 {
		t.Fatalf("q = %q after %d calls", q, mock.CallCount())
	}
}

func TestQuestion_ProviderError(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Err: &llm.ErrRateLimit{Err: errors.New("429")}})
	gen := New(mock, DefaultConfig(), nil)

	_, err := gen.Question(context.Background(), studyInput())
	if !llm.IsRateLimit(err) {
		t.Fatalf("expected wrapped rate limit, got %v", err)
	}
	if Degraded(err) != BusyText {
		t.Fatalf("Degraded = %q", Degraded(err))
	}
}

func TestHint_ClippedToSevenWords(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockText("Think about what happens when two threads write at once"))
	gen := New(mock, DefaultConfig(), nil)

	h, err := gen.Hint(context.Background(), session.LevelInternship, "What is a race condition?")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n := len(strings.Fields(h)); n != 7 {
		t.Fatalf("hint has %d words: %q", n, h)
	}
	if mock.LastCall().System != hintSystem {
		t.Fatal("hint should use the hint system prompt")
	}
}

func TestEvaluate_UsesLowTemperature(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockText("Score: 7/10\nFeedback: Good."))
	gen := New(mock, DefaultConfig(), nil)

	ev, err := gen.Evaluate(context.Background(), session.LevelJob, "Q?", "A.")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(ev, "Score: 7/10") {
		t.Fatalf("evaluation = %q", ev)
	}
	if got := mock.LastCall().Temperature; got != 0.2 {
		t.Fatalf("temperature = %v, want 0.2", got)
	}
}

func TestSkillScores(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockText(`{"technical_depth":8,"communication":6,"problem_solving":7,"confidence":5}`))
	gen := New(mock, DefaultConfig(), nil)

	s, err := gen.SkillScores(context.Background(), session.LevelJob, []TurnSummary{{Question: "Q", Answer: "A"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s != (Scores{8, 6, 7, 5}) {
		t.Fatalf("scores = %v", s)
	}
	if mock.LastCall().Schema != SkillScoresSchema {
		t.Fatal("skill scores should request the structured schema")
	}
}

func TestDegraded(t *testing.T) {
	if Degraded(nil) != "" {
		t.Fatal("nil error should degrade to empty text")
	}
	got := Degraded(errors.New("invalid api key"))
	if got != "Error: invalid api key" {
		t.Fatalf("Degraded = %q", got)
	}
}

func TestHint_RateLimitOutlastingTimeoutShowsBusy(t *testing.T) {
	rateLimited := llm.MockResponse{Err: &llm.ErrRateLimit{RetryAfter: 30 * time.Second, Err: errors.New("429")}}
	mock := llm.NewMockProvider(rateLimited, rateLimited, rateLimited)
	provider := llm.WithTimeout(llm.WithRetry(mock, llm.DefaultConfig().Retry), 200*time.Millisecond)
	gen := New(provider, DefaultConfig(), nil)

	_, err := gen.Hint(context.Background(), session.LevelJob, "What is a race condition?")
	if err == nil {
		t.Fatal("expected error")
	}
	if got := Degraded(err); got != BusyText {
		t.Fatalf("Degraded = %q, want the busy text", got)
	}
}
