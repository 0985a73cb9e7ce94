package questiongen

import (
	"context"
	"fmt"
	"sync"

	"github.com/abhisek/mockprep/internal/session"
)

// Stub is a scripted Generator for tests. Nil funcs fall back to
// predictable canned text. Calls are counted per method.
type Stub struct {
	QuestionFunc    func(in QuestionInput) (string, error)
	HintFunc        func(question string) (string, error)
	EvaluateFunc    func(question, answer string) (string, error)
	IdealAnswerFunc func(question string) (string, error)
	SkillScoresFunc func(turns []TurnSummary) (Scores, error)

	mu     sync.Mutex
	calls  map[string]int
	inputs []QuestionInput
}

func (s *Stub) count(method string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.calls == nil {
		s.calls = make(map[string]int)
	}
	s.calls[method]++
}

// Calls returns how many times method ran, e.g. "Evaluate".
func (s *Stub) Calls(method string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[method]
}

// QuestionInputs returns every input Question received, in order.
func (s *Stub) QuestionInputs() []QuestionInput {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]QuestionInput(nil), s.inputs...)
}

func (s *Stub) Question(_ context.Context, in QuestionInput) (string, error) {
	s.count("Question")
	s.mu.Lock()
	s.inputs = append(s.inputs, in)
	n := len(s.inputs)
	s.mu.Unlock()
	if s.QuestionFunc != nil {
		return s.QuestionFunc(in)
	}
	return fmt.Sprintf("%s question %d?", in.Source, n), nil
}

func (s *Stub) Hint(_ context.Context, _ session.Level, question string) (string, error) {
	s.count("Hint")
	if s.HintFunc != nil {
		return s.HintFunc(question)
	}
	return "Think about the basics.", nil
}

func (s *Stub) Evaluate(_ context.Context, _ session.Level, question, answer string) (string, error) {
	s.count("Evaluate")
	if s.EvaluateFunc != nil {
		return s.EvaluateFunc(question, answer)
	}
	return "Score: 7/10. Solid answer.", nil
}

func (s *Stub) IdealAnswer(_ context.Context, _ session.Level, question string) (string, error) {
	s.count("IdealAnswer")
	if s.IdealAnswerFunc != nil {
		return s.IdealAnswerFunc(question)
	}
	return "A model answer.", nil
}

func (s *Stub) SkillScores(_ context.Context, _ session.Level, turns []TurnSummary) (Scores, error) {
	s.count("SkillScores")
	if s.SkillScoresFunc != nil {
		return s.SkillScoresFunc(turns)
	}
	return Scores{6, 7, 6, 5}, nil
}
