// Package session holds the state of one interview practice run.
//
// A Session is single-writer: exactly one caller drives it, and none of its
// methods lock. Hosts that could mutate it concurrently must serialize
// access themselves.
package session

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Question count bounds.
const (
	MinQuestions = 1
	MaxQuestions = 20
)

// ErrQuestionCount is returned for a planned count outside the bounds.
var ErrQuestionCount = errors.New("question count must be between 1 and 20")

// Turn is one question and everything attached to it.
type Turn struct {
	// Question is set once, when the cursor first reaches this turn.
	Question Text
	// Source is the context the question was grounded in.
	Source Source
	// Answer is the candidate's current answer; "" means unanswered.
	Answer string
	// Hint is overwritten on every request.
	Hint Text
	// Evaluation is computed at most once, only for a non-empty answer.
	Evaluation Text
	// IdealAnswer is computed at most once.
	IdealAnswer Text
}

// Reached reports whether a question was ever generated for this turn.
func (t *Turn) Reached() bool {
	return t.Question.Set
}

// Answered reports whether the turn carries a non-blank answer.
func (t *Turn) Answered() bool {
	return strings.TrimSpace(t.Answer) != ""
}

// SetQuestion stores q if no question is present yet. It reports whether
// the question was stored.
func (t *Turn) SetQuestion(q string, src Source) bool {
	if t.Question.Set {
		return false
	}
	t.Question = Some(q)
	t.Source = src
	return true
}

// Session is one practice run.
type Session struct {
	ID        string
	StartedAt time.Time

	Level        Level
	PlannedCount int

	// Cursor is in [0, PlannedCount]; PlannedCount means report phase.
	Cursor int

	StudyContext  string
	ResumeContext string

	Turns []Turn

	// LastCaptureID is the last voice capture applied to an answer.
	LastCaptureID string
}

// New creates a session with every turn pre-allocated and empty.
func New(level Level, plannedCount int, study, resume string) (*Session, error) {
	if plannedCount < MinQuestions || plannedCount > MaxQuestions {
		return nil, ErrQuestionCount
	}
	return &Session{
		ID:            uuid.NewString(),
		StartedAt:     time.Now(),
		Level:         level,
		PlannedCount:  plannedCount,
		StudyContext:  study,
		ResumeContext: resume,
		Turns:         make([]Turn, plannedCount),
	}, nil
}

// InReport reports whether the interview phase is over.
func (s *Session) InReport() bool {
	return s.Cursor >= s.PlannedCount
}

// Current returns the turn at the cursor, or nil in report phase.
func (s *Session) Current() *Turn {
	if s.InReport() {
		return nil
	}
	return &s.Turns[s.Cursor]
}

// Asked returns every generated question in turn order.
func (s *Session) Asked() []string {
	var out []string
	for i := range s.Turns {
		if q, ok := s.Turns[i].Question.Get(); ok {
			out = append(out, q)
		}
	}
	return out
}

// Counts returns how many turns were reached and how many answered.
func (s *Session) Counts() (reached, answered int) {
	for i := range s.Turns {
		if s.Turns[i].Reached() {
			reached++
			if s.Turns[i].Answered() {
				answered++
			}
		}
	}
	return reached, answered
}

// Context returns the primary and secondary context for a source.
func (s *Session) Context(src Source) (primary, secondary string) {
	if src == SourceResume {
		return s.ResumeContext, s.StudyContext
	}
	return s.StudyContext, s.ResumeContext
}
