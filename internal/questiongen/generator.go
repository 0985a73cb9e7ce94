// Package questiongen builds the prompts for every model call an interview
// makes and turns the replies into text the session can store.
package questiongen

import (
	"context"
	"errors"

	"github.com/abhisek/mockprep/internal/session"
)

// BusyText is shown in place of model output when the service stayed
// rate-limited through every retry.
const BusyText = "The interviewer is busy right now. Please try again in a moment."

// ErrDuplicateQuestion is returned when the model keeps repeating a
// question already asked in the session.
var ErrDuplicateQuestion = errors.New("model repeated an earlier question")

// QuestionInput is everything the question prompt needs.
type QuestionInput struct {
	Level  session.Level
	Source session.Source
	// Primary is the context the question's subject must come from.
	Primary string
	// Secondary is reference material only.
	Secondary string
	// Asked lists every question already in the session.
	Asked []string
}

// TurnSummary is one reached turn as fed to the skill-score prompt.
type TurnSummary struct {
	Question   string
	Answer     string
	Evaluation string
}

// Generator produces interview content from a language model. Every method
// makes exactly one logical call (plus at most one corrective re-prompt for
// questions) and returns an error instead of placeholder text; callers pick
// the placeholder with Degraded.
type Generator interface {
	// Question returns a new question that is not in in.Asked.
	Question(ctx context.Context, in QuestionInput) (string, error)

	// Hint returns a short nudge that does not reveal the answer.
	Hint(ctx context.Context, level session.Level, question string) (string, error)

	// Evaluate grades a non-empty answer: a score out of 10 and feedback.
	Evaluate(ctx context.Context, level session.Level, question, answer string) (string, error)

	// IdealAnswer returns a model answer for a question the candidate skipped.
	IdealAnswer(ctx context.Context, level session.Level, question string) (string, error)

	// SkillScores rates the whole session on the four Dimensions.
	SkillScores(ctx context.Context, level session.Level, turns []TurnSummary) (Scores, error)
}
