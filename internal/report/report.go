// Package report compiles the end-of-session summary.
package report

import (
	"context"
	"regexp"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/abhisek/mockprep/internal/logger"
	"github.com/abhisek/mockprep/internal/questiongen"
	"github.com/abhisek/mockprep/internal/session"
)

// Entry is one reached turn as shown in the report.
type Entry struct {
	// Index is the zero-based turn index.
	Index    int
	Question string
	Source   session.Source
	Answer   string
	// Skipped is true when the turn was reached but never answered.
	Skipped bool
	// Evaluation is set for answered turns. It holds the degraded text when
	// grading failed.
	Evaluation string
	// IdealAnswer is set for skipped turns.
	IdealAnswer string
	// Degraded is true when Evaluation or IdealAnswer holds degraded text
	// because the call failed.
	Degraded bool
}

// Report is the compiled summary of a finished session.
type Report struct {
	SessionID    string
	Level        session.Level
	PlannedCount int
	Entries      []Entry

	Scores questiongen.Scores
	// ScoresFallback is true when the neutral vector replaced the model's
	// rating.
	ScoresFallback bool

	// AverageScore is approximate; see AverageScore.
	AverageScore float64
	CompiledAt   time.Time
}

// Answered returns the number of entries with an answer.
func (r *Report) Answered() int {
	n := 0
	for _, e := range r.Entries {
		if !e.Skipped {
			n++
		}
	}
	return n
}

// Incomplete reports whether any entry or the skill scores fell back
// because a call failed. Compiling the same session again retries exactly
// those parts.
func (r *Report) Incomplete() bool {
	if len(r.Entries) > 0 && r.ScoresFallback {
		return true
	}
	for _, e := range r.Entries {
		if e.Degraded {
			return true
		}
	}
	return false
}

// Compile builds the report, filling in whatever the interview left
// missing. Never-reached turns are omitted. Answered turns without an
// evaluation are graded now. Skipped turns get an ideal answer, generated
// once and stored on the turn. Failed calls show degraded text in the entry
// and leave the turn untouched, so a later Compile of the same session
// retries them; see Incomplete.
func Compile(ctx context.Context, s *session.Session, gen questiongen.Generator, log *zap.Logger) *Report {
	log = logger.WithSession(log, s.ID)
	r := &Report{
		SessionID:    s.ID,
		Level:        s.Level,
		PlannedCount: s.PlannedCount,
		CompiledAt:   time.Now(),
	}

	var summaries []questiongen.TurnSummary
	for i := range s.Turns {
		turn := &s.Turns[i]
		q, ok := turn.Question.Get()
		if !ok {
			continue
		}
		e := Entry{Index: i, Question: q, Source: turn.Source, Answer: turn.Answer}

		if turn.Answered() {
			if !turn.Evaluation.Set {
				ev, err := gen.Evaluate(ctx, s.Level, q, turn.Answer)
				if err != nil {
					log.Warn("evaluation failed", zap.Int(logger.FieldTurn, i), zap.Error(err))
					ev = questiongen.Degraded(err)
					e.Degraded = true
				} else {
					turn.Evaluation = session.Some(ev)
				}
				e.Evaluation = ev
			} else {
				e.Evaluation = turn.Evaluation.Value
			}
		} else {
			e.Skipped = true
			if !turn.IdealAnswer.Set {
				ideal, err := gen.IdealAnswer(ctx, s.Level, q)
				if err != nil {
					log.Warn("ideal answer failed", zap.Int(logger.FieldTurn, i), zap.Error(err))
					ideal = questiongen.Degraded(err)
					e.Degraded = true
				} else {
					turn.IdealAnswer = session.Some(ideal)
				}
				e.IdealAnswer = ideal
			} else {
				e.IdealAnswer = turn.IdealAnswer.Value
			}
		}

		r.Entries = append(r.Entries, e)
		summaries = append(summaries, questiongen.TurnSummary{
			Question:   q,
			Answer:     turn.Answer,
			Evaluation: turn.Evaluation.Value,
		})
	}

	r.Scores = questiongen.NeutralScores
	r.ScoresFallback = true
	if len(summaries) > 0 {
		scores, err := gen.SkillScores(ctx, s.Level, summaries)
		if err != nil {
			log.Warn("skill scores unavailable, using neutral scores", zap.Error(err))
		} else {
			r.Scores = scores
			r.ScoresFallback = false
		}
	}

	r.AverageScore = AverageScore(s)
	log.Info("report compiled",
		zap.Int("entries", len(r.Entries)),
		zap.Int("answered", r.Answered()),
		zap.Float64("average_score", r.AverageScore))
	return r
}

var scoreToken = regexp.MustCompile(`\b\d+\b`)

// AverageScore averages every integer between 1 and 10 found in the text of
// the reached turns. It is a rough signal: a question that mentions "3
// threads" counts too. It returns 0 when nothing matches.
func AverageScore(s *session.Session) float64 {
	var sum, n int
	for i := range s.Turns {
		t := &s.Turns[i]
		if !t.Reached() {
			continue
		}
		for _, field := range []string{t.Question.Value, t.Answer, t.Evaluation.Value} {
			for _, tok := range scoreToken.FindAllString(field, -1) {
				v, err := strconv.Atoi(tok)
				if err != nil || v < 1 || v > 10 {
					continue
				}
				sum += v
				n++
			}
		}
	}
	if n == 0 {
		return 0
	}
	return float64(sum) / float64(n)
}

// Render formats the report as plain terminal text.
func (r *Report) Render() string {
	var b strings.Builder
	b.WriteString("Interview Report\n")
	b.WriteString(strings.Repeat("=", 16) + "\n")
	b.WriteString(r.header() + "\n\n")

	for _, e := range r.Entries {
		b.WriteString(e.title() + "\n")
		b.WriteString("  Q: " + e.Question + "\n")
		if e.Skipped {
			b.WriteString("  (skipped)\n")
			b.WriteString("  Ideal answer: " + e.IdealAnswer + "\n\n")
			continue
		}
		b.WriteString("  A: " + e.Answer + "\n")
		b.WriteString("  Feedback: " + e.Evaluation + "\n\n")
	}

	b.WriteString("Skill scores")
	if r.ScoresFallback {
		b.WriteString(" (neutral default)")
	}
	b.WriteString("\n")
	for i, d := range questiongen.Dimensions {
		b.WriteString("  " + padRight(d, 16) + " " + bar(r.Scores[i]) + " " + strconv.Itoa(r.Scores[i]) + "/10\n")
	}
	return b.String()
}

// Markdown formats the report for export.
func (r *Report) Markdown() string {
	var b strings.Builder
	b.WriteString("# Interview Report\n\n")
	b.WriteString(r.header() + "\n\n")

	b.WriteString("## Skill scores\n\n| Dimension | Score |\n|---|---|\n")
	for i, d := range questiongen.Dimensions {
		b.WriteString("| " + d + " | " + strconv.Itoa(r.Scores[i]) + "/10 |\n")
	}
	if r.ScoresFallback {
		b.WriteString("\n_Scores could not be computed; neutral defaults shown._\n")
	}

	b.WriteString("\n## Questions\n")
	for _, e := range r.Entries {
		b.WriteString("\n### " + e.title() + "\n\n")
		b.WriteString("**Question:** " + e.Question + "\n\n")
		if e.Skipped {
			b.WriteString("_Skipped._\n\n**Ideal answer:**\n\n" + e.IdealAnswer + "\n")
			continue
		}
		b.WriteString("**Your answer:**\n\n" + e.Answer + "\n\n**Feedback:**\n\n" + e.Evaluation + "\n")
	}
	return b.String()
}

func (r *Report) header() string {
	return "Level: " + r.Level.String() +
		" | Answered: " + strconv.Itoa(r.Answered()) + "/" + strconv.Itoa(len(r.Entries)) +
		" | Planned: " + strconv.Itoa(r.PlannedCount) +
		" | Average score: " + strconv.FormatFloat(r.AverageScore, 'f', 1, 64)
}

func (e Entry) title() string {
	return "Question " + strconv.Itoa(e.Index+1) + " (" + e.Source.String() + ")"
}

func bar(score int) string {
	score = max(0, min(10, score))
	return strings.Repeat("#", score) + strings.Repeat(".", 10-score)
}

func padRight(s string, n int) string {
	if len(s) >= n {
		return s
	}
	return s + strings.Repeat(" ", n-len(s))
}
