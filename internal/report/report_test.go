package report

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/mockprep/internal/llm"
	"github.com/abhisek/mockprep/internal/questiongen"
	"github.com/abhisek/mockprep/internal/session"
)

// newSession builds a finished session. Each entry in answers reaches a
// turn; nil entries leave the rest unreached.
func newSession(t *testing.T, planned int, answers ...string) *session.Session {
	t.Helper()
	s, err := session.New(session.LevelJob, planned, "study", "")
	require.NoError(t, err)
	for i, a := range answers {
		s.Turns[i].SetQuestion("Question about topic "+string(rune('A'+i))+"?", session.SourceStudy)
		s.Turns[i].Answer = a
	}
	s.Cursor = planned
	return s
}

// Three reached turns out of five, the last skipped.
func TestCompile_OmitsUnreached(t *testing.T) {
	s := newSession(t, 5, "chaining", "open addressing", "")
	s.Turns[0].Evaluation = session.Some("Score: 8/10. Good.")
	s.Turns[1].Evaluation = session.Some("Score: 6/10. Fine.")
	gen := &questiongen.Stub{}

	r := Compile(context.Background(), s, gen, nil)

	require.Len(t, r.Entries, 3)
	for i, e := range r.Entries {
		assert.Equal(t, i, e.Index)
	}
	assert.Equal(t, "Score: 8/10. Good.", r.Entries[0].Evaluation)
	assert.True(t, r.Entries[2].Skipped)
	assert.Equal(t, "A model answer.", r.Entries[2].IdealAnswer)
	assert.Empty(t, r.Entries[2].Evaluation)
	assert.Equal(t, 0, gen.Calls("Evaluate"))
	assert.Equal(t, 2, r.Answered())
}

// A skipped turn is never evaluated and its ideal answer is produced
// once, even across recompiles.
func TestCompile_SkipGetsIdealAnswerOnce(t *testing.T) {
	s := newSession(t, 2, "", "")
	gen := &questiongen.Stub{}

	Compile(context.Background(), s, gen, nil)
	Compile(context.Background(), s, gen, nil)

	assert.Equal(t, 2, gen.Calls("IdealAnswer"))
	assert.Equal(t, 0, gen.Calls("Evaluate"))
	for _, turn := range s.Turns {
		assert.False(t, turn.Evaluation.Set)
		assert.True(t, turn.IdealAnswer.Set)
	}
}

func TestCompile_BackfillsEvaluation(t *testing.T) {
	s := newSession(t, 1, "a hash function maps keys to buckets")
	gen := &questiongen.Stub{}

	r := Compile(context.Background(), s, gen, nil)

	assert.Equal(t, 1, gen.Calls("Evaluate"))
	assert.Equal(t, "Score: 7/10. Solid answer.", r.Entries[0].Evaluation)
	assert.True(t, s.Turns[0].Evaluation.Set)
	assert.Equal(t, 0, gen.Calls("IdealAnswer"))
}

func TestCompile_FailuresDegradeWithoutStoring(t *testing.T) {
	s := newSession(t, 2, "answer", "")
	gen := &questiongen.Stub{
		EvaluateFunc: func(string, string) (string, error) {
			return "", &llm.ErrRateLimit{Err: errors.New("429")}
		},
		IdealAnswerFunc: func(string) (string, error) {
			return "", errors.New("invalid api key")
		},
	}

	r := Compile(context.Background(), s, gen, nil)

	assert.Equal(t, questiongen.BusyText, r.Entries[0].Evaluation)
	assert.Equal(t, "Error: invalid api key", r.Entries[1].IdealAnswer)
	assert.False(t, s.Turns[0].Evaluation.Set)
	assert.False(t, s.Turns[1].IdealAnswer.Set)
}

func TestCompile_SkillScores(t *testing.T) {
	t.Run("model scores", func(t *testing.T) {
		s := newSession(t, 1, "answer")
		var got []questiongen.TurnSummary
		gen := &questiongen.Stub{SkillScoresFunc: func(turns []questiongen.TurnSummary) (questiongen.Scores, error) {
			got = turns
			return questiongen.Scores{9, 8, 7, 6}, nil
		}}

		r := Compile(context.Background(), s, gen, nil)

		assert.Equal(t, questiongen.Scores{9, 8, 7, 6}, r.Scores)
		assert.False(t, r.ScoresFallback)
		require.Len(t, got, 1)
		assert.Equal(t, "Score: 7/10. Solid answer.", got[0].Evaluation)
	})

	t.Run("parse failure falls back to neutral", func(t *testing.T) {
		s := newSession(t, 1, "answer")
		gen := &questiongen.Stub{SkillScoresFunc: func([]questiongen.TurnSummary) (questiongen.Scores, error) {
			return questiongen.Scores{}, errors.New("expected 4 scores, found 3")
		}}

		r := Compile(context.Background(), s, gen, nil)

		assert.Equal(t, questiongen.NeutralScores, r.Scores)
		assert.True(t, r.ScoresFallback)
	})

	t.Run("no reached turns skips the call", func(t *testing.T) {
		s := newSession(t, 3)
		gen := &questiongen.Stub{}

		r := Compile(context.Background(), s, gen, nil)

		assert.Empty(t, r.Entries)
		assert.Equal(t, 0, gen.Calls("SkillScores"))
		assert.Equal(t, questiongen.NeutralScores, r.Scores)
	})
}

func TestAverageScore(t *testing.T) {
	tests := []struct {
		name string
		eval string
		want float64
	}{
		{"score out of ten", "Score: 8/10", 9},
		{"out of range ignored", "Score 7. Took 45 minutes, 0 bugs.", 7},
		{"no numbers", "Good answer.", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := session.New(session.LevelJob, 2, "study", "")
			require.NoError(t, err)
			s.Turns[0].SetQuestion("Explain hashing.", session.SourceStudy)
			s.Turns[0].Answer = "keys map to buckets"
			s.Turns[0].Evaluation = session.Some(tt.eval)
			s.Turns[1].Evaluation = session.Some("Score: 1/10")

			assert.InDelta(t, tt.want, AverageScore(s), 0.001)
		})
	}
}

func TestRenderAndMarkdown(t *testing.T) {
	s := newSession(t, 3, "chaining", "")
	r := Compile(context.Background(), s, &questiongen.Stub{}, nil)

	out := r.Render()
	assert.Contains(t, out, "Question 1 (Study)")
	assert.Contains(t, out, "Feedback: Score: 7/10. Solid answer.")
	assert.Contains(t, out, "(skipped)")
	assert.Contains(t, out, "Technical Depth")
	assert.NotContains(t, out, "Question 3")

	md := r.Markdown()
	assert.True(t, strings.HasPrefix(md, "# Interview Report"))
	assert.Contains(t, md, "| Communication | 7/10 |")
	assert.Contains(t, md, "**Ideal answer:**\n\nA model answer.")
}

func TestCompile_RecompileRetriesDegradedEntries(t *testing.T) {
	s := newSession(t, 2, "answer", "")
	failing := true
	gen := &questiongen.Stub{
		EvaluateFunc: func(string, string) (string, error) {
			if failing {
				return "", &llm.ErrRateLimit{Err: errors.New("429")}
			}
			return "Score: 9/10. Great.", nil
		},
		IdealAnswerFunc: func(string) (string, error) {
			if failing {
				return "", &llm.ErrProviderUnavailable{}
			}
			return "Use chaining.", nil
		},
	}

	first := Compile(context.Background(), s, gen, nil)
	require.Len(t, first.Entries, 2)
	assert.True(t, first.Entries[0].Degraded)
	assert.True(t, first.Entries[1].Degraded)
	assert.True(t, first.Incomplete())

	failing = false
	second := Compile(context.Background(), s, gen, nil)
	assert.False(t, second.Incomplete())
	assert.Equal(t, "Score: 9/10. Great.", second.Entries[0].Evaluation)
	assert.Equal(t, "Use chaining.", second.Entries[1].IdealAnswer)
	assert.Equal(t, 2, gen.Calls("Evaluate"))
	assert.Equal(t, 2, gen.Calls("IdealAnswer"))
}

func TestReport_Incomplete(t *testing.T) {
	complete := &Report{Entries: []Entry{{Index: 0}}}
	assert.False(t, complete.Incomplete())

	scores := &Report{Entries: []Entry{{Index: 0}}, ScoresFallback: true}
	assert.True(t, scores.Incomplete())

	empty := &Report{ScoresFallback: true}
	assert.False(t, empty.Incomplete(), "no entries means nothing to score")
}
