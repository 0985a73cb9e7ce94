package questiongen

import (
	"strings"
	"testing"

	"github.com/abhisek/mockprep/internal/session"
)

func TestBuildQuestionMessage_NoPriorQuestions(t *testing.T) {
	msg := buildQuestionMessage(QuestionInput{
		Level:   session.LevelInternship,
		Source:  session.SourceResume,
		Primary: "Built a chess engine in Go.",
	}, DefaultConfig())

	if !strings.Contains(msg, "internship") {
		t.Error("missing internship phrasing")
	}
	if !strings.Contains(msg, "résumé") {
		t.Error("missing source label")
	}
	if !strings.Contains(msg, "REFERENCE material:\nNone") {
		t.Error("expected 'None' for missing reference material")
	}
	if !strings.Contains(msg, "Already asked in this session:\nNone") {
		t.Error("expected 'None' for prior questions")
	}
}

func TestBuildDedup_KeepsMostRecent(t *testing.T) {
	got := buildDedup([]string{"a", "b", "c"}, 2)
	if got != "1. b\n2. c" {
		t.Fatalf("buildDedup = %q", got)
	}
}

func TestCleanQuestion(t *testing.T) {
	tests := map[string]string{
		`"What is TCP?"`:              "What is TCP?",
		"Question: What is TCP?":      "What is TCP?",
		"**Question 2:** What is UDP?": "What is UDP?",
		"  “Why Go?”  ":               "Why Go?",
		"Quickly explain DNS.":        "Quickly explain DNS.",
	}
	for in, want := range tests {
		if got := cleanQuestion(in); got != want {
			t.Errorf("cleanQuestion(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestIsDuplicate_FoldsCaseAndSpacing(t *testing.T) {
	asked := []string{"What is a  Mutex?"}
	if !isDuplicate("what is a mutex", asked) {
		t.Fatal("case, spacing and punctuation should fold")
	}
	if isDuplicate("What is a semaphore?", asked) {
		t.Fatal("different question flagged as duplicate")
	}
}

func TestHasPreamble(t *testing.T) {
	if !hasPreamble("Here's a question: what is DNS?") {
		t.Error("expected preamble")
	}
	if hasPreamble("How does DNS resolution work?") {
		t.Error("unexpected preamble")
	}
}
