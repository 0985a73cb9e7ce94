package questiongen

import (
	"fmt"
	"strings"

	"github.com/abhisek/mockprep/internal/session"
)

const questionSystem = `You are a technical interviewer running a mock interview.

Rules:
- Ask exactly one interview question.
- The subject of the question must come from the PRIMARY material. The REFERENCE material may only add technical depth.
- Do not repeat or rephrase any question from the "Already asked" list.
- Output only the question text. No preamble, no numbering, no answer.`

const hintSystem = `You are an interviewer giving a hint to a stuck candidate.
Reply with a hint of at most 7 words. Never reveal the answer. Output only the hint.`

const evaluationSystem = `You grade answers in a mock technical interview.
Reply in two short parts:
Score: <integer 1-10>/10
Feedback: <two or three sentences on what was right, what was missing and how to improve>`

const idealSystem = `You write model answers for mock technical interview questions.
Give the answer a strong candidate would give, in under 150 words. Output only the answer.`

const scoresSystem = `You assess a whole mock technical interview.
Rate the candidate from 1 to 10 on technical depth, communication, problem solving and confidence.`

// levelFocus returns the level-specific emphasis for prompts.
func levelFocus(level session.Level) string {
	if level == session.LevelJob {
		return "a full-time engineering job. Probe real-world trade-offs, production experience and measurable impact."
	}
	return "an internship. Focus on fundamentals, coursework and personal or academic projects."
}

func buildQuestionMessage(in QuestionInput, cfg Config) string {
	var b strings.Builder

	fmt.Fprintf(&b, "The candidate is interviewing for %s\n", levelFocus(in.Level))
	fmt.Fprintf(&b, "Question source: %s\n", sourceLabel(in.Source))

	b.WriteString("\nPRIMARY material:\n")
	b.WriteString(orNone(in.Primary))
	b.WriteString("\n\nREFERENCE material:\n")
	b.WriteString(orNone(in.Secondary))

	b.WriteString("\n\nAlready asked in this session:\n")
	b.WriteString(buildDedup(in.Asked, cfg.MaxPriorQuestions))
	return b.String()
}

func sourceLabel(src session.Source) string {
	if src == session.SourceResume {
		return "the candidate's résumé (projects, experience, listed skills)"
	}
	return "the candidate's study notes"
}

func buildHintMessage(level session.Level, question string) string {
	return fmt.Sprintf("Level: %s\nQuestion: %s", level, question)
}

func buildEvaluationMessage(level session.Level, question, answer string) string {
	return fmt.Sprintf("The candidate is interviewing for %s\n\nQuestion: %s\n\nCandidate answer: %s",
		levelFocus(level), question, answer)
}

func buildIdealMessage(level session.Level, question string) string {
	return fmt.Sprintf("The candidate is interviewing for %s\n\nQuestion: %s", levelFocus(level), question)
}

func buildScoresMessage(level session.Level, turns []TurnSummary) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Level: %s\n", level)
	for i, t := range turns {
		fmt.Fprintf(&b, "\nQ%d: %s\n", i+1, t.Question)
		if strings.TrimSpace(t.Answer) == "" {
			b.WriteString("Answer: (skipped)\n")
			continue
		}
		fmt.Fprintf(&b, "Answer: %s\n", t.Answer)
		if t.Evaluation != "" {
			fmt.Fprintf(&b, "Grade: %s\n", t.Evaluation)
		}
	}
	return b.String()
}

func orNone(s string) string {
	if strings.TrimSpace(s) == "" {
		return "None"
	}
	return s
}
