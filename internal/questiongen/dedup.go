package questiongen

import (
	"fmt"
	"strings"
	"unicode"
)

// buildDedup formats prior questions for the prompt, keeping the most
// recent max. Returns "None" if there are no prior questions.
func buildDedup(priorQuestions []string, max int) string {
	if len(priorQuestions) == 0 {
		return "None"
	}

	if max > 0 && len(priorQuestions) > max {
		priorQuestions = priorQuestions[len(priorQuestions)-max:]
	}

	var b strings.Builder
	for i, q := range priorQuestions {
		fmt.Fprintf(&b, "%d. %s\n", i+1, q)
	}
	return strings.TrimRight(b.String(), "\n")
}

// normalize folds case, punctuation and spacing so trivially reworded
// repeats compare equal.
func normalize(q string) string {
	var b strings.Builder
	space := false
	for _, r := range strings.ToLower(q) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			if space && b.Len() > 0 {
				b.WriteByte(' ')
			}
			space = false
			b.WriteRune(r)
		default:
			space = true
		}
	}
	return b.String()
}

// isDuplicate reports whether q matches any asked question after
// normalization.
func isDuplicate(q string, asked []string) bool {
	n := normalize(q)
	for _, a := range asked {
		if normalize(a) == n {
			return true
		}
	}
	return false
}
