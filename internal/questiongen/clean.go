package questiongen

import (
	"regexp"
	"strings"
)

var (
	labelPrefix = regexp.MustCompile(`(?i)^\s*(\*\*)?\s*(question|q)\s*(\d+)?\s*[:.)-]\s*(\*\*)?\s*`)
	preamble    = regexp.MustCompile(`(?i)^\s*(sure|okay|ok|certainly|of course|great|alright|here('s| is| are))\b`)
)

// cleanQuestion trims the reply, strips a leading "Question:" label and
// unwraps surrounding quotes. Anything else is kept as the model wrote it.
func cleanQuestion(s string) string {
	s = strings.TrimSpace(s)
	s = labelPrefix.ReplaceAllString(s, "")
	s = strings.TrimSpace(s)
	for _, q := range [][2]string{{`"`, `"`}, {"“", "”"}, {"'", "'"}, {"`", "`"}} {
		if len(s) >= len(q[0])+len(q[1]) && strings.HasPrefix(s, q[0]) && strings.HasSuffix(s, q[1]) {
			s = strings.TrimSpace(s[len(q[0]) : len(s)-len(q[1])])
			break
		}
	}
	return s
}

// hasPreamble reports whether the reply opens with chatter rather than the
// question itself.
func hasPreamble(s string) bool {
	return preamble.MatchString(s)
}

// clipWords keeps at most n words.
func clipWords(s string, n int) string {
	words := strings.Fields(s)
	if n <= 0 || len(words) <= n {
		return strings.Join(words, " ")
	}
	return strings.Join(words[:n], " ")
}
