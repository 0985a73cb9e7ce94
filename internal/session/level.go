package session

import (
	"fmt"
	"strings"
)

// Level is the seniority the candidate is practicing for. It changes both
// the question-source mix and the prompt phrasing.
type Level int

const (
	LevelInternship Level = iota
	LevelJob
)

func (l Level) String() string {
	switch l {
	case LevelInternship:
		return "Internship"
	case LevelJob:
		return "Job"
	}
	return fmt.Sprintf("Level(%d)", int(l))
}

// ParseLevel accepts "internship"/"intern" and "job"/"fulltime",
// case-insensitively.
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "internship", "intern":
		return LevelInternship, nil
	case "job", "fulltime", "full-time":
		return LevelJob, nil
	}
	return 0, fmt.Errorf("unknown level %q (want internship or job)", s)
}
