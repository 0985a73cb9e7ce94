package session

import (
	"fmt"
	"math/rand/v2"
	"strings"
)

// Source is the document category a question is grounded in.
type Source int

const (
	SourceStudy Source = iota
	SourceResume
)

func (s Source) String() string {
	if s == SourceResume {
		return "Resume"
	}
	return "Study"
}

// Selector chooses the source for the turn at index.
type Selector interface {
	Choose(level Level, study, resume string, index int) Source
}

// Selection policies.
const (
	PolicyDeterministic = "deterministic"
	PolicyWeighted      = "weighted"
)

// NewSelector returns the selector for a policy name. rng is only used by
// the weighted policy; nil seeds one from the runtime.
func NewSelector(policy string, rng *rand.Rand) (Selector, error) {
	switch strings.ToLower(policy) {
	case "", PolicyDeterministic:
		return Deterministic{}, nil
	case PolicyWeighted:
		return NewWeightedSelector(rng), nil
	}
	return nil, fmt.Errorf("unknown source policy %q", policy)
}

// presetSource handles the cases every policy shares: a missing résumé
// always means Study, a missing study context always means Résumé.
func presetSource(study, resume string) (Source, bool) {
	if strings.TrimSpace(resume) == "" {
		return SourceStudy, true
	}
	if strings.TrimSpace(study) == "" {
		return SourceResume, true
	}
	return 0, false
}

// Deterministic alternates sources by a fixed modulus on the turn index.
// Internship asks from the résumé on every third turn (index%3 == 2), one
// in three. Job asks from the résumé on the other two, two in three. The
// choice is a pure function of level and index.
type Deterministic struct{}

func (Deterministic) Choose(level Level, study, resume string, index int) Source {
	if src, ok := presetSource(study, resume); ok {
		return src
	}
	third := index%3 == 2
	if level == LevelJob {
		third = !third
	}
	if third {
		return SourceResume
	}
	return SourceStudy
}

// WeightedSelector draws the source at random: Résumé with probability 0.7
// for Job and 0.3 for Internship.
type WeightedSelector struct {
	rng *rand.Rand
}

// NewWeightedSelector creates a WeightedSelector. Pass a seeded rng for
// reproducible draws.
func NewWeightedSelector(rng *rand.Rand) *WeightedSelector {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &WeightedSelector{rng: rng}
}

func (w *WeightedSelector) Choose(level Level, study, resume string, index int) Source {
	if src, ok := presetSource(study, resume); ok {
		return src
	}
	threshold := 0.3
	if level == LevelJob {
		threshold = 0.7
	}
	if w.rng.Float64() < threshold {
		return SourceResume
	}
	return SourceStudy
}
