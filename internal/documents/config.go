package documents

// Config bounds how much context each bucket keeps.
type Config struct {
	// StudyBudget is the maximum length of the study bucket in characters.
	StudyBudget int `mapstructure:"study-budget"`

	// ResumeBudget is the maximum length of the résumé bucket in characters.
	ResumeBudget int `mapstructure:"resume-budget"`

	// MinTextChars is the shortest extraction accepted for one file.
	MinTextChars int `mapstructure:"min-text-chars"`

	// MinUsableChars is the length a bucket must exceed to count as context.
	MinUsableChars int `mapstructure:"min-usable-chars"`

	// ResumeTokens are lower-case filename fragments that mark a résumé.
	ResumeTokens []string `mapstructure:"resume-tokens"`
}

// DefaultConfig returns the default budgets.
func DefaultConfig() Config {
	return Config{
		StudyBudget:    15000,
		ResumeBudget:   5000,
		MinTextChars:   10,
		MinUsableChars: 20,
		ResumeTokens:   []string{"resume", "cv", "portfolio"},
	}
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.StudyBudget <= 0 {
		c.StudyBudget = d.StudyBudget
	}
	if c.ResumeBudget <= 0 {
		c.ResumeBudget = d.ResumeBudget
	}
	if c.MinTextChars <= 0 {
		c.MinTextChars = d.MinTextChars
	}
	if c.MinUsableChars <= 0 {
		c.MinUsableChars = d.MinUsableChars
	}
	if len(c.ResumeTokens) == 0 {
		c.ResumeTokens = d.ResumeTokens
	}
	return c
}
