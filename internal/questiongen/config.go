package questiongen

// Config controls prompt budgets and sampling for the LLMGenerator.
type Config struct {
	// QuestionTemperature is high so questions vary between sessions.
	QuestionTemperature float64
	// GradingTemperature is low so grading is repeatable.
	GradingTemperature float64

	QuestionMaxTokens int
	HintMaxTokens     int
	EvalMaxTokens     int
	IdealMaxTokens    int
	ScoresMaxTokens   int

	// MaxPriorQuestions caps the already-asked list in the prompt.
	// 0 includes every prior question.
	MaxPriorQuestions int

	// HintMaxWords is the hard cap applied to hints after generation.
	HintMaxWords int

	// StrictQuestions re-prompts once when a question comes back wrapped
	// in a conversational preamble.
	StrictQuestions bool
}

// DefaultConfig returns the recommended defaults.
func DefaultConfig() Config {
	return Config{
		QuestionTemperature: 0.8,
		GradingTemperature:  0.2,
		QuestionMaxTokens:   200,
		HintMaxTokens:       40,
		EvalMaxTokens:       400,
		IdealMaxTokens:      500,
		ScoresMaxTokens:     100,
		MaxPriorQuestions:   0,
		HintMaxWords:        7,
	}
}
