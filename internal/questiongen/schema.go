package questiongen

import "github.com/abhisek/mockprep/internal/llm"

func scoreProperty(desc string) map[string]any {
	return map[string]any{
		"type":        "integer",
		"minimum":     1,
		"maximum":     10,
		"description": desc,
	}
}

// SkillScoresSchema is the structured output for the end-of-session rating.
var SkillScoresSchema = &llm.Schema{
	Name:        "skill-scores",
	Description: "Ratings from 1 to 10 of the candidate across four interview skills",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"technical_depth": scoreProperty("Accuracy and depth of technical knowledge"),
			"communication":   scoreProperty("Clarity and structure of the answers"),
			"problem_solving": scoreProperty("Approach to breaking down problems"),
			"confidence":      scoreProperty("Decisiveness and completeness of the answers"),
		},
		"required":             []any{"technical_depth", "communication", "problem_solving", "confidence"},
		"additionalProperties": false,
	},
}
