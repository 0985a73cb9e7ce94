package llm

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func evaluationSchema() *Schema {
	return &Schema{
		Name: "evaluation-test",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"feedback": map[string]any{"type": "string"},
				"score":    map[string]any{"type": "integer", "minimum": 0, "maximum": 10},
				"verdict":  map[string]any{"type": "string", "enum": []any{"strong", "adequate", "weak"}},
				"followups": map[string]any{
					"type":  "array",
					"items": map[string]any{"type": "string"},
				},
			},
			"required": []any{"feedback", "score"},
		},
	}
}

func TestValidateResponse(t *testing.T) {
	cases := []struct {
		name  string
		raw   string
		valid bool
	}{
		{"complete", `{"feedback":"clear STAR answer","score":8,"verdict":"strong","followups":["what would you change?"]}`, true},
		{"optional fields omitted", `{"feedback":"thin","score":3}`, true},
		{"missing required", `{"feedback":"no score"}`, false},
		{"score out of range", `{"feedback":"x","score":11}`, false},
		{"wrong type", `{"feedback":"x","score":"eight"}`, false},
		{"unknown enum", `{"feedback":"x","score":5,"verdict":"amazing"}`, false},
		{"nested wrong type", `{"feedback":"x","score":5,"followups":[1,2]}`, false},
		{"not JSON", `score: 5`, false},
		{"empty", ``, false},
		{"whitespace", "  \n", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := validateResponse(evaluationSchema(), json.RawMessage(tc.raw))
			if tc.valid {
				assert.NoError(t, err)
				return
			}
			var inv *ErrInvalidResponse
			require.ErrorAs(t, err, &inv)
			assert.Equal(t, tc.raw, string(inv.Content))
		})
	}
}

func TestValidateResponse_NilSchemaAcceptsAnything(t *testing.T) {
	assert.NoError(t, validateResponse(nil, json.RawMessage(`not json at all`)))
}

func TestValidateResponse_SameNameDifferentDefinition(t *testing.T) {
	loose := &Schema{Name: "shared", Definition: map[string]any{"type": "object"}}
	strict := &Schema{Name: "shared", Definition: map[string]any{
		"type":     "object",
		"required": []any{"score"},
	}}

	raw := json.RawMessage(`{"feedback":"ok"}`)
	assert.NoError(t, validateResponse(loose, raw))
	assert.Error(t, validateResponse(strict, raw))
}
