package questiongen

import (
	"github.com/abhisek/mockprep/internal/llm"
)

// Degraded is the text shown instead of model output after a failed call:
// BusyText for exhausted rate limits, the literal error otherwise.
func Degraded(err error) string {
	if err == nil {
		return ""
	}
	if llm.IsRateLimit(err) {
		return BusyText
	}
	return "Error: " + err.Error()
}
