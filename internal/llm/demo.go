package llm

import (
	"fmt"
	"strings"
	"sync/atomic"
)

// NewDemoProvider returns a MockProvider that answers every request with
// canned interview content, so the whole flow can be tried without an API
// key. The kind of answer is picked from the request's schema or system
// prompt.
func NewDemoProvider() *MockProvider {
	var n atomic.Int64
	m := NewMockProvider()
	m.Fallback = func(req Request) MockResponse {
		i := n.Add(1)
		if req.Schema != nil && req.Schema.Name == "skill-scores" {
			return MockText(`{"technical_depth":6,"communication":7,"problem_solving":6,"confidence":5}`)
		}
		sys := strings.ToLower(req.System)
		switch {
		case strings.Contains(sys, "hint"):
			return MockText("Think about the trade-offs involved.")
		case strings.Contains(sys, "grade"):
			return MockText("Score: 6/10. Covers the basics but misses concrete examples.")
		case strings.Contains(sys, "model answer"):
			return MockText("A strong answer names the core idea, gives an example and mentions one limitation.")
		default:
			return MockText(fmt.Sprintf("Demo question %d: walk me through a project you are proud of and the hardest bug you fixed in it.", i))
		}
	}
	return m
}
