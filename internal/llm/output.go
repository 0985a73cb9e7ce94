package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// Normalized stop reasons.
const (
	StopEnd       = "end"
	StopMaxTokens = "max_tokens"
)

// completion is what an adapter extracted from its SDK's reply.
type completion struct {
	text      string
	truncated bool
	usage     Usage
	model     string
}

// finish turns a completion into a Response. Structured output is taken out
// of any Markdown fence, must be complete and must match the schema. Plain
// text must not be empty; truncated text is kept and flagged.
func finish(req Request, c completion) (*Response, error) {
	text := strings.TrimSpace(c.text)
	stop := StopEnd
	if c.truncated {
		stop = StopMaxTokens
	}
	if c.usage.TotalTokens == 0 {
		c.usage.TotalTokens = c.usage.InputTokens + c.usage.OutputTokens
	}

	if req.Schema != nil {
		content := json.RawMessage(unfence(text))
		if c.truncated {
			return nil, &ErrMaxTokensExceeded{Content: content}
		}
		if err := validateResponse(req.Schema, content); err != nil {
			return nil, err
		}
		return &Response{Content: content, Usage: c.usage, Model: c.model, StopReason: stop}, nil
	}

	if text == "" {
		return nil, &ErrInvalidResponse{Err: errors.New("empty completion")}
	}
	return &Response{Content: json.RawMessage(text), Usage: c.usage, Model: c.model, StopReason: stop}, nil
}

// unfence strips a surrounding ``` or ```json fence.
func unfence(s string) string {
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if nl := strings.IndexByte(s, '\n'); nl >= 0 {
		s = s[nl+1:]
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

// statusError classifies an HTTP failure from provider. Status 0 means the
// request never got a reply. Cancellation passes through untouched.
func statusError(provider string, status int, retryAfter time.Duration, err error) error {
	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return err
	case status == http.StatusTooManyRequests:
		return &ErrRateLimit{RetryAfter: retryAfter, Err: err}
	case status >= 500, status == 0:
		return &ErrProviderUnavailable{Err: err}
	}
	return fmt.Errorf("%s: %w", provider, err)
}

// parseRetryAfter reads a Retry-After header in seconds or HTTP-date form.
func parseRetryAfter(h http.Header, now time.Time) time.Duration {
	v := strings.TrimSpace(h.Get("Retry-After"))
	if v == "" {
		return 0
	}
	if secs, err := strconv.Atoi(v); err == nil && secs > 0 {
		return time.Duration(secs) * time.Second
	}
	if t, err := http.ParseTime(v); err == nil && t.After(now) {
		return t.Sub(now)
	}
	return 0
}
