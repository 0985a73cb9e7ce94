package llm

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnfence(t *testing.T) {
	cases := map[string]string{
		`{"a":1}`:                     `{"a":1}`,
		"```json\n{\"a\":1}\n```":     `{"a":1}`,
		"```\n{\"a\":1}\n```":         `{"a":1}`,
		"```json\n{\"a\":1}\n```\n  ": `{"a":1}`,
	}
	for in, want := range cases {
		assert.Equal(t, want, unfence(in), "input %q", in)
	}
}

func TestFinish_Text(t *testing.T) {
	resp, err := finish(Request{}, completion{
		text:  "  Tell me about a time you disagreed with a teammate.\n",
		model: "m",
		usage: Usage{InputTokens: 3, OutputTokens: 4},
	})
	require.NoError(t, err)
	assert.Equal(t, "Tell me about a time you disagreed with a teammate.", resp.Text())
	assert.Equal(t, StopEnd, resp.StopReason)
	assert.Equal(t, 7, resp.Usage.TotalTokens)
	assert.Equal(t, "m", resp.Model)
}

func TestFinish_TruncatedTextIsKept(t *testing.T) {
	resp, err := finish(Request{}, completion{text: "An ideal answer would", truncated: true})
	require.NoError(t, err)
	assert.Equal(t, StopMaxTokens, resp.StopReason)
}

func TestFinish_EmptyText(t *testing.T) {
	_, err := finish(Request{}, completion{text: "   "})
	var inv *ErrInvalidResponse
	assert.ErrorAs(t, err, &inv)
}

func TestFinish_Structured(t *testing.T) {
	req := Request{Schema: evaluationSchema()}

	resp, err := finish(req, completion{text: "```json\n{\"feedback\":\"good\",\"score\":7}\n```"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"feedback":"good","score":7}`, string(resp.Content))

	_, err = finish(req, completion{text: `{"feedback":"go`, truncated: true})
	var maxTok *ErrMaxTokensExceeded
	require.ErrorAs(t, err, &maxTok)
	assert.Equal(t, `{"feedback":"go`, string(maxTok.Content))

	_, err = finish(req, completion{text: `{"score":7}`})
	var inv *ErrInvalidResponse
	assert.ErrorAs(t, err, &inv)
}

func TestStatusError(t *testing.T) {
	base := errors.New("boom")

	var rl *ErrRateLimit
	require.ErrorAs(t, statusError("p", http.StatusTooManyRequests, 3*time.Second, base), &rl)
	assert.Equal(t, 3*time.Second, rl.RetryAfter)

	assert.True(t, IsTransient(statusError("p", http.StatusBadGateway, 0, base)))
	assert.True(t, IsTransient(statusError("p", 0, 0, base)))

	perm := statusError("p", http.StatusUnauthorized, 0, base)
	assert.False(t, IsTransient(perm))
	assert.ErrorIs(t, perm, base)
	assert.Contains(t, perm.Error(), "p: ")

	canceled := statusError("p", 0, 0, context.Canceled)
	assert.ErrorIs(t, canceled, context.Canceled)
	assert.False(t, IsTransient(canceled))
}

func TestParseRetryAfter(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	h := http.Header{}

	assert.Zero(t, parseRetryAfter(h, now))

	h.Set("Retry-After", "12")
	assert.Equal(t, 12*time.Second, parseRetryAfter(h, now))

	h.Set("Retry-After", now.Add(90*time.Second).Format(http.TimeFormat))
	assert.Equal(t, 90*time.Second, parseRetryAfter(h, now))

	h.Set("Retry-After", now.Add(-time.Minute).Format(http.TimeFormat))
	assert.Zero(t, parseRetryAfter(h, now))

	h.Set("Retry-After", "soon")
	assert.Zero(t, parseRetryAfter(h, now))
}
