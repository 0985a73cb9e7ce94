// Package transcribe turns recorded answers into text.
package transcribe

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"
)

var (
	// ErrLowConfidence means the transcript was empty or nearly so and the
	// user should record again.
	ErrLowConfidence = errors.New("transcript too short, please re-record")

	// ErrUnavailable means no transcription service is configured.
	ErrUnavailable = errors.New("voice transcription is not configured")
)

// Transcriber converts audio to text.
type Transcriber interface {
	Transcribe(ctx context.Context, audio []byte) (string, error)
}

// DefaultMinChars is the shortest transcript accepted as an answer.
const DefaultMinChars = 3

// Accept trims text and returns ErrLowConfidence if fewer than minChars
// letters or digits remain.
func Accept(text string, minChars int) (string, error) {
	text = strings.TrimSpace(text)
	if minChars <= 0 {
		minChars = DefaultMinChars
	}
	n := 0
	for _, r := range text {
		if isWordRune(r) {
			n++
		}
	}
	if n < minChars || !utf8.ValidString(text) {
		return "", ErrLowConfidence
	}
	return text, nil
}

func isWordRune(r rune) bool {
	return r >= '0' && r <= '9' || r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r > 0x7f
}

// Disabled is the Transcriber used when voice input is turned off.
type Disabled struct{}

func (Disabled) Transcribe(context.Context, []byte) (string, error) {
	return "", ErrUnavailable
}
