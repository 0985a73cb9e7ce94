package interview

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/abhisek/mockprep/internal/transcribe"
)

// Capture is one recorded answer. ID identifies the recording, so a host
// that re-delivers the same capture on every redraw is harmless.
type Capture struct {
	ID    string
	Audio []byte
}

// CaptureFromFile reads an audio file. Its path, size and modification time
// form the capture ID, so re-submitting an unchanged file is a no-op.
func CaptureFromFile(path string) (Capture, error) {
	info, err := os.Stat(path)
	if err != nil {
		return Capture{}, fmt.Errorf("stat recording: %w", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Capture{}, fmt.Errorf("read recording: %w", err)
	}
	return Capture{
		ID:    fmt.Sprintf("%s:%d:%d", path, info.Size(), info.ModTime().UnixNano()),
		Audio: data,
	}, nil
}

// ApplyCapture transcribes a recording into the current answer. Each
// capture ID is transcribed at most once: a repeat returns false and does
// nothing. An empty or near-empty transcript returns
// transcribe.ErrLowConfidence and leaves the answer untouched.
func (c *Controller) ApplyCapture(ctx context.Context, cp Capture) (bool, error) {
	turn := c.questionedTurn()
	if turn == nil {
		return false, ErrNoSession
	}
	if cp.ID == "" || cp.ID == c.sess.LastCaptureID {
		return false, nil
	}
	c.sess.LastCaptureID = cp.ID

	raw, err := c.transcriber.Transcribe(ctx, cp.Audio)
	if err != nil {
		c.log().Warn("transcription failed", zap.Error(err))
		return true, err
	}
	text, err := transcribe.Accept(raw, c.minChars)
	if err != nil {
		return true, err
	}
	turn.Answer = text
	return true, nil
}
