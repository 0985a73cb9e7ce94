package interview

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/mockprep/internal/questiongen"
	"github.com/abhisek/mockprep/internal/session"
	"github.com/abhisek/mockprep/internal/transcribe"
)

// A capture delivered twice is transcribed once.
func TestApplyCapture_Dedup(t *testing.T) {
	tr := &transcribe.Mock{Text: "Chaining stores colliding keys in a list."}
	c := newController(t, &questiongen.Stub{}, WithTranscriber(tr, transcribe.DefaultMinChars))
	start(t, c, session.LevelJob, 2)
	observe(t, c)
	ctx := context.Background()

	cp := Capture{ID: "rec-1", Audio: []byte("audio")}
	applied, err := c.ApplyCapture(ctx, cp)
	require.NoError(t, err)
	assert.True(t, applied)

	c.RecordAnswer("edited by hand")
	applied, err = c.ApplyCapture(ctx, cp)
	require.NoError(t, err)
	assert.False(t, applied)

	assert.Equal(t, 1, tr.Calls())
	assert.Equal(t, "edited by hand", c.Session().Current().Answer, "a replayed capture must not overwrite edits")

	applied, err = c.ApplyCapture(ctx, Capture{ID: "rec-2", Audio: []byte("audio")})
	require.NoError(t, err)
	assert.True(t, applied)
	assert.Equal(t, 2, tr.Calls())
	assert.Equal(t, "Chaining stores colliding keys in a list.", c.Session().Current().Answer)
}

func TestApplyCapture_LowConfidence(t *testing.T) {
	tr := &transcribe.Mock{Text: " .. "}
	c := newController(t, &questiongen.Stub{}, WithTranscriber(tr, transcribe.DefaultMinChars))
	start(t, c, session.LevelJob, 1)
	observe(t, c)
	c.RecordAnswer("typed answer")

	_, err := c.ApplyCapture(context.Background(), Capture{ID: "rec-1"})
	assert.ErrorIs(t, err, transcribe.ErrLowConfidence)
	assert.Equal(t, "typed answer", c.Session().Current().Answer)
}

func TestApplyCapture_TranscriberError(t *testing.T) {
	tr := &transcribe.Mock{Err: errors.New("whisper down")}
	c := newController(t, &questiongen.Stub{}, WithTranscriber(tr, transcribe.DefaultMinChars))
	start(t, c, session.LevelJob, 1)
	observe(t, c)

	_, err := c.ApplyCapture(context.Background(), Capture{ID: "rec-1"})
	assert.Error(t, err)
	_, err = c.ApplyCapture(context.Background(), Capture{ID: "rec-1"})
	assert.NoError(t, err, "a failed capture is not retried under the same ID")
	assert.Equal(t, 1, tr.Calls())
}

func TestApplyCapture_Disabled(t *testing.T) {
	c := newController(t, &questiongen.Stub{})
	start(t, c, session.LevelJob, 1)
	observe(t, c)

	_, err := c.ApplyCapture(context.Background(), Capture{ID: "rec-1"})
	assert.ErrorIs(t, err, transcribe.ErrUnavailable)
}

func TestCaptureFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "answer.wav")
	require.NoError(t, os.WriteFile(path, []byte("RIFF...."), 0o644))

	a, err := CaptureFromFile(path)
	require.NoError(t, err)
	b, err := CaptureFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, a.ID, b.ID, "an unchanged file keeps its capture ID")
	assert.Equal(t, []byte("RIFF...."), a.Audio)

	_, err = CaptureFromFile(filepath.Join(t.TempDir(), "missing.wav"))
	assert.Error(t, err)
}
