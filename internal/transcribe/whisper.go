package transcribe

import (
	"bytes"
	"context"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
)

// Config selects the transcription backend.
type Config struct {
	// Enabled turns voice answers on.
	Enabled bool `mapstructure:"enabled"`
	// APIKey for the OpenAI-compatible audio endpoint. Falls back to the
	// OpenAI key from the llm section when empty.
	APIKey  string `mapstructure:"api-key"`
	BaseURL string `mapstructure:"base-url"`
	Model   string `mapstructure:"model"`
	// Language is an ISO-639-1 hint, e.g. "en".
	Language string `mapstructure:"language"`
	// MinChars is the shortest transcript accepted.
	MinChars int `mapstructure:"min-chars"`
}

// DefaultConfig returns Whisper defaults with voice disabled.
func DefaultConfig() Config {
	return Config{
		Model:    openai.Whisper1,
		Language: "en",
		MinChars: DefaultMinChars,
	}
}

// Whisper transcribes through the OpenAI audio API.
type Whisper struct {
	client   *openai.Client
	model    string
	language string
	logger   *zap.Logger
}

// NewWhisper creates a Whisper transcriber.
func NewWhisper(cfg Config, logger *zap.Logger) (*Whisper, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("transcription API key is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	config := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		config.BaseURL = cfg.BaseURL
	}
	model := cfg.Model
	if model == "" {
		model = openai.Whisper1
	}

	return &Whisper{
		client:   openai.NewClientWithConfig(config),
		model:    model,
		language: cfg.Language,
		logger:   logger,
	}, nil
}

// New returns the configured Transcriber, or Disabled when voice is off.
func New(cfg Config, logger *zap.Logger) (Transcriber, error) {
	if !cfg.Enabled {
		return Disabled{}, nil
	}
	return NewWhisper(cfg, logger)
}

func (w *Whisper) Transcribe(ctx context.Context, audio []byte) (string, error) {
	if len(audio) == 0 {
		return "", ErrLowConfidence
	}

	resp, err := w.client.CreateTranscription(ctx, openai.AudioRequest{
		Model:    w.model,
		FilePath: "answer.wav",
		Reader:   bytes.NewReader(audio),
		Language: w.language,
	})
	if err != nil {
		w.logger.Warn("transcription failed", zap.Error(err))
		return "", fmt.Errorf("transcribe: %w", err)
	}

	w.logger.Debug("transcription done",
		zap.Int("audio_bytes", len(audio)),
		zap.Int("text_chars", len(resp.Text)))
	return resp.Text, nil
}
