package logger

import (
	"strings"

	"go.uber.org/zap"
)

const (
	// FieldSession is the structured log key for the practice session ID.
	FieldSession = "session_id"
	// FieldTurn is the structured log key for a zero-based turn index.
	FieldTurn = "turn"
	// FieldProvider is the structured log key for the model provider name.
	FieldProvider = "llm_provider"
	// FieldModel is the structured log key for the model identifier.
	FieldModel = "llm_model"
)

// WithFields attaches fields to the logger, defaulting to a no-op logger
// when nil.
func WithFields(l *zap.Logger, fields ...zap.Field) *zap.Logger {
	l = OrNop(l)
	if len(fields) == 0 {
		return l
	}
	return l.With(fields...)
}

// WithSession tags every entry with the session ID. Blank IDs are ignored.
func WithSession(l *zap.Logger, sessionID string) *zap.Logger {
	if strings.TrimSpace(sessionID) == "" {
		return OrNop(l)
	}
	return WithFields(l, zap.String(FieldSession, sessionID))
}

// WithModel tags every entry with the provider and model, skipping blanks.
func WithModel(l *zap.Logger, provider, model string) *zap.Logger {
	var fields []zap.Field
	if p := strings.TrimSpace(provider); p != "" {
		fields = append(fields, zap.String(FieldProvider, p))
	}
	if m := strings.TrimSpace(model); m != "" {
		fields = append(fields, zap.String(FieldModel, m))
	}
	return WithFields(l, fields...)
}
