package logger

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestTruncateForLog(t *testing.T) {
	tests := []struct {
		in    string
		limit int
		want  string
	}{
		{"  short  ", 10, "short"},
		{"résumé text", 6, "résumé..."},
		{"anything", 0, ""},
	}
	for _, tt := range tests {
		if got := TruncateForLog(tt.in, tt.limit); got != tt.want {
			t.Errorf("TruncateForLog(%q, %d) = %q, want %q", tt.in, tt.limit, got, tt.want)
		}
	}
}

func TestWithSession(t *testing.T) {
	core, observed := observer.New(zapcore.InfoLevel)
	l := zap.New(core)

	WithSession(l, "abc").Info("started")
	WithSession(l, "  ").Info("no id")

	entries := observed.All()
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if got := entries[0].ContextMap()[FieldSession]; got != "abc" {
		t.Fatalf("session field = %v", got)
	}
	if _, ok := entries[1].ContextMap()[FieldSession]; ok {
		t.Fatal("blank session id should not be attached")
	}
}

func TestWithModel(t *testing.T) {
	core, observed := observer.New(zapcore.DebugLevel)
	WithModel(zap.New(core), "gemini", "").Debug("call")

	ctx := observed.All()[0].ContextMap()
	if ctx[FieldProvider] != "gemini" {
		t.Fatalf("provider field = %v", ctx[FieldProvider])
	}
	if _, ok := ctx[FieldModel]; ok {
		t.Fatal("empty model should be omitted")
	}
}

func TestNilSafe(t *testing.T) {
	if WithFields(nil) == nil || OrNop(nil) == nil || WithSession(nil, "x") == nil {
		t.Fatal("nil logger helpers must return a usable logger")
	}
}

func TestNew(t *testing.T) {
	l, err := New(true, true)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if !l.Core().Enabled(zapcore.DebugLevel) {
		t.Fatal("debug level should be enabled")
	}
}
