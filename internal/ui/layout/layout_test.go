package layout

import (
	"strings"
	"testing"

	"charm.land/lipgloss/v2"
)

func TestFitHints(t *testing.T) {
	hints := []KeyHint{
		{Key: "Enter", Description: "Next"},
		{Key: "Ctrl+P", Description: "Previous"},
		{Key: "Ctrl+T", Description: "Hint"},
		{Key: "Ctrl+C", Description: "Quit"},
	}

	if got := FitHints(hints, 200); len(got) != 4 {
		t.Errorf("wide footer kept %d hints, want 4", len(got))
	}

	got := FitHints(hints, 30)
	if len(got) != 2 {
		t.Fatalf("kept %d hints, want 2: %v", len(got), got)
	}
	if got[0].Key != "Enter" || got[1].Key != "Ctrl+C" {
		t.Errorf("kept %v, want Enter and Ctrl+C", got)
	}
	if hints[1].Key != "Ctrl+P" {
		t.Error("FitHints must not modify its input")
	}

	if got := FitHints(hints, 5); got != nil {
		t.Errorf("nothing fits, got %v", got)
	}
}

func TestClipLines(t *testing.T) {
	tests := []struct {
		in   string
		n    int
		want string
	}{
		{"a\nb\nc", 2, "a\nb"},
		{"a\nb", 5, "a\nb"},
		{"a", 0, ""},
	}
	for _, tt := range tests {
		if got := ClipLines(tt.in, tt.n); got != tt.want {
			t.Errorf("ClipLines(%q, %d) = %q, want %q", tt.in, tt.n, got, tt.want)
		}
	}
}

func TestRenderFrameHeight(t *testing.T) {
	header := RenderHeader("Interview", "Q 1/5", 80)
	footer := RenderFooter([]KeyHint{{Key: "Esc", Description: "Back"}}, 80)
	content := strings.Repeat("line\n", 100)

	out := RenderFrame(header, content, footer, 80, 24)
	if h := lipgloss.Height(out); h != 24 {
		t.Errorf("frame height = %d, want 24", h)
	}
	if !strings.Contains(out, "Q 1/5") || !strings.Contains(out, "MockPrep") {
		t.Error("header should carry brand and status")
	}
}

func TestIsTooSmall(t *testing.T) {
	if !IsTooSmall(79, 30) || !IsTooSmall(100, 23) || IsTooSmall(80, 24) {
		t.Error("minimum size is 80x24")
	}
}
