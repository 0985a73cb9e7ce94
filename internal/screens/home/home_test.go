package home

import (
	"context"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/mockprep/internal/documents"
	"github.com/abhisek/mockprep/internal/interview"
	"github.com/abhisek/mockprep/internal/questiongen"
	"github.com/abhisek/mockprep/internal/router"
	"github.com/abhisek/mockprep/internal/screens"
	"github.com/abhisek/mockprep/internal/screens/history"
	"github.com/abhisek/mockprep/internal/screens/setup"
	"github.com/abhisek/mockprep/internal/store"
)

type mockReviewRepo struct {
	records []store.ReviewRecord
	stats   store.ReviewStats
}

func (m *mockReviewRepo) SaveReview(_ context.Context, _ store.Review) (int, error) {
	return 0, nil
}
func (m *mockReviewRepo) ListReviews(_ context.Context, limit int) ([]store.ReviewRecord, error) {
	if limit > 0 && len(m.records) > limit {
		return m.records[:limit], nil
	}
	return m.records, nil
}
func (m *mockReviewRepo) Stats(_ context.Context) (store.ReviewStats, error) {
	return m.stats, nil
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

// deliver runs cmd, unpacking batches, and feeds the results to h.
func deliver(h *HomeScreen, cmd tea.Cmd) {
	if cmd == nil {
		return
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		for _, c := range batch {
			deliver(h, c)
		}
		return
	}
	h.Update(msg)
}

func testEnv(repo store.ReviewRepo) *screens.Env {
	reader := documents.ReaderFunc(func(_ string, data []byte) (string, error) { return string(data), nil })
	return &screens.Env{
		Controller: interview.New(&questiongen.Stub{}, documents.NewClassifier(reader, documents.DefaultConfig(), nil)),
		Reviews:    repo,
	}
}

func TestHomeScreen_StartInterview(t *testing.T) {
	h := New(testEnv(&mockReviewRepo{}))
	_, cmd := h.Update(specialKey(tea.KeyEnter))
	if cmd == nil {
		t.Fatal("expected a command")
	}
	push, ok := cmd().(router.PushScreenMsg)
	if !ok {
		t.Fatal("expected PushScreenMsg")
	}
	if _, ok := push.Screen.(*setup.SetupScreen); !ok {
		t.Errorf("pushed %T, want *setup.SetupScreen", push.Screen)
	}
}

func TestHomeScreen_PastReviews(t *testing.T) {
	h := New(testEnv(&mockReviewRepo{}))
	h.Update(specialKey(tea.KeyDown))
	_, cmd := h.Update(specialKey(tea.KeyEnter))
	push, ok := cmd().(router.PushScreenMsg)
	if !ok {
		t.Fatal("expected PushScreenMsg")
	}
	if _, ok := push.Screen.(*history.HistoryScreen); !ok {
		t.Errorf("pushed %T, want *history.HistoryScreen", push.Screen)
	}
}

func TestHomeScreen_ReviewsDisabledWithoutStore(t *testing.T) {
	h := New(testEnv(nil))
	h.Update(specialKey(tea.KeyDown))
	if h.menu.Selected != 2 {
		t.Errorf("Selected = %d, PAST REVIEWS should be skipped", h.menu.Selected)
	}
}

func TestHomeScreen_Stats(t *testing.T) {
	repo := &mockReviewRepo{
		records: []store.ReviewRecord{{Review: store.Review{Rating: 5}}},
		stats:   store.ReviewStats{Count: 3, AvgRating: 4.3, AvgScore: 6.5},
	}
	h := New(testEnv(repo))
	deliver(h, h.Init())

	if h.mascot() != MascotCelebrating {
		t.Errorf("mascot = %v, want celebrating after a good rating", h.mascot())
	}
	view := h.View(120, 40)
	if !strings.Contains(view, "3 SESSIONS") || !strings.Contains(view, "4.3 RATING") {
		t.Errorf("view missing stats:\n%s", view)
	}
}

func TestHomeScreen_Warning(t *testing.T) {
	env := testEnv(&mockReviewRepo{})
	env.Warning = "No LLM API key found"
	h := New(env)
	if h.mascot() != MascotAlert {
		t.Error("expected alert mascot")
	}
	if !strings.Contains(h.View(120, 40), "No LLM API key found") {
		t.Error("view should show the warning")
	}
}

func TestHomeScreen_CompactView(t *testing.T) {
	h := New(testEnv(&mockReviewRepo{}))
	if !strings.Contains(h.View(70, 20), titleCompact) {
		t.Error("expected compact title on a small terminal")
	}
}

func TestHomeScreen_Hotkeys(t *testing.T) {
	h := New(testEnv(&mockReviewRepo{}))
	_, cmd := h.Update(tea.KeyPressMsg{Code: 'p', Text: "p"})
	if cmd == nil {
		t.Fatal("p should open past reviews")
	}
	if push, ok := cmd().(router.PushScreenMsg); !ok {
		t.Error("expected PushScreenMsg")
	} else if _, ok := push.Screen.(*history.HistoryScreen); !ok {
		t.Errorf("pushed %T, want *history.HistoryScreen", push.Screen)
	}

	_, cmd = h.Update(tea.KeyPressMsg{Code: 'q', Text: "q"})
	if cmd == nil {
		t.Fatal("q should quit")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.QuitMsg")
	}
}

func TestHomeScreen_ResumeReloadsStats(t *testing.T) {
	repo := &mockReviewRepo{stats: store.ReviewStats{Count: 1, AvgRating: 3}}
	h := New(testEnv(repo))
	deliver(h, h.Init())

	repo.stats = store.ReviewStats{Count: 2, AvgRating: 4}
	repo.records = []store.ReviewRecord{{Review: store.Review{Rating: 5}}}
	deliver(h, h.Resume())

	if h.stats.Count != 2 {
		t.Errorf("stats not reloaded: %+v", h.stats)
	}
	if h.lastRating != 5 {
		t.Errorf("lastRating = %d, want 5", h.lastRating)
	}
}
