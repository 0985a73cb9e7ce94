package history

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/mockprep/internal/store"
)

type mockReviewRepo struct {
	reviews []store.ReviewRecord
	stats   store.ReviewStats
	err     error
}

func (m *mockReviewRepo) SaveReview(_ context.Context, _ store.Review) (int, error) {
	return 0, nil
}
func (m *mockReviewRepo) ListReviews(_ context.Context, _ int) ([]store.ReviewRecord, error) {
	return m.reviews, m.err
}
func (m *mockReviewRepo) Stats(_ context.Context) (store.ReviewStats, error) {
	return m.stats, nil
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func loaded(t *testing.T, repo store.ReviewRepo) *HistoryScreen {
	t.Helper()
	s := New(repo)
	s.Update(s.Init()())
	return s
}

func testRepo() *mockReviewRepo {
	now := time.Date(2026, 3, 4, 10, 0, 0, 0, time.UTC)
	return &mockReviewRepo{
		reviews: []store.ReviewRecord{
			{ID: 2, Timestamp: now, Review: store.Review{SessionID: "s2", Level: "Job", Rating: 5, Comment: "Tough questions", AverageScore: 7.5}},
			{ID: 1, Timestamp: now.Add(-time.Hour), Review: store.Review{SessionID: "s1", Level: "Internship", Rating: 2, AverageScore: 4}},
		},
		stats: store.ReviewStats{Count: 2, AvgRating: 3.5, AvgScore: 5.75, ByLevelCount: map[string]int{"Job": 1, "Internship": 1}},
	}
}

func TestHistoryScreen_Empty(t *testing.T) {
	s := loaded(t, &mockReviewRepo{})
	if !strings.Contains(s.View(100, 30), "No reviews yet") {
		t.Error("expected empty state")
	}
}

func TestHistoryScreen_NilRepo(t *testing.T) {
	s := loaded(t, nil)
	if !s.loaded {
		t.Error("screen should finish loading without a repo")
	}
}

func TestHistoryScreen_Error(t *testing.T) {
	s := loaded(t, &mockReviewRepo{err: errors.New("db locked")})
	if !strings.Contains(s.View(100, 30), "db locked") {
		t.Error("expected the error in the view")
	}
}

func TestHistoryScreen_ListAndStats(t *testing.T) {
	s := loaded(t, testRepo())
	view := s.View(120, 30)

	for _, want := range []string{"2 reviews", "avg rating 3.5", "★★★★★", "★★☆☆☆", "Internship 1"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestHistoryScreen_ExpandComment(t *testing.T) {
	s := loaded(t, testRepo())
	if strings.Contains(s.View(120, 30), "Tough questions") {
		t.Fatal("comment should be hidden until expanded")
	}
	s.Update(specialKey(tea.KeyEnter))
	if !strings.Contains(s.View(120, 30), "Tough questions") {
		t.Error("comment should show once expanded")
	}
}

func TestHistoryScreen_Navigation(t *testing.T) {
	s := loaded(t, testRepo())
	s.Update(specialKey(tea.KeyUp))
	if s.selected != 0 {
		t.Errorf("selected = %d, want 0", s.selected)
	}
	s.Update(specialKey(tea.KeyDown))
	s.Update(specialKey(tea.KeyDown))
	if s.selected != 1 {
		t.Errorf("selected = %d, want 1", s.selected)
	}
	_, cmd := s.Update(specialKey(tea.KeyEscape))
	if cmd == nil {
		t.Error("expected a pop command on Esc")
	}
}
