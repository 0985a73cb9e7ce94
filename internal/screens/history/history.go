// Package history is the screen that lists past session reviews.
package history

import (
	"context"
	"fmt"
	"image/color"
	"sort"
	"strings"

	tea "charm.land/bubbletea/v2"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/mockprep/internal/router"
	"github.com/abhisek/mockprep/internal/screen"
	"github.com/abhisek/mockprep/internal/store"
	"github.com/abhisek/mockprep/internal/ui/layout"
	"github.com/abhisek/mockprep/internal/ui/theme"
)

// listLimit caps how many reviews the screen loads.
const listLimit = 50

type historyLoadedMsg struct {
	Reviews []store.ReviewRecord
	Stats   store.ReviewStats
	Err     error
}

// HistoryScreen displays stored reviews with their averages.
type HistoryScreen struct {
	repo     store.ReviewRepo
	reviews  []store.ReviewRecord
	stats    store.ReviewStats
	selected int
	expanded map[int]bool
	loaded   bool
	errMsg   string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates a new HistoryScreen.
func New(repo store.ReviewRepo) *HistoryScreen {
	return &HistoryScreen{
		repo:     repo,
		expanded: make(map[int]bool),
	}
}

func (s *HistoryScreen) Init() tea.Cmd {
	repo := s.repo
	return func() tea.Msg {
		if repo == nil {
			return historyLoadedMsg{}
		}
		ctx := context.Background()

		reviews, err := repo.ListReviews(ctx, listLimit)
		if err != nil {
			return historyLoadedMsg{Err: err}
		}
		stats, err := repo.Stats(ctx)
		if err != nil {
			return historyLoadedMsg{Reviews: reviews}
		}
		return historyLoadedMsg{Reviews: reviews, Stats: stats}
	}
}

func (s *HistoryScreen) Title() string {
	return "Past Reviews"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Comment"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.reviews = msg.Reviews
			s.stats = msg.Stats
		}
		s.loaded = true
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
			return s, nil
		case "down", "j":
			if s.selected < len(s.reviews)-1 {
				s.selected++
			}
			return s, nil
		case "enter":
			s.expanded[s.selected] = !s.expanded[s.selected]
			return s, nil
		}
	}
	return s, nil
}

func (s *HistoryScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Loading reviews...")
	}
	if len(s.reviews) == 0 {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("\n\n  No reviews yet. Finish an interview and rate it!")
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		theme.Subtitle.Render(s.summaryLine())))
	b.WriteString("\n\n")

	for i, r := range s.reviews {
		prefix := "  "
		if i == s.selected {
			prefix = "> "
		}

		line := fmt.Sprintf("%s%s  %-10s  %s  score %.1f",
			prefix, r.Timestamp.Local().Format("Jan 02, 2006 15:04"), r.Level, stars(r.Rating), r.AverageScore)

		style := lipgloss.NewStyle().Foreground(ratingColor(r.Rating))
		if i == s.selected {
			style = style.Foreground(theme.Primary).Bold(true)
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Render(line)))
		b.WriteString("\n")

		if s.expanded[i] {
			comment := r.Comment
			if comment == "" {
				comment = "No comment"
			}
			b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
				lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true).
					Width(min(width-8, 60)).Render(comment)))
			b.WriteString("\n")
		}
	}

	return lipgloss.NewStyle().MaxHeight(height).Render(b.String())
}

func (s *HistoryScreen) summaryLine() string {
	st := s.stats
	line := fmt.Sprintf("%d reviews   avg rating %.1f   avg score %.1f", st.Count, st.AvgRating, st.AvgScore)
	if len(st.ByLevelCount) == 0 {
		return line
	}
	levels := make([]string, 0, len(st.ByLevelCount))
	for lv := range st.ByLevelCount {
		levels = append(levels, lv)
	}
	sort.Strings(levels)
	for _, lv := range levels {
		line += fmt.Sprintf("   %s %d", lv, st.ByLevelCount[lv])
	}
	return line
}

func stars(rating int) string {
	rating = max(0, min(5, rating))
	return strings.Repeat("★", rating) + strings.Repeat("☆", 5-rating)
}

func ratingColor(rating int) color.Color {
	switch {
	case rating >= 4:
		return theme.Success
	case rating <= 2:
		return theme.Error
	default:
		return theme.Text
	}
}
