// Package review is the screen that asks the candidate to rate a finished
// session.
package review

import (
	"context"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/mockprep/internal/router"
	"github.com/abhisek/mockprep/internal/screen"
	"github.com/abhisek/mockprep/internal/screens"
	"github.com/abhisek/mockprep/internal/ui/components"
	"github.com/abhisek/mockprep/internal/ui/layout"
	"github.com/abhisek/mockprep/internal/ui/theme"
)

// SavedMsg is delivered to the screen below once the review is stored.
type SavedMsg struct {
	ID int
}

type savedMsg struct {
	ID  int
	Err error
}

// ReviewScreen collects a 1-5 rating and an optional comment.
type ReviewScreen struct {
	env     *screens.Env
	rating  int
	comment components.TextInput
	busy    bool
	errMsg  string
}

var _ screen.Screen = (*ReviewScreen)(nil)
var _ screen.KeyHintProvider = (*ReviewScreen)(nil)

// New creates a ReviewScreen.
func New(env *screens.Env) *ReviewScreen {
	return &ReviewScreen{
		env:     env,
		comment: components.NewTextInput("What worked, what didn't? (optional)", false, 500),
	}
}

func (s *ReviewScreen) Init() tea.Cmd {
	return s.comment.Init()
}

func (s *ReviewScreen) Title() string {
	return "Rate this session"
}

func (s *ReviewScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Alt+1-5", Description: "Rating"},
		{Key: "←→", Description: "Adjust"},
		{Key: "Enter", Description: "Save"},
		{Key: "Esc", Description: "Skip"},
	}
}

// Rating returns the selected rating, 0 when none.
func (s *ReviewScreen) Rating() int {
	return s.rating
}

func (s *ReviewScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case savedMsg:
		s.busy = false
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
			return s, nil
		}
		id := msg.ID
		return s, tea.Sequence(
			func() tea.Msg { return router.PopScreenMsg{} },
			func() tea.Msg { return SavedMsg{ID: id} },
		)

	case tea.KeyMsg:
		if s.busy {
			return s, nil
		}
		key := msg.String()
		switch key {
		case "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "enter":
			return s.save()
		case "left":
			if s.comment.Value() == "" {
				s.rating = max(1, s.rating-1)
				return s, nil
			}
		case "right":
			if s.comment.Value() == "" {
				s.rating = min(5, max(1, s.rating+1))
				return s, nil
			}
		}
		if len(key) == 5 && strings.HasPrefix(key, "alt+") && key[4] >= '1' && key[4] <= '5' {
			s.rating = int(key[4] - '0')
			return s, nil
		}
		// A bare digit before any comment text picks the rating.
		if s.comment.Value() == "" && len(key) == 1 && key[0] >= '1' && key[0] <= '5' {
			s.rating = int(key[0] - '0')
			return s, nil
		}
	}

	var cmd tea.Cmd
	s.comment, cmd = s.comment.Update(msg)
	return s, cmd
}

func (s *ReviewScreen) save() (screen.Screen, tea.Cmd) {
	if s.rating == 0 {
		s.errMsg = "Pick a rating from 1 to 5 first."
		return s, nil
	}
	if s.env.Reviews == nil {
		s.errMsg = "Reviews are not being stored in this session."
		return s, nil
	}
	s.busy = true
	s.errMsg = ""
	rv := s.env.Controller.ReviewTuple(s.rating, strings.TrimSpace(s.comment.Value()))
	repo := s.env.Reviews
	return s, func() tea.Msg {
		id, err := repo.SaveReview(context.Background(), rv)
		return savedMsg{ID: id, Err: err}
	}
}

func (s *ReviewScreen) View(width, height int) string {
	var stars strings.Builder
	for i := 1; i <= 5; i++ {
		if i <= s.rating {
			stars.WriteString(theme.Selected.Render("★ "))
		} else {
			stars.WriteString(theme.Hint.Render("☆ "))
		}
	}

	body := theme.Title.Render("How useful was this practice session?") + "\n\n" +
		stars.String() + "\n\n" +
		s.comment.View()
	if s.busy {
		body += "\n\n" + theme.Hint.Render("Saving...")
	}
	if s.errMsg != "" {
		body += "\n\n" + theme.Bad.Render(s.errMsg)
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, theme.Card.Render(body))
}
