// Package home is the main menu.
package home

import (
	"context"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/mockprep/internal/router"
	"github.com/abhisek/mockprep/internal/screen"
	"github.com/abhisek/mockprep/internal/screens"
	"github.com/abhisek/mockprep/internal/screens/history"
	"github.com/abhisek/mockprep/internal/screens/setup"
	"github.com/abhisek/mockprep/internal/selfupdate"
	"github.com/abhisek/mockprep/internal/store"
	"github.com/abhisek/mockprep/internal/ui/components"
)

type statsMsg struct {
	Stats      store.ReviewStats
	LastRating int
}

type updateMsg struct {
	Latest string
}

// HomeScreen is the main menu with a small practice dashboard.
type HomeScreen struct {
	env  *screens.Env
	menu components.Menu

	stats      store.ReviewStats
	lastRating int
	latest     string
}

var (
	_ screen.Screen  = (*HomeScreen)(nil)
	_ screen.Resumer = (*HomeScreen)(nil)
)

// New creates a new HomeScreen.
func New(env *screens.Env) *HomeScreen {
	items := []components.MenuItem{
		{Label: "START INTERVIEW", Key: "s", Disabled: env.Controller == nil, Action: func() tea.Cmd {
			return func() tea.Msg { return router.PushScreenMsg{Screen: setup.New(env)} }
		}},
		{Label: "PAST REVIEWS", Key: "p", Disabled: env.Reviews == nil, Action: func() tea.Cmd {
			return func() tea.Msg { return router.PushScreenMsg{Screen: history.New(env.Reviews)} }
		}},
		{Label: "QUIT", Key: "q", Action: func() tea.Cmd {
			return tea.Quit
		}},
	}
	return &HomeScreen{env: env, menu: components.NewMenu(items)}
}

func (h *HomeScreen) Init() tea.Cmd {
	cmds := []tea.Cmd{h.loadStats()}
	if h.env.CheckUpdates && h.env.Version != "" {
		current := h.env.Version
		cmds = append(cmds, func() tea.Msg {
			ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
			defer cancel()
			res, err := selfupdate.NewChecker().Check(ctx, &selfupdate.CheckInput{Version: current})
			if err != nil || !res.UpdateAvailable {
				return nil
			}
			return updateMsg{Latest: res.LatestVersion}
		})
	}
	return tea.Batch(cmds...)
}

// Resume reloads the dashboard when the user comes back from an interview or
// the review form.
func (h *HomeScreen) Resume() tea.Cmd {
	return h.loadStats()
}

func (h *HomeScreen) loadStats() tea.Cmd {
	repo := h.env.Reviews
	if repo == nil {
		return nil
	}
	return func() tea.Msg {
		ctx := context.Background()
		var msg statsMsg
		msg.Stats, _ = repo.Stats(ctx)
		if last, err := repo.ListReviews(ctx, 1); err == nil && len(last) > 0 {
			msg.LastRating = last[0].Rating
		}
		return msg
	}
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case statsMsg:
		h.stats = msg.Stats
		h.lastRating = msg.LastRating
		return h, nil
	case updateMsg:
		h.latest = msg.Latest
		return h, nil
	}

	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) Title() string {
	return "Home"
}

// mascot picks the mascot mood from the dashboard state.
func (h *HomeScreen) mascot() MascotVariant {
	switch {
	case h.env.Warning != "":
		return MascotAlert
	case h.lastRating >= 4:
		return MascotCelebrating
	default:
		return MascotIdle
	}
}
