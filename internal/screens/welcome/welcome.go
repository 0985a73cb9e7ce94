// Package welcome is the splash shown before the home screen.
package welcome

import (
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/mockprep/internal/router"
	"github.com/abhisek/mockprep/internal/screen"
	"github.com/abhisek/mockprep/internal/ui/theme"
)

const (
	tickInterval = 80 * time.Millisecond
	bannerAfter  = 1200 * time.Millisecond
	autoAdvance  = 6 * time.Second
	blinkEvery   = 400 * time.Millisecond
)

// openingLine is typed out inside the interviewer's speech bubble.
const openingLine = "So, tell me about yourself."

const interviewerFace = `   ┌───────┐
   │ ◉   ◉ │
   │  ───  │
   └───┬───┘`

type tickMsg time.Time

// WelcomeScreen types the interviewer's opening line, then shows the banner.
// Any key, or six seconds of waiting, hands over to the home screen.
type WelcomeScreen struct {
	next    func() screen.Screen
	elapsed time.Duration
	typed   int
	done    bool
}

var _ screen.Screen = (*WelcomeScreen)(nil)

// New creates a WelcomeScreen that replaces itself with next().
func New(next func() screen.Screen) *WelcomeScreen {
	return &WelcomeScreen{next: next}
}

func (w *WelcomeScreen) Title() string {
	return ""
}

func (w *WelcomeScreen) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (w *WelcomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg.(type) {
	case tickMsg:
		if w.done {
			return w, nil
		}
		w.elapsed += tickInterval
		if w.typed < len([]rune(openingLine)) {
			w.typed++
		}
		if w.elapsed >= autoAdvance {
			return w, w.handOver()
		}
		return w, tick()

	case tea.KeyPressMsg:
		return w, w.handOver()
	}
	return w, nil
}

// handOver builds the next screen once; later calls return nil.
func (w *WelcomeScreen) handOver() tea.Cmd {
	if w.done {
		return nil
	}
	w.done = true
	next := w.next()
	return func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: next}
	}
}

// Typed returns the part of the opening line shown so far.
func (w *WelcomeScreen) Typed() string {
	return string([]rune(openingLine)[:w.typed])
}

func (w *WelcomeScreen) View(width, height int) string {
	line := w.Typed()
	if w.typed < len([]rune(openingLine)) || (w.elapsed/blinkEvery)%2 == 0 {
		line += "▌"
	}
	bubble := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Secondary).
		Foreground(theme.Text).
		Padding(0, 1).
		Width(len([]rune(openingLine)) + 5).
		Render(line)
	face := lipgloss.NewStyle().Foreground(theme.Primary).Render(interviewerFace)

	sections := []string{bubble, face}

	if w.elapsed >= bannerAfter {
		tagline := lipgloss.NewStyle().
			Foreground(theme.Text).
			Bold(true).
			Render("Rehearse the interview before the interview.")
		hint := lipgloss.NewStyle().
			Foreground(theme.TextDim).
			Italic(true).
			Render("press any key to continue")
		sections = append(sections, "", RenderBanner(width), "", tagline, "", hint)
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, strings.Join(sections, "\n"))
}
