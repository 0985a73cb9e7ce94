// Package screen defines what the router needs from a page of the TUI.
package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/mockprep/internal/ui/layout"
)

// Screen is one page on the router's stack. View receives the content area
// only; the frame draws the header and footer.
type Screen interface {
	Init() tea.Cmd
	Update(msg tea.Msg) (Screen, tea.Cmd)
	View(width, height int) string
	Title() string
}

// KeyHintProvider replaces the default footer hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// StatusProvider puts a short status, such as a question counter, in the
// header.
type StatusProvider interface {
	Status() string
}

// Resumer is told when it becomes the top screen again after the screens
// above it were popped.
type Resumer interface {
	Resume() tea.Cmd
}
