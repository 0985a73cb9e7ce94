package home

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/mockprep/internal/ui/theme"
)

// MascotVariant selects which mascot art to display.
type MascotVariant int

const (
	MascotIdle        MascotVariant = iota
	MascotCelebrating               // last session rated well
	MascotAlert                     // setup needs attention
)

const mascotIdle = `┌─────┐
│ ◉ ◉ │
│  ▽  │
│ Q&A │
└─────┘`

const mascotCelebrating = `┌─────┐
│ ★ ★ │
│  ◡  │
│ Q&A │
└─╥═╥─┘
  ╚═╝`

const mascotAlert = `┌─────┐
│ ◉ ◉ │ !
│  △  │
│ Q&A │
└─────┘`

// RenderMascot returns the mascot art for the given variant.
func RenderMascot(v MascotVariant) string {
	art, fg := mascotIdle, theme.Primary
	switch v {
	case MascotCelebrating:
		art, fg = mascotCelebrating, theme.Success
	case MascotAlert:
		art, fg = mascotAlert, theme.Accent
	}
	return lipgloss.NewStyle().Foreground(fg).Render(art)
}
