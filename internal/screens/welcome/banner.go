package welcome

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/mockprep/internal/ui/theme"
)

const bannerArt = `
 ███╗   ███╗ ██████╗  ██████╗██╗  ██╗██████╗ ██████╗ ███████╗██████╗
 ████╗ ████║██╔═══██╗██╔════╝██║ ██╔╝██╔══██╗██╔══██╗██╔════╝██╔══██╗
 ██╔████╔██║██║   ██║██║     █████╔╝ ██████╔╝██████╔╝█████╗  ██████╔╝
 ██║╚██╔╝██║██║   ██║██║     ██╔═██╗ ██╔═══╝ ██╔══██╗██╔══╝  ██╔═══╝
 ██║ ╚═╝ ██║╚██████╔╝╚██████╗██║  ██╗██║     ██║  ██║███████╗██║
 ╚═╝     ╚═╝ ╚═════╝  ╚═════╝╚═╝  ╚═╝╚═╝     ╚═╝  ╚═╝╚══════╝╚═╝`

const bannerCompact = "M O C K P R E P"

// RenderBanner returns the banner styled in the primary color, with a
// compact fallback below 72 columns.
func RenderBanner(width int) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true)

	if width < 72 {
		return style.Render(bannerCompact)
	}
	return style.Render(bannerArt)
}
