package welcome

import (
	"charm.land/lipgloss/v2"

	"github.com/abdulsamadj00-tech/Abdul-Samad/internal/ui/theme"
)

const bannerArt = `
 █▀▄▀█ █▀▀ █▀▄▀█ █▀█ █▀█ █▄█   █▀▄▀█ ▄▀█ █▀ ▀█▀ █▀▀ █▀█
 █░▀░█ ██▄ █░▀░█ █▄█ █▀▄ ░█░   █░▀░█ █▀█ ▄█ ░█░ ██▄ █▀▄`

const bannerCompact = "M E M O R Y   M A S T E R"

// RenderBanner returns the title banner in the primary color, falling back
// to spaced letters below 60 columns.
func RenderBanner(width int) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true)

	if width < 60 {
		return style.Render(bannerCompact)
	}
	return style.Render(bannerArt)
}
