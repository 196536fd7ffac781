package components

import (
	"charm.land/lipgloss/v2"

	"github.com/abdulsamadj00-tech/Abdul-Samad/internal/ui/theme"
)

// ContentWidth returns the inner width shared by every boxed section on a
// screen so they line up.
func ContentWidth(frameWidth int) int {
	return min(max(frameWidth-6, 20), 72)
}

// Frame wraps content in a double border centered in width x height.
func Frame(content string, width, height int) string {
	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Primary).
		Width(width-2).
		Height(height-2).
		Align(lipgloss.Center, lipgloss.Center).
		Render(content)
}

// Card wraps content in a rounded border at content width cw.
func Card(content string, cw int) string {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Width(cw-2).
		Padding(1, 2).
		Render(content)
}

// FlashCard renders the front or back of a study card.
func FlashCard(label, body string, flipped bool, cw int) string {
	border := theme.Primary
	if flipped {
		border = theme.Secondary
	}
	head := lipgloss.NewStyle().Foreground(border).Bold(true).Render(label)
	text := lipgloss.NewStyle().Foreground(theme.Text).Width(cw - 8).Render(body)
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Width(cw-2).
		Padding(1, 2).
		Align(lipgloss.Center).
		Render(head + "\n\n" + text)
}
