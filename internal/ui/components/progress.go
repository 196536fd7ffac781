package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abdulsamadj00-tech/Abdul-Samad/internal/ui/theme"
)

// ProgressBar displays a horizontal progress bar.
type ProgressBar struct {
	Label       string
	Percent     float64
	ShowPercent bool
	Width       int
}

// NewProgressBar creates a new progress bar.
func NewProgressBar(label string, percent float64, showPercent bool, width int) ProgressBar {
	return ProgressBar{
		Label:       label,
		Percent:     percent,
		ShowPercent: showPercent,
		Width:       width,
	}
}

// View renders the progress bar.
func (p ProgressBar) View() string {
	var result string

	if p.Label != "" {
		result += lipgloss.NewStyle().Foreground(theme.Text).Render(p.Label) + "  "
	}

	percentWidth := 0
	if p.ShowPercent {
		percentWidth = 6 // "  100%"
	}

	barWidth := max(p.Width-lipgloss.Width(result)-percentWidth, 4)
	filled := min(max(int(float64(barWidth)*p.Percent), 0), barWidth)

	result += lipgloss.NewStyle().Background(theme.Secondary).Render(strings.Repeat(" ", filled)) +
		lipgloss.NewStyle().Background(theme.Border).Render(strings.Repeat(" ", barWidth-filled))

	if p.ShowPercent {
		result += lipgloss.NewStyle().
			Foreground(theme.TextDim).
			Render(fmt.Sprintf("  %d%%", int(p.Percent*100)))
	}

	return result
}

// SplitBar renders correct and incorrect counts as a green/red bar scaled
// so that scale events fill width columns.
func SplitBar(correct, incorrect, scale, width int) string {
	if scale <= 0 || width <= 0 {
		return ""
	}
	c := correct * width / scale
	i := incorrect * width / scale
	if correct > 0 && c == 0 {
		c = 1
	}
	if incorrect > 0 && i == 0 {
		i = 1
	}
	return lipgloss.NewStyle().Foreground(theme.Success).Render(strings.Repeat("█", c)) +
		lipgloss.NewStyle().Foreground(theme.Error).Render(strings.Repeat("█", i))
}
