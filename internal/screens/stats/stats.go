// Package stats shows recall strength, streak, badges, the retention
// chart and the weak-card list.
package stats

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abdulsamadj00-tech/Abdul-Samad/internal/router"
	"github.com/abdulsamadj00-tech/Abdul-Samad/internal/screen"
	"github.com/abdulsamadj00-tech/Abdul-Samad/internal/session"
	"github.com/abdulsamadj00-tech/Abdul-Samad/internal/stats"
	"github.com/abdulsamadj00-tech/Abdul-Samad/internal/ui/components"
	"github.com/abdulsamadj00-tech/Abdul-Samad/internal/ui/layout"
	"github.com/abdulsamadj00-tech/Abdul-Samad/internal/ui/theme"
)

const maxChartDays = 7

// StatsScreen renders a read-only view of the session statistics.
type StatsScreen struct {
	sess *session.Session
}

var (
	_ screen.Screen          = (*StatsScreen)(nil)
	_ screen.KeyHintProvider = (*StatsScreen)(nil)
)

// New creates a StatsScreen.
func New(sess *session.Session) *StatsScreen {
	return &StatsScreen{sess: sess}
}

func (s *StatsScreen) Init() tea.Cmd { return nil }

func (s *StatsScreen) Title() string { return "Stats" }

func (s *StatsScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{{Key: "Esc", Description: "Back"}}
}

func (s *StatsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if _, ok := msg.(screen.SessionChangedMsg); ok && s.sess.Phase() != session.PhaseReady {
		return s, func() tea.Msg { return router.PopToRootMsg{} }
	}
	return s, nil
}

func (s *StatsScreen) View(width, height int) string {
	cw := components.ContentWidth(width)
	snap := s.sess.Snapshot()
	sum := session.BuildSummary(snap)

	overview := strings.Join([]string{
		components.NewProgressBar("Recall strength", float64(snap.Stats.RecallStrength)/100, true, cw-8).View(),
		"",
		theme.Body.Render(fmt.Sprintf("Topics mastered  %d / %d", snap.Stats.TopicsMastered, sum.Cards)),
		theme.Body.Render(fmt.Sprintf("Current streak   %d", snap.Stats.Streak)),
		theme.Body.Render(fmt.Sprintf("Cards reviewed   %d", sum.Reviewed)),
	}, "\n")

	sections := []string{
		components.Card(overview, cw),
		components.Card(RenderBadges(sum.Badges), cw),
		components.Card(RenderChart(stats.ChartPoints(snap.Stats.ProgressHistory), cw-8), cw),
	}

	if weak := stats.WeakCards(snap.Flashcards); len(weak) > 0 && !layout.IsCompactHeight(height+8) {
		lines := []string{theme.Heading.Render("Review these")}
		for _, c := range weak {
			lines = append(lines, theme.Performance("hard").Render("• ")+theme.Body.Render(c.Question))
		}
		sections = append(sections, components.Card(strings.Join(lines, "\n"), cw))
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Top, strings.Join(sections, "\n"))
}

// RenderBadges lists the achievements, earned ones highlighted.
func RenderBadges(badges []stats.Badge) string {
	lines := []string{theme.Heading.Render("Badges")}
	for _, b := range badges {
		mark := lipgloss.NewStyle().Foreground(theme.TextDim).Render("○ ")
		name := lipgloss.NewStyle().Foreground(theme.TextDim).Render(b.Name)
		if b.Earned {
			mark = lipgloss.NewStyle().Foreground(theme.Highlight).Render("★ ")
			name = lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(b.Name)
		}
		lines = append(lines, mark+name+"  "+theme.Hint.Render(b.Description))
	}
	return strings.Join(lines, "\n")
}

// RenderChart draws the last week of the retention curve as one bar per
// day.
func RenderChart(points []stats.ChartPoint, width int) string {
	if len(points) > maxChartDays {
		points = points[len(points)-maxChartDays:]
	}
	scale := 0
	for _, p := range points {
		scale = max(scale, p.Correct+p.Incorrect)
	}

	lines := []string{theme.Heading.Render("Retention")}
	if scale == 0 {
		return strings.Join(append(lines, theme.Hint.Render("Grade some cards to see your progress.")), "\n")
	}
	barWidth := max(width-16, 4)
	for _, p := range points {
		label := lipgloss.NewStyle().Width(7).Foreground(theme.TextDim).Render(p.Label)
		counts := theme.Hint.Render(fmt.Sprintf(" %d/%d", p.Correct, p.Correct+p.Incorrect))
		lines = append(lines, label+components.SplitBar(p.Correct, p.Incorrect, scale, barWidth)+counts)
	}
	return strings.Join(lines, "\n")
}
