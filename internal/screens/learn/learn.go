// Package learn shows the generated learning material and the MCQ quiz.
package learn

import (
	"fmt"
	"strings"

	"charm.land/bubbles/v2/viewport"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abdulsamadj00-tech/Abdul-Samad/internal/deck"
	"github.com/abdulsamadj00-tech/Abdul-Samad/internal/screen"
	"github.com/abdulsamadj00-tech/Abdul-Samad/internal/session"
	"github.com/abdulsamadj00-tech/Abdul-Samad/internal/ui/components"
	"github.com/abdulsamadj00-tech/Abdul-Samad/internal/ui/layout"
	"github.com/abdulsamadj00-tech/Abdul-Samad/internal/ui/theme"
)

type tab int

const (
	tabMaterial tab = iota
	tabQuiz
)

// LearnScreen has two tabs: the material summary and the MCQ quiz.
type LearnScreen struct {
	material *deck.LearningMaterial
	quiz     []components.MultiChoice
	current  int
	tab      tab
	viewport viewport.Model
	width    int
}

var (
	_ screen.Screen          = (*LearnScreen)(nil)
	_ screen.KeyHintProvider = (*LearnScreen)(nil)
)

// New creates a LearnScreen over the session's current artifacts.
func New(sess *session.Session) *LearnScreen {
	snap := sess.Snapshot()
	quiz := make([]components.MultiChoice, len(snap.MCQs))
	for i, q := range snap.MCQs {
		quiz[i] = components.NewMultiChoice(q)
	}
	vp := viewport.New()
	vp.SoftWrap = true
	return &LearnScreen{
		material: snap.Material,
		quiz:     quiz,
		viewport: vp,
	}
}

func (l *LearnScreen) Init() tea.Cmd { return nil }

func (l *LearnScreen) Title() string {
	if l.tab == tabQuiz {
		return "Quiz"
	}
	return "Learn"
}

func (l *LearnScreen) KeyHints() []layout.KeyHint {
	if l.tab == tabQuiz {
		return []layout.KeyHint{
			{Key: "1-5", Description: "Answer"},
			{Key: "n/p", Description: "Next/Prev"},
			{Key: "Tab", Description: "Material"},
			{Key: "Esc", Description: "Back"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Scroll"},
		{Key: "Tab", Description: "Quiz"},
		{Key: "Esc", Description: "Back"},
	}
}

// Score returns the number of answered and correctly answered questions.
func (l *LearnScreen) Score() (answered, correct int) {
	for _, q := range l.quiz {
		if q.Submitted() {
			answered++
			if q.Result.Correct {
				correct++
			}
		}
	}
	return answered, correct
}

func (l *LearnScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		if l.tab == tabMaterial {
			var cmd tea.Cmd
			l.viewport, cmd = l.viewport.Update(msg)
			return l, cmd
		}
		return l, nil
	}

	if kmsg.String() == "tab" {
		if l.tab == tabMaterial {
			l.tab = tabQuiz
		} else {
			l.tab = tabMaterial
		}
		return l, nil
	}

	if l.tab == tabMaterial {
		var cmd tea.Cmd
		l.viewport, cmd = l.viewport.Update(msg)
		return l, cmd
	}

	if len(l.quiz) == 0 {
		return l, nil
	}
	switch kmsg.String() {
	case "n", "right":
		if l.current < len(l.quiz)-1 {
			l.current++
		}
	case "p", "left":
		if l.current > 0 {
			l.current--
		}
	default:
		var cmd tea.Cmd
		l.quiz[l.current], cmd = l.quiz[l.current].Update(msg)
		return l, cmd
	}
	return l, nil
}

func (l *LearnScreen) View(width, height int) string {
	cw := components.ContentWidth(width)
	if l.tab == tabQuiz {
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, l.viewQuiz(cw))
	}

	l.viewport.SetWidth(cw)
	l.viewport.SetHeight(max(height-2, 1))
	if l.width != cw {
		l.width = cw
		l.viewport.SetContent(RenderMaterial(l.material, cw))
	}
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, l.viewport.View())
}

func (l *LearnScreen) viewQuiz(cw int) string {
	if len(l.quiz) == 0 {
		return theme.Hint.Render("No questions were generated for this text.")
	}
	answered, correct := l.Score()
	header := theme.Heading.Render(fmt.Sprintf("Question %d of %d", l.current+1, len(l.quiz))) +
		theme.Hint.Render(fmt.Sprintf("   score %d/%d", correct, answered))
	body := l.quiz[l.current].View(cw - 8)
	if src := l.quiz[l.current].Question.Source; src != "" {
		body += "\n\n" + theme.Hint.Render("Source: "+src)
	}
	return header + "\n\n" + components.Card(body, cw)
}

// RenderMaterial formats learning material as plain styled text.
func RenderMaterial(m *deck.LearningMaterial, width int) string {
	if m == nil {
		return theme.Hint.Render("Nothing generated yet.")
	}
	var b strings.Builder
	b.WriteString(theme.Heading.Render("Summary"))
	b.WriteString("\n")
	b.WriteString(layout.Wrap(m.Summary, width))
	b.WriteString("\n\n")

	if len(m.KeyPoints) > 0 {
		b.WriteString(theme.Heading.Render("Key Points"))
		b.WriteString("\n")
		for _, p := range m.KeyPoints {
			b.WriteString(layout.Wrap("• "+p, width))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	if len(m.Mnemonics) > 0 {
		b.WriteString(theme.Heading.Render("Mnemonics"))
		b.WriteString("\n")
		concept := lipgloss.NewStyle().Foreground(theme.Accent).Bold(true)
		for _, mn := range m.Mnemonics {
			b.WriteString(concept.Render(mn.Concept))
			b.WriteString("\n")
			b.WriteString(layout.Wrap("  "+mn.Mnemonic, width))
			b.WriteString("\n")
		}
	}

	if m.Source != "" {
		b.WriteString("\n")
		b.WriteString(theme.Hint.Render("Source: " + m.Source))
	}
	return b.String()
}
