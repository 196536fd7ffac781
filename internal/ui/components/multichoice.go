package components

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abdulsamadj00-tech/Abdul-Samad/internal/deck"
	"github.com/abdulsamadj00-tech/Abdul-Samad/internal/studygen"
	"github.com/abdulsamadj00-tech/Abdul-Samad/internal/ui/theme"
)

// MultiChoice presents one MCQ and reveals the answer once an option is
// chosen.
type MultiChoice struct {
	Question deck.MCQ
	Selected int
	Result   *studygen.MCQResult
}

// NewMultiChoice creates a selector for q.
func NewMultiChoice(q deck.MCQ) MultiChoice {
	return MultiChoice{Question: q}
}

// Submitted reports whether an option has been chosen.
func (m MultiChoice) Submitted() bool {
	return m.Result != nil
}

// Update handles keyboard navigation and selection. Number keys pick an
// option directly.
func (m MultiChoice) Update(msg tea.Msg) (MultiChoice, tea.Cmd) {
	if m.Submitted() {
		return m, nil
	}

	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return m, nil
	}

	switch key := kmsg.String(); key {
	case "up", "k":
		if m.Selected > 0 {
			m.Selected--
		}
	case "down", "j":
		if m.Selected < len(m.Question.Options)-1 {
			m.Selected++
		}
	case "enter":
		m.submit()
	default:
		if len(key) == 1 && key[0] >= '1' && key[0] <= '9' {
			if i := int(key[0] - '1'); i < len(m.Question.Options) {
				m.Selected = i
				m.submit()
			}
		}
	}

	return m, nil
}

func (m *MultiChoice) submit() {
	if len(m.Question.Options) == 0 {
		return
	}
	res, err := studygen.CheckMCQ(m.Question, m.Question.Options[m.Selected])
	if err != nil {
		return
	}
	m.Result = &res
}

// View renders the question, the options and, once answered, the
// explanation.
func (m MultiChoice) View(width int) string {
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Width(width).Render(m.Question.Question))
	b.WriteString("\n\n")

	for i, opt := range m.Question.Options {
		prefix := "  "
		if i == m.Selected && !m.Submitted() {
			prefix = "▸ "
		}
		line := fmt.Sprintf("%s%d)  %s", prefix, i+1, opt)

		style := lipgloss.NewStyle().Foreground(theme.Text)
		switch {
		case m.Submitted() && opt == m.Question.Answer:
			style = theme.Correct
		case m.Submitted() && opt == m.Result.Selected:
			style = theme.Incorrect
		case m.Submitted():
			style = lipgloss.NewStyle().Foreground(theme.TextDim)
		case i == m.Selected:
			style = theme.Selected
		}
		b.WriteString(style.Width(width).Render(line))
		b.WriteString("\n")
	}

	if m.Submitted() {
		b.WriteString("\n")
		if m.Result.Correct {
			b.WriteString(theme.Correct.Render("Correct!"))
		} else {
			b.WriteString(theme.Incorrect.Render("Not quite. Answer: " + m.Result.Answer))
		}
		if m.Result.Explanation != "" {
			b.WriteString("\n")
			b.WriteString(theme.Hint.Width(width).Render(m.Result.Explanation))
		}
	}

	return b.String()
}
