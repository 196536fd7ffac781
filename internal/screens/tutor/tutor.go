// Package tutor is the chat screen for asking Dr. Recall about the
// current study text.
package tutor

import (
	"context"
	"errors"
	"strings"

	"charm.land/bubbles/v2/spinner"
	"charm.land/bubbles/v2/viewport"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abdulsamadj00-tech/Abdul-Samad/internal/screen"
	"github.com/abdulsamadj00-tech/Abdul-Samad/internal/session"
	"github.com/abdulsamadj00-tech/Abdul-Samad/internal/tutor"
	"github.com/abdulsamadj00-tech/Abdul-Samad/internal/ui/components"
	"github.com/abdulsamadj00-tech/Abdul-Samad/internal/ui/layout"
	"github.com/abdulsamadj00-tech/Abdul-Samad/internal/ui/theme"
)

type replyMsg struct {
	Err error
}

// TutorScreen shows the conversation and an input line.
type TutorScreen struct {
	ctx      context.Context
	sess     *session.Session
	input    components.TextInput
	spinner  spinner.Model
	viewport viewport.Model
	waiting  bool
	errMsg   string
}

var (
	_ screen.Screen          = (*TutorScreen)(nil)
	_ screen.KeyHintProvider = (*TutorScreen)(nil)
)

// New creates a TutorScreen.
func New(ctx context.Context, sess *session.Session) *TutorScreen {
	vp := viewport.New()
	vp.SoftWrap = true
	return &TutorScreen{
		ctx:      ctx,
		sess:     sess,
		input:    components.NewTextInput("Ask Dr. Recall a question...", 500),
		spinner:  spinner.New(spinner.WithSpinner(spinner.MiniDot)),
		viewport: vp,
	}
}

func (t *TutorScreen) Init() tea.Cmd {
	return t.input.Init()
}

func (t *TutorScreen) Title() string { return "Dr. Recall" }

func (t *TutorScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Send"},
		{Key: "PgUp/PgDn", Description: "Scroll"},
		{Key: "Esc", Description: "Back"},
	}
}

func (t *TutorScreen) send() tea.Cmd {
	q := t.input.Value()
	if q == "" || t.waiting {
		return nil
	}
	t.input.Reset()
	t.waiting = true
	t.errMsg = ""

	ctx, sess := t.ctx, t.sess
	return tea.Batch(t.spinner.Tick, func() tea.Msg {
		_, err := sess.Ask(ctx, q)
		return replyMsg{Err: err}
	})
}

func (t *TutorScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case replyMsg:
		t.waiting = false
		if msg.Err != nil && !isReported(msg.Err) {
			t.errMsg = msg.Err.Error()
		}
		return t, nil

	case spinner.TickMsg:
		if !t.waiting {
			return t, nil
		}
		var cmd tea.Cmd
		t.spinner, cmd = t.spinner.Update(msg)
		return t, cmd

	case tea.KeyPressMsg:
		switch msg.String() {
		case "enter":
			return t, t.send()
		case "pgup", "pgdown":
			var cmd tea.Cmd
			t.viewport, cmd = t.viewport.Update(msg)
			return t, cmd
		}
	}

	var cmd tea.Cmd
	t.input, cmd = t.input.Update(msg)
	return t, cmd
}

// isReported reports whether err already shows up in the conversation as
// the fallback reply.
func isReported(err error) bool {
	return errors.Is(err, tutor.ErrUnavailable)
}

func (t *TutorScreen) View(width, height int) string {
	cw := components.ContentWidth(width)
	snap := t.sess.Snapshot()

	var footer []string
	if t.waiting {
		footer = append(footer, t.spinner.View()+" "+theme.Hint.Render("Dr. Recall is thinking..."))
	}
	if t.errMsg != "" {
		footer = append(footer, theme.ErrorText.Render(t.errMsg))
	}
	footer = append(footer, t.input.View(cw-4))
	bottom := strings.Join(footer, "\n")

	t.viewport.SetWidth(cw)
	t.viewport.SetHeight(max(height-lipgloss.Height(bottom)-2, 3))
	t.viewport.SetContent(RenderHistory(snap.TutorHistory, snap.Content != "", cw))
	t.viewport.GotoBottom()

	return lipgloss.PlaceHorizontal(width, lipgloss.Center, t.viewport.View()+"\n\n"+bottom)
}

// RenderHistory formats the conversation, one labelled block per message.
func RenderHistory(history []tutor.Message, hasContext bool, width int) string {
	if len(history) == 0 {
		hint := "Ask anything about your study text."
		if !hasContext {
			hint = "No study text yet. Dr. Recall will answer from general knowledge until you generate a deck."
		}
		return theme.Hint.Width(width).Render(hint)
	}

	you := lipgloss.NewStyle().Foreground(theme.Accent).Bold(true)
	doc := lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true)

	blocks := make([]string, 0, len(history))
	for _, m := range history {
		label := you.Render("You")
		if m.Role == tutor.RoleModel {
			label = doc.Render("Dr. Recall")
		}
		blocks = append(blocks, label+"\n"+layout.Wrap(m.Text, width))
	}
	return strings.Join(blocks, "\n\n")
}
