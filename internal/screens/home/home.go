package home

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"charm.land/bubbles/v2/spinner"
	"charm.land/bubbles/v2/textarea"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abdulsamadj00-tech/Abdul-Samad/internal/router"
	"github.com/abdulsamadj00-tech/Abdul-Samad/internal/screen"
	"github.com/abdulsamadj00-tech/Abdul-Samad/internal/screens/learn"
	recallscreen "github.com/abdulsamadj00-tech/Abdul-Samad/internal/screens/recall"
	statsscreen "github.com/abdulsamadj00-tech/Abdul-Samad/internal/screens/stats"
	tutorscreen "github.com/abdulsamadj00-tech/Abdul-Samad/internal/screens/tutor"
	visualsscreen "github.com/abdulsamadj00-tech/Abdul-Samad/internal/screens/visuals"
	"github.com/abdulsamadj00-tech/Abdul-Samad/internal/session"
	"github.com/abdulsamadj00-tech/Abdul-Samad/internal/ui/components"
	"github.com/abdulsamadj00-tech/Abdul-Samad/internal/ui/layout"
	"github.com/abdulsamadj00-tech/Abdul-Samad/internal/ui/theme"
)

const (
	itemEdit = iota
	itemLearn
	itemRecall
	itemVisuals
	itemStats
	itemTutor
	itemReset
	itemQuit
)

// generateDoneMsg carries the result of a Generate call.
type generateDoneMsg struct {
	Err error
}

// HomeScreen collects study text, starts generation and links to the
// study screens once a deck exists.
type HomeScreen struct {
	ctx        context.Context
	sess       *session.Session
	editor     textarea.Model
	spinner    spinner.Model
	menu       components.Menu
	editing    bool
	generating bool
	notice     string
}

var (
	_ screen.Screen          = (*HomeScreen)(nil)
	_ screen.KeyHintProvider = (*HomeScreen)(nil)
	_ screen.InputCapturer   = (*HomeScreen)(nil)
)

// New creates the home screen. text pre-fills the study text editor.
func New(ctx context.Context, sess *session.Session, text string) *HomeScreen {
	editor := textarea.New()
	editor.Placeholder = "Paste your study notes here..."
	editor.ShowLineNumbers = false
	editor.SetValue(text)

	h := &HomeScreen{
		ctx:     ctx,
		sess:    sess,
		editor:  editor,
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot)),
	}
	h.menu = components.NewMenu([]components.MenuItem{
		itemEdit:    {Label: "STUDY TEXT", Action: h.startEditing},
		itemLearn:   {Label: "LEARN", Action: push(func() screen.Screen { return learn.New(sess) })},
		itemRecall:  {Label: "RECALL PRACTICE", Action: push(func() screen.Screen { return recallscreen.New(sess) })},
		itemVisuals: {Label: "VISUAL AIDS", Action: push(func() screen.Screen { return visualsscreen.New(sess, "") })},
		itemStats:   {Label: "STATS", Action: push(func() screen.Screen { return statsscreen.New(sess) })},
		itemTutor:   {Label: "ASK DR. RECALL", Action: push(func() screen.Screen { return tutorscreen.New(ctx, sess) })},
		itemReset:   {Label: "NEW SESSION", Action: h.reset},
		itemQuit:    {Label: "QUIT", Action: func() tea.Cmd { return tea.Quit }},
	})
	h.syncMenu()
	if sess.Phase() == session.PhaseIdle {
		h.editing = true
	}
	return h
}

func push(factory func() screen.Screen) func() tea.Cmd {
	return func() tea.Cmd {
		return func() tea.Msg { return router.PushScreenMsg{Screen: factory()} }
	}
}

func (h *HomeScreen) Init() tea.Cmd {
	if h.editing {
		return h.editor.Focus()
	}
	return nil
}

func (h *HomeScreen) Title() string {
	return "Home"
}

func (h *HomeScreen) Capturing() bool {
	return h.editing
}

func (h *HomeScreen) KeyHints() []layout.KeyHint {
	switch {
	case h.generating:
		return []layout.KeyHint{{Key: "Ctrl+C", Description: "Quit"}}
	case h.editing:
		return []layout.KeyHint{
			{Key: "Ctrl+G", Description: "Generate"},
			{Key: "Esc", Description: "Menu"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "G", Description: "Generate"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

// syncMenu enables the study items only once a deck exists.
func (h *HomeScreen) syncMenu() {
	ready := h.sess.Phase() == session.PhaseReady
	for _, i := range []int{itemLearn, itemRecall, itemVisuals, itemStats} {
		h.menu.SetDisabled(i, !ready || h.generating)
	}
	h.menu.SetDisabled(itemEdit, h.generating)
	h.menu.SetDisabled(itemReset, h.generating)
}

func (h *HomeScreen) startEditing() tea.Cmd {
	h.editing = true
	return h.editor.Focus()
}

func (h *HomeScreen) reset() tea.Cmd {
	h.sess.Reset()
	h.editor.Reset()
	h.notice = "Session cleared."
	h.syncMenu()
	return h.startEditing()
}

func (h *HomeScreen) generate() tea.Cmd {
	text := strings.TrimSpace(h.editor.Value())
	if text == "" {
		h.notice = "Add some study text first."
		return nil
	}
	h.editing = false
	h.editor.Blur()
	h.generating = true
	h.notice = ""
	h.syncMenu()

	ctx, sess := h.ctx, h.sess
	return tea.Batch(h.spinner.Tick, func() tea.Msg {
		return generateDoneMsg{Err: sess.Generate(ctx, text)}
	})
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case generateDoneMsg:
		h.generating = false
		switch {
		case msg.Err == nil:
			snap := h.sess.Snapshot()
			h.notice = fmt.Sprintf("Ready: %d flashcards and %d questions.", len(snap.Flashcards), len(snap.MCQs))
			h.menu.Selected = itemLearn
		case errors.Is(msg.Err, session.ErrSuperseded):
			h.notice = ""
		default:
			h.notice = ""
			h.editing = true
			h.syncMenu()
			return h, h.editor.Focus()
		}
		h.syncMenu()
		return h, nil

	case spinner.TickMsg:
		if !h.generating {
			return h, nil
		}
		var cmd tea.Cmd
		h.spinner, cmd = h.spinner.Update(msg)
		return h, cmd

	case screen.SessionChangedMsg:
		h.syncMenu()
		return h, nil

	case tea.KeyPressMsg:
		if h.generating {
			return h, nil
		}
		if h.editing {
			switch msg.String() {
			case "ctrl+g":
				return h, h.generate()
			case "esc", "tab":
				h.editing = false
				h.editor.Blur()
				return h, nil
			}
			var cmd tea.Cmd
			h.editor, cmd = h.editor.Update(msg)
			return h, cmd
		}
		if msg.String() == "g" {
			return h, h.generate()
		}
		var cmd tea.Cmd
		h.menu, cmd = h.menu.Update(msg)
		return h, cmd

	case tea.PasteMsg:
		if h.editing {
			var cmd tea.Cmd
			h.editor, cmd = h.editor.Update(msg)
			return h, cmd
		}
	}
	return h, nil
}

func (h *HomeScreen) View(width, height int) string {
	cw := components.ContentWidth(width)
	snap := h.sess.Snapshot()

	var sections []string
	sections = append(sections, theme.Title.Width(cw).Render("MEMORY MASTER"))
	sections = append(sections, theme.Subtitle.Width(cw).Render("Turn your notes into flashcards, questions and visuals."))

	editorHeight := max(height/3, 4)
	h.editor.SetWidth(cw - 4)
	h.editor.SetHeight(editorHeight)
	border := theme.Border
	if h.editing {
		border = theme.Primary
	}
	sections = append(sections, lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Width(cw).
		Render(h.editor.View()))

	switch {
	case h.generating:
		sections = append(sections, h.spinner.View()+" "+theme.Hint.Render("Generating learning material, flashcards and questions..."))
	case snap.Error != "":
		sections = append(sections, theme.ErrorText.Width(cw).Render(snap.Error))
	case h.notice != "":
		sections = append(sections, theme.Hint.Width(cw).Render(h.notice))
	}

	if !h.editing {
		sections = append(sections, h.menu.View(cw))
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, strings.Join(sections, "\n\n"))
}
