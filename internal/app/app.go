// Package app hosts the Bubble Tea program: the screen router, the frame
// and the bridge from session change notifications to screen updates.
package app

import (
	"context"
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abdulsamadj00-tech/Abdul-Samad/internal/router"
	"github.com/abdulsamadj00-tech/Abdul-Samad/internal/screen"
	"github.com/abdulsamadj00-tech/Abdul-Samad/internal/screens/home"
	"github.com/abdulsamadj00-tech/Abdul-Samad/internal/screens/welcome"
	"github.com/abdulsamadj00-tech/Abdul-Samad/internal/session"
	"github.com/abdulsamadj00-tech/Abdul-Samad/internal/ui/layout"
)

// Options configures the TUI.
type Options struct {
	Session *session.Session

	// Text pre-fills the study text editor.
	Text string

	// SkipWelcome starts directly on the home screen.
	SkipWelcome bool
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router  *router.Router
	sess    *session.Session
	changes <-chan struct{}
	width   int
	height  int
}

// newAppModel creates the root model. The caller must call unsubscribe
// once the program exits.
func newAppModel(ctx context.Context, opts Options) (AppModel, func()) {
	homeFactory := func() screen.Screen {
		return home.New(ctx, opts.Session, opts.Text)
	}

	var first screen.Screen
	if opts.SkipWelcome {
		first = homeFactory()
	} else {
		first = welcome.New(homeFactory)
	}

	changes, unsubscribe := opts.Session.Subscribe()
	return AppModel{
		router:  router.New(first),
		sess:    opts.Session,
		changes: changes,
	}, unsubscribe
}

// waitForChange blocks until the session publishes a change.
func waitForChange(ch <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		if _, ok := <-ch; !ok {
			return nil
		}
		return screen.SessionChangedMsg{}
	}
}

func (m AppModel) Init() tea.Cmd {
	return tea.Batch(m.router.Active().Init(), waitForChange(m.changes))
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case screen.SessionChangedMsg:
		cmd := m.router.Update(msg)
		return m, tea.Batch(cmd, waitForChange(m.changes))

	case tea.KeyPressMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if c, ok := m.router.Active().(screen.InputCapturer); ok && c.Capturing() {
				break
			}
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
			return m, nil
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	snap := m.sess.Snapshot()
	header := layout.RenderHeader(title, layout.HeaderStats{
		Mastered: snap.Stats.TopicsMastered,
		Cards:    len(snap.Flashcards),
		Streak:   snap.Stats.Streak,
		Busy:     snap.Loading,
	}, m.width)

	footer := layout.RenderFooter(m.keyHints(active), m.width)

	contentHeight := max(m.height-lipgloss.Height(header)-lipgloss.Height(footer), 0)
	content := m.router.View(m.width, contentHeight)

	v.SetContent(layout.RenderFrame(header, content, footer, m.width, m.height))
	return v
}

func (m AppModel) keyHints(active screen.Screen) []layout.KeyHint {
	if p, ok := active.(screen.KeyHintProvider); ok {
		if hints := p.KeyHints(); hints != nil {
			return hints
		}
	}
	if m.router.Depth() > 1 {
		return []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}
	return []layout.KeyHint{
		{Key: "Any key", Description: "Continue"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

// Run starts the Bubble Tea program and blocks until it exits.
func Run(ctx context.Context, opts Options) error {
	model, unsubscribe := newAppModel(ctx, opts)
	defer unsubscribe()

	p := tea.NewProgram(model, tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
