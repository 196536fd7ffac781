package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abdulsamadj00-tech/Abdul-Samad/internal/ui/layout"
)

// Screen defines the interface for all application screens.
type Screen interface {
	// Init returns an initial command when the screen is first created.
	Init() tea.Cmd

	// Update handles messages and returns updated screen + command.
	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the screen content (excluding header/footer).
	View(width, height int) string

	// Title returns the screen name for the header.
	Title() string
}

// KeyHintProvider is an optional interface that screens can implement
// to provide custom footer key hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// InputCapturer is implemented by screens that own a focused text field.
// While Capturing reports true the app does not treat Esc as "back".
type InputCapturer interface {
	Capturing() bool
}

// SessionChangedMsg is delivered to the active screen whenever the study
// session publishes a change.
type SessionChangedMsg struct{}
