// Package recall runs a flashcard practice pass: show the question, flip,
// optionally check a typed guess, then grade.
package recall

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abdulsamadj00-tech/Abdul-Samad/internal/deck"
	"github.com/abdulsamadj00-tech/Abdul-Samad/internal/recall"
	"github.com/abdulsamadj00-tech/Abdul-Samad/internal/screen"
	"github.com/abdulsamadj00-tech/Abdul-Samad/internal/session"
	"github.com/abdulsamadj00-tech/Abdul-Samad/internal/stats"
	"github.com/abdulsamadj00-tech/Abdul-Samad/internal/ui/components"
	"github.com/abdulsamadj00-tech/Abdul-Samad/internal/ui/layout"
	"github.com/abdulsamadj00-tech/Abdul-Samad/internal/ui/theme"
)

// RecallScreen drives one recall.Practice run against the session.
type RecallScreen struct {
	sess     *session.Session
	practice *recall.Practice
	weakOnly bool

	flipped  bool
	guessing bool
	guess    components.TextInput
	matched  *bool
	graded   int
	errMsg   string
}

var (
	_ screen.Screen          = (*RecallScreen)(nil)
	_ screen.KeyHintProvider = (*RecallScreen)(nil)
	_ screen.InputCapturer   = (*RecallScreen)(nil)
)

// New starts a practice run over the session's current deck.
func New(sess *session.Session) *RecallScreen {
	return &RecallScreen{
		sess:     sess,
		practice: sess.Queue(),
		guess:    components.NewTextInput("Type what you remember...", 200),
	}
}

func (r *RecallScreen) Init() tea.Cmd { return nil }

func (r *RecallScreen) Title() string {
	if r.weakOnly {
		return "Weak Cards"
	}
	return "Recall"
}

func (r *RecallScreen) Capturing() bool { return r.guessing }

func (r *RecallScreen) KeyHints() []layout.KeyHint {
	switch {
	case r.practice.Complete():
		return []layout.KeyHint{
			{Key: "R", Description: "Restart"},
			{Key: "W", Description: "Weak cards"},
			{Key: "Esc", Description: "Back"},
		}
	case r.guessing:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Check"},
			{Key: "Esc", Description: "Cancel"},
		}
	case r.flipped:
		return []layout.KeyHint{
			{Key: "1", Description: "Hard"},
			{Key: "2", Description: "Good"},
			{Key: "3", Description: "Easy"},
			{Key: "Esc", Description: "Back"},
		}
	}
	return []layout.KeyHint{
		{Key: "Space", Description: "Flip"},
		{Key: "T", Description: "Type answer"},
		{Key: "S", Description: "Skip"},
		{Key: "Esc", Description: "Back"},
	}
}

func (r *RecallScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		if r.guessing {
			var cmd tea.Cmd
			r.guess, cmd = r.guess.Update(msg)
			return r, cmd
		}
		return r, nil
	}
	key := kmsg.String()

	if r.practice.Complete() {
		switch key {
		case "r":
			r.restart(false)
		case "w":
			r.restart(true)
		}
		return r, nil
	}

	card, _ := r.practice.Current()

	if r.guessing {
		switch key {
		case "enter":
			ok := recall.MatchGuess(card.Answer, r.guess.Value())
			r.matched = &ok
			r.guessing = false
			r.flipped = true
			return r, nil
		case "esc":
			r.guessing = false
			return r, nil
		}
		var cmd tea.Cmd
		r.guess, cmd = r.guess.Update(msg)
		return r, cmd
	}

	switch key {
	case "space", " ", "enter":
		r.flipped = !r.flipped
	case "t":
		if !r.flipped {
			r.guessing = true
			r.guess.Reset()
			return r, r.guess.Init()
		}
	case "s":
		r.next()
	case "1", "2", "3":
		if r.flipped {
			r.grade(card, deck.Rating(key[0]-'0'))
		}
	}
	return r, nil
}

func (r *RecallScreen) grade(card deck.Flashcard, rating deck.Rating) {
	if err := r.sess.Grade(card.ID, rating); err != nil {
		r.errMsg = err.Error()
		return
	}
	r.graded++
	r.next()
}

func (r *RecallScreen) next() {
	r.practice.Advance()
	r.flipped = false
	r.matched = nil
	r.errMsg = ""
}

// restart rebuilds the queue from the latest grades. weakOnly limits it to
// cards graded hard.
func (r *RecallScreen) restart(weakOnly bool) {
	cards := r.sess.Snapshot().Flashcards
	if weakOnly {
		cards = stats.WeakCards(cards)
	}
	r.weakOnly = weakOnly
	r.practice.Restart(cards)
	r.graded = 0
	r.flipped = false
	r.matched = nil
}

func (r *RecallScreen) View(width, height int) string {
	cw := components.ContentWidth(width)

	var content string
	switch {
	case r.practice.Len() == 0:
		content = theme.Hint.Render("No cards to practice. Generate a deck or restart with R.")
	case r.practice.Complete():
		content = r.viewComplete()
	default:
		content = r.viewCard(cw)
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

func (r *RecallScreen) viewComplete() string {
	snap := r.sess.Snapshot()
	weak := len(stats.WeakCards(snap.Flashcards))
	lines := []string{
		theme.Correct.Render("Practice complete!"),
		"",
		theme.Body.Render(fmt.Sprintf("Graded %d cards this pass.", r.graded)),
		theme.Body.Render(fmt.Sprintf("Recall strength %d%%   streak %d", snap.Stats.RecallStrength, snap.Stats.Streak)),
	}
	if weak > 0 {
		lines = append(lines, theme.Hint.Render(fmt.Sprintf("%d weak cards left. Press W to review them.", weak)))
	}
	return strings.Join(lines, "\n")
}

func (r *RecallScreen) viewCard(cw int) string {
	card, _ := r.practice.Current()
	pos, total := r.practice.Position()

	header := theme.Heading.Render(fmt.Sprintf("Card %d of %d", pos, total)) + "   " +
		theme.Performance(card.Performance.String()).Render(card.Performance.String())

	var body string
	if r.flipped {
		body = components.FlashCard("ANSWER", card.Answer, true, cw)
	} else {
		body = components.FlashCard("QUESTION", card.Question, false, cw)
	}

	sections := []string{header, body}
	if r.guessing {
		sections = append(sections, r.guess.View(cw-4))
	}
	if r.matched != nil {
		if *r.matched {
			sections = append(sections, theme.Correct.Render("Your answer matches!"))
		} else {
			sections = append(sections, theme.Incorrect.Render("Not a match. Compare with the answer above."))
		}
	}
	if r.flipped && card.Source != "" {
		sections = append(sections, theme.Hint.Render("Source: "+card.Source))
	}
	if r.errMsg != "" {
		sections = append(sections, theme.ErrorText.Render(r.errMsg))
	}
	return strings.Join(sections, "\n\n")
}
