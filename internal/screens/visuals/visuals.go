// Package visuals lists the flashcards that have (or are getting) a visual
// aid and saves rendered images to disk.
package visuals

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abdulsamadj00-tech/Abdul-Samad/internal/deck"
	"github.com/abdulsamadj00-tech/Abdul-Samad/internal/screen"
	"github.com/abdulsamadj00-tech/Abdul-Samad/internal/session"
	"github.com/abdulsamadj00-tech/Abdul-Samad/internal/ui/components"
	"github.com/abdulsamadj00-tech/Abdul-Samad/internal/ui/layout"
	"github.com/abdulsamadj00-tech/Abdul-Samad/internal/ui/theme"
	"github.com/abdulsamadj00-tech/Abdul-Samad/internal/visuals"
)

// VisualsScreen is the visual aid gallery.
type VisualsScreen struct {
	sess     *session.Session
	dir      string
	selected int
	notice   string
}

var (
	_ screen.Screen          = (*VisualsScreen)(nil)
	_ screen.KeyHintProvider = (*VisualsScreen)(nil)
)

// New creates the gallery. Saved images go to dir, or the working
// directory when dir is empty.
func New(sess *session.Session, dir string) *VisualsScreen {
	return &VisualsScreen{sess: sess, dir: dir}
}

func (v *VisualsScreen) Init() tea.Cmd { return nil }

func (v *VisualsScreen) Title() string { return "Visual Aids" }

func (v *VisualsScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "S", Description: "Save image"},
		{Key: "Esc", Description: "Back"},
	}
}

func (v *VisualsScreen) gallery() []deck.Flashcard {
	return session.Gallery(v.sess.Snapshot().Flashcards)
}

func (v *VisualsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return v, nil
	}
	cards := v.gallery()
	switch kmsg.String() {
	case "up", "k":
		if v.selected > 0 {
			v.selected--
		}
	case "down", "j":
		if v.selected < len(cards)-1 {
			v.selected++
		}
	case "s":
		if v.selected < len(cards) {
			path, err := Save(cards[v.selected], v.dir)
			if err != nil {
				v.notice = "Save failed: " + err.Error()
			} else {
				v.notice = "Saved " + path
			}
		}
	}
	return v, nil
}

// Save writes a card's rendered image to dir and returns the file path.
func Save(card deck.Flashcard, dir string) (string, error) {
	if card.ImageURL == "" {
		return "", fmt.Errorf("card has no image yet")
	}
	mime, data, err := visuals.DecodeDataURI(card.ImageURL)
	if err != nil {
		return "", err
	}
	ext := ".png"
	if sub, ok := strings.CutPrefix(mime, "image/"); ok && sub != "" && sub != "png" {
		ext = "." + sub
	}
	path := filepath.Join(dir, "visual-"+card.ID+ext)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", err
	}
	return path, nil
}

func (v *VisualsScreen) View(width, height int) string {
	cw := components.ContentWidth(width)
	cards := v.gallery()
	if v.selected >= len(cards) {
		v.selected = max(len(cards)-1, 0)
	}

	if len(cards) == 0 {
		msg := "No visual aids yet."
		if len(v.sess.Snapshot().Flashcards) > 0 {
			msg = "No visual aids for this deck. Image generation may be disabled for the configured provider."
		}
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, theme.Hint.Width(cw).Render(msg))
	}

	rows := make([]string, 0, len(cards))
	for i, c := range cards {
		status := theme.Correct.Render("ready")
		if c.IsGeneratingVisual {
			status = lipgloss.NewStyle().Foreground(theme.Highlight).Render("rendering…")
		}
		prefix := "  "
		style := theme.Unselected
		if i == v.selected {
			prefix = "▸ "
			style = theme.Selected
		}
		q := c.Question
		if limit := cw - 16; len([]rune(q)) > limit && limit > 0 {
			q = string([]rune(q)[:limit]) + "…"
		}
		rows = append(rows, style.Render(prefix+q)+"  "+status)
	}

	sel := cards[v.selected]
	detail := theme.Heading.Render("Prompt") + "\n" + layout.Wrap(sel.VisualAidPrompt, cw-8)
	if sel.ImageURL != "" {
		if _, data, err := visuals.DecodeDataURI(sel.ImageURL); err == nil {
			detail += "\n\n" + theme.Hint.Render(fmt.Sprintf("%d KB image. Press S to save it.", (len(data)+1023)/1024))
		}
	}

	sections := []string{strings.Join(rows, "\n"), components.Card(detail, cw)}
	if v.notice != "" {
		sections = append(sections, theme.Hint.Render(v.notice))
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, strings.Join(sections, "\n\n"))
}
