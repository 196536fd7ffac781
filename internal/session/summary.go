package session

import (
	"github.com/abdulsamadj00-tech/Abdul-Samad/internal/deck"
	"github.com/abdulsamadj00-tech/Abdul-Samad/internal/stats"
)

// Summary holds the deck overview shown on the home and stats screens.
type Summary struct {
	Cards     int           `json:"cards"`
	Reviewed  int           `json:"reviewed"`
	Mastered  int           `json:"mastered"`
	Weak      int           `json:"weak"`
	Images    int           `json:"images"`
	Rendering int           `json:"rendering"`
	Badges    []stats.Badge `json:"badges"`
}

// BuildSummary creates a Summary from a snapshot.
func BuildSummary(snap Snapshot) Summary {
	sum := Summary{
		Cards:  len(snap.Flashcards),
		Weak:   len(stats.WeakCards(snap.Flashcards)),
		Badges: stats.Badges(snap.Stats, snap.Flashcards),
	}
	for _, c := range snap.Flashcards {
		if c.ReviewCount > 0 {
			sum.Reviewed++
		}
		if c.Mastered() {
			sum.Mastered++
		}
		if c.ImageURL != "" {
			sum.Images++
		}
		if c.IsGeneratingVisual {
			sum.Rendering++
		}
	}
	return sum
}

// Gallery returns the cards that have an image or one being rendered.
func Gallery(cards []deck.Flashcard) []deck.Flashcard {
	var out []deck.Flashcard
	for _, c := range cards {
		if c.ImageURL != "" || c.IsGeneratingVisual {
			out = append(out, c)
		}
	}
	return out
}
