package stats

import (
	"time"

	"github.com/abdulsamadj00-tech/Abdul-Samad/internal/deck"
)

// Badge is an achievement shown on the stats screen.
type Badge struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Earned      bool   `json:"earned"`
}

const (
	quickLearnerThreshold = 5
	persistentStreak      = 10
)

// Badges evaluates the achievement set against s and the current deck.
func Badges(s Stats, cards []deck.Flashcard) []Badge {
	quick := len(s.ProgressHistory) > 0 && s.ProgressHistory[0].Correct >= quickLearnerThreshold
	return []Badge{
		{
			Name:        "Quick Learner",
			Description: "Answer 5 cards correctly in one session.",
			Earned:      quick,
		},
		{
			Name:        "Persistent",
			Description: "Get a streak of 10 correct answers.",
			Earned:      s.Streak >= persistentStreak,
		},
		{
			Name:        "Master",
			Description: "Master all cards in the deck.",
			Earned:      len(cards) > 0 && TopicsMastered(cards) == len(cards),
		},
	}
}

// WeakCards returns the cards whose last grade was hard, in deck order.
func WeakCards(cards []deck.Flashcard) []deck.Flashcard {
	var out []deck.Flashcard
	for _, c := range cards {
		if c.Performance == deck.PerformanceHard {
			out = append(out, c.Clone())
		}
	}
	return out
}

// ChartPoint is one day of the retention curve.
type ChartPoint struct {
	Label     string `json:"label"`
	Correct   int    `json:"correct"`
	Incorrect int    `json:"incorrect"`
}

// ChartPoints converts the history into labelled points ("Mar 4").
// Records with an unparseable date keep the raw key as label.
func ChartPoints(history []ProgressRecord) []ChartPoint {
	out := make([]ChartPoint, 0, len(history))
	for _, r := range history {
		label := r.Date
		if t, err := time.Parse(DateLayout, r.Date); err == nil {
			label = t.Format("Jan 2")
		}
		out = append(out, ChartPoint{Label: label, Correct: r.Correct, Incorrect: r.Incorrect})
	}
	return out
}
