// Package stats derives recall metrics from graded flashcard events.
//
// Every function here is pure: Apply takes the previous Stats and returns a
// new value without touching its input, so callers can hold on to old
// snapshots safely.
package stats

import (
	"math"
	"slices"
	"time"

	"github.com/abdulsamadj00-tech/Abdul-Samad/internal/deck"
)

// DateLayout is the calendar-day key used in the progress history.
const DateLayout = "2006-01-02"

// ProgressRecord counts graded events for one calendar day.
type ProgressRecord struct {
	Date      string `json:"date"`
	Correct   int    `json:"correct"`
	Incorrect int    `json:"incorrect"`
}

// Total returns the number of graded events on this day.
func (r ProgressRecord) Total() int { return r.Correct + r.Incorrect }

// Stats is the derived view of a learner's recall performance.
type Stats struct {
	// RecallStrength is the rounded percentage of correct events over the
	// whole history, 0 when nothing has been graded.
	RecallStrength int `json:"recallStrength"`

	// TopicsMastered counts cards whose current performance is good or easy.
	TopicsMastered int `json:"topicsMastered"`

	// Streak is the number of consecutive correct events.
	Streak int `json:"streak"`

	// ProgressHistory holds one record per calendar day in insertion order.
	ProgressHistory []ProgressRecord `json:"progressHistory"`
}

// Event is a single graded recall.
type Event struct {
	At      time.Time
	Correct bool
}

// DateKey returns the calendar-day key for t. Days are taken in UTC.
func DateKey(t time.Time) string {
	return t.UTC().Format(DateLayout)
}

// Initial returns fresh stats seeded with an empty record for the day of now.
func Initial(now time.Time) Stats {
	return Stats{
		ProgressHistory: []ProgressRecord{{Date: DateKey(now)}},
	}
}

// Clone returns a copy whose history does not alias s.
func (s Stats) Clone() Stats {
	s.ProgressHistory = slices.Clone(s.ProgressHistory)
	return s
}

// Apply folds ev into prev. cards must be the card set after the grading
// that produced ev, so TopicsMastered reflects the grade just given.
func Apply(prev Stats, cards []deck.Flashcard, ev Event) Stats {
	history := slices.Clone(prev.ProgressHistory)
	day := DateKey(ev.At)

	idx := slices.IndexFunc(history, func(r ProgressRecord) bool { return r.Date == day })
	if idx < 0 {
		history = append(history, ProgressRecord{Date: day})
		idx = len(history) - 1
	}
	if ev.Correct {
		history[idx].Correct++
	} else {
		history[idx].Incorrect++
	}

	streak := 0
	if ev.Correct {
		streak = prev.Streak + 1
	}

	return Stats{
		RecallStrength:  RecallStrength(history),
		TopicsMastered:  TopicsMastered(cards),
		Streak:          streak,
		ProgressHistory: history,
	}
}

// RecallStrength is round(100 * correct / graded) across history.
func RecallStrength(history []ProgressRecord) int {
	var correct, total int
	for _, r := range history {
		correct += r.Correct
		total += r.Total()
	}
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(correct) * 100 / float64(total)))
}

// TopicsMastered counts cards graded good or easy.
func TopicsMastered(cards []deck.Flashcard) int {
	n := 0
	for _, c := range cards {
		if c.Mastered() {
			n++
		}
	}
	return n
}
