package recall

import "github.com/abdulsamadj00-tech/Abdul-Samad/internal/deck"

// Practice is one pass over a recall queue. The queue is fixed when the run
// starts; grades given during the run only affect the next Restart.
type Practice struct {
	queue []deck.Flashcard
	pos   int
}

// NewPractice starts a run over BuildQueue(cards).
func NewPractice(cards []deck.Flashcard) *Practice {
	return &Practice{queue: BuildQueue(cards)}
}

// Current returns the card at the pointer, or false once the run is complete.
func (p *Practice) Current() (deck.Flashcard, bool) {
	if p.Complete() {
		return deck.Flashcard{}, false
	}
	return p.queue[p.pos], true
}

// Advance moves past the current card. It is a no-op on a complete run.
func (p *Practice) Advance() {
	if !p.Complete() {
		p.pos++
	}
}

// Complete reports whether every queued card has been shown.
func (p *Practice) Complete() bool {
	return p.pos >= len(p.queue)
}

// Restart rebuilds the queue from the current card performances and
// rewinds the pointer.
func (p *Practice) Restart(cards []deck.Flashcard) {
	p.queue = BuildQueue(cards)
	p.pos = 0
}

// Position returns the 1-based index of the current card and the queue length.
func (p *Practice) Position() (int, int) {
	return min(p.pos+1, len(p.queue)), len(p.queue)
}

// Len returns the queue length.
func (p *Practice) Len() int { return len(p.queue) }

// Queue returns a copy of the queued cards.
func (p *Practice) Queue() []deck.Flashcard {
	return deck.CloneCards(p.queue)
}
