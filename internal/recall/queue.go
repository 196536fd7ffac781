// Package recall orders flashcards for practice and tracks a practice run.
package recall

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/abdulsamadj00-tech/Abdul-Samad/internal/deck"
)

// BuildQueue orders cards for a practice run: every hard card twice, then
// new cards, then good cards, each group in deck order. Easy cards are
// left out. When nothing qualifies (all easy, or no cards) the full deck is
// returned in its original order.
func BuildQueue(cards []deck.Flashcard) []deck.Flashcard {
	var hard, fresh, good []deck.Flashcard
	for _, c := range cards {
		switch c.Performance {
		case deck.PerformanceHard:
			hard = append(hard, c.Clone())
		case deck.PerformanceNew:
			fresh = append(fresh, c.Clone())
		case deck.PerformanceGood:
			good = append(good, c.Clone())
		}
	}

	queue := make([]deck.Flashcard, 0, 2*len(hard)+len(fresh)+len(good))
	queue = append(queue, hard...)
	queue = append(queue, hard...)
	queue = append(queue, fresh...)
	queue = append(queue, good...)

	if len(queue) == 0 {
		return deck.CloneCards(cards)
	}
	return queue
}

const minKeywordLen = 4

// MatchGuess reports whether a typed or spoken guess shares a keyword with
// the answer. Keywords are answer words of four or more letters, compared
// case-insensitively with surrounding punctuation removed.
func MatchGuess(answer, guess string) bool {
	words := make(map[string]struct{})
	for _, w := range tokenize(guess) {
		words[w] = struct{}{}
	}
	for _, kw := range tokenize(answer) {
		if utf8.RuneCountInString(kw) < minKeywordLen {
			continue
		}
		if _, ok := words[kw]; ok {
			return true
		}
	}
	return false
}

func tokenize(s string) []string {
	fields := strings.Fields(strings.ToLower(s))
	out := fields[:0]
	for _, f := range fields {
		f = strings.TrimFunc(f, func(r rune) bool {
			return unicode.IsPunct(r) || unicode.IsSymbol(r)
		})
		if f != "" {
			out = append(out, f)
		}
	}
	return out
}
