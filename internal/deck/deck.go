// Package deck defines the study artifacts produced for one session:
// learning material, flashcards and multiple-choice questions.
package deck

import (
	"errors"
	"fmt"
	"slices"
	"time"
)

var (
	ErrInvalidRating      = errors.New("deck: invalid rating")
	ErrInvalidPerformance = errors.New("deck: invalid performance")
)

// Mnemonic pairs a concept with a memory aid for it.
type Mnemonic struct {
	Concept  string `json:"concept"`
	Mnemonic string `json:"mnemonic"`
}

// LearningMaterial is the summary view generated once per session.
type LearningMaterial struct {
	Summary   string     `json:"summary"`
	KeyPoints []string   `json:"keyPoints"`
	Mnemonics []Mnemonic `json:"mnemonics"`
	Source    string     `json:"source,omitempty"`
}

// Clone returns a deep copy.
func (m *LearningMaterial) Clone() *LearningMaterial {
	if m == nil {
		return nil
	}
	c := *m
	c.KeyPoints = slices.Clone(m.KeyPoints)
	c.Mnemonics = slices.Clone(m.Mnemonics)
	return &c
}

// Flashcard is a single question/answer practice item.
type Flashcard struct {
	ID                 string      `json:"id"`
	Question           string      `json:"question"`
	Answer             string      `json:"answer"`
	VisualAidPrompt    string      `json:"visualAidPrompt,omitempty"`
	ImageURL           string      `json:"imageUrl,omitempty"`
	IsGeneratingVisual bool        `json:"isGeneratingVisual"`
	Performance        Performance `json:"performance"`
	LastReviewed       *time.Time  `json:"lastReviewed,omitempty"`
	ReviewCount        int         `json:"reviewCount"`
	Source             string      `json:"source,omitempty"`
}

// Clone returns a copy that shares no pointers with c.
func (c Flashcard) Clone() Flashcard {
	if c.LastReviewed != nil {
		t := *c.LastReviewed
		c.LastReviewed = &t
	}
	return c
}

// Mastered reports whether the card was last graded good or easy.
func (c Flashcard) Mastered() bool {
	return c.Performance == PerformanceGood || c.Performance == PerformanceEasy
}

// CloneCards deep-copies a card slice.
func CloneCards(cards []Flashcard) []Flashcard {
	if cards == nil {
		return nil
	}
	out := make([]Flashcard, len(cards))
	for i, c := range cards {
		out[i] = c.Clone()
	}
	return out
}

// CardDraft is a flashcard as returned by the content generator, before
// the session assigns identity and practice state.
type CardDraft struct {
	Question        string `json:"question"`
	Answer          string `json:"answer"`
	VisualAidPrompt string `json:"visualAidPrompt"`
	Source          string `json:"source"`
}

// MCQ is a multiple-choice question. Answer must equal one of Options.
type MCQ struct {
	Question    string   `json:"question"`
	Options     []string `json:"options"`
	Answer      string   `json:"answer"`
	Explanation string   `json:"explanation"`
	Source      string   `json:"source,omitempty"`
}

// Validate checks the option count and that the answer is one of the options.
func (q MCQ) Validate() error {
	if len(q.Options) < 2 {
		return fmt.Errorf("mcq %q: need at least 2 options, got %d", q.Question, len(q.Options))
	}
	if !slices.Contains(q.Options, q.Answer) {
		return fmt.Errorf("mcq %q: answer %q is not one of the options", q.Question, q.Answer)
	}
	return nil
}

// Check reports whether option is the correct answer.
func (q MCQ) Check(option string) bool {
	return option == q.Answer
}

// CloneMCQs deep-copies an MCQ slice.
func CloneMCQs(qs []MCQ) []MCQ {
	if qs == nil {
		return nil
	}
	out := make([]MCQ, len(qs))
	for i, q := range qs {
		q.Options = slices.Clone(q.Options)
		out[i] = q
	}
	return out
}
