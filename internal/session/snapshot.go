package session

import (
	"github.com/abdulsamadj00-tech/Abdul-Samad/internal/deck"
	"github.com/abdulsamadj00-tech/Abdul-Samad/internal/stats"
	"github.com/abdulsamadj00-tech/Abdul-Samad/internal/tutor"
)

// Snapshot is an immutable copy of the session state. It shares no
// memory with the Session.
type Snapshot struct {
	ID           string                 `json:"id,omitempty"`
	Phase        Phase                  `json:"phase"`
	Loading      bool                   `json:"loading"`
	Error        string                 `json:"error,omitempty"`
	Content      string                 `json:"content,omitempty"`
	Material     *deck.LearningMaterial `json:"material,omitempty"`
	Flashcards   []deck.Flashcard       `json:"flashcards"`
	MCQs         []deck.MCQ             `json:"mcqs"`
	Stats        stats.Stats            `json:"stats"`
	TutorHistory []tutor.Message        `json:"tutorHistory"`
	TutorPending bool                   `json:"tutorPending"`
	Version      uint64                 `json:"version"`
}

// Snapshot returns a deep copy of the current state.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	snap := Snapshot{
		ID:         s.id,
		Phase:      s.phase,
		Error:      s.errMsg,
		Content:    s.content,
		Material:   s.material.Clone(),
		Flashcards: deck.CloneCards(s.cards),
		MCQs:       deck.CloneMCQs(s.mcqs),
		Stats:      s.stats.Clone(),
		Version:    s.version,
	}
	s.mu.Unlock()

	if s.tutor != nil {
		snap.TutorHistory = s.tutor.History()
		snap.TutorPending = s.tutor.Pending()
	}
	snap.Loading = snap.Phase == PhaseGenerating || snap.TutorPending
	return snap
}

// Card returns a copy of one flashcard.
func (s *Session) Card(id string) (deck.Flashcard, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexLocked(id)
	if i < 0 {
		return deck.Flashcard{}, false
	}
	return s.cards[i].Clone(), true
}

// Phase returns the current lifecycle phase.
func (s *Session) Phase() Phase {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.phase
}
