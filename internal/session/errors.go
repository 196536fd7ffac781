package session

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidOperation is returned when an operation's precondition on
	// the session phase does not hold. The session is not changed.
	ErrInvalidOperation = errors.New("session: operation not allowed in the current state")

	// ErrEmptyContent is returned by Generate for blank study text.
	ErrEmptyContent = fmt.Errorf("%w: study text is empty", ErrInvalidOperation)

	// ErrUnknownCard is returned by Grade for a card id not in the deck.
	ErrUnknownCard = fmt.Errorf("%w: unknown flashcard", ErrInvalidOperation)

	// ErrSuperseded is returned by Generate when the session was reset
	// before the results arrived. The results are dropped.
	ErrSuperseded = errors.New("session: reset while generating")
)

// Artifact names one of the three generated study artifacts.
type Artifact string

const (
	ArtifactMaterial   Artifact = "learning material"
	ArtifactFlashcards Artifact = "flashcards"
	ArtifactMCQs       Artifact = "MCQs"
)

// GenerationError reports which artifact failed during Generate. When
// one artifact fails the whole generation is discarded.
type GenerationError struct {
	Artifact Artifact
	Err      error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("failed to generate %s: %v", e.Artifact, e.Err)
}

func (e *GenerationError) Unwrap() error { return e.Err }
