// Package session owns the state of one study session: generated
// material, the flashcard deck, MCQs, statistics and the tutor
// conversation. All mutation goes through Session methods; readers get
// immutable snapshots.
package session

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	gonanoid "github.com/matoous/go-nanoid/v2"
	"golang.org/x/sync/errgroup"

	"github.com/abdulsamadj00-tech/Abdul-Samad/internal/deck"
	"github.com/abdulsamadj00-tech/Abdul-Samad/internal/recall"
	"github.com/abdulsamadj00-tech/Abdul-Samad/internal/stats"
	"github.com/abdulsamadj00-tech/Abdul-Samad/internal/tutor"
	"github.com/abdulsamadj00-tech/Abdul-Samad/internal/visuals"
)

// Generator produces the three study artifacts. studygen.Generator
// implements it.
type Generator interface {
	LearningMaterial(ctx context.Context, content string) (*deck.LearningMaterial, error)
	Flashcards(ctx context.Context, content string) ([]deck.CardDraft, error)
	MCQs(ctx context.Context, content string) ([]deck.MCQ, error)
}

// VisualRunner renders visual aids for a deck. visuals.Orchestrator
// implements it.
type VisualRunner interface {
	Run(ctx context.Context, cards []deck.Flashcard, hooks visuals.Hooks)
}

// Config holds session tunables.
type Config struct {
	// GenerateTimeout bounds the three generation requests together.
	// Zero means no session-level timeout.
	GenerateTimeout time.Duration
}

// DefaultConfig returns a Config with recommended defaults.
func DefaultConfig() Config {
	return Config{GenerateTimeout: 3 * time.Minute}
}

// Options wires a Session to its collaborators.
type Options struct {
	Generator Generator
	Visuals   VisualRunner   // nil disables visual aids
	Tutor     *tutor.Conversation
	Config    Config
	Logger    *slog.Logger
	Now       func() time.Time
	NewID     func() string // flashcard ids
}

// Session is the single owner of study-session state. It is safe for
// concurrent use.
type Session struct {
	generator Generator
	visuals   VisualRunner
	tutor     *tutor.Conversation
	config    Config
	logger    *slog.Logger
	now       func() time.Time
	newID     func() string

	mu       sync.Mutex
	id       string
	phase    Phase
	errMsg   string
	content  string
	material *deck.LearningMaterial
	cards    []deck.Flashcard
	mcqs     []deck.MCQ
	stats    stats.Stats
	version  uint64

	// epoch is bumped by Reset and by every Generate. Callbacks started
	// under an older epoch are dropped.
	epoch         uint64
	cancelGen     context.CancelFunc
	cancelVisuals context.CancelFunc

	// visualRuns counts visual aid runs still executing, including runs
	// abandoned by Reset. visualsIdle is signalled when it drops to zero.
	visualRuns  int
	visualsIdle *sync.Cond

	subMu sync.Mutex
	subs  map[chan struct{}]struct{}
}

// New creates an idle Session.
func New(opts Options) *Session {
	s := &Session{
		generator: opts.Generator,
		visuals:   opts.Visuals,
		tutor:     opts.Tutor,
		config:    opts.Config,
		logger:    opts.Logger,
		now:       opts.Now,
		newID:     opts.NewID,
		subs:      make(map[chan struct{}]struct{}),
	}
	s.visualsIdle = sync.NewCond(&s.mu)
	if s.logger == nil {
		s.logger = slog.Default()
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.newID == nil {
		s.newID = func() string { return gonanoid.Must(12) }
	}
	if s.tutor != nil {
		s.tutor.OnChange(s.notify)
	}
	s.stats = stats.Initial(s.now())
	return s
}

// Generate turns study text into learning material, flashcards and MCQs.
// The three requests run in parallel and commit together: if any fails,
// nothing is kept, the session returns to idle and a *GenerationError is
// returned. On success visual aids start rendering in the background.
func (s *Session) Generate(ctx context.Context, content string) error {
	content = strings.TrimSpace(content)
	if content == "" {
		return ErrEmptyContent
	}

	s.mu.Lock()
	if s.phase == PhaseGenerating {
		s.mu.Unlock()
		return ErrInvalidOperation
	}
	s.stopBackgroundLocked()
	s.epoch++
	epoch := s.epoch
	s.phase = PhaseGenerating
	s.errMsg = ""
	s.clearArtifactsLocked()
	if s.config.GenerateTimeout > 0 {
		ctx, s.cancelGen = context.WithTimeout(ctx, s.config.GenerateTimeout)
	} else {
		ctx, s.cancelGen = context.WithCancel(ctx)
	}
	s.touchLocked()
	s.mu.Unlock()
	s.notify()

	var (
		material *deck.LearningMaterial
		drafts   []deck.CardDraft
		mcqs     []deck.MCQ
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		material, err = s.generator.LearningMaterial(gctx, content)
		return wrapGeneration(ArtifactMaterial, err)
	})
	g.Go(func() (err error) {
		drafts, err = s.generator.Flashcards(gctx, content)
		return wrapGeneration(ArtifactFlashcards, err)
	})
	g.Go(func() (err error) {
		mcqs, err = s.generator.MCQs(gctx, content)
		return wrapGeneration(ArtifactMCQs, err)
	})
	err := g.Wait()

	s.mu.Lock()
	if epoch != s.epoch {
		s.mu.Unlock()
		return ErrSuperseded
	}
	s.cancelGen()
	s.cancelGen = nil

	if err != nil {
		s.phase = PhaseIdle
		s.errMsg = err.Error()
		s.touchLocked()
		s.mu.Unlock()
		s.notify()
		s.logger.Warn("study material generation failed", "err", err)
		return err
	}

	cards := make([]deck.Flashcard, len(drafts))
	for i, d := range drafts {
		cards[i] = deck.Flashcard{
			ID:              s.newID(),
			Question:        d.Question,
			Answer:          d.Answer,
			VisualAidPrompt: d.VisualAidPrompt,
			Source:          d.Source,
			Performance:     deck.PerformanceNew,
		}
	}

	id := uuid.NewString()
	s.id = id
	s.content = content
	s.material = material
	s.cards = cards
	s.mcqs = mcqs
	s.phase = PhaseReady
	if s.tutor != nil {
		s.tutor.SetContext(content)
	}
	s.touchLocked()
	s.startVisualsLocked(epoch)
	s.mu.Unlock()

	s.notify()
	s.logger.Info("study material generated", "session", id, "cards", len(cards), "mcqs", len(mcqs))
	return nil
}

func wrapGeneration(a Artifact, err error) error {
	if err == nil {
		return nil
	}
	return &GenerationError{Artifact: a, Err: err}
}

// startVisualsLocked launches the visual aid run for the current deck.
func (s *Session) startVisualsLocked(epoch uint64) {
	if s.visuals == nil {
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	s.cancelVisuals = cancel
	cards := deck.CloneCards(s.cards)

	s.visualRuns++
	go func() {
		defer s.visualRunDone()
		defer cancel()
		s.visuals.Run(ctx, cards, visuals.Hooks{
			Started: func(id string) {
				s.updateCard(epoch, id, func(c *deck.Flashcard) {
					c.IsGeneratingVisual = true
				})
			},
			Finished: func(r visuals.Result) {
				s.updateCard(epoch, r.CardID, func(c *deck.Flashcard) {
					c.IsGeneratingVisual = false
					if r.Err == nil {
						c.ImageURL = r.ImageURL
					}
				})
			},
		})
	}()
}

// updateCard applies fn to one card if the session is still on epoch.
func (s *Session) updateCard(epoch uint64, id string, fn func(*deck.Flashcard)) {
	s.mu.Lock()
	if epoch != s.epoch {
		s.mu.Unlock()
		return
	}
	i := s.indexLocked(id)
	if i < 0 {
		s.mu.Unlock()
		return
	}
	fn(&s.cards[i])
	s.touchLocked()
	s.mu.Unlock()
	s.notify()
}

func (s *Session) visualRunDone() {
	s.mu.Lock()
	s.visualRuns--
	if s.visualRuns == 0 {
		s.visualsIdle.Broadcast()
	}
	s.mu.Unlock()
}

// WaitVisuals blocks until no visual aid run is executing. A run started
// by a Generate that commits while WaitVisuals is blocked is waited for
// too.
func (s *Session) WaitVisuals() {
	s.mu.Lock()
	for s.visualRuns > 0 {
		s.visualsIdle.Wait()
	}
	s.mu.Unlock()
}

// Grade records how well the learner recalled a card. Hard counts as
// incorrect; good and easy count as correct.
func (s *Session) Grade(cardID string, rating deck.Rating) error {
	if !rating.IsValid() {
		return deck.ErrInvalidRating
	}

	s.mu.Lock()
	if s.phase != PhaseReady {
		s.mu.Unlock()
		return ErrInvalidOperation
	}
	i := s.indexLocked(cardID)
	if i < 0 {
		s.mu.Unlock()
		return ErrUnknownCard
	}

	now := s.now()
	c := &s.cards[i]
	c.Performance = rating.Performance()
	c.LastReviewed = &now
	c.ReviewCount++

	s.stats = stats.Apply(s.stats, s.cards, stats.Event{At: now, Correct: rating.Correct()})
	s.touchLocked()
	s.mu.Unlock()
	s.notify()
	return nil
}

// Ask sends a question to the tutor. The question and the reply (or a
// fallback notice on failure) are both appended to the conversation. A
// failure is also recorded as the session error.
func (s *Session) Ask(ctx context.Context, question string) (string, error) {
	if s.tutor == nil {
		return "", ErrInvalidOperation
	}

	if strings.TrimSpace(question) == "" {
		return "", tutor.ErrEmptyQuestion
	}
	if s.tutor.Pending() {
		return "", tutor.ErrAwaitingReply
	}

	s.mu.Lock()
	epoch := s.epoch
	s.errMsg = ""
	s.touchLocked()
	s.mu.Unlock()

	reply, err := s.tutor.Ask(ctx, question)
	if errors.Is(err, tutor.ErrUnavailable) {
		s.mu.Lock()
		if epoch == s.epoch {
			s.errMsg = err.Error()
			s.touchLocked()
		}
		s.mu.Unlock()
		s.notify()
	}
	return reply, err
}

// Reset clears all session state and returns to idle. In-flight
// generation, visual aids and tutor replies are discarded.
func (s *Session) Reset() {
	s.mu.Lock()
	s.stopBackgroundLocked()
	s.epoch++
	s.id = ""
	s.phase = PhaseIdle
	s.errMsg = ""
	s.clearArtifactsLocked()
	s.stats = stats.Initial(s.now())
	if s.tutor != nil {
		s.tutor.Reset()
	}
	s.touchLocked()
	s.mu.Unlock()

	s.notify()
}

func (s *Session) stopBackgroundLocked() {
	if s.cancelGen != nil {
		s.cancelGen()
		s.cancelGen = nil
	}
	if s.cancelVisuals != nil {
		s.cancelVisuals()
		s.cancelVisuals = nil
	}
}

func (s *Session) clearArtifactsLocked() {
	s.content = ""
	s.material = nil
	s.cards = nil
	s.mcqs = nil
}

func (s *Session) indexLocked(id string) int {
	for i := range s.cards {
		if s.cards[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *Session) touchLocked() {
	s.version++
}

// Queue builds a recall practice run from the current deck.
func (s *Session) Queue() *recall.Practice {
	s.mu.Lock()
	defer s.mu.Unlock()
	return recall.NewPractice(s.cards)
}
