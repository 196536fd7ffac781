// Package studygen produces the three study artifacts (learning material,
// flashcards and MCQs) from a learner's text using an LLM provider.
package studygen

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/abdulsamadj00-tech/Abdul-Samad/internal/deck"
	"github.com/abdulsamadj00-tech/Abdul-Samad/internal/llm"
)

// Generator produces study artifacts with an LLM provider. It is safe for
// concurrent use; the three methods are independent requests.
type Generator struct {
	provider llm.Provider
	config   Config
}

// New creates a new Generator with the given provider and config.
func New(provider llm.Provider, cfg Config) *Generator {
	return &Generator{provider: provider, config: cfg}
}

// materialOutput is the raw LLM response before cleanup.
type materialOutput struct {
	Summary   string          `json:"summary"`
	KeyPoints []string        `json:"keyPoints"`
	Mnemonics []deck.Mnemonic `json:"mnemonics"`
	Source    string          `json:"source"`
}

type flashcardOutput struct {
	Cards []deck.CardDraft `json:"cards"`
}

type mcqOutput struct {
	Questions []deck.MCQ `json:"questions"`
}

// LearningMaterial generates the summary, key points and mnemonics.
func (g *Generator) LearningMaterial(ctx context.Context, content string) (*deck.LearningMaterial, error) {
	var raw materialOutput
	if err := g.generate(ctx, llm.PurposeLearningMaterial, materialTask, content, MaterialSchema, g.config.MaterialMaxTokens, &raw); err != nil {
		return nil, err
	}

	m := &deck.LearningMaterial{
		Summary: strings.TrimSpace(raw.Summary),
		Source:  strings.TrimSpace(raw.Source),
	}
	if m.Summary == "" {
		return nil, invalid(raw, "summary is empty")
	}
	for _, p := range raw.KeyPoints {
		if p = strings.TrimSpace(p); p != "" {
			m.KeyPoints = append(m.KeyPoints, p)
		}
	}
	for _, mn := range raw.Mnemonics {
		mn.Concept = strings.TrimSpace(mn.Concept)
		mn.Mnemonic = strings.TrimSpace(mn.Mnemonic)
		if mn.Mnemonic != "" {
			m.Mnemonics = append(m.Mnemonics, mn)
		}
	}
	return m, nil
}

// Flashcards generates the card set. Cards come back as drafts; the
// caller assigns identity and practice state.
func (g *Generator) Flashcards(ctx context.Context, content string) ([]deck.CardDraft, error) {
	var raw flashcardOutput
	if err := g.generate(ctx, llm.PurposeFlashcards, flashcardTask, content, FlashcardSchema, g.config.FlashcardMaxTokens, &raw); err != nil {
		return nil, err
	}

	cards := make([]deck.CardDraft, 0, len(raw.Cards))
	for i, c := range raw.Cards {
		c.Question = strings.TrimSpace(c.Question)
		c.Answer = strings.TrimSpace(c.Answer)
		c.VisualAidPrompt = strings.TrimSpace(c.VisualAidPrompt)
		c.Source = strings.TrimSpace(c.Source)
		if c.Question == "" || c.Answer == "" {
			return nil, invalid(raw, fmt.Sprintf("card %d has an empty question or answer", i+1))
		}
		cards = append(cards, c)
	}
	return cards, nil
}

// MCQs generates the multiple-choice question set. Every question is
// checked so its answer is one of its options.
func (g *Generator) MCQs(ctx context.Context, content string) ([]deck.MCQ, error) {
	var raw mcqOutput
	if err := g.generate(ctx, llm.PurposeMCQs, mcqTask, content, MCQSchema, g.config.MCQMaxTokens, &raw); err != nil {
		return nil, err
	}

	qs := make([]deck.MCQ, 0, len(raw.Questions))
	for _, q := range raw.Questions {
		q.Question = strings.TrimSpace(q.Question)
		q.Answer = strings.TrimSpace(q.Answer)
		q.Explanation = strings.TrimSpace(q.Explanation)
		q.Source = strings.TrimSpace(q.Source)
		for i := range q.Options {
			q.Options[i] = strings.TrimSpace(q.Options[i])
		}
		if err := q.Validate(); err != nil {
			return nil, &llm.ErrInvalidResponse{Err: err}
		}
		qs = append(qs, q)
	}
	return qs, nil
}

// generate runs one structured request and decodes it into out.
func (g *Generator) generate(ctx context.Context, purpose, task, content string, schema *llm.Schema, maxTokens int, out any) error {
	ctx = llm.WithPurpose(ctx, purpose)

	req := llm.Request{
		System: systemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildUserMessage(task, content)},
		},
		Schema:      schema,
		MaxTokens:   maxTokens,
		Temperature: g.config.Temperature,
	}

	resp, err := g.provider.Generate(ctx, req)
	if err != nil {
		return fmt.Errorf("LLM generation failed: %w", err)
	}

	if err := json.Unmarshal(resp.Content, out); err != nil {
		return fmt.Errorf("failed to parse LLM response: %w", err)
	}
	return nil
}

func invalid(raw any, msg string) error {
	content, _ := json.Marshal(raw)
	return &llm.ErrInvalidResponse{Content: content, Err: errors.New(msg)}
}
