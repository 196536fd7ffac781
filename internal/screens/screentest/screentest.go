// Package screentest provides a ready study session and key helpers for
// screen tests.
package screentest

import (
	"context"
	"io"
	"log/slog"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abdulsamadj00-tech/Abdul-Samad/internal/deck"
	"github.com/abdulsamadj00-tech/Abdul-Samad/internal/session"
)

// Generator returns a fixed deck of two cards and two questions.
type Generator struct{}

func (Generator) LearningMaterial(context.Context, string) (*deck.LearningMaterial, error) {
	return &deck.LearningMaterial{
		Summary:   "Cells make energy in mitochondria.",
		KeyPoints: []string{"ATP is the energy currency"},
		Mnemonics: []deck.Mnemonic{{Concept: "Krebs", Mnemonic: "Can I Keep Selling Sex For Money, Officer?"}},
	}, nil
}

func (Generator) Flashcards(context.Context, string) ([]deck.CardDraft, error) {
	return []deck.CardDraft{
		{Question: "What is the powerhouse of the cell?", Answer: "The mitochondria", VisualAidPrompt: "mitochondrion cross-section"},
		{Question: "What molecule stores energy?", Answer: "ATP"},
	}, nil
}

func (Generator) MCQs(context.Context, string) ([]deck.MCQ, error) {
	return []deck.MCQ{
		{Question: "Where is ATP made?", Options: []string{"Nucleus", "Mitochondria", "Ribosome"}, Answer: "Mitochondria", Explanation: "Oxidative phosphorylation."},
		{Question: "ATP stands for?", Options: []string{"Adenosine triphosphate", "Amino transfer protein"}, Answer: "Adenosine triphosphate"},
	}, nil
}

// NewSession returns an idle session backed by Generator.
func NewSession() *session.Session {
	return session.New(session.Options{
		Generator: Generator{},
		Logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
}

// ReadySession returns a session that has already generated its deck.
func ReadySession(t testing.TB) *session.Session {
	t.Helper()
	s := NewSession()
	if err := s.Generate(context.Background(), "study notes"); err != nil {
		t.Fatalf("Generate: %v", err)
	}
	return s
}

// Key builds a key press for a printable rune.
func Key(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

// Special builds a key press for a non-printable key such as tea.KeyEnter.
func Special(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

// Ctrl builds a ctrl+r key press.
func Ctrl(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Mod: tea.ModCtrl}
}

// Run executes cmd and any batched commands, returning every message
// produced.
func Run(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, Run(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}
