package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abdulsamadj00-tech/Abdul-Samad/internal/deck"
	"github.com/abdulsamadj00-tech/Abdul-Samad/internal/session"
)

func TestPrintSnapshot(t *testing.T) {
	snap := session.Snapshot{
		Phase: session.PhaseReady,
		Material: &deck.LearningMaterial{
			Summary:   "Cells make ATP in mitochondria.",
			KeyPoints: []string{"ATP is energy currency"},
			Mnemonics: []deck.Mnemonic{{Concept: "Krebs", Mnemonic: "Can I Keep Selling Sex For Money, Officer"}},
		},
		Flashcards: []deck.Flashcard{
			{ID: "a", Question: "Powerhouse of the cell?", Answer: "Mitochondria", ImageURL: "data:image/png;base64,AA=="},
		},
		MCQs: []deck.MCQ{
			{Question: "Where is ATP made?", Options: []string{"Nucleus", "Mitochondria"}, Answer: "Mitochondria", Explanation: "Oxidative phosphorylation."},
		},
	}

	var buf bytes.Buffer
	printSnapshot(&buf, snap)
	out := buf.String()

	assert.Contains(t, out, "Cells make ATP in mitochondria.")
	assert.Contains(t, out, "• ATP is energy currency")
	assert.Contains(t, out, "Krebs: Can I Keep")
	assert.Contains(t, out, "FLASHCARDS (1)")
	assert.Contains(t, out, "1. Q: Powerhouse of the cell?")
	assert.Contains(t, out, "[visual aid ready]")
	assert.Contains(t, out, "QUESTIONS (1)")
	assert.Contains(t, out, "* b) Mitochondria")
	assert.Contains(t, out, "  a) Nucleus")
}

func TestPrintSnapshotWithoutMaterial(t *testing.T) {
	var buf bytes.Buffer
	printSnapshot(&buf, session.Snapshot{})
	out := buf.String()

	assert.NotContains(t, out, "SUMMARY")
	assert.Contains(t, out, "FLASHCARDS (0)")
	assert.Contains(t, out, "QUESTIONS (0)")
}

func TestReadNotes(t *testing.T) {
	t.Run("file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "notes.txt")
		require.NoError(t, os.WriteFile(path, []byte("krebs cycle"), 0o644))

		b, err := readNotes(&cobra.Command{}, path)
		require.NoError(t, err)
		assert.Equal(t, "krebs cycle", string(b))
	})

	t.Run("stdin", func(t *testing.T) {
		c := &cobra.Command{}
		c.SetIn(strings.NewReader("from stdin"))

		b, err := readNotes(c, "-")
		require.NoError(t, err)
		assert.Equal(t, "from stdin", string(b))
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := readNotes(&cobra.Command{}, filepath.Join(t.TempDir(), "nope.txt"))
		assert.ErrorContains(t, err, "read notes")
	})
}

func TestTruncateAndFormatCost(t *testing.T) {
	assert.Equal(t, "gpt", truncate("gpt-4o", 3))
	assert.Equal(t, "gpt-4o", truncate("gpt-4o", 10))
	assert.Equal(t, "$0.0012", formatCost(0.0012))
	assert.Equal(t, "$1.50", formatCost(1.5))
}
