package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abdulsamadj00-tech/Abdul-Samad/internal/session"
)

var generateCmd = &cobra.Command{
	Use:   "generate <notes-file|->",
	Short: "Generate study material from a notes file and print it",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		asJSON, _ := cmd.Flags().GetBool("json")
		wait, _ := cmd.Flags().GetBool("visuals")

		snap, err := generateFromFile(cmd, args[0], wait)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if asJSON {
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(snap)
		}
		printSnapshot(out, snap)
		return nil
	},
}

func init() {
	generateCmd.Flags().Bool("json", false, "Print the session snapshot as JSON")
	generateCmd.Flags().Bool("visuals", false, "Wait for visual aids before printing")
}

// readNotes reads the study text from path, or stdin when path is "-".
func readNotes(cmd *cobra.Command, path string) ([]byte, error) {
	var (
		b   []byte
		err error
	)
	if path == "-" {
		b, err = io.ReadAll(cmd.InOrStdin())
	} else {
		b, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("read notes: %w", err)
	}
	return b, nil
}

// generateFromFile runs a headless session over a notes file. With
// waitVisuals it blocks until every visual aid has settled.
func generateFromFile(cmd *cobra.Command, path string, waitVisuals bool) (session.Snapshot, error) {
	text, err := readNotes(cmd, path)
	if err != nil {
		return session.Snapshot{}, err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	logger := newLogger(cmd, cmd.ErrOrStderr())
	d, err := buildDeps(ctx, cmd, logger)
	if err != nil {
		return session.Snapshot{}, err
	}
	defer d.Close()

	logger.Info("generating study material", "bytes", len(text))
	if err := d.session.Generate(ctx, string(text)); err != nil {
		return session.Snapshot{}, err
	}

	if waitVisuals && d.visuals {
		logger.Info("waiting for visual aids")
		waitOrCancel(ctx, d.session)
	}
	return d.session.Snapshot(), nil
}

// waitOrCancel waits for background visual aids, abandoning them when ctx
// ends.
func waitOrCancel(ctx context.Context, sess *session.Session) {
	done := make(chan struct{})
	go func() {
		sess.WaitVisuals()
		close(done)
	}()
	select {
	case <-done:
	case <-ctx.Done():
	}
}

func printSnapshot(w io.Writer, snap session.Snapshot) {
	sep := strings.Repeat("─", 60)

	if m := snap.Material; m != nil {
		fmt.Fprintln(w, "SUMMARY")
		fmt.Fprintln(w, sep)
		fmt.Fprintln(w, m.Summary)
		if len(m.KeyPoints) > 0 {
			fmt.Fprintln(w)
			fmt.Fprintln(w, "KEY POINTS")
			fmt.Fprintln(w, sep)
			for _, p := range m.KeyPoints {
				fmt.Fprintf(w, "• %s\n", p)
			}
		}
		if len(m.Mnemonics) > 0 {
			fmt.Fprintln(w)
			fmt.Fprintln(w, "MNEMONICS")
			fmt.Fprintln(w, sep)
			for _, mn := range m.Mnemonics {
				fmt.Fprintf(w, "%s: %s\n", mn.Concept, mn.Mnemonic)
			}
		}
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "FLASHCARDS (%d)\n", len(snap.Flashcards))
	fmt.Fprintln(w, sep)
	for i, c := range snap.Flashcards {
		fmt.Fprintf(w, "%d. Q: %s\n   A: %s\n", i+1, c.Question, c.Answer)
		if c.ImageURL != "" {
			fmt.Fprintln(w, "   [visual aid ready]")
		}
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "QUESTIONS (%d)\n", len(snap.MCQs))
	fmt.Fprintln(w, sep)
	for i, q := range snap.MCQs {
		fmt.Fprintf(w, "%d. %s\n", i+1, q.Question)
		for j, opt := range q.Options {
			mark := " "
			if opt == q.Answer {
				mark = "*"
			}
			fmt.Fprintf(w, "   %s %c) %s\n", mark, 'a'+j, opt)
		}
		if q.Explanation != "" {
			fmt.Fprintf(w, "   %s\n", q.Explanation)
		}
	}
}
