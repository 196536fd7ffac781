package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abdulsamadj00-tech/Abdul-Samad/internal/app"
)

// runApp builds dependencies and launches the TUI, optionally pre-loading
// the study text from a file.
func runApp(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	var text string
	if len(args) == 1 {
		b, err := readNotes(cmd, args[0])
		if err != nil {
			return err
		}
		text = string(b)
	}

	logFile, err := openLogFile()
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer logFile.Close()
	logger := newLogger(cmd, logFile)

	d, err := buildDeps(ctx, cmd, logger)
	if err != nil {
		return err
	}
	defer d.Close()

	skip, _ := cmd.Flags().GetBool("no-welcome")
	return app.Run(ctx, app.Options{
		Session:     d.session,
		Text:        text,
		SkipWelcome: skip,
	})
}
