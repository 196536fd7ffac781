package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abdulsamadj00-tech/Abdul-Samad/internal/export"
)

var exportCmd = &cobra.Command{
	Use:   "export <notes-file|->",
	Short: "Generate a deck from a notes file and save it as an Excel workbook",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out, _ := cmd.Flags().GetString("output")
		wait, _ := cmd.Flags().GetBool("visuals")

		snap, err := generateFromFile(cmd, args[0], wait)
		if err != nil {
			return err
		}
		if err := export.WriteFile(out, snap); err != nil {
			return fmt.Errorf("write workbook: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d flashcards and %d questions to %s\n",
			len(snap.Flashcards), len(snap.MCQs), out)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringP("output", "o", "deck.xlsx", "Workbook path")
	exportCmd.Flags().Bool("visuals", false, "Wait for visual aids so image status is included")
}
