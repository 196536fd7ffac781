package cmd

import (
	"errors"
	"io/fs"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/abdulsamadj00-tech/Abdul-Samad/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "memorymaster [notes-file]",
	Short: "AI study companion for active recall",
	Long: "Memory Master turns study notes into learning material, flashcards, " +
		"multiple-choice questions and visual aids, then helps you practice them.",
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return loadDotEnv()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd, args)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides MEMORYMASTER_DB env var)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Log debug output")
	rootCmd.Flags().Bool("no-welcome", false, "Skip the welcome screen")

	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(updateCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadDotEnv reads .env from the working directory. Variables already set
// in the environment win, and a missing file is not an error.
func loadDotEnv() error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then MEMORYMASTER_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}
