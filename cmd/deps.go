package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/abdulsamadj00-tech/Abdul-Samad/internal/llm"
	"github.com/abdulsamadj00-tech/Abdul-Samad/internal/session"
	"github.com/abdulsamadj00-tech/Abdul-Samad/internal/store"
	"github.com/abdulsamadj00-tech/Abdul-Samad/internal/studygen"
	"github.com/abdulsamadj00-tech/Abdul-Samad/internal/tutor"
	"github.com/abdulsamadj00-tech/Abdul-Samad/internal/visuals"
)

// deps is everything a command needs to run a study session.
type deps struct {
	store   *store.Store
	session *session.Session
	logger  *slog.Logger
	visuals bool
}

func (d *deps) Close() error {
	return d.store.Close()
}

// newLogger builds the process logger writing text records to w.
func newLogger(cmd *cobra.Command, w io.Writer) *slog.Logger {
	level := slog.LevelInfo
	if v, _ := cmd.Flags().GetBool("verbose"); v {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// openLogFile opens the TUI log in the data directory so log output does
// not corrupt the terminal.
func openLogFile() (*os.File, error) {
	dir, err := store.DataDir()
	if err != nil {
		return nil, err
	}
	path := filepath.Join(dir, "memorymaster.log")
	if err := store.EnsureDir(path); err != nil {
		return nil, err
	}
	return os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
}

// buildDeps opens the event store and wires the LLM backends into a
// session. Visual aids are left out when no image backend is configured.
func buildDeps(ctx context.Context, cmd *cobra.Command, logger *slog.Logger) (*deps, error) {
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	eventRepo := st.EventRepo()

	cfg, err := llm.ResolveConfig()
	if err != nil {
		_ = st.Close()
		return nil, err
	}

	provider, err := llm.NewProvider(ctx, cfg, eventRepo)
	if err != nil {
		_ = st.Close()
		return nil, err
	}
	logger.Debug("llm provider ready", "provider", cfg.Provider, "model", provider.ModelID())

	opts := session.Options{
		Generator: studygen.New(provider, studygen.DefaultConfig()),
		Tutor:     tutor.New(provider, tutor.DefaultConfig()),
		Config:    session.DefaultConfig(),
		Logger:    logger,
	}

	images, err := llm.NewImageProvider(ctx, cfg, eventRepo)
	switch {
	case errors.Is(err, llm.ErrImagesUnsupported):
		logger.Info("visual aids disabled", "provider", cfg.Provider)
	case err != nil:
		logger.Warn("visual aids disabled", "err", err)
	default:
		vcfg := visuals.DefaultConfig()
		if cfg.Image.Size != "" {
			vcfg.Size = cfg.Image.Size
		}
		opts.Visuals = visuals.New(images, vcfg, logger)
	}

	return &deps{
		store:   st,
		session: session.New(opts),
		logger:  logger,
		visuals: opts.Visuals != nil,
	}, nil
}
