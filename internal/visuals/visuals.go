// Package visuals renders flashcard visual aids in the background. Each
// card is its own task: one failure never affects another card.
package visuals

import (
	"context"
	"encoding/base64"
	"errors"
	"log/slog"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/abdulsamadj00-tech/Abdul-Samad/internal/deck"
	"github.com/abdulsamadj00-tech/Abdul-Samad/internal/llm"
	"github.com/abdulsamadj00-tech/Abdul-Samad/internal/studygen"
)

// Config controls the Orchestrator.
type Config struct {
	// MaxConcurrent bounds simultaneous image requests. Zero or less
	// means unbounded.
	MaxConcurrent int

	// Size is passed to the image backend as a hint.
	Size string
}

// DefaultConfig returns a Config with recommended defaults.
func DefaultConfig() Config {
	return Config{MaxConcurrent: 4, Size: "1024x1024"}
}

// Result is the outcome for one card. Exactly one of ImageURL and Err is set.
type Result struct {
	CardID   string
	ImageURL string
	Err      error
}

// Hooks receive per-card progress. Both may be called from multiple
// goroutines.
type Hooks struct {
	// Started is called for every eligible card before any request is sent.
	Started func(cardID string)

	// Finished is called once per eligible card.
	Finished func(Result)
}

// Orchestrator fans image requests out over a deck.
type Orchestrator struct {
	images llm.ImageProvider
	config Config
	logger *slog.Logger
}

// New creates an Orchestrator. A nil provider disables visual aids.
func New(images llm.ImageProvider, cfg Config, logger *slog.Logger) *Orchestrator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Orchestrator{images: images, config: cfg, logger: logger}
}

// Enabled reports whether an image backend is configured.
func (o *Orchestrator) Enabled() bool {
	return o != nil && o.images != nil
}

// Run renders every eligible card and blocks until all tasks finish or ctx
// is canceled. Canceled tasks still report through Finished.
func (o *Orchestrator) Run(ctx context.Context, cards []deck.Flashcard, hooks Hooks) {
	if !o.Enabled() {
		return
	}
	eligible := Eligible(cards)
	if len(eligible) == 0 {
		return
	}

	for _, c := range eligible {
		if hooks.Started != nil {
			hooks.Started(c.ID)
		}
	}

	ctx = llm.WithPurpose(ctx, llm.PurposeVisualAid)

	var g errgroup.Group
	if o.config.MaxConcurrent > 0 {
		g.SetLimit(o.config.MaxConcurrent)
	}
	for _, c := range eligible {
		g.Go(func() error {
			res := o.render(ctx, c)
			if hooks.Finished != nil {
				hooks.Finished(res)
			}
			return nil
		})
	}
	g.Wait()
}

func (o *Orchestrator) render(ctx context.Context, c deck.Flashcard) Result {
	if err := ctx.Err(); err != nil {
		return Result{CardID: c.ID, Err: err}
	}

	resp, err := o.images.GenerateImage(ctx, llm.ImageRequest{
		Prompt: studygen.VisualPrompt(c.VisualAidPrompt),
		Size:   o.config.Size,
	})
	if err != nil {
		o.logger.Warn("visual aid generation failed", "card", c.ID, "err", err)
		return Result{CardID: c.ID, Err: err}
	}

	return Result{CardID: c.ID, ImageURL: DataURI(resp.MIMEType, resp.Data)}
}

// Eligible returns the cards that have a visual prompt and no image yet.
func Eligible(cards []deck.Flashcard) []deck.Flashcard {
	var out []deck.Flashcard
	for _, c := range cards {
		if strings.TrimSpace(c.VisualAidPrompt) != "" && c.ImageURL == "" {
			out = append(out, c)
		}
	}
	return out
}

// DataURI encodes image bytes as a base64 data URI. An empty MIME type is
// treated as PNG.
func DataURI(mimeType string, data []byte) string {
	if mimeType == "" {
		mimeType = "image/png"
	}
	return "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(data)
}

// ErrNotDataURI is returned by DecodeDataURI for anything other than a
// base64 data URI.
var ErrNotDataURI = errors.New("visuals: not a base64 data URI")

// DecodeDataURI reverses DataURI.
func DecodeDataURI(uri string) (mimeType string, data []byte, err error) {
	rest, ok := strings.CutPrefix(uri, "data:")
	if !ok {
		return "", nil, ErrNotDataURI
	}
	meta, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return "", nil, ErrNotDataURI
	}
	mimeType, ok = strings.CutSuffix(meta, ";base64")
	if !ok {
		return "", nil, ErrNotDataURI
	}
	data, err = base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, err
	}
	return mimeType, data, nil
}
