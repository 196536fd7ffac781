package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/abdulsamadj00-tech/Abdul-Samad/internal/store"
)

// LoggingProvider is a decorator that records every LLM request as an event.
type LoggingProvider struct {
	inner     Provider
	provider  string
	eventRepo store.EventRepo
}

// WithLogging wraps a Provider with event logging. A nil repo disables
// recording.
func WithLogging(p Provider, provider string, repo store.EventRepo) Provider {
	if repo == nil {
		return p
	}
	return &LoggingProvider{inner: p, provider: provider, eventRepo: repo}
}

func (l *LoggingProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()

	resp, err := l.inner.Generate(ctx, req)

	data := store.LLMRequestEventData{
		Provider:    l.provider,
		Model:       l.inner.ModelID(),
		Purpose:     PurposeFrom(ctx),
		LatencyMs:   time.Since(start).Milliseconds(),
		Success:     err == nil,
		RequestBody: serializeRequest(req),
	}
	if resp != nil {
		data.InputTokens = resp.Usage.InputTokens
		data.OutputTokens = resp.Usage.OutputTokens
		data.Model = resp.Model
		data.ResponseBody = string(resp.Content)
	}
	if err != nil {
		data.ErrorMessage = err.Error()
	}

	record(ctx, l.eventRepo, data)
	return resp, err
}

func (l *LoggingProvider) ModelID() string {
	return l.inner.ModelID()
}

// LoggingImageProvider records image requests. Image bytes are summarized,
// not stored.
type LoggingImageProvider struct {
	inner     ImageProvider
	provider  string
	eventRepo store.EventRepo
}

// WithImageLogging wraps an ImageProvider with event logging.
func WithImageLogging(p ImageProvider, provider string, repo store.EventRepo) ImageProvider {
	if repo == nil {
		return p
	}
	return &LoggingImageProvider{inner: p, provider: provider, eventRepo: repo}
}

func (l *LoggingImageProvider) GenerateImage(ctx context.Context, req ImageRequest) (*ImageResponse, error) {
	start := time.Now()

	resp, err := l.inner.GenerateImage(ctx, req)

	data := store.LLMRequestEventData{
		Provider:    l.provider,
		Model:       l.inner.ModelID(),
		Purpose:     PurposeFrom(ctx),
		LatencyMs:   time.Since(start).Milliseconds(),
		Success:     err == nil,
		RequestBody: fmt.Sprintf("[image %s]\n%s\n", req.Size, req.Prompt),
	}
	if resp != nil {
		data.Model = resp.Model
		data.ResponseBody = fmt.Sprintf("[%s, %d bytes]", resp.MIMEType, len(resp.Data))
	}
	if err != nil {
		data.ErrorMessage = err.Error()
	}

	record(ctx, l.eventRepo, data)
	return resp, err
}

func (l *LoggingImageProvider) ModelID() string {
	return l.inner.ModelID()
}

// record appends the event without failing the request if logging fails.
// The append runs on a context detached from cancellation so an aborted
// request is still recorded.
func record(ctx context.Context, repo store.EventRepo, data store.LLMRequestEventData) {
	if err := repo.AppendLLMRequest(context.WithoutCancel(ctx), data); err != nil {
		slog.Warn("failed to log LLM request event", "purpose", data.Purpose, "err", err)
	}
}

// serializeRequest builds a readable representation of the LLM request.
func serializeRequest(req Request) string {
	var b strings.Builder

	if req.System != "" {
		b.WriteString("[system]\n")
		b.WriteString(req.System)
		b.WriteString("\n\n")
	}

	for _, m := range req.Messages {
		fmt.Fprintf(&b, "[%s]\n", m.Role)
		b.WriteString(m.Content)
		b.WriteString("\n\n")
	}

	if req.Schema != nil {
		if schemaDef, err := json.Marshal(req.Schema.Definition); err == nil {
			fmt.Fprintf(&b, "[schema: %s]\n", req.Schema.Name)
			b.Write(schemaDef)
			b.WriteString("\n")
		}
	}

	return b.String()
}
