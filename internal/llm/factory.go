package llm

import (
	"context"
	"fmt"
	"os"

	"github.com/abdulsamadj00-tech/Abdul-Samad/internal/store"
)

// NewProvider creates a text Provider from configuration, wrapped with
// timeout, retry and logging middleware.
func NewProvider(ctx context.Context, cfg Config, eventRepo store.EventRepo) (Provider, error) {
	var base Provider
	var err error

	switch cfg.Provider {
	case "anthropic":
		base, err = NewAnthropicProvider(cfg.Anthropic)
	case "openai":
		base, err = NewOpenAIProvider(cfg.OpenAI)
	case "gemini":
		base, err = NewGeminiProvider(ctx, cfg.Gemini)
	case "openrouter":
		base, err = NewOpenRouterProvider(cfg.OpenRouter)
	case "mock":
		return NewMockProvider(), nil
	default:
		return nil, fmt.Errorf("unknown LLM provider: %q", cfg.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}

	// caller → timeout → retry → logging → base
	logged := WithLogging(base, cfg.Provider, eventRepo)
	retried := WithRetry(logged, cfg.Retry)
	return WithTimeout(retried, cfg.Timeout), nil
}

// NewImageProvider creates the visual-aid backend selected by
// cfg.ImageBackend. It returns ErrImagesUnsupported when there is none.
func NewImageProvider(ctx context.Context, cfg Config, eventRepo store.EventRepo) (ImageProvider, error) {
	backend := cfg.ImageBackend()

	var base ImageProvider
	var err error

	switch backend {
	case "gemini":
		base, err = NewGeminiImageProvider(ctx, GeminiConfig{
			APIKey: cfg.Gemini.APIKey,
			Model:  cfg.Image.GeminiModel,
		})
	case "openai":
		base, err = NewOpenAIImageProvider(OpenAIConfig{
			APIKey:  cfg.OpenAI.APIKey,
			Model:   cfg.Image.OpenAIModel,
			BaseURL: cfg.OpenAI.BaseURL,
		}, cfg.Image.Size)
	case "mock":
		return NewMockImageProvider(), nil
	default:
		return nil, ErrImagesUnsupported
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s image provider: %w", backend, err)
	}

	logged := WithImageLogging(base, backend, eventRepo)
	retried := WithImageRetry(logged, cfg.Retry)
	return WithImageTimeout(retried, cfg.Timeout), nil
}

// ResolveConfig reads MEMORYMASTER_* settings. When no provider was chosen
// explicitly and the default one has no key, it falls back to the standard
// vendor key variables.
func ResolveConfig() (Config, error) {
	cfg := ConfigFromEnv()
	if err := cfg.Validate(); err == nil {
		return cfg, nil
	} else if os.Getenv(envPrefix+"LLM_PROVIDER") != "" {
		return Config{}, err
	}

	discovered, ok := DiscoverConfig()
	if !ok {
		return Config{}, fmt.Errorf("no LLM API key found: set GEMINI_API_KEY, OPENAI_API_KEY, ANTHROPIC_API_KEY or %sLLM_PROVIDER", envPrefix)
	}
	discovered.Image = cfg.Image
	discovered.Timeout = cfg.Timeout
	return discovered, nil
}

// NewProviderFromEnv resolves configuration from the environment and builds
// the text provider.
func NewProviderFromEnv(ctx context.Context, eventRepo store.EventRepo) (Provider, error) {
	cfg, err := ResolveConfig()
	if err != nil {
		return nil, err
	}
	return NewProvider(ctx, cfg, eventRepo)
}
