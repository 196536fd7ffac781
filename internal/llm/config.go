package llm

import (
	"errors"
	"fmt"
	"os"
	"time"
)

// ErrImagesUnsupported is returned when the configured backend cannot
// render images. Visual aids are skipped in that case.
var ErrImagesUnsupported = errors.New("llm: no image backend configured")

const envPrefix = "MEMORYMASTER_"

// Config holds all LLM provider configuration.
type Config struct {
	// Provider selects the text backend.
	// Values: "anthropic", "openai", "gemini", "openrouter", "mock"
	Provider string

	Anthropic  AnthropicConfig
	OpenAI     OpenAIConfig
	Gemini     GeminiConfig
	OpenRouter OpenRouterConfig
	Image      ImageConfig
	Retry      RetryConfig

	// Timeout bounds a single logical request including retries.
	Timeout time.Duration
}

// AnthropicConfig holds Anthropic-specific configuration.
type AnthropicConfig struct {
	APIKey string
	Model  string // Default: "claude-haiku"
}

// OpenAIConfig holds OpenAI-specific configuration.
type OpenAIConfig struct {
	APIKey  string
	Model   string // Default: "gpt-4o-mini"
	BaseURL string // Optional. Override for compatible APIs.
}

// GeminiConfig holds Gemini-specific configuration.
type GeminiConfig struct {
	APIKey string
	Model  string // Default: "gemini-flash"
}

// OpenRouterConfig holds OpenRouter-specific configuration.
type OpenRouterConfig struct {
	APIKey  string
	Model   string // Default: "google/gemini-2.5-flash"
	BaseURL string // Default: "https://openrouter.ai/api/v1"
}

// ImageConfig selects the backend used for visual aids. Keys are shared
// with the text backends of the same vendor.
type ImageConfig struct {
	// Provider is "gemini", "openai", "mock" or "none". Empty means
	// follow the text provider when it can render images.
	Provider    string
	GeminiModel string // Default: "gemini-flash-image"
	OpenAIModel string // Default: "dall-e-3"
	Size        string // Default: "1024x1024"
}

// RetryConfig configures retry behavior for transient failures.
type RetryConfig struct {
	MaxAttempts int
	InitialWait time.Duration
	MaxWait     time.Duration
	Multiplier  float64
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Provider: "gemini",
		Anthropic: AnthropicConfig{
			Model: "claude-haiku",
		},
		OpenAI: OpenAIConfig{
			Model: "gpt-4o-mini",
		},
		Gemini: GeminiConfig{
			Model: "gemini-flash",
		},
		OpenRouter: OpenRouterConfig{
			Model: "google/gemini-2.5-flash",
		},
		Image: ImageConfig{
			GeminiModel: "gemini-flash-image",
			OpenAIModel: "dall-e-3",
			Size:        "1024x1024",
		},
		Retry: RetryConfig{
			MaxAttempts: 3,
			InitialWait: 1 * time.Second,
			MaxWait:     10 * time.Second,
			Multiplier:  2.0,
		},
		Timeout: 60 * time.Second,
	}
}

// ConfigFromEnv builds a Config from MEMORYMASTER_* environment variables,
// falling back to defaults for unset values.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()

	setFromEnv(&cfg.Provider, "LLM_PROVIDER")

	setFromEnv(&cfg.Anthropic.APIKey, "ANTHROPIC_API_KEY")
	setFromEnv(&cfg.Anthropic.Model, "ANTHROPIC_MODEL")

	setFromEnv(&cfg.OpenAI.APIKey, "OPENAI_API_KEY")
	setFromEnv(&cfg.OpenAI.Model, "OPENAI_MODEL")
	setFromEnv(&cfg.OpenAI.BaseURL, "OPENAI_BASE_URL")

	setFromEnv(&cfg.Gemini.APIKey, "GEMINI_API_KEY")
	setFromEnv(&cfg.Gemini.Model, "GEMINI_MODEL")

	setFromEnv(&cfg.OpenRouter.APIKey, "OPENROUTER_API_KEY")
	setFromEnv(&cfg.OpenRouter.Model, "OPENROUTER_MODEL")

	setFromEnv(&cfg.Image.Provider, "IMAGE_PROVIDER")
	setFromEnv(&cfg.Image.GeminiModel, "GEMINI_IMAGE_MODEL")
	setFromEnv(&cfg.Image.OpenAIModel, "OPENAI_IMAGE_MODEL")
	setFromEnv(&cfg.Image.Size, "IMAGE_SIZE")

	if t := os.Getenv(envPrefix + "LLM_TIMEOUT"); t != "" {
		if d, err := time.ParseDuration(t); err == nil {
			cfg.Timeout = d
		}
	}

	return cfg
}

func setFromEnv(dst *string, name string) {
	if v := os.Getenv(envPrefix + name); v != "" {
		*dst = v
	}
}

// DiscoverConfig probes standard API key env vars in priority order
// (Gemini, OpenAI, Anthropic, OpenRouter) and returns a Config for the
// first provider whose key is found. Returns (Config{}, false) if none found.
func DiscoverConfig() (Config, bool) {
	cfg := DefaultConfig()

	if k := os.Getenv("GEMINI_API_KEY"); k != "" {
		cfg.Provider = "gemini"
		cfg.Gemini.APIKey = k
		return cfg, true
	}
	if k := os.Getenv("OPENAI_API_KEY"); k != "" {
		cfg.Provider = "openai"
		cfg.OpenAI.APIKey = k
		return cfg, true
	}
	if k := os.Getenv("ANTHROPIC_API_KEY"); k != "" {
		cfg.Provider = "anthropic"
		cfg.Anthropic.APIKey = k
		return cfg, true
	}
	if k := os.Getenv("OPENROUTER_API_KEY"); k != "" {
		cfg.Provider = "openrouter"
		cfg.OpenRouter.APIKey = k
		return cfg, true
	}

	return Config{}, false
}

// Validate checks that the selected provider has its required API key set.
func (c Config) Validate() error {
	switch c.Provider {
	case "anthropic":
		if c.Anthropic.APIKey == "" {
			return fmt.Errorf("%sANTHROPIC_API_KEY is required for the anthropic provider", envPrefix)
		}
	case "openai":
		if c.OpenAI.APIKey == "" {
			return fmt.Errorf("%sOPENAI_API_KEY is required for the openai provider", envPrefix)
		}
	case "gemini":
		if c.Gemini.APIKey == "" {
			return fmt.Errorf("%sGEMINI_API_KEY is required for the gemini provider", envPrefix)
		}
	case "openrouter":
		if c.OpenRouter.APIKey == "" {
			return fmt.Errorf("%sOPENROUTER_API_KEY is required for the openrouter provider", envPrefix)
		}
	case "mock":
	default:
		return fmt.Errorf("unknown LLM provider: %q", c.Provider)
	}
	return nil
}

// ImageBackend resolves which backend renders visual aids.
// It returns "none" when no configured vendor can produce images.
func (c Config) ImageBackend() string {
	switch c.Image.Provider {
	case "":
	case "gemini", "openai", "mock", "none":
		return c.Image.Provider
	default:
		return "none"
	}

	switch c.Provider {
	case "gemini", "openai", "mock":
		return c.Provider
	}
	// Text served elsewhere; borrow any image-capable key that is present.
	if c.Gemini.APIKey != "" {
		return "gemini"
	}
	if c.OpenAI.APIKey != "" {
		return "openai"
	}
	return "none"
}
