package llm

import (
	"context"
	"encoding/json"
)

// Provider is the text side of the content-generation collaborator.
// With a Schema it returns structured JSON; without one it converses.
type Provider interface {
	// Generate sends a prompt to the LLM. When req.Schema is set the
	// response Content is JSON already validated against it; otherwise
	// Content holds the raw reply text.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID returns the model identifier this provider is configured to use.
	ModelID() string
}

// Request describes what to send to the LLM.
type Request struct {
	// System is the system prompt. For tutoring it carries the persona and
	// the learner's study text.
	System string

	// Messages is the conversation history, oldest first. Structured
	// generation sends a single user message.
	Messages []Message

	// Schema is the JSON Schema the response must conform to.
	// When nil, the response Content is raw text.
	Schema *Schema

	// MaxTokens is the maximum number of tokens in the response.
	MaxTokens int

	// Temperature controls randomness. Range: 0.0 - 1.0.
	Temperature float64
}

// Message represents a single message in the conversation.
type Message struct {
	Role    Role
	Content string
}

// Role is the message sender role.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Schema defines the JSON structure expected from the LLM.
type Schema struct {
	// Name identifies this schema (schema name for OpenAI, cache key for
	// validation). Kebab-case, e.g. "study-flashcards".
	Name string

	// Description is sent to the LLM to guide generation.
	Description string

	// Definition is the JSON Schema definition as a map.
	Definition map[string]any
}

// Response holds the LLM's output.
type Response struct {
	// Content is the validated JSON object when a Schema was provided,
	// or the reply text otherwise.
	Content json.RawMessage

	Usage Usage

	// Model is the actual model that served the request.
	Model string

	// StopReason is normalized to "end", "max_tokens" or "error".
	StopReason string
}

// Text returns the response content as a plain string.
func (r *Response) Text() string {
	if r == nil {
		return ""
	}
	return string(r.Content)
}

// Usage tracks token consumption for a single request.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}

// ImageProvider is the image side of the collaborator.
type ImageProvider interface {
	// GenerateImage renders a single image for the prompt.
	GenerateImage(ctx context.Context, req ImageRequest) (*ImageResponse, error)

	// ModelID returns the model identifier this provider is configured to use.
	ModelID() string
}

// ImageRequest describes an image to render.
type ImageRequest struct {
	Prompt string

	// Size is a backend hint such as "1024x1024". Backends that do not
	// take a size ignore it.
	Size string
}

// ImageResponse holds decoded image bytes.
type ImageResponse struct {
	Data     []byte
	MIMEType string
	Model    string
}
