package llm

import (
	"context"
	"encoding/base64"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
	"google.golang.org/genai"
)

// GeminiImageProvider renders images with a Gemini image model by asking
// for an IMAGE response modality and reading the inline blob.
type GeminiImageProvider struct {
	client *genai.Client
	model  string
}

// NewGeminiImageProvider creates a Gemini image provider.
func NewGeminiImageProvider(ctx context.Context, cfg GeminiConfig) (*GeminiImageProvider, error) {
	client, err := newGeminiClient(ctx, cfg.APIKey)
	if err != nil {
		return nil, err
	}
	return &GeminiImageProvider{
		client: client,
		model:  resolveModel(cfg.Model, geminiModels),
	}, nil
}

func (p *GeminiImageProvider) GenerateImage(ctx context.Context, req ImageRequest) (*ImageResponse, error) {
	config := &genai.GenerateContentConfig{
		ResponseModalities: []string{string(genai.ModalityImage)},
	}

	result, err := p.client.Models.GenerateContent(ctx, p.model, genai.Text(req.Prompt), config)
	if err != nil {
		return nil, mapGeminiError(err)
	}
	return extractGeminiImage(result, p.model)
}

func (p *GeminiImageProvider) ModelID() string {
	return p.model
}

func extractGeminiImage(result *genai.GenerateContentResponse, model string) (*ImageResponse, error) {
	if len(result.Candidates) > 0 && result.Candidates[0].Content != nil {
		for _, part := range result.Candidates[0].Content.Parts {
			if part.InlineData != nil && len(part.InlineData.Data) > 0 {
				mime := part.InlineData.MIMEType
				if mime == "" {
					mime = "image/png"
				}
				return &ImageResponse{Data: part.InlineData.Data, MIMEType: mime, Model: model}, nil
			}
		}
	}
	return nil, &ErrInvalidResponse{Err: fmt.Errorf("no image data in Gemini response")}
}

// OpenAIImageProvider renders images through the OpenAI images API.
type OpenAIImageProvider struct {
	client *openai.Client
	model  string
	size   string
}

// NewOpenAIImageProvider creates an OpenAI image provider. size is passed
// to the API as-is.
func NewOpenAIImageProvider(cfg OpenAIConfig, size string) (*OpenAIImageProvider, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("openai API key is required")
	}
	model := cfg.Model
	if model == "" {
		model = openai.CreateImageModelDallE3
	}
	return &OpenAIImageProvider{
		client: newOpenAIClient(cfg.APIKey, cfg.BaseURL),
		model:  model,
		size:   size,
	}, nil
}

func (p *OpenAIImageProvider) GenerateImage(ctx context.Context, req ImageRequest) (*ImageResponse, error) {
	size := req.Size
	if size == "" {
		size = p.size
	}

	resp, err := p.client.CreateImage(ctx, openai.ImageRequest{
		Prompt:         req.Prompt,
		Model:          p.model,
		N:              1,
		Size:           size,
		ResponseFormat: openai.CreateImageResponseFormatB64JSON,
	})
	if err != nil {
		return nil, mapOpenAIError(err)
	}
	if len(resp.Data) == 0 || resp.Data[0].B64JSON == "" {
		return nil, &ErrInvalidResponse{Err: fmt.Errorf("no image data in OpenAI response")}
	}

	data, err := base64.StdEncoding.DecodeString(resp.Data[0].B64JSON)
	if err != nil {
		return nil, &ErrInvalidResponse{Err: fmt.Errorf("decode image: %w", err)}
	}
	return &ImageResponse{Data: data, MIMEType: "image/png", Model: p.model}, nil
}

func (p *OpenAIImageProvider) ModelID() string {
	return p.model
}
