package client

import (
	"context"

	"supplier-core/internal/domain/entity"

	"google.golang.org/genai"
)

// GeminiClient answers prompts with a single Gemini model.
type GeminiClient struct {
	client *genai.Client
	model  string
}

func NewGeminiClient(c *genai.Client, model string) *GeminiClient {
	return &GeminiClient{client: c, model: model}
}

func (g *GeminiClient) Generate(ctx context.Context, prompt string) (*entity.GenerationResult, error) {
	result, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), nil)
	if err != nil {
		return nil, err
	}
	return &entity.GenerationResult{
		Content:    result.Text(),
		Model:      g.model,
		TokenCount: int(result.UsageMetadata.TotalTokenCount),
	}, nil
}
