package client

import (
	"context"
	"encoding/json"

	"supplier-core/internal/domain/entity"

	"google.golang.org/genai"
)

// GeminiTermExtractor pulls structured search terms out of a raw query.
// Extraction is best effort: any model or decode failure yields nil and the
// pipeline carries on without terms.
type GeminiTermExtractor struct {
	client *genai.Client
	model  string
}

func NewGeminiTermExtractor(client *genai.Client, model string) *GeminiTermExtractor {
	return &GeminiTermExtractor{client: client, model: model}
}

func (e *GeminiTermExtractor) Extract(ctx context.Context, query string) *entity.SearchTerms {
	// System prompt forces flat JSON output.
	instruction := `Extract product search terms from the user query as a JSON object.
    Keys: "category" (string), "brand" (string), "keywords" (array of strings).
    Omit a key when the query does not mention it. Do not explain.
    Example: "cheap Bosch drills" -> {"category": "drills", "brand": "Bosch", "keywords": ["cheap"]}`

	resp, err := e.client.Models.GenerateContent(ctx, e.model, genai.Text(instruction+"\nQuery: "+query), nil)
	if err != nil {
		return nil
	}

	var terms entity.SearchTerms
	if err := json.Unmarshal([]byte(resp.Text()), &terms); err != nil {
		return nil
	}
	return &terms
}
