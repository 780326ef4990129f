package client

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"supplier-core/internal/domain/entity"

	"google.golang.org/genai"
)

// GeminiConfidenceScorer asks the model to judge how well a product set
// answers a query. The score lands in [0,1]; any failure scores 0.
type GeminiConfidenceScorer struct {
	client *genai.Client
	model  string
}

func NewGeminiConfidenceScorer(client *genai.Client, model string) *GeminiConfidenceScorer {
	return &GeminiConfidenceScorer{client: client, model: model}
}

func (s *GeminiConfidenceScorer) Score(ctx context.Context, query string, products []entity.Product) float64 {
	instruction := `You are a retrieval quality judge.
    Given a customer query and the products retrieved for it, rate how well
    the products answer the query as a single number between 0.0 and 1.0.
    Respond ONLY with the number.`

	var b strings.Builder
	b.WriteString(instruction)
	fmt.Fprintf(&b, "\n\nQuery: %s\nProducts:\n", query)
	if len(products) == 0 {
		b.WriteString("(none)\n")
	}
	for _, p := range products {
		fmt.Fprintf(&b, "- %s by %s (%s)\n", p.Name, p.Brand, p.Category)
	}

	resp, err := s.client.Models.GenerateContent(ctx, s.model, genai.Text(b.String()), nil)
	if err != nil {
		return 0
	}

	score, err := strconv.ParseFloat(strings.TrimSpace(resp.Text()), 64)
	if err != nil {
		return 0
	}
	if score < 0 {
		return 0
	}
	if score > 1 {
		return 1
	}
	return score
}
