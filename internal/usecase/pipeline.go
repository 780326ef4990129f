package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"supplier-core/internal/domain/entity"
	"supplier-core/internal/domain/repository"
)

// SearchPipeline is the reasoning pipeline behind /api/query: it checks the
// user's token budget, extracts search terms, retrieves candidate products
// through the semantic index, and asks the LLM for an answer grounded in
// those products. Failures are wrapped with a "query processing" prefix; the
// suggestion classifier upstream keys on it.
type SearchPipeline struct {
	limiter    repository.UsageLimiter
	extractor  repository.TermExtractor
	embedder   repository.Embedder
	index      repository.ProductIndex
	products   repository.ProductStore
	provider   repository.AIProvider
	scorer     repository.ConfidenceScorer
	maxResults uint64
}

func NewSearchPipeline(
	limiter repository.UsageLimiter,
	extractor repository.TermExtractor,
	embedder repository.Embedder,
	index repository.ProductIndex,
	products repository.ProductStore,
	provider repository.AIProvider,
	scorer repository.ConfidenceScorer,
) *SearchPipeline {
	return &SearchPipeline{
		limiter:    limiter,
		extractor:  extractor,
		embedder:   embedder,
		index:      index,
		products:   products,
		provider:   provider,
		scorer:     scorer,
		maxResults: 5,
	}
}

func (p *SearchPipeline) Run(ctx context.Context, query string, meta entity.QueryMetadata) (*entity.QueryResult, error) {
	// 1. Token budget
	allowed, err := p.limiter.CheckLimit(ctx, meta.UserID)
	if err != nil {
		return nil, fmt.Errorf("query processing failed: limiter check: %w", err)
	}
	if !allowed {
		return nil, entity.ErrUsageLimitExceeded
	}

	// 2. Structured search terms (best effort; nil is fine)
	terms := p.extractor.Extract(ctx, query)

	// 3. Candidate retrieval via the semantic index
	vector, err := p.embedder.CreateEmbedding(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query processing failed: embedding: %w", err)
	}
	ids, err := p.index.Search(ctx, vector, p.maxResults)
	if err != nil {
		return nil, fmt.Errorf("query processing failed: index search: %w", err)
	}
	var products []entity.Product
	if len(ids) > 0 {
		products, err = p.products.FetchByIDs(ctx, ids)
		if err != nil {
			return nil, fmt.Errorf("query processing failed: %w", err)
		}
	}

	// 4. Grounded generation
	gen, err := p.provider.Generate(ctx, buildAnswerPrompt(query, meta.Filters, products))
	if err != nil {
		return nil, fmt.Errorf("query processing failed: generation: %w", err)
	}

	// 5. Confidence plus background usage accounting
	confidence := p.scorer.Score(ctx, query, products)
	go func() {
		// Request context may already be gone by the time this runs.
		if err := p.limiter.Increment(context.Background(), meta.UserID, gen.TokenCount); err != nil {
			log.Printf("[PIPELINE] usage increment failed for %s: %v", meta.UserID, err)
		}
	}()

	return &entity.QueryResult{
		Content:     gen.Content,
		Products:    products,
		SearchTerms: terms,
		Confidence:  confidence,
	}, nil
}

func buildAnswerPrompt(query string, filters map[string]any, products []entity.Product) string {
	var b strings.Builder
	b.WriteString("You are a product search assistant for a supplier catalog.\n")
	b.WriteString("Answer the customer's question using only the products listed below.\n")
	if len(filters) > 0 {
		if encoded, err := json.Marshal(filters); err == nil {
			b.WriteString("Customer filters and inferred preferences: ")
			b.Write(encoded)
			b.WriteString("\n")
		}
	}
	if len(products) == 0 {
		b.WriteString("No matching products were found; say so and suggest broadening the search.\n")
	} else {
		b.WriteString("Products:\n")
		for _, p := range products {
			fmt.Fprintf(&b, "- [%s] %s by %s, %.2f, category %s: %s\n",
				p.ID, p.Name, p.Brand, p.Price, p.Category, p.Description)
		}
	}
	b.WriteString("Question: ")
	b.WriteString(query)
	return b.String()
}
