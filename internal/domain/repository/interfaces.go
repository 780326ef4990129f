package repository

import (
	"context"
	"supplier-core/internal/domain/entity"
)

// ProductStore fetches catalog rows. Order of the returned slice is not
// guaranteed to match the requested IDs; unknown IDs are silently skipped.
type ProductStore interface {
	FetchByIDs(ctx context.Context, ids []string) ([]entity.Product, error)
}

// MessageStore persists and replays the chat message log.
type MessageStore interface {
	FetchAll(ctx context.Context) ([]entity.ChatMessage, error)
	Insert(ctx context.Context, msg *entity.ChatMessage) error
}

// ReasoningPipeline turns a query plus metadata into a product-aware answer.
// Treated as opaque by callers: it may be slow and it may fail.
type ReasoningPipeline interface {
	Run(ctx context.Context, query string, meta entity.QueryMetadata) (*entity.QueryResult, error)
}

// AIProvider is one LLM backend capable of answering a prompt.
type AIProvider interface {
	Generate(ctx context.Context, prompt string) (*entity.GenerationResult, error)
}

// Embedder maps text to a dense vector.
type Embedder interface {
	CreateEmbedding(ctx context.Context, text string) ([]float32, error)
}

// ProductIndex is the semantic index over the catalog.
type ProductIndex interface {
	Search(ctx context.Context, vector []float32, limit uint64) ([]string, error)
	Index(ctx context.Context, product entity.Product, vector []float32) error
}

// TermExtractor pulls structured search terms out of a free-text query.
// A nil result means extraction failed; callers proceed without terms.
type TermExtractor interface {
	Extract(ctx context.Context, query string) *entity.SearchTerms
}

// ConfidenceScorer judges how well a set of products answers a query, in [0,1].
type ConfidenceScorer interface {
	Score(ctx context.Context, query string, products []entity.Product) float64
}

// UsageLimiter tracks per-user token spend.
type UsageLimiter interface {
	CheckLimit(ctx context.Context, userID string) (bool, error)
	Increment(ctx context.Context, userID string, tokens int) error
}
