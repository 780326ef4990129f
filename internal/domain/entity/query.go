package entity

import "time"

// QueryRequest is the body of POST /api/query.
type QueryRequest struct {
	UserID  string         `json:"user_id"`
	Query   string         `json:"query"`
	Filters map[string]any `json:"filters"`
}

// QueryMetadata travels with a query into the reasoning pipeline.
type QueryMetadata struct {
	UserID  string         `json:"user_id"`
	Filters map[string]any `json:"filters"`
}

// QueryResult is what the reasoning pipeline hands back: an answer grounded
// in the products it retrieved, plus the signals the analytics layer feeds on.
type QueryResult struct {
	Content     string       `json:"content"`
	Products    []Product    `json:"products"`
	SearchTerms *SearchTerms `json:"search_terms,omitempty"`
	Confidence  float64      `json:"confidence"`
}

// QueryResponse is the body returned by POST /api/query on success.
type QueryResponse struct {
	Content   *QueryResult     `json:"content"`
	CreatedAt time.Time        `json:"created_at"`
	Metadata  *MessageMetadata `json:"metadata"`
}

// GenerationResult is one raw completion from an AI provider.
type GenerationResult struct {
	Content    string `json:"content"`
	Model      string `json:"model"`
	TokenCount int    `json:"token_count"`
}
