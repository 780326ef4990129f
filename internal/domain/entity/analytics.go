package entity

import "time"

// QueryHistoryEntry is one row of the analytics history tail.
type QueryHistoryEntry struct {
	Query      string    `json:"query"`
	Timestamp  time.Time `json:"timestamp"`
	Confidence float64   `json:"confidence"`
}

// AnalyticsSnapshot is the aggregate view over the whole chat message log.
// AverageConfidence is 0 when no message carried a confidence sample.
type AnalyticsSnapshot struct {
	TotalQueries      int                 `json:"total_queries"`
	PopularCategories map[string]int      `json:"popular_categories"`
	AverageConfidence float64             `json:"average_confidence"`
	QueryHistory      []QueryHistoryEntry `json:"query_history"`
}
