package usecase

import (
	"context"
	"encoding/json"
	"fmt"

	"supplier-core/internal/domain/entity"
	"supplier-core/internal/domain/repository"
)

const queryHistorySize = 10

// AnalyticsAggregator summarizes the chat message log. The whole log is
// loaded and scanned on every call; there is no incremental state.
type AnalyticsAggregator struct {
	messages repository.MessageStore
}

func NewAnalyticsAggregator(messages repository.MessageStore) *AnalyticsAggregator {
	return &AnalyticsAggregator{messages: messages}
}

func (a *AnalyticsAggregator) Snapshot(ctx context.Context) (*entity.AnalyticsSnapshot, error) {
	msgs, err := a.messages.FetchAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("message history lookup failed: %w", err)
	}
	return ComputeAnalytics(msgs), nil
}

// ComputeAnalytics makes a single pass over the given messages. A message
// whose metadata is missing, unparseable, or lacks a given field still counts
// toward the totals but contributes no category or confidence sample.
func ComputeAnalytics(messages []entity.ChatMessage) *entity.AnalyticsSnapshot {
	snapshot := &entity.AnalyticsSnapshot{
		TotalQueries:      len(messages),
		PopularCategories: make(map[string]int),
		QueryHistory:      []entity.QueryHistoryEntry{},
	}

	decoded := make([]entity.MessageMetadata, len(messages))
	for i, msg := range messages {
		if len(msg.Metadata) > 0 {
			// Best effort: bad metadata is treated as absent.
			_ = json.Unmarshal(msg.Metadata, &decoded[i])
		}
	}

	confidenceSum := 0.0
	confidenceCount := 0
	for i := range messages {
		meta := decoded[i]
		if meta.SearchTerms != nil && meta.SearchTerms.Category != "" {
			snapshot.PopularCategories[meta.SearchTerms.Category]++
		}
		if meta.ConfidenceScore != nil && *meta.ConfidenceScore != 0 {
			confidenceSum += *meta.ConfidenceScore
			confidenceCount++
		}
	}
	if confidenceCount > 0 {
		snapshot.AverageConfidence = confidenceSum / float64(confidenceCount)
	}

	// Last entries in the order they appear in the log, not re-sorted.
	start := 0
	if len(messages) > queryHistorySize {
		start = len(messages) - queryHistorySize
	}
	for i := start; i < len(messages); i++ {
		confidence := 0.0
		if decoded[i].ConfidenceScore != nil {
			confidence = *decoded[i].ConfidenceScore
		}
		snapshot.QueryHistory = append(snapshot.QueryHistory, entity.QueryHistoryEntry{
			Query:      messages[i].Content,
			Timestamp:  messages[i].CreatedAt,
			Confidence: confidence,
		})
	}

	return snapshot
}
