package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"supplier-core/internal/domain/entity"
	"supplier-core/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// QueryEnhancer biases queries with cached user preferences before handing
// them to the reasoning pipeline, then records the outcome: preferences are
// updated and one chat message is persisted per successful call. The two
// effects are not atomic; a failed insert leaves preferences already updated.
type QueryEnhancer struct {
	prefs    *PreferenceStore
	pipeline repository.ReasoningPipeline
	messages repository.MessageStore
}

func NewQueryEnhancer(prefs *PreferenceStore, pipeline repository.ReasoningPipeline, messages repository.MessageStore) *QueryEnhancer {
	return &QueryEnhancer{prefs: prefs, pipeline: pipeline, messages: messages}
}

// BuildFilters copies the explicit filters and overlays the user's preferred
// categories and brands. Preference-derived keys are applied last and
// unconditionally, so they win any collision with explicit keys.
func (q *QueryEnhancer) BuildFilters(userID string, explicit map[string]any) map[string]any {
	filters := make(map[string]any, len(explicit)+2)
	for k, v := range explicit {
		filters[k] = v
	}
	prefs := q.prefs.Get(userID)
	if len(prefs.PreferredCategories) > 0 {
		filters["preferred_categories"] = prefs.PreferredCategories
	}
	if len(prefs.PreferredBrands) > 0 {
		filters["preferred_brands"] = prefs.PreferredBrands
	}
	return filters
}

func (q *QueryEnhancer) Process(ctx context.Context, userID, query string, explicit map[string]any) (*entity.QueryResponse, error) {
	filters := q.BuildFilters(userID, explicit)

	result, err := q.pipeline.Run(ctx, query, entity.QueryMetadata{UserID: userID, Filters: filters})
	if err != nil {
		// Usage-limit refusals keep their identity so the transport can
		// answer 429 instead of a generic processing failure.
		if errors.Is(err, entity.ErrUsageLimitExceeded) {
			return nil, err
		}
		return nil, classifyProcessingError(err)
	}

	q.prefs.RecordQueryOutcome(userID, query, result)

	now := time.Now()
	snapshot := q.prefs.Get(userID)
	meta := &entity.MessageMetadata{
		Query:       query,
		Filters:     filters,
		Preferences: &snapshot,
		SearchTerms: result.SearchTerms,
		Timestamp:   now,
	}
	if result.Confidence > 0 {
		confidence := result.Confidence
		meta.ConfidenceScore = &confidence
	}

	payload, err := json.Marshal(meta)
	if err != nil {
		return nil, classifyProcessingError(fmt.Errorf("metadata encoding failed: %w", err))
	}
	msg := &entity.ChatMessage{
		ID:        uuid.New(),
		Role:      "assistant",
		Content:   result.Content,
		UserID:    userID,
		Metadata:  datatypes.JSON(payload),
		CreatedAt: now,
	}
	if err := q.messages.Insert(ctx, msg); err != nil {
		return nil, classifyProcessingError(err)
	}

	return &entity.QueryResponse{Content: result, CreatedAt: now, Metadata: meta}, nil
}

// classifyProcessingError picks a recovery suggestion by matching substrings
// of the failure message. The collaborators cooperate by prefixing their
// errors ("database …", "query processing …"), which keeps this routing
// deterministic even though it reads like a heuristic.
func classifyProcessingError(err error) *entity.ProcessingError {
	msg := strings.ToLower(err.Error())
	suggestion := "Please try rephrasing your query or providing more specific details."
	if strings.Contains(msg, "database") {
		suggestion = "There seems to be an issue with the database. Please try again in a moment."
	} else if strings.Contains(msg, "processing") {
		suggestion = "The query could not be processed. Please try simplifying your request."
	}
	return &entity.ProcessingError{Err: err, Suggestion: suggestion}
}
