package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"supplier-core/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

type stubMessageStore struct {
	messages  []entity.ChatMessage
	inserted  []*entity.ChatMessage
	fetchErr  error
	insertErr error
}

func (s *stubMessageStore) FetchAll(context.Context) ([]entity.ChatMessage, error) {
	if s.fetchErr != nil {
		return nil, s.fetchErr
	}
	return s.messages, nil
}

func (s *stubMessageStore) Insert(_ context.Context, msg *entity.ChatMessage) error {
	if s.insertErr != nil {
		return s.insertErr
	}
	s.inserted = append(s.inserted, msg)
	return nil
}

func messageWithMeta(t *testing.T, content string, createdAt time.Time, meta *entity.MessageMetadata) entity.ChatMessage {
	t.Helper()
	msg := entity.ChatMessage{Role: "assistant", Content: content, UserID: "u1", CreatedAt: createdAt}
	if meta != nil {
		payload, err := json.Marshal(meta)
		require.NoError(t, err)
		msg.Metadata = datatypes.JSON(payload)
	}
	return msg
}

func TestComputeAnalyticsEmpty(t *testing.T) {
	snapshot := ComputeAnalytics(nil)

	assert.Equal(t, 0, snapshot.TotalQueries)
	assert.Equal(t, 0.0, snapshot.AverageConfidence)
	assert.Empty(t, snapshot.PopularCategories)
	assert.Empty(t, snapshot.QueryHistory)
}

func TestComputeAnalyticsConfidenceAndHistory(t *testing.T) {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	scores := map[int]float64{2: 0.2, 5: 0.4, 9: 0.6}

	var messages []entity.ChatMessage
	for i := 0; i < 12; i++ {
		var meta *entity.MessageMetadata
		if score, ok := scores[i]; ok {
			s := score
			meta = &entity.MessageMetadata{ConfidenceScore: &s}
		}
		messages = append(messages, messageWithMeta(t, fmt.Sprintf("msg-%d", i), base.Add(time.Duration(i)*time.Minute), meta))
	}

	snapshot := ComputeAnalytics(messages)

	assert.Equal(t, 12, snapshot.TotalQueries)
	assert.InDelta(t, 0.4, snapshot.AverageConfidence, 1e-9)

	require.Len(t, snapshot.QueryHistory, 10)
	// The tail keeps the input order, not a re-sort.
	assert.Equal(t, "msg-2", snapshot.QueryHistory[0].Query)
	assert.Equal(t, "msg-11", snapshot.QueryHistory[9].Query)
	assert.InDelta(t, 0.2, snapshot.QueryHistory[0].Confidence, 1e-9)
	assert.Equal(t, 0.0, snapshot.QueryHistory[1].Confidence)
}

func TestComputeAnalyticsCategories(t *testing.T) {
	now := time.Now()
	mk := func(category string) entity.ChatMessage {
		return messageWithMeta(t, "q", now, &entity.MessageMetadata{
			SearchTerms: &entity.SearchTerms{Category: category},
		})
	}

	snapshot := ComputeAnalytics([]entity.ChatMessage{
		mk("tools"), mk("tools"), mk("fasteners"),
		messageWithMeta(t, "no-meta", now, nil),
		mk(""), // category absent
	})

	assert.Equal(t, 5, snapshot.TotalQueries)
	assert.Equal(t, map[string]int{"tools": 2, "fasteners": 1}, snapshot.PopularCategories)
}

func TestComputeAnalyticsBadMetadata(t *testing.T) {
	msg := entity.ChatMessage{Content: "q", Metadata: datatypes.JSON(`{not json`)}

	snapshot := ComputeAnalytics([]entity.ChatMessage{msg})

	assert.Equal(t, 1, snapshot.TotalQueries)
	assert.Equal(t, 0.0, snapshot.AverageConfidence)
	require.Len(t, snapshot.QueryHistory, 1)
	assert.Equal(t, "q", snapshot.QueryHistory[0].Query)
}

func TestSnapshotFetchFailure(t *testing.T) {
	aggregator := NewAnalyticsAggregator(&stubMessageStore{fetchErr: errors.New("connection reset")})

	_, err := aggregator.Snapshot(context.Background())
	assert.ErrorContains(t, err, "message history lookup failed")
}

func TestSnapshotDelegatesToCompute(t *testing.T) {
	store := &stubMessageStore{messages: []entity.ChatMessage{
		messageWithMeta(t, "only", time.Now(), nil),
	}}
	aggregator := NewAnalyticsAggregator(store)

	snapshot, err := aggregator.Snapshot(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, snapshot.TotalQueries)
}
