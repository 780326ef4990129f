package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// ChatMessage is the persisted record of one processed query. Metadata is
// stored as jsonb so the analytics scan can evolve without migrations.
type ChatMessage struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Role      string         `json:"role"`
	Content   string         `json:"content"`
	UserID    string         `gorm:"index" json:"user_id"`
	Metadata  datatypes.JSON `gorm:"type:jsonb" json:"metadata"`
	CreatedAt time.Time      `json:"created_at"`
}

func (ChatMessage) TableName() string { return "chat_messages" }

// MessageMetadata is the typed shape of ChatMessage.Metadata. Optional
// fields are pointers: a nil field means the writer never recorded it, and
// readers must treat it as absent rather than zero.
type MessageMetadata struct {
	Query           string           `json:"query,omitempty"`
	Filters         map[string]any   `json:"filters,omitempty"`
	Preferences     *UserPreferences `json:"preferences,omitempty"`
	SearchTerms     *SearchTerms     `json:"search_terms,omitempty"`
	ConfidenceScore *float64         `json:"confidence_score,omitempty"`
	Timestamp       time.Time        `json:"timestamp"`
}

// SearchTerms are the entities the pipeline extracted from the raw query.
type SearchTerms struct {
	Category string   `json:"category,omitempty"`
	Brand    string   `json:"brand,omitempty"`
	Keywords []string `json:"keywords,omitempty"`
}
