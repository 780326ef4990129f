package store

import (
	"context"
	"fmt"

	"supplier-core/internal/domain/entity"

	"gorm.io/gorm"
)

// PostgresMessageStore persists the chat message log.
type PostgresMessageStore struct {
	db *gorm.DB
}

func NewPostgresMessageStore(db *gorm.DB) *PostgresMessageStore {
	return &PostgresMessageStore{db: db}
}

// FetchAll returns the full log in insertion order. The analytics scan
// depends on that order for its history tail.
func (s *PostgresMessageStore) FetchAll(ctx context.Context) ([]entity.ChatMessage, error) {
	var messages []entity.ChatMessage
	if err := s.db.WithContext(ctx).Order("created_at ASC").Find(&messages).Error; err != nil {
		return nil, fmt.Errorf("database query failed: %w", err)
	}
	return messages, nil
}

func (s *PostgresMessageStore) Insert(ctx context.Context, msg *entity.ChatMessage) error {
	if err := s.db.WithContext(ctx).Create(msg).Error; err != nil {
		return fmt.Errorf("database insert failed: %w", err)
	}
	return nil
}
