package store

import (
	"context"
	"fmt"

	"supplier-core/internal/domain/entity"

	"gorm.io/gorm"
)

// PostgresProductStore reads the product catalog. Error messages carry a
// "database" prefix; the query-processing suggestion classifier keys on it.
type PostgresProductStore struct {
	db *gorm.DB
}

func NewPostgresProductStore(db *gorm.DB) *PostgresProductStore {
	return &PostgresProductStore{db: db}
}

func (s *PostgresProductStore) FetchByIDs(ctx context.Context, ids []string) ([]entity.Product, error) {
	var products []entity.Product
	if err := s.db.WithContext(ctx).Where("id IN ?", ids).Find(&products).Error; err != nil {
		return nil, fmt.Errorf("database query failed: %w", err)
	}
	return products, nil
}

// FetchAll streams the whole catalog, used by the boot-time re-index.
func (s *PostgresProductStore) FetchAll(ctx context.Context) ([]entity.Product, error) {
	var products []entity.Product
	if err := s.db.WithContext(ctx).Find(&products).Error; err != nil {
		return nil, fmt.Errorf("database query failed: %w", err)
	}
	return products, nil
}
