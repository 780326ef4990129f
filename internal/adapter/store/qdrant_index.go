package store

import (
	"context"
	"fmt"
	"log"

	"supplier-core/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/qdrant/go-client/qdrant"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// QdrantProductIndex is the semantic index over the catalog: one point per
// product, embedding of its searchable text, product ID in the payload.
type QdrantProductIndex struct {
	client         *qdrant.Client
	collectionName string
}

func NewQdrantProductIndex(client *qdrant.Client, collectionName string) *QdrantProductIndex {
	return &QdrantProductIndex{
		client:         client,
		collectionName: collectionName,
	}
}

func (s *QdrantProductIndex) InitCollection(ctx context.Context, dim uint64) error {
	_, err := s.client.GetCollectionInfo(ctx, s.collectionName)
	if err != nil {
		st, ok := status.FromError(err)
		if !ok || st.Code() != codes.NotFound {
			return err
		}
		if err := s.client.CreateCollection(ctx, &qdrant.CreateCollection{
			CollectionName: s.collectionName,
			VectorsConfig: qdrant.NewVectorsConfig(&qdrant.VectorParams{
				Size:     dim,
				Distance: qdrant.Distance_Cosine,
			}),
		}); err != nil {
			return fmt.Errorf("failed to create collection: %w", err)
		}
	}

	// Keyword index on category so filtered lookups stay fast as the
	// catalog grows.
	_, err = s.client.CreateFieldIndex(ctx, &qdrant.CreateFieldIndexCollection{
		CollectionName: s.collectionName,
		FieldName:      "category",
		FieldType:      qdrant.FieldType_FieldTypeKeyword.Enum(),
		Wait:           qdrant.PtrOf(true),
	})
	if err != nil {
		// Index may already exist; not fatal.
		log.Printf("[QDRANT] could not create category index: %v", err)
	}

	return nil
}

// Search returns the IDs of the closest products, best match first.
func (s *QdrantProductIndex) Search(ctx context.Context, vector []float32, limit uint64) ([]string, error) {
	res, err := s.client.Query(ctx, &qdrant.QueryPoints{
		CollectionName: s.collectionName,
		Query:          qdrant.NewQuery(vector...),
		Limit:          qdrant.PtrOf(limit),
		WithPayload:    qdrant.NewWithPayload(true),
	})
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(res))
	for _, hit := range res {
		if id := hit.Payload["product_id"].GetStringValue(); id != "" {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

// Index upserts one product. The point ID is derived from the product ID so
// re-indexing the same product overwrites its previous point.
func (s *QdrantProductIndex) Index(ctx context.Context, product entity.Product, vector []float32) error {
	pointID := uuid.NewSHA1(uuid.NameSpaceOID, []byte(product.ID)).String()
	_, err := s.client.Upsert(ctx, &qdrant.UpsertPoints{
		CollectionName: s.collectionName,
		Points: []*qdrant.PointStruct{
			{
				Id:      qdrant.NewIDUUID(pointID),
				Vectors: qdrant.NewVectors(vector...),
				Payload: qdrant.NewValueMap(map[string]any{
					"product_id": product.ID,
					"name":       product.Name,
					"brand":      product.Brand,
					"category":   product.Category,
				}),
			},
		},
	})
	return err
}
