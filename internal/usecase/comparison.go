package usecase

import (
	"context"
	"fmt"

	"supplier-core/internal/domain/entity"
	"supplier-core/internal/domain/repository"
)

// comparisonFields is the fixed, ordered set of fields a comparison covers.
var comparisonFields = []struct {
	name  string
	value func(entity.Product) any
}{
	{"name", func(p entity.Product) any { return p.Name }},
	{"brand", func(p entity.Product) any { return p.Brand }},
	{"price", func(p entity.Product) any { return p.Price }},
	{"category", func(p entity.Product) any { return p.Category }},
	{"description", func(p entity.Product) any { return p.Description }},
}

// ComparisonEngine resolves product IDs against the catalog and builds the
// differences/similarities matrix plus price statistics.
type ComparisonEngine struct {
	products repository.ProductStore
}

func NewComparisonEngine(products repository.ProductStore) *ComparisonEngine {
	return &ComparisonEngine{products: products}
}

func (e *ComparisonEngine) Compare(ctx context.Context, productIDs []string) (*entity.ComparisonResult, error) {
	var products []entity.Product
	if len(productIDs) > 0 {
		var err error
		products, err = e.products.FetchByIDs(ctx, productIDs)
		if err != nil {
			return nil, fmt.Errorf("product lookup failed: %w", err)
		}
	}
	return BuildComparison(products), nil
}

// BuildComparison computes the comparison matrix for an already-resolved
// product set. An empty set yields the "No products found" value; that is a
// normal outcome, not a failure.
func BuildComparison(products []entity.Product) *entity.ComparisonResult {
	if len(products) == 0 {
		return &entity.ComparisonResult{Error: "No products found"}
	}

	result := &entity.ComparisonResult{
		Products:     products,
		Differences:  make(map[string]map[string]any),
		Similarities: make(map[string]string),
	}

	for _, field := range comparisonFields {
		distinct := make(map[string]struct{}, len(products))
		for _, p := range products {
			distinct[fmt.Sprintf("%v", field.value(p))] = struct{}{}
		}
		if len(distinct) > 1 {
			// Record every product's value, not only the outliers.
			byID := make(map[string]any, len(products))
			for _, p := range products {
				byID[p.ID] = field.value(p)
			}
			result.Differences[field.name] = byID
		} else {
			result.Similarities[field.name] = fmt.Sprintf("%v", field.value(products[0]))
		}
	}

	lowest, highest, sum := products[0].Price, products[0].Price, 0.0
	for _, p := range products {
		if p.Price < lowest {
			lowest = p.Price
		}
		if p.Price > highest {
			highest = p.Price
		}
		sum += p.Price
	}
	result.PriceComparison = &entity.PriceComparison{
		Lowest:  lowest,
		Highest: highest,
		Average: sum / float64(len(products)),
	}

	return result
}
