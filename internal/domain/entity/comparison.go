package entity

// ComparisonRequest is the body of POST /api/compare.
type ComparisonRequest struct {
	ProductIDs []string `json:"product_ids"`
}

// PriceComparison summarizes prices across a compared product set.
type PriceComparison struct {
	Lowest  float64 `json:"lowest"`
	Highest float64 `json:"highest"`
	Average float64 `json:"average"`
}

// ComparisonResult is the comparison matrix for a product set. Every field
// in the fixed comparison set lands in exactly one of Differences or
// Similarities. When no products resolve, only Error is populated; callers
// treat that as a normal outcome, not a failure.
type ComparisonResult struct {
	Products        []Product                 `json:"products,omitempty"`
	Differences     map[string]map[string]any `json:"differences,omitempty"`
	Similarities    map[string]string         `json:"similarities,omitempty"`
	PriceComparison *PriceComparison          `json:"price_comparison,omitempty"`
	Error           string                    `json:"error,omitempty"`
}
