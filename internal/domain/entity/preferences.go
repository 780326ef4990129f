package entity

// Caps applied to every preference list after an update.
const (
	MaxPreferredBrands     = 5
	MaxPreferredCategories = 5
	MaxLastQueries         = 5
)

// PriceRange is an optional min/max band a user tends to buy in.
type PriceRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// UserPreferences is the per-user search bias record. It lives only in
// process memory and is rebuilt from scratch after a restart.
type UserPreferences struct {
	PreferredBrands     []string    `json:"preferred_brands"`
	PreferredCategories []string    `json:"preferred_categories"`
	PriceRange          *PriceRange `json:"price_range,omitempty"`
	LastQueries         []string    `json:"last_queries"`
}

// NewUserPreferences returns the empty default record handed out on first
// access for an unseen user.
func NewUserPreferences() UserPreferences {
	return UserPreferences{
		PreferredBrands:     []string{},
		PreferredCategories: []string{},
		LastQueries:         []string{},
	}
}

// Clone returns a deep copy safe to hand to callers while the original
// keeps mutating under the store's lock.
func (p UserPreferences) Clone() UserPreferences {
	out := UserPreferences{
		PreferredBrands:     append([]string{}, p.PreferredBrands...),
		PreferredCategories: append([]string{}, p.PreferredCategories...),
		LastQueries:         append([]string{}, p.LastQueries...),
	}
	if p.PriceRange != nil {
		r := *p.PriceRange
		out.PriceRange = &r
	}
	return out
}
