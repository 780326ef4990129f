package usecase

import (
	"sync"

	"supplier-core/internal/domain/entity"
)

// PreferenceStore is the process-lifetime cache of per-user search biases.
// It is shared across request goroutines, so individual calls take the lock,
// but a Get followed by a RecordQueryOutcome is still two separate critical
// sections: concurrent requests for one user can interleave and the later
// write wins.
type PreferenceStore struct {
	mu    sync.Mutex
	users map[string]entity.UserPreferences
}

func NewPreferenceStore() *PreferenceStore {
	return &PreferenceStore{users: make(map[string]entity.UserPreferences)}
}

// Get returns a copy of the user's preferences, creating the empty default
// record on first access. It never fails.
func (s *PreferenceStore) Get(userID string) entity.UserPreferences {
	s.mu.Lock()
	defer s.mu.Unlock()
	prefs, ok := s.users[userID]
	if !ok {
		prefs = entity.NewUserPreferences()
		s.users[userID] = prefs
	}
	return prefs.Clone()
}

// RecordQueryOutcome prepends the query to the user's recent-query list and,
// when the result carried products, folds their categories and brands into
// the preferred sets. Every list is truncated to its cap afterwards; when a
// union exceeds the cap, values observed earlier survive.
func (s *PreferenceStore) RecordQueryOutcome(userID, query string, result *entity.QueryResult) {
	s.mu.Lock()
	defer s.mu.Unlock()

	prefs, ok := s.users[userID]
	if !ok {
		prefs = entity.NewUserPreferences()
	}

	prefs.LastQueries = append([]string{query}, prefs.LastQueries...)
	if len(prefs.LastQueries) > entity.MaxLastQueries {
		prefs.LastQueries = prefs.LastQueries[:entity.MaxLastQueries]
	}

	if result != nil && len(result.Products) > 0 {
		categories := make([]string, 0, len(result.Products))
		brands := make([]string, 0, len(result.Products))
		for _, p := range result.Products {
			categories = append(categories, p.Category)
			brands = append(brands, p.Brand)
		}
		prefs.PreferredCategories = unionCapped(prefs.PreferredCategories, categories, entity.MaxPreferredCategories)
		prefs.PreferredBrands = unionCapped(prefs.PreferredBrands, brands, entity.MaxPreferredBrands)
	}

	s.users[userID] = prefs
}

func unionCapped(existing, observed []string, limit int) []string {
	seen := make(map[string]struct{}, len(existing))
	out := append([]string{}, existing...)
	for _, v := range existing {
		seen[v] = struct{}{}
	}
	for _, v := range observed {
		if v == "" {
			continue
		}
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}
