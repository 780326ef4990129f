package usecase

import (
	"fmt"
	"testing"

	"supplier-core/internal/domain/entity"

	"github.com/stretchr/testify/assert"
)

func TestPreferenceStoreGetDefaults(t *testing.T) {
	store := NewPreferenceStore()

	prefs := store.Get("never-seen")
	assert.Empty(t, prefs.PreferredBrands)
	assert.Empty(t, prefs.PreferredCategories)
	assert.Nil(t, prefs.PriceRange)
	assert.Empty(t, prefs.LastQueries)

	// Idempotent: the second read sees the same record.
	assert.Equal(t, prefs, store.Get("never-seen"))
}

func TestPreferenceStoreLastQueriesNewestFirst(t *testing.T) {
	store := NewPreferenceStore()

	for n := 1; n <= 8; n++ {
		store.RecordQueryOutcome("u1", fmt.Sprintf("query-%d", n), &entity.QueryResult{})

		prefs := store.Get("u1")
		want := n
		if want > entity.MaxLastQueries {
			want = entity.MaxLastQueries
		}
		assert.Len(t, prefs.LastQueries, want)
		assert.Equal(t, fmt.Sprintf("query-%d", n), prefs.LastQueries[0])
	}

	prefs := store.Get("u1")
	assert.Equal(t, []string{"query-8", "query-7", "query-6", "query-5", "query-4"}, prefs.LastQueries)
}

func TestPreferenceStoreUnionCaps(t *testing.T) {
	store := NewPreferenceStore()

	for n := 0; n < 4; n++ {
		result := &entity.QueryResult{
			Products: []entity.Product{
				{ID: "p1", Category: fmt.Sprintf("cat-%d-a", n), Brand: fmt.Sprintf("brand-%d-a", n)},
				{ID: "p2", Category: fmt.Sprintf("cat-%d-b", n), Brand: fmt.Sprintf("brand-%d-b", n)},
			},
		}
		store.RecordQueryOutcome("u1", "q", result)

		prefs := store.Get("u1")
		assert.LessOrEqual(t, len(prefs.PreferredCategories), entity.MaxPreferredCategories)
		assert.LessOrEqual(t, len(prefs.PreferredBrands), entity.MaxPreferredBrands)
	}
}

func TestPreferenceStoreEmptyResultKeepsSets(t *testing.T) {
	store := NewPreferenceStore()

	store.RecordQueryOutcome("u1", "first", &entity.QueryResult{
		Products: []entity.Product{{ID: "p1", Category: "tools", Brand: "Bosch"}},
	})
	store.RecordQueryOutcome("u1", "second", &entity.QueryResult{})

	prefs := store.Get("u1")
	assert.Equal(t, []string{"tools"}, prefs.PreferredCategories)
	assert.Equal(t, []string{"Bosch"}, prefs.PreferredBrands)
	assert.Equal(t, []string{"second", "first"}, prefs.LastQueries)
}

func TestPreferenceStoreDeduplicates(t *testing.T) {
	store := NewPreferenceStore()

	result := &entity.QueryResult{
		Products: []entity.Product{
			{ID: "p1", Category: "tools", Brand: "Bosch"},
			{ID: "p2", Category: "tools", Brand: "Bosch"},
		},
	}
	store.RecordQueryOutcome("u1", "q1", result)
	store.RecordQueryOutcome("u1", "q2", result)

	prefs := store.Get("u1")
	assert.Equal(t, []string{"tools"}, prefs.PreferredCategories)
	assert.Equal(t, []string{"Bosch"}, prefs.PreferredBrands)
}

func TestPreferenceStoreCloneIsolation(t *testing.T) {
	store := NewPreferenceStore()
	store.RecordQueryOutcome("u1", "q", &entity.QueryResult{
		Products: []entity.Product{{ID: "p1", Category: "tools", Brand: "Bosch"}},
	})

	prefs := store.Get("u1")
	prefs.PreferredCategories[0] = "mutated"
	prefs.LastQueries[0] = "mutated"

	fresh := store.Get("u1")
	assert.Equal(t, []string{"tools"}, fresh.PreferredCategories)
	assert.Equal(t, []string{"q"}, fresh.LastQueries)
}
