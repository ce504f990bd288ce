package recommend

import (
	"context"
	"sort"

	"shoplist-server/core"
	"shoplist-server/state"
)

// Iterator yields candidate products lazily. It is finite and
// non-restartable: once Next returns false it stays exhausted.
type Iterator struct {
	next func() (*core.Product, bool)
}

// Next returns the next candidate, or false when the sequence is exhausted.
func (it *Iterator) Next() (*core.Product, bool) {
	return it.next()
}

// NewIterator builds an Iterator over a fixed candidate slice.
func NewIterator(candidates []*core.Product) *Iterator {
	i := 0
	return &Iterator{next: func() (*core.Product, bool) {
		if i >= len(candidates) {
			return nil, false
		}
		candidate := candidates[i]
		i++
		return candidate, true
	}}
}

// Recommender produces candidate products for a list given its current
// enriched items. Failures surface to the caller as a "no recommendations"
// condition, never as something fatal to list viewing.
type Recommender interface {
	Recommend(ctx context.Context, items []*core.EnrichedItem) (*Iterator, error)
}

// CatalogRecommender ranks in-stock catalog products that are not already
// on the list (nor already suggested on it) by rating.
type CatalogRecommender struct {
	store *state.Store
}

// NewCatalog creates a recommender backed by the snapshot store's catalog.
func NewCatalog(store *state.Store) *CatalogRecommender {
	return &CatalogRecommender{store: store}
}

func (r *CatalogRecommender) Recommend(ctx context.Context, items []*core.EnrichedItem) (*Iterator, error) {
	exclude := make(map[int64]bool, len(items))
	for _, item := range items {
		exclude[item.ProductID] = true
		for _, suggestion := range item.Suggestions {
			exclude[suggestion.ProductID] = true
		}
	}

	var candidates []*core.Product
	r.store.Read(func(snap *core.Snapshot) {
		for _, product := range snap.Products {
			if product.InStock && !exclude[product.ID] {
				p := *product
				candidates = append(candidates, &p)
			}
		}
	})

	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].Rating == candidates[j].Rating {
			return candidates[i].ID < candidates[j].ID
		}
		return candidates[i].Rating > candidates[j].Rating
	})

	return NewIterator(candidates), nil
}
