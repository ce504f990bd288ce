package service

import (
	"sort"

	"shoplist-server/core"
)

// Products returns the full read-only catalog, ordered by id.
func (s *Service) Products() []*core.Product {
	var out []*core.Product
	s.store.Read(func(snap *core.Snapshot) {
		out = make([]*core.Product, 0, len(snap.Products))
		for _, product := range snap.Products {
			out = append(out, cloneProduct(product))
		}
	})
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Product returns a single catalog entry by its numeric id.
func (s *Service) Product(productID int64) (*core.Product, error) {
	var out *core.Product
	s.store.Read(func(snap *core.Snapshot) {
		out = cloneProduct(snap.Products[productID])
	})
	if out == nil {
		return nil, core.NotFoundf("product %d", productID)
	}
	return out, nil
}
