package core

type (
	// Product is a catalog entry. The catalog is read-only from this
	// server's perspective: products are seeded at first start and only
	// ever looked up afterwards.
	Product struct {
		ID             int64   `json:"id"`
		Name           string  `json:"name"`
		Price          float64 `json:"price"`
		ReferencePrice float64 `json:"referencePrice,omitempty"`
		Rating         float64 `json:"rating"`
		InStock        bool    `json:"inStock"`
		Image          string  `json:"image,omitempty"`
	}
)
