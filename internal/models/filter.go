package models

import "math"

// CategoryAll selects every category in a FilterSpec.
const CategoryAll = "all"

// FilterSpec describes which products are visible. Min/max price are
// inclusive; an inverted range is not an error, it just matches nothing.
type FilterSpec struct {
	Category  string  `json:"category"`
	Search    string  `json:"search"`
	MinPrice  float64 `json:"min_price"`
	MaxPrice  float64 `json:"max_price"`
	MinRating float64 `json:"min_rating"`
}

// DefaultFilter matches every product.
func DefaultFilter() FilterSpec {
	return FilterSpec{
		Category: CategoryAll,
		MaxPrice: math.Inf(1),
	}
}

// SortOption selects the comparator applied to a filtered product list.
type SortOption string

const (
	SortPriceAsc   SortOption = "price-asc"
	SortPriceDesc  SortOption = "price-desc"
	SortPopularity SortOption = "popularity"
	SortNewest     SortOption = "newest"
)
