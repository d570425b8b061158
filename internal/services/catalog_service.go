package services

import (
	"sort"
	"strings"

	"lumina/internal/models"
	"lumina/internal/repositories"
)

// CatalogService answers storefront catalog queries: which products are
// visible for a filter, and in what order.
type CatalogService struct {
	repo repositories.ProductRepository
}

// NewCatalogService creates a new CatalogService.
func NewCatalogService(repo repositories.ProductRepository) *CatalogService {
	return &CatalogService{
		repo: repo,
	}
}

// Query loads the catalog and evaluates the filter and sort against it.
func (s *CatalogService) Query(filter models.FilterSpec, sortBy models.SortOption) ([]models.Product, error) {
	products, err := s.repo.GetAll()
	if err != nil {
		return nil, err
	}
	return Evaluate(products, filter, sortBy), nil
}

// GetProductByID retrieves a single product by its ID.
func (s *CatalogService) GetProductByID(id string) (*models.Product, error) {
	return s.repo.GetByID(id)
}

// Evaluate produces the visible, ordered product list for a filter and sort.
// Pure function of its inputs: the input slice is never mutated, and there
// is no failure path. A filter nothing matches yields an empty list.
func Evaluate(products []models.Product, filter models.FilterSpec, sortBy models.SortOption) []models.Product {
	matched := make([]models.Product, 0, len(products))
	for _, p := range products {
		if matchesFilter(p, filter) {
			matched = append(matched, p)
		}
	}

	// The sort must be stable: ties keep their catalog order.
	switch sortBy {
	case models.SortPriceAsc:
		sort.SliceStable(matched, func(i, j int) bool {
			return matched[i].EffectivePrice() < matched[j].EffectivePrice()
		})
	case models.SortPriceDesc:
		sort.SliceStable(matched, func(i, j int) bool {
			return matched[i].EffectivePrice() > matched[j].EffectivePrice()
		})
	case models.SortNewest:
		sort.SliceStable(matched, func(i, j int) bool {
			return matched[i].IsNew && !matched[j].IsNew
		})
	default:
		// Popularity is the default and the fallback for unknown options.
		sort.SliceStable(matched, func(i, j int) bool {
			return matched[i].Rating > matched[j].Rating
		})
	}

	return matched
}

func matchesFilter(p models.Product, f models.FilterSpec) bool {
	if f.Category != "" && !strings.EqualFold(f.Category, models.CategoryAll) && p.Category != f.Category {
		return false
	}
	if f.Search != "" && !strings.Contains(strings.ToLower(p.Name), strings.ToLower(f.Search)) {
		return false
	}
	// Price bounds apply to the base price, not the discounted price.
	if p.Price < f.MinPrice || p.Price > f.MaxPrice {
		return false
	}
	return p.Rating >= f.MinRating
}
