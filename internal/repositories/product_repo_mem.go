package repositories

import (
	"fmt"
	"sync"

	"lumina/internal/models"
)

// InMemoryProductRepository holds the generated catalog. Products keep
// their insertion order: the query pipeline's stable sort depends on it.
type InMemoryProductRepository struct {
	products []models.Product
	index    map[string]int
	mu       sync.RWMutex
}

// NewInMemoryProductRepository creates an empty in-memory catalog.
func NewInMemoryProductRepository() *InMemoryProductRepository {
	return &InMemoryProductRepository{
		index: make(map[string]int),
	}
}

// GetAll returns all products in insertion order.
func (r *InMemoryProductRepository) GetAll() ([]models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.Product, len(r.products))
	copy(out, r.products)
	return out, nil
}

// GetByID returns a product by its ID.
func (r *InMemoryProductRepository) GetByID(id string) (*models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	i, ok := r.index[id]
	if !ok {
		return nil, fmt.Errorf("product with ID %s not found", id)
	}
	product := r.products[i]
	return &product, nil
}

// Create appends a new product. IDs are assigned by the generator, so an
// existing ID is replaced in place rather than duplicated.
func (r *InMemoryProductRepository) Create(product *models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if i, ok := r.index[product.ID]; ok {
		r.products[i] = *product
		return nil
	}
	r.index[product.ID] = len(r.products)
	r.products = append(r.products, *product)
	return nil
}
