package repositories

import (
	"fmt"
	"sync"
	"time"

	"lumina/internal/models"

	"github.com/google/uuid"
)

// InMemoryOrderRepository is an in-memory implementation of OrderRepository.
// Order history lives only for the session, like the rest of the demo data.
type InMemoryOrderRepository struct {
	orders map[string]models.Order
	byUser map[string][]string
	mu     sync.RWMutex
}

// NewInMemoryOrderRepository creates a new instance of InMemoryOrderRepository.
func NewInMemoryOrderRepository() *InMemoryOrderRepository {
	return &InMemoryOrderRepository{
		orders: make(map[string]models.Order),
		byUser: make(map[string][]string),
	}
}

// Create records a new order.
func (r *InMemoryOrderRepository) Create(order *models.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if order.ID == "" {
		order.ID = uuid.New().String()
	}
	if order.CreatedAt.IsZero() {
		order.CreatedAt = time.Now()
	}
	r.orders[order.ID] = *order
	r.byUser[order.UserID] = append(r.byUser[order.UserID], order.ID)
	return nil
}

// GetByID returns an order by its ID.
func (r *InMemoryOrderRepository) GetByID(id string) (*models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	order, ok := r.orders[id]
	if !ok {
		return nil, fmt.Errorf("order with ID %s not found", id)
	}
	return &order, nil
}

// GetByUser returns a user's orders in the order they were placed.
func (r *InMemoryOrderRepository) GetByUser(userID string) ([]models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := r.byUser[userID]
	orders := make([]models.Order, 0, len(ids))
	for _, id := range ids {
		orders = append(orders, r.orders[id])
	}
	return orders, nil
}
