package repositories

import (
	"lumina/internal/models"
)

// OrderRepository defines the interface for order history access.
type OrderRepository interface {
	Create(order *models.Order) error
	GetByID(id string) (*models.Order, error)
	GetByUser(userID string) ([]models.Order, error)
}
