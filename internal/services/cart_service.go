package services

import (
	"encoding/json"
	"fmt"
	"log"

	"lumina/internal/models"
	"lumina/internal/repositories"
)

// CheckoutTaxRate is the flat tax rate applied on top of the cart subtotal.
const CheckoutTaxRate = 0.10

const cartKeyPrefix = "cart:"

// CartView is the cart plus its derived totals, recomputed on every read.
type CartView struct {
	Lines     []models.CartLine `json:"lines"`
	ItemCount int               `json:"item_count"`
	Subtotal  float64           `json:"subtotal"`
	Tax       float64           `json:"tax"`
	Total     float64           `json:"total"`
}

// CartService applies cart commands for a session and persists the result
// as a JSON snapshot. Every command is total: the returned cart is always
// usable, and stock conflicts surface as outcomes, not errors.
type CartService struct {
	snapshots repositories.SnapshotRepository
	products  repositories.ProductRepository
}

// NewCartService creates a new CartService.
func NewCartService(snapshots repositories.SnapshotRepository, products repositories.ProductRepository) *CartService {
	return &CartService{
		snapshots: snapshots,
		products:  products,
	}
}

// Get returns the session's current cart. A missing or unparseable snapshot
// loads as an empty cart; bad persisted data never blocks the session.
func (s *CartService) Get(userID string) *models.Cart {
	data, err := s.snapshots.Load(cartKeyPrefix + userID)
	if err != nil {
		log.Printf("Failed to load cart snapshot for user %s: %v", userID, err)
		return &models.Cart{}
	}
	if len(data) == 0 {
		return &models.Cart{}
	}

	var cart models.Cart
	if err := json.Unmarshal(data, &cart); err != nil {
		log.Printf("Discarding malformed cart snapshot for user %s: %v", userID, err)
		return &models.Cart{}
	}
	return &cart
}

func (s *CartService) save(userID string, cart *models.Cart) error {
	data, err := json.Marshal(cart)
	if err != nil {
		return fmt.Errorf("failed to marshal cart for user %s: %w", userID, err)
	}
	if err := s.snapshots.Save(cartKeyPrefix+userID, data); err != nil {
		return fmt.Errorf("failed to persist cart for user %s: %w", userID, err)
	}
	return nil
}

// Add puts one unit of the product into the cart, merging onto an existing
// line. The product's stock is captured on the line at first add.
func (s *CartService) Add(userID, productID string) (*models.Cart, models.Outcome, error) {
	product, err := s.products.GetByID(productID)
	if err != nil {
		return nil, "", err
	}

	cart := s.Get(userID)
	outcome := cart.Add(*product)
	if outcome != models.OutcomeStockExceeded {
		if err := s.save(userID, cart); err != nil {
			return nil, "", err
		}
	}
	return cart, outcome, nil
}

// UpdateQuantity adjusts a line's quantity by delta.
func (s *CartService) UpdateQuantity(userID, productID string, delta int) (*models.Cart, models.Outcome, error) {
	cart := s.Get(userID)
	outcome := cart.UpdateQuantity(productID, delta)
	if outcome == models.OutcomeQuantityChanged {
		if err := s.save(userID, cart); err != nil {
			return nil, "", err
		}
	}
	return cart, outcome, nil
}

// Remove deletes a line from the cart. Idempotent.
func (s *CartService) Remove(userID, productID string) (*models.Cart, models.Outcome, error) {
	cart := s.Get(userID)
	outcome := cart.Remove(productID)
	if outcome == models.OutcomeRemoved {
		if err := s.save(userID, cart); err != nil {
			return nil, "", err
		}
	}
	return cart, outcome, nil
}

// Clear empties the cart unconditionally.
func (s *CartService) Clear(userID string) (*models.Cart, error) {
	cart := &models.Cart{}
	cart.Clear()
	if err := s.save(userID, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// View derives the totals for a cart.
func (s *CartService) View(cart *models.Cart) CartView {
	lines := cart.Lines
	if lines == nil {
		lines = []models.CartLine{}
	}
	return CartView{
		Lines:     lines,
		ItemCount: cart.ItemCount(),
		Subtotal:  cart.Subtotal(),
		Tax:       cart.Subtotal() * CheckoutTaxRate,
		Total:     cart.Total(CheckoutTaxRate),
	}
}
