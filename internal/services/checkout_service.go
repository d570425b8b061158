package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"lumina/internal/models"
	"lumina/internal/repositories"
	"lumina/pkg/events"
	"lumina/pkg/simulate"
)

// CheckoutState is the per-user checkout machine state.
type CheckoutState string

const (
	CheckoutIdle       CheckoutState = "idle"
	CheckoutSubmitting CheckoutState = "submitting"
	CheckoutCompleted  CheckoutState = "completed"
)

// ErrEmptyCart rejects a checkout submitted with nothing in the cart.
var ErrEmptyCart = errors.New("cart is empty")

type pendingCheckout struct {
	task  *simulate.Task
	order models.Order
}

// CheckoutService drives the Idle -> Submitting -> Completed machine.
// Payment is simulated: a submission always succeeds once its delay
// elapses. Re-submitting or cancelling aborts the pending completion, so
// at most one completion per user can ever be in flight.
type CheckoutService struct {
	carts     *CartService
	orders    repositories.OrderRepository
	publisher events.Publisher
	delay     time.Duration

	mu        sync.Mutex
	pending   map[string]*pendingCheckout
	completed map[string]string // userID -> order ID, until next status read
	seq       int
}

// NewCheckoutService creates a new CheckoutService. A nil publisher is
// replaced with a no-op so checkout works without a broker.
func NewCheckoutService(carts *CartService, orders repositories.OrderRepository, publisher events.Publisher, delay time.Duration) *CheckoutService {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	return &CheckoutService{
		carts:     carts,
		orders:    orders,
		publisher: publisher,
		delay:     delay,
		pending:   make(map[string]*pendingCheckout),
		completed: make(map[string]string),
	}
}

// Submit starts a checkout for the user's current cart. Any submission
// already pending for the same user is cancelled first. Returns the order
// id the submission will complete under.
func (s *CheckoutService) Submit(userID string, shipping models.ShippingDetails, paymentMethod string) (string, error) {
	cart := s.carts.Get(userID)
	if cart.IsEmpty() {
		return "", ErrEmptyCart
	}

	s.mu.Lock()
	if prior, ok := s.pending[userID]; ok {
		prior.task.Cancel()
		delete(s.pending, userID)
		log.Printf("Cancelled pending checkout %s for user %s", prior.order.ID, userID)
	}
	s.seq++
	order := models.Order{
		ID:            fmt.Sprintf("ORD-%04d", s.seq),
		UserID:        userID,
		Lines:         cart.Lines,
		Subtotal:      cart.Subtotal(),
		Total:         cart.Total(CheckoutTaxRate),
		Status:        models.OrderStatusPending,
		Shipping:      shipping,
		PaymentMethod: paymentMethod,
		CreatedAt:     time.Now(),
	}
	p := &pendingCheckout{order: order}
	p.task = simulate.After(context.Background(), s.delay, func() {
		s.complete(userID, p)
	})
	s.pending[userID] = p
	s.mu.Unlock()

	if err := s.publisher.PublishOrderEvent(events.OrderSubmitted, order); err != nil {
		log.Printf("Warning: failed to publish %s event for order %s: %v", events.OrderSubmitted, order.ID, err)
	}
	return order.ID, nil
}

// complete runs once the simulated payment delay elapses.
func (s *CheckoutService) complete(userID string, p *pendingCheckout) {
	s.mu.Lock()
	if s.pending[userID] != p {
		// A newer submission replaced this one after the timer fired.
		s.mu.Unlock()
		return
	}
	delete(s.pending, userID)
	s.completed[userID] = p.order.ID
	s.mu.Unlock()

	order := p.order
	order.Status = models.OrderStatusCompleted
	order.CompletedAt = time.Now()
	if err := s.orders.Create(&order); err != nil {
		log.Printf("Failed to record order %s: %v", order.ID, err)
	}

	if _, err := s.carts.Clear(userID); err != nil {
		log.Printf("Failed to clear cart after order %s: %v", order.ID, err)
	}

	if err := s.publisher.PublishOrderEvent(events.OrderCompleted, order); err != nil {
		log.Printf("Warning: failed to publish %s event for order %s: %v", events.OrderCompleted, order.ID, err)
	}
}

// Cancel aborts the user's pending submission, if any, and reports whether
// one was cancelled. The machine returns to Idle.
func (s *CheckoutService) Cancel(userID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.pending[userID]
	if !ok {
		return false
	}
	p.task.Cancel()
	delete(s.pending, userID)
	return true
}

// Status reports the user's checkout state and, when completed, the order
// id. Reading a Completed state resets the machine to Idle so the next
// checkout can start.
func (s *CheckoutService) Status(userID string) (CheckoutState, string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if p, ok := s.pending[userID]; ok {
		return CheckoutSubmitting, p.order.ID
	}
	if orderID, ok := s.completed[userID]; ok {
		delete(s.completed, userID)
		return CheckoutCompleted, orderID
	}
	return CheckoutIdle, ""
}

// OrdersForUser returns the user's order history.
func (s *CheckoutService) OrdersForUser(userID string) ([]models.Order, error) {
	return s.orders.GetByUser(userID)
}
