package services_test

import (
	"testing"
	"time"

	"lumina/internal/models"
	"lumina/internal/repositories"
	"lumina/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockPublisher is a mock implementation of events.Publisher
type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) PublishOrderEvent(routingKey string, payload interface{}) error {
	args := m.Called(routingKey, payload)
	return args.Error(0)
}

var testShipping = models.ShippingDetails{
	Name:    "Nova Reyes",
	Address: "123 Virtual Lane",
	City:    "Cyber City",
	Country: "Netland",
	Phone:   "555-0100",
}

func newCheckoutFixture(t *testing.T, delay time.Duration) (*services.CheckoutService, *services.CartService, *repositories.InMemoryOrderRepository, *MockPublisher) {
	t.Helper()
	carts, _ := newCartFixture(t)
	orders := repositories.NewInMemoryOrderRepository()
	publisher := new(MockPublisher)
	publisher.On("PublishOrderEvent", mock.Anything, mock.Anything).Return(nil)
	return services.NewCheckoutService(carts, orders, publisher, delay), carts, orders, publisher
}

func TestCheckoutService_RejectsEmptyCart(t *testing.T) {
	service, _, _, _ := newCheckoutFixture(t, time.Millisecond)

	_, err := service.Submit("user-1", testShipping, "card")
	assert.ErrorIs(t, err, services.ErrEmptyCart)

	state, _ := service.Status("user-1")
	assert.Equal(t, services.CheckoutIdle, state)
}

func TestCheckoutService_SubmitCompletesAfterDelay(t *testing.T) {
	service, carts, orders, publisher := newCheckoutFixture(t, 10*time.Millisecond)
	_, _, err := carts.Add("user-1", "prod-1")
	require.NoError(t, err)

	orderID, err := service.Submit("user-1", testShipping, "card")
	require.NoError(t, err)
	assert.NotEmpty(t, orderID)

	state, pendingID := service.Status("user-1")
	assert.Equal(t, services.CheckoutSubmitting, state)
	assert.Equal(t, orderID, pendingID)

	assert.Eventually(t, func() bool {
		state, _ := service.Status("user-1")
		return state == services.CheckoutCompleted
	}, time.Second, 2*time.Millisecond)

	// Completion recorded the order, cleared the cart, published the event.
	order, err := orders.GetByID(orderID)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusCompleted, order.Status)
	assert.Equal(t, "user-1", order.UserID)
	assert.InDelta(t, 110.0, order.Total, 1e-9, "100 subtotal plus 10% tax")
	assert.True(t, carts.Get("user-1").IsEmpty())
	publisher.AssertCalled(t, "PublishOrderEvent", "order.completed", mock.Anything)

	// Reading the completed state resets the machine to idle.
	state, _ = service.Status("user-1")
	assert.Equal(t, services.CheckoutIdle, state)
}

func TestCheckoutService_ResubmitCancelsPendingCompletion(t *testing.T) {
	service, carts, orders, _ := newCheckoutFixture(t, 30*time.Millisecond)
	_, _, err := carts.Add("user-1", "prod-1")
	require.NoError(t, err)

	firstID, err := service.Submit("user-1", testShipping, "card")
	require.NoError(t, err)
	secondID, err := service.Submit("user-1", testShipping, "paypal")
	require.NoError(t, err)
	assert.NotEqual(t, firstID, secondID)

	assert.Eventually(t, func() bool {
		state, _ := service.Status("user-1")
		return state == services.CheckoutCompleted
	}, time.Second, 2*time.Millisecond)

	// Exactly one completion: the first submission never finished.
	history, err := orders.GetByUser("user-1")
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, secondID, history[0].ID)
	_, err = orders.GetByID(firstID)
	assert.Error(t, err)
}

func TestCheckoutService_CancelAbortsPendingSubmission(t *testing.T) {
	service, carts, orders, _ := newCheckoutFixture(t, 20*time.Millisecond)
	_, _, err := carts.Add("user-1", "prod-1")
	require.NoError(t, err)

	_, err = service.Submit("user-1", testShipping, "card")
	require.NoError(t, err)

	assert.True(t, service.Cancel("user-1"))
	state, _ := service.Status("user-1")
	assert.Equal(t, services.CheckoutIdle, state)

	// Nothing completes after the delay would have elapsed.
	time.Sleep(40 * time.Millisecond)
	history, err := orders.GetByUser("user-1")
	require.NoError(t, err)
	assert.Empty(t, history)
	assert.False(t, carts.Get("user-1").IsEmpty(), "cart is only cleared on completion")

	assert.False(t, service.Cancel("user-1"), "nothing pending to cancel")
}

func TestCheckoutService_WorksWithoutPublisher(t *testing.T) {
	carts, _ := newCartFixture(t)
	orders := repositories.NewInMemoryOrderRepository()
	service := services.NewCheckoutService(carts, orders, nil, time.Millisecond)

	_, _, err := carts.Add("user-1", "prod-1")
	require.NoError(t, err)

	_, err = service.Submit("user-1", testShipping, "card")
	assert.NoError(t, err)
	assert.Eventually(t, func() bool {
		state, _ := service.Status("user-1")
		return state == services.CheckoutCompleted
	}, time.Second, 2*time.Millisecond)
}
