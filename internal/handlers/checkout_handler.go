package handlers

import (
	"errors"
	"log"

	"lumina/internal/models"
	"lumina/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// CheckoutHandler handles HTTP requests for checkout and order history.
type CheckoutHandler struct {
	service  *services.CheckoutService
	validate *validator.Validate
}

// NewCheckoutHandler creates a new CheckoutHandler.
func NewCheckoutHandler(service *services.CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the checkout routes with the Fiber app. The
// router must already require authentication.
func (h *CheckoutHandler) RegisterRoutes(router fiber.Router) {
	router.Post("/checkout", h.HandleSubmit)
	router.Get("/checkout/status", h.HandleStatus)
	router.Delete("/checkout", h.HandleCancel)
	router.Get("/orders", h.HandleGetOrders)
}

// CheckoutRequest is the request body for submitting a checkout.
type CheckoutRequest struct {
	Shipping      models.ShippingDetails `json:"shipping" validate:"required"`
	PaymentMethod string                 `json:"payment_method" validate:"required"`
}

// HandleSubmit starts a checkout for the user's cart. Processing is
// asynchronous: the response carries the order id the submission will
// complete under, and a later status read observes the completion.
func (h *CheckoutHandler) HandleSubmit(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	var req CheckoutRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing checkout request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return validationError(c, err)
	}

	orderID, err := h.service.Submit(userID, req.Shipping, req.PaymentMethod)
	if err != nil {
		if errors.Is(err, services.ErrEmptyCart) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"message": "Cannot check out an empty cart",
			})
		}
		log.Printf("Error submitting checkout for user %s: %v", userID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not submit checkout",
			"error":   err.Error(),
		})
	}

	return c.Status(fiber.StatusAccepted).JSON(fiber.Map{
		"message":  "Processing payment...",
		"state":    services.CheckoutSubmitting,
		"order_id": orderID,
	})
}

// HandleStatus reports the checkout machine state. Observing a completed
// checkout resets the machine to idle.
func (h *CheckoutHandler) HandleStatus(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	state, orderID := h.service.Status(userID)

	body := fiber.Map{"state": state}
	if orderID != "" {
		body["order_id"] = orderID
	}
	if state == services.CheckoutCompleted {
		body["message"] = "Order placed successfully! #" + orderID
	}
	return c.JSON(body)
}

// HandleCancel aborts a pending checkout submission.
func (h *CheckoutHandler) HandleCancel(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	cancelled := h.service.Cancel(userID)
	return c.JSON(fiber.Map{
		"cancelled": cancelled,
		"state":     services.CheckoutIdle,
	})
}

// HandleGetOrders returns the user's order history.
func (h *CheckoutHandler) HandleGetOrders(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	orders, err := h.service.OrdersForUser(userID)
	if err != nil {
		log.Printf("Error getting orders for user %s: %v", userID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve orders",
			"error":   err.Error(),
		})
	}
	if orders == nil {
		orders = []models.Order{}
	}
	return c.JSON(orders)
}
