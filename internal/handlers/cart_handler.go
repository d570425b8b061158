package handlers

import (
	"fmt"
	"log"

	"lumina/internal/models"
	"lumina/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// CartHandler handles HTTP requests for the session's cart.
type CartHandler struct {
	service  *services.CartService
	validate *validator.Validate
}

// NewCartHandler creates a new CartHandler.
func NewCartHandler(service *services.CartService) *CartHandler {
	return &CartHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the cart routes with the Fiber app. The router
// must already require authentication.
func (h *CartHandler) RegisterRoutes(router fiber.Router) {
	cartRoutes := router.Group("/cart")
	cartRoutes.Get("/", h.HandleGetCart)
	cartRoutes.Post("/items", h.HandleAddItem)
	cartRoutes.Patch("/items/:id", h.HandleUpdateQuantity)
	cartRoutes.Delete("/items/:id", h.HandleRemoveItem)
	cartRoutes.Delete("/", h.HandleClearCart)
}

// AddItemRequest is the request body for adding a product to the cart.
type AddItemRequest struct {
	ProductID string `json:"product_id" validate:"required"`
}

// UpdateQuantityRequest is the request body for a quantity adjustment.
type UpdateQuantityRequest struct {
	Delta int `json:"delta" validate:"required"`
}

// HandleGetCart returns the cart with its derived totals.
func (h *CartHandler) HandleGetCart(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	cart := h.service.Get(userID)
	return c.JSON(h.service.View(cart))
}

// HandleAddItem adds one unit of a product to the cart.
func (h *CartHandler) HandleAddItem(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	var req AddItemRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing add-item request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return validationError(c, err)
	}

	cart, outcome, err := h.service.Add(userID, req.ProductID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": fmt.Sprintf("Product %s not found", req.ProductID),
			"error":   err.Error(),
		})
	}
	return h.respondOutcome(c, cart, outcome, fiber.StatusCreated)
}

// HandleUpdateQuantity adjusts a line's quantity by the requested delta.
func (h *CartHandler) HandleUpdateQuantity(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	productID := c.Params("id")

	var req UpdateQuantityRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing update-quantity request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return validationError(c, err)
	}

	cart, outcome, err := h.service.UpdateQuantity(userID, productID, req.Delta)
	if err != nil {
		log.Printf("Error updating quantity for user %s: %v", userID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not update cart",
			"error":   err.Error(),
		})
	}
	return h.respondOutcome(c, cart, outcome, fiber.StatusOK)
}

// HandleRemoveItem deletes a line from the cart. Removing an absent line
// is a no-op, not an error.
func (h *CartHandler) HandleRemoveItem(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	productID := c.Params("id")

	cart, outcome, err := h.service.Remove(userID, productID)
	if err != nil {
		log.Printf("Error removing item for user %s: %v", userID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not update cart",
			"error":   err.Error(),
		})
	}
	return h.respondOutcome(c, cart, outcome, fiber.StatusOK)
}

// HandleClearCart empties the cart unconditionally.
func (h *CartHandler) HandleClearCart(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	cart, err := h.service.Clear(userID)
	if err != nil {
		log.Printf("Error clearing cart for user %s: %v", userID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not clear cart",
			"error":   err.Error(),
		})
	}
	return c.JSON(fiber.Map{
		"outcome": models.OutcomeCleared,
		"cart":    h.service.View(cart),
	})
}

// respondOutcome maps a cart command outcome to its HTTP shape. Stock
// conflicts are advisory: 409 with the cart unchanged.
func (h *CartHandler) respondOutcome(c *fiber.Ctx, cart *models.Cart, outcome models.Outcome, successStatus int) error {
	status := successStatus
	message := ""
	switch outcome {
	case models.OutcomeStockExceeded:
		status = fiber.StatusConflict
		message = "Not enough stock available"
	case models.OutcomeNotInCart:
		status = fiber.StatusOK
	}

	body := fiber.Map{
		"outcome": outcome,
		"cart":    h.service.View(cart),
	}
	if message != "" {
		body["message"] = message
	}
	return c.Status(status).JSON(body)
}

// validationError renders validator failures the same way everywhere.
func validationError(c *fiber.Ctx, err error) error {
	validationErrors := err.(validator.ValidationErrors)
	errorMessages := make(map[string]string)
	for _, e := range validationErrors {
		errorMessages[e.Field()] = fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Field(), e.Tag())
	}
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"message": "Validation failed",
		"errors":  errorMessages,
	})
}
