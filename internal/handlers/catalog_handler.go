package handlers

import (
	"log"
	"math"
	"strconv"

	"lumina/internal/catalog"
	"lumina/internal/models"
	"lumina/internal/services"

	"github.com/gofiber/fiber/v2"
)

// CatalogHandler handles HTTP requests for the product catalog.
type CatalogHandler struct {
	service *services.CatalogService
}

// NewCatalogHandler creates a new CatalogHandler.
func NewCatalogHandler(service *services.CatalogService) *CatalogHandler {
	return &CatalogHandler{
		service: service,
	}
}

// RegisterRoutes registers the catalog routes with the Fiber app.
func (h *CatalogHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/products", h.HandleQueryProducts)
	router.Get("/products/:id", h.HandleGetProductByID)
	router.Get("/categories", h.HandleGetCategories)
}

// HandleQueryProducts evaluates the filter/sort query parameters against
// the catalog and returns the visible, ordered product list.
func (h *CatalogHandler) HandleQueryProducts(c *fiber.Ctx) error {
	filter := models.DefaultFilter()
	if v := c.Query("category"); v != "" {
		filter.Category = v
	}
	filter.Search = c.Query("search")
	filter.MinPrice = queryFloat(c, "min_price", 0)
	filter.MaxPrice = queryFloat(c, "max_price", math.Inf(1))
	filter.MinRating = queryFloat(c, "min_rating", 0)

	sortBy := models.SortOption(c.Query("sort", string(models.SortPopularity)))

	products, err := h.service.Query(filter, sortBy)
	if err != nil {
		log.Printf("Error querying products: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not query products",
			"error":   err.Error(),
		})
	}
	return c.JSON(fiber.Map{
		"products": products,
		"count":    len(products),
	})
}

// HandleGetProductByID retrieves a single product by its ID.
func (h *CatalogHandler) HandleGetProductByID(c *fiber.Ctx) error {
	productID := c.Params("id")
	product, err := h.service.GetProductByID(productID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "Product not found",
			"error":   err.Error(),
		})
	}
	return c.JSON(product)
}

// HandleGetCategories returns the fixed category set.
func (h *CatalogHandler) HandleGetCategories(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"categories": catalog.Categories,
	})
}

// queryFloat parses a float query parameter, falling back to def on
// absence or garbage. Bad filter input never fails a query.
func queryFloat(c *fiber.Ctx, key string, def float64) float64 {
	raw := c.Query(key)
	if raw == "" {
		return def
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return def
	}
	return v
}
