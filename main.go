package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/spf13/viper"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"lumina/internal/catalog"
	"lumina/internal/handlers"
	"lumina/internal/middleware"
	"lumina/internal/models"
	"lumina/internal/repositories"
	"lumina/internal/services"
	"lumina/pkg/events"
)

// AppConfig carries the knobs the app is wired with.
type AppConfig struct {
	JWTSecret     string
	CatalogSeed   int64
	AuthDelay     time.Duration
	CheckoutDelay time.Duration
}

// NewApp builds the Fiber app against the given repositories and event
// publisher. The catalog is generated and seeded here; a nil publisher
// leaves order events disabled.
func NewApp(cfg AppConfig, userRepo repositories.UserRepository, snapshots repositories.SnapshotRepository, orderRepo repositories.OrderRepository, publisher events.Publisher) *fiber.App {
	// --- Seed the catalog ---
	productRepo := repositories.NewInMemoryProductRepository()
	for _, product := range catalog.Generate(cfg.CatalogSeed) {
		if err := productRepo.Create(&product); err != nil {
			log.Printf("Error seeding product %s: %v", product.Name, err)
		}
	}

	// --- Initialize Services ---
	catalogService := services.NewCatalogService(productRepo)
	cartService := services.NewCartService(snapshots, productRepo)
	authService := services.NewAuthService(userRepo, snapshots, cfg.JWTSecret, cfg.AuthDelay)
	checkoutService := services.NewCheckoutService(cartService, orderRepo, publisher, cfg.CheckoutDelay)

	// --- Initialize Handlers ---
	catalogHandler := handlers.NewCatalogHandler(catalogService)
	cartHandler := handlers.NewCartHandler(cartService)
	authHandler := handlers.NewAuthHandler(authService)
	checkoutHandler := handlers.NewCheckoutHandler(checkoutService)

	// --- Initialize Fiber App ---
	app := fiber.New()
	app.Use(logger.New()) // Request logger

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	// --- API Routes ---
	apiV1 := app.Group("/api/v1")
	catalogHandler.RegisterRoutes(apiV1)
	authHandler.RegisterRoutes(apiV1)

	// Everything registered below requires a logged-in user.
	apiV1.Use(middleware.AuthRequired(authService))
	authHandler.RegisterProtectedRoutes(apiV1)
	cartHandler.RegisterRoutes(apiV1)
	checkoutHandler.RegisterRoutes(apiV1)

	return app
}

func main() {
	// --- Configuration ---
	viper.SetDefault("APP_PORT", ":8080")
	viper.SetDefault("DATABASE_DRIVER", "sqlite")
	viper.SetDefault("DATABASE_DSN", "lumina.db")
	viper.SetDefault("RABBITMQ_URL", "")
	viper.SetDefault("JWT_SECRET", "lumina_dev_secret")
	viper.SetDefault("AUTH_DELAY", 800*time.Millisecond)
	viper.SetDefault("CHECKOUT_DELAY", 2*time.Second)
	viper.SetDefault("CATALOG_SEED", time.Now().UnixNano())
	viper.AutomaticEnv()

	cfg := AppConfig{
		JWTSecret:     viper.GetString("JWT_SECRET"),
		CatalogSeed:   viper.GetInt64("CATALOG_SEED"),
		AuthDelay:     viper.GetDuration("AUTH_DELAY"),
		CheckoutDelay: viper.GetDuration("CHECKOUT_DELAY"),
	}

	// --- Database ---
	var dialector gorm.Dialector
	switch viper.GetString("DATABASE_DRIVER") {
	case "postgres":
		dialector = postgres.Open(viper.GetString("DATABASE_DSN"))
	default:
		dialector = sqlite.Open(viper.GetString("DATABASE_DSN"))
	}
	db, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := db.AutoMigrate(&repositories.KVEntry{}, &models.User{}); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	userRepo := repositories.NewGORMUserRepository(db)
	snapshots := repositories.NewGORMSnapshotRepository(db)
	orderRepo := repositories.NewInMemoryOrderRepository()

	// --- Order events (optional) ---
	var publisher events.Publisher
	if url := viper.GetString("RABBITMQ_URL"); url != "" {
		client, err := events.NewClient(events.Config{URL: url})
		if err != nil {
			log.Fatalf("Failed to initialize event client: %v", err)
		}
		defer client.Close()
		publisher = client
	} else {
		log.Println("RABBITMQ_URL not set; order events disabled")
	}

	app := NewApp(cfg, userRepo, snapshots, orderRepo, publisher)

	// --- Start HTTP Server ---
	appPort := viper.GetString("APP_PORT")
	log.Printf("Starting server on port %s", appPort)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := app.Listen(appPort); err != nil {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	<-quit
	log.Println("Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Printf("Error during Fiber shutdown: %v", err)
	}
	log.Println("Server gracefully stopped")
}
