package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	authclient "esports-store/internal/auth/client"
	"esports-store/internal/backend"
	"esports-store/internal/common/config"
	"esports-store/internal/common/kvstore"
	"esports-store/internal/common/middleware"
	"esports-store/internal/storefront/cart"
	"esports-store/internal/storefront/catalog"
	"esports-store/internal/storefront/handlers"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/recover"
)

// ============================================================
// Storefront Service
// ============================================================

func main() {
	cfg := config.Load()
	if os.Getenv("PORT") == "" {
		cfg.Port = "3003"
	}

	client, err := backend.New(backend.Config{
		URL:    cfg.BackendURL,
		APIKey: cfg.BackendAPIKey,
	})
	if err != nil {
		log.Fatalf("backend client: %v", err)
	}

	db, err := kvstore.OpenSQLite(cfg.StoreDBPath)
	if err != nil {
		log.Fatalf("open db: %v", err)
	}
	defer db.Close()

	store := kvstore.New(db)
	if err := store.Init(context.Background(), "migrations/001_init_blobs.sql"); err != nil {
		log.Fatalf("init db: %v", err)
	}

	authURL := getenv("AUTH_URL", "http://localhost:3002")
	storeHandler := handlers.NewStoreHandler(
		catalog.New(client),
		cart.NewManager(store),
		authclient.New(authURL),
		cfg.ShippingFee,
		cfg.ContactPhone,
	)

	app := fiber.New(fiber.Config{
		ReadTimeout:  time.Duration(cfg.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.WriteTimeout) * time.Second,
		AppName:      "Storefront Service",
	})

	// ============================================================
	// Global Middleware
	// ============================================================

	app.Use(recover.New())
	app.Use(middleware.Logger())

	// ============================================================
	// Health Check Routes
	// ============================================================

	app.Get("/health/live", func(c fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "alive"})
	})

	app.Get("/health/ready", func(c fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ready"})
	})

	// ============================================================
	// Catalog Routes
	// ============================================================

	app.Get("/categories", storeHandler.ListCategories)
	app.Get("/products", storeHandler.ListProducts)
	app.Get("/products/:slug", storeHandler.GetProduct)
	app.Get("/contact-link", storeHandler.ContactLink)

	// ============================================================
	// Cart & Checkout Routes
	// ============================================================

	app.Get("/cart", storeHandler.GetCart)
	app.Post("/cart/items", storeHandler.AddCartItem)
	app.Patch("/cart/items", storeHandler.SetCartQuantity)
	app.Delete("/cart/items", storeHandler.RemoveCartItem)
	app.Post("/checkout", storeHandler.Checkout)

	// ============================================================
	// Account Routes
	// ============================================================

	app.Get("/account", storeHandler.GetAccount)
	app.Patch("/account", storeHandler.UpdateAccount)

	// ============================================================
	// Admin Routes
	// ============================================================

	app.Post("/admin/categories", storeHandler.CreateCategory)
	app.Patch("/admin/categories/:id", storeHandler.UpdateCategory)
	app.Delete("/admin/categories/:id", storeHandler.DeleteCategory)
	app.Post("/admin/products", storeHandler.CreateProduct)
	app.Patch("/admin/products/:id", storeHandler.UpdateProduct)
	app.Delete("/admin/products/:id", storeHandler.DeleteProduct)

	// ============================================================
	// Server Start
	// ============================================================

	addr := fmt.Sprintf(":%s", cfg.Port)
	log.Printf("Starting Storefront Service on %s (env: %s)", addr, cfg.Environment)

	if err := app.Listen(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func getenv(key, defaultVal string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultVal
}
