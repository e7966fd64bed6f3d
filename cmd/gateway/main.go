package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"esports-store/internal/common/config"
	"esports-store/internal/common/middleware"
	"esports-store/internal/gateway/handlers"
	"esports-store/internal/gateway/proxy"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/recover"
)

// ============================================================
// API Gateway
// ============================================================

func main() {
	cfg := config.Load()

	app := fiber.New(fiber.Config{
		ReadTimeout:  time.Duration(cfg.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.WriteTimeout) * time.Second,
		AppName:      "API Gateway",
	})

	// ============================================================
	// Global Middleware
	// ============================================================

	app.Use(recover.New())
	app.Use(middleware.Logger())
	app.Use(middleware.CORS())

	// ============================================================
	// Health Check Routes
	// ============================================================

	app.Get("/health/live", handlers.LivenessProbe)
	app.Get("/health/ready", handlers.ReadinessProbe)
	app.Get("/health/startup", handlers.StartupProbe)

	// ============================================================
	// Docs
	// ============================================================

	app.Get("/docs", handlers.SwaggerUI)
	app.Get("/docs/openapi.yaml", handlers.SwaggerSpec)

	// ============================================================
	// API Routes
	// ============================================================

	api := app.Group("/api/v1")

	api.Get("/", func(c fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "Store API v1",
			"status":  "ok",
		})
	})

	// ============================================================
	// Auth Service
	// ============================================================

	authURL := getEnv("AUTH_URL", "http://localhost:3002")
	api.Post("/auth/signup", proxy.ProxyTo(authURL+"/signup"))
	api.Post("/auth/signin", proxy.ProxyTo(authURL+"/signin"))
	api.Post("/auth/signout", proxy.ProxyTo(authURL+"/signout"))
	api.Get("/auth/session", proxy.ProxyTo(authURL+"/session"))

	// ============================================================
	// Storefront Service
	// ============================================================

	storeURL := getEnv("STORE_URL", "http://localhost:3003")
	api.Get("/categories", func(c fiber.Ctx) error {
		return proxy.Forward(c, proxy.WithQuery(c, storeURL+"/categories"))
	})
	api.Get("/products", func(c fiber.Ctx) error {
		return proxy.Forward(c, proxy.WithQuery(c, storeURL+"/products"))
	})
	api.Get("/products/:slug", func(c fiber.Ctx) error {
		return proxy.Forward(c, fmt.Sprintf("%s/products/%s", storeURL, c.Params("slug")))
	})

	api.Get("/cart", proxy.ProxyTo(storeURL+"/cart"))
	api.Post("/cart/items", proxy.ProxyTo(storeURL+"/cart/items"))
	api.Patch("/cart/items", proxy.ProxyTo(storeURL+"/cart/items"))
	api.Delete("/cart/items", func(c fiber.Ctx) error {
		return proxy.Forward(c, proxy.WithQuery(c, storeURL+"/cart/items"))
	})
	api.Post("/checkout", proxy.ProxyTo(storeURL+"/checkout"))

	api.Get("/account", proxy.ProxyTo(storeURL+"/account"))
	api.Patch("/account", proxy.ProxyTo(storeURL+"/account"))

	api.Get("/contact-link", func(c fiber.Ctx) error {
		return proxy.Forward(c, proxy.WithQuery(c, storeURL+"/contact-link"))
	})

	admin := api.Group("/admin")
	admin.Post("/categories", proxy.ProxyTo(storeURL+"/admin/categories"))
	admin.Patch("/categories/:id", func(c fiber.Ctx) error {
		return proxy.Forward(c, fmt.Sprintf("%s/admin/categories/%s", storeURL, c.Params("id")))
	})
	admin.Delete("/categories/:id", func(c fiber.Ctx) error {
		return proxy.Forward(c, fmt.Sprintf("%s/admin/categories/%s", storeURL, c.Params("id")))
	})
	admin.Post("/products", proxy.ProxyTo(storeURL+"/admin/products"))
	admin.Patch("/products/:id", func(c fiber.Ctx) error {
		return proxy.Forward(c, fmt.Sprintf("%s/admin/products/%s", storeURL, c.Params("id")))
	})
	admin.Delete("/products/:id", func(c fiber.Ctx) error {
		return proxy.Forward(c, fmt.Sprintf("%s/admin/products/%s", storeURL, c.Params("id")))
	})

	// ============================================================
	// Studio Service
	// ============================================================

	studioURL := getEnv("STUDIO_URL", "http://localhost:3004")
	api.Post("/design/sessions", proxy.ProxyTo(studioURL+"/sessions"))
	api.Get("/design/sessions/:id", func(c fiber.Ctx) error {
		return proxy.Forward(c, fmt.Sprintf("%s/sessions/%s", studioURL, c.Params("id")))
	})
	api.Post("/design/sessions/:id/product", func(c fiber.Ctx) error {
		return proxy.Forward(c, fmt.Sprintf("%s/sessions/%s/product", studioURL, c.Params("id")))
	})
	api.Post("/design/sessions/:id/color", func(c fiber.Ctx) error {
		return proxy.Forward(c, fmt.Sprintf("%s/sessions/%s/color", studioURL, c.Params("id")))
	})
	api.Post("/design/sessions/:id/elements/text", func(c fiber.Ctx) error {
		return proxy.Forward(c, fmt.Sprintf("%s/sessions/%s/elements/text", studioURL, c.Params("id")))
	})
	api.Post("/design/sessions/:id/elements/logo", func(c fiber.Ctx) error {
		return proxy.Forward(c, fmt.Sprintf("%s/sessions/%s/elements/logo", studioURL, c.Params("id")))
	})
	api.Patch("/design/sessions/:id/elements/:elementID", func(c fiber.Ctx) error {
		return proxy.Forward(c, fmt.Sprintf("%s/sessions/%s/elements/%s", studioURL, c.Params("id"), c.Params("elementID")))
	})
	api.Delete("/design/sessions/:id/elements/:elementID", func(c fiber.Ctx) error {
		return proxy.Forward(c, fmt.Sprintf("%s/sessions/%s/elements/%s", studioURL, c.Params("id"), c.Params("elementID")))
	})
	api.Post("/design/sessions/:id/reset", func(c fiber.Ctx) error {
		return proxy.Forward(c, fmt.Sprintf("%s/sessions/%s/reset", studioURL, c.Params("id")))
	})
	api.Post("/design/sessions/:id/save", func(c fiber.Ctx) error {
		return proxy.Forward(c, fmt.Sprintf("%s/sessions/%s/save", studioURL, c.Params("id")))
	})
	api.Get("/design/sessions/:id/scene", func(c fiber.Ctx) error {
		return proxy.Forward(c, fmt.Sprintf("%s/sessions/%s/scene", studioURL, c.Params("id")))
	})
	api.Post("/design/logos", proxy.ProxyTo(studioURL+"/logos"))
	api.Get("/design/logos/:name", func(c fiber.Ctx) error {
		return proxy.Forward(c, fmt.Sprintf("%s/logos/%s", studioURL, c.Params("name")))
	})

	// ============================================================
	// Server Start
	// ============================================================

	addr := fmt.Sprintf(":%s", cfg.Port)
	log.Printf("Starting API Gateway on %s (env: %s)", addr, cfg.Environment)
	log.Printf("Proxying storefront to %s, studio to %s, auth to %s", storeURL, studioURL, authURL)

	if err := app.Listen(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func getEnv(key, defaultVal string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultVal
}
