package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"esports-store/internal/auth/handlers"
	"esports-store/internal/auth/service"
	"esports-store/internal/backend"
	"esports-store/internal/common/config"
	"esports-store/internal/common/middleware"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/recover"
)

// ============================================================
// Auth Service
// ============================================================

func main() {
	cfg := config.Load()
	if os.Getenv("PORT") == "" {
		cfg.Port = "3002"
	}

	client, err := backend.New(backend.Config{
		URL:    cfg.BackendURL,
		APIKey: cfg.BackendAPIKey,
	})
	if err != nil {
		log.Fatalf("backend client: %v", err)
	}

	sessions := service.NewSessionManager()
	authHandler := handlers.NewAuthHandler(client, sessions)

	app := fiber.New(fiber.Config{
		ReadTimeout:  time.Duration(cfg.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.WriteTimeout) * time.Second,
		AppName:      "Auth Service",
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
	// Auth Routes
	// ============================================================

	app.Post("/signup", authHandler.SignUp)
	app.Post("/signin", authHandler.SignIn)
	app.Post("/signout", authHandler.SignOut)
	app.Get("/session", authHandler.GetSession)

	// Internal routes (для межсервисного общения)
	app.Get("/internal/session", authHandler.GetSession)

	// ============================================================
	// Server Start
	// ============================================================

	addr := fmt.Sprintf(":%s", cfg.Port)
	log.Printf("Starting Auth Service on %s (env: %s)", addr, cfg.Environment)

	if err := app.Listen(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
