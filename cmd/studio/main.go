package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"esports-store/internal/common/config"
	"esports-store/internal/common/kvstore"
	"esports-store/internal/common/middleware"
	"esports-store/internal/studio/assets"
	"esports-store/internal/studio/design"
	"esports-store/internal/studio/handlers"
	"esports-store/internal/studio/storage"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/recover"
)

// ============================================================
// Studio Service
// ============================================================

func main() {
	cfg := config.Load()
	if os.Getenv("PORT") == "" {
		cfg.Port = "3004"
	}

	db, err := kvstore.OpenSQLite(cfg.StudioDBPath)
	if err != nil {
		log.Fatalf("open db: %v", err)
	}
	defer db.Close()

	store := kvstore.New(db)
	if err := store.Init(context.Background(), "migrations/001_init_blobs.sql"); err != nil {
		log.Fatalf("init db: %v", err)
	}

	designHandler := handlers.NewDesignHandler(
		design.NewManager(store),
		assets.NewLoader(cfg.LogoDir),
		storage.NewLogoStorage(cfg.LogoDir),
	)

	app := fiber.New(fiber.Config{
		ReadTimeout:  time.Duration(cfg.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.WriteTimeout) * time.Second,
		AppName:      "Studio Service",
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
	// Design Session Routes
	// ============================================================

	app.Post("/sessions", designHandler.CreateSession)
	app.Get("/sessions/:id", designHandler.GetSession)
	app.Post("/sessions/:id/product", designHandler.SelectProduct)
	app.Post("/sessions/:id/color", designHandler.SetBaseColor)
	app.Post("/sessions/:id/elements/text", designHandler.AddText)
	app.Post("/sessions/:id/elements/logo", designHandler.AddLogo)
	app.Patch("/sessions/:id/elements/:elementID", designHandler.UpdateElement)
	app.Delete("/sessions/:id/elements/:elementID", designHandler.RemoveElement)
	app.Post("/sessions/:id/reset", designHandler.Reset)
	app.Post("/sessions/:id/save", designHandler.Save)
	app.Get("/sessions/:id/scene", designHandler.RenderScene)

	// ============================================================
	// Logo Routes
	// ============================================================

	app.Post("/logos", designHandler.UploadLogo)
	app.Get("/logos/:name", designHandler.GetLogo)

	// ============================================================
	// Server Start
	// ============================================================

	addr := fmt.Sprintf(":%s", cfg.Port)
	log.Printf("Starting Studio Service on %s (env: %s)", addr, cfg.Environment)

	if err := app.Listen(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
