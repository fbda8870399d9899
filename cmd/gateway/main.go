package main

import (
	"fmt"
	"log"
	"time"

	"seatmap-service/internal/common/config"
	"seatmap-service/internal/common/middleware"
	"seatmap-service/internal/gateway/handlers"
	"seatmap-service/internal/gateway/proxy"

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
	app.Get("/health/ready", handlers.ReadinessProbe(cfg.EditorURL+"/health/live"))
	app.Get("/health/startup", handlers.StartupProbe)

	// ============================================================
	// API Routes
	// ============================================================

	api := app.Group("/api/v1")

	api.Get("/", func(c fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "Seatmap Gateway v1",
			"status":  "ok",
		})
	})

	// ============================================================
	// Editor Service Routes (Proxy)
	// ============================================================

	editorURL := cfg.EditorURL

	api.Post("/editor/sessions", proxy.ProxyTo(editorURL+"/sessions"))
	api.Post("/editor/sessions/reservation", proxy.ProxyTo(editorURL+"/sessions/reservation"))
	api.Post("/editor/init/retry", proxy.ProxyTo(editorURL+"/init/retry"))

	api.Get("/editor/sessions/:id", func(c fiber.Ctx) error {
		return proxy.Forward(c, fmt.Sprintf("%s/sessions/%s", editorURL, c.Params("id")))
	})
	api.Delete("/editor/sessions/:id", func(c fiber.Ctx) error {
		return proxy.Forward(c, fmt.Sprintf("%s/sessions/%s", editorURL, c.Params("id")))
	})

	// Все операции внутри сессии переправляются с сохранением хвоста пути.
	api.All("/editor/sessions/:id/*", func(c fiber.Ctx) error {
		return proxy.Forward(c, fmt.Sprintf("%s/sessions/%s/%s", editorURL, c.Params("id"), c.Params("*")))
	})

	// ============================================================
	// Backend Passthrough Routes (Proxy)
	// ============================================================

	backendURL := cfg.BackendURL

	api.Get("/venues/:venueId", func(c fiber.Ctx) error {
		return proxy.Forward(c, fmt.Sprintf("%s/venues/%s", backendURL, c.Params("venueId")))
	})
	api.Get("/venues/:venueId/sectors/:sectorId", func(c fiber.Ctx) error {
		return proxy.Forward(c, fmt.Sprintf("%s/venues/%s/sectors/%s", backendURL, c.Params("venueId"), c.Params("sectorId")))
	})
	api.Get("/events/:eventId/reservations", func(c fiber.Ctx) error {
		return proxy.Forward(c, fmt.Sprintf("%s/events/%s/reservations", backendURL, c.Params("eventId")))
	})
	api.Get("/events/:eventId/participants", func(c fiber.Ctx) error {
		return proxy.Forward(c, fmt.Sprintf("%s/events/%s/participants", backendURL, c.Params("eventId")))
	})

	// ============================================================
	// Server Start
	// ============================================================

	addr := fmt.Sprintf(":%s", cfg.Port)
	log.Printf("Starting API Gateway on %s (env: %s)", addr, cfg.Environment)
	log.Printf("Proxying /editor to %s", editorURL)

	if err := app.Listen(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
