package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"seatmap-service/internal/backend"
	"seatmap-service/internal/common/config"
	"seatmap-service/internal/common/middleware"
	"seatmap-service/internal/editor/draft"
	"seatmap-service/internal/editor/handlers"
	"seatmap-service/internal/editor/session"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/recover"
)

// ============================================================
// Editor Service
// ============================================================

const sessionIdleLimit = 30 * time.Minute

func main() {
	cfg := config.Load()
	if os.Getenv("PORT") == "" {
		cfg.Port = "3001"
	}

	db, err := draft.Open(cfg.DraftDBPath)
	if err != nil {
		log.Fatalf("open db: %v", err)
	}
	defer db.Close()

	drafts := draft.New(db)
	if err := drafts.Init(context.Background(), "migrations/drafts.sql"); err != nil {
		log.Fatalf("init db: %v", err)
	}

	api := backend.New(cfg.BackendURL, 15*time.Second)
	sessions := session.NewManager(api, cfg.GridUnit)
	ready := session.NewReadiness(api, cfg.ReadyAttempts, time.Duration(cfg.ReadyBackoffMS)*time.Millisecond)

	editorHandler := handlers.NewEditorHandler(sessions, ready, drafts)

	app := fiber.New(fiber.Config{
		ReadTimeout:  time.Duration(cfg.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.WriteTimeout) * time.Second,
		AppName:      "Editor Service",
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

	app.Get("/health/live", func(c fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "alive"})
	})

	app.Get("/health/ready", func(c fiber.Ctx) error {
		if !ready.Ready() {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "waiting for upstream"})
		}
		return c.JSON(fiber.Map{"status": "ready"})
	})

	// ============================================================
	// Editor Session Routes
	// ============================================================

	app.Post("/sessions", editorHandler.OpenSession)
	app.Post("/sessions/reservation", editorHandler.OpenReservationSession)
	app.Post("/init/retry", editorHandler.RetryInit)
	app.Get("/sessions/:id", editorHandler.GetSession)
	app.Delete("/sessions/:id", editorHandler.CloseSession)
	app.Post("/sessions/:id/draft/restore", editorHandler.RestoreDraft)

	// ============================================================
	// Input Routes
	// ============================================================

	app.Post("/sessions/:id/seat-click", editorHandler.SeatClick)
	app.Post("/sessions/:id/row-click", editorHandler.RowClick)
	app.Post("/sessions/:id/row-context", editorHandler.RowContextClick)
	app.Post("/sessions/:id/key", editorHandler.Key)
	app.Post("/sessions/:id/drag/start", editorHandler.DragStart)
	app.Post("/sessions/:id/drag/move", editorHandler.DragMove)
	app.Post("/sessions/:id/drag/end", editorHandler.DragEnd)

	// ============================================================
	// Toolbar Routes
	// ============================================================

	app.Post("/sessions/:id/rows", editorHandler.AddRow)
	app.Post("/sessions/:id/rows/batch", editorHandler.AddRows)
	app.Post("/sessions/:id/rows/:rowId/seats", editorHandler.AddSeats)
	app.Put("/sessions/:id/rows/:rowId/name", editorHandler.RenameRow)
	app.Delete("/sessions/:id/rows/empty", editorHandler.RemoveEmptyRows)
	app.Delete("/sessions/:id/rows/:rowId", editorHandler.DeleteRow)
	app.Delete("/sessions/:id/selection", editorHandler.DeleteSelection)
	app.Post("/sessions/:id/zoom", editorHandler.Zoom)
	app.Post("/sessions/:id/grid", editorHandler.ToggleGrid)
	app.Post("/sessions/:id/snap", editorHandler.ToggleSnap)

	// ============================================================
	// Render Routes
	// ============================================================

	app.Get("/sessions/:id/svg", editorHandler.RenderSVG)
	app.Get("/sessions/:id/scene", editorHandler.Scene)
	app.Get("/sessions/:id/tooltip", editorHandler.Tooltip)

	// ============================================================
	// Persistence Routes
	// ============================================================

	app.Post("/sessions/:id/save", editorHandler.Save)
	app.Post("/sessions/:id/cancel", editorHandler.Cancel)

	// ============================================================
	// Reservation Routes
	// ============================================================

	app.Post("/sessions/:id/reservations/assign", editorHandler.Assign)
	app.Post("/sessions/:id/reservations/unassign", editorHandler.Unassign)
	app.Post("/sessions/:id/reservations/save", editorHandler.SaveReservations)
	app.Post("/sessions/:id/reservations/clear", editorHandler.ClearReservations)
	app.Post("/sessions/:id/reservations/cancel", editorHandler.CancelReservations)
	app.Get("/sessions/:id/participants", editorHandler.Participants)

	// ============================================================
	// Idle Session Sweeper
	// ============================================================

	go func() {
		ticker := time.NewTicker(5 * time.Minute)
		defer ticker.Stop()
		for range ticker.C {
			if n := sessions.SweepIdle(sessionIdleLimit); n > 0 {
				log.Printf("[EDITOR] swept %d idle sessions", n)
			}
		}
	}()

	// ============================================================
	// Server Start
	// ============================================================

	addr := fmt.Sprintf(":%s", cfg.Port)
	log.Printf("Starting Editor Service on %s (env: %s)", addr, cfg.Environment)
	log.Printf("Upstream API: %s", cfg.BackendURL)

	if err := app.Listen(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
