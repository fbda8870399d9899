package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/gofiber/fiber/v3"

	"seatmap-service/internal/backend"
	"seatmap-service/internal/editor/draft"
	"seatmap-service/internal/editor/session"
)

// ============================================================
// Editor Handler
// ============================================================

type EditorHandler struct {
	sessions *session.Manager
	ready    *session.Readiness
	drafts   *draft.Store
}

func NewEditorHandler(sessions *session.Manager, ready *session.Readiness, drafts *draft.Store) *EditorHandler {
	return &EditorHandler{sessions: sessions, ready: ready, drafts: drafts}
}

// ============================================================
// Helpers
// ============================================================

func token(c fiber.Ctx) string {
	return c.Get("Authorization")
}

// resolve находит сессию по id из пути. Если сессии нет, ответ 404
// уже записан: вызывающий обязан вернуть nil, не трогая сессию.
func (h *EditorHandler) resolve(c fiber.Ctx) (*session.Session, error) {
	s, err := h.sessions.Resolve(c.Params("id"))
	if err != nil {
		_ = c.Status(http.StatusNotFound).JSON(fiber.Map{"error": "session not found"})
		return nil, session.ErrNotFound
	}
	return s, nil
}

// upstreamError переводит ошибку апстрима в ответ клиенту.
// Правки при этом остаются в сессии.
func upstreamError(c fiber.Ctx, err error) error {
	var apiErr *backend.APIError
	if errors.As(err, &apiErr) {
		if apiErr.Status == http.StatusNotFound {
			return c.Status(http.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(http.StatusBadGateway).JSON(fiber.Map{"error": err.Error()})
	}
	return c.Status(http.StatusBadGateway).JSON(fiber.Map{"error": err.Error()})
}

// autosave пишет черновик после каждой структурной правки. Ошибка
// черновика не мешает самой правке.
func (h *EditorHandler) autosave(ctx context.Context, s *session.Session) {
	if h.drafts == nil {
		return
	}
	data, err := s.Snapshot()
	if err != nil {
		log.Printf("[EDITOR] snapshot failed: %v", err)
		return
	}
	if err := h.drafts.Save(ctx, s.SectorID, s.ID, data); err != nil {
		log.Printf("[EDITOR] draft autosave failed: %v", err)
	}
}

func (h *EditorHandler) dropDraft(ctx context.Context, s *session.Session) {
	if h.drafts == nil {
		return
	}
	if err := h.drafts.Delete(ctx, s.SectorID); err != nil {
		log.Printf("[EDITOR] draft delete failed: %v", err)
	}
}

func state(c fiber.Ctx, s *session.Session) error {
	return c.JSON(s.SectorState())
}
