package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/gofiber/fiber/v3"

	"seatmap-service/internal/editor/draft"
	"seatmap-service/internal/editor/session"
)

// ============================================================
// Session lifecycle
// ============================================================

type openSessionRequest struct {
	VenueID  string `json:"venueId"`
	SectorID string `json:"sectorId"`
	EventID  string `json:"eventId,omitempty"`
}

// OpenSession открывает сессию редактора раскладки для сектора.
func (h *EditorHandler) OpenSession(c fiber.Ctx) error {
	var req openSessionRequest
	if err := json.Unmarshal(c.Body(), &req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "invalid json"})
	}
	if req.VenueID == "" || req.SectorID == "" {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "venueId and sectorId required"})
	}

	if err := h.ready.Ensure(c.Context()); err != nil {
		if errors.Is(err, session.ErrNotReady) {
			// Ограниченный опрос исчерпан: клиенту предлагается ручной повтор.
			return c.Status(http.StatusServiceUnavailable).JSON(fiber.Map{
				"error": "editor initialization failed",
				"retry": "/api/v1/editor/init/retry",
			})
		}
		return upstreamError(c, err)
	}

	s, err := h.sessions.Open(c.Context(), token(c), req.VenueID, req.SectorID)
	if err != nil {
		return upstreamError(c, err)
	}

	log.Printf("[EDITOR] session %s opened for sector %s", s.ID, req.SectorID)
	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"state":          s.SectorState(),
		"draftAvailable": h.hasDraft(c.Context(), req.SectorID),
	})
}

// GetSession возвращает состояние сессии.
func (h *EditorHandler) GetSession(c fiber.Ctx) error {
	s, err := h.resolve(c)
	if err != nil {
		return nil
	}
	return state(c, s)
}

// CloseSession закрывает сессию и снимает обработчики ввода.
func (h *EditorHandler) CloseSession(c fiber.Ctx) error {
	h.sessions.Close(c.Params("id"))
	return c.JSON(fiber.Map{"status": "closed"})
}

// RetryInit — ручной повтор инициализации после исчерпания опроса.
func (h *EditorHandler) RetryInit(c fiber.Ctx) error {
	if err := h.ready.Retry(c.Context()); err != nil {
		return c.Status(http.StatusServiceUnavailable).JSON(fiber.Map{"error": "editor initialization failed"})
	}
	return c.JSON(fiber.Map{"status": "ready"})
}

// ============================================================
// Drafts
// ============================================================

func (h *EditorHandler) hasDraft(ctx context.Context, sectorID string) bool {
	if h.drafts == nil {
		return false
	}
	_, err := h.drafts.Load(ctx, sectorID)
	return err == nil
}

// RestoreDraft замещает модель сессии последним автосохраненным черновиком.
func (h *EditorHandler) RestoreDraft(c fiber.Ctx) error {
	s, err := h.resolve(c)
	if err != nil {
		return nil
	}
	if h.drafts == nil {
		return c.Status(http.StatusNotFound).JSON(fiber.Map{"error": "drafts disabled"})
	}

	data, err := h.drafts.Load(c.Context(), s.SectorID)
	if err != nil {
		if errors.Is(err, draft.ErrNoDraft) {
			return c.Status(http.StatusNotFound).JSON(fiber.Map{"error": "no draft for sector"})
		}
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	if err := s.RestoreSnapshot(data); err != nil {
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return state(c, s)
}
