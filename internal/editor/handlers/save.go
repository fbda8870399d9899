package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gofiber/fiber/v3"

	"seatmap-service/internal/editor/session"
)

// ============================================================
// Save / Cancel
// ============================================================

// Save сохраняет сектор целиком (метаданные + дерево мест).
// Повторный Save при активном — no-op.
func (h *EditorHandler) Save(c fiber.Ctx) error {
	s, err := h.resolve(c)
	if err != nil {
		return nil
	}

	if err := s.Save(c.Context(), token(c)); err != nil {
		if errors.Is(err, session.ErrSaveInFlight) {
			return c.Status(http.StatusConflict).JSON(fiber.Map{"error": "save already in flight"})
		}
		log.Printf("[EDITOR] save failed for session %s: %v", s.ID, err)
		return upstreamError(c, err)
	}

	h.dropDraft(c.Context(), s)
	log.Printf("[EDITOR] session %s saved sector %s", s.ID, s.SectorID)
	return state(c, s)
}

// Cancel отбрасывает правки и перечитывает сектор с сервера.
func (h *EditorHandler) Cancel(c fiber.Ctx) error {
	s, err := h.resolve(c)
	if err != nil {
		return nil
	}

	if err := s.Cancel(c.Context(), token(c)); err != nil {
		return upstreamError(c, err)
	}

	h.dropDraft(c.Context(), s)
	return state(c, s)
}
