package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gofiber/fiber/v3"
)

// ============================================================
// Input events
// ============================================================

type seatClickRequest struct {
	SeatID string `json:"seatId"`
	Ctrl   bool   `json:"ctrl"`
	Shift  bool   `json:"shift"`
}

// SeatClick применяет клик по месту с текущими модификаторами.
func (h *EditorHandler) SeatClick(c fiber.Ctx) error {
	s, err := h.resolve(c)
	if err != nil {
		return nil
	}

	var req seatClickRequest
	if err := json.Unmarshal(c.Body(), &req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "invalid json"})
	}

	s.SeatClick(req.SeatID, req.Ctrl, req.Shift)
	return state(c, s)
}

type rowClickRequest struct {
	RowID string `json:"rowId"`
	Ctrl  bool   `json:"ctrl"`
}

// RowClick переключает выделение ряда.
func (h *EditorHandler) RowClick(c fiber.Ctx) error {
	s, err := h.resolve(c)
	if err != nil {
		return nil
	}

	var req rowClickRequest
	if err := json.Unmarshal(c.Body(), &req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "invalid json"})
	}

	s.RowClick(req.RowID, req.Ctrl)
	return state(c, s)
}

// RowContextClick выделяет ряд эксклюзивно и отдает имя для переименования.
func (h *EditorHandler) RowContextClick(c fiber.Ctx) error {
	s, err := h.resolve(c)
	if err != nil {
		return nil
	}

	var req rowClickRequest
	if err := json.Unmarshal(c.Body(), &req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "invalid json"})
	}

	name, ok := s.RowContextClick(req.RowID)
	if !ok {
		return c.Status(http.StatusNotFound).JSON(fiber.Map{"error": "row not found"})
	}
	return c.JSON(fiber.Map{"rowId": req.RowID, "name": name})
}

type keyRequest struct {
	Key  string `json:"key"`
	Down bool   `json:"down"`
}

// Key обрабатывает клавиатурные события (Control/Shift/Escape/Delete).
func (h *EditorHandler) Key(c fiber.Ctx) error {
	s, err := h.resolve(c)
	if err != nil {
		return nil
	}

	var req keyRequest
	if err := json.Unmarshal(c.Body(), &req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "invalid json"})
	}

	removed := s.Key(req.Key, req.Down)
	if removed > 0 {
		h.autosave(c.Context(), s)
	}
	return state(c, s)
}

// ============================================================
// Drag gesture
// ============================================================

type dragStartRequest struct {
	SeatID string `json:"seatId"`
}

type dragPointRequest struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

func (h *EditorHandler) DragStart(c fiber.Ctx) error {
	s, err := h.resolve(c)
	if err != nil {
		return nil
	}

	var req dragStartRequest
	if err := json.Unmarshal(c.Body(), &req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "invalid json"})
	}

	s.DragStart(req.SeatID)
	return c.JSON(fiber.Map{"status": "dragging"})
}

func (h *EditorHandler) DragMove(c fiber.Ctx) error {
	s, err := h.resolve(c)
	if err != nil {
		return nil
	}

	var req dragPointRequest
	if err := json.Unmarshal(c.Body(), &req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "invalid json"})
	}

	s.DragMove(req.X, req.Y)
	return c.JSON(fiber.Map{"status": "dragging"})
}

func (h *EditorHandler) DragEnd(c fiber.Ctx) error {
	s, err := h.resolve(c)
	if err != nil {
		return nil
	}

	var req dragPointRequest
	if err := json.Unmarshal(c.Body(), &req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "invalid json"})
	}

	s.DragEnd(req.X, req.Y)
	h.autosave(c.Context(), s)
	return state(c, s)
}
