package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gofiber/fiber/v3"
)

// ============================================================
// Toolbar: rows and seats
// ============================================================

type addRowRequest struct {
	Name      string `json:"name"`
	SeatCount int    `json:"seatCount"`
}

// AddRow добавляет один ряд с именем пользователя.
func (h *EditorHandler) AddRow(c fiber.Ctx) error {
	s, err := h.resolve(c)
	if err != nil {
		return nil
	}

	var req addRowRequest
	if err := json.Unmarshal(c.Body(), &req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "invalid json"})
	}
	if req.SeatCount <= 0 {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "seatCount must be positive"})
	}

	s.AddRow(req.Name, req.SeatCount)
	h.autosave(c.Context(), s)
	return state(c, s)
}

type addRowsRequest struct {
	RowCount  int `json:"rowCount"`
	SeatCount int `json:"seatCount"`
}

// AddRows добавляет пакет рядов; имена — римские номера рядов.
func (h *EditorHandler) AddRows(c fiber.Ctx) error {
	s, err := h.resolve(c)
	if err != nil {
		return nil
	}

	var req addRowsRequest
	if err := json.Unmarshal(c.Body(), &req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "invalid json"})
	}
	if req.RowCount <= 0 || req.SeatCount <= 0 {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "rowCount and seatCount must be positive"})
	}

	s.AddRows(req.RowCount, req.SeatCount)
	h.autosave(c.Context(), s)
	return state(c, s)
}

type addSeatsRequest struct {
	Count int `json:"count"`
}

// AddSeats достраивает места в хвост ряда.
func (h *EditorHandler) AddSeats(c fiber.Ctx) error {
	s, err := h.resolve(c)
	if err != nil {
		return nil
	}

	var req addSeatsRequest
	if err := json.Unmarshal(c.Body(), &req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "invalid json"})
	}
	if req.Count <= 0 {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "count must be positive"})
	}

	s.AddSeats(c.Params("rowId"), req.Count)
	h.autosave(c.Context(), s)
	return state(c, s)
}

// DeleteSelection удаляет выделенные места.
func (h *EditorHandler) DeleteSelection(c fiber.Ctx) error {
	s, err := h.resolve(c)
	if err != nil {
		return nil
	}

	removed := s.DeleteSelection()
	if removed > 0 {
		h.autosave(c.Context(), s)
	}
	return c.JSON(fiber.Map{"removed": removed, "state": s.SectorState()})
}

// DeleteRow удаляет ряд.
func (h *EditorHandler) DeleteRow(c fiber.Ctx) error {
	s, err := h.resolve(c)
	if err != nil {
		return nil
	}

	s.DeleteRow(c.Params("rowId"))
	h.autosave(c.Context(), s)
	return state(c, s)
}

// RemoveEmptyRows убирает все пустые ряды.
func (h *EditorHandler) RemoveEmptyRows(c fiber.Ctx) error {
	s, err := h.resolve(c)
	if err != nil {
		return nil
	}

	removed := s.RemoveEmptyRows()
	if removed > 0 {
		h.autosave(c.Context(), s)
	}
	return c.JSON(fiber.Map{"removed": removed, "state": s.SectorState()})
}

type renameRowRequest struct {
	Name string `json:"name"`
}

// RenameRow переименовывает ряд.
func (h *EditorHandler) RenameRow(c fiber.Ctx) error {
	s, err := h.resolve(c)
	if err != nil {
		return nil
	}

	var req renameRowRequest
	if err := json.Unmarshal(c.Body(), &req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "invalid json"})
	}

	s.RenameRow(c.Params("rowId"), req.Name)
	h.autosave(c.Context(), s)
	return state(c, s)
}

// ============================================================
// Toolbar: viewport
// ============================================================

type zoomRequest struct {
	Direction string  `json:"direction"` // in | out | reset
	Delta     float64 `json:"delta"`     // колесо мыши, если Direction пуст
}

// Zoom меняет масштаб: кнопки тулбара или колесо.
func (h *EditorHandler) Zoom(c fiber.Ctx) error {
	s, err := h.resolve(c)
	if err != nil {
		return nil
	}

	var req zoomRequest
	if err := json.Unmarshal(c.Body(), &req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "invalid json"})
	}

	switch req.Direction {
	case "in":
		s.ZoomIn()
	case "out":
		s.ZoomOut()
	case "reset":
		s.ZoomReset()
	case "":
		s.Wheel(req.Delta)
	default:
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "unknown zoom direction"})
	}
	return c.JSON(s.Viewport())
}

// ToggleGrid переключает видимость сетки.
func (h *EditorHandler) ToggleGrid(c fiber.Ctx) error {
	s, err := h.resolve(c)
	if err != nil {
		return nil
	}
	s.ToggleGrid()
	return c.JSON(s.Viewport())
}

// ToggleSnap переключает привязку к сетке.
func (h *EditorHandler) ToggleSnap(c fiber.Ctx) error {
	s, err := h.resolve(c)
	if err != nil {
		return nil
	}
	s.ToggleSnap()
	return c.JSON(s.Viewport())
}
