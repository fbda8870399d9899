package handlers

import (
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v3"

	"seatmap-service/internal/editor/model"
)

// ============================================================
// Rendering
// ============================================================

// RenderSVG отдает сцену сессии как SVG.
func (h *EditorHandler) RenderSVG(c fiber.Ctx) error {
	s, err := h.resolve(c)
	if err != nil {
		return nil
	}

	svg, err := s.RenderSVG()
	if err != nil {
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	c.Set("Content-Type", "image/svg+xml")
	return c.SendString(svg)
}

// Scene отдает сцену как JSON (для клиентов, рисующих самостоятельно).
func (h *EditorHandler) Scene(c fiber.Ctx) error {
	s, err := h.resolve(c)
	if err != nil {
		return nil
	}
	return c.JSON(s.Scene())
}

// Tooltip переводит экранную точку курсора в координаты сектора.
func (h *EditorHandler) Tooltip(c fiber.Ctx) error {
	s, err := h.resolve(c)
	if err != nil {
		return nil
	}

	x, errX := strconv.ParseFloat(c.Query("x"), 64)
	y, errY := strconv.ParseFloat(c.Query("y"), 64)
	if errX != nil || errY != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "x and y query params required"})
	}

	anchor := s.TooltipAnchor(model.Point{X: x, Y: y})
	return c.JSON(anchor)
}
