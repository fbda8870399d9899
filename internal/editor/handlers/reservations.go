package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v3"

	"seatmap-service/internal/editor/session"
)

// ============================================================
// Reservation overlay
// ============================================================

// OpenReservationSession открывает сессию рассадки по событию.
func (h *EditorHandler) OpenReservationSession(c fiber.Ctx) error {
	var req openSessionRequest
	if err := json.Unmarshal(c.Body(), &req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "invalid json"})
	}
	if req.VenueID == "" || req.SectorID == "" || req.EventID == "" {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "venueId, sectorId and eventId required"})
	}

	if err := h.ready.Ensure(c.Context()); err != nil {
		if errors.Is(err, session.ErrNotReady) {
			return c.Status(http.StatusServiceUnavailable).JSON(fiber.Map{
				"error": "editor initialization failed",
				"retry": "/api/v1/editor/init/retry",
			})
		}
		return upstreamError(c, err)
	}

	s, err := h.sessions.OpenReservation(c.Context(), token(c), req.VenueID, req.SectorID, req.EventID)
	if err != nil {
		return upstreamError(c, err)
	}
	return c.Status(http.StatusCreated).JSON(s.SectorState())
}

// errNoOverlay сигнализирует, что ответ об отсутствии оверлея уже записан.
var errNoOverlay = errors.New("session has no reservation overlay")

func (h *EditorHandler) resolveOverlay(c fiber.Ctx) (*session.Session, error) {
	s, err := h.resolve(c)
	if err != nil {
		return nil, err
	}
	if s.Overlay() == nil {
		_ = c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "session has no reservation overlay"})
		return nil, errNoOverlay
	}
	return s, nil
}

type assignRequest struct {
	SeatID        string `json:"seatId"`
	ParticipantID string `json:"participantId"`
}

// Assign сажает участника на место (оптимистично, в батч).
func (h *EditorHandler) Assign(c fiber.Ctx) error {
	s, err := h.resolveOverlay(c)
	if err != nil {
		return nil
	}

	var req assignRequest
	if err := json.Unmarshal(c.Body(), &req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "invalid json"})
	}
	if req.SeatID == "" || req.ParticipantID == "" {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "seatId and participantId required"})
	}

	s.Overlay().Assign(req.SeatID, req.ParticipantID)
	return c.JSON(fiber.Map{"pending": s.Overlay().Pending()})
}

type unassignRequest struct {
	SeatID string `json:"seatId"`
}

// Unassign снимает бронь с места.
func (h *EditorHandler) Unassign(c fiber.Ctx) error {
	s, err := h.resolveOverlay(c)
	if err != nil {
		return nil
	}

	var req unassignRequest
	if err := json.Unmarshal(c.Body(), &req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "invalid json"})
	}
	if req.SeatID == "" {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "seatId required"})
	}

	s.Overlay().Unassign(req.SeatID)
	return c.JSON(fiber.Map{"pending": s.Overlay().Pending()})
}

// SaveReservations отправляет весь батч одним запросом.
func (h *EditorHandler) SaveReservations(c fiber.Ctx) error {
	s, err := h.resolveOverlay(c)
	if err != nil {
		return nil
	}

	if err := s.Overlay().SaveBatch(c.Context(), token(c)); err != nil {
		return upstreamError(c, err)
	}
	return c.JSON(fiber.Map{"reservations": s.Overlay().Reservations()})
}

// ClearReservations выбрасывает батч локально.
func (h *EditorHandler) ClearReservations(c fiber.Ctx) error {
	s, err := h.resolveOverlay(c)
	if err != nil {
		return nil
	}
	s.Overlay().Clear()
	return c.JSON(fiber.Map{"pending": s.Overlay().Pending()})
}

// CancelReservations выбрасывает батч и перечитывает брони с сервера.
func (h *EditorHandler) CancelReservations(c fiber.Ctx) error {
	s, err := h.resolveOverlay(c)
	if err != nil {
		return nil
	}

	if err := s.Overlay().Cancel(c.Context(), token(c)); err != nil {
		return upstreamError(c, err)
	}
	return c.JSON(fiber.Map{"reservations": s.Overlay().Reservations()})
}

// Participants отдает участников события.
func (h *EditorHandler) Participants(c fiber.Ctx) error {
	s, err := h.resolveOverlay(c)
	if err != nil {
		return nil
	}

	list, err := s.Overlay().Participants(c.Context(), token(c))
	if err != nil {
		return upstreamError(c, err)
	}
	return c.JSON(list)
}
