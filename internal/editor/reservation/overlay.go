package reservation

import (
	"context"
	"fmt"
	"sync"

	"seatmap-service/internal/backend"
	"seatmap-service/internal/editor/canvas"
	"seatmap-service/internal/editor/model"
)

// ============================================================
// Reservation Assignment Overlay
// ============================================================

// Цвета мест по состоянию брони. Выделение перекрывает.
const (
	ColorSeatFree     = canvas.ColorSeatActive
	ColorSeatReserved = "#e57373"
	ColorSeatPending  = "#81c784"
)

// Overlay привязывает участников к местам поверх той же модели раскладки.
// Держит собственный батч несохраненных изменений: не больше одной
// записи на место, новая запись по месту замещает прежнюю.
// mu закрывает reservations и pending: правки батча и раскраска
// при рендере идут из разных запросов.
type Overlay struct {
	api     *backend.Client
	eventID string

	mu           sync.Mutex
	reservations []backend.Reservation
	pending      []backend.ReservationInput
}

func NewOverlay(api *backend.Client, eventID string) *Overlay {
	return &Overlay{api: api, eventID: eventID}
}

// LoadReservations читает текущие брони события с сервера.
func (o *Overlay) LoadReservations(ctx context.Context, token string) error {
	list, err := o.api.GetReservations(ctx, token, o.eventID)
	if err != nil {
		return fmt.Errorf("load reservations: %w", err)
	}
	o.mu.Lock()
	o.reservations = list
	o.mu.Unlock()
	return nil
}

// Participants отдает список участников события.
func (o *Overlay) Participants(ctx context.Context, token string) ([]backend.Participant, error) {
	return o.api.GetEventParticipants(ctx, token, o.eventID)
}

// ============================================================
// Optimistic changes
// ============================================================

// Assign сажает участника на место: локальный список правится сразу,
// изменение встает в батч.
func (o *Overlay) Assign(seatID, participantID string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	old := o.participantAt(seatID)
	o.applyLocal(seatID, participantID)
	o.queue(backend.ReservationInput{
		EventID:          o.eventID,
		SeatID:           seatID,
		ParticipantID:    participantID,
		OldParticipantID: old,
	})
}

// Unassign снимает бронь с места (отсутствие участника = снятие).
func (o *Overlay) Unassign(seatID string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	old := o.participantAt(seatID)
	o.applyLocal(seatID, "")
	o.queue(backend.ReservationInput{
		EventID:          o.eventID,
		SeatID:           seatID,
		OldParticipantID: old,
	})
}

// queue ставит запись в батч, замещая прежнюю запись по тому же месту.
func (o *Overlay) queue(input backend.ReservationInput) {
	for i, p := range o.pending {
		if p.SeatID == input.SeatID {
			o.pending[i] = input
			return
		}
	}
	o.pending = append(o.pending, input)
}

func (o *Overlay) applyLocal(seatID, participantID string) {
	for i, r := range o.reservations {
		if r.SeatID == seatID {
			if participantID == "" {
				o.reservations = append(o.reservations[:i], o.reservations[i+1:]...)
				return
			}
			o.reservations[i].ParticipantID = participantID
			return
		}
	}
	if participantID != "" {
		o.reservations = append(o.reservations, backend.Reservation{
			EventID:       o.eventID,
			SeatID:        seatID,
			ParticipantID: participantID,
		})
	}
}

func (o *Overlay) participantAt(seatID string) string {
	for _, r := range o.reservations {
		if r.SeatID == seatID {
			return r.ParticipantID
		}
	}
	return ""
}

// ============================================================
// Batch lifecycle
// ============================================================

// SaveBatch отправляет весь батч одним запросом и замещает локальный
// список ответом сервера.
func (o *Overlay) SaveBatch(ctx context.Context, token string) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	if len(o.pending) == 0 {
		return nil
	}
	list, err := o.api.UpdateReservations(ctx, token, o.eventID, o.pending)
	if err != nil {
		return fmt.Errorf("save reservation batch: %w", err)
	}
	o.reservations = list
	o.pending = nil
	return nil
}

// Clear выбрасывает батч без обращения к серверу.
func (o *Overlay) Clear() {
	o.mu.Lock()
	o.pending = nil
	o.mu.Unlock()
}

// Cancel выбрасывает батч и перечитывает брони с сервера.
func (o *Overlay) Cancel(ctx context.Context, token string) error {
	o.mu.Lock()
	o.pending = nil
	o.mu.Unlock()
	return o.LoadReservations(ctx, token)
}

// Pending возвращает копию батча (для отображения и тестов).
func (o *Overlay) Pending() []backend.ReservationInput {
	o.mu.Lock()
	defer o.mu.Unlock()
	return append([]backend.ReservationInput(nil), o.pending...)
}

// Reservations возвращает копию локального списка броней.
func (o *Overlay) Reservations() []backend.Reservation {
	o.mu.Lock()
	defer o.mu.Unlock()
	return append([]backend.Reservation(nil), o.reservations...)
}

// ============================================================
// Canvas coloring
// ============================================================

// SeatFill красит места по состоянию брони вместо active/inactive.
func (o *Overlay) SeatFill(seat *model.Seat) string {
	if seat.Selected {
		return canvas.ColorSeatSelected
	}
	o.mu.Lock()
	defer o.mu.Unlock()
	for _, p := range o.pending {
		if p.SeatID == seat.ID {
			return ColorSeatPending
		}
	}
	if o.participantAt(seat.ID) != "" {
		return ColorSeatReserved
	}
	return ColorSeatFree
}
