package backend

// ============================================================
// Wire DTOs (ProEventIQ REST API)
// ============================================================

type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type Venue struct {
	VenueID     string   `json:"venueId"`
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Sectors     []Sector `json:"sectors"`
}

type Sector struct {
	SectorID      string    `json:"sectorId,omitempty"`
	Name          string    `json:"name"`
	OrderNumber   int       `json:"orderNumber"`
	Position      Position  `json:"position"`
	Rotation      float64   `json:"rotation"`
	PriceCategory string    `json:"priceCategory,omitempty"`
	Status        string    `json:"status"`
	Rows          []SeatRow `json:"rows"`
}

type SeatRow struct {
	// Пустой SeatRowID означает «создать новый ряд».
	SeatRowID   string `json:"seatRowId,omitempty"`
	Name        string `json:"name"`
	OrderNumber int    `json:"orderNumber"`
	Seats       []Seat `json:"seats"`
}

type Seat struct {
	// Пустой SeatID означает «создать новое место».
	SeatID        string   `json:"seatId,omitempty"`
	OrderNumber   int      `json:"orderNumber"`
	Position      Position `json:"position"`
	PriceCategory string   `json:"priceCategory,omitempty"`
	Status        string   `json:"status"`
}

// SectorUpdate — метаданные сектора, первый шаг сохранения.
type SectorUpdate struct {
	Name          string   `json:"name"`
	OrderNumber   int      `json:"orderNumber"`
	Position      Position `json:"position"`
	Rotation      float64  `json:"rotation"`
	PriceCategory string   `json:"priceCategory,omitempty"`
	Status        string   `json:"status"`
}

// SeatTreeUpdate — полное дерево рядов и мест, второй шаг сохранения.
type SeatTreeUpdate struct {
	Rows []SeatRow `json:"rows"`
}

type Reservation struct {
	ReservationID string `json:"reservationId,omitempty"`
	EventID       string `json:"eventId"`
	SeatID        string `json:"seatId"`
	ParticipantID string `json:"participantId,omitempty"`
}

// ReservationInput — одна запись батча изменений брони.
// Пустой ParticipantID означает снятие брони с места.
type ReservationInput struct {
	ID               string `json:"id,omitempty"`
	EventID          string `json:"eventId"`
	SeatID           string `json:"seatId"`
	ParticipantID    string `json:"participantId,omitempty"`
	OldParticipantID string `json:"oldParticipantId,omitempty"`
}

type Participant struct {
	ParticipantID string `json:"participantId"`
	FirstName     string `json:"firstName"`
	LastName      string `json:"lastName"`
	Email         string `json:"email,omitempty"`
}
