package model

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// ============================================================
// Layout Model
// ============================================================

// Статусы мест.
const (
	SeatStatusActive   = "active"
	SeatStatusInactive = "inactive"
)

// tempIDPrefix помечает идентификаторы, созданные на клиенте и еще не сохраненные.
const tempIDPrefix = "tmp-"

type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type Seat struct {
	ID            string  `json:"id"`
	OrderNumber   int     `json:"orderNumber"`
	Position      Point   `json:"position"`
	Status        string  `json:"status"`
	PriceCategory string  `json:"priceCategory,omitempty"`

	// Транзиентное состояние редактора, не уходит в сохранение.
	Selected         bool  `json:"selected"`
	OriginalPosition Point `json:"-"`
}

type Row struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	OrderNumber int     `json:"orderNumber"`
	Seats       []*Seat `json:"seats"`
}

type Sector struct {
	ID            string  `json:"id"`
	VenueID       string  `json:"venueId"`
	Name          string  `json:"name"`
	OrderNumber   int     `json:"orderNumber"`
	Position      Point   `json:"position"`
	Rotation      float64 `json:"rotation"`
	PriceCategory string  `json:"priceCategory,omitempty"`
	Status        string  `json:"status"`
	Rows          []*Row  `json:"rows"`
}

// NewTempID выдает клиентский идентификатор для еще не сохраненной сущности.
func NewTempID() string {
	return tempIDPrefix + uuid.NewString()
}

// IsTempID проверяет, что идентификатор клиентский.
func IsTempID(id string) bool {
	return strings.HasPrefix(id, tempIDPrefix)
}

// ============================================================
// Load
// ============================================================

// Load нормализует сектор для сессии редактирования: проставляет временные
// идентификаторы, номера порядка и транзиентные поля.
func Load(s *Sector) (*Sector, error) {
	if s == nil {
		return nil, fmt.Errorf("sector is nil")
	}
	if s.ID == "" {
		return nil, fmt.Errorf("sector has no id, cannot be edited")
	}

	for i, row := range s.Rows {
		if row.ID == "" {
			row.ID = NewTempID()
		}
		if row.OrderNumber == 0 {
			row.OrderNumber = i + 1
		}
		for j, seat := range row.Seats {
			if seat.ID == "" {
				seat.ID = NewTempID()
			}
			if seat.OrderNumber == 0 {
				seat.OrderNumber = j + 1
			}
			if seat.Status == "" {
				seat.Status = SeatStatusActive
			}
			seat.Selected = false
			seat.OriginalPosition = seat.Position
		}
	}

	return s, nil
}

// ============================================================
// Structural operations
// ============================================================

func (s *Sector) AppendRow(row *Row) {
	if row == nil {
		return
	}
	s.Rows = append(s.Rows, row)
}

func (s *Sector) AppendRows(rows []*Row) {
	for _, row := range rows {
		s.AppendRow(row)
	}
}

func (s *Sector) AppendSeat(rowID string, seat *Seat) {
	row := s.RowByID(rowID)
	if row == nil || seat == nil {
		return
	}
	row.Seats = append(row.Seats, seat)
}

func (s *Sector) AppendSeats(rowID string, seats []*Seat) {
	for _, seat := range seats {
		s.AppendSeat(rowID, seat)
	}
}

// RemoveSeats убирает из всех рядов места, подходящие под предикат,
// и перенумеровывает оставшиеся. Возвращает число удаленных.
func (s *Sector) RemoveSeats(match func(*Seat) bool) int {
	removed := 0
	for _, row := range s.Rows {
		kept := row.Seats[:0]
		for _, seat := range row.Seats {
			if match(seat) {
				removed++
				continue
			}
			kept = append(kept, seat)
		}
		if len(kept) != len(row.Seats) {
			row.Seats = kept
			renumberSeats(row)
		}
	}
	return removed
}

// RemoveRow убирает ряд и перенумеровывает оставшиеся.
// Сообщает, был ли ряд на самом деле удален.
func (s *Sector) RemoveRow(rowID string) bool {
	kept := s.Rows[:0]
	for _, row := range s.Rows {
		if row.ID == rowID {
			continue
		}
		kept = append(kept, row)
	}
	if len(kept) == len(s.Rows) {
		return false
	}
	s.Rows = kept
	renumberRows(s)
	return true
}

// RemoveEmptyRows убирает все ряды без мест, возвращает их число.
func (s *Sector) RemoveEmptyRows() int {
	removed := 0
	kept := s.Rows[:0]
	for _, row := range s.Rows {
		if len(row.Seats) == 0 {
			removed++
			continue
		}
		kept = append(kept, row)
	}
	s.Rows = kept
	if removed > 0 {
		renumberRows(s)
	}
	return removed
}

func (s *Sector) UpdateSeatPosition(seatID string, x, y float64) {
	seat := s.SeatByID(seatID)
	if seat == nil {
		return
	}
	seat.Position = Point{X: x, Y: y}
}

func (s *Sector) RenameRow(rowID, name string) bool {
	row := s.RowByID(rowID)
	if row == nil {
		return false
	}
	row.Name = name
	return true
}

// ============================================================
// Lookups
// ============================================================

func (s *Sector) RowByID(rowID string) *Row {
	for _, row := range s.Rows {
		if row.ID == rowID {
			return row
		}
	}
	return nil
}

func (s *Sector) SeatByID(seatID string) *Seat {
	for _, row := range s.Rows {
		for _, seat := range row.Seats {
			if seat.ID == seatID {
				return seat
			}
		}
	}
	return nil
}

// RowOfSeat возвращает ряд, которому принадлежит место.
func (s *Sector) RowOfSeat(seatID string) *Row {
	for _, row := range s.Rows {
		for _, seat := range row.Seats {
			if seat.ID == seatID {
				return row
			}
		}
	}
	return nil
}

// SelectedSeats возвращает все места с выставленным флагом Selected.
func (s *Sector) SelectedSeats() []*Seat {
	var out []*Seat
	for _, row := range s.Rows {
		for _, seat := range row.Seats {
			if seat.Selected {
				out = append(out, seat)
			}
		}
	}
	return out
}

// MaxRowOrder возвращает максимальный номер ряда (0 для пустого сектора).
func (s *Sector) MaxRowOrder() int {
	max := 0
	for _, row := range s.Rows {
		if row.OrderNumber > max {
			max = row.OrderNumber
		}
	}
	return max
}

// ============================================================
// Renumbering
// ============================================================

func renumberRows(s *Sector) {
	for i, row := range s.Rows {
		row.OrderNumber = i + 1
	}
}

func renumberSeats(row *Row) {
	for i, seat := range row.Seats {
		seat.OrderNumber = i + 1
	}
}
