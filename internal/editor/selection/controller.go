package selection

import (
	"seatmap-service/internal/editor/model"
)

// ============================================================
// Selection Controller
// ============================================================

// Controller переводит события ввода в состояние выделения.
// Хранит два упорядоченных набора: места (в порядке кликов) и ряды.
type Controller struct {
	sector *model.Sector

	seats []*model.Seat
	rows  []*model.Row

	ctrlActive  bool
	shiftActive bool

	drag *dragState
	snap func(model.Point) model.Point
}

func New(sector *model.Sector) *Controller {
	return &Controller{
		sector: sector,
		snap:   func(p model.Point) model.Point { return p },
	}
}

// SetSnap задает привязку позиций при перетаскивании. nil сбрасывает.
func (c *Controller) SetSnap(f func(model.Point) model.Point) {
	if f == nil {
		c.snap = func(p model.Point) model.Point { return p }
		return
	}
	c.snap = f
}

// Rebind переключает контроллер на новый экземпляр модели (после reload).
func (c *Controller) Rebind(sector *model.Sector) {
	c.sector = sector
	c.seats = nil
	c.rows = nil
	c.drag = nil
}

// ============================================================
// Modifier keys
// ============================================================

func (c *Controller) SetCtrl(down bool)  { c.ctrlActive = down }
func (c *Controller) SetShift(down bool) { c.shiftActive = down }
func (c *Controller) CtrlActive() bool   { return c.ctrlActive }
func (c *Controller) ShiftActive() bool  { return c.shiftActive }

// Reset сбрасывает модификаторы и выделение. Вызывается при закрытии сессии.
func (c *Controller) Reset() {
	c.ctrlActive = false
	c.shiftActive = false
	c.ClearAll()
}

// ============================================================
// Seat clicks
// ============================================================

// ClickSeat применяет таблицу переходов выделения для клика по месту.
func (c *Controller) ClickSeat(seatID string) {
	seat := c.sector.SeatByID(seatID)
	if seat == nil {
		return
	}

	switch {
	case c.shiftActive && len(c.seats) > 0:
		c.rangeSelect(c.seats[0], seat)
	case c.ctrlActive:
		if seat.Selected {
			c.deselectSeat(seat)
		} else {
			c.selectSeat(seat)
		}
	default:
		c.ClearAll()
		c.selectSeat(seat)
	}
}

// rangeSelect выделяет диапазон от якоря (первого выделенного места) до цели.
// В одном ряду — по индексам, между рядами — колонкой по номеру места.
// Разные номера при выборе колонки намеренно дают no-op.
func (c *Controller) rangeSelect(anchor, target *model.Seat) {
	anchorRow := c.sector.RowOfSeat(anchor.ID)
	targetRow := c.sector.RowOfSeat(target.ID)
	if anchorRow == nil || targetRow == nil {
		return
	}

	if anchorRow.ID == targetRow.ID {
		i := seatIndex(anchorRow, anchor.ID)
		j := seatIndex(anchorRow, target.ID)
		if i < 0 || j < 0 {
			return
		}
		if i > j {
			i, j = j, i
		}
		c.clearSeats()
		for _, seat := range anchorRow.Seats[i : j+1] {
			c.selectSeat(seat)
		}
		return
	}

	if anchor.OrderNumber != target.OrderNumber {
		return
	}
	c.clearSeats()
	for _, row := range c.sector.Rows {
		for _, seat := range row.Seats {
			if seat.OrderNumber == anchor.OrderNumber {
				c.selectSeat(seat)
			}
		}
	}
}

func seatIndex(row *model.Row, seatID string) int {
	for i, seat := range row.Seats {
		if seat.ID == seatID {
			return i
		}
	}
	return -1
}

// ============================================================
// Row clicks
// ============================================================

// ClickRow переключает ряд в наборе выделенных рядов.
// Без ctrl набор сперва очищается.
func (c *Controller) ClickRow(rowID string) {
	row := c.sector.RowByID(rowID)
	if row == nil {
		return
	}

	selected := c.rowSelected(rowID)
	if !c.ctrlActive {
		c.rows = nil
		selected = false
	}

	if selected {
		kept := c.rows[:0]
		for _, r := range c.rows {
			if r.ID != rowID {
				kept = append(kept, r)
			}
		}
		c.rows = kept
		return
	}
	c.rows = append(c.rows, row)
}

// ContextClickRow выделяет ряд эксклюзивно (если еще не выделен)
// перед открытием переименования.
func (c *Controller) ContextClickRow(rowID string) *model.Row {
	row := c.sector.RowByID(rowID)
	if row == nil {
		return nil
	}
	if !c.rowSelected(rowID) {
		c.rows = []*model.Row{row}
	}
	return row
}

func (c *Controller) rowSelected(rowID string) bool {
	for _, r := range c.rows {
		if r.ID == rowID {
			return true
		}
	}
	return false
}

// ============================================================
// Keyboard
// ============================================================

// Escape снимает все выделение.
func (c *Controller) Escape() {
	c.ClearAll()
}

// DeleteSelected удаляет выделенные места из модели, возвращает их число.
func (c *Controller) DeleteSelected() int {
	if len(c.seats) == 0 {
		return 0
	}
	removed := c.sector.RemoveSeats(func(s *model.Seat) bool { return s.Selected })
	c.seats = nil
	return removed
}

// ============================================================
// Selection sets
// ============================================================

func (c *Controller) selectSeat(seat *model.Seat) {
	if seat.Selected {
		return
	}
	seat.Selected = true
	c.seats = append(c.seats, seat)
}

func (c *Controller) deselectSeat(seat *model.Seat) {
	seat.Selected = false
	kept := c.seats[:0]
	for _, s := range c.seats {
		if s.ID != seat.ID {
			kept = append(kept, s)
		}
	}
	c.seats = kept
}

func (c *Controller) clearSeats() {
	for _, seat := range c.seats {
		seat.Selected = false
	}
	c.seats = nil
}

// ClearAll очищает оба набора выделения.
func (c *Controller) ClearAll() {
	c.clearSeats()
	c.rows = nil
}

// SelectedSeats возвращает выделенные места в порядке кликов.
func (c *Controller) SelectedSeats() []*model.Seat {
	return append([]*model.Seat(nil), c.seats...)
}

// SelectedRows возвращает выделенные ряды.
func (c *Controller) SelectedRows() []*model.Row {
	return append([]*model.Row(nil), c.rows...)
}
