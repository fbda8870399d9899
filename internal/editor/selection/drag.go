package selection

import (
	"seatmap-service/internal/editor/model"
)

// ============================================================
// Drag gesture
// ============================================================

// dragState — снимок одного жеста перетаскивания.
type dragState struct {
	seatID string
	multi  bool
	start  map[string]model.Point // seat id -> позиция на момент dragstart
}

// StartDrag фиксирует стартовые позиции. При выделении из нескольких мест
// и выделенном перетаскиваемом месте жест двигает всю группу.
func (c *Controller) StartDrag(seatID string) {
	seat := c.sector.SeatByID(seatID)
	if seat == nil {
		return
	}

	d := &dragState{
		seatID: seatID,
		multi:  seat.Selected && len(c.seats) > 1,
		start:  map[string]model.Point{seatID: seat.Position},
	}
	if d.multi {
		for _, s := range c.seats {
			d.start[s.ID] = s.Position
		}
	}
	c.drag = d
}

// MoveDrag возвращает отрисовочные позиции для текущей точки жеста.
// Модель не трогается: только снимок и привязка к сетке.
func (c *Controller) MoveDrag(x, y float64) map[string]model.Point {
	shifts := c.dragPositions(x, y)
	return shifts
}

// EndDrag коммитит финальные позиции в модель и очищает снимок жеста.
// Возвращает true, если модель изменилась.
func (c *Controller) EndDrag(x, y float64) bool {
	if c.drag == nil {
		return false
	}
	final := c.dragPositions(x, y)
	for id, pos := range final {
		c.sector.UpdateSeatPosition(id, pos.X, pos.Y)
	}
	c.drag = nil
	return len(final) > 0
}

// Dragging сообщает, идет ли сейчас жест.
func (c *Controller) Dragging() bool {
	return c.drag != nil
}

func (c *Controller) dragPositions(x, y float64) map[string]model.Point {
	if c.drag == nil {
		return nil
	}
	origin, ok := c.drag.start[c.drag.seatID]
	if !ok {
		return nil
	}

	dx := x - origin.X
	dy := y - origin.Y

	out := make(map[string]model.Point, len(c.drag.start))
	if !c.drag.multi {
		out[c.drag.seatID] = c.snap(model.Point{X: x, Y: y})
		return out
	}
	for id, start := range c.drag.start {
		out[id] = c.snap(model.Point{X: start.X + dx, Y: start.Y + dy})
	}
	return out
}
