package geometry

import (
	"math"

	"seatmap-service/internal/editor/model"
)

// ============================================================
// Layout Generator
// ============================================================

const (
	DefaultGridUnit = 20.0 // Шаг сетки канваса
	defaultOriginX  = 60.0 // Левое поле для первого ряда
	defaultOriginY  = 60.0 // Верхнее поле для первого ряда
)

// Generator вычисляет позиции новых рядов и мест так, чтобы они
// визуально продолжали существующую раскладку сектора.
type Generator struct {
	gridUnit float64
	snap     func(model.Point) model.Point
}

func New(gridUnit float64) *Generator {
	if gridUnit <= 0 {
		gridUnit = DefaultGridUnit
	}
	g := &Generator{gridUnit: gridUnit}
	g.snap = func(p model.Point) model.Point { return p }
	return g
}

func (g *Generator) GridUnit() float64 {
	return g.gridUnit
}

// SetSnap задает функцию привязки позиций (например, к сетке). nil сбрасывает.
func (g *Generator) SetSnap(f func(model.Point) model.Point) {
	if f == nil {
		g.snap = func(p model.Point) model.Point { return p }
		return
	}
	g.snap = f
}

// Snap округляет координаты до ближайшего узла сетки, по каждой оси отдельно.
func (g *Generator) Snap(p model.Point) model.Point {
	return model.Point{
		X: math.Round(p.X/g.gridUnit) * g.gridUnit,
		Y: math.Round(p.Y/g.gridUnit) * g.gridUnit,
	}
}

// ============================================================
// Spacing inference
// ============================================================

// rowBasis — выведенные из текущей раскладки параметры для новых рядов.
type rowBasis struct {
	baseX       float64
	baseY       float64
	seatSpacing float64
	rowSpacing  float64
}

// inferBasis читает раскладку до вставки и выводит базовую точку и шаги.
// Ветвление по числу рядов (0 / 1 / >=2) намеренно разное.
func (g *Generator) inferBasis(sec *model.Sector) rowBasis {
	basis := rowBasis{
		baseX:       defaultOriginX,
		baseY:       defaultOriginY,
		seatSpacing: g.gridUnit,
		rowSpacing:  2 * g.gridUnit,
	}

	rows := rowsWithSeats(sec)
	if len(rows) == 0 {
		return basis
	}

	last := rows[len(rows)-1]
	basis.baseX = last.Seats[0].Position.X
	if len(last.Seats) >= 2 {
		if dx := last.Seats[1].Position.X - last.Seats[0].Position.X; dx != 0 {
			basis.seatSpacing = dx
		}
	}

	if len(rows) == 1 {
		basis.baseY = last.Seats[0].Position.Y + 2*g.gridUnit
		return basis
	}

	prev := rows[len(rows)-2]
	dy := last.Seats[0].Position.Y - prev.Seats[0].Position.Y
	if math.Abs(dy) < 2*g.gridUnit {
		if dy < 0 {
			dy = -2 * g.gridUnit
		} else {
			dy = 2 * g.gridUnit
		}
	}
	basis.rowSpacing = dy
	basis.baseY = last.Seats[0].Position.Y + dy
	return basis
}

func rowsWithSeats(sec *model.Sector) []*model.Row {
	var out []*model.Row
	for _, row := range sec.Rows {
		if len(row.Seats) > 0 {
			out = append(out, row)
		}
	}
	return out
}

// ============================================================
// Row / seat creation
// ============================================================

// NewRow строит один ряд с заданным именем и числом мест,
// продолжая раскладку сектора.
func (g *Generator) NewRow(sec *model.Sector, name string, seatCount int) *model.Row {
	basis := g.inferBasis(sec)
	return g.buildRow(sec.MaxRowOrder()+1, name, seatCount, basis, 0)
}

// NewRows строит пакет рядов. Параметры раскладки выводятся один раз,
// до вставки; имена рядов — римские цифры их номеров.
func (g *Generator) NewRows(sec *model.Sector, rowCount, seatCount int) []*model.Row {
	basis := g.inferBasis(sec)
	nextOrder := sec.MaxRowOrder() + 1

	rows := make([]*model.Row, 0, rowCount)
	for i := 0; i < rowCount; i++ {
		order := nextOrder + i
		rows = append(rows, g.buildRow(order, Roman(order), seatCount, basis, i))
	}
	return rows
}

func (g *Generator) buildRow(order int, name string, seatCount int, basis rowBasis, rowIndex int) *model.Row {
	row := &model.Row{
		ID:          model.NewTempID(),
		Name:        name,
		OrderNumber: order,
	}

	y := basis.baseY + float64(rowIndex)*basis.rowSpacing
	for i := 0; i < seatCount; i++ {
		pos := g.snap(model.Point{X: basis.baseX + float64(i)*basis.seatSpacing, Y: y})
		row.Seats = append(row.Seats, &model.Seat{
			ID:               model.NewTempID(),
			OrderNumber:      i + 1,
			Position:         pos,
			Status:           model.SeatStatusActive,
			OriginalPosition: pos,
		})
	}
	return row
}

// ExtendRow строит места в хвост существующего ряда, с его собственным шагом.
func (g *Generator) ExtendRow(row *model.Row, count int) []*model.Seat {
	if row == nil || count <= 0 {
		return nil
	}

	spacing := g.gridUnit
	baseX := defaultOriginX
	baseY := defaultOriginY
	nextOrder := 1

	if n := len(row.Seats); n > 0 {
		lastSeat := row.Seats[n-1]
		baseX = lastSeat.Position.X
		baseY = lastSeat.Position.Y
		nextOrder = lastSeat.OrderNumber + 1
		if n >= 2 {
			if dx := lastSeat.Position.X - row.Seats[n-2].Position.X; dx != 0 {
				spacing = dx
			}
		}
		baseX += spacing
	}

	seats := make([]*model.Seat, 0, count)
	for i := 0; i < count; i++ {
		pos := g.snap(model.Point{X: baseX + float64(i)*spacing, Y: baseY})
		seats = append(seats, &model.Seat{
			ID:               model.NewTempID(),
			OrderNumber:      nextOrder + i,
			Position:         pos,
			Status:           model.SeatStatusActive,
			OriginalPosition: pos,
		})
	}
	return seats
}
