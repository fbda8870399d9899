package canvas

import (
	"fmt"
	"math"

	"seatmap-service/internal/editor/model"
)

// ============================================================
// Scene projection
// ============================================================

const (
	SeatSize    = 16.0 // Сторона квадрата места
	sceneMargin = 40.0
	labelGap    = 8.0 // Зазор между подписью ряда и крайним местом
)

// Цвета проекции. Выделение перекрывает статус.
const (
	ColorSeatActive   = "#cfd8dc"
	ColorSeatInactive = "#ffb74d"
	ColorSeatSelected = "#1e88e5"
	ColorSeatStroke   = "#455a64"
	ColorLabel        = "#37474f"
	ColorLabelActive  = "#1e88e5"
	ColorGrid         = "#e0e0e0"
	ColorBackground   = "#fafafa"
)

type GridLine struct {
	X1 float64 `json:"x1"`
	Y1 float64 `json:"y1"`
	X2 float64 `json:"x2"`
	Y2 float64 `json:"y2"`
}

type RowLabel struct {
	RowID    string  `json:"rowId"`
	Text     string  `json:"text"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Width    float64 `json:"width"`
	Selected bool    `json:"selected"`
}

type SeatBox struct {
	SeatID      string  `json:"seatId"`
	RowID       string  `json:"rowId"`
	X           float64 `json:"x"`
	Y           float64 `json:"y"`
	Size        float64 `json:"size"`
	OrderNumber int     `json:"orderNumber"`
	Fill        string  `json:"fill"`
	Selected    bool    `json:"selected"`
	Tooltip     string  `json:"tooltip"`
}

// Scene — чистая проекция модели и выделения на плоскость рисования.
type Scene struct {
	Width  float64    `json:"width"`
	Height float64    `json:"height"`
	Zoom   float64    `json:"zoom"`
	Grid   []GridLine `json:"grid,omitempty"`
	Labels []RowLabel `json:"labels"`
	Seats  []SeatBox  `json:"seats"`
}

// Projector строит Scene. SeatFill можно подменить — оверлей резервирования
// красит места по статусу брони вместо active/inactive.
type Projector struct {
	GridUnit float64
	SeatFill func(*model.Seat) string
}

func NewProjector(gridUnit float64) *Projector {
	return &Projector{GridUnit: gridUnit, SeatFill: StatusFill}
}

// StatusFill — цвет места по статусу, выделение поверх.
func StatusFill(seat *model.Seat) string {
	if seat.Selected {
		return ColorSeatSelected
	}
	if seat.Status == model.SeatStatusInactive {
		return ColorSeatInactive
	}
	return ColorSeatActive
}

// Project собирает сцену. shifts — отрисовочные позиции текущего жеста
// перетаскивания (поверх позиций модели, модель не меняется).
func (p *Projector) Project(sec *model.Sector, vp Viewport, selectedRows []*model.Row, shifts map[string]model.Point) *Scene {
	fill := p.SeatFill
	if fill == nil {
		fill = StatusFill
	}

	scene := &Scene{Zoom: vp.Zoom}

	maxX, maxY := 0.0, 0.0
	rowSelected := make(map[string]bool, len(selectedRows))
	for _, row := range selectedRows {
		rowSelected[row.ID] = true
	}

	for _, row := range sec.Rows {
		minRowX := math.MaxFloat64
		rowY := 0.0

		for _, seat := range row.Seats {
			pos := seat.Position
			if shifted, ok := shifts[seat.ID]; ok {
				pos = shifted
			}

			scene.Seats = append(scene.Seats, SeatBox{
				SeatID:      seat.ID,
				RowID:       row.ID,
				X:           pos.X,
				Y:           pos.Y,
				Size:        SeatSize,
				OrderNumber: seat.OrderNumber,
				Fill:        fill(seat),
				Selected:    seat.Selected,
				Tooltip:     fmt.Sprintf("%s / %d", row.Name, seat.OrderNumber),
			})

			if pos.X < minRowX {
				minRowX = pos.X
				rowY = pos.Y
			}
			if pos.X+SeatSize > maxX {
				maxX = pos.X + SeatSize
			}
			if pos.Y+SeatSize > maxY {
				maxY = pos.Y + SeatSize
			}
		}

		if len(row.Seats) == 0 {
			continue
		}

		width := estimateLabelWidth(row.Name)
		scene.Labels = append(scene.Labels, RowLabel{
			RowID:    row.ID,
			Text:     row.Name,
			X:        minRowX - width - labelGap,
			Y:        rowY + SeatSize/2,
			Width:    width,
			Selected: rowSelected[row.ID],
		})
	}

	scene.Width = maxX + sceneMargin
	scene.Height = maxY + sceneMargin
	if scene.Width < sceneMargin*2 {
		scene.Width = sceneMargin * 2
	}
	if scene.Height < sceneMargin*2 {
		scene.Height = sceneMargin * 2
	}

	if vp.ShowGrid {
		scene.Grid = p.gridLines(scene.Width, scene.Height)
	}
	return scene
}

// estimateLabelWidth оценивает ширину подписи по длине текста.
func estimateLabelWidth(text string) float64 {
	return 10 + 7*float64(len([]rune(text)))
}

func (p *Projector) gridLines(width, height float64) []GridLine {
	step := p.GridUnit
	if step <= 0 {
		return nil
	}

	var lines []GridLine
	for x := 0.0; x <= width; x += step {
		lines = append(lines, GridLine{X1: x, Y1: 0, X2: x, Y2: height})
	}
	for y := 0.0; y <= height; y += step {
		lines = append(lines, GridLine{X1: 0, Y1: y, X2: width, Y2: y})
	}
	return lines
}
