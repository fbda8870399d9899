package canvas

import "seatmap-service/internal/editor/model"

// ============================================================
// Viewport
// ============================================================

const (
	MinZoom  = 0.3
	MaxZoom  = 3.0
	ZoomStep = 1.1 // Множитель шага колеса мыши
)

// Viewport — состояние отображения: зум и флаги сетки.
type Viewport struct {
	Zoom       float64 `json:"zoom"`
	ShowGrid   bool    `json:"showGrid"`
	SnapToGrid bool    `json:"snapToGrid"`
}

func DefaultViewport() Viewport {
	return Viewport{Zoom: 1.0, ShowGrid: true, SnapToGrid: true}
}

func (v *Viewport) ZoomIn()    { v.setZoom(v.Zoom * ZoomStep) }
func (v *Viewport) ZoomOut()   { v.setZoom(v.Zoom / ZoomStep) }
func (v *Viewport) ZoomReset() { v.Zoom = 1.0 }

// ApplyWheel меняет зум по знаку дельты колеса.
func (v *Viewport) ApplyWheel(delta float64) {
	if delta == 0 {
		return
	}
	if delta > 0 {
		v.ZoomIn()
		return
	}
	v.ZoomOut()
}

func (v *Viewport) setZoom(z float64) {
	if z < MinZoom {
		z = MinZoom
	}
	if z > MaxZoom {
		z = MaxZoom
	}
	v.Zoom = z
}

// ToCanvas переводит экранные координаты в координаты сектора.
// Деление на зум держит тултип у места под курсором.
func (v Viewport) ToCanvas(p model.Point) model.Point {
	if v.Zoom == 0 {
		return p
	}
	return model.Point{X: p.X / v.Zoom, Y: p.Y / v.Zoom}
}
