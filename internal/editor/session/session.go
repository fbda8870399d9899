package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"seatmap-service/internal/editor/canvas"
	"seatmap-service/internal/editor/geometry"
	"seatmap-service/internal/editor/model"
	"seatmap-service/internal/editor/persist"
	"seatmap-service/internal/editor/reservation"
	"seatmap-service/internal/editor/selection"
)

// ============================================================
// Editor Session
// ============================================================

// Ошибки, по которым ветвятся обработчики.
var (
	ErrSaveInFlight = errors.New("save already in flight")
	ErrNotFound     = errors.New("session not found")
)

// Режимы сессии: редактор раскладки или оверлей рассадки.
const (
	ModeLayout      = "layout"
	ModeReservation = "reservation"
)

// Session — одна сессия редактирования одного сектора. Модель принадлежит
// сессии эксклюзивно; все мутации сериализуются мьютексом сессии.
type Session struct {
	ID       string
	Mode     string
	VenueID  string
	SectorID string
	EventID  string

	mu        sync.Mutex
	sector    *model.Sector
	sel       *selection.Controller
	viewport  canvas.Viewport
	gen       *geometry.Generator
	projector *canvas.Projector
	adapter   *persist.Adapter
	overlay   *reservation.Overlay

	shifts map[string]model.Point // отрисовочные позиции текущего жеста
	dirty  bool
	saving bool

	lastUsed time.Time
}

func newSession(id, mode string, sec *model.Sector, adapter *persist.Adapter, gridUnit float64) *Session {
	s := &Session{
		ID:        id,
		Mode:      mode,
		VenueID:   sec.VenueID,
		SectorID:  sec.ID,
		sector:    sec,
		sel:       selection.New(sec),
		viewport:  canvas.DefaultViewport(),
		gen:       geometry.New(gridUnit),
		projector: canvas.NewProjector(gridUnit),
		adapter:   adapter,
		lastUsed:  time.Now(),
	}
	s.applySnapMode()
	return s
}

func (s *Session) touch() { s.lastUsed = time.Now() }

// applySnapMode включает или отключает привязку к сетке в генераторе
// и в контроллере перетаскивания. Вызывается под мьютексом.
func (s *Session) applySnapMode() {
	if s.viewport.SnapToGrid {
		s.gen.SetSnap(s.gen.Snap)
		s.sel.SetSnap(s.gen.Snap)
		return
	}
	s.gen.SetSnap(nil)
	s.sel.SetSnap(nil)
}

// ============================================================
// Input events
// ============================================================

func (s *Session) SeatClick(seatID string, ctrl, shift bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	s.sel.SetCtrl(ctrl)
	s.sel.SetShift(shift)
	s.sel.ClickSeat(seatID)
}

func (s *Session) RowClick(rowID string, ctrl bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	s.sel.SetCtrl(ctrl)
	s.sel.ClickRow(rowID)
}

// RowContextClick выделяет ряд эксклюзивно и возвращает его текущее имя
// для формы переименования.
func (s *Session) RowContextClick(rowID string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	row := s.sel.ContextClickRow(rowID)
	if row == nil {
		return "", false
	}
	return row.Name, true
}

// Key обрабатывает клавиатуру: модификаторы, Escape, Delete.
// Возвращает число удаленных мест (для Delete).
func (s *Session) Key(key string, down bool) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()

	switch key {
	case "Control":
		s.sel.SetCtrl(down)
	case "Shift":
		s.sel.SetShift(down)
	case "Escape":
		if down {
			s.sel.Escape()
		}
	case "Delete":
		if down {
			removed := s.sel.DeleteSelected()
			if removed > 0 {
				s.dirty = true
			}
			return removed
		}
	}
	return 0
}

// ============================================================
// Drag
// ============================================================

func (s *Session) DragStart(seatID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	s.sel.StartDrag(seatID)
}

func (s *Session) DragMove(x, y float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	if shifts := s.sel.MoveDrag(x, y); shifts != nil {
		s.shifts = shifts
	}
}

func (s *Session) DragEnd(x, y float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	if s.sel.EndDrag(x, y) {
		s.dirty = true
	}
	s.shifts = nil
}

// ============================================================
// Structural operations
// ============================================================

func (s *Session) AddRow(name string, seatCount int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	s.sector.AppendRow(s.gen.NewRow(s.sector, name, seatCount))
	s.dirty = true
}

func (s *Session) AddRows(rowCount, seatCount int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	s.sector.AppendRows(s.gen.NewRows(s.sector, rowCount, seatCount))
	s.dirty = true
}

func (s *Session) AddSeats(rowID string, count int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	row := s.sector.RowByID(rowID)
	if row == nil {
		return
	}
	s.sector.AppendSeats(rowID, s.gen.ExtendRow(row, count))
	s.dirty = true
}

// DeleteSelection удаляет выделенные места, возвращает их число.
func (s *Session) DeleteSelection() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	removed := s.sel.DeleteSelected()
	if removed > 0 {
		s.dirty = true
	}
	return removed
}

func (s *Session) DeleteRow(rowID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	if s.sector.RemoveRow(rowID) {
		s.dirty = true
	}
}

func (s *Session) RemoveEmptyRows() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	removed := s.sector.RemoveEmptyRows()
	if removed > 0 {
		s.dirty = true
	}
	return removed
}

func (s *Session) RenameRow(rowID, name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	if s.sector.RenameRow(rowID, name) {
		s.dirty = true
	}
}

// ============================================================
// Viewport
// ============================================================

func (s *Session) ZoomIn()    { s.withViewport(func(v *canvas.Viewport) { v.ZoomIn() }) }
func (s *Session) ZoomOut()   { s.withViewport(func(v *canvas.Viewport) { v.ZoomOut() }) }
func (s *Session) ZoomReset() { s.withViewport(func(v *canvas.Viewport) { v.ZoomReset() }) }

func (s *Session) Wheel(delta float64) {
	s.withViewport(func(v *canvas.Viewport) { v.ApplyWheel(delta) })
}

func (s *Session) ToggleGrid() {
	s.withViewport(func(v *canvas.Viewport) { v.ShowGrid = !v.ShowGrid })
}

func (s *Session) ToggleSnap() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	s.viewport.SnapToGrid = !s.viewport.SnapToGrid
	s.applySnapMode()
}

func (s *Session) withViewport(f func(*canvas.Viewport)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	f(&s.viewport)
}

// Viewport возвращает копию состояния отображения.
func (s *Session) Viewport() canvas.Viewport {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.viewport
}

// TooltipAnchor переводит экранную точку в координаты сектора текущего зума.
func (s *Session) TooltipAnchor(p model.Point) model.Point {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.viewport.ToCanvas(p)
}

// ============================================================
// Rendering
// ============================================================

// Scene проецирует текущее состояние в сцену.
func (s *Session) Scene() *canvas.Scene {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	if s.overlay != nil {
		s.projector.SeatFill = s.overlay.SeatFill
	}
	return s.projector.Project(s.sector, s.viewport, s.sel.SelectedRows(), s.shifts)
}

// RenderSVG отдает сцену как SVG.
func (s *Session) RenderSVG() (string, error) {
	return canvas.RenderSVG(s.Scene())
}

// ============================================================
// Save / Cancel
// ============================================================

// Save сохраняет сектор. Повторный Save при активном — no-op
// (ErrSaveInFlight). Снимок кодируется под блокировкой, сеть — без нее;
// при ошибке правки и флаг dirty остаются.
func (s *Session) Save(ctx context.Context, token string) error {
	s.mu.Lock()
	if s.saving {
		s.mu.Unlock()
		return ErrSaveInFlight
	}
	if s.sector.ID == "" || model.IsTempID(s.sector.ID) {
		s.mu.Unlock()
		return fmt.Errorf("sector has no persistent id")
	}
	meta := persist.EncodeSectorUpdate(s.sector)
	tree := persist.EncodeSeatTree(s.sector)
	venueID, sectorID := s.VenueID, s.SectorID
	s.saving = true
	s.mu.Unlock()

	fresh, err := s.adapter.SaveSnapshot(ctx, token, venueID, sectorID, meta, tree)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.saving = false
	if err != nil {
		return err
	}
	s.replaceSector(fresh)
	return nil
}

// Cancel отбрасывает правки и перечитывает сектор с сервера.
func (s *Session) Cancel(ctx context.Context, token string) error {
	s.mu.Lock()
	venueID, sectorID := s.VenueID, s.SectorID
	s.mu.Unlock()

	fresh, err := s.adapter.Reload(ctx, token, venueID, sectorID)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.replaceSector(fresh)
	return nil
}

// replaceSector ставит свежую модель и сбрасывает производное состояние.
// Ссылки рендера на прежние сущности погибают вместе с моделью.
func (s *Session) replaceSector(sec *model.Sector) {
	s.sector = sec
	s.sel.Rebind(sec)
	s.shifts = nil
	s.dirty = false
}

// Dirty сообщает о несохраненных правках.
func (s *Session) Dirty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dirty
}

// Close сбрасывает модификаторы и выделение (teardown-контракт).
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sel.Reset()
	s.shifts = nil
}

// ============================================================
// Snapshots (drafts)
// ============================================================

// Snapshot сериализует дерево сектора для черновика.
func (s *Session) Snapshot() ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return json.Marshal(s.sector)
}

// RestoreSnapshot замещает модель деревом из черновика.
func (s *Session) RestoreSnapshot(data []byte) error {
	var sec model.Sector
	if err := json.Unmarshal(data, &sec); err != nil {
		return fmt.Errorf("decode draft: %w", err)
	}
	loaded, err := model.Load(&sec)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.replaceSector(loaded)
	s.dirty = true
	return nil
}

// ============================================================
// Reservation overlay access
// ============================================================

// AttachOverlay включает режим рассадки поверх модели.
func (s *Session) AttachOverlay(o *reservation.Overlay) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.overlay = o
}

// Overlay возвращает оверлей рассадки (nil для layout-сессий).
func (s *Session) Overlay() *reservation.Overlay {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.overlay
}

// SectorState возвращает копию-снимок состояния для ответов API.
func (s *Session) SectorState() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return State{
		SessionID: s.ID,
		Mode:      s.Mode,
		VenueID:   s.VenueID,
		SectorID:  s.SectorID,
		EventID:   s.EventID,
		Sector:    s.sector,
		Viewport:  s.viewport,
		Dirty:     s.dirty,
		Saving:    s.saving,
	}
}

// State — ответ API о сессии.
type State struct {
	SessionID string          `json:"sessionId"`
	Mode      string          `json:"mode"`
	VenueID   string          `json:"venueId"`
	SectorID  string          `json:"sectorId"`
	EventID   string          `json:"eventId,omitempty"`
	Sector    *model.Sector   `json:"sector"`
	Viewport  canvas.Viewport `json:"viewport"`
	Dirty     bool            `json:"dirty"`
	Saving    bool            `json:"saving"`
}
