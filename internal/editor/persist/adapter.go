package persist

import (
	"context"
	"fmt"

	"seatmap-service/internal/backend"
	"seatmap-service/internal/editor/model"
)

// ============================================================
// Persistence Adapter
// ============================================================

// Adapter переводит модель редактора в запросы сохранения и обратно.
// Сохранение — всегда снимок целого сектора, без инкрементов.
type Adapter struct {
	api *backend.Client
}

func New(api *backend.Client) *Adapter {
	return &Adapter{api: api}
}

// Save сохраняет сектор двумя шагами: метаданные, затем полное дерево мест.
// Падение первого шага отменяет второй; правки остаются в модели у вызывающего.
// При успехе сектор перечитывается с сервера — клиент и сервер сходятся
// в идентификаторах и номерах.
func (a *Adapter) Save(ctx context.Context, token string, sec *model.Sector) (*model.Sector, error) {
	if sec == nil || sec.ID == "" || model.IsTempID(sec.ID) {
		return nil, fmt.Errorf("sector has no persistent id")
	}
	return a.SaveSnapshot(ctx, token, sec.VenueID, sec.ID, EncodeSectorUpdate(sec), EncodeSeatTree(sec))
}

// SaveSnapshot сохраняет уже закодированный снимок. Снимок снимается
// под блокировкой сессии, сетевые шаги идут без нее.
func (a *Adapter) SaveSnapshot(ctx context.Context, token, venueID, sectorID string, meta backend.SectorUpdate, tree backend.SeatTreeUpdate) (*model.Sector, error) {
	if _, err := a.api.UpdateSector(ctx, token, venueID, sectorID, meta); err != nil {
		return nil, fmt.Errorf("save sector metadata: %w", err)
	}

	if _, err := a.api.UpdateSectorSeats(ctx, token, venueID, sectorID, tree); err != nil {
		// Метаданные уже на сервере; частичный коммит принимаем, не откатываем.
		return nil, fmt.Errorf("save seat tree: %w", err)
	}

	return a.Reload(ctx, token, venueID, sectorID)
}

// Reload строит свежую модель из ответа сервера. Используется и для cancel.
func (a *Adapter) Reload(ctx context.Context, token, venueID, sectorID string) (*model.Sector, error) {
	wire, err := a.api.GetSector(ctx, token, venueID, sectorID)
	if err != nil {
		return nil, fmt.Errorf("reload sector: %w", err)
	}
	return Decode(venueID, wire)
}

// ============================================================
// Wire -> model
// ============================================================

// Decode проецирует wire-сектор в модель редактора и нормализует ее.
// Транзиентные поля редактора в wire-типах не существуют.
func Decode(venueID string, wire *backend.Sector) (*model.Sector, error) {
	if wire == nil {
		return nil, fmt.Errorf("sector payload is nil")
	}

	sec := &model.Sector{
		ID:            wire.SectorID,
		VenueID:       venueID,
		Name:          wire.Name,
		OrderNumber:   wire.OrderNumber,
		Position:      model.Point{X: wire.Position.X, Y: wire.Position.Y},
		Rotation:      wire.Rotation,
		PriceCategory: wire.PriceCategory,
		Status:        wire.Status,
	}

	for _, row := range wire.Rows {
		r := &model.Row{
			ID:          row.SeatRowID,
			Name:        row.Name,
			OrderNumber: row.OrderNumber,
		}
		for _, seat := range row.Seats {
			r.Seats = append(r.Seats, &model.Seat{
				ID:            seat.SeatID,
				OrderNumber:   seat.OrderNumber,
				Position:      model.Point{X: seat.Position.X, Y: seat.Position.Y},
				Status:        seat.Status,
				PriceCategory: seat.PriceCategory,
			})
		}
		sec.Rows = append(sec.Rows, r)
	}

	return model.Load(sec)
}

// ============================================================
// Model -> wire
// ============================================================

// EncodeSectorUpdate собирает шаг метаданных.
func EncodeSectorUpdate(sec *model.Sector) backend.SectorUpdate {
	return backend.SectorUpdate{
		Name:          sec.Name,
		OrderNumber:   sec.OrderNumber,
		Position:      backend.Position{X: sec.Position.X, Y: sec.Position.Y},
		Rotation:      sec.Rotation,
		PriceCategory: sec.PriceCategory,
		Status:        sec.Status,
	}
}

// EncodeSeatTree собирает полное дерево. Временные идентификаторы
// не передаются — пустой id читается сервером как «создать».
func EncodeSeatTree(sec *model.Sector) backend.SeatTreeUpdate {
	upd := backend.SeatTreeUpdate{Rows: make([]backend.SeatRow, 0, len(sec.Rows))}

	for _, row := range sec.Rows {
		wr := backend.SeatRow{
			SeatRowID:   persistentID(row.ID),
			Name:        row.Name,
			OrderNumber: row.OrderNumber,
			Seats:       make([]backend.Seat, 0, len(row.Seats)),
		}
		for _, seat := range row.Seats {
			wr.Seats = append(wr.Seats, backend.Seat{
				SeatID:        persistentID(seat.ID),
				OrderNumber:   seat.OrderNumber,
				Position:      backend.Position{X: seat.Position.X, Y: seat.Position.Y},
				PriceCategory: seat.PriceCategory,
				Status:        seat.Status,
			})
		}
		upd.Rows = append(upd.Rows, wr)
	}
	return upd
}

func persistentID(id string) string {
	if model.IsTempID(id) {
		return ""
	}
	return id
}
