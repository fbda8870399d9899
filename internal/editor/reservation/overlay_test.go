package reservation

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"
	"time"

	"seatmap-service/internal/backend"
	"seatmap-service/internal/editor/canvas"
	"seatmap-service/internal/editor/model"
)

func reservationServer(t *testing.T, initial []backend.Reservation, gotBatch *[]backend.ReservationInput) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			json.NewEncoder(w).Encode(initial)
		case http.MethodPut:
			var batch []backend.ReservationInput
			json.NewDecoder(r.Body).Decode(&batch)
			if gotBatch != nil {
				*gotBatch = batch
			}
			out := make([]backend.Reservation, 0, len(batch))
			for i, in := range batch {
				if in.ParticipantID == "" {
					continue
				}
				out = append(out, backend.Reservation{
					ReservationID: "res-" + string(rune('1'+i)),
					EventID:       in.EventID,
					SeatID:        in.SeatID,
					ParticipantID: in.ParticipantID,
				})
			}
			json.NewEncoder(w).Encode(out)
		default:
			http.Error(w, "unexpected", http.StatusMethodNotAllowed)
		}
	}))
}

func TestOverlayAssign(t *testing.T) {
	t.Parallel()

	t.Run("assign applies locally and queues one entry per seat", func(t *testing.T) {
		o := NewOverlay(nil, "ev-1")

		o.Assign("s-1", "p-1")
		o.Assign("s-2", "p-2")
		o.Assign("s-1", "p-3")

		pending := o.Pending()
		if len(pending) != 2 {
			t.Fatalf("expected one batch entry per seat, got %d", len(pending))
		}
		for _, p := range pending {
			if p.SeatID == "s-1" && p.ParticipantID != "p-3" {
				t.Fatalf("later assign must replace the queued entry, got %+v", p)
			}
		}

		res := o.Reservations()
		if len(res) != 2 {
			t.Fatalf("expected optimistic list of 2, got %d", len(res))
		}
	})

	t.Run("reassign records the displaced participant", func(t *testing.T) {
		o := NewOverlay(nil, "ev-1")
		o.reservations = []backend.Reservation{
			{ReservationID: "res-1", EventID: "ev-1", SeatID: "s-1", ParticipantID: "p-old"},
		}

		o.Assign("s-1", "p-new")
		pending := o.Pending()
		if len(pending) != 1 || pending[0].OldParticipantID != "p-old" {
			t.Fatalf("expected old participant captured, got %+v", pending)
		}
		if o.Reservations()[0].ParticipantID != "p-new" {
			t.Fatalf("expected local reassignment")
		}
	})

	t.Run("unassign drops the local reservation", func(t *testing.T) {
		o := NewOverlay(nil, "ev-1")
		o.reservations = []backend.Reservation{
			{ReservationID: "res-1", EventID: "ev-1", SeatID: "s-1", ParticipantID: "p-1"},
		}

		o.Unassign("s-1")
		if len(o.Reservations()) != 0 {
			t.Fatalf("expected reservation removed locally")
		}
		pending := o.Pending()
		if len(pending) != 1 || pending[0].ParticipantID != "" || pending[0].OldParticipantID != "p-1" {
			t.Fatalf("expected removal entry, got %+v", pending)
		}
	})
}

func TestOverlayBatch(t *testing.T) {
	t.Parallel()

	t.Run("save sends the batch and adopts the response", func(t *testing.T) {
		var gotBatch []backend.ReservationInput
		srv := reservationServer(t, nil, &gotBatch)
		defer srv.Close()

		o := NewOverlay(backend.New(srv.URL, time.Second), "ev-1")
		o.Assign("s-1", "p-1")
		o.Assign("s-2", "p-2")

		if err := o.SaveBatch(context.Background(), ""); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(gotBatch) != 2 {
			t.Fatalf("expected batch of 2 delivered, got %d", len(gotBatch))
		}
		if len(o.Pending()) != 0 {
			t.Fatalf("expected batch cleared")
		}
		res := o.Reservations()
		if len(res) != 2 || res[0].ReservationID == "" {
			t.Fatalf("expected server list with real ids, got %+v", res)
		}
	})

	t.Run("empty batch never hits the server", func(t *testing.T) {
		o := NewOverlay(backend.New("http://unreachable", time.Second), "ev-1")
		if err := o.SaveBatch(context.Background(), ""); err != nil {
			t.Fatalf("expected silent no-op, got %v", err)
		}
	})

	t.Run("clear drops the batch without reloading", func(t *testing.T) {
		o := NewOverlay(backend.New("http://unreachable", time.Second), "ev-1")
		o.Assign("s-1", "p-1")
		o.Clear()
		if len(o.Pending()) != 0 {
			t.Fatalf("expected batch dropped")
		}
		// The optimistic local list is kept; only a cancel reloads.
		if len(o.Reservations()) != 1 {
			t.Fatalf("expected local list untouched by clear")
		}
	})

	t.Run("cancel drops the batch and reloads from the server", func(t *testing.T) {
		initial := []backend.Reservation{
			{ReservationID: "res-9", EventID: "ev-1", SeatID: "s-9", ParticipantID: "p-9"},
		}
		srv := reservationServer(t, initial, nil)
		defer srv.Close()

		o := NewOverlay(backend.New(srv.URL, time.Second), "ev-1")
		o.Assign("s-1", "p-1")

		if err := o.Cancel(context.Background(), ""); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(o.Pending()) != 0 {
			t.Fatalf("expected batch dropped")
		}
		res := o.Reservations()
		if len(res) != 1 || res[0].SeatID != "s-9" {
			t.Fatalf("expected server state restored, got %+v", res)
		}
	})
}

// Batch edits and render coloring come from different requests; the race
// detector flags any unguarded access to the pending list here.
func TestOverlayConcurrentAssignAndFill(t *testing.T) {
	t.Parallel()

	o := NewOverlay(nil, "ev-1")
	seat := &model.Seat{ID: "s-1"}

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < 200; i++ {
			o.Assign("s-"+strconv.Itoa(i%5), "p-1")
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 200; i++ {
			o.SeatFill(seat)
		}
	}()
	wg.Wait()

	if len(o.Pending()) != 5 {
		t.Fatalf("expected one batch entry per seat, got %d", len(o.Pending()))
	}
	if got := o.SeatFill(seat); got != ColorSeatPending {
		t.Fatalf("expected pending fill after assigns, got %s", got)
	}
}

func TestSeatFill(t *testing.T) {
	t.Parallel()

	o := NewOverlay(nil, "ev-1")
	o.reservations = []backend.Reservation{
		{EventID: "ev-1", SeatID: "s-res", ParticipantID: "p-1"},
	}
	o.Assign("s-pen", "p-2")

	if got := o.SeatFill(&model.Seat{ID: "s-free"}); got != ColorSeatFree {
		t.Fatalf("free: got %s", got)
	}
	if got := o.SeatFill(&model.Seat{ID: "s-res"}); got != ColorSeatReserved {
		t.Fatalf("reserved: got %s", got)
	}
	if got := o.SeatFill(&model.Seat{ID: "s-pen"}); got != ColorSeatPending {
		t.Fatalf("pending: got %s", got)
	}
	if got := o.SeatFill(&model.Seat{ID: "s-res", Selected: true}); got != canvas.ColorSeatSelected {
		t.Fatalf("selection must win, got %s", got)
	}
}
