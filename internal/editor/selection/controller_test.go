package selection

import (
	"testing"

	"seatmap-service/internal/editor/model"
)

func makeSector() *model.Sector {
	sec := &model.Sector{ID: "sec-1", VenueID: "venue-1"}
	for r := 0; r < 3; r++ {
		row := &model.Row{
			ID:          "row-" + string(rune('1'+r)),
			Name:        "Row",
			OrderNumber: r + 1,
		}
		for s := 0; s < 6; s++ {
			row.Seats = append(row.Seats, &model.Seat{
				ID:          row.ID + "-s" + string(rune('1'+s)),
				OrderNumber: s + 1,
				Position:    model.Point{X: 60 + float64(s)*20, Y: 60 + float64(r)*40},
				Status:      model.SeatStatusActive,
			})
		}
		sec.AppendRow(row)
	}
	return sec
}

func ids(seats []*model.Seat) []string {
	out := make([]string, 0, len(seats))
	for _, s := range seats {
		out = append(out, s.ID)
	}
	return out
}

func TestClickSeat(t *testing.T) {
	t.Parallel()

	t.Run("plain click selects exclusively", func(t *testing.T) {
		sec := makeSector()
		c := New(sec)

		c.ClickSeat("row-1-s1")
		c.ClickSeat("row-1-s3")

		sel := c.SelectedSeats()
		if len(sel) != 1 || sel[0].ID != "row-1-s3" {
			t.Fatalf("expected only row-1-s3 selected, got %v", ids(sel))
		}
		if sec.SeatByID("row-1-s1").Selected {
			t.Fatalf("previous seat must be deselected")
		}
	})

	t.Run("ctrl click toggles membership", func(t *testing.T) {
		sec := makeSector()
		c := New(sec)
		c.SetCtrl(true)

		c.ClickSeat("row-1-s1")
		c.ClickSeat("row-1-s3")
		if len(c.SelectedSeats()) != 2 {
			t.Fatalf("expected 2 selected, got %v", ids(c.SelectedSeats()))
		}

		c.ClickSeat("row-1-s1")
		sel := c.SelectedSeats()
		if len(sel) != 1 || sel[0].ID != "row-1-s3" {
			t.Fatalf("expected toggle off, got %v", ids(sel))
		}
		if sec.SeatByID("row-1-s1").Selected {
			t.Fatalf("toggled seat must drop its flag")
		}
	})

	t.Run("shift click selects index range in a row", func(t *testing.T) {
		sec := makeSector()
		c := New(sec)

		c.ClickSeat("row-1-s2")
		c.SetShift(true)
		c.ClickSeat("row-1-s5")

		sel := c.SelectedSeats()
		if len(sel) != 4 {
			t.Fatalf("expected seats 2..5, got %v", ids(sel))
		}
		for _, s := range sel {
			if s.OrderNumber < 2 || s.OrderNumber > 5 {
				t.Fatalf("seat %s outside range", s.ID)
			}
		}
	})

	t.Run("shift range works backwards", func(t *testing.T) {
		sec := makeSector()
		c := New(sec)

		c.ClickSeat("row-1-s5")
		c.SetShift(true)
		c.ClickSeat("row-1-s2")

		if len(c.SelectedSeats()) != 4 {
			t.Fatalf("expected same range regardless of direction, got %v", ids(c.SelectedSeats()))
		}
	})

	t.Run("shift across rows selects the column", func(t *testing.T) {
		sec := makeSector()
		c := New(sec)

		c.ClickSeat("row-1-s4")
		c.SetShift(true)
		c.ClickSeat("row-3-s4")

		sel := c.SelectedSeats()
		if len(sel) != 3 {
			t.Fatalf("expected full column of 3, got %v", ids(sel))
		}
		for _, s := range sel {
			if s.OrderNumber != 4 {
				t.Fatalf("expected only order 4, got seat %s", s.ID)
			}
		}
	})

	t.Run("column select with unequal numbers is a no-op", func(t *testing.T) {
		sec := makeSector()
		c := New(sec)

		c.ClickSeat("row-1-s4")
		c.SetShift(true)
		c.ClickSeat("row-3-s2")

		sel := c.SelectedSeats()
		if len(sel) != 1 || sel[0].ID != "row-1-s4" {
			t.Fatalf("expected anchor to survive untouched, got %v", ids(sel))
		}
	})

	t.Run("shift click with empty selection falls through", func(t *testing.T) {
		sec := makeSector()
		c := New(sec)
		c.SetShift(true)

		c.ClickSeat("row-2-s2")
		sel := c.SelectedSeats()
		if len(sel) != 1 || sel[0].ID != "row-2-s2" {
			t.Fatalf("expected plain select, got %v", ids(sel))
		}
	})

	t.Run("unknown seat is ignored", func(t *testing.T) {
		c := New(makeSector())
		c.ClickSeat("nope")
		if len(c.SelectedSeats()) != 0 {
			t.Fatalf("expected empty selection")
		}
	})
}

func TestClickRow(t *testing.T) {
	t.Parallel()

	t.Run("plain click selects exclusively", func(t *testing.T) {
		c := New(makeSector())
		c.ClickRow("row-1")
		c.ClickRow("row-2")
		rows := c.SelectedRows()
		if len(rows) != 1 || rows[0].ID != "row-2" {
			t.Fatalf("expected only row-2, got %d rows", len(rows))
		}
	})

	t.Run("ctrl click toggles", func(t *testing.T) {
		c := New(makeSector())
		c.SetCtrl(true)
		c.ClickRow("row-1")
		c.ClickRow("row-2")
		if len(c.SelectedRows()) != 2 {
			t.Fatalf("expected 2 rows selected")
		}
		c.ClickRow("row-1")
		rows := c.SelectedRows()
		if len(rows) != 1 || rows[0].ID != "row-2" {
			t.Fatalf("expected toggle off row-1")
		}
	})

	t.Run("context click selects if not selected", func(t *testing.T) {
		c := New(makeSector())
		c.SetCtrl(true)
		c.ClickRow("row-1")
		c.ClickRow("row-2")

		row := c.ContextClickRow("row-3")
		if row == nil || row.ID != "row-3" {
			t.Fatalf("expected row-3 returned")
		}
		rows := c.SelectedRows()
		if len(rows) != 1 || rows[0].ID != "row-3" {
			t.Fatalf("expected exclusive selection of row-3")
		}

		// Already-selected row keeps the current set.
		c.ContextClickRow("row-3")
		if len(c.SelectedRows()) != 1 {
			t.Fatalf("expected selection kept")
		}
	})
}

func TestKeyboard(t *testing.T) {
	t.Parallel()

	t.Run("escape clears everything", func(t *testing.T) {
		sec := makeSector()
		c := New(sec)
		c.ClickSeat("row-1-s1")
		c.SetCtrl(true)
		c.ClickRow("row-2")

		c.Escape()
		if len(c.SelectedSeats()) != 0 || len(c.SelectedRows()) != 0 {
			t.Fatalf("expected empty selection after escape")
		}
		if sec.SeatByID("row-1-s1").Selected {
			t.Fatalf("seat flag must be cleared")
		}
	})

	t.Run("delete removes selected seats", func(t *testing.T) {
		sec := makeSector()
		c := New(sec)
		c.ClickSeat("row-1-s2")
		c.SetShift(true)
		c.ClickSeat("row-1-s4")

		if removed := c.DeleteSelected(); removed != 3 {
			t.Fatalf("expected 3 removed, got %d", removed)
		}
		row := sec.RowByID("row-1")
		if len(row.Seats) != 3 {
			t.Fatalf("expected 3 seats left, got %d", len(row.Seats))
		}
		for i, s := range row.Seats {
			if s.OrderNumber != i+1 {
				t.Fatalf("expected contiguous numbering, got %d at %d", s.OrderNumber, i)
			}
		}
	})

	t.Run("delete with empty selection is a no-op", func(t *testing.T) {
		c := New(makeSector())
		if removed := c.DeleteSelected(); removed != 0 {
			t.Fatalf("expected 0 removed, got %d", removed)
		}
	})
}

func TestRebind(t *testing.T) {
	t.Parallel()

	old := makeSector()
	c := New(old)
	c.ClickSeat("row-1-s1")
	c.StartDrag("row-1-s1")

	fresh := makeSector()
	c.Rebind(fresh)

	if len(c.SelectedSeats()) != 0 || c.Dragging() {
		t.Fatalf("rebind must drop selection and drag state")
	}
	c.ClickSeat("row-1-s2")
	if !fresh.SeatByID("row-1-s2").Selected {
		t.Fatalf("controller must address the new model")
	}
}
