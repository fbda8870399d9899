package geometry

import (
	"testing"

	"seatmap-service/internal/editor/model"
)

func rowAt(name string, order int, y float64, xs ...float64) *model.Row {
	row := &model.Row{ID: model.NewTempID(), Name: name, OrderNumber: order}
	for i, x := range xs {
		row.Seats = append(row.Seats, &model.Seat{
			ID:          model.NewTempID(),
			OrderNumber: i + 1,
			Position:    model.Point{X: x, Y: y},
			Status:      model.SeatStatusActive,
		})
	}
	return row
}

func TestSnap(t *testing.T) {
	t.Parallel()

	g := New(20)
	got := g.Snap(model.Point{X: 33, Y: 47})
	if got != (model.Point{X: 40, Y: 40}) {
		t.Fatalf("expected (40,40), got %+v", got)
	}
	if got := g.Snap(model.Point{X: 50, Y: 50}); got != (model.Point{X: 60, Y: 60}) {
		t.Fatalf("expected half to round up, got %+v", got)
	}
}

func TestSetSnap(t *testing.T) {
	t.Parallel()

	g := New(20)
	g.SetSnap(g.Snap)
	sec := &model.Sector{ID: "sec-1"}
	sec.AppendRow(rowAt("I", 1, 63, 61, 83))

	row := g.NewRow(sec, "II", 1)
	if row.Seats[0].Position != (model.Point{X: 60, Y: 100}) {
		t.Fatalf("expected snapped position (60,100), got %+v", row.Seats[0].Position)
	}

	g.SetSnap(nil)
	row = g.NewRow(sec, "III", 1)
	if row.Seats[0].Position != (model.Point{X: 61, Y: 103}) {
		t.Fatalf("expected raw position after snap reset, got %+v", row.Seats[0].Position)
	}
}

func TestNewRow(t *testing.T) {
	t.Parallel()

	t.Run("empty sector gets default origin", func(t *testing.T) {
		g := New(20)
		sec := &model.Sector{ID: "sec-1"}

		row := g.NewRow(sec, "I", 3)
		if row.OrderNumber != 1 || row.Name != "I" {
			t.Fatalf("expected row I order 1, got %q order %d", row.Name, row.OrderNumber)
		}
		for i, seat := range row.Seats {
			want := model.Point{X: 60 + float64(i)*20, Y: 60}
			if seat.Position != want {
				t.Fatalf("seat %d: expected %+v, got %+v", i, want, seat.Position)
			}
			if seat.OrderNumber != i+1 {
				t.Fatalf("seat %d: expected order %d, got %d", i, i+1, seat.OrderNumber)
			}
			if !model.IsTempID(seat.ID) {
				t.Fatalf("seat %d: expected temp id", i)
			}
		}
	})

	t.Run("single row yields fixed vertical offset", func(t *testing.T) {
		g := New(20)
		sec := &model.Sector{ID: "sec-1"}
		sec.AppendRow(rowAt("I", 1, 80, 100, 130))

		row := g.NewRow(sec, "II", 2)
		if row.Seats[0].Position != (model.Point{X: 100, Y: 120}) {
			t.Fatalf("expected base under the single row, got %+v", row.Seats[0].Position)
		}
		// Seat spacing taken from the neighbouring pair of the last row.
		if row.Seats[1].Position.X != 130 {
			t.Fatalf("expected inherited spacing 30, got x=%v", row.Seats[1].Position.X)
		}
	})

	t.Run("two rows yield measured spacing", func(t *testing.T) {
		g := New(20)
		sec := &model.Sector{ID: "sec-1"}
		sec.AppendRow(rowAt("I", 1, 60, 60, 80))
		sec.AppendRow(rowAt("II", 2, 110, 60, 80))

		row := g.NewRow(sec, "III", 1)
		if row.Seats[0].Position.Y != 160 {
			t.Fatalf("expected y=160 (spacing 50), got %v", row.Seats[0].Position.Y)
		}
	})

	t.Run("tiny spacing clamped to minimum", func(t *testing.T) {
		g := New(20)
		sec := &model.Sector{ID: "sec-1"}
		sec.AppendRow(rowAt("I", 1, 60, 60))
		sec.AppendRow(rowAt("II", 2, 65, 60))

		row := g.NewRow(sec, "III", 1)
		if row.Seats[0].Position.Y != 105 {
			t.Fatalf("expected clamped spacing 40 below y=65, got %v", row.Seats[0].Position.Y)
		}
	})

	t.Run("upward layouts keep their direction", func(t *testing.T) {
		g := New(20)
		sec := &model.Sector{ID: "sec-1"}
		sec.AppendRow(rowAt("I", 1, 200, 60))
		sec.AppendRow(rowAt("II", 2, 190, 60))

		row := g.NewRow(sec, "III", 1)
		if row.Seats[0].Position.Y != 150 {
			t.Fatalf("expected clamped upward spacing -40, got %v", row.Seats[0].Position.Y)
		}
	})

	t.Run("rows without seats are ignored for inference", func(t *testing.T) {
		g := New(20)
		sec := &model.Sector{ID: "sec-1"}
		sec.AppendRow(rowAt("I", 1, 60, 60))
		sec.AppendRow(&model.Row{ID: "empty", Name: "II", OrderNumber: 2})

		row := g.NewRow(sec, "III", 1)
		if row.Seats[0].Position.Y != 100 {
			t.Fatalf("expected single-row branch, got y=%v", row.Seats[0].Position.Y)
		}
		if row.OrderNumber != 3 {
			t.Fatalf("expected order 3 past the empty row, got %d", row.OrderNumber)
		}
	})
}

func TestNewRows(t *testing.T) {
	t.Parallel()

	g := New(20)
	sec := &model.Sector{ID: "sec-1"}
	sec.AppendRow(rowAt("I", 1, 60, 60, 80))
	sec.AppendRow(rowAt("II", 2, 110, 60, 80))

	rows := g.NewRows(sec, 3, 2)
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}

	// Basis is inferred once, before insertion: every new row steps by the
	// same measured spacing even though nothing was appended yet.
	wantY := []float64{160, 210, 260}
	wantName := []string{"III", "IV", "V"}
	for i, row := range rows {
		if row.OrderNumber != 3+i {
			t.Fatalf("row %d: expected order %d, got %d", i, 3+i, row.OrderNumber)
		}
		if row.Name != wantName[i] {
			t.Fatalf("row %d: expected name %q, got %q", i, wantName[i], row.Name)
		}
		if row.Seats[0].Position.Y != wantY[i] {
			t.Fatalf("row %d: expected y=%v, got %v", i, wantY[i], row.Seats[0].Position.Y)
		}
	}
}

func TestExtendRow(t *testing.T) {
	t.Parallel()

	t.Run("continues with the row's own spacing", func(t *testing.T) {
		g := New(20)
		row := rowAt("I", 1, 60, 60, 90)

		seats := g.ExtendRow(row, 2)
		if len(seats) != 2 {
			t.Fatalf("expected 2 seats, got %d", len(seats))
		}
		if seats[0].Position != (model.Point{X: 120, Y: 60}) {
			t.Fatalf("expected (120,60), got %+v", seats[0].Position)
		}
		if seats[1].Position.X != 150 {
			t.Fatalf("expected spacing 30, got x=%v", seats[1].Position.X)
		}
		if seats[0].OrderNumber != 3 || seats[1].OrderNumber != 4 {
			t.Fatalf("expected orders 3,4, got %d,%d", seats[0].OrderNumber, seats[1].OrderNumber)
		}
	})

	t.Run("empty row starts at the origin", func(t *testing.T) {
		g := New(20)
		row := &model.Row{ID: "row-1", Name: "I", OrderNumber: 1}

		seats := g.ExtendRow(row, 1)
		if seats[0].Position != (model.Point{X: 60, Y: 60}) {
			t.Fatalf("expected (60,60), got %+v", seats[0].Position)
		}
		if seats[0].OrderNumber != 1 {
			t.Fatalf("expected order 1, got %d", seats[0].OrderNumber)
		}
	})

	t.Run("nil row or zero count is a no-op", func(t *testing.T) {
		g := New(20)
		if g.ExtendRow(nil, 3) != nil {
			t.Fatalf("expected nil for nil row")
		}
		if g.ExtendRow(&model.Row{}, 0) != nil {
			t.Fatalf("expected nil for zero count")
		}
	})
}

func TestRoman(t *testing.T) {
	t.Parallel()

	cases := []struct {
		n    int
		want string
	}{
		{0, ""},
		{-3, ""},
		{1, "I"},
		{4, "IV"},
		{9, "IX"},
		{14, "XIV"},
		{40, "XL"},
		{90, "XC"},
		{1994, "MCMXCIV"},
	}
	for _, tc := range cases {
		if got := Roman(tc.n); got != tc.want {
			t.Fatalf("Roman(%d): expected %q, got %q", tc.n, tc.want, got)
		}
	}
}
