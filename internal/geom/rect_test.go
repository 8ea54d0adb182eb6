package geom

import "testing"

func TestRectHit(t *testing.T) {
	r := Rect{X: 5, Y: 5, Width: 25, Height: 25}

	tests := []struct {
		name string
		x, y float64
		want bool
	}{
		{"interior", 27, 26, true},
		{"outside both axes", 35, 35, false},
		{"lower corner inclusive", 5, 5, true},
		{"upper corner exclusive", 30, 30, false},
		{"upper x exclusive", 30, 10, false},
		{"upper y exclusive", 10, 30, false},
		{"just inside upper", 29.999, 29.999, true},
		{"left of rect", 4.999, 10, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := r.Hit(tt.x, tt.y); got != tt.want {
				t.Errorf("Hit(%v, %v) = %v, want %v", tt.x, tt.y, got, tt.want)
			}
		})
	}
}

func TestFromBounds(t *testing.T) {
	r := FromBounds(10, 20, 50, 50)
	if r.X != 10 || r.Y != 20 || r.Width != 40 || r.Height != 30 {
		t.Errorf("FromBounds(10,20,50,50) = %+v, want {10 20 40 30}", r)
	}
}

func TestRectUnion(t *testing.T) {
	a := Rect{X: 0, Y: 0, Width: 10, Height: 10}
	b := Rect{X: 20, Y: 5, Width: 10, Height: 20}
	u := a.Union(b)
	if u.X != 0 || u.Y != 0 || u.Width != 30 || u.Height != 25 {
		t.Errorf("Union = %+v, want {0 0 30 25}", u)
	}
}

func TestRectUnionOfPointRects(t *testing.T) {
	// Zero-size rects are degenerate extents; their positions still count.
	a := Rect{X: 0, Y: 0}
	b := Rect{X: 100, Y: 100}
	u := a.Union(b)
	if u.X != 0 || u.Y != 0 || u.Width != 100 || u.Height != 100 {
		t.Errorf("Union = %+v, want {0 0 100 100}", u)
	}

	// Accumulating unions over a point set must cover every point, not just
	// the last one folded in.
	pts := []Vec2{{10, 40}, {80, 5}, {30, 90}}
	box := Rect{X: pts[0].X, Y: pts[0].Y}
	for _, p := range pts[1:] {
		box = box.Union(Rect{X: p.X, Y: p.Y})
	}
	if box.X != 10 || box.Y != 5 || box.Width != 70 || box.Height != 85 {
		t.Errorf("accumulated box = %+v, want {10 5 70 85}", box)
	}
}

func TestAboutPivot(t *testing.T) {
	// Scaling about a pivot leaves the pivot fixed.
	pivot := Vec2{X: 10, Y: 20}
	m := AboutPivot(Scale(2, 3), pivot)

	got := m.TransformPoint(pivot)
	if got != pivot {
		t.Errorf("pivot moved: %+v", got)
	}

	moved := m.TransformPoint(Vec2{X: 11, Y: 21})
	want := Vec2{X: 12, Y: 23}
	if moved != want {
		t.Errorf("TransformPoint = %+v, want %+v", moved, want)
	}
}
