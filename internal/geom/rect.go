package geom

// Rect is an axis-aligned rectangle in font units.
type Rect struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// FromBounds builds a Rect from min/max extents. Width and height are the
// extents (maxX-minX, maxY-minY), not the raw max values.
func FromBounds(minX, minY, maxX, maxY float64) Rect {
	return Rect{
		X:      minX,
		Y:      minY,
		Width:  maxX - minX,
		Height: maxY - minY,
	}
}

// Hit reports whether the point lies inside the rect. The lower bound is
// inclusive and the upper bound is exclusive on both axes, so a point exactly
// on the right or top edge is outside.
func (r Rect) Hit(px, py float64) bool {
	return px >= r.X && px < r.X+r.Width && py >= r.Y && py < r.Y+r.Height
}

// IsEmpty checks if the rect has zero or negative area.
func (r Rect) IsEmpty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Union returns the smallest rect containing both rects. A zero-size rect
// is a degenerate extent, not a missing one: its position still contributes,
// so unioning point-sized rects grows a box covering every point.
func (r Rect) Union(other Rect) Rect {
	minX := min(r.X, other.X)
	minY := min(r.Y, other.Y)
	maxX := max(r.X+r.Width, other.X+other.Width)
	maxY := max(r.Y+r.Height, other.Y+other.Height)

	return FromBounds(minX, minY, maxX, maxY)
}

// Center returns the center point of the rect.
func (r Rect) Center() Vec2 {
	return Vec2{r.X + r.Width/2, r.Y + r.Height/2}
}
