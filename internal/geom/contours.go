package geom

import (
	"iter"

	"github.com/glyphic/glyphic/backend-go/internal/glyph"
)

// RenderableContours returns a lazy, restartable sequence over the glyph's
// drawable contours. Composite contours (resolved through the document, not
// here) and contours that have collapsed below two points are excluded.
func RenderableContours(snap glyph.Snapshot) iter.Seq[glyph.ContourSnapshot] {
	return func(yield func(glyph.ContourSnapshot) bool) {
		for _, c := range snap.Contours {
			if c.IsComposite() || len(c.Points) < 2 {
				continue
			}
			if !yield(c) {
				return
			}
		}
	}
}

// Shoelace computes the signed polygon area of the point sequence. The sign
// encodes winding direction: counter-clockwise point order yields a positive
// area, and reversing the order flips the sign.
func Shoelace(points []Vec2) float64 {
	n := len(points)
	if n < 3 {
		return 0
	}
	var sum float64
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		sum += points[i].X*points[j].Y - points[j].X*points[i].Y
	}
	return sum / 2
}

// ContourArea computes the signed area of a contour's point polygon,
// treating control points as polygon vertices.
func ContourArea(c glyph.ContourSnapshot) float64 {
	pts := make([]Vec2, len(c.Points))
	for i, p := range c.Points {
		pts[i] = Vec2{p.X, p.Y}
	}
	return Shoelace(pts)
}
