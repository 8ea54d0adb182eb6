package geom

import (
	"math"

	"github.com/glyphic/glyphic/backend-go/internal/glyph"
)

// Bounds returns the tight axis-aligned bounding box of the segment,
// accounting for curve extrema rather than the control-point hull.
func (s Segment) Bounds() Rect {
	switch s.Kind {
	case SegmentLine:
		return FromBounds(
			min(s.P0.X, s.P1.X), min(s.P0.Y, s.P1.Y),
			max(s.P0.X, s.P1.X), max(s.P0.Y, s.P1.Y),
		)
	case SegmentQuad:
		minX, maxX := quadExtent1D(s.P0.X, s.C0.X, s.P1.X)
		minY, maxY := quadExtent1D(s.P0.Y, s.C0.Y, s.P1.Y)
		return FromBounds(minX, minY, maxX, maxY)
	default:
		minX, maxX := cubicExtent1D(s.P0.X, s.C0.X, s.C1.X, s.P1.X)
		minY, maxY := cubicExtent1D(s.P0.Y, s.C0.Y, s.C1.Y, s.P1.Y)
		return FromBounds(minX, minY, maxX, maxY)
	}
}

// TightBounds derives the minimal axis-aligned box covering every on-curve
// point and curve extremum of the glyph's renderable contours. The second
// return value is false for an empty glyph.
func TightBounds(snap glyph.Snapshot) (Rect, bool) {
	var (
		bounds Rect
		found  bool
	)

	merge := func(r Rect) {
		if !found {
			bounds = r
			found = true
			return
		}
		minX := min(bounds.X, r.X)
		minY := min(bounds.Y, r.Y)
		maxX := max(bounds.X+bounds.Width, r.X+r.Width)
		maxY := max(bounds.Y+bounds.Height, r.Y+r.Height)
		bounds = FromBounds(minX, minY, maxX, maxY)
	}

	for c := range RenderableContours(snap) {
		for _, seg := range Segments(c) {
			merge(seg.Bounds())
		}
		// Anchors not covered by any segment (open contour endpoints)
		// still count toward the box.
		for _, p := range c.Points {
			if p.Type == glyph.OnCurve {
				merge(Rect{X: p.X, Y: p.Y})
			}
		}
	}

	return bounds, found
}

// XBounds derives the horizontal extent of the glyph, independent of any
// vertical metric. The third return value is false for an empty glyph.
func XBounds(snap glyph.Snapshot) (minX, maxX float64, ok bool) {
	r, found := TightBounds(snap)
	if !found {
		return 0, 0, false
	}
	return r.X, r.X + r.Width, true
}

// quadExtent1D returns the 1D extent of a quadratic Bezier including the
// interior extremum, if any. The derivative 2(1-t)(c-p0) + 2t(p1-c) = 0
// gives t = (p0-c) / (p0-2c+p1).
func quadExtent1D(p0, c, p1 float64) (lo, hi float64) {
	lo, hi = min(p0, p1), max(p0, p1)
	denom := p0 - 2*c + p1
	if math.Abs(denom) < 1e-12 {
		return lo, hi
	}
	t := (p0 - c) / denom
	if t > 0 && t < 1 {
		mt := 1 - t
		v := mt*mt*p0 + 2*mt*t*c + t*t*p1
		lo, hi = min(lo, v), max(hi, v)
	}
	return lo, hi
}

// cubicExtent1D returns the 1D extent of a cubic Bezier including interior
// extrema. The derivative is a quadratic at^2 + bt + c with
//
//	a = -3p0 + 9c0 - 9c1 + 3p1
//	b =  6p0 - 12c0 + 6c1
//	c = -3p0 + 3c0
func cubicExtent1D(p0, c0, c1, p1 float64) (lo, hi float64) {
	lo, hi = min(p0, p1), max(p0, p1)

	a := -3*p0 + 9*c0 - 9*c1 + 3*p1
	b := 6*p0 - 12*c0 + 6*c1
	c := -3*p0 + 3*c0

	eval := func(t float64) {
		if t <= 0 || t >= 1 {
			return
		}
		mt := 1 - t
		v := mt*mt*mt*p0 + 3*mt*mt*t*c0 + 3*mt*t*t*c1 + t*t*t*p1
		lo, hi = min(lo, v), max(hi, v)
	}

	if math.Abs(a) < 1e-12 {
		if math.Abs(b) > 1e-12 {
			eval(-c / b)
		}
		return lo, hi
	}

	disc := b*b - 4*a*c
	if disc < 0 {
		return lo, hi
	}
	sqrtD := math.Sqrt(disc)
	eval((-b + sqrtD) / (2 * a))
	eval((-b - sqrtD) / (2 * a))
	return lo, hi
}
