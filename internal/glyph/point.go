package glyph

import (
	"math"

	"github.com/glyphic/glyphic/backend-go/internal/typeid"
)

// PointID identifies a point. It is stable for the lifetime of an editing
// session, until the point is explicitly removed.
type PointID string

// ContourID identifies a contour within a glyph.
type ContourID string

// GlyphID identifies a glyph within a font document.
type GlyphID string

// PointType discriminates anchors from Bezier control points.
type PointType string

const (
	// OnCurve marks an anchor the outline passes through.
	OnCurve PointType = "onCurve"
	// OffCurve marks a Bezier control point, never on the outline itself.
	OffCurve PointType = "offCurve"
)

// Point is a single outline point. Mutation is reserved for the edit engine;
// tools and render contributors only ever see PointSnapshot values.
type Point struct {
	id     PointID
	x      float64
	y      float64
	typ    PointType
	smooth bool
}

// NewPoint creates a point with a fresh identity.
func NewPoint(x, y float64, typ PointType, smooth bool) Point {
	return Point{
		id:     PointID(typeid.NewPointID()),
		x:      x,
		y:      y,
		typ:    typ,
		smooth: smooth,
	}
}

func (p *Point) ID() PointID     { return p.id }
func (p *Point) X() float64      { return p.x }
func (p *Point) Y() float64      { return p.y }
func (p *Point) Type() PointType { return p.typ }
func (p *Point) Smooth() bool    { return p.smooth }

// IsAnchor reports whether the outline passes through this point.
func (p *Point) IsAnchor() bool { return p.typ == OnCurve }

// DistanceTo returns the Euclidean distance from the point to (x, y).
func (p *Point) DistanceTo(x, y float64) float64 {
	return math.Hypot(p.x-x, p.y-y)
}

// SetPosition moves the point to an absolute position.
func (p *Point) SetPosition(x, y float64) {
	p.x = x
	p.y = y
}

// Translate moves the point by the given delta.
func (p *Point) Translate(dx, dy float64) {
	p.x += dx
	p.y += dy
}

// SetSmooth toggles the tangent-continuity constraint on an anchor.
func (p *Point) SetSmooth(smooth bool) {
	p.smooth = smooth
}

// SetType changes the point between anchor and control roles.
func (p *Point) SetType(typ PointType) {
	p.typ = typ
}
