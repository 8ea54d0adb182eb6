package glyph

import (
	"fmt"

	"github.com/glyphic/glyphic/backend-go/internal/typeid"
)

// Component references another glyph's contours instead of owning points.
// The transform is the UFO-style affine placement of the referenced outline.
type Component struct {
	Base    GlyphID `json:"base"`
	XScale  float64 `json:"xScale"`
	YScale  float64 `json:"yScale"`
	XOffset float64 `json:"xOffset"`
	YOffset float64 `json:"yOffset"`
}

// Contour is one outline loop: an ordered point sequence whose order defines
// winding and adjacency. A contour carrying a component reference is
// composite and owns no points of its own.
type Contour struct {
	cid       ContourID
	points    []Point
	closed    bool
	component *Component
}

// NewContour creates an empty open contour with a fresh identity.
func NewContour() *Contour {
	return &Contour{cid: ContourID(typeid.NewContourID())}
}

// NewComposite creates a contour that references another glyph's outline.
func NewComposite(ref Component) *Contour {
	return &Contour{cid: ContourID(typeid.NewContourID()), component: &ref, closed: true}
}

func (c *Contour) ID() ContourID { return c.cid }
func (c *Contour) Closed() bool  { return c.closed }
func (c *Contour) Len() int      { return len(c.points) }

// IsComposite reports whether the contour references another glyph.
func (c *Contour) IsComposite() bool { return c.component != nil }

// ComponentRef returns the component reference for composite contours.
func (c *Contour) ComponentRef() (Component, bool) {
	if c.component == nil {
		return Component{}, false
	}
	return *c.component, true
}

// Points returns the ordered point slice. The slice is owned by the contour;
// callers must not append to or reorder it.
func (c *Contour) Points() []Point { return c.points }

// FirstPoint returns the first point, if any.
func (c *Contour) FirstPoint() (Point, bool) {
	if len(c.points) == 0 {
		return Point{}, false
	}
	return c.points[0], true
}

// Point returns the point with the given id.
func (c *Contour) Point(id PointID) (Point, bool) {
	if i := c.indexOf(id); i >= 0 {
		return c.points[i], true
	}
	return Point{}, false
}

// PointAt returns a mutable reference to the point with the given id.
func (c *Contour) PointAt(id PointID) *Point {
	if i := c.indexOf(id); i >= 0 {
		return &c.points[i]
	}
	return nil
}

// IndexOf returns the position of the point within the contour, or -1.
func (c *Contour) IndexOf(id PointID) int { return c.indexOf(id) }

func (c *Contour) indexOf(id PointID) int {
	for i := range c.points {
		if c.points[i].id == id {
			return i
		}
	}
	return -1
}

// Prev returns the point before the given one, wrapping if the contour is
// closed. For an open contour the first point has no predecessor.
func (c *Contour) Prev(id PointID) (Point, bool) {
	i := c.indexOf(id)
	if i < 0 || len(c.points) < 2 {
		return Point{}, false
	}
	if i == 0 {
		if !c.closed {
			return Point{}, false
		}
		return c.points[len(c.points)-1], true
	}
	return c.points[i-1], true
}

// Next returns the point after the given one, wrapping if the contour is
// closed. For an open contour the last point has no successor.
func (c *Contour) Next(id PointID) (Point, bool) {
	i := c.indexOf(id)
	if i < 0 || len(c.points) < 2 {
		return Point{}, false
	}
	if i == len(c.points)-1 {
		if !c.closed {
			return Point{}, false
		}
		return c.points[0], true
	}
	return c.points[i+1], true
}

// AddPoint appends a point and returns its identity.
func (c *Contour) AddPoint(x, y float64, typ PointType, smooth bool) PointID {
	p := NewPoint(x, y, typ, smooth)
	c.points = append(c.points, p)
	return p.id
}

// InsertPoint inserts a point at the given index and returns its identity.
func (c *Contour) InsertPoint(index int, x, y float64, typ PointType, smooth bool) (PointID, error) {
	if index < 0 || index > len(c.points) {
		return "", fmt.Errorf("insert index %d out of range [0,%d]", index, len(c.points))
	}
	p := NewPoint(x, y, typ, smooth)
	c.points = append(c.points, Point{})
	copy(c.points[index+1:], c.points[index:])
	c.points[index] = p
	return p.id, nil
}

// RemovePoint removes the point with the given id and returns its former index.
func (c *Contour) RemovePoint(id PointID) (int, error) {
	i := c.indexOf(id)
	if i < 0 {
		return 0, fmt.Errorf("point %s not found", id)
	}
	c.points = append(c.points[:i], c.points[i+1:]...)
	return i, nil
}

// Close marks the contour as a closed loop.
func (c *Contour) Close() { c.closed = true }

// Open marks the contour as open.
func (c *Contour) Open() { c.closed = false }

// IsDegenerate reports whether the contour has collapsed below two points.
// Composite contours are never degenerate; they own no points.
func (c *Contour) IsDegenerate() bool {
	return c.component == nil && len(c.points) < 2
}

// Snapshot produces an immutable copy of the contour.
func (c *Contour) Snapshot() ContourSnapshot {
	snap := ContourSnapshot{
		ID:     c.cid,
		Closed: c.closed,
	}
	if c.component != nil {
		ref := *c.component
		snap.Component = &ref
		return snap
	}
	snap.Points = make([]PointSnapshot, len(c.points))
	for i := range c.points {
		p := &c.points[i]
		snap.Points[i] = PointSnapshot{
			ID:     p.id,
			X:      p.x,
			Y:      p.y,
			Type:   p.typ,
			Smooth: p.smooth,
		}
	}
	return snap
}

// clone deep-copies the contour, preserving all identities.
func (c *Contour) clone() *Contour {
	out := &Contour{cid: c.cid, closed: c.closed}
	if c.component != nil {
		ref := *c.component
		out.component = &ref
	}
	out.points = append([]Point(nil), c.points...)
	return out
}
