package glyph

// PointSnapshot is the immutable view of one point.
type PointSnapshot struct {
	ID     PointID   `json:"id"`
	X      float64   `json:"x"`
	Y      float64   `json:"y"`
	Type   PointType `json:"pointType"`
	Smooth bool      `json:"smooth"`
}

// ContourSnapshot is the immutable view of one contour. Composite contours
// carry a component reference and no points.
type ContourSnapshot struct {
	ID        ContourID       `json:"id"`
	Points    []PointSnapshot `json:"points"`
	Closed    bool            `json:"closed"`
	Component *Component      `json:"component,omitempty"`
}

// IsComposite reports whether the contour references another glyph.
func (c ContourSnapshot) IsComposite() bool { return c.Component != nil }

// Point returns the point with the given id. Missing identities resolve to
// not-found rather than failing; transient UI state may lag the model.
func (c ContourSnapshot) Point(id PointID) (PointSnapshot, bool) {
	for _, p := range c.Points {
		if p.ID == id {
			return p, true
		}
	}
	return PointSnapshot{}, false
}

// Snapshot is a point-in-time, immutable representation of a glyph. A new
// snapshot replaces the prior one after each committed command; the engine
// never mutates a snapshot in place.
type Snapshot struct {
	ID              GlyphID           `json:"glyphId"`
	Name            string            `json:"name"`
	Unicode         uint32            `json:"unicode"`
	XAdvance        float64           `json:"xAdvance"`
	Contours        []ContourSnapshot `json:"contours"`
	ActiveContourID ContourID         `json:"activeContourId,omitempty"`
}

// Contour returns the contour with the given id.
func (s Snapshot) Contour(id ContourID) (ContourSnapshot, bool) {
	for _, c := range s.Contours {
		if c.ID == id {
			return c, true
		}
	}
	return ContourSnapshot{}, false
}

// FindPoint returns the point with the given id and its owning contour.
func (s Snapshot) FindPoint(id PointID) (PointSnapshot, ContourSnapshot, bool) {
	for _, c := range s.Contours {
		if p, ok := c.Point(id); ok {
			return p, c, true
		}
	}
	return PointSnapshot{}, ContourSnapshot{}, false
}

// IsEmpty reports whether the snapshot holds no contours at all.
func (s Snapshot) IsEmpty() bool { return len(s.Contours) == 0 }

// FromSnapshot rebuilds a mutable glyph from a stored snapshot, preserving
// every identity so references held elsewhere stay valid.
func FromSnapshot(s Snapshot) *Glyph {
	g := &Glyph{
		id:       s.ID,
		name:     s.Name,
		unicode:  s.Unicode,
		xAdvance: s.XAdvance,
	}
	g.contours = make([]*Contour, len(s.Contours))
	for i, cs := range s.Contours {
		c := &Contour{cid: cs.ID, closed: cs.Closed}
		if cs.Component != nil {
			ref := *cs.Component
			c.component = &ref
		}
		c.points = make([]Point, len(cs.Points))
		for j, ps := range cs.Points {
			c.points[j] = Point{
				id:     ps.ID,
				x:      ps.X,
				y:      ps.Y,
				typ:    ps.Type,
				smooth: ps.Smooth,
			}
		}
		g.contours[i] = c
	}
	return g
}
