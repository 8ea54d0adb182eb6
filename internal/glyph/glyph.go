package glyph

import (
	"fmt"

	"github.com/glyphic/glyphic/backend-go/internal/typeid"
)

// Glyph is the mutable outline of one character. Only the edit engine
// mutates it; everything downstream consumes Snapshot values.
type Glyph struct {
	id       GlyphID
	name     string
	unicode  uint32
	xAdvance float64
	contours []*Contour
}

// New creates an empty glyph.
func New(name string, unicode uint32, xAdvance float64) *Glyph {
	return &Glyph{
		id:       GlyphID(typeid.NewGlyphID()),
		name:     name,
		unicode:  unicode,
		xAdvance: xAdvance,
	}
}

func (g *Glyph) ID() GlyphID        { return g.id }
func (g *Glyph) Name() string       { return g.name }
func (g *Glyph) Unicode() uint32    { return g.unicode }
func (g *Glyph) XAdvance() float64  { return g.xAdvance }
func (g *Glyph) ContourCount() int  { return len(g.contours) }
func (g *Glyph) Contours() []*Contour { return g.contours }

// SetXAdvance updates the advance width.
func (g *Glyph) SetXAdvance(w float64) { g.xAdvance = w }

// Contour returns the contour with the given id.
func (g *Glyph) Contour(id ContourID) (*Contour, error) {
	for _, c := range g.contours {
		if c.cid == id {
			return c, nil
		}
	}
	return nil, fmt.Errorf("contour %s not found", id)
}

// AddContour appends a contour to the glyph.
func (g *Glyph) AddContour(c *Contour) {
	g.contours = append(g.contours, c)
}

// RemoveContour removes and returns the contour with the given id.
func (g *Glyph) RemoveContour(id ContourID) (*Contour, bool) {
	for i, c := range g.contours {
		if c.cid == id {
			g.contours = append(g.contours[:i], g.contours[i+1:]...)
			return c, true
		}
	}
	return nil, false
}

// FindPointContour returns the contour owning the given point.
func (g *Glyph) FindPointContour(id PointID) (*Contour, bool) {
	for _, c := range g.contours {
		if c.indexOf(id) >= 0 {
			return c, true
		}
	}
	return nil, false
}

// PruneDegenerate drops every owned contour that has collapsed below two
// points and returns the ids of the pruned contours. Must run after any
// point removal.
func (g *Glyph) PruneDegenerate() []ContourID {
	var pruned []ContourID
	kept := g.contours[:0]
	for _, c := range g.contours {
		if c.IsDegenerate() {
			pruned = append(pruned, c.cid)
			continue
		}
		kept = append(kept, c)
	}
	g.contours = kept
	return pruned
}

// Clone deep-copies the glyph, preserving all identities. The engine uses
// this to roll back a failed commit.
func (g *Glyph) Clone() *Glyph {
	out := &Glyph{
		id:       g.id,
		name:     g.name,
		unicode:  g.unicode,
		xAdvance: g.xAdvance,
	}
	out.contours = make([]*Contour, len(g.contours))
	for i, c := range g.contours {
		out.contours[i] = c.clone()
	}
	return out
}

// Snapshot produces an immutable copy of the glyph.
func (g *Glyph) Snapshot() Snapshot {
	snap := Snapshot{
		ID:       g.id,
		Name:     g.name,
		Unicode:  g.unicode,
		XAdvance: g.xAdvance,
	}
	snap.Contours = make([]ContourSnapshot, len(g.contours))
	for i, c := range g.contours {
		snap.Contours[i] = c.Snapshot()
	}
	return snap
}
