// Package tool implements the pointer-driven editing tools as explicit
// finite-state machines. Each tool holds a tagged-union state advanced by
// pointer-down/move/up events; every mutating transition goes through the
// edit engine, and every dragging state has an abort path that leaves the
// model untouched.
package tool

import (
	"github.com/glyphic/glyphic/backend-go/internal/geom"
	"github.com/glyphic/glyphic/backend-go/internal/glyph"
)

const (
	// dragThreshold is how far the pointer must travel, in font units,
	// before a held button counts as a drag.
	dragThreshold = 3.0

	// hitRadius is the pick distance for points, in font units.
	hitRadius = 8.0
)

// PointerEvent is one raw pointer sample in font-unit coordinates.
type PointerEvent struct {
	X float64
	Y float64
}

// Pos returns the event position as a vector.
func (ev PointerEvent) Pos() geom.Vec2 { return geom.Vec2{X: ev.X, Y: ev.Y} }

// pointNear returns the id of the first point within hitRadius of the
// position, searching owned contours in order.
func pointNear(snap glyph.Snapshot, pos geom.Vec2) (glyph.PointID, bool) {
	for _, c := range snap.Contours {
		if c.IsComposite() {
			continue
		}
		for _, p := range c.Points {
			if (geom.Vec2{X: p.X, Y: p.Y}).DistanceTo(pos) <= hitRadius {
				return p.ID, true
			}
		}
	}
	return "", false
}

// marqueeRect normalizes a drag from a to b into a hit-testable rectangle.
func marqueeRect(a, b geom.Vec2) geom.Rect {
	return geom.FromBounds(
		min(a.X, b.X), min(a.Y, b.Y),
		max(a.X, b.X), max(a.Y, b.Y),
	)
}

// pointsInRect collects every point whose position satisfies the rect's hit
// test (lower bound inclusive, upper bound exclusive).
func pointsInRect(snap glyph.Snapshot, r geom.Rect) []glyph.PointID {
	var ids []glyph.PointID
	for _, c := range snap.Contours {
		if c.IsComposite() {
			continue
		}
		for _, p := range c.Points {
			if r.Hit(p.X, p.Y) {
				ids = append(ids, p.ID)
			}
		}
	}
	return ids
}
