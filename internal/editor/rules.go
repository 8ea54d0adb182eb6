package editor

import (
	"fmt"

	"github.com/glyphic/glyphic/backend-go/internal/geom"
	"github.com/glyphic/glyphic/backend-go/internal/glyph"
)

// A Rule is a named transformation taking a point and a coordinate delta and
// returning the applied edit, including every point moved as a side effect.
type Rule struct {
	Name  string
	Apply func(s *Session, target glyph.PointID, d Delta) (AppliedEdit, error)
}

// The rule set the engine exposes to tools.
var (
	RuleMovePoint          = Rule{Name: "move-point", Apply: applyMovePoint}
	RuleInsertSegmentPoint = Rule{Name: "insert-segment-point", Apply: applyInsertSegmentPoint}
	RuleToggleSmooth       = Rule{Name: "toggle-smooth", Apply: applyToggleSmooth}
)

// applyMovePoint translates the target and cascades the structural coupling
// rules: an anchor carries its adjacent handles with it, and a handle of a
// smooth anchor forces the opposite handle back onto the shared tangent.
func applyMovePoint(s *Session, target glyph.PointID, d Delta) (AppliedEdit, error) {
	edits, err := MoveGroup(s, []glyph.PointID{target}, d)
	if err != nil {
		return AppliedEdit{}, err
	}
	return edits[0], nil
}

// MoveGroup translates every point in ids by d as one rigid group, then
// cascades the coupling rules per moved point. Points already inside the
// group never cascade twice: a handle whose anchor moved with it is carried
// rigidly, and tangency is only re-derived for handles whose anchor and
// opposite handle stayed put.
func MoveGroup(s *Session, ids []glyph.PointID, d Delta) ([]AppliedEdit, error) {
	inGroup := make(map[glyph.PointID]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := s.glyph.FindPointContour(id); !ok {
			return nil, fmt.Errorf("%w: point %s", ErrInvalidOperation, id)
		}
		inGroup[id] = struct{}{}
	}

	s.MovePoints(ids, d.DX, d.DY)

	edits := make([]AppliedEdit, 0, len(ids))
	for _, id := range ids {
		c, _ := s.glyph.FindPointContour(id)
		p := c.PointAt(id)
		applied := AppliedEdit{Target: id, Deltas: []Delta{d}}

		if p.IsAnchor() {
			// Dragging an anchor carries both neighbouring handles.
			for _, h := range adjacentHandles(c, id) {
				if _, moved := inGroup[h]; moved {
					continue
				}
				if hp := c.PointAt(h); hp != nil {
					hp.Translate(d.DX, d.DY)
					applied.Deltas = append(applied.Deltas, d)
					applied.SideEffects = append(applied.SideEffects, h)
				}
			}
			edits = append(edits, applied)
			continue
		}

		// The target is a handle: re-derive tangent continuity at its
		// anchor unless the coupled points moved as part of the group.
		if anchor, opposite, ok := smoothNeighborhood(c, id); ok {
			_, anchorMoved := inGroup[anchor]
			_, oppositeMoved := inGroup[opposite]
			if !anchorMoved && !oppositeMoved {
				if moved, cascDelta := rebalanceSmooth(c, id); moved != "" {
					applied.Deltas = append(applied.Deltas, cascDelta)
					applied.SideEffects = append(applied.SideEffects, moved)
				}
			}
		}
		edits = append(edits, applied)
	}
	return edits, nil
}

// adjacentHandles returns the off-curve neighbours of an anchor within its
// contour, wrapping if the contour is closed.
func adjacentHandles(c *glyph.Contour, anchor glyph.PointID) []glyph.PointID {
	var handles []glyph.PointID
	if prev, ok := c.Prev(anchor); ok && !prev.IsAnchor() {
		handles = append(handles, prev.ID())
	}
	if next, ok := c.Next(anchor); ok && !next.IsAnchor() {
		handles = append(handles, next.ID())
	}
	return handles
}

// rebalanceSmooth restores tangent continuity after the given handle moved.
// If the handle's neighbouring anchor is smooth and has an opposite handle,
// that handle is rotated about the anchor to the moved handle's opposite
// direction, keeping its own magnitude. Returns the opposite handle's id and
// the delta applied to it, or "" when no rebalance applies.
//
// This is the central tangency routine; every handle mutation funnels
// through it rather than re-deriving the rule at call sites.
func rebalanceSmooth(c *glyph.Contour, handle glyph.PointID) (glyph.PointID, Delta) {
	anchor, opposite, ok := smoothNeighborhood(c, handle)
	if !ok {
		return "", Delta{}
	}

	hp := c.PointAt(handle)
	ap := c.PointAt(anchor)
	op := c.PointAt(opposite)

	anchorPos := geom.Vec2{X: ap.X(), Y: ap.Y()}
	handleVec := geom.Vec2{X: hp.X(), Y: hp.Y()}.Sub(anchorPos)
	oppositeVec := geom.Vec2{X: op.X(), Y: op.Y()}.Sub(anchorPos)

	if handleVec.Length() < 1e-10 {
		// Handle collapsed onto its anchor; direction is undefined.
		return "", Delta{}
	}

	target := anchorPos.Add(handleVec.Normalize().Neg().Scale(oppositeVec.Length()))
	d := Delta{DX: target.X - op.X(), DY: target.Y - op.Y()}
	op.SetPosition(target.X, target.Y)
	return opposite, d
}

// smoothNeighborhood resolves the (anchor, opposite handle) pair a moved
// handle is coupled to. The coupling only exists when the adjacent anchor is
// smooth and the point on the anchor's other side is also a handle.
func smoothNeighborhood(c *glyph.Contour, handle glyph.PointID) (anchor, opposite glyph.PointID, ok bool) {
	if prev, found := c.Prev(handle); found && prev.IsAnchor() && prev.Smooth() {
		if opp, found := c.Prev(prev.ID()); found && !opp.IsAnchor() {
			return prev.ID(), opp.ID(), true
		}
	}
	if next, found := c.Next(handle); found && next.IsAnchor() && next.Smooth() {
		if opp, found := c.Next(next.ID()); found && !opp.IsAnchor() {
			return next.ID(), opp.ID(), true
		}
	}
	return "", "", false
}

// applyInsertSegmentPoint inserts a new on-curve point after the target
// anchor, at the parametric middle of the segment leading to the next
// anchor. The delta offsets the insertion position.
func applyInsertSegmentPoint(s *Session, target glyph.PointID, d Delta) (AppliedEdit, error) {
	c, ok := s.glyph.FindPointContour(target)
	if !ok {
		return AppliedEdit{}, fmt.Errorf("%w: point %s", ErrInvalidOperation, target)
	}
	if c.Len() < 2 {
		return AppliedEdit{}, fmt.Errorf("%w: contour %s has %d points", ErrDegenerateGeometry, c.ID(), c.Len())
	}
	p, _ := c.Point(target)
	if !p.IsAnchor() {
		return AppliedEdit{}, fmt.Errorf("%w: %s is not an on-curve point", ErrInvalidOperation, target)
	}

	seg, lastIdx, err := segmentFrom(c, target)
	if err != nil {
		return AppliedEdit{}, err
	}
	mid := seg.At(0.5)

	id, err := c.InsertPoint(lastIdx, mid.X+d.DX, mid.Y+d.DY, glyph.OnCurve, false)
	if err != nil {
		return AppliedEdit{}, fmt.Errorf("%w: %v", ErrInvalidOperation, err)
	}
	return AppliedEdit{Target: id, Deltas: []Delta{d}}, nil
}

// segmentFrom builds the curve segment starting at the given anchor and
// returns it with the index before which a midpoint insert should land.
func segmentFrom(c *glyph.Contour, anchor glyph.PointID) (geom.Segment, int, error) {
	points := c.Points()
	n := len(points)
	start := c.IndexOf(anchor)

	seg := geom.Segment{P0: geom.Vec2{X: points[start].X(), Y: points[start].Y()}}
	var controls []geom.Vec2
	i := start
	for steps := 0; steps < n; steps++ {
		i++
		if i >= n {
			if !c.Closed() {
				return geom.Segment{}, 0, fmt.Errorf("%w: anchor %s ends an open contour", ErrInvalidOperation, anchor)
			}
			i = 0
		}
		p := points[i]
		if p.IsAnchor() {
			seg.P1 = geom.Vec2{X: p.X(), Y: p.Y()}
			switch len(controls) {
			case 0:
				seg.Kind = geom.SegmentLine
			case 1:
				seg.Kind = geom.SegmentQuad
				seg.C0 = controls[0]
			default:
				seg.Kind = geom.SegmentCubic
				seg.C0 = controls[0]
				seg.C1 = controls[1]
			}
			insertAt := i
			if i == 0 {
				insertAt = n
			}
			return seg, insertAt, nil
		}
		controls = append(controls, geom.Vec2{X: p.X(), Y: p.Y()})
	}
	return geom.Segment{}, 0, fmt.Errorf("%w: contour %s has no second anchor", ErrDegenerateGeometry, c.ID())
}

// applyToggleSmooth promotes a corner anchor to smooth or demotes a smooth
// anchor to a corner. Promotion immediately re-derives tangent continuity by
// rotating the following handle opposite the preceding one.
func applyToggleSmooth(s *Session, target glyph.PointID, _ Delta) (AppliedEdit, error) {
	c, ok := s.glyph.FindPointContour(target)
	if !ok {
		return AppliedEdit{}, fmt.Errorf("%w: point %s", ErrInvalidOperation, target)
	}
	p := c.PointAt(target)
	if !p.IsAnchor() {
		return AppliedEdit{}, fmt.Errorf("%w: %s is not an on-curve point", ErrInvalidOperation, target)
	}

	p.SetSmooth(!p.Smooth())
	applied := AppliedEdit{Target: target, Deltas: []Delta{{}}}

	if p.Smooth() {
		if prev, found := c.Prev(target); found && !prev.IsAnchor() {
			if moved, d := rebalanceSmooth(c, prev.ID()); moved != "" {
				applied.Deltas = append(applied.Deltas, d)
				applied.SideEffects = append(applied.SideEffects, moved)
			}
		}
	}
	return applied, nil
}
