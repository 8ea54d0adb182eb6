package editor

import (
	"fmt"

	"github.com/glyphic/glyphic/backend-go/internal/event"
	"github.com/glyphic/glyphic/backend-go/internal/geom"
	"github.com/glyphic/glyphic/backend-go/internal/glyph"
)

// The operations in this file are the commit closures tools issue. Each one
// runs atomically through Commit and produces exactly one change event.

// PlaceAnchor adds an on-curve point at (x, y) to the active contour,
// starting a new contour if the pen has none.
func (e *Engine) PlaceAnchor(x, y float64) Result {
	return e.Commit(func(s *Session) (Result, error) {
		if _, ok := s.ActiveContour(); !ok {
			s.AddEmptyContour()
		}
		id, err := s.AddPoint(x, y, glyph.OnCurve, false)
		if err != nil {
			return Result{}, err
		}
		return Changed(event.PointsAdded, id), nil
	})
}

// FinishHandleDrag gives the anchor a symmetric handle pair: the out-handle
// at (hx, hy) and the in-handle mirrored through the anchor. The anchor
// becomes smooth.
func (e *Engine) FinishHandleDrag(anchor glyph.PointID, hx, hy float64) Result {
	return e.Commit(func(s *Session) (Result, error) {
		c, ok := s.Glyph().FindPointContour(anchor)
		if !ok {
			return Result{}, fmt.Errorf("%w: point %s", ErrInvalidOperation, anchor)
		}
		ap := c.PointAt(anchor)
		if !ap.IsAnchor() {
			return Result{}, fmt.Errorf("%w: %s is not an on-curve point", ErrInvalidOperation, anchor)
		}

		idx := c.IndexOf(anchor)
		inID, err := c.InsertPoint(idx, 2*ap.X()-hx, 2*ap.Y()-hy, glyph.OffCurve, false)
		if err != nil {
			return Result{}, fmt.Errorf("%w: %v", ErrInvalidOperation, err)
		}
		outID, err := c.InsertPoint(idx+2, hx, hy, glyph.OffCurve, false)
		if err != nil {
			return Result{}, fmt.Errorf("%w: %v", ErrInvalidOperation, err)
		}
		c.PointAt(anchor).SetSmooth(true)
		return Changed(event.PointsAdded, inID, outID), nil
	})
}

// CloseActiveContour flips the active contour's open flag to closed and
// detaches the pen from it.
func (e *Engine) CloseActiveContour() Result {
	return e.Commit(func(s *Session) (Result, error) {
		cid, ok := s.ActiveContour()
		if !ok {
			return Result{}, fmt.Errorf("%w: no active contour", ErrInvalidOperation)
		}
		if err := s.CloseContour(cid); err != nil {
			return Result{}, err
		}
		s.ClearActiveContour()
		res := Ack()
		res.AffectedContours = []glyph.ContourID{cid}
		return res, nil
	})
}

// MoveSelection translates the whole current selection by d as one grouped
// command: one commit, one points:moved event carrying every moved
// identity, regardless of how many pointer moves preceded it.
func (e *Engine) MoveSelection(d Delta) Result {
	return e.Commit(func(s *Session) (Result, error) {
		ids := s.Selection()
		if len(ids) == 0 {
			return Result{}, fmt.Errorf("%w: empty selection", ErrInvalidOperation)
		}
		edits, err := MoveGroup(s, ids, d)
		if err != nil {
			return Result{}, err
		}
		var affected []glyph.PointID
		for _, ed := range edits {
			affected = append(affected, ed.Affected()...)
		}
		return Changed(event.PointsMoved, affected...), nil
	})
}

// MovePointGroup translates the given points by d as one grouped command.
func (e *Engine) MovePointGroup(ids []glyph.PointID, d Delta) Result {
	return e.Commit(func(s *Session) (Result, error) {
		edits, err := MoveGroup(s, ids, d)
		if err != nil {
			return Result{}, err
		}
		var affected []glyph.PointID
		for _, ed := range edits {
			affected = append(affected, ed.Affected()...)
		}
		return Changed(event.PointsMoved, affected...), nil
	})
}

// RemovePoints removes the given points, pruning any contour that collapses
// below two points.
func (e *Engine) RemovePoints(ids []glyph.PointID) Result {
	return e.Commit(func(s *Session) (Result, error) {
		removed, pruned := s.RemovePoints(ids)
		if len(removed) == 0 {
			return Result{}, fmt.Errorf("%w: no such points", ErrInvalidOperation)
		}
		res := Changed(event.PointsRemoved, removed...)
		res.AffectedContours = pruned
		return res, nil
	})
}

// TransformSelection maps every selected point through the affine matrix as
// one grouped command. Handles selected together with their anchors keep
// their relative geometry, so tangent continuity survives rigid transforms.
func (e *Engine) TransformSelection(m geom.Matrix2D) Result {
	return e.Commit(func(s *Session) (Result, error) {
		ids := s.Selection()
		if len(ids) == 0 {
			return Result{}, fmt.Errorf("%w: empty selection", ErrInvalidOperation)
		}
		moved := make([]glyph.PointID, 0, len(ids))
		for _, id := range ids {
			c, ok := s.Glyph().FindPointContour(id)
			if !ok {
				continue
			}
			p := c.PointAt(id)
			pos := m.TransformPoint(geom.Vec2{X: p.X(), Y: p.Y()})
			p.SetPosition(pos.X, pos.Y)
			moved = append(moved, id)
		}
		if len(moved) == 0 {
			return Result{}, fmt.Errorf("%w: no such points", ErrInvalidOperation)
		}
		return Changed(event.PointsMoved, moved...), nil
	})
}

// ApplyRule commits a single named edit rule against one point.
func (e *Engine) ApplyRule(rule Rule, target glyph.PointID, d Delta) Result {
	return e.Commit(func(s *Session) (Result, error) {
		applied, err := rule.Apply(s, target, d)
		if err != nil {
			return Result{}, err
		}
		name := event.PointsMoved
		if rule.Name == RuleInsertSegmentPoint.Name {
			name = event.PointsAdded
		}
		return Changed(name, applied.Affected()...), nil
	})
}
