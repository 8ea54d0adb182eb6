package tool

import (
	"math"

	"github.com/glyphic/glyphic/backend-go/internal/editor"
	"github.com/glyphic/glyphic/backend-go/internal/geom"
)

// rotateBand is how far outside a corner handle, in font units, a press
// still counts as a rotate grab.
const rotateBand = 12.0

// TransformAnchor names the nine positions of a selection's bounding box.
type TransformAnchor int

const (
	AnchorTopLeft TransformAnchor = iota
	AnchorTop
	AnchorTopRight
	AnchorRight
	AnchorBottomRight
	AnchorBottom
	AnchorBottomLeft
	AnchorLeft
	AnchorCenter
)

// Resolve returns the anchor's position on the given bounds.
func (a TransformAnchor) Resolve(r geom.Rect) geom.Vec2 {
	cx := r.X + r.Width/2
	cy := r.Y + r.Height/2
	switch a {
	case AnchorTopLeft:
		return geom.Vec2{X: r.X, Y: r.Y}
	case AnchorTop:
		return geom.Vec2{X: cx, Y: r.Y}
	case AnchorTopRight:
		return geom.Vec2{X: r.X + r.Width, Y: r.Y}
	case AnchorRight:
		return geom.Vec2{X: r.X + r.Width, Y: cy}
	case AnchorBottomRight:
		return geom.Vec2{X: r.X + r.Width, Y: r.Y + r.Height}
	case AnchorBottom:
		return geom.Vec2{X: cx, Y: r.Y + r.Height}
	case AnchorBottomLeft:
		return geom.Vec2{X: r.X, Y: r.Y + r.Height}
	case AnchorLeft:
		return geom.Vec2{X: r.X, Y: cy}
	default:
		return geom.Vec2{X: cx, Y: cy}
	}
}

// Opposite returns the anchor diagonally or axially across the bounds. The
// opposite anchor is the fixed pivot while its counterpart is dragged.
func (a TransformAnchor) Opposite() TransformAnchor {
	switch a {
	case AnchorTopLeft:
		return AnchorBottomRight
	case AnchorTop:
		return AnchorBottom
	case AnchorTopRight:
		return AnchorBottomLeft
	case AnchorRight:
		return AnchorLeft
	case AnchorBottomRight:
		return AnchorTopLeft
	case AnchorBottom:
		return AnchorTop
	case AnchorBottomLeft:
		return AnchorTopRight
	case AnchorLeft:
		return AnchorRight
	default:
		return AnchorCenter
	}
}

// cornerAnchors are the anchors that also carry a rotate grab zone.
var cornerAnchors = [4]TransformAnchor{
	AnchorTopLeft, AnchorTopRight, AnchorBottomRight, AnchorBottomLeft,
}

// edgeAnchors are the eight boundary anchors, tested for resize grabs.
var edgeAnchors = [8]TransformAnchor{
	AnchorTopLeft, AnchorTop, AnchorTopRight, AnchorRight,
	AnchorBottomRight, AnchorBottom, AnchorBottomLeft, AnchorLeft,
}

// HandleKind discriminates what a press on the transform frame grabbed.
type HandleKind int

const (
	HandleNone HandleKind = iota
	HandleResize
	HandleRotate
)

// HandleHit is the result of hit-testing the transform frame.
type HandleHit struct {
	Kind   HandleKind
	Anchor TransformAnchor
}

// hitHandle tests a press against the frame around the given bounds.
// Within hitRadius of a boundary anchor grabs a resize; a ring just
// outside a corner grabs a rotate.
func hitHandle(bounds geom.Rect, pos geom.Vec2) HandleHit {
	for _, a := range edgeAnchors {
		if a.Resolve(bounds).DistanceTo(pos) <= hitRadius {
			return HandleHit{Kind: HandleResize, Anchor: a}
		}
	}
	for _, a := range cornerAnchors {
		if a.Resolve(bounds).DistanceTo(pos) <= hitRadius+rotateBand {
			return HandleHit{Kind: HandleRotate, Anchor: a}
		}
	}
	return HandleHit{Kind: HandleNone}
}

// TransformStateKind tags the transform tool's state variants.
type TransformStateKind int

const (
	TransformIdle TransformStateKind = iota
	TransformReady
	TransformDragging
)

// TransformState is the transform tool's tagged-union state. Bounds is the
// selection box the frame was derived from; Preview is the accumulated
// matrix while dragging, committed only on release.
type TransformState struct {
	Kind    TransformStateKind
	Bounds  geom.Rect
	Handle  HandleHit
	Pivot   geom.Vec2
	Start   geom.Vec2
	Preview geom.Matrix2D
}

// Transform scales and rotates the current selection by dragging the
// handles of its bounding frame. The pivot is always the anchor opposite
// the grabbed handle.
type Transform struct {
	engine *editor.Engine
	state  TransformState
}

// NewTransform creates a transform tool driving the given engine.
func NewTransform(engine *editor.Engine) *Transform {
	return &Transform{engine: engine}
}

// State returns the current state for rendering.
func (t *Transform) State() TransformState { return t.state }

// PointerDown grabs a handle of the selection frame, if the press lands on
// one. Presses elsewhere are ignored; point picking belongs to the select
// tool.
func (t *Transform) PointerDown(ev PointerEvent) {
	bounds, ok := t.selectionBounds()
	if !ok {
		t.state = TransformState{Kind: TransformIdle}
		return
	}

	hit := hitHandle(bounds, ev.Pos())
	if hit.Kind == HandleNone {
		t.state = TransformState{Kind: TransformReady, Bounds: bounds}
		return
	}
	t.state = TransformState{
		Kind:    TransformDragging,
		Bounds:  bounds,
		Handle:  hit,
		Pivot:   hit.Anchor.Opposite().Resolve(bounds),
		Start:   ev.Pos(),
		Preview: geom.Identity(),
	}
}

// PointerMove recomputes the preview matrix from drag start to the current
// pointer. Nothing is committed until release.
func (t *Transform) PointerMove(ev PointerEvent) {
	if t.state.Kind != TransformDragging {
		if bounds, ok := t.selectionBounds(); ok {
			t.state = TransformState{Kind: TransformReady, Bounds: bounds}
		} else {
			t.state = TransformState{Kind: TransformIdle}
		}
		return
	}
	t.state.Preview = t.dragMatrix(ev.Pos())
}

// PointerUp commits the accumulated transform as a single grouped command.
func (t *Transform) PointerUp(ev PointerEvent) {
	if t.state.Kind != TransformDragging {
		return
	}
	m := t.dragMatrix(ev.Pos())
	bounds := t.state.Bounds
	if !m.IsIdentity() {
		if res := t.engine.TransformSelection(m); res.Success {
			if b, ok := t.selectionBounds(); ok {
				bounds = b
			}
		}
	}
	t.state = TransformState{Kind: TransformReady, Bounds: bounds}
}

// Cancel aborts a drag, discarding the preview matrix.
func (t *Transform) Cancel() {
	if t.state.Kind == TransformDragging {
		t.state = TransformState{Kind: TransformReady, Bounds: t.state.Bounds}
		return
	}
	t.state = TransformState{Kind: TransformIdle}
}

// dragMatrix derives the transform for the current drag, pivoted on the
// anchor opposite the grabbed handle.
func (t *Transform) dragMatrix(pos geom.Vec2) geom.Matrix2D {
	pivot := t.state.Pivot
	switch t.state.Handle.Kind {
	case HandleResize:
		return geom.AboutPivot(t.resizeScale(pos), pivot)
	case HandleRotate:
		from := t.state.Start.Sub(pivot)
		to := pos.Sub(pivot)
		if from.Length() < 1e-10 || to.Length() < 1e-10 {
			return geom.Identity()
		}
		angle := math.Atan2(to.Y, to.X) - math.Atan2(from.Y, from.X)
		return geom.AboutPivot(geom.Rotate(angle), pivot)
	default:
		return geom.Identity()
	}
}

// resizeScale derives per-axis scale factors from how far the grabbed
// anchor moved relative to the pivot. Mid-edge handles scale one axis only.
func (t *Transform) resizeScale(pos geom.Vec2) geom.Matrix2D {
	pivot := t.state.Pivot
	grab := t.state.Handle.Anchor.Resolve(t.state.Bounds)

	sx, sy := 1.0, 1.0
	if dx := grab.X - pivot.X; math.Abs(dx) > 1e-10 {
		sx = (pos.X - pivot.X) / dx
	}
	if dy := grab.Y - pivot.Y; math.Abs(dy) > 1e-10 {
		sy = (pos.Y - pivot.Y) / dy
	}
	switch t.state.Handle.Anchor {
	case AnchorTop, AnchorBottom:
		sx = 1
	case AnchorLeft, AnchorRight:
		sy = 1
	}
	return geom.Scale(sx, sy)
}

// selectionBounds is the tight box around the selected points, or around
// the whole glyph when everything is selected implicitly via a marquee of
// one contour. An empty selection has no frame.
func (t *Transform) selectionBounds() (geom.Rect, bool) {
	ctx, ok := t.engine.EditContext()
	if !ok || len(ctx.Selection) == 0 {
		return geom.Rect{}, false
	}

	var (
		bounds geom.Rect
		found  bool
	)
	for _, id := range ctx.Selection {
		p, _, ok := ctx.Glyph.FindPoint(id)
		if !ok {
			continue
		}
		if !found {
			bounds = geom.Rect{X: p.X, Y: p.Y}
			found = true
			continue
		}
		bounds = bounds.Union(geom.Rect{X: p.X, Y: p.Y})
	}
	return bounds, found
}
