package tool

import (
	"github.com/glyphic/glyphic/backend-go/internal/editor"
	"github.com/glyphic/glyphic/backend-go/internal/geom"
	"github.com/glyphic/glyphic/backend-go/internal/glyph"
)

// PenStateKind tags the pen's state variants.
type PenStateKind int

const (
	PenIdle PenStateKind = iota
	PenReady
	PenAnchored
	PenDragging
)

// PenState is the pen's tagged-union state. Mouse is meaningful in the
// ready and dragging variants; Anchor and AnchorPos from anchored onward;
// OutHandle and InHandle only while dragging; they are preview positions,
// nothing is committed until release.
type PenState struct {
	Kind      PenStateKind
	Mouse     geom.Vec2
	Anchor    glyph.PointID
	AnchorPos geom.Vec2
	OutHandle geom.Vec2
	InHandle  geom.Vec2
}

// Pen places anchors and drags out symmetric handle pairs. A click near the
// active contour's first point closes the contour instead of adding to it.
type Pen struct {
	engine *editor.Engine
	state  PenState
	down   bool
}

// NewPen creates a pen driving the given engine.
func NewPen(engine *editor.Engine) *Pen {
	return &Pen{engine: engine}
}

// State returns the current state for rendering.
func (t *Pen) State() PenState { return t.state }

// PointerDown places an anchor, or closes the active contour when the click
// lands within hit radius of its first point.
func (t *Pen) PointerDown(ev PointerEvent) {
	t.down = true

	if first, ok := t.activeContourStart(); ok && first.DistanceTo(ev.Pos()) <= hitRadius {
		if res := t.engine.CloseActiveContour(); res.Success {
			t.state = PenState{Kind: PenIdle}
			t.down = false
		}
		return
	}

	res := t.engine.PlaceAnchor(ev.X, ev.Y)
	if !res.Success || len(res.AffectedPoints) == 0 {
		// Commit rejected; keep whatever state we were in.
		return
	}
	t.state = PenState{
		Kind:      PenAnchored,
		Anchor:    res.AffectedPoints[0],
		AnchorPos: ev.Pos(),
	}
}

// PointerMove tracks the pointer. With the button held past the drag
// threshold it previews symmetric handles around the anchor; without it the
// pen just follows the mouse.
func (t *Pen) PointerMove(ev PointerEvent) {
	if !t.down {
		switch t.state.Kind {
		case PenIdle, PenReady:
			t.state = PenState{Kind: PenReady, Mouse: ev.Pos()}
		}
		return
	}

	switch t.state.Kind {
	case PenAnchored:
		if ev.Pos().DistanceTo(t.state.AnchorPos) > dragThreshold {
			t.state = t.previewHandles(ev.Pos())
		}
	case PenDragging:
		t.state = t.previewHandles(ev.Pos())
	}
}

// PointerUp commits the previewed handle pair, if any, and returns to
// anchored.
func (t *Pen) PointerUp(ev PointerEvent) {
	t.down = false
	if t.state.Kind != PenDragging {
		return
	}

	anchor := t.state.Anchor
	out := t.state.OutHandle
	res := t.engine.FinishHandleDrag(anchor, out.X, out.Y)
	if !res.Success {
		// Preview state is speculative; a failed commit discards it.
		t.state = PenState{Kind: PenAnchored, Anchor: anchor, AnchorPos: t.state.AnchorPos}
		return
	}
	t.state = PenState{Kind: PenAnchored, Anchor: anchor, AnchorPos: t.state.AnchorPos}
}

// Cancel aborts an in-flight drag without committing: dragging falls back
// to anchored, anything else to idle.
func (t *Pen) Cancel() {
	t.down = false
	if t.state.Kind == PenDragging {
		t.state = PenState{Kind: PenAnchored, Anchor: t.state.Anchor, AnchorPos: t.state.AnchorPos}
		return
	}
	t.state = PenState{Kind: PenIdle}
}

func (t *Pen) previewHandles(mouse geom.Vec2) PenState {
	anchor := t.state.AnchorPos
	return PenState{
		Kind:      PenDragging,
		Mouse:     mouse,
		Anchor:    t.state.Anchor,
		AnchorPos: anchor,
		OutHandle: mouse,
		InHandle:  anchor.Add(anchor.Sub(mouse)),
	}
}

// activeContourStart returns the first point of the pen's active contour,
// when it has at least one point.
func (t *Pen) activeContourStart() (geom.Vec2, bool) {
	ctx, ok := t.engine.EditContext()
	if !ok || ctx.Glyph.ActiveContourID == "" {
		return geom.Vec2{}, false
	}
	c, ok := ctx.Glyph.Contour(ctx.Glyph.ActiveContourID)
	if !ok || len(c.Points) == 0 {
		return geom.Vec2{}, false
	}
	return geom.Vec2{X: c.Points[0].X, Y: c.Points[0].Y}, true
}
