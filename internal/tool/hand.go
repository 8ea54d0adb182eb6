package tool

import (
	"github.com/glyphic/glyphic/backend-go/internal/editor"
	"github.com/glyphic/glyphic/backend-go/internal/geom"
)

// HandStateKind tags the hand tool's state variants.
type HandStateKind int

const (
	HandIdle HandStateKind = iota
	HandReady
	HandDragging
)

// HandState is the hand tool's tagged-union state. StartPos and StartPan
// are meaningful only while dragging.
type HandState struct {
	Kind     HandStateKind
	StartPos geom.Vec2
	StartPan geom.Vec2
}

// Hand pans the viewport. It never touches the glyph model.
type Hand struct {
	viewport *editor.Viewport
	state    HandState
}

// NewHand creates a hand tool driving the given viewport.
func NewHand(vp *editor.Viewport) *Hand {
	return &Hand{viewport: vp}
}

// State returns the current state for rendering.
func (t *Hand) State() HandState { return t.state }

// PointerDown begins a pan from the current viewport offset.
func (t *Hand) PointerDown(ev PointerEvent) {
	t.state = HandState{
		Kind:     HandDragging,
		StartPos: ev.Pos(),
		StartPan: geom.Vec2{X: t.viewport.PanX, Y: t.viewport.PanY},
	}
}

// PointerMove applies the drag offset to the pan captured at drag start, so
// the pan tracks the pointer without accumulating rounding drift.
func (t *Hand) PointerMove(ev PointerEvent) {
	switch t.state.Kind {
	case HandIdle, HandReady:
		t.state = HandState{Kind: HandReady}
	case HandDragging:
		t.viewport.PanX = t.state.StartPan.X + (ev.X - t.state.StartPos.X)
		t.viewport.PanY = t.state.StartPan.Y + (ev.Y - t.state.StartPos.Y)
	}
}

// PointerUp ends the pan, keeping the final offset.
func (t *Hand) PointerUp(ev PointerEvent) {
	t.state = HandState{Kind: HandReady}
}

// Cancel aborts a drag and restores the pan captured at drag start.
func (t *Hand) Cancel() {
	if t.state.Kind == HandDragging {
		t.viewport.PanX = t.state.StartPan.X
		t.viewport.PanY = t.state.StartPan.Y
	}
	t.state = HandState{Kind: HandIdle}
}
