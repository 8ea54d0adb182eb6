package tool

import (
	"github.com/glyphic/glyphic/backend-go/internal/editor"
	"github.com/glyphic/glyphic/backend-go/internal/geom"
	"github.com/glyphic/glyphic/backend-go/internal/glyph"
)

// SelectStateKind tags the select tool's state variants.
type SelectStateKind int

const (
	SelectIdle SelectStateKind = iota
	SelectReady
	SelectSelecting
	SelectSelected
	SelectDragging
)

// DragData accumulates a grouped point drag. Total is the running delta
// from drag start; it is preview-only until release commits it as exactly
// one command.
type DragData struct {
	Start geom.Vec2
	Last  geom.Vec2
	Total editor.Delta
}

// SelectState is the select tool's tagged-union state.
type SelectState struct {
	Kind    SelectStateKind
	Hovered glyph.PointID
	Marquee geom.Rect
	Preview []glyph.PointID // marquee highlight, committed on release
	Drag    DragData
}

// Select picks and drags points: a marquee drag over empty space selects
// every point inside the rectangle, and dragging an anchored point moves
// the whole selection together.
type Select struct {
	engine *editor.Engine
	state  SelectState
}

// NewSelect creates a select tool driving the given engine.
func NewSelect(engine *editor.Engine) *Select {
	return &Select{engine: engine}
}

// State returns the current state for rendering.
func (t *Select) State() SelectState { return t.state }

// PointerDown starts a marquee over empty space or a grouped drag over a
// point. A point outside the current selection becomes the sole selection
// before the drag starts.
func (t *Select) PointerDown(ev PointerEvent) {
	ctx, ok := t.engine.EditContext()
	if !ok {
		return
	}

	if id, hit := pointNear(ctx.Glyph, ev.Pos()); hit {
		if !contains(ctx.Selection, id) {
			t.engine.SetSelection([]glyph.PointID{id})
		}
		t.state = SelectState{
			Kind:    SelectDragging,
			Hovered: id,
			Drag:    DragData{Start: ev.Pos(), Last: ev.Pos()},
		}
		return
	}

	t.engine.SetSelection(nil)
	t.state = SelectState{
		Kind:    SelectSelecting,
		Marquee: marqueeRect(ev.Pos(), ev.Pos()),
		Drag:    DragData{Start: ev.Pos(), Last: ev.Pos()},
	}
}

// PointerMove updates hover, the marquee preview, or the drag accumulator.
func (t *Select) PointerMove(ev PointerEvent) {
	switch t.state.Kind {
	case SelectIdle, SelectReady, SelectSelected:
		t.updateHover(ev)

	case SelectSelecting:
		ctx, ok := t.engine.EditContext()
		if !ok {
			return
		}
		r := marqueeRect(t.state.Drag.Start, ev.Pos())
		t.state.Marquee = r
		t.state.Preview = pointsInRect(ctx.Glyph, r)
		t.state.Drag.Last = ev.Pos()

	case SelectDragging:
		t.state.Drag.Total.DX += ev.X - t.state.Drag.Last.X
		t.state.Drag.Total.DY += ev.Y - t.state.Drag.Last.Y
		t.state.Drag.Last = ev.Pos()
	}
}

// PointerUp commits the marquee selection or the accumulated drag. A drag
// commits as exactly one grouped command, never one per pointer move.
func (t *Select) PointerUp(ev PointerEvent) {
	switch t.state.Kind {
	case SelectSelecting:
		ctx, ok := t.engine.EditContext()
		if !ok {
			t.state = SelectState{Kind: SelectIdle}
			return
		}
		r := marqueeRect(t.state.Drag.Start, ev.Pos())
		ids := pointsInRect(ctx.Glyph, r)
		t.engine.SetSelection(ids)
		if len(ids) > 0 {
			t.state = SelectState{Kind: SelectSelected}
		} else {
			t.state = SelectState{Kind: SelectIdle}
		}

	case SelectDragging:
		total := t.state.Drag.Total
		hovered := t.state.Hovered
		if total.DX != 0 || total.DY != 0 {
			res := t.engine.MoveSelection(total)
			if !res.Success {
				// Failed commit: the model is untouched; drop the preview.
				t.state = SelectState{Kind: SelectSelected, Hovered: hovered}
				return
			}
		}
		t.state = SelectState{Kind: SelectSelected, Hovered: hovered}
	}
}

// Cancel aborts a marquee or drag without committing anything. The
// selection keeps its pre-drag contents.
func (t *Select) Cancel() {
	switch t.state.Kind {
	case SelectSelecting:
		t.state = SelectState{Kind: SelectIdle}
	case SelectDragging:
		t.state = SelectState{Kind: SelectSelected, Hovered: t.state.Hovered}
	default:
		t.state = SelectState{Kind: SelectIdle}
	}
}

func (t *Select) updateHover(ev PointerEvent) {
	ctx, ok := t.engine.EditContext()
	if !ok {
		return
	}
	id, hit := pointNear(ctx.Glyph, ev.Pos())
	t.engine.SetHover(id)
	switch {
	case hit && len(ctx.Selection) > 0:
		t.state = SelectState{Kind: SelectSelected, Hovered: id}
	case hit:
		t.state = SelectState{Kind: SelectReady, Hovered: id}
	case len(ctx.Selection) > 0:
		t.state = SelectState{Kind: SelectSelected}
	default:
		t.state = SelectState{Kind: SelectIdle}
	}
}

func contains(ids []glyph.PointID, id glyph.PointID) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
