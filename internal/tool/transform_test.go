package tool

import (
	"math"
	"testing"

	"github.com/glyphic/glyphic/backend-go/internal/editor"
	"github.com/glyphic/glyphic/backend-go/internal/event"
	"github.com/glyphic/glyphic/backend-go/internal/geom"
	"github.com/glyphic/glyphic/backend-go/internal/glyph"
)

func TestAnchorResolve(t *testing.T) {
	r := geom.Rect{X: 0, Y: 0, Width: 100, Height: 50}
	tests := []struct {
		anchor TransformAnchor
		want   geom.Vec2
	}{
		{AnchorTopLeft, geom.Vec2{X: 0, Y: 0}},
		{AnchorTop, geom.Vec2{X: 50, Y: 0}},
		{AnchorTopRight, geom.Vec2{X: 100, Y: 0}},
		{AnchorRight, geom.Vec2{X: 100, Y: 25}},
		{AnchorBottomRight, geom.Vec2{X: 100, Y: 50}},
		{AnchorBottom, geom.Vec2{X: 50, Y: 50}},
		{AnchorBottomLeft, geom.Vec2{X: 0, Y: 50}},
		{AnchorLeft, geom.Vec2{X: 0, Y: 25}},
		{AnchorCenter, geom.Vec2{X: 50, Y: 25}},
	}
	for _, tc := range tests {
		if got := tc.anchor.Resolve(r); got != tc.want {
			t.Errorf("anchor %d resolves to %v, want %v", tc.anchor, got, tc.want)
		}
	}
}

func TestAnchorOppositeIsInvolution(t *testing.T) {
	for a := AnchorTopLeft; a <= AnchorCenter; a++ {
		if back := a.Opposite().Opposite(); back != a {
			t.Errorf("anchor %d: opposite of opposite = %d", a, back)
		}
	}
	if AnchorTopLeft.Opposite() != AnchorBottomRight {
		t.Error("top-left must pivot on bottom-right")
	}
	if AnchorRight.Opposite() != AnchorLeft {
		t.Error("right must pivot on left")
	}
}

func TestHitHandleDiscrimination(t *testing.T) {
	bounds := geom.Rect{X: 0, Y: 0, Width: 100, Height: 100}
	tests := []struct {
		name   string
		pos    geom.Vec2
		kind   HandleKind
		anchor TransformAnchor
	}{
		{"corner press", geom.Vec2{X: 0, Y: 0}, HandleResize, AnchorTopLeft},
		{"corner within radius", geom.Vec2{X: 103, Y: 104}, HandleResize, AnchorBottomRight},
		{"mid edge", geom.Vec2{X: 50, Y: 0}, HandleResize, AnchorTop},
		{"ring outside corner", geom.Vec2{X: 110, Y: 110}, HandleRotate, AnchorBottomRight},
		{"ring above corner", geom.Vec2{X: -12, Y: -9}, HandleRotate, AnchorTopLeft},
		{"center", geom.Vec2{X: 50, Y: 50}, HandleNone, AnchorTopLeft},
		{"far away", geom.Vec2{X: 300, Y: 300}, HandleNone, AnchorTopLeft},
	}
	for _, tc := range tests {
		got := hitHandle(bounds, tc.pos)
		if got.Kind != tc.kind {
			t.Errorf("%s: kind = %v, want %v", tc.name, got.Kind, tc.kind)
			continue
		}
		if got.Kind != HandleNone && got.Anchor != tc.anchor {
			t.Errorf("%s: anchor = %v, want %v", tc.name, got.Anchor, tc.anchor)
		}
	}
}

// newTransformFixture opens a square with corners at (0,0) through
// (100,100), selects every corner, and returns the tool.
func newTransformFixture() (*editor.Engine, *event.Bus, *Transform, []glyph.PointID) {
	g := glyph.New("square", 0, 120)
	c := glyph.NewContour()
	ids := []glyph.PointID{
		c.AddPoint(0, 0, glyph.OnCurve, false),
		c.AddPoint(100, 0, glyph.OnCurve, false),
		c.AddPoint(100, 100, glyph.OnCurve, false),
		c.AddPoint(0, 100, glyph.OnCurve, false),
	}
	c.Close()
	g.AddContour(c)

	bus := event.NewBus()
	eng := editor.NewEngine(bus)
	eng.OpenGlyph(g)
	eng.SetSelection(ids)
	return eng, bus, NewTransform(eng), ids
}

func wantAt(t *testing.T, eng *editor.Engine, id glyph.PointID, x, y float64) {
	t.Helper()
	snap, _ := eng.Snapshot()
	p, _, ok := snap.FindPoint(id)
	if !ok {
		t.Fatalf("point %s missing", id)
	}
	if math.Abs(p.X-x) > 1e-9 || math.Abs(p.Y-y) > 1e-9 {
		t.Errorf("point %s at (%v, %v), want (%v, %v)", id, p.X, p.Y, x, y)
	}
}

func TestCornerResizeScalesAboutOppositeCorner(t *testing.T) {
	eng, bus, tr, ids := newTransformFixture()

	moves := 0
	bus.Subscribe(event.PointsMoved, func(event.Event) { moves++ })

	// Grab the bottom-right corner; the pivot is the top-left.
	tr.PointerDown(PointerEvent{X: 100, Y: 100})
	if st := tr.State(); st.Kind != TransformDragging || st.Handle.Kind != HandleResize {
		t.Fatalf("state after grab = %+v, want a resize drag", st)
	}
	tr.PointerMove(PointerEvent{X: 80, Y: 70})
	tr.PointerUp(PointerEvent{X: 50, Y: 50})

	if moves != 1 {
		t.Fatalf("drag published %d points:moved events, want exactly 1", moves)
	}
	wantAt(t, eng, ids[0], 0, 0)
	wantAt(t, eng, ids[1], 50, 0)
	wantAt(t, eng, ids[2], 50, 50)
	wantAt(t, eng, ids[3], 0, 50)
}

func TestEdgeResizeScalesOneAxisOnly(t *testing.T) {
	eng, _, tr, ids := newTransformFixture()

	// Grab the right mid-edge handle at (100, 50) and drag outward. The
	// vertical axis must stay untouched no matter where the pointer goes.
	tr.PointerDown(PointerEvent{X: 100, Y: 50})
	tr.PointerUp(PointerEvent{X: 150, Y: 90})

	wantAt(t, eng, ids[0], 0, 0)
	wantAt(t, eng, ids[1], 150, 0)
	wantAt(t, eng, ids[2], 150, 100)
	wantAt(t, eng, ids[3], 0, 100)
}

func TestRotateDragRotatesAboutOppositeCorner(t *testing.T) {
	eng, _, tr, ids := newTransformFixture()

	// A press in the ring outside the bottom-right corner grabs a
	// rotate with the top-left corner (the origin) as pivot.
	tr.PointerDown(PointerEvent{X: 110, Y: 110})
	if st := tr.State(); st.Handle.Kind != HandleRotate {
		t.Fatalf("grab = %+v, want a rotate drag", st.Handle)
	}
	// Swing a quarter turn counterclockwise about the origin.
	tr.PointerUp(PointerEvent{X: -110, Y: 110})

	wantAt(t, eng, ids[0], 0, 0)
	wantAt(t, eng, ids[1], 0, 100)
	wantAt(t, eng, ids[2], -100, 100)
	wantAt(t, eng, ids[3], -100, 0)
}

func TestReleaseWithoutMovementCommitsNothing(t *testing.T) {
	eng, bus, tr, _ := newTransformFixture()

	events := 0
	bus.Subscribe(event.PointsMoved, func(event.Event) { events++ })

	tr.PointerDown(PointerEvent{X: 100, Y: 100})
	tr.PointerUp(PointerEvent{X: 100, Y: 100})

	if events != 0 {
		t.Fatalf("identity drag published %d events, want 0", events)
	}
	if eng.CanUndo() {
		t.Error("identity drag left an undo step")
	}
}

func TestCancelDiscardsPreviewMatrix(t *testing.T) {
	eng, _, tr, ids := newTransformFixture()

	tr.PointerDown(PointerEvent{X: 100, Y: 100})
	tr.PointerMove(PointerEvent{X: 40, Y: 40})
	if tr.State().Preview.IsIdentity() {
		t.Fatal("drag built no preview matrix")
	}
	tr.Cancel()

	wantAt(t, eng, ids[2], 100, 100)
	if eng.CanUndo() {
		t.Error("cancelled drag left an undo step")
	}
	if tr.State().Kind != TransformReady {
		t.Errorf("state = %v, want ready", tr.State().Kind)
	}
}

func TestPressOffTheFrameIsIgnored(t *testing.T) {
	_, bus, tr, _ := newTransformFixture()

	events := 0
	bus.Subscribe(event.PointsMoved, func(event.Event) { events++ })

	tr.PointerDown(PointerEvent{X: 50, Y: 50})
	if tr.State().Kind != TransformReady {
		t.Fatalf("state = %v, want ready", tr.State().Kind)
	}
	tr.PointerUp(PointerEvent{X: 60, Y: 60})
	if events != 0 {
		t.Errorf("press off the frame published %d events", events)
	}
}

func TestEmptySelectionHasNoFrame(t *testing.T) {
	eng, _, tr, _ := newTransformFixture()
	eng.SetSelection(nil)

	tr.PointerDown(PointerEvent{X: 100, Y: 100})
	if tr.State().Kind != TransformIdle {
		t.Errorf("state = %v, want idle", tr.State().Kind)
	}
}
