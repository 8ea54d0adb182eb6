package render

import (
	"strings"
	"testing"

	"github.com/glyphic/glyphic/backend-go/internal/editor"
	"github.com/glyphic/glyphic/backend-go/internal/glyph"
)

func triangleSnapshot() glyph.Snapshot {
	g := glyph.New("tri", 0, 300)
	c := glyph.NewContour()
	c.AddPoint(0, 0, glyph.OnCurve, false)
	c.AddPoint(200, 0, glyph.OnCurve, false)
	c.AddPoint(100, 150, glyph.OnCurve, false)
	c.Close()
	g.AddContour(c)
	return g.Snapshot()
}

func TestContourPathClosedPolygon(t *testing.T) {
	snap := triangleSnapshot()
	path := ContourPath(snap.Contours[0])

	ops := make([]string, len(path))
	for i, cmd := range path {
		ops[i] = cmd[0].(string)
	}
	want := []string{"M", "L", "L", "L", "Z"}
	if len(ops) != len(want) {
		t.Fatalf("path ops = %v, want %v", ops, want)
	}
	for i := range want {
		if ops[i] != want[i] {
			t.Errorf("op %d = %q, want %q", i, ops[i], want[i])
		}
	}
	if path[0][1] != 0.0 || path[0][2] != 0.0 {
		t.Errorf("path starts at (%v, %v), want the first anchor", path[0][1], path[0][2])
	}
}

func TestContourPathQuadAndOpen(t *testing.T) {
	g := glyph.New("arc", 0, 200)
	c := glyph.NewContour()
	c.AddPoint(0, 0, glyph.OnCurve, false)
	c.AddPoint(50, 100, glyph.OffCurve, false)
	c.AddPoint(100, 0, glyph.OnCurve, false)
	g.AddContour(c)
	snap := g.Snapshot()

	path := ContourPath(snap.Contours[0])
	if len(path) != 2 {
		t.Fatalf("path has %d commands, want M and Q", len(path))
	}
	q := path[1]
	if q[0] != "Q" {
		t.Fatalf("second command is %v, want Q", q[0])
	}
	if q[1] != 50.0 || q[2] != 100.0 || q[3] != 100.0 || q[4] != 0.0 {
		t.Errorf("quad command = %v, want control (50, 100) to (100, 0)", q)
	}
}

func TestContourPathSkipsDegenerate(t *testing.T) {
	g := glyph.New("dot", 0, 100)
	c := glyph.NewContour()
	c.AddPoint(10, 10, glyph.OnCurve, false)
	g.AddContour(c)
	snap := g.Snapshot()

	if path := ContourPath(snap.Contours[0]); path != nil {
		t.Errorf("single-point contour produced a path: %v", path)
	}
}

func TestPipelineLayersOutlineBeforeMarkers(t *testing.T) {
	ctx := editor.EditContext{Glyph: triangleSnapshot()}
	cmds := NewPipeline().Render(ctx, editor.Viewport{Zoom: 1}, 2)

	firstMarker := -1
	lastPath := -1
	markers := 0
	for i, cmd := range cmds {
		switch cmd.Op {
		case "marker":
			if firstMarker < 0 {
				firstMarker = i
			}
			markers++
		case "path":
			lastPath = i
		}
	}
	if markers != 3 {
		t.Errorf("got %d markers, want one per point", markers)
	}
	if firstMarker < 0 || lastPath > firstMarker {
		t.Errorf("markers start at %d but paths run to %d; markers must draw on top", firstMarker, lastPath)
	}
}

func TestMarkerColorsFollowSelectionAndHover(t *testing.T) {
	snap := triangleSnapshot()
	ids := make([]glyph.PointID, 0, 3)
	for _, p := range snap.Contours[0].Points {
		ids = append(ids, p.ID)
	}
	ctx := editor.EditContext{
		Glyph:     snap,
		Selection: []glyph.PointID{ids[0]},
		Hover:     ids[1],
	}
	cmds := NewPipeline().Render(ctx, editor.Viewport{Zoom: 1}, 2)

	fills := make(map[glyph.PointID]string)
	for _, cmd := range cmds {
		if cmd.Op == "marker" {
			fills[glyph.PointID(cmd.ObjectID)] = cmd.Fill
		}
	}
	if fills[ids[0]] != "#4a9eff" {
		t.Errorf("selected marker fill = %q", fills[ids[0]])
	}
	if fills[ids[1]] != "#7ab8ff" {
		t.Errorf("hovered marker fill = %q", fills[ids[1]])
	}
	if fills[ids[2]] != "#c0c0c0" {
		t.Errorf("plain marker fill = %q", fills[ids[2]])
	}
}

func TestMarkerKindsDistinguishHandles(t *testing.T) {
	g := glyph.New("mix", 0, 200)
	c := glyph.NewContour()
	corner := c.AddPoint(0, 0, glyph.OnCurve, false)
	handle := c.AddPoint(50, 100, glyph.OffCurve, false)
	smooth := c.AddPoint(100, 0, glyph.OnCurve, true)
	g.AddContour(c)

	ctx := editor.EditContext{Glyph: g.Snapshot()}
	cmds := NewPipeline().Render(ctx, editor.Viewport{Zoom: 1}, 2)

	kinds := make(map[glyph.PointID]string)
	for _, cmd := range cmds {
		if cmd.Op == "marker" {
			kinds[glyph.PointID(cmd.ObjectID)] = cmd.Marker
		}
	}
	if kinds[corner] != "anchor" || kinds[handle] != "handle" || kinds[smooth] != "smooth" {
		t.Errorf("marker kinds = %v", kinds)
	}
}

func TestHandleStemsConnectToAnchors(t *testing.T) {
	g := glyph.New("arc", 0, 200)
	c := glyph.NewContour()
	c.AddPoint(0, 0, glyph.OnCurve, false)
	c.AddPoint(50, 100, glyph.OffCurve, false)
	c.AddPoint(100, 0, glyph.OnCurve, false)
	g.AddContour(c)

	ctx := editor.EditContext{Glyph: g.Snapshot()}
	cmds := NewPipeline().Render(ctx, editor.Viewport{Zoom: 1}, 2)

	stems := 0
	for _, cmd := range cmds {
		// Stems draw at half the outline stroke width.
		if cmd.Op == "path" && cmd.StrokeWidth == 1 {
			stems++
		}
	}
	if stems != 2 {
		t.Errorf("got %d handle stems, want one per adjacent anchor", stems)
	}
}

func TestViewportTransformCarriesPanAndZoom(t *testing.T) {
	f := &Frame{Viewport: editor.Viewport{PanX: 10, PanY: 20, Zoom: 2}}
	m := f.Transform()
	if len(m) != 6 {
		t.Fatalf("transform has %d entries, want 6", len(m))
	}
	if m[0] != 2 || m[3] != 2 {
		t.Errorf("scale = (%v, %v), want (2, 2)", m[0], m[3])
	}
	if m[4] != 10 || m[5] != 20 {
		t.Errorf("translation = (%v, %v), want (10, 20)", m[4], m[5])
	}
}

func TestCommandsToJSON(t *testing.T) {
	out, err := CommandsToJSON([]DrawCommand{{Op: "marker", Marker: "anchor", X: 1, Y: 2, Fill: "#c0c0c0", Opacity: 1}})
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	if !strings.Contains(out, `"marker":"anchor"`) {
		t.Errorf("json missing marker kind: %s", out)
	}

	out, err = CommandsToJSON(nil)
	if err != nil {
		t.Fatalf("marshal of empty buffer failed: %v", err)
	}
	if out != "null" && out != "[]" {
		t.Errorf("empty buffer serialized as %s", out)
	}
}
