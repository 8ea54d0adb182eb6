package document

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/glyphic/glyphic/backend-go/internal/geom"
	"github.com/glyphic/glyphic/backend-go/internal/glyph"
)

func TestPutGlyphMaintainsOrder(t *testing.T) {
	doc := NewEmptyDocument("font_x", "Order Test")

	doc.PutGlyph("A", glyph.New("A", 'A', 600).Snapshot())
	doc.PutGlyph("B", glyph.New("B", 'B', 600).Snapshot())
	doc.PutGlyph("A", glyph.New("A", 'A', 640).Snapshot()) // overwrite

	want := []string{"A", "B"}
	if diff := cmp.Diff(want, doc.Font.GlyphOrder); diff != "" {
		t.Errorf("glyph order mismatch (-want +got):\n%s", diff)
	}
	if snap, _ := doc.Glyph("A"); snap.XAdvance != 640 {
		t.Errorf("overwrite lost: advance = %v, want 640", snap.XAdvance)
	}
}

func TestRemoveGlyphDropsOrderEntry(t *testing.T) {
	doc := NewEmptyDocument("font_x", "Order Test")
	doc.PutGlyph("A", glyph.New("A", 'A', 600).Snapshot())
	doc.PutGlyph("B", glyph.New("B", 'B', 600).Snapshot())

	doc.RemoveGlyph("A")
	doc.RemoveGlyph("zz") // unknown name is a no-op

	if _, ok := doc.Glyph("A"); ok {
		t.Error("removed glyph still present")
	}
	if diff := cmp.Diff([]string{"B"}, doc.Font.GlyphOrder); diff != "" {
		t.Errorf("glyph order mismatch (-want +got):\n%s", diff)
	}
}

func TestDocumentJSONRoundTrip(t *testing.T) {
	doc := NewSampleDocument("font_rt")

	data, err := json.Marshal(doc)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	var back FontDocument
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if diff := cmp.Diff(doc.Font, back.Font); diff != "" {
		t.Errorf("font metadata mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(doc.Glyphs, back.Glyphs); diff != "" {
		t.Errorf("glyphs mismatch (-want +got):\n%s", diff)
	}
}

func TestSampleDocumentShape(t *testing.T) {
	doc := NewSampleDocument("font_sample")

	if diff := cmp.Diff([]string{"L", "o"}, doc.Font.GlyphOrder); diff != "" {
		t.Fatalf("glyph order mismatch (-want +got):\n%s", diff)
	}
	if doc.Font.UnitsPerEm != 1000 || doc.Font.Ascender != 800 {
		t.Errorf("metrics = %+v", doc.Font)
	}

	l, _ := doc.Glyph("L")
	if len(l.Contours) != 1 || !l.Contours[0].Closed {
		t.Fatalf("L must be one closed contour, got %d", len(l.Contours))
	}
	for _, p := range l.Contours[0].Points {
		if p.Type != glyph.OnCurve {
			t.Errorf("L has an off-curve point at (%v, %v)", p.X, p.Y)
		}
	}

	o, _ := doc.Glyph("o")
	if len(o.Contours) != 2 {
		t.Fatalf("o must be outer plus counter, got %d contours", len(o.Contours))
	}
}

func TestSampleCounterWindsOpposite(t *testing.T) {
	doc := NewSampleDocument("font_sample")
	o, _ := doc.Glyph("o")

	outer := geom.Shoelace(contourPolygon(o.Contours[0]))
	inner := geom.Shoelace(contourPolygon(o.Contours[1]))
	if outer == 0 || inner == 0 {
		t.Fatalf("degenerate winding areas: outer %v, inner %v", outer, inner)
	}
	if (outer > 0) == (inner > 0) {
		t.Errorf("counter winds with the outer contour: outer %v, inner %v", outer, inner)
	}
}

func contourPolygon(c glyph.ContourSnapshot) []geom.Vec2 {
	pts := make([]geom.Vec2, 0, len(c.Points))
	for _, p := range c.Points {
		pts = append(pts, geom.Vec2{X: p.X, Y: p.Y})
	}
	return pts
}
