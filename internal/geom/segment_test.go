package geom

import (
	"math"
	"testing"

	"github.com/glyphic/glyphic/backend-go/internal/glyph"
)

func contourOf(closed bool, pts ...glyph.PointSnapshot) glyph.ContourSnapshot {
	return glyph.ContourSnapshot{ID: "ct_test", Points: pts, Closed: closed}
}

func on(x, y float64) glyph.PointSnapshot {
	return glyph.PointSnapshot{ID: glyph.PointID("pt_on"), X: x, Y: y, Type: glyph.OnCurve}
}

func off(x, y float64) glyph.PointSnapshot {
	return glyph.PointSnapshot{ID: glyph.PointID("pt_off"), X: x, Y: y, Type: glyph.OffCurve}
}

func TestSegmentsLineQuadCubic(t *testing.T) {
	tests := []struct {
		name string
		c    glyph.ContourSnapshot
		want []SegmentKind
	}{
		{
			"open polyline",
			contourOf(false, on(0, 0), on(10, 0), on(10, 10)),
			[]SegmentKind{SegmentLine, SegmentLine},
		},
		{
			"one off-curve makes a quad",
			contourOf(false, on(0, 0), off(5, 10), on(10, 0)),
			[]SegmentKind{SegmentQuad},
		},
		{
			"two off-curves make a cubic",
			contourOf(false, on(0, 0), off(0, 10), off(10, 10), on(10, 0)),
			[]SegmentKind{SegmentCubic},
		},
		{
			"closed triangle adds the closing segment",
			contourOf(true, on(0, 0), on(10, 0), on(5, 10)),
			[]SegmentKind{SegmentLine, SegmentLine, SegmentLine},
		},
		{
			"closed mixed contour",
			contourOf(true, on(0, 0), off(5, 10), on(10, 0), on(10, -10)),
			[]SegmentKind{SegmentQuad, SegmentLine, SegmentLine},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			segs := Segments(tt.c)
			if len(segs) != len(tt.want) {
				t.Fatalf("got %d segments, want %d", len(segs), len(tt.want))
			}
			for i, k := range tt.want {
				if segs[i].Kind != k {
					t.Errorf("segment %d kind = %v, want %v", i, segs[i].Kind, k)
				}
			}
		})
	}
}

func TestSegmentsImpliedMidpoints(t *testing.T) {
	// Three consecutive off-curves: an implied anchor is synthesized at the
	// midpoint of each consecutive pair, reducing the run to quadratics.
	c := contourOf(false,
		on(0, 0),
		off(10, 10), off(20, 10), off(30, 10),
		on(40, 0),
	)
	segs := Segments(c)
	if len(segs) != 3 {
		t.Fatalf("got %d segments, want 3", len(segs))
	}
	for i, s := range segs {
		if s.Kind != SegmentQuad {
			t.Errorf("segment %d kind = %v, want quad", i, s.Kind)
		}
	}

	// First implied anchor sits midway between the first off-curve pair.
	if got := segs[0].P1; got.X != 15 || got.Y != 10 {
		t.Errorf("implied anchor at %+v, want {15 10}", got)
	}
	if got := segs[1].P1; got.X != 25 || got.Y != 10 {
		t.Errorf("second implied anchor at %+v, want {25 10}", got)
	}
}

func TestSegmentsMixedRunsKeepShortRunCubic(t *testing.T) {
	// A long off-curve run elsewhere on the contour must not split a run of
	// exactly two: midpoints are synthesized only inside the long run.
	c := contourOf(false,
		on(0, 0), off(0, 10), off(10, 10), on(10, 0),
		off(20, 10), off(30, 10), off(40, 10), on(50, 0),
	)
	segs := Segments(c)
	want := []SegmentKind{SegmentCubic, SegmentQuad, SegmentQuad, SegmentQuad}
	if len(segs) != len(want) {
		t.Fatalf("got %d segments, want %d", len(segs), len(want))
	}
	for i, k := range want {
		if segs[i].Kind != k {
			t.Errorf("segment %d kind = %v, want %v", i, segs[i].Kind, k)
		}
	}

	// The cubic keeps both of its original control points.
	if segs[0].C0 != (Vec2{X: 0, Y: 10}) || segs[0].C1 != (Vec2{X: 10, Y: 10}) {
		t.Errorf("cubic controls = %+v %+v", segs[0].C0, segs[0].C1)
	}

	// Implied anchors land mid-pair inside the long run only.
	if got := segs[1].P1; got.X != 25 || got.Y != 10 {
		t.Errorf("first implied anchor at %+v, want {25 10}", got)
	}
	if got := segs[2].P1; got.X != 35 || got.Y != 10 {
		t.Errorf("second implied anchor at %+v, want {35 10}", got)
	}
}

func TestSegmentsImpliedMidpointsAcrossWrap(t *testing.T) {
	// Off-curve runs touching the start and end of a closed contour join
	// across the wrap point into one run.
	c := contourOf(true, off(30, 10), on(0, 0), off(10, 10), off(20, 10))
	segs := Segments(c)
	if len(segs) != 3 {
		t.Fatalf("got %d segments, want 3", len(segs))
	}
	for i, s := range segs {
		if s.Kind != SegmentQuad {
			t.Errorf("segment %d kind = %v, want quad", i, s.Kind)
		}
	}
	if got := segs[0].P1; got.X != 15 || got.Y != 10 {
		t.Errorf("implied anchor at %+v, want {15 10}", got)
	}
	if got := segs[1].P1; got.X != 25 || got.Y != 10 {
		t.Errorf("wrap implied anchor at %+v, want {25 10}", got)
	}
}

func TestSegmentsTwoOffCurvesStayCubic(t *testing.T) {
	// A run of exactly two never triggers midpoint synthesis.
	c := contourOf(true,
		on(0, 0), off(0, 10), off(10, 10), on(10, 0),
	)
	segs := Segments(c)
	if len(segs) != 2 {
		t.Fatalf("got %d segments, want 2", len(segs))
	}
	if segs[0].Kind != SegmentCubic {
		t.Errorf("first segment = %v, want cubic", segs[0].Kind)
	}
	if segs[1].Kind != SegmentLine {
		t.Errorf("closing segment = %v, want line", segs[1].Kind)
	}
}

func TestSegmentsStartsAtAnchor(t *testing.T) {
	// The first point is off-curve; the walk must rotate to an anchor.
	c := contourOf(true, off(5, 10), on(10, 0), on(0, 0))
	segs := Segments(c)
	if len(segs) != 2 {
		t.Fatalf("got %d segments, want 2", len(segs))
	}
	if segs[0].P0 != (Vec2{X: 10, Y: 0}) {
		t.Errorf("walk started at %+v, want anchor {10 0}", segs[0].P0)
	}
	if segs[1].Kind != SegmentQuad {
		t.Errorf("wrap segment = %v, want quad", segs[1].Kind)
	}
}

func TestSegmentAt(t *testing.T) {
	line := Segment{Kind: SegmentLine, P0: Vec2{0, 0}, P1: Vec2{10, 20}}
	if got := line.At(0.5); got.X != 5 || got.Y != 10 {
		t.Errorf("line midpoint = %+v", got)
	}

	quad := Segment{Kind: SegmentQuad, P0: Vec2{0, 0}, C0: Vec2{5, 10}, P1: Vec2{10, 0}}
	if got := quad.At(0.5); got.X != 5 || got.Y != 5 {
		t.Errorf("quad midpoint = %+v", got)
	}

	cubic := Segment{Kind: SegmentCubic, P0: Vec2{0, 0}, C0: Vec2{0, 10}, C1: Vec2{10, 10}, P1: Vec2{10, 0}}
	got := cubic.At(0.5)
	if math.Abs(got.X-5) > 1e-9 || math.Abs(got.Y-7.5) > 1e-9 {
		t.Errorf("cubic midpoint = %+v, want {5 7.5}", got)
	}

	// Endpoints are exact for every kind.
	for _, s := range []Segment{line, quad, cubic} {
		if s.At(0) != s.P0 || s.At(1) != s.P1 {
			t.Errorf("endpoints drift for kind %v", s.Kind)
		}
	}
}

func TestShoelace(t *testing.T) {
	ccw := []Vec2{{0, 0}, {10, 0}, {10, 10}, {0, 10}}
	if got := Shoelace(ccw); got != 100 {
		t.Errorf("ccw area = %v, want 100", got)
	}

	cw := []Vec2{{0, 0}, {0, 10}, {10, 10}, {10, 0}}
	if got := Shoelace(cw); got != -100 {
		t.Errorf("cw area = %v, want -100", got)
	}

	if got := Shoelace(ccw[:2]); got != 0 {
		t.Errorf("degenerate area = %v, want 0", got)
	}
}
