package geom

import "github.com/glyphic/glyphic/backend-go/internal/glyph"

// SegmentKind discriminates the curve order of a segment.
type SegmentKind int

const (
	SegmentLine SegmentKind = iota
	SegmentQuad
	SegmentCubic
)

// Segment is one typed curve segment decomposed from a contour.
// Quad segments use C0 as their control point; cubic segments use C0 and C1.
type Segment struct {
	Kind SegmentKind
	P0   Vec2
	C0   Vec2
	C1   Vec2
	P1   Vec2
}

// At evaluates the parametric position on the segment at t in [0, 1] using
// the standard Bezier basis weights.
func (s Segment) At(t float64) Vec2 {
	mt := 1 - t
	switch s.Kind {
	case SegmentLine:
		return Vec2{
			X: mt*s.P0.X + t*s.P1.X,
			Y: mt*s.P0.Y + t*s.P1.Y,
		}
	case SegmentQuad:
		return Vec2{
			X: mt*mt*s.P0.X + 2*mt*t*s.C0.X + t*t*s.P1.X,
			Y: mt*mt*s.P0.Y + 2*mt*t*s.C0.Y + t*t*s.P1.Y,
		}
	default:
		return Vec2{
			X: mt*mt*mt*s.P0.X + 3*mt*mt*t*s.C0.X + 3*mt*t*t*s.C1.X + t*t*t*s.P1.X,
			Y: mt*mt*mt*s.P0.Y + 3*mt*mt*t*s.C0.Y + 3*mt*t*t*s.C1.Y + t*t*t*s.P1.Y,
		}
	}
}

// segPoint is a contour point reduced to what segmentation needs.
type segPoint struct {
	pos     Vec2
	onCurve bool
}

// Segments decomposes a contour's ordered point sequence into line,
// quadratic, and cubic segment descriptors.
//
// A single off-curve point between two anchors yields a quadratic segment;
// two consecutive off-curve points yield a cubic segment. Longer off-curve
// runs imply on-curve points that the encoding leaves out: an anchor is
// synthesized at the midpoint of each consecutive off-curve pair before
// segmentation, reducing the run to quadratics.
func Segments(c glyph.ContourSnapshot) []Segment {
	if c.IsComposite() {
		return nil
	}

	pts := make([]segPoint, len(c.Points))
	for i, p := range c.Points {
		pts[i] = segPoint{pos: Vec2{p.X, p.Y}, onCurve: p.Type == glyph.OnCurve}
	}
	pts = synthesizeImplied(pts, c.Closed)

	start := firstAnchor(pts)
	if start < 0 {
		return nil
	}

	// Rotate so the walk starts at an anchor; a closed contour repeats the
	// starting anchor at the end to produce the closing segment.
	var walk []segPoint
	if c.Closed {
		walk = make([]segPoint, 0, len(pts)+1)
		walk = append(walk, pts[start:]...)
		walk = append(walk, pts[:start]...)
		walk = append(walk, pts[start])
	} else {
		walk = pts[start:]
	}

	var segs []Segment
	i := 0
	for i < len(walk)-1 {
		p0 := walk[i]
		var run []Vec2
		j := i + 1
		for j < len(walk) && !walk[j].onCurve {
			run = append(run, walk[j].pos)
			j++
		}
		if j >= len(walk) {
			// Trailing off-curve points with no terminating anchor.
			break
		}
		p1 := walk[j]

		switch len(run) {
		case 0:
			segs = append(segs, Segment{Kind: SegmentLine, P0: p0.pos, P1: p1.pos})
		case 1:
			segs = append(segs, Segment{Kind: SegmentQuad, P0: p0.pos, C0: run[0], P1: p1.pos})
		case 2:
			segs = append(segs, Segment{Kind: SegmentCubic, P0: p0.pos, C0: run[0], C1: run[1], P1: p1.pos})
		}
		i = j
	}

	return segs
}

// synthesizeImplied inserts an implied on-curve point at the midpoint of
// each consecutive off-curve pair inside runs of three or more, so no run
// longer than two survives into segmentation. Runs of exactly two are left
// alone; they encode a cubic segment, and a long run elsewhere on the
// contour must not split them.
func synthesizeImplied(pts []segPoint, closed bool) []segPoint {
	runs := offCurveRunLengths(pts, closed)
	long := false
	for _, l := range runs {
		if l > 2 {
			long = true
			break
		}
	}
	if !long {
		return pts
	}

	out := make([]segPoint, 0, len(pts)*2)
	n := len(pts)
	for i, p := range pts {
		out = append(out, p)
		if p.onCurve || runs[i] <= 2 {
			continue
		}
		nextIdx := i + 1
		if nextIdx >= n {
			if !closed {
				continue
			}
			nextIdx = 0
		}
		next := pts[nextIdx]
		if !next.onCurve {
			out = append(out, segPoint{pos: p.pos.Midpoint(next.pos), onCurve: true})
		}
	}
	return out
}

// offCurveRunLengths labels every point with the length of the maximal
// off-curve run it belongs to; on-curve points get zero. On a closed contour
// a run touching the end joins the run touching the start.
func offCurveRunLengths(pts []segPoint, closed bool) []int {
	n := len(pts)
	lengths := make([]int, n)
	for i := 0; i < n; {
		if pts[i].onCurve {
			i++
			continue
		}
		j := i
		for j < n && !pts[j].onCurve {
			j++
		}
		for m := i; m < j; m++ {
			lengths[m] = j - i
		}
		i = j
	}
	if closed && n > 0 && !pts[0].onCurve && !pts[n-1].onCurve && lengths[0] != n {
		merged := lengths[0] + lengths[n-1]
		for m := 0; m < n && !pts[m].onCurve; m++ {
			lengths[m] = merged
		}
		for m := n - 1; m >= 0 && !pts[m].onCurve; m-- {
			lengths[m] = merged
		}
	}
	return lengths
}

func firstAnchor(pts []segPoint) int {
	for i, p := range pts {
		if p.onCurve {
			return i
		}
	}
	return -1
}
