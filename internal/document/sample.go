package document

import (
	"time"

	"github.com/glyphic/glyphic/backend-go/internal/glyph"
)

// kappa is the cubic control offset approximating a quarter circle.
const kappa = 0.5522847498

// NewSampleDocument seeds a font with a handful of starter glyphs so a
// fresh project opens onto something editable.
func NewSampleDocument(fontID string) *FontDocument {
	doc := NewEmptyDocument(fontID, "Untitled")
	now := time.Now().UTC().Format(time.RFC3339)
	doc.Font.CreatedAt = now
	doc.Font.UpdatedAt = now

	l := sampleL()
	o := sampleO(doc.Font.XHeight)
	doc.PutGlyph("L", l.Snapshot())
	doc.PutGlyph("o", o.Snapshot())
	return doc
}

// sampleL is a straight-edged capital: one closed contour of line segments.
func sampleL() *glyph.Glyph {
	g := glyph.New("L", 'L', 520)
	c := glyph.NewContour()
	c.AddPoint(80, 0, glyph.OnCurve, false)
	c.AddPoint(80, 700, glyph.OnCurve, false)
	c.AddPoint(180, 700, glyph.OnCurve, false)
	c.AddPoint(180, 90, glyph.OnCurve, false)
	c.AddPoint(470, 90, glyph.OnCurve, false)
	c.AddPoint(470, 0, glyph.OnCurve, false)
	c.Close()
	g.AddContour(c)
	return g
}

// sampleO is a two-contour ring: outer and inner circle approximations with
// smooth anchors at the extremes, wound in opposite directions so the
// counter reads as a hole.
func sampleO(xHeight float64) *glyph.Glyph {
	g := glyph.New("o", 'o', 560)
	cx, cy := 280.0, xHeight/2
	g.AddContour(circleContour(cx, cy, 250, false))
	g.AddContour(circleContour(cx, cy, 170, true))
	return g
}

// circleContour builds a four-arc cubic circle. reversed flips the winding.
func circleContour(cx, cy, r float64, reversed bool) *glyph.Contour {
	k := r * kappa
	c := glyph.NewContour()

	type pt struct {
		x, y float64
		typ  glyph.PointType
	}
	pts := []pt{
		{cx + r, cy, glyph.OnCurve},
		{cx + r, cy + k, glyph.OffCurve},
		{cx + k, cy + r, glyph.OffCurve},
		{cx, cy + r, glyph.OnCurve},
		{cx - k, cy + r, glyph.OffCurve},
		{cx - r, cy + k, glyph.OffCurve},
		{cx - r, cy, glyph.OnCurve},
		{cx - r, cy - k, glyph.OffCurve},
		{cx - k, cy - r, glyph.OffCurve},
		{cx, cy - r, glyph.OnCurve},
		{cx + k, cy - r, glyph.OffCurve},
		{cx + r, cy - k, glyph.OffCurve},
	}
	if reversed {
		for i, j := 0, len(pts)-1; i < j; i, j = i+1, j-1 {
			pts[i], pts[j] = pts[j], pts[i]
		}
	}
	for _, p := range pts {
		c.AddPoint(p.x, p.y, p.typ, p.typ == glyph.OnCurve)
	}
	c.Close()
	return c
}
