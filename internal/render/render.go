// Package render turns editor state into a draw command buffer. Rendering
// is assembled from contributors: each one appends commands for its layer
// in painter's order, reading the frame but never mutating the model.
package render

import (
	"github.com/glyphic/glyphic/backend-go/internal/editor"
	"github.com/glyphic/glyphic/backend-go/internal/geom"
	"github.com/glyphic/glyphic/backend-go/internal/glyph"
)

// Frame is the per-pass bundle handed to each contributor: the state to
// draw and the buffer to append to. StrokeWidth is in font units so
// outlines keep constant on-screen weight across zoom levels.
type Frame struct {
	Glyph       glyph.Snapshot
	Selection   map[glyph.PointID]bool
	Hover       glyph.PointID
	Viewport    editor.Viewport
	StrokeWidth float64

	commands []DrawCommand
}

// Emit appends a command to the frame's buffer.
func (f *Frame) Emit(cmd DrawCommand) {
	f.commands = append(f.commands, cmd)
}

// Transform returns the viewport's font-to-screen matrix as a command
// transform slice.
func (f *Frame) Transform() []float64 {
	m := geom.Translate(f.Viewport.PanX, f.Viewport.PanY).
		Multiply(geom.Scale(f.Viewport.Zoom, f.Viewport.Zoom))
	return m[:]
}

// Contributor appends the draw commands for one visual layer.
type Contributor interface {
	Contribute(f *Frame)
}

// Pipeline runs contributors in registration order, back to front.
type Pipeline struct {
	contributors []Contributor
}

// NewPipeline creates a pipeline with the standard layers: outlines, then
// metrics, then point markers on top.
func NewPipeline() *Pipeline {
	return &Pipeline{contributors: []Contributor{
		OutlineContributor{},
		MetricsContributor{},
		PointsContributor{},
	}}
}

// Add appends a contributor after the standard layers.
func (p *Pipeline) Add(c Contributor) {
	p.contributors = append(p.contributors, c)
}

// Render compiles a full command buffer for the given editor state.
func (p *Pipeline) Render(ctx editor.EditContext, vp editor.Viewport, strokeWidth float64) []DrawCommand {
	selected := make(map[glyph.PointID]bool, len(ctx.Selection))
	for _, id := range ctx.Selection {
		selected[id] = true
	}
	f := &Frame{
		Glyph:       ctx.Glyph,
		Selection:   selected,
		Hover:       ctx.Hover,
		Viewport:    vp,
		StrokeWidth: strokeWidth,
	}
	for _, c := range p.contributors {
		c.Contribute(f)
	}
	return f.commands
}

// OutlineContributor draws the glyph outline paths.
type OutlineContributor struct{}

func (OutlineContributor) Contribute(f *Frame) {
	tf := f.Transform()
	for c := range geom.RenderableContours(f.Glyph) {
		path := ContourPath(c)
		if path == nil {
			continue
		}
		f.Emit(DrawCommand{
			Op:          "path",
			ObjectID:    string(c.ID),
			Transform:   tf,
			Path:        path,
			Stroke:      "#e0e0e0",
			StrokeWidth: f.StrokeWidth,
			Opacity:     1,
		})
	}
}

// MetricsContributor draws the baseline and advance width guides.
type MetricsContributor struct{}

func (MetricsContributor) Contribute(f *Frame) {
	tf := f.Transform()
	baseline := []PathCommand{
		{"M", -1000.0, 0.0},
		{"L", f.Glyph.XAdvance + 1000.0, 0.0},
	}
	advance := []PathCommand{
		{"M", f.Glyph.XAdvance, -1000.0},
		{"L", f.Glyph.XAdvance, 2000.0},
	}
	f.Emit(DrawCommand{Op: "path", Transform: tf, Path: baseline, Stroke: "#3a3a4a", StrokeWidth: f.StrokeWidth, Opacity: 0.6})
	f.Emit(DrawCommand{Op: "path", Transform: tf, Path: advance, Stroke: "#3a3a4a", StrokeWidth: f.StrokeWidth, Opacity: 0.6})
}

// PointsContributor draws handle stems, then point markers. Selection and
// hover recolor markers; handles connect to their adjacent anchors.
type PointsContributor struct{}

func (PointsContributor) Contribute(f *Frame) {
	tf := f.Transform()

	for _, c := range f.Glyph.Contours {
		if c.IsComposite() {
			continue
		}
		// Stems from each off-curve point to its neighboring anchors.
		for i, p := range c.Points {
			if p.Type != glyph.OffCurve {
				continue
			}
			for _, j := range []int{i - 1, i + 1} {
				n, ok := neighborAt(c, j)
				if !ok || n.Type != glyph.OnCurve {
					continue
				}
				f.Emit(DrawCommand{
					Op:        "path",
					Transform: tf,
					Path: []PathCommand{
						{"M", p.X, p.Y},
						{"L", n.X, n.Y},
					},
					Stroke:      "#5a5a6a",
					StrokeWidth: f.StrokeWidth / 2,
					Opacity:     1,
				})
			}
		}
		for _, p := range c.Points {
			f.Emit(DrawCommand{
				Op:       "marker",
				ObjectID: string(p.ID),
				Marker:   markerKind(p),
				X:        p.X,
				Y:        p.Y,
				Fill:     markerColor(p.ID, f),
				Opacity:  1,
			})
		}
	}
}

func neighborAt(c glyph.ContourSnapshot, i int) (glyph.PointSnapshot, bool) {
	n := len(c.Points)
	if n == 0 {
		return glyph.PointSnapshot{}, false
	}
	if i >= 0 && i < n {
		return c.Points[i], true
	}
	if !c.Closed {
		return glyph.PointSnapshot{}, false
	}
	return c.Points[((i%n)+n)%n], true
}

func markerKind(p glyph.PointSnapshot) string {
	switch {
	case p.Type == glyph.OffCurve:
		return "handle"
	case p.Smooth:
		return "smooth"
	default:
		return "anchor"
	}
}

func markerColor(id glyph.PointID, f *Frame) string {
	switch {
	case f.Selection[id]:
		return "#4a9eff"
	case id == f.Hover:
		return "#7ab8ff"
	default:
		return "#c0c0c0"
	}
}
